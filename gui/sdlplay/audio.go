// This file is part of Gopher8.
//
// Gopher8 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher8 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher8.  If not, see <https://www.gnu.org/licenses/>.

package sdlplay

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/hexbus/gopher8/hardware/screen"
)

const (
	sampleRate      = 44100
	samplesPerFrame = sampleRate / screen.FramesPerSecond

	// the buzzer is a square wave of this frequency
	buzzerFreq = 440

	// the amplitude of the square wave, either side of the silence value
	amplitude = 32
)

// sound queues square wave samples to an SDL audio device. one frame's worth
// of samples is queued on every call to setBuzzer().
type sound struct {
	id   sdl.AudioDeviceID
	spec sdl.AudioSpec

	// position in the square wave cycle, in samples
	phase int
}

func newSound() (*sound, error) {
	snd := &sound{}

	spec := &sdl.AudioSpec{
		Freq:     sampleRate,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  uint16(samplesPerFrame),
	}

	var err error
	var actualSpec sdl.AudioSpec

	snd.id, err = sdl.OpenAudioDevice("", false, spec, &actualSpec, 0)
	if err != nil {
		return nil, err
	}
	snd.spec = actualSpec

	sdl.PauseAudioDevice(snd.id, false)

	return snd, nil
}

func (snd *sound) setBuzzer(on bool) error {
	const halfPeriod = sampleRate / buzzerFreq / 2

	// if the emulation is running faster than the device can consume samples
	// (the fps cap is off, for instance) stop queueing before the lag
	// becomes audible
	if sdl.GetQueuedAudioSize(snd.id) > sampleRate/4 {
		return nil
	}

	buf := make([]uint8, samplesPerFrame)
	for i := range buf {
		if !on {
			buf[i] = snd.spec.Silence
			continue
		}

		if (snd.phase/halfPeriod)%2 == 0 {
			buf[i] = snd.spec.Silence + amplitude
		} else {
			buf[i] = snd.spec.Silence - amplitude
		}
		snd.phase++
	}

	return sdl.QueueAudio(snd.id, buf)
}

func (snd *sound) end() {
	sdl.CloseAudioDevice(snd.id)
}
