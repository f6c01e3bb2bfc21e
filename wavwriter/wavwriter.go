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

// Package wavwriter records the emulated buzzer to a WAV file. Implements
// the screen.AudioMixer interface.
package wavwriter

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/hexbus/gopher8/curated"
	"github.com/hexbus/gopher8/hardware/screen"
	"github.com/hexbus/gopher8/logger"
)

const (
	sampleRate      = 44100
	samplesPerFrame = sampleRate / screen.FramesPerSecond

	// the buzzer is a square wave of this frequency
	buzzerFreq = 440

	// 8-bit unsigned samples. silence is the midpoint
	silence   = 128
	amplitude = 32
)

// WavWriter implements the screen.AudioMixer interface.
type WavWriter struct {
	filename string
	buffer   []int

	// position in the square wave cycle, in samples
	phase int
}

// NewWavWriter is the preferred method of initialisation for the WavWriter
// type. The returned WavWriter is attached to the supplied Screen as an
// audio mixer.
func NewWavWriter(scr *screen.Screen, filename string) (*WavWriter, error) {
	aw := &WavWriter{
		filename: filename,
		buffer:   make([]int, 0, sampleRate),
	}

	scr.AddAudioMixer(aw)

	return aw, nil
}

// SetBuzzer implements the screen.AudioMixer interface. called once per
// frame; generates one frame's worth of samples.
func (aw *WavWriter) SetBuzzer(on bool) error {
	const halfPeriod = sampleRate / buzzerFreq / 2

	for i := 0; i < samplesPerFrame; i++ {
		if !on {
			aw.buffer = append(aw.buffer, silence)
			continue
		}

		if (aw.phase/halfPeriod)%2 == 0 {
			aw.buffer = append(aw.buffer, silence+amplitude)
		} else {
			aw.buffer = append(aw.buffer, silence-amplitude)
		}
		aw.phase++
	}

	return nil
}

// EndMixing implements the screen.AudioMixer interface. the WAV file is
// written in its entirety when mixing ends.
func (aw *WavWriter) EndMixing() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	// 8-bit mono PCM
	enc := wav.NewEncoder(f, sampleRate, 8, 1, 1)

	buf := audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		Data:           aw.buffer,
		SourceBitDepth: 8,
	}

	if err := enc.Write(&buf); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	if err := enc.Close(); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	logger.Log("wavwriter", aw.filename)

	return nil
}
