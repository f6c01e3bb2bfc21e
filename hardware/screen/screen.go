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

// Package screen sits between the emulated hardware and anything that wants
// to display its output. The hardware pushes a completed frame to the Screen
// at the end of every emulated frame; the Screen forwards the pixels to every
// attached PixelRenderer and the buzzer state to every attached AudioMixer.
//
// The Screen also regulates the speed of the emulation, limiting the frame
// rate to sixty frames per second unless the cap has been switched off.
package screen

import (
	"github.com/hexbus/gopher8/curated"
)

// Width and Height of the CHIP-8 display in pixels.
const (
	Width  = 64
	Height = 32
)

// FramesPerSecond is the nominal frame rate of the CHIP-8 machine. the delay
// and sound timers tick at this rate.
const FramesPerSecond = 60

// PixelRenderer implementations displays, or otherwise works with, the pixels
// of completed frames.
type PixelRenderer interface {
	// NewFrame is called once per frame, after every pixel of the frame has
	// been streamed through SetPixel. the frame is complete at this point.
	NewFrame(frameNum int) error

	// SetPixel is called for every pixel of the frame, in row-major order.
	SetPixel(x int, y int, on bool) error

	// EndRendering is called when the emulation is shutting down.
	EndRendering() error
}

// AudioMixer implementations sound, or otherwise work with, the state of the
// buzzer.
type AudioMixer interface {
	// SetBuzzer is called once per frame with the current buzzer state.
	SetBuzzer(on bool) error

	// EndMixing is called when the emulation is shutting down.
	EndMixing() error
}

// Screen connects the emulated hardware to its renderers and mixers.
type Screen struct {
	renderers []PixelRenderer
	mixers    []AudioMixer

	frameNum int
	lmtr     limiter
}

// NewScreen is the preferred method of initialisation for the Screen type.
func NewScreen() (*Screen, error) {
	scr := &Screen{}
	scr.lmtr.init(FramesPerSecond)
	return scr, nil
}

// AddPixelRenderer attaches a PixelRenderer to the Screen.
func (scr *Screen) AddPixelRenderer(r PixelRenderer) {
	scr.renderers = append(scr.renderers, r)
}

// AddAudioMixer attaches an AudioMixer to the Screen.
func (scr *Screen) AddAudioMixer(m AudioMixer) {
	scr.mixers = append(scr.mixers, m)
}

// SetFPSCap switches the frame rate limiter on or off. with the cap off the
// emulation runs as fast as the host allows.
func (scr *Screen) SetFPSCap(limit bool) {
	scr.lmtr.setActive(limit)
}

// ActualFPS returns the frame rate measured over the most recent second.
func (scr *Screen) ActualFPS() float32 {
	return scr.lmtr.actual()
}

// FrameNum returns the number of frames pushed to the Screen since the last
// reset.
func (scr *Screen) FrameNum() int {
	return scr.frameNum
}

// Reset the frame count.
func (scr *Screen) Reset() {
	scr.frameNum = 0
}

// NewFrame pushes a completed frame to every attached renderer and the
// buzzer state to every attached mixer. the framebuffer is in row-major
// order and must be Width*Height in length.
func (scr *Screen) NewFrame(fb []bool, buzzer bool) error {
	if len(fb) != Width*Height {
		return curated.Errorf("screen: unexpected framebuffer length (%d)", len(fb))
	}

	scr.frameNum++

	// pixels are streamed before NewFrame() is called. renderers act on the
	// frame that has just been pushed, not the one before it
	for _, r := range scr.renderers {
		for y := 0; y < Height; y++ {
			for x := 0; x < Width; x++ {
				if err := r.SetPixel(x, y, fb[y*Width+x]); err != nil {
					return curated.Errorf("screen: %v", err)
				}
			}
		}
		if err := r.NewFrame(scr.frameNum); err != nil {
			return curated.Errorf("screen: %v", err)
		}
	}

	for _, m := range scr.mixers {
		if err := m.SetBuzzer(buzzer); err != nil {
			return curated.Errorf("screen: %v", err)
		}
	}

	scr.lmtr.wait()

	return nil
}

// End cleanly shuts down all attached renderers and mixers, and stops the
// frame rate limiter. the Screen cannot be used after End() has been called.
func (scr *Screen) End() error {
	var rerr error

	scr.lmtr.end()

	for _, r := range scr.renderers {
		if err := r.EndRendering(); err != nil {
			rerr = curated.Errorf("screen: %v", err)
		}
	}
	for _, m := range scr.mixers {
		if err := m.EndMixing(); err != nil {
			rerr = curated.Errorf("screen: %v", err)
		}
	}

	return rerr
}
