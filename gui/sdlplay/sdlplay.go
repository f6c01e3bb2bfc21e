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

// Package sdlplay is a simple SDL2 implementation of the gui.GUI interface.
// The display is a single window showing the emulated screen; there are no
// menus or decorations.
package sdlplay

import (
	"io"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/hexbus/gopher8/curated"
	"github.com/hexbus/gopher8/gui"
	"github.com/hexbus/gopher8/hardware/screen"
	"github.com/hexbus/gopher8/logger"
)

// number of bytes per pixel in the texture (ABGR)
const pixelDepth = 4

// SdlPlay is a simple SDL implementation of the gui.GUI interface. It also
// implements the screen.PixelRenderer and screen.AudioMixer interfaces,
// registering itself with the Screen on creation.
type SdlPlay struct {
	// the event channel is registered with a ReqSetEventChan request
	events chan gui.Event

	// all audio is handled by the sound type
	snd *sound

	// sdl stuff
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	// pixels is the byte array that we copy to the texture before applying
	// to the renderer
	pixels []byte

	prefs *preferences

	// connects the goroutine making a feature request with the main thread,
	// which services the requests
	featureReq chan featureRequest
	featureErr chan error
}

// NewSdlPlay is the preferred method of initialisation for the SdlPlay type.
//
// MUST ONLY be called from the main thread.
func NewSdlPlay(scr *screen.Screen) (*SdlPlay, error) {
	sp := &SdlPlay{
		featureReq: make(chan featureRequest),
		featureErr: make(chan error),
	}

	var err error

	sp.prefs, err = newPreferences()
	if err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	if err := sdl.Init(sdl.INIT_EVERYTHING); err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	// window size is set in setScaling(). not showing the window on startup;
	// it is instead opened on a ReqSetVisibility request
	sp.window, err = sdl.CreateWindow("Gopher8",
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		0, 0,
		uint32(sdl.WINDOW_HIDDEN))
	if err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	sp.renderer, err = sdl.CreateRenderer(sp.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	// texture is applied to the renderer to show the image. we copy the
	// pixels to it on every NewFrame()
	sp.texture, err = sp.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888),
		int(sdl.TEXTUREACCESS_STREAMING),
		screen.Width, screen.Height)
	if err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	sp.pixels = make([]byte, screen.Width*screen.Height*pixelDepth)

	// preset alpha channel - we never change the value of this channel
	for i := pixelDepth - 1; i < len(sp.pixels); i += pixelDepth {
		sp.pixels[i] = 255
	}

	if err := sp.setScaling(float32(sp.prefs.scale.Get().(float64))); err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	// initialise the sound system
	sp.snd, err = newSound()
	if err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	scr.AddPixelRenderer(sp)
	scr.AddAudioMixer(sp)

	return sp, nil
}

// Destroy implements the GuiCreator interface.
//
// MUST ONLY be called from the main thread.
func (sp *SdlPlay) Destroy(output io.Writer) {
	sp.snd.end()

	if err := sp.texture.Destroy(); err != nil {
		output.Write([]byte(err.Error()))
	}
	if err := sp.renderer.Destroy(); err != nil {
		output.Write([]byte(err.Error()))
	}
	if err := sp.window.Destroy(); err != nil {
		output.Write([]byte(err.Error()))
	}
}

// use scale of -1 to reapply the existing scale value.
func (sp *SdlPlay) setScaling(scale float32) error {
	if scale > 0 {
		if err := sp.prefs.scale.Set(float64(scale)); err != nil {
			return err
		}
	}

	scale = float32(sp.prefs.scale.Get().(float64))

	w := int32(screen.Width * scale)
	h := int32(screen.Height * scale)
	sp.window.SetSize(w, h)

	// make sure everything drawn through the renderer is correctly scaled
	if err := sp.renderer.SetScale(scale, scale); err != nil {
		return err
	}

	return nil
}

func (sp *SdlPlay) showWindow(show bool) {
	if show {
		sp.window.Show()
	} else {
		sp.window.Hide()
	}
}

// NewFrame implements the screen.PixelRenderer interface. called once the
// pixels of the frame have been set, so the frame on show is always the most
// recent one.
func (sp *SdlPlay) NewFrame(frameNum int) error {
	if err := sp.texture.Update(nil, sp.pixels, screen.Width*pixelDepth); err != nil {
		return curated.Errorf("sdlplay: %v", err)
	}

	if err := sp.renderer.Copy(sp.texture, nil, nil); err != nil {
		return curated.Errorf("sdlplay: %v", err)
	}

	sp.renderer.Present()

	return nil
}

// SetPixel implements the screen.PixelRenderer interface. pixels that are on
// are drawn white; pixels that are off are drawn black.
func (sp *SdlPlay) SetPixel(x int, y int, on bool) error {
	var v byte
	if on {
		v = 255
	}

	i := (y*screen.Width + x) * pixelDepth
	if i <= len(sp.pixels)-pixelDepth {
		sp.pixels[i] = v
		sp.pixels[i+1] = v
		sp.pixels[i+2] = v
	}

	return nil
}

// EndRendering implements the screen.PixelRenderer interface.
func (sp *SdlPlay) EndRendering() error {
	return nil
}

// SetBuzzer implements the screen.AudioMixer interface.
func (sp *SdlPlay) SetBuzzer(on bool) error {
	return sp.snd.setBuzzer(on)
}

// EndMixing implements the screen.AudioMixer interface.
func (sp *SdlPlay) EndMixing() error {
	return nil
}

// SavePrefs saves the current gui preferences to disk.
func (sp *SdlPlay) savePrefs() {
	if err := sp.prefs.save(); err != nil {
		logger.Logf("sdlplay", "%v", err)
	}
}
