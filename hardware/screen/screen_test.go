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

package screen

import (
	"testing"
	"time"
)

// a renderer that records the order of the PixelRenderer calls made during a
// frame push.
type orderRenderer struct {
	calls []string
}

func (o *orderRenderer) NewFrame(frameNum int) error {
	o.calls = append(o.calls, "newframe")
	return nil
}

func (o *orderRenderer) SetPixel(x int, y int, on bool) error {
	if len(o.calls) == 0 || o.calls[len(o.calls)-1] != "setpixel" {
		o.calls = append(o.calls, "setpixel")
	}
	return nil
}

func (o *orderRenderer) EndRendering() error {
	return nil
}

func TestFrameDeliveryOrder(t *testing.T) {
	scr, err := NewScreen()
	if err != nil {
		t.Fatal(err)
	}
	scr.SetFPSCap(false)

	o := &orderRenderer{}
	scr.AddPixelRenderer(o)

	fb := make([]bool, Width*Height)
	if err := scr.NewFrame(fb, false); err != nil {
		t.Fatal(err)
	}

	// pixels must arrive before the NewFrame() signal, or the renderer would
	// be acting on the previous frame
	if len(o.calls) != 2 || o.calls[0] != "setpixel" || o.calls[1] != "newframe" {
		t.Fatalf("unexpected call order: %v", o.calls)
	}
}

func TestScreenEnd(t *testing.T) {
	scr, err := NewScreen()
	if err != nil {
		t.Fatal(err)
	}

	fb := make([]bool, Width*Height)
	if err := scr.NewFrame(fb, false); err != nil {
		t.Fatal(err)
	}

	done := make(chan error)
	go func() {
		done <- scr.End()
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(time.Second):
		t.Fatalf("screen did not shut down")
	}
}
