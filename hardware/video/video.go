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

// Package video implements the CHIP-8 framebuffer. Sprites are drawn by
// XORing their pixels onto the display, wrapping at the screen edges.
package video

// Width and Height of the CHIP-8 display in pixels.
const (
	Width  = 64
	Height = 32
)

// Video is the CHIP-8 framebuffer. pixels are either on or off, there is no
// colour information.
type Video struct {
	fb [Width * Height]bool
}

// NewVideo is the preferred method of initialisation for the Video type.
func NewVideo() *Video {
	return &Video{}
}

// Clear the framebuffer. all pixels off.
func (vid *Video) Clear() {
	for i := range vid.fb {
		vid.fb[i] = false
	}
}

// DrawSprite XORs the sprite onto the framebuffer at the specified
// coordinates. each byte of the sprite is one row of eight pixels, most
// significant bit leftmost. drawing wraps around the screen edges. returns
// true if any pixel was turned off by the draw (the collision condition).
func (vid *Video) DrawSprite(x uint8, y uint8, sprite []uint8) bool {
	collision := false

	for r, b := range sprite {
		py := (int(y) + r) % Height
		for c := 0; c < 8; c++ {
			if b&(0x80>>c) == 0 {
				continue
			}
			px := (int(x) + c) % Width
			i := py*Width + px
			if vid.fb[i] {
				collision = true
			}
			vid.fb[i] = !vid.fb[i]
		}
	}

	return collision
}

// Pixel returns the state of the pixel at the specified coordinates.
func (vid *Video) Pixel(x int, y int) bool {
	return vid.fb[y*Width+x]
}

// Framebuffer returns the pixel array in row-major order.
func (vid *Video) Framebuffer() []bool {
	return vid.fb[:]
}
