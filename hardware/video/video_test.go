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

package video_test

import (
	"testing"

	"github.com/hexbus/gopher8/hardware/video"
	"github.com/hexbus/gopher8/test"
)

func TestDrawSprite(t *testing.T) {
	vid := video.NewVideo()

	// single row sprite, all eight pixels on
	collision := vid.DrawSprite(0, 0, []uint8{0xff})
	test.Equate(t, collision, false)
	for x := 0; x < 8; x++ {
		test.Equate(t, vid.Pixel(x, 0), true)
	}
	test.Equate(t, vid.Pixel(8, 0), false)

	// drawing the same sprite again erases it and reports a collision
	collision = vid.DrawSprite(0, 0, []uint8{0xff})
	test.Equate(t, collision, true)
	for x := 0; x < 8; x++ {
		test.Equate(t, vid.Pixel(x, 0), false)
	}
}

func TestDrawSpriteWrap(t *testing.T) {
	vid := video.NewVideo()

	// sprite at the far corner wraps to the opposite edges
	collision := vid.DrawSprite(62, 31, []uint8{0xc0, 0xc0})
	test.Equate(t, collision, false)

	test.Equate(t, vid.Pixel(62, 31), true)
	test.Equate(t, vid.Pixel(63, 31), true)
	test.Equate(t, vid.Pixel(62, 0), true)
	test.Equate(t, vid.Pixel(63, 0), true)
}

func TestClear(t *testing.T) {
	vid := video.NewVideo()
	vid.DrawSprite(10, 10, []uint8{0xff, 0xff})
	vid.Clear()
	for _, p := range vid.Framebuffer() {
		if p {
			t.Fatalf("framebuffer not clear")
		}
	}
}
