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

// Package digest is used to create mathematical hashes of frame output. The
// hash of each frame is chained with the hash of the previous frame, so the
// final digest summarises everything the emulation has displayed. Used by the
// regression system to compare emulation output across versions.
package digest

import (
	"crypto/sha1"
	"fmt"

	"github.com/hexbus/gopher8/curated"
	"github.com/hexbus/gopher8/hardware/screen"
)

// Video is an implementation of the screen.PixelRenderer interface with an
// embedded frame digest.
type Video struct {
	digest   [sha1.Size]byte
	pixels   []byte
	frameNum int
}

// NewVideo is the preferred method of initialisation for the Video type. The
// returned Video is attached to the supplied Screen as a pixel renderer.
func NewVideo(scr *screen.Screen) (*Video, error) {
	dig := &Video{}

	// leading bytes of the pixel array hold the digest of the previous frame
	dig.pixels = make([]byte, sha1.Size+(screen.Width*screen.Height))

	scr.AddPixelRenderer(dig)

	return dig, nil
}

// Hash returns the current frame digest as a string.
func (dig *Video) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest resets the current digest to nil.
func (dig *Video) ResetDigest() {
	for i := range dig.digest {
		dig.digest[i] = 0
	}
}

// NewFrame implements the screen.PixelRenderer interface. the frame that has
// just been streamed is hashed, with the digest of the previous frame folded
// in through the leading bytes of the pixel array.
func (dig *Video) NewFrame(frameNum int) error {
	dig.frameNum = frameNum
	dig.digest = sha1.Sum(dig.pixels)
	copy(dig.pixels[:sha1.Size], dig.digest[:])
	return nil
}

// SetPixel implements the screen.PixelRenderer interface.
func (dig *Video) SetPixel(x int, y int, on bool) error {
	i := sha1.Size + (y*screen.Width + x)
	if i >= len(dig.pixels) {
		return curated.Errorf("digest: pixel out of range (%d, %d)", x, y)
	}
	if on {
		dig.pixels[i] = 1
	} else {
		dig.pixels[i] = 0
	}
	return nil
}

// EndRendering implements the screen.PixelRenderer interface.
func (dig *Video) EndRendering() error {
	return nil
}
