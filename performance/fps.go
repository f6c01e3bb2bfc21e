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

package performance

import "github.com/hexbus/gopher8/hardware/screen"

// CalcFPS returns the frames-per-second and the accuracy of that value as a
// percentage of the nominal frame rate.
func CalcFPS(numFrames int, duration float64) (fps float32, accuracy float32) {
	if duration <= 0 {
		return 0, 0
	}
	fps = float32(float64(numFrames) / duration)
	accuracy = 100 * fps / float32(screen.FramesPerSecond)
	return fps, accuracy
}
