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

package performance_test

import (
	"testing"

	"github.com/hexbus/gopher8/performance"
	"github.com/hexbus/gopher8/test"
)

func TestCalcFPS(t *testing.T) {
	fps, accuracy := performance.CalcFPS(120, 2.0)
	test.Equate(t, fps, float32(60))
	test.Equate(t, accuracy, float32(100))

	fps, accuracy = performance.CalcFPS(30, 1.0)
	test.Equate(t, fps, float32(30))
	test.Equate(t, accuracy, float32(50))

	// zero duration does not divide by zero
	fps, accuracy = performance.CalcFPS(100, 0)
	test.Equate(t, fps, float32(0))
	test.Equate(t, accuracy, float32(0))
}
