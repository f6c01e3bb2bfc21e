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

package hardware_test

import (
	"testing"

	"github.com/hexbus/gopher8/hardware"
	"github.com/hexbus/gopher8/test"
)

func TestPreferencesSetDefaults(t *testing.T) {
	prf, err := hardware.NewPreferences()
	test.ExpectedSuccess(t, err)

	test.ExpectedSuccess(t, prf.ShiftUsesVY.Set(true))
	test.ExpectedSuccess(t, prf.IndexIncrement.Set(true))
	test.ExpectedSuccess(t, prf.ClockSpeed.Set(1000))

	test.ExpectedSuccess(t, prf.SetDefaults())

	test.Equate(t, prf.ShiftUsesVY.Get().(bool), false)
	test.Equate(t, prf.IndexIncrement.Get().(bool), false)
	test.Equate(t, prf.ClockSpeed.Get().(int), 720)
}
