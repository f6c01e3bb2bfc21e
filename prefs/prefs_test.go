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

package prefs_test

import (
	"path/filepath"
	"testing"

	"github.com/hexbus/gopher8/prefs"
	"github.com/hexbus/gopher8/test"
)

func TestBool(t *testing.T) {
	var p prefs.Bool

	// zero value
	test.Equate(t, p.Get().(bool), false)

	test.ExpectedSuccess(t, p.Set(true))
	test.Equate(t, p.Get().(bool), true)

	// string conversion
	test.ExpectedSuccess(t, p.Set("TRUE"))
	test.Equate(t, p.Get().(bool), true)
	test.ExpectedSuccess(t, p.Set("no"))
	test.Equate(t, p.Get().(bool), false)

	// unsupported type
	test.ExpectedFailure(t, p.Set(1.0))
}

func TestInt(t *testing.T) {
	var p prefs.Int

	test.Equate(t, p.Get().(int), 0)
	test.ExpectedSuccess(t, p.Set(720))
	test.Equate(t, p.Get().(int), 720)
	test.ExpectedSuccess(t, p.Set("100"))
	test.Equate(t, p.Get().(int), 100)
	test.ExpectedFailure(t, p.Set("one hundred"))
}

func TestSaveLoad(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "prefs")

	dsk, err := prefs.NewDisk(pth)
	test.ExpectedSuccess(t, err)

	var b prefs.Bool
	var i prefs.Int
	test.ExpectedSuccess(t, dsk.Add("hardware.quirks.shiftUsesVY", &b))
	test.ExpectedSuccess(t, dsk.Add("hardware.clockSpeed", &i))

	test.ExpectedSuccess(t, b.Set(true))
	test.ExpectedSuccess(t, i.Set(1000))
	test.ExpectedSuccess(t, dsk.Save())

	// new disk instance reading the same file
	dsk2, err := prefs.NewDisk(pth)
	test.ExpectedSuccess(t, err)

	var b2 prefs.Bool
	var i2 prefs.Int
	test.ExpectedSuccess(t, dsk2.Add("hardware.quirks.shiftUsesVY", &b2))
	test.ExpectedSuccess(t, dsk2.Add("hardware.clockSpeed", &i2))
	test.ExpectedSuccess(t, dsk2.Load())

	test.Equate(t, b2.Get().(bool), true)
	test.Equate(t, i2.Get().(int), 1000)
}

func TestLoadMissingFile(t *testing.T) {
	dsk, err := prefs.NewDisk(filepath.Join(t.TempDir(), "does-not-exist"))
	test.ExpectedSuccess(t, err)

	var i prefs.Int
	test.ExpectedSuccess(t, i.Set(720))
	test.ExpectedSuccess(t, dsk.Add("hardware.clockSpeed", &i))

	// missing file is not an error and defaults are kept
	test.ExpectedSuccess(t, dsk.Load())
	test.Equate(t, i.Get().(int), 720)
}
