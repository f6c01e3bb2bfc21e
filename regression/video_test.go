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

package regression

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/hexbus/gopher8/test"
)

// a short program that draws a sprite and spins
var testROM = []uint8{
	0xa2, 0x0a, // LD I, 0x20a
	0x60, 0x05, // LD V0, 5
	0xd0, 0x03, // DRW V0, V0, 3
	0x12, 0x06, // JP 0x206
	0x00, 0x00,
	0xf0, 0x90, 0xf0, // sprite data
}

func TestVideoRegression(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "test.ch8")
	if err := os.WriteFile(pth, testROM, 0644); err != nil {
		t.Fatal(err)
	}

	reg := &VideoRegression{
		ROM:       pth,
		NumFrames: 5,
	}

	// first run records the digest
	ok, err := reg.regress(true, io.Discard, "")
	test.ExpectedSuccess(t, err)
	test.Equate(t, ok, true)
	if reg.digest == "" {
		t.Fatalf("digest not recorded")
	}

	// second run compares against it
	ok, err = reg.regress(false, io.Discard, "")
	test.ExpectedSuccess(t, err)
	test.Equate(t, ok, true)

	// a different frame count produces a different digest
	reg2 := &VideoRegression{
		ROM:       pth,
		NumFrames: 6,
		digest:    reg.digest,
	}
	ok, err = reg2.regress(false, io.Discard, "")
	test.ExpectedSuccess(t, err)
	test.Equate(t, ok, false)
}

func TestVideoRegressionQuirkIndependence(t *testing.T) {
	// run from a directory with a local resource path so the preferences
	// file consulted by the emulated machine is under the test's control
	wd := t.TempDir()
	if err := os.MkdirAll(filepath.Join(wd, ".gopher8"), 0755); err != nil {
		t.Fatal(err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(wd); err != nil {
		t.Fatal(err)
	}
	defer func() {
		if err := os.Chdir(cwd); err != nil {
			t.Fatal(err)
		}
	}()

	// the drawn position of the sprite depends on a shift instruction, which
	// is sensitive to the shiftUsesVY quirk
	rom := []uint8{
		0x60, 0x02, // LD V0, 2
		0x61, 0x08, // LD V1, 8
		0x80, 0x16, // SHR V0 {, V1}
		0xa2, 0x0c, // LD I, 0x20c
		0xd0, 0x03, // DRW V0, V0, 3
		0x12, 0x0a, // JP 0x20a
		0xf0, 0x90, 0xf0, // sprite data
	}

	pth := filepath.Join(wd, "test.ch8")
	if err := os.WriteFile(pth, rom, 0644); err != nil {
		t.Fatal(err)
	}

	reg := &VideoRegression{
		ROM:       pth,
		NumFrames: 5,
	}

	ok, err := reg.regress(true, io.Discard, "")
	test.ExpectedSuccess(t, err)
	test.Equate(t, ok, true)

	// flipping a quirk preference on disk must not invalidate the recorded
	// digest
	prf := "hardware.quirks.shiftUsesVY :: true\n"
	if err := os.WriteFile(filepath.Join(wd, ".gopher8", "preferences"), []byte(prf), 0644); err != nil {
		t.Fatal(err)
	}

	ok, err = reg.regress(false, io.Discard, "")
	test.ExpectedSuccess(t, err)
	test.Equate(t, ok, true)
}

func TestVideoSerialise(t *testing.T) {
	reg := &VideoRegression{
		ROM:       "roms/test.ch8",
		NumFrames: 10,
		Notes:     "test entry",
		digest:    "abcdef",
	}

	ser, err := reg.Serialise()
	test.ExpectedSuccess(t, err)

	ent, err := deserialiseVideoEntry(ser)
	test.ExpectedSuccess(t, err)

	reg2, ok := ent.(*VideoRegression)
	if !ok {
		t.Fatalf("unexpected entry type")
	}
	test.Equate(t, reg2.ROM, reg.ROM)
	test.Equate(t, reg2.NumFrames, reg.NumFrames)
	test.Equate(t, reg2.Notes, reg.Notes)
	test.Equate(t, reg2.digest, reg.digest)
}
