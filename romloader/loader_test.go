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

package romloader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hexbus/gopher8/romloader"
	"github.com/hexbus/gopher8/test"
)

func TestShortName(t *testing.T) {
	ld := romloader.NewLoader("roms/games/PONG.ch8")
	test.Equate(t, ld.ShortName(), "PONG")

	ld = romloader.NewLoader("invaders")
	test.Equate(t, ld.ShortName(), "invaders")
}

func TestLoad(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "test.ch8")
	if err := os.WriteFile(pth, []byte{0x60, 0x0f, 0x12, 0x00}, 0644); err != nil {
		t.Fatal(err)
	}

	ld := romloader.NewLoader(pth)
	test.Equate(t, ld.HasLoaded(), false)

	test.ExpectedSuccess(t, ld.Load())
	test.Equate(t, ld.HasLoaded(), true)
	test.Equate(t, len(ld.Data), 4)

	// hash has been generated
	if ld.Hash == "" {
		t.Fatalf("hash not generated on load")
	}

	// loading with the wrong hash must fail
	ld2 := romloader.NewLoader(pth)
	ld2.Hash = "0000000000000000000000000000000000000000"
	test.ExpectedFailure(t, ld2.Load())
}

func TestLoadMissingFile(t *testing.T) {
	ld := romloader.NewLoader(filepath.Join(t.TempDir(), "does-not-exist.ch8"))
	test.ExpectedFailure(t, ld.Load())
}
