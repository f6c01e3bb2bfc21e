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

package main_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hexbus/gopher8/hardware"
	"github.com/hexbus/gopher8/hardware/screen"
	"github.com/hexbus/gopher8/romloader"
)

func BenchmarkCPU(b *testing.B) {
	scr, err := screen.NewScreen()
	if err != nil {
		b.Fatal(err)
	}
	scr.SetFPSCap(false)

	vm, err := hardware.NewChip8(scr)
	if err != nil {
		b.Fatal(err)
	}

	// counting loop. ADD wraps around so the ROM can run indefinitely
	rom := []byte{
		0x70, 0x01, // 0x200: ADD V0, 0x01
		0x12, 0x00, // 0x202: JP 0x200
	}

	romFile := filepath.Join(b.TempDir(), "count.ch8")
	if err := os.WriteFile(romFile, rom, 0644); err != nil {
		b.Fatal(err)
	}

	if err := vm.AttachROM(romloader.NewLoader(romFile)); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := vm.Step(); err != nil {
			b.Fatal(err)
		}
	}
}
