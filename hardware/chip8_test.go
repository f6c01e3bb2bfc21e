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
	"os"
	"path/filepath"
	"testing"

	"github.com/hexbus/gopher8/hardware"
	"github.com/hexbus/gopher8/hardware/memory"
	"github.com/hexbus/gopher8/hardware/screen"
	"github.com/hexbus/gopher8/romloader"
	"github.com/hexbus/gopher8/test"
)

func newTestVM(t *testing.T, program []uint8) *hardware.Chip8 {
	t.Helper()

	scr, err := screen.NewScreen()
	if err != nil {
		t.Fatal(err)
	}
	scr.SetFPSCap(false)

	vm, err := hardware.NewChip8(scr)
	if err != nil {
		t.Fatal(err)
	}

	pth := filepath.Join(t.TempDir(), "test.ch8")
	if err := os.WriteFile(pth, program, 0644); err != nil {
		t.Fatal(err)
	}

	ld := romloader.NewLoader(pth)
	if err := vm.AttachROM(ld); err != nil {
		t.Fatal(err)
	}

	return vm
}

func TestAttachROM(t *testing.T) {
	vm := newTestVM(t, []uint8{0x60, 0x0f})

	test.Equate(t, vm.CPU.PC, memory.EntryAddr)

	v, err := vm.Mem.Read(memory.EntryAddr)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0x60)
}

func TestRunForFrames(t *testing.T) {
	// an infinite loop. JP 0x200
	vm := newTestVM(t, []uint8{0x12, 0x00})

	test.ExpectedSuccess(t, vm.RunForFrames(10, nil))
	test.Equate(t, vm.Scr.FrameNum(), 10)
}

func TestTimersTickPerFrame(t *testing.T) {
	vm := newTestVM(t, []uint8{
		0x60, 0x14, // LD V0, 20
		0xf0, 0x15, // LD DT, V0
		0x12, 0x04, // JP 0x204
	})

	test.ExpectedSuccess(t, vm.RunForFrames(5, nil))

	// the delay timer decrements once per frame
	test.Equate(t, vm.Timers.Delay, 15)
}
