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

package cpu_test

import (
	"testing"

	"github.com/hexbus/gopher8/curated"
	"github.com/hexbus/gopher8/hardware/cpu"
	"github.com/hexbus/gopher8/hardware/keypad"
	"github.com/hexbus/gopher8/hardware/memory"
	"github.com/hexbus/gopher8/hardware/timer"
	"github.com/hexbus/gopher8/hardware/video"
	"github.com/hexbus/gopher8/prefs"
	"github.com/hexbus/gopher8/test"
)

type testMachine struct {
	mem *memory.Memory
	vid *video.Video
	tmr *timer.Timers
	kpd *keypad.Keypad
	cpu *cpu.CPU
}

func newTestMachine(t *testing.T, program []uint8) *testMachine {
	t.Helper()

	mc := &testMachine{
		mem: memory.NewMemory(),
		vid: video.NewVideo(),
		tmr: timer.NewTimers(),
		kpd: keypad.NewKeypad(),
	}
	mc.cpu = cpu.NewCPU(mc.mem, mc.vid, mc.tmr, mc.kpd)

	if err := mc.mem.Load(memory.EntryAddr, program); err != nil {
		t.Fatal(err)
	}

	return mc
}

func (mc *testMachine) step(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := mc.cpu.ExecuteInstruction(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestRegisterOps(t *testing.T) {
	mc := newTestMachine(t, []uint8{
		0x60, 0x0f, // LD V0, 15
		0x81, 0x00, // LD V1, V0
		0x70, 0x0a, // ADD V0, 10
		0x80, 0x11, // OR V0, V1
	})

	mc.step(t, 1)
	test.Equate(t, mc.cpu.V[0], 15)

	mc.step(t, 1)
	test.Equate(t, mc.cpu.V[1], 15)

	mc.step(t, 1)
	test.Equate(t, mc.cpu.V[0], 25)

	mc.step(t, 1)
	test.Equate(t, mc.cpu.V[0], 31)
}

func TestArithmeticFlags(t *testing.T) {
	mc := newTestMachine(t, []uint8{
		0x60, 0xff, // LD V0, 255
		0x61, 0x02, // LD V1, 2
		0x80, 0x14, // ADD V0, V1 (carry)
		0x80, 0x15, // SUB V0, V1 (borrow)
	})

	mc.step(t, 3)
	test.Equate(t, mc.cpu.V[0], 1)
	test.Equate(t, mc.cpu.V[0x0f], 1)

	mc.step(t, 1)
	test.Equate(t, mc.cpu.V[0], 255)
	test.Equate(t, mc.cpu.V[0x0f], 0)
}

func TestShift(t *testing.T) {
	mc := newTestMachine(t, []uint8{
		0x60, 0x81, // LD V0, 0x81
		0x80, 0x16, // SHR V0
		0x80, 0x1e, // SHL V0
	})

	mc.step(t, 2)
	test.Equate(t, mc.cpu.V[0], 0x40)
	test.Equate(t, mc.cpu.V[0x0f], 1)

	mc.step(t, 1)
	test.Equate(t, mc.cpu.V[0], 0x80)
	test.Equate(t, mc.cpu.V[0x0f], 0)
}

func TestShiftQuirk(t *testing.T) {
	mc := newTestMachine(t, []uint8{
		0x60, 0x00, // LD V0, 0
		0x61, 0x81, // LD V1, 0x81
		0x80, 0x16, // SHR V0, V1
	})

	var q prefs.Bool
	if err := q.Set(true); err != nil {
		t.Fatal(err)
	}
	mc.cpu.ShiftUsesVY = &q

	mc.step(t, 3)
	test.Equate(t, mc.cpu.V[0], 0x40)
	test.Equate(t, mc.cpu.V[0x0f], 1)
	test.Equate(t, mc.cpu.V[1], 0x81)
}

func TestSkips(t *testing.T) {
	mc := newTestMachine(t, []uint8{
		0x60, 0x0a, // LD V0, 10
		0x30, 0x0a, // SE V0, 10 (skips)
		0x00, 0x00,
		0x40, 0x0a, // SNE V0, 10 (does not skip)
		0x61, 0x0a, // LD V1, 10
		0x50, 0x10, // SE V0, V1 (skips)
		0x00, 0x00,
		0x90, 0x10, // SNE V0, V1 (does not skip)
		0x62, 0x01, // LD V2, 1
	})

	mc.step(t, 7)
	test.Equate(t, mc.cpu.V[2], 1)
	test.Equate(t, mc.cpu.PC, memory.EntryAddr+18)
}

func TestSubroutine(t *testing.T) {
	mc := newTestMachine(t, []uint8{
		0x22, 0x06, // CALL 0x206
		0x60, 0xaa, // LD V0, 0xaa
		0x00, 0x00,
		0x61, 0xbb, // LD V1, 0xbb
		0x00, 0xee, // RET
	})

	mc.step(t, 1)
	test.Equate(t, mc.cpu.PC, 0x206)
	test.Equate(t, mc.cpu.SP, 1)

	mc.step(t, 2)
	test.Equate(t, mc.cpu.PC, 0x202)
	test.Equate(t, mc.cpu.SP, 0)
	test.Equate(t, mc.cpu.V[1], 0xbb)

	mc.step(t, 1)
	test.Equate(t, mc.cpu.V[0], 0xaa)
}

func TestStackErrors(t *testing.T) {
	// RET with an empty stack
	mc := newTestMachine(t, []uint8{0x00, 0xee})
	err := mc.cpu.ExecuteInstruction()
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, cpu.StackUnderflow))

	// CALL that never returns
	mc = newTestMachine(t, []uint8{0x22, 0x00}) // CALL 0x200
	var err2 error
	for i := 0; i < cpu.StackDepth; i++ {
		err2 = mc.cpu.ExecuteInstruction()
		test.ExpectedSuccess(t, err2)
	}
	err2 = mc.cpu.ExecuteInstruction()
	test.ExpectedFailure(t, err2)
	test.ExpectedSuccess(t, curated.Is(err2, cpu.StackOverflow))
}

func TestDraw(t *testing.T) {
	mc := newTestMachine(t, []uint8{
		0xa2, 0x0a, // LD I, 0x20a
		0x60, 0x00, // LD V0, 0
		0xd0, 0x01, // DRW V0, V0, 1
		0xd0, 0x01, // DRW V0, V0, 1 (erases; collision)
		0x00, 0x00,
		0xff, // sprite data
	})

	mc.step(t, 3)
	test.Equate(t, mc.vid.Pixel(0, 0), true)
	test.Equate(t, mc.cpu.V[0x0f], 0)

	mc.step(t, 1)
	test.Equate(t, mc.vid.Pixel(0, 0), false)
	test.Equate(t, mc.cpu.V[0x0f], 1)
}

func TestKeypadWait(t *testing.T) {
	mc := newTestMachine(t, []uint8{
		0xf0, 0x0a, // LD V0, K
	})

	// no key held. the instruction blocks by rewinding the program counter
	mc.step(t, 1)
	test.Equate(t, mc.cpu.PC, memory.EntryAddr)

	test.ExpectedSuccess(t, mc.kpd.Set(0x0b, true))
	mc.step(t, 1)
	test.Equate(t, mc.cpu.PC, memory.EntryAddr+2)
	test.Equate(t, mc.cpu.V[0], 0x0b)
}

func TestBCD(t *testing.T) {
	mc := newTestMachine(t, []uint8{
		0x60, 0xfe, // LD V0, 254
		0xa3, 0x00, // LD I, 0x300
		0xf0, 0x33, // LD B, V0
	})

	mc.step(t, 3)

	v, err := mc.mem.Read(0x300)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 2)
	v, err = mc.mem.Read(0x301)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 5)
	v, err = mc.mem.Read(0x302)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 4)
}

func TestRegisterStoreRestore(t *testing.T) {
	mc := newTestMachine(t, []uint8{
		0x60, 0x11, // LD V0, 0x11
		0x61, 0x22, // LD V1, 0x22
		0x62, 0x33, // LD V2, 0x33
		0xa3, 0x00, // LD I, 0x300
		0xf2, 0x55, // LD [I], V2
		0x60, 0x00, // LD V0, 0
		0x61, 0x00, // LD V1, 0
		0x62, 0x00, // LD V2, 0
		0xf2, 0x65, // LD V2, [I]
	})

	mc.step(t, 9)
	test.Equate(t, mc.cpu.V[0], 0x11)
	test.Equate(t, mc.cpu.V[1], 0x22)
	test.Equate(t, mc.cpu.V[2], 0x33)

	// I register is unchanged without the increment quirk
	test.Equate(t, mc.cpu.I, 0x300)
}

func TestIllegalOpcode(t *testing.T) {
	mc := newTestMachine(t, []uint8{0x80, 0x08})
	err := mc.cpu.ExecuteInstruction()
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, cpu.IllegalOpcode))

	// SYS is not supported
	mc = newTestMachine(t, []uint8{0x01, 0x23})
	err = mc.cpu.ExecuteInstruction()
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, cpu.IllegalOpcode))
}
