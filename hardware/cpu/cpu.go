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

// Package cpu implements the CHIP-8 processor. The CPU fetches, decodes and
// executes one 16-bit opcode per call to ExecuteInstruction().
package cpu

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/hexbus/gopher8/curated"
	"github.com/hexbus/gopher8/hardware/keypad"
	"github.com/hexbus/gopher8/hardware/memory"
	"github.com/hexbus/gopher8/hardware/timer"
	"github.com/hexbus/gopher8/hardware/video"
	"github.com/hexbus/gopher8/prefs"
)

// NumRegisters is the number of V registers.
const NumRegisters = 16

// StackDepth is the number of return addresses the stack can hold.
const StackDepth = 16

// sentinel errors returned by the cpu package.
const (
	IllegalOpcode  = "cpu: illegal opcode (%#04x)"
	IllegalAddress = "cpu: illegal address (%#04x)"
	StackOverflow  = "cpu: stack overflow"
	StackUnderflow = "cpu: stack underflow"
)

// CPU implements the CHIP-8 processor.
type CPU struct {
	PC    uint16
	I     uint16
	V     [NumRegisters]uint8
	SP    uint8
	Stack [StackDepth]uint16

	// address and opcode of the most recently executed instruction. used
	// for instruction traces in the debugger
	LastPC     uint16
	LastOpcode uint16

	// quirk switches. the emulated behaviour of a handful of instructions
	// varies between historical interpreters. set by the hardware package
	// from the saved preferences
	ShiftUsesVY    *prefs.Bool
	IndexIncrement *prefs.Bool

	mem *memory.Memory
	vid *video.Video
	tmr *timer.Timers
	kpd *keypad.Keypad

	rnd *rand.Rand
}

// NewCPU is the preferred method of initialisation for the CPU type.
func NewCPU(mem *memory.Memory, vid *video.Video, tmr *timer.Timers, kpd *keypad.Keypad) *CPU {
	cpu := &CPU{
		mem: mem,
		vid: vid,
		tmr: tmr,
		kpd: kpd,
	}
	cpu.rnd = rand.New(rand.NewSource(0))
	cpu.Reset()
	return cpu
}

// Reset the CPU. execution restarts at the program entry address.
func (cpu *CPU) Reset() {
	cpu.PC = memory.EntryAddr
	cpu.I = 0
	cpu.SP = 0
	for i := range cpu.V {
		cpu.V[i] = 0
	}
	for i := range cpu.Stack {
		cpu.Stack[i] = 0
	}
	cpu.LastPC = 0
	cpu.LastOpcode = 0
}

// SetRandSeed reseeds the random number source used by the RND instruction.
// reseeding with a fixed value makes execution deterministic, which the
// regression tests rely on.
func (cpu *CPU) SetRandSeed(seed int64) {
	cpu.rnd = rand.New(rand.NewSource(seed))
}

func (cpu *CPU) quirk(p *prefs.Bool) bool {
	if p == nil {
		return false
	}
	return p.Get().(bool)
}

// ExecuteInstruction fetches, decodes and executes the instruction at the
// current program counter.
func (cpu *CPU) ExecuteInstruction() error {
	opcode, err := cpu.mem.ReadOpcode(cpu.PC)
	if err != nil {
		return err
	}

	cpu.LastPC = cpu.PC
	cpu.LastOpcode = opcode
	cpu.PC += 2

	// opcode decomposition
	x := uint8(opcode>>8) & 0x0f
	y := uint8(opcode>>4) & 0x0f
	n := uint8(opcode) & 0x0f
	nn := uint8(opcode)
	nnn := opcode & 0x0fff

	switch opcode & 0xf000 {
	case 0x0000:
		switch opcode {
		case 0x0000:
			// treat the null opcode as a no-op. freshly zeroed memory is
			// full of them
		case 0x00e0:
			cpu.vid.Clear()
		case 0x00ee:
			if cpu.SP == 0 {
				return curated.Errorf(StackUnderflow)
			}
			cpu.SP--
			cpu.PC = cpu.Stack[cpu.SP]
		default:
			// SYS. jumps to a machine code routine on the original COSMAC
			// VIP. there is no machine code to jump to here
			return curated.Errorf(IllegalOpcode, opcode)
		}

	case 0x1000:
		cpu.PC = nnn

	case 0x2000:
		if int(cpu.SP) >= StackDepth {
			return curated.Errorf(StackOverflow)
		}
		cpu.Stack[cpu.SP] = cpu.PC
		cpu.SP++
		cpu.PC = nnn

	case 0x3000:
		if cpu.V[x] == nn {
			cpu.PC += 2
		}

	case 0x4000:
		if cpu.V[x] != nn {
			cpu.PC += 2
		}

	case 0x5000:
		if n != 0 {
			return curated.Errorf(IllegalOpcode, opcode)
		}
		if cpu.V[x] == cpu.V[y] {
			cpu.PC += 2
		}

	case 0x6000:
		cpu.V[x] = nn

	case 0x7000:
		cpu.V[x] += nn

	case 0x8000:
		if err := cpu.executeALU(opcode, x, y, n); err != nil {
			return err
		}

	case 0x9000:
		if n != 0 {
			return curated.Errorf(IllegalOpcode, opcode)
		}
		if cpu.V[x] != cpu.V[y] {
			cpu.PC += 2
		}

	case 0xa000:
		cpu.I = nnn

	case 0xb000:
		a := uint16(cpu.V[0]) + nnn
		if a >= memory.Size {
			return curated.Errorf(IllegalAddress, a)
		}
		cpu.PC = a

	case 0xc000:
		if nn == 0 {
			cpu.V[x] = 0
		} else {
			cpu.V[x] = uint8(cpu.rnd.Intn(256)) % nn
		}

	case 0xd000:
		sprite, err := cpu.mem.Window(cpu.I, int(n))
		if err != nil {
			return err
		}
		if cpu.vid.DrawSprite(cpu.V[x], cpu.V[y], sprite) {
			cpu.V[0x0f] = 1
		} else {
			cpu.V[0x0f] = 0
		}

	case 0xe000:
		held, err := cpu.kpd.IsPressed(cpu.V[x])
		if err != nil {
			return err
		}
		switch nn {
		case 0x9e:
			if held {
				cpu.PC += 2
			}
		case 0xa1:
			if !held {
				cpu.PC += 2
			}
		default:
			return curated.Errorf(IllegalOpcode, opcode)
		}

	case 0xf000:
		if err := cpu.executeMisc(opcode, x, nn); err != nil {
			return err
		}
	}

	return nil
}

// the 8XYx group of register-to-register instructions.
func (cpu *CPU) executeALU(opcode uint16, x uint8, y uint8, n uint8) error {
	switch n {
	case 0x00:
		cpu.V[x] = cpu.V[y]
	case 0x01:
		cpu.V[x] |= cpu.V[y]
	case 0x02:
		cpu.V[x] &= cpu.V[y]
	case 0x03:
		cpu.V[x] ^= cpu.V[y]
	case 0x04:
		sum := uint16(cpu.V[x]) + uint16(cpu.V[y])
		cpu.V[x] = uint8(sum)
		if sum > 0xff {
			cpu.V[0x0f] = 1
		} else {
			cpu.V[0x0f] = 0
		}
	case 0x05:
		borrow := cpu.V[y] > cpu.V[x]
		cpu.V[x] -= cpu.V[y]
		if borrow {
			cpu.V[0x0f] = 0
		} else {
			cpu.V[0x0f] = 1
		}
	case 0x06:
		src := cpu.V[x]
		if cpu.quirk(cpu.ShiftUsesVY) {
			src = cpu.V[y]
		}
		cpu.V[x] = src >> 1
		cpu.V[0x0f] = src & 0x01
	case 0x07:
		borrow := cpu.V[x] > cpu.V[y]
		cpu.V[x] = cpu.V[y] - cpu.V[x]
		if borrow {
			cpu.V[0x0f] = 0
		} else {
			cpu.V[0x0f] = 1
		}
	case 0x0e:
		src := cpu.V[x]
		if cpu.quirk(cpu.ShiftUsesVY) {
			src = cpu.V[y]
		}
		cpu.V[x] = src << 1
		cpu.V[0x0f] = src >> 7
	default:
		return curated.Errorf(IllegalOpcode, opcode)
	}
	return nil
}

// the FXxx group of instructions.
func (cpu *CPU) executeMisc(opcode uint16, x uint8, nn uint8) error {
	switch nn {
	case 0x07:
		cpu.V[x] = cpu.tmr.Delay

	case 0x0a:
		key, ok := cpu.kpd.FirstPressed()
		if !ok {
			// block by executing this instruction again next cycle
			cpu.PC -= 2
			return nil
		}
		cpu.V[x] = key

	case 0x15:
		cpu.tmr.Delay = cpu.V[x]

	case 0x18:
		cpu.tmr.Sound = cpu.V[x]

	case 0x1e:
		cpu.I += uint16(cpu.V[x])

	case 0x29:
		cpu.I = memory.FontAddress(cpu.V[x])

	case 0x33:
		v := cpu.V[x]
		if err := cpu.mem.Write(cpu.I, v/100); err != nil {
			return err
		}
		if err := cpu.mem.Write(cpu.I+1, (v/10)%10); err != nil {
			return err
		}
		if err := cpu.mem.Write(cpu.I+2, v%10); err != nil {
			return err
		}

	case 0x55:
		for i := uint16(0); i <= uint16(x); i++ {
			if err := cpu.mem.Write(cpu.I+i, cpu.V[i]); err != nil {
				return err
			}
		}
		if cpu.quirk(cpu.IndexIncrement) {
			cpu.I += uint16(x) + 1
		}

	case 0x65:
		for i := uint16(0); i <= uint16(x); i++ {
			v, err := cpu.mem.Read(cpu.I + i)
			if err != nil {
				return err
			}
			cpu.V[i] = v
		}
		if cpu.quirk(cpu.IndexIncrement) {
			cpu.I += uint16(x) + 1
		}

	default:
		return curated.Errorf(IllegalOpcode, opcode)
	}

	return nil
}

func (cpu *CPU) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("PC=%#04x I=%#04x SP=%d\n", cpu.PC, cpu.I, cpu.SP))
	for i := range cpu.V {
		s.WriteString(fmt.Sprintf("V%X=%#02x", i, cpu.V[i]))
		if i%4 == 3 {
			s.WriteString("\n")
		} else {
			s.WriteString(" ")
		}
	}
	return strings.TrimSuffix(s.String(), "\n")
}
