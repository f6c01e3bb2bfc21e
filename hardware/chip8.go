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

// Package hardware assembles the components of the CHIP-8 machine into a
// single Chip8 type. Memory, CPU, framebuffer, timers and keypad are in their
// own sub-packages.
package hardware

import (
	"fmt"
	"strings"

	"github.com/hexbus/gopher8/curated"
	"github.com/hexbus/gopher8/hardware/cpu"
	"github.com/hexbus/gopher8/hardware/keypad"
	"github.com/hexbus/gopher8/hardware/memory"
	"github.com/hexbus/gopher8/hardware/screen"
	"github.com/hexbus/gopher8/hardware/timer"
	"github.com/hexbus/gopher8/hardware/video"
	"github.com/hexbus/gopher8/romloader"
)

// Chip8 is the complete CHIP-8 machine.
type Chip8 struct {
	CPU    *cpu.CPU
	Mem    *memory.Memory
	Video  *video.Video
	Timers *timer.Timers
	Keypad *keypad.Keypad

	Prefs *Preferences

	Scr *screen.Screen
}

// NewChip8 creates a new instance of the CHIP-8 machine, attached to the
// supplied Screen.
func NewChip8(scr *screen.Screen) (*Chip8, error) {
	vm := &Chip8{
		Mem:    memory.NewMemory(),
		Video:  video.NewVideo(),
		Timers: timer.NewTimers(),
		Keypad: keypad.NewKeypad(),
		Scr:    scr,
	}

	vm.CPU = cpu.NewCPU(vm.Mem, vm.Video, vm.Timers, vm.Keypad)

	var err error
	vm.Prefs, err = NewPreferences()
	if err != nil {
		return nil, err
	}

	vm.CPU.ShiftUsesVY = &vm.Prefs.ShiftUsesVY
	vm.CPU.IndexIncrement = &vm.Prefs.IndexIncrement

	return vm, nil
}

// AttachROM loads the ROM data referenced by the Loader into memory and
// resets the machine.
func (vm *Chip8) AttachROM(ld romloader.Loader) error {
	if err := ld.Load(); err != nil {
		return err
	}
	vm.Reset()
	return vm.Mem.Load(memory.EntryAddr, ld.Data)
}

// Reset the machine. note that the contents of memory are also reset, so a
// ROM must be reattached after a call to Reset().
func (vm *Chip8) Reset() {
	vm.Mem.Reset()
	vm.Video.Clear()
	vm.Timers.Reset()
	vm.Keypad.Reset()
	vm.CPU.Reset()
	vm.Scr.Reset()
}

// SetRandSeed reseeds the machine's random number source.
func (vm *Chip8) SetRandSeed(seed int64) {
	vm.CPU.SetRandSeed(seed)
}

// Step executes a single instruction.
func (vm *Chip8) Step() error {
	return vm.CPU.ExecuteInstruction()
}

// EndFrame ticks the timers and pushes the framebuffer and buzzer state to
// the Screen. called sixty times per emulated second.
func (vm *Chip8) EndFrame() error {
	vm.Timers.Tick()
	return vm.Scr.NewFrame(vm.Video.Framebuffer(), vm.Timers.Buzzer())
}

// InstructionsPerFrame returns the number of instructions to execute between
// frames, derived from the clock speed preference.
func (vm *Chip8) InstructionsPerFrame() int {
	ipf := vm.Prefs.ClockSpeed.Get().(int) / screen.FramesPerSecond
	if ipf < 1 {
		ipf = 1
	}
	return ipf
}

// Run the machine until the continueCheck callback returns false or an error
// occurs. continueCheck is called once per frame; a nil continueCheck will
// run the machine forever.
func (vm *Chip8) Run(continueCheck func() (bool, error)) error {
	if continueCheck == nil {
		continueCheck = func() (bool, error) { return true, nil }
	}

	continueEmulation, err := continueCheck()
	if err != nil {
		return curated.Errorf("hardware: %v", err)
	}

	for continueEmulation {
		ipf := vm.InstructionsPerFrame()
		for i := 0; i < ipf; i++ {
			if err := vm.Step(); err != nil {
				return err
			}
		}

		if err := vm.EndFrame(); err != nil {
			return err
		}

		continueEmulation, err = continueCheck()
		if err != nil {
			return curated.Errorf("hardware: %v", err)
		}
	}

	return nil
}

// RunForFrames runs the machine for the specified number of frames. used by
// the regression system where a fixed amount of emulation is required.
func (vm *Chip8) RunForFrames(numFrames int, continueCheck func() (bool, error)) error {
	if numFrames <= 0 {
		return nil
	}

	target := vm.Scr.FrameNum() + numFrames

	return vm.Run(func() (bool, error) {
		if vm.Scr.FrameNum() >= target {
			return false, nil
		}
		if continueCheck == nil {
			return true, nil
		}
		return continueCheck()
	})
}

func (vm *Chip8) String() string {
	s := strings.Builder{}
	s.WriteString(vm.CPU.String())
	s.WriteString(fmt.Sprintf("\nDT=%#02x ST=%#02x", vm.Timers.Delay, vm.Timers.Sound))
	return s.String()
}
