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

// Package memory implements the 4KiB address space of the CHIP-8 machine.
// The first 512 bytes are reserved for the interpreter; the only thing we
// keep there is the hexadecimal character font, at the very bottom of memory.
// Programs are loaded at and begin execution from address 0x200.
package memory

import (
	"github.com/hexbus/gopher8/curated"
)

// Size is the extent of the CHIP-8 address space in bytes.
const Size = 4096

// EntryAddr is the address at which programs are loaded and begin execution.
const EntryAddr = 0x200

// each character in the font is five bytes tall.
const charSize = 5

// the hexadecimal font. characters 0 to F.
var chars = [charSize * 16]uint8{
	0xf0, 0x90, 0x90, 0x90, 0xf0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xf0, 0x10, 0xf0, 0x80, 0xf0, // 2
	0xf0, 0x10, 0xf0, 0x10, 0xf0, // 3
	0x90, 0x90, 0xf0, 0x10, 0x10, // 4
	0xf0, 0x80, 0xf0, 0x10, 0xf0, // 5
	0xf0, 0x80, 0xf0, 0x90, 0xf0, // 6
	0xf0, 0x10, 0x20, 0x40, 0x40, // 7
	0xf0, 0x90, 0xf0, 0x90, 0xf0, // 8
	0xf0, 0x90, 0xf0, 0x10, 0xf0, // 9
	0xf0, 0x90, 0xf0, 0x90, 0x90, // A
	0xe0, 0x90, 0xe0, 0x90, 0xe0, // B
	0xf0, 0x80, 0x80, 0x80, 0xf0, // C
	0xe0, 0x90, 0x90, 0x90, 0xe0, // D
	0xf0, 0x80, 0xf0, 0x80, 0xf0, // E
	0xf0, 0x80, 0xf0, 0x80, 0x80, // F
}

// sentinel errors returned by the memory package.
const (
	OutOfMemory    = "memory: out of memory (%#04x)"
	IllegalAddress = "memory: illegal address (%#04x)"
)

// Memory is the CHIP-8 RAM.
type Memory struct {
	ram [Size]uint8
}

// NewMemory is the preferred method of initialisation for the Memory type.
func NewMemory() *Memory {
	mem := &Memory{}
	mem.Reset()
	return mem
}

// Reset the contents of RAM and reinstall the character font.
func (mem *Memory) Reset() {
	for i := range mem.ram {
		mem.ram[i] = 0
	}
	copy(mem.ram[:len(chars)], chars[:])
}

// Load program data into RAM at the specified offset.
func (mem *Memory) Load(offset uint16, data []uint8) error {
	if int(offset)+len(data) > Size {
		return curated.Errorf(OutOfMemory, len(data))
	}
	copy(mem.ram[offset:int(offset)+len(data)], data)
	return nil
}

// Read the byte at the specified address.
func (mem *Memory) Read(address uint16) (uint8, error) {
	if address >= Size {
		return 0, curated.Errorf(IllegalAddress, address)
	}
	return mem.ram[address], nil
}

// Write a byte to the specified address.
func (mem *Memory) Write(address uint16, data uint8) error {
	if address >= Size {
		return curated.Errorf(IllegalAddress, address)
	}
	mem.ram[address] = data
	return nil
}

// ReadOpcode reads the 16-bit opcode at the specified address. opcodes are
// stored big-endian (the high byte at the lower address).
func (mem *Memory) ReadOpcode(address uint16) (uint16, error) {
	if address+1 >= Size {
		return 0, curated.Errorf(OutOfMemory, address)
	}
	return uint16(mem.ram[address])<<8 | uint16(mem.ram[address+1]), nil
}

// Window returns a copy of the area of RAM starting at the specified
// address. used for sprite drawing and for memory dumps in the debugger.
func (mem *Memory) Window(address uint16, length int) ([]uint8, error) {
	if int(address)+length > Size {
		return nil, curated.Errorf(IllegalAddress, address)
	}
	w := make([]uint8, length)
	copy(w, mem.ram[address:int(address)+length])
	return w, nil
}

// FontAddress returns the address of the font sprite for the supplied
// character.
func FontAddress(char uint8) uint16 {
	return uint16(char) * charSize
}
