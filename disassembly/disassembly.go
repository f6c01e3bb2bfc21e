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

// Package disassembly turns CHIP-8 opcodes into readable assembly. Mnemonics
// follow the convention established by the Cowgod reference document.
package disassembly

import (
	"fmt"
	"io"

	"github.com/hexbus/gopher8/curated"
	"github.com/hexbus/gopher8/hardware/memory"
	"github.com/hexbus/gopher8/romloader"
)

// Entry is a single disassembled instruction.
type Entry struct {
	Address  uint16
	Opcode   uint16
	Operator string
	Operand  string
}

func (e Entry) String() string {
	if e.Operand == "" {
		return e.Operator
	}
	return fmt.Sprintf("%s %s", e.Operator, e.Operand)
}

// Disassemble a single opcode.
func Disassemble(address uint16, opcode uint16) Entry {
	e := Entry{
		Address: address,
		Opcode:  opcode,
	}

	x := (opcode >> 8) & 0x0f
	y := (opcode >> 4) & 0x0f
	n := opcode & 0x0f
	nn := opcode & 0xff
	nnn := opcode & 0x0fff

	switch opcode & 0xf000 {
	case 0x0000:
		switch opcode {
		case 0x00e0:
			e.Operator = "CLS"
		case 0x00ee:
			e.Operator = "RET"
		default:
			e.Operator = "SYS"
			e.Operand = fmt.Sprintf("0x%03x", nnn)
		}
	case 0x1000:
		e.Operator = "JP"
		e.Operand = fmt.Sprintf("0x%03x", nnn)
	case 0x2000:
		e.Operator = "CALL"
		e.Operand = fmt.Sprintf("0x%03x", nnn)
	case 0x3000:
		e.Operator = "SE"
		e.Operand = fmt.Sprintf("V%X, 0x%02x", x, nn)
	case 0x4000:
		e.Operator = "SNE"
		e.Operand = fmt.Sprintf("V%X, 0x%02x", x, nn)
	case 0x5000:
		if n != 0 {
			break
		}
		e.Operator = "SE"
		e.Operand = fmt.Sprintf("V%X, V%X", x, y)
	case 0x6000:
		e.Operator = "LD"
		e.Operand = fmt.Sprintf("V%X, 0x%02x", x, nn)
	case 0x7000:
		e.Operator = "ADD"
		e.Operand = fmt.Sprintf("V%X, 0x%02x", x, nn)
	case 0x8000:
		switch n {
		case 0x00:
			e.Operator = "LD"
		case 0x01:
			e.Operator = "OR"
		case 0x02:
			e.Operator = "AND"
		case 0x03:
			e.Operator = "XOR"
		case 0x04:
			e.Operator = "ADD"
		case 0x05:
			e.Operator = "SUB"
		case 0x06:
			e.Operator = "SHR"
		case 0x07:
			e.Operator = "SUBN"
		case 0x0e:
			e.Operator = "SHL"
		}
		if e.Operator != "" {
			e.Operand = fmt.Sprintf("V%X, V%X", x, y)
		}
	case 0x9000:
		if n != 0 {
			break
		}
		e.Operator = "SNE"
		e.Operand = fmt.Sprintf("V%X, V%X", x, y)
	case 0xa000:
		e.Operator = "LD"
		e.Operand = fmt.Sprintf("I, 0x%03x", nnn)
	case 0xb000:
		e.Operator = "JP"
		e.Operand = fmt.Sprintf("V0, 0x%03x", nnn)
	case 0xc000:
		e.Operator = "RND"
		e.Operand = fmt.Sprintf("V%X, 0x%02x", x, nn)
	case 0xd000:
		e.Operator = "DRW"
		e.Operand = fmt.Sprintf("V%X, V%X, %#x", x, y, n)
	case 0xe000:
		switch nn {
		case 0x9e:
			e.Operator = "SKP"
			e.Operand = fmt.Sprintf("V%X", x)
		case 0xa1:
			e.Operator = "SKNP"
			e.Operand = fmt.Sprintf("V%X", x)
		}
	case 0xf000:
		switch nn {
		case 0x07:
			e.Operator = "LD"
			e.Operand = fmt.Sprintf("V%X, DT", x)
		case 0x0a:
			e.Operator = "LD"
			e.Operand = fmt.Sprintf("V%X, K", x)
		case 0x15:
			e.Operator = "LD"
			e.Operand = fmt.Sprintf("DT, V%X", x)
		case 0x18:
			e.Operator = "LD"
			e.Operand = fmt.Sprintf("ST, V%X", x)
		case 0x1e:
			e.Operator = "ADD"
			e.Operand = fmt.Sprintf("I, V%X", x)
		case 0x29:
			e.Operator = "LD"
			e.Operand = fmt.Sprintf("F, V%X", x)
		case 0x33:
			e.Operator = "LD"
			e.Operand = fmt.Sprintf("B, V%X", x)
		case 0x55:
			e.Operator = "LD"
			e.Operand = fmt.Sprintf("[I], V%X", x)
		case 0x65:
			e.Operator = "LD"
			e.Operand = fmt.Sprintf("V%X, [I]", x)
		}
	}

	if e.Operator == "" {
		e.Operator = "???"
	}

	return e
}

// Disassembly of an entire ROM.
type Disassembly struct {
	Entries []Entry
}

// FromLoader disassembles the ROM referenced by the Loader.
func FromLoader(ld romloader.Loader) (*Disassembly, error) {
	if err := ld.Load(); err != nil {
		return nil, curated.Errorf("disassembly: %v", err)
	}

	dsm := &Disassembly{}

	for i := 0; i+1 < len(ld.Data); i += 2 {
		address := uint16(memory.EntryAddr + i)
		opcode := uint16(ld.Data[i])<<8 | uint16(ld.Data[i+1])
		dsm.Entries = append(dsm.Entries, Disassemble(address, opcode))
	}

	return dsm, nil
}

// WriteAttr controls how the disassembly is written.
type WriteAttr struct {
	// include the raw opcode bytes in the output
	ByteCode bool
}

// Write the disassembly to the supplied io.Writer.
func (dsm *Disassembly) Write(output io.Writer, attr WriteAttr) error {
	for _, e := range dsm.Entries {
		var err error
		if attr.ByteCode {
			_, err = fmt.Fprintf(output, "%#04x\t%04x\t%s\n", e.Address, e.Opcode, e.String())
		} else {
			_, err = fmt.Fprintf(output, "%#04x\t%s\n", e.Address, e.String())
		}
		if err != nil {
			return curated.Errorf("disassembly: %v", err)
		}
	}
	return nil
}
