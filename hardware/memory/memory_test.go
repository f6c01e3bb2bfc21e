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

package memory_test

import (
	"testing"

	"github.com/hexbus/gopher8/curated"
	"github.com/hexbus/gopher8/hardware/memory"
	"github.com/hexbus/gopher8/test"
)

func TestLoad(t *testing.T) {
	mem := memory.NewMemory()

	test.ExpectedSuccess(t, mem.Load(memory.EntryAddr, []uint8{1, 2, 3, 4}))

	v, err := mem.Read(memory.EntryAddr + 3)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 4)

	// loading past the end of memory should fail
	err = mem.Load(memory.Size-2, []uint8{1, 2, 3, 4})
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, memory.OutOfMemory))
}

func TestFont(t *testing.T) {
	mem := memory.NewMemory()

	// first byte of the '0' sprite
	v, err := mem.Read(memory.FontAddress(0))
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0xf0)

	// first byte of the 'F' sprite
	v, err = mem.Read(memory.FontAddress(0x0f))
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0xf0)
	test.Equate(t, memory.FontAddress(0x0f), 75)
}

func TestReadOpcode(t *testing.T) {
	mem := memory.NewMemory()

	test.ExpectedSuccess(t, mem.Load(memory.EntryAddr, []uint8{0x60, 0x0f}))

	op, err := mem.ReadOpcode(memory.EntryAddr)
	test.ExpectedSuccess(t, err)
	test.Equate(t, op, 0x600f)

	// fetching from the top of memory should fail
	_, err = mem.ReadOpcode(memory.Size - 1)
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, memory.OutOfMemory))
}

func TestReset(t *testing.T) {
	mem := memory.NewMemory()
	test.ExpectedSuccess(t, mem.Write(memory.EntryAddr, 0xff))
	mem.Reset()

	v, err := mem.Read(memory.EntryAddr)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0)

	// font is reinstalled on reset
	v, err = mem.Read(0)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0xf0)
}
