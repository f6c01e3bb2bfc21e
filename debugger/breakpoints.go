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

// breakpoints are used to halt execution when the program counter reaches a
// specific address.

package debugger

import (
	"github.com/hexbus/gopher8/curated"
	"github.com/hexbus/gopher8/debugger/terminal"
	"github.com/hexbus/gopher8/hardware/memory"
)

// breakpoints keeps track of all the currently defined breakers.
type breakpoints struct {
	dbg    *Debugger
	breaks []uint16
}

// newBreakpoints is the preferred method of initialisation for breakpoints.
func newBreakpoints(dbg *Debugger) *breakpoints {
	return &breakpoints{
		dbg:    dbg,
		breaks: make([]uint16, 0, 10),
	}
}

// add a new breakpoint. the address must be inside the machine's memory and
// not already have a breakpoint attached.
func (bp *breakpoints) add(address uint16) error {
	if int(address) >= memory.Size {
		return curated.Errorf("breakpoint outside of memory (%#04x)", address)
	}

	for _, b := range bp.breaks {
		if b == address {
			return curated.Errorf("breakpoint already exists (%#04x)", address)
		}
	}

	bp.breaks = append(bp.breaks, address)
	return nil
}

// drop the numbered breakpoint. the number is the position in the list
// reported by the list() function.
func (bp *breakpoints) drop(num int) error {
	if num < 0 || num >= len(bp.breaks) {
		return curated.Errorf("breakpoint #%d is not defined", num)
	}
	bp.breaks = append(bp.breaks[:num], bp.breaks[num+1:]...)
	return nil
}

// clear all breakpoints.
func (bp *breakpoints) clear() {
	bp.breaks = bp.breaks[:0]
}

// check returns true if the address matches a breakpoint.
func (bp *breakpoints) check(address uint16) bool {
	for _, b := range bp.breaks {
		if b == address {
			return true
		}
	}
	return false
}

// list the currently defined breakpoints.
func (bp *breakpoints) list() {
	if len(bp.breaks) == 0 {
		bp.dbg.printLine(terminal.StyleFeedback, "no breakpoints")
		return
	}
	for i, b := range bp.breaks {
		bp.dbg.printLine(terminal.StyleFeedback, "% 2d: %#04x", i, b)
	}
}
