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

// Package debugger implements a terminal based debugging interface to the
// CHIP-8 machine. the emulation can be stepped one instruction at a time, run
// until a breakpoint is met, and the state of the machine inspected at any
// point.
//
// The debugger is attached to a terminal.Terminal implementation on creation.
// the plainterm and colorterm packages provide the two available
// implementations.
package debugger
