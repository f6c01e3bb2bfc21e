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

package debugger

// help contains the help text for the debugger's top level commands.
var help = map[string]string{
	cmdHelp:  "Lists commands and provides help for individual debugger commands",
	cmdQuit:  "Exits the emulator",
	cmdExit:  "Exits the emulator",
	cmdReset: "Reset the emulation to its initial state, reloading the attached ROM",

	cmdStep: "Step forward one instruction. Optional argument sets the number of instructions to step",
	cmdRun:  "Run emulator until the next breakpoint or user interrupt",

	cmdBreak: "Halt emulation when the program counter reaches the specified address",
	cmdList:  "List current breakpoints",
	cmdDrop:  "Drop a specific breakpoint, using the number of the breakpoint reported by LIST",
	cmdClear: "Clear all breakpoints",

	cmdCPU:         "Display the current state of the CPU and timers",
	cmdMemory:      "Inspect memory. Optional arguments give the start address and the number of bytes",
	cmdDisassembly: "Print the disassembly of the attached ROM",
	cmdLog:         "Print the application log",
	cmdViz:         "Write a graphviz visualisation of the machine to file",
}
