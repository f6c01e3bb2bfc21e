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

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/bradleyjkemp/memviz"

	"github.com/hexbus/gopher8/curated"
	"github.com/hexbus/gopher8/debugger/terminal"
	"github.com/hexbus/gopher8/disassembly"
	"github.com/hexbus/gopher8/logger"
)

// debugger commands.
const (
	cmdHelp        = "HELP"
	cmdQuit        = "QUIT"
	cmdExit        = "EXIT"
	cmdReset       = "RESET"
	cmdStep        = "STEP"
	cmdRun         = "RUN"
	cmdBreak       = "BREAK"
	cmdList        = "LIST"
	cmdDrop        = "DROP"
	cmdClear       = "CLEAR"
	cmdCPU         = "CPU"
	cmdMemory      = "MEMORY"
	cmdDisassembly = "DISASM"
	cmdLog         = "LOG"
	cmdViz         = "VIZ"
)

// the file VIZ writes to when no filename argument is given.
const defaultVizFile = "gopher8.dot"

// processInput splits the input into a command and its arguments and acts on
// it. an empty input repeats the last input.
func (dbg *Debugger) processInput(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		input = dbg.lastInput
		if input == "" {
			return nil
		}
	}

	tokens := strings.Fields(input)
	command := strings.ToUpper(tokens[0])
	args := tokens[1:]

	switch command {
	case cmdHelp:
		dbg.processHelp(args)

	case cmdQuit, cmdExit:
		dbg.running = false

	case cmdReset:
		if err := dbg.VM.AttachROM(dbg.loader); err != nil {
			return err
		}
		dbg.frameSteps = 0
		dbg.printLine(terminal.StyleFeedback, "machine reset")

	case cmdStep:
		num := 1
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return curated.Errorf("STEP expects a positive number (%s)", args[0])
			}
			num = n
		}
		for i := 0; i < num; i++ {
			if err := dbg.step(); err != nil {
				return err
			}
			e := disassembly.Disassemble(dbg.VM.CPU.LastPC, dbg.VM.CPU.LastOpcode)
			dbg.printLine(terminal.StyleInstructionStep, e.String())
		}

	case cmdRun:
		dbg.runUntilHalt = true

	case cmdBreak:
		if len(args) != 1 {
			return curated.Errorf("BREAK expects an address")
		}
		address, err := strconv.ParseUint(args[0], 0, 16)
		if err != nil {
			return curated.Errorf("BREAK expects an address (%s)", args[0])
		}
		if err := dbg.breakpoints.add(uint16(address)); err != nil {
			return err
		}
		dbg.printLine(terminal.StyleFeedback, "breakpoint at %#04x", address)

	case cmdList:
		dbg.breakpoints.list()

	case cmdDrop:
		if len(args) != 1 {
			return curated.Errorf("DROP expects a breakpoint number")
		}
		num, err := strconv.Atoi(args[0])
		if err != nil {
			return curated.Errorf("DROP expects a breakpoint number (%s)", args[0])
		}
		if err := dbg.breakpoints.drop(num); err != nil {
			return err
		}

	case cmdClear:
		dbg.breakpoints.clear()
		dbg.printLine(terminal.StyleFeedback, "breakpoints cleared")

	case cmdCPU:
		dbg.printLine(terminal.StyleFeedback, dbg.VM.String())

	case cmdMemory:
		if err := dbg.processMemory(args); err != nil {
			return err
		}

	case cmdDisassembly:
		dsm, err := disassembly.FromLoader(dbg.loader)
		if err != nil {
			return err
		}
		if err := dsm.Write(dbg.printStyle(terminal.StyleFeedback), disassembly.WriteAttr{}); err != nil {
			return err
		}

	case cmdLog:
		logger.Write(dbg.printStyle(terminal.StyleLog))

	case cmdViz:
		filename := defaultVizFile
		if len(args) > 0 {
			filename = args[0]
		}
		buf := &bytes.Buffer{}
		memviz.Map(buf, dbg.VM)
		if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
			return curated.Errorf("VIZ: %v", err)
		}
		dbg.printLine(terminal.StyleFeedback, "machine graph written to %s", filename)

	default:
		return curated.Errorf("unrecognised command (%s)", command)
	}

	dbg.lastInput = input

	return nil
}

// processMemory implements the MEMORY command. with no arguments a window
// around the current program counter is dumped.
func (dbg *Debugger) processMemory(args []string) error {
	address := dbg.VM.CPU.PC
	length := 16

	if len(args) > 0 {
		a, err := strconv.ParseUint(args[0], 0, 16)
		if err != nil {
			return curated.Errorf("MEMORY expects an address (%s)", args[0])
		}
		address = uint16(a)
	}

	if len(args) > 1 {
		l, err := strconv.Atoi(args[1])
		if err != nil || l < 1 {
			return curated.Errorf("MEMORY expects a positive length (%s)", args[1])
		}
		length = l
	}

	window, err := dbg.VM.Mem.Window(address, length)
	if err != nil {
		return err
	}

	s := strings.Builder{}
	for i, b := range window {
		if i%8 == 0 {
			if i > 0 {
				s.WriteString("\n")
			}
			s.WriteString(fmt.Sprintf("%#04x: ", address+uint16(i)))
		}
		s.WriteString(fmt.Sprintf("%02x ", b))
	}
	dbg.printLine(terminal.StyleFeedback, s.String())

	return nil
}

// processHelp implements the HELP command.
func (dbg *Debugger) processHelp(args []string) {
	if len(args) == 0 {
		keys := make([]string, 0, len(help))
		for k := range help {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		dbg.printLine(terminal.StyleHelp, strings.Join(keys, " "))
		return
	}

	command := strings.ToUpper(args[0])
	if h, ok := help[command]; ok {
		dbg.printLine(terminal.StyleHelp, h)
	} else {
		dbg.printLine(terminal.StyleHelp, "no help for %s", command)
	}
}
