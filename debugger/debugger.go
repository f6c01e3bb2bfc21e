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
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/hexbus/gopher8/curated"
	"github.com/hexbus/gopher8/debugger/terminal"
	"github.com/hexbus/gopher8/disassembly"
	"github.com/hexbus/gopher8/gui"
	"github.com/hexbus/gopher8/hardware"
	"github.com/hexbus/gopher8/hardware/screen"
	"github.com/hexbus/gopher8/playmode"
	"github.com/hexbus/gopher8/romloader"
)

// Debugger is the basic debugging frontend for the emulation.
type Debugger struct {
	VM *hardware.Chip8

	scr  *screen.Screen
	gui  gui.GUI
	term terminal.Terminal

	breakpoints *breakpoints

	// the ROM currently attached to the machine. kept so the RESET command
	// can reload it.
	loader romloader.Loader

	// events is used by TermRead() and by the debugger itself when the
	// emulation is running
	events *terminal.ReadEvents

	// is the debugger running at all
	running bool

	// is the emulation free-running (as a result of the RUN command)
	runUntilHalt bool

	// number of instructions executed since the last frame was pushed to the
	// screen
	frameSteps int

	// the last input from the user. an empty input repeats the last command
	lastInput string
}

// NewDebugger creates a new instance of the debugger, attached to the
// supplied terminal.
func NewDebugger(scr *screen.Screen, g gui.GUI, term terminal.Terminal) (*Debugger, error) {
	dbg := &Debugger{
		scr:  scr,
		gui:  g,
		term: term,
	}

	var err error

	dbg.VM, err = hardware.NewChip8(scr)
	if err != nil {
		return nil, curated.Errorf("debugger: %v", err)
	}

	dbg.breakpoints = newBreakpoints(dbg)

	dbg.events = &terminal.ReadEvents{
		Signal: make(chan os.Signal, 1),
		SignalHandler: func(sig os.Signal) error {
			return curated.Errorf(terminal.UserInterrupt)
		},
		GuiEvents:       make(chan gui.Event, 2),
		GuiEventHandler: dbg.guiEventHandler,
	}

	// connect gui to the debugger. not all gui implementations will respond
	// to these requests
	err = g.ReqFeature(gui.ReqSetEventChan, dbg.events.GuiEvents)
	if err != nil && !curated.Is(err, gui.UnsupportedGuiFeature) {
		return nil, curated.Errorf("debugger: %v", err)
	}

	return dbg, nil
}

// Start the debugger. the initScript, if not empty, names a file of debugger
// commands to run before control is handed to the user.
func (dbg *Debugger) Start(initScript string, ld romloader.Loader) error {
	if err := dbg.VM.AttachROM(ld); err != nil {
		return curated.Errorf("debugger: %v", err)
	}
	dbg.loader = ld

	if err := dbg.term.Initialise(); err != nil {
		return curated.Errorf("debugger: %v", err)
	}
	defer dbg.term.CleanUp()

	err := dbg.gui.ReqFeature(gui.ReqSetVisibility, true)
	if err != nil && !curated.Is(err, gui.UnsupportedGuiFeature) {
		return curated.Errorf("debugger: %v", err)
	}

	// interrupt signals are handled by the TermRead() in the attached
	// terminal, or by checkEvents() when the emulation is free-running
	signal.Notify(dbg.events.Signal, os.Interrupt)
	defer signal.Stop(dbg.events.Signal)

	dbg.running = true

	if initScript != "" {
		if err := dbg.runInitScript(initScript); err != nil {
			dbg.printLine(terminal.StyleError, "%s", err)
		}
	}

	if err := dbg.inputLoop(); err != nil {
		return curated.Errorf("debugger: %v", err)
	}

	return nil
}

// runInitScript reads the named file and processes each line as though it had
// been typed at the terminal. the terminal is silenced while the script runs.
func (dbg *Debugger) runInitScript(initScript string) error {
	f, err := os.ReadFile(initScript)
	if err != nil {
		// a missing init script is not an error
		if os.IsNotExist(err) {
			return nil
		}
		return curated.Errorf("debugger: %v", err)
	}

	dbg.term.Silence(true)
	defer dbg.term.Silence(false)

	for _, input := range strings.Split(string(f), "\n") {
		if err := dbg.processInput(input); err != nil {
			dbg.printLine(terminal.StyleError, "%s", err)
		}
		if !dbg.running {
			break // for loop
		}
	}

	return nil
}

// inputLoop is the heart of the debugger. when the emulation is halted the
// user is prompted for the next command; when it is free-running the loop
// checks for breakpoints and user interrupts between instructions.
func (dbg *Debugger) inputLoop() error {
	for dbg.running {
		if dbg.runUntilHalt {
			if err := dbg.step(); err != nil {
				dbg.printLine(terminal.StyleError, "%s", err)
				dbg.runUntilHalt = false
				continue // for loop
			}

			if dbg.breakpoints.check(dbg.VM.CPU.PC) {
				dbg.printLine(terminal.StyleFeedback, "break at %#04x", dbg.VM.CPU.PC)
				dbg.runUntilHalt = false
			}

			continue // for loop
		}

		input, err := dbg.term.TermRead(dbg.buildPrompt(), dbg.events)
		if err != nil {
			if curated.Is(err, terminal.UserInterrupt) || errors.Is(err, io.EOF) {
				dbg.running = false
				continue // for loop
			}
			return err
		}

		if err := dbg.processInput(input); err != nil {
			dbg.printLine(terminal.StyleError, "%s", err)
		}
	}

	return nil
}

// buildPrompt disassembles the instruction at the current program counter for
// use as the terminal prompt.
func (dbg *Debugger) buildPrompt() terminal.Prompt {
	e := disassembly.Entry{Address: dbg.VM.CPU.PC, Operator: "???"}
	if opcode, err := dbg.VM.Mem.ReadOpcode(dbg.VM.CPU.PC); err == nil {
		e = disassembly.Disassemble(dbg.VM.CPU.PC, opcode)
	}
	return terminal.Prompt{Type: terminal.PromptTypeStep, Content: e.String()}
}

// step executes a single instruction, pushing a new frame to the screen and
// ticking the timers whenever enough instructions have accumulated.
func (dbg *Debugger) step() error {
	if err := dbg.VM.Step(); err != nil {
		return err
	}

	dbg.frameSteps++
	if dbg.frameSteps >= dbg.VM.InstructionsPerFrame() {
		dbg.frameSteps = 0
		if err := dbg.VM.EndFrame(); err != nil {
			return err
		}

		// checking for events once per frame is often enough
		dbg.checkEvents()
	}

	return nil
}

// checkEvents services the event channels without blocking. called while the
// emulation is free-running.
func (dbg *Debugger) checkEvents() {
	select {
	case <-dbg.events.Signal:
		dbg.printLine(terminal.StyleFeedback, "emulation halted")
		dbg.runUntilHalt = false
	case ev := <-dbg.events.GuiEvents:
		if err := dbg.events.GuiEventHandler(ev); err != nil {
			dbg.printLine(terminal.StyleError, "%s", err)
		}
	default:
	}
}

// guiEventHandler satisfies the GuiEventHandler field of terminal.ReadEvents.
func (dbg *Debugger) guiEventHandler(ev gui.Event) error {
	switch ev.ID {
	case gui.EventWindowClose:
		dbg.running = false
	case gui.EventKeyboard:
		cont, err := playmode.KeyboardEventHandler(ev.Data.(gui.EventDataKeyboard), dbg.VM)
		if !cont {
			dbg.running = false
		}
		return err
	}
	return nil
}
