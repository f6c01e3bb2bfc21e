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

package debugger_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hexbus/gopher8/debugger"
	"github.com/hexbus/gopher8/debugger/terminal"
	"github.com/hexbus/gopher8/gui"
	"github.com/hexbus/gopher8/hardware/screen"
	"github.com/hexbus/gopher8/romloader"
)

// the test ROM loads V0 and then spins on a jump-to-self.
var testROM = []byte{
	0x60, 0x05, // 0x200: LD V0, 0x05
	0x12, 0x02, // 0x202: JP 0x202
}

type mockTerm struct {
	t      *testing.T
	inp    chan string
	out    chan string
	output []string
}

func newMockTerm(t *testing.T) *mockTerm {
	trm := &mockTerm{
		t:   t,
		inp: make(chan string),
		out: make(chan string, 100),
	}
	return trm
}

func (trm *mockTerm) Initialise() error {
	return nil
}

func (trm *mockTerm) CleanUp() {
}

func (trm *mockTerm) Silence(silenced bool) {
}

func (trm *mockTerm) TermRead(_ terminal.Prompt, _ *terminal.ReadEvents) (string, error) {
	return <-trm.inp, nil
}

func (trm *mockTerm) TermReadCheck() bool {
	return false
}

func (trm *mockTerm) IsInteractive() bool {
	return false
}

func (trm *mockTerm) TermPrintLine(sty terminal.Style, s string) {
	if sty == terminal.StyleEcho {
		return
	}

	trm.out <- s
}

func (trm *mockTerm) sndInput(s string) {
	trm.output = make([]string, 0, 10)
	trm.inp <- s
}

func (trm *mockTerm) rcvOutput() {
	empty := false
	for !empty {
		select {
		case s := <-trm.out:
			trm.output = append(trm.output, s)

		// the amount of output sent by the debugger is unpredictable so a
		// timeout is necessary. a matter of milliseconds should be sufficient
		case <-time.After(10 * time.Millisecond):
			empty = true
		}
	}
}

// cmpOutput compares the string argument with the *last line* of the most
// recent output.
func (trm *mockTerm) cmpOutput(s string) {
	trm.rcvOutput()

	if len(trm.output) == 0 {
		if len(s) != 0 {
			trm.t.Errorf(fmt.Sprintf("unexpected debugger output (nothing) should be (%s)", s))
		}
		return
	}

	l := len(trm.output) - 1

	if trm.output[l] == s {
		return
	}

	trm.t.Errorf(fmt.Sprintf("unexpected debugger output (%s) should be (%s)", trm.output[l], s))
}

func (trm *mockTerm) testSequence() {
	defer func() { trm.sndInput("QUIT") }()

	trm.sndInput("BREAK 0x202")
	trm.cmpOutput("breakpoint at 0x202")

	trm.sndInput("LIST")
	trm.cmpOutput(" 0: 0x202")

	trm.sndInput("RUN")
	trm.cmpOutput("break at 0x202")

	trm.sndInput("STEP")
	trm.cmpOutput("JP 0x202")

	trm.sndInput("CLEAR")
	trm.cmpOutput("breakpoints cleared")

	trm.sndInput("LIST")
	trm.cmpOutput("no breakpoints")
}

func startDebugger(t *testing.T, initScript string) {
	trm := newMockTerm(t)

	scr, err := screen.NewScreen()
	if err != nil {
		t.Fatalf(err.Error())
	}
	scr.SetFPSCap(false)

	dbg, err := debugger.NewDebugger(scr, gui.Stub{}, trm)
	if err != nil {
		t.Fatalf(err.Error())
	}

	romFile := filepath.Join(t.TempDir(), "spin.ch8")
	if err := os.WriteFile(romFile, testROM, 0644); err != nil {
		t.Fatalf(err.Error())
	}

	go trm.testSequence()

	err = dbg.Start(initScript, romloader.NewLoader(romFile))
	if err != nil {
		t.Fatalf(err.Error())
	}
}

func TestDebugger(t *testing.T) {
	startDebugger(t, "")
}

func TestDebugger_withNonExistantInitScript(t *testing.T) {
	startDebugger(t, "non_existent_script")
}
