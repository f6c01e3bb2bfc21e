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

package colorterm

import (
	"bufio"
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/hexbus/gopher8/curated"
	"github.com/hexbus/gopher8/debugger/terminal"
	"github.com/hexbus/gopher8/debugger/terminal/colorterm/easyterm"
	"github.com/hexbus/gopher8/debugger/terminal/colorterm/easyterm/ansi"
)

// the rune reader lets TermRead() select between keypresses and the channels
// in terminal.ReadEvents.
type readRune struct {
	r   rune
	err error
}

type runeReader chan readRune

func initRuneReader(in io.Reader) runeReader {
	b := bufio.NewReader(in)
	ch := make(chan readRune, 1)

	go func() {
		for {
			r, _, err := b.ReadRune()
			ch <- readRune{r: r, err: err}
			if err != nil {
				return
			}
		}
	}()

	return ch
}

// nextRune blocks until the reader delivers the next keypress.
func (ct *ColorTerminal) nextRune() (rune, error) {
	rr := <-ct.reader
	return rr.r, rr.err
}

// TermRead implements the terminal.Input interface.
func (ct *ColorTerminal) TermRead(prompt terminal.Prompt, events *terminal.ReadEvents) (string, error) {
	if ct.silenced {
		return "", nil
	}

	ct.RawMode()
	defer ct.CanonicalMode()

	// decorate the prompt depending on its type
	p := prompt.String()
	style := ansi.PenStyles["bold"]
	if prompt.Type == terminal.PromptTypeConfirm {
		style = ansi.PenColor["blue"]
	}

	// er is used to store encoded runes (length of 4 should be enough)
	er := make([]byte, 4)

	input := make([]byte, 255)
	n := 0
	cursor := 0
	history := len(ct.commandHistory)

	// buffInput is used to store the latest input when we scroll through
	// history - we don't want to lose what we've typed in case the user wants
	// to resume where we left off
	buffInput := make([]byte, cap(input))
	buffN := 0

	// the method for cursor placement is as follows:
	// 	1. for each iteration in the loop
	//		2. store current cursor position
	//		3. clear the current line
	//		4. output the prompt
	//		5. output the input buffer
	//		6. restore the cursor position
	//
	// for this to work we need to place the cursor in its initial position
	ct.EasyTerm.TermPrint("\r%s", ansi.CursorMove(len(p)))

	for {
		ct.EasyTerm.TermPrint(ansi.CursorStore)
		ct.EasyTerm.TermPrint("%s%s%s%s", ansi.ClearLine, style, p, ansi.NormalPen)
		ct.EasyTerm.TermPrint(string(input[:n]))
		ct.EasyTerm.TermPrint(ansi.CursorRestore)

		var r rune

		select {
		case rr := <-ct.reader:
			if rr.err != nil {
				return "", rr.err
			}
			r = rr.r

		case sig := <-events.Signal:
			ct.EasyTerm.TermPrint("\n")
			return "", events.SignalHandler(sig)

		case ev := <-events.GuiEvents:
			if err := events.GuiEventHandler(ev); err != nil {
				ct.EasyTerm.TermPrint("\n")
				return "", err
			}
			continue
		}

		switch r {
		case easyterm.KeyInterrupt:
			ct.EasyTerm.TermPrint("\n")
			return "", curated.Errorf(terminal.UserInterrupt)

		case easyterm.KeySuspend:
			// restore the terminal before handing control back to the shell
			ct.CanonicalMode()
			easyterm.SuspendProcess()
			ct.RawMode()

		case easyterm.KeyCarriageReturn:
			// check to see if input is the same as the last history entry
			newEntry := false
			if n > 0 {
				newEntry = true
				if len(ct.commandHistory) > 0 {
					lastHistoryEntry := ct.commandHistory[len(ct.commandHistory)-1].input
					if len(lastHistoryEntry) == n {
						newEntry = false
						for i := 0; i < n; i++ {
							if input[i] != lastHistoryEntry[i] {
								newEntry = true
								break
							}
						}
					}
				}
			}

			// if input is not the same as the last history entry then append
			// a new entry to the history list
			if newEntry {
				nh := make([]byte, n)
				copy(nh, input[:n])
				ct.commandHistory = append(ct.commandHistory, command{input: nh})
			}

			ct.EasyTerm.TermPrint("\n")
			return string(input[:n]), nil

		case easyterm.KeyEsc:
			// ESCAPE SEQUENCE BEGIN
			r, err := ct.nextRune()
			if err != nil {
				return "", err
			}
			switch r {
			case easyterm.EscCursor:
				// CURSOR KEY
				r, err := ct.nextRune()
				if err != nil {
					return "", err
				}

				switch r {
				case easyterm.CursorUp:
					// move up through command history
					if len(ct.commandHistory) > 0 {
						// if we're at the end of the command history then
						// store the current input in buffInput for possible
						// later editing
						if history == len(ct.commandHistory) {
							copy(buffInput, input[:n])
							buffN = n
						}

						if history > 0 {
							history--
							copy(input, ct.commandHistory[history].input)
							n = len(ct.commandHistory[history].input)
							ct.EasyTerm.TermPrint(ansi.CursorMove(n - cursor))
							cursor = n
						}
					}
				case easyterm.CursorDown:
					// move down through command history
					if len(ct.commandHistory) > 0 {
						if history < len(ct.commandHistory)-1 {
							history++
							copy(input, ct.commandHistory[history].input)
							n = len(ct.commandHistory[history].input)
							ct.EasyTerm.TermPrint(ansi.CursorMove(n - cursor))
							cursor = n
						} else if history == len(ct.commandHistory)-1 {
							history++
							copy(input, buffInput)
							n = buffN
							ct.EasyTerm.TermPrint(ansi.CursorMove(n - cursor))
							cursor = n
						}
					}
				case easyterm.CursorForward:
					// move forward through current command input
					if cursor < n {
						ct.EasyTerm.TermPrint(ansi.CursorForwardOne)
						cursor++
					}
				case easyterm.CursorBackward:
					// move backward through current command input
					if cursor > 0 {
						ct.EasyTerm.TermPrint(ansi.CursorBackwardOne)
						cursor--
					}

				case easyterm.EscDelete:
					// DELETE. the escape sequence ends with a tilde, which we
					// must consume
					if _, err := ct.nextRune(); err != nil {
						return "", err
					}
					if cursor < n {
						copy(input[cursor:], input[cursor+1:])
						n--
						history = len(ct.commandHistory)
					}

				case easyterm.EscHome:
					ct.EasyTerm.TermPrint(ansi.CursorMove(-cursor))
					cursor = 0

				case easyterm.EscEnd:
					ct.EasyTerm.TermPrint(ansi.CursorMove(n - cursor))
					cursor = n
				}
			}

		case easyterm.KeyBackspace, 127:
			// BACKSPACE
			if cursor > 0 {
				copy(input[cursor-1:], input[cursor:])
				ct.EasyTerm.TermPrint(ansi.CursorBackwardOne)
				cursor--
				n--
				history = len(ct.commandHistory)
			}

		default:
			if unicode.IsPrint(r) {
				m := utf8.EncodeRune(er, r)
				copy(input[cursor+m:], input[cursor:])
				copy(input[cursor:], er[:m])
				ct.EasyTerm.TermPrint(ansi.CursorForwardOne)
				cursor++
				n += m
				history = len(ct.commandHistory)
			}
		}
	}
}

// TermReadCheck implements the terminal.Input interface.
func (ct *ColorTerminal) TermReadCheck() bool {
	return len(ct.reader) > 0
}
