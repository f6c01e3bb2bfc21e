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

package playmode_test

import (
	"testing"

	"github.com/hexbus/gopher8/gui"
	"github.com/hexbus/gopher8/hardware"
	"github.com/hexbus/gopher8/hardware/screen"
	"github.com/hexbus/gopher8/playmode"
	"github.com/hexbus/gopher8/test"
)

func TestKeyboardEventHandler(t *testing.T) {
	scr, err := screen.NewScreen()
	if err != nil {
		t.Fatal(err)
	}

	vm, err := hardware.NewChip8(scr)
	if err != nil {
		t.Fatal(err)
	}

	// the X key maps to keypad 0
	cont, err := playmode.KeyboardEventHandler(gui.EventDataKeyboard{Key: "X", Down: true}, vm)
	test.ExpectedSuccess(t, err)
	test.Equate(t, cont, true)

	held, err := vm.Keypad.IsPressed(0x00)
	test.ExpectedSuccess(t, err)
	test.Equate(t, held, true)

	cont, err = playmode.KeyboardEventHandler(gui.EventDataKeyboard{Key: "X", Down: false}, vm)
	test.ExpectedSuccess(t, err)
	test.Equate(t, cont, true)

	held, err = vm.Keypad.IsPressed(0x00)
	test.ExpectedSuccess(t, err)
	test.Equate(t, held, false)

	// the V key maps to keypad F
	_, err = playmode.KeyboardEventHandler(gui.EventDataKeyboard{Key: "V", Down: true}, vm)
	test.ExpectedSuccess(t, err)

	held, err = vm.Keypad.IsPressed(0x0f)
	test.ExpectedSuccess(t, err)
	test.Equate(t, held, true)

	// unmapped keys are ignored
	cont, err = playmode.KeyboardEventHandler(gui.EventDataKeyboard{Key: "F12", Down: true}, vm)
	test.ExpectedSuccess(t, err)
	test.Equate(t, cont, true)

	// escape ends the emulation
	cont, err = playmode.KeyboardEventHandler(gui.EventDataKeyboard{Key: "Escape", Down: true}, vm)
	test.ExpectedSuccess(t, err)
	test.Equate(t, cont, false)
}
