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

package playmode

import (
	"github.com/hexbus/gopher8/gui"
	"github.com/hexbus/gopher8/hardware"
)

// the left-hand block of a modern keyboard stands in for the 4x4 hexadecimal
// keypad of the original machine.
//
//	1 2 3 4        1 2 3 C
//	Q W E R   ->   4 5 6 D
//	A S D F        7 8 9 E
//	Z X C V        A 0 B F
var keymap = map[string]uint8{
	"1": 0x01, "2": 0x02, "3": 0x03, "4": 0x0c,
	"Q": 0x04, "W": 0x05, "E": 0x06, "R": 0x0d,
	"A": 0x07, "S": 0x08, "D": 0x09, "F": 0x0e,
	"Z": 0x0a, "X": 0x00, "C": 0x0b, "V": 0x0f,
}

// KeyboardEventHandler handles keyboard events sent from the gui. returns
// false when the emulation should end.
func KeyboardEventHandler(key gui.EventDataKeyboard, vm *hardware.Chip8) (bool, error) {
	if key.Key == "Escape" && key.Down {
		return false, nil
	}

	if v, ok := keymap[key.Key]; ok {
		return true, vm.Keypad.Set(v, key.Down)
	}

	return true, nil
}

// guiEventHandler dispatches events received over the gui event channel.
func guiEventHandler(vm *hardware.Chip8, ev gui.Event) (bool, error) {
	switch ev.ID {
	case gui.EventWindowClose:
		return false, nil
	case gui.EventKeyboard:
		return KeyboardEventHandler(ev.Data.(gui.EventDataKeyboard), vm)
	}
	return true, nil
}
