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

// Package keypad implements the sixteen key hexadecimal keypad of the CHIP-8
// machine.
package keypad

import "github.com/hexbus/gopher8/curated"

// NumKeys is the number of keys on the keypad.
const NumKeys = 16

// IllegalKey is returned when a key value is outside the range of the keypad.
const IllegalKey = "keypad: illegal key (%#02x)"

// Keypad records the held/released state of each key.
type Keypad struct {
	keys [NumKeys]bool
}

// NewKeypad is the preferred method of initialisation for the Keypad type.
func NewKeypad() *Keypad {
	return &Keypad{}
}

// Reset releases all keys.
func (kpd *Keypad) Reset() {
	for i := range kpd.keys {
		kpd.keys[i] = false
	}
}

// Set the held state of the specified key.
func (kpd *Keypad) Set(key uint8, held bool) error {
	if key >= NumKeys {
		return curated.Errorf(IllegalKey, key)
	}
	kpd.keys[key] = held
	return nil
}

// IsPressed returns whether the specified key is currently held.
func (kpd *Keypad) IsPressed(key uint8) (bool, error) {
	if key >= NumKeys {
		return false, curated.Errorf(IllegalKey, key)
	}
	return kpd.keys[key], nil
}

// FirstPressed returns the lowest numbered key that is currently held. the
// second return value is false if no key is held.
func (kpd *Keypad) FirstPressed() (uint8, bool) {
	for i, held := range kpd.keys {
		if held {
			return uint8(i), true
		}
	}
	return 0, false
}
