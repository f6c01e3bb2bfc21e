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

// Package playmode is the normal-use mode of the emulation. A ROM is run
// with a GUI window and the host keyboard mapped to the CHIP-8 keypad.
package playmode

import (
	"os"
	"os/signal"
	"time"

	"github.com/hexbus/gopher8/curated"
	"github.com/hexbus/gopher8/gui"
	"github.com/hexbus/gopher8/hardware"
	"github.com/hexbus/gopher8/hardware/screen"
	"github.com/hexbus/gopher8/romloader"
)

// Play the supplied ROM.
func Play(scr *screen.Screen, g gui.GUI, ld romloader.Loader) error {
	vm, err := hardware.NewChip8(scr)
	if err != nil {
		return curated.Errorf("playmode: %v", err)
	}

	if err := vm.AttachROM(ld); err != nil {
		return curated.Errorf("playmode: %v", err)
	}

	// the RND instruction should be unpredictable during normal play
	vm.SetRandSeed(time.Now().UnixNano())

	// register event channel with the gui
	guiChan := make(chan gui.Event, 2)
	if err := g.ReqFeature(gui.ReqSetEventChan, guiChan); err != nil {
		return curated.Errorf("playmode: %v", err)
	}

	// request the main gui window is visible
	if err := g.ReqFeature(gui.ReqSetVisibility, true); err != nil {
		return curated.Errorf("playmode: %v", err)
	}

	// ctrl-c handling
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	err = vm.Run(func() (bool, error) {
		for {
			select {
			case <-intChan:
				return false, nil

			case ev := <-guiChan:
				cont, err := guiEventHandler(vm, ev)
				if !cont || err != nil {
					return cont, err
				}

			default:
				return true, nil
			}
		}
	})
	if err != nil {
		return curated.Errorf("playmode: %v", err)
	}

	return nil
}
