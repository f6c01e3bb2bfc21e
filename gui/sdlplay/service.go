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

package sdlplay

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/hexbus/gopher8/gui"
)

// Service implements the GuiCreator interface.
//
// MUST ONLY be called from the main thread.
func (sp *SdlPlay) Service() {
	// do not check for events if no event channel has been set
	if sp.events != nil {
		// loop until there are no more events to retrieve. we don't want to
		// loop for too long servicing events but truncating the queue risks
		// missing important user input
		empty := false
		for !empty {
			// check for SDL events, timing out straight away if there is
			// nothing
			ev := sdl.WaitEventTimeout(1)

			switch ev := ev.(type) {
			case *sdl.QuitEvent:
				sp.events <- gui.Event{ID: gui.EventWindowClose}

			case *sdl.KeyboardEvent:
				if ev.Repeat == 0 {
					switch ev.Type {
					case sdl.KEYDOWN:
						sp.events <- gui.Event{
							ID: gui.EventKeyboard,
							Data: gui.EventDataKeyboard{
								Key:  sdl.GetKeyName(ev.Keysym.Sym),
								Down: true,
							}}
					case sdl.KEYUP:
						sp.events <- gui.Event{
							ID: gui.EventKeyboard,
							Data: gui.EventDataKeyboard{
								Key:  sdl.GetKeyName(ev.Keysym.Sym),
								Down: false,
							}}
					}
				}

			case nil:
				// a nil value means WaitEventTimeout has timed out and we can
				// say that the event queue is empty
				empty = true
			}
		}
	}

	// run any outstanding feature requests
	select {
	case r := <-sp.featureReq:
		sp.serviceFeatureRequests(r)
	default:
	}
}
