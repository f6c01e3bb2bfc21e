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
	"github.com/hexbus/gopher8/paths"
	"github.com/hexbus/gopher8/prefs"
)

// the default amount of scaling applied to each pixel of the display.
const defScale = 16.0

type preferences struct {
	dsk *prefs.Disk

	scale prefs.Float
}

func newPreferences() (*preferences, error) {
	p := &preferences{}

	if err := p.scale.Set(float64(defScale)); err != nil {
		return nil, err
	}

	dsk, err := prefs.NewDisk(paths.ResourcePath("gui.prefs"))
	if err != nil {
		return nil, err
	}
	if err := dsk.Add("sdlplay.scale", &p.scale); err != nil {
		return nil, err
	}
	p.dsk = dsk

	if err := p.dsk.Load(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *preferences) save() error {
	return p.dsk.Save()
}
