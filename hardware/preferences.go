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

package hardware

import (
	"github.com/hexbus/gopher8/curated"
	"github.com/hexbus/gopher8/paths"
	"github.com/hexbus/gopher8/prefs"
)

// the default number of instructions executed per second.
const defClockSpeed = 720

// Preferences for the emulated hardware.
type Preferences struct {
	dsk *prefs.Disk

	// whether the shift instructions operate on VY rather than VX
	ShiftUsesVY prefs.Bool

	// whether the bulk register store/restore instructions leave the index
	// register pointing past the copied registers
	IndexIncrement prefs.Bool

	// the number of instructions executed per second
	ClockSpeed prefs.Int
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{}

	if err := p.ClockSpeed.Set(defClockSpeed); err != nil {
		return nil, curated.Errorf("hardware: %v", err)
	}

	dsk, err := prefs.NewDisk(paths.ResourcePath("preferences"))
	if err != nil {
		return nil, curated.Errorf("hardware: %v", err)
	}
	if err := dsk.Add("hardware.quirks.shiftUsesVY", &p.ShiftUsesVY); err != nil {
		return nil, curated.Errorf("hardware: %v", err)
	}
	if err := dsk.Add("hardware.quirks.indexIncrement", &p.IndexIncrement); err != nil {
		return nil, curated.Errorf("hardware: %v", err)
	}
	if err := dsk.Add("hardware.clockSpeed", &p.ClockSpeed); err != nil {
		return nil, curated.Errorf("hardware: %v", err)
	}
	p.dsk = dsk

	if err := p.Load(); err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults restores every preference to its default value. the change is
// not saved to disk.
func (p *Preferences) SetDefaults() error {
	if err := p.ShiftUsesVY.Set(false); err != nil {
		return curated.Errorf("hardware: %v", err)
	}
	if err := p.IndexIncrement.Set(false); err != nil {
		return curated.Errorf("hardware: %v", err)
	}
	if err := p.ClockSpeed.Set(defClockSpeed); err != nil {
		return curated.Errorf("hardware: %v", err)
	}
	return nil
}

// Load hardware preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save current hardware preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
