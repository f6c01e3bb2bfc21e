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

package regression

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hexbus/gopher8/curated"
	"github.com/hexbus/gopher8/database"
	"github.com/hexbus/gopher8/digest"
	"github.com/hexbus/gopher8/hardware"
	"github.com/hexbus/gopher8/hardware/screen"
	"github.com/hexbus/gopher8/romloader"
)

const videoEntryType = "video"

const (
	videoFieldROM int = iota
	videoFieldNumFrames
	videoFieldDigest
	videoFieldNotes
	numVideoFields
)

// VideoRegression runs a ROM for a fixed number of frames and compares the
// resulting frame digest against the recorded value.
type VideoRegression struct {
	ROM       string
	NumFrames int
	Notes     string
	digest    string
}

func deserialiseVideoEntry(fields database.SerialisedEntry) (database.Entry, error) {
	reg := &VideoRegression{}

	// basic sanity check
	if len(fields) > numVideoFields {
		return nil, curated.Errorf("video: too many fields")
	}
	if len(fields) < numVideoFields {
		return nil, curated.Errorf("video: too few fields")
	}

	var err error

	reg.ROM = fields[videoFieldROM]
	reg.digest = fields[videoFieldDigest]
	reg.Notes = fields[videoFieldNotes]

	reg.NumFrames, err = strconv.Atoi(fields[videoFieldNumFrames])
	if err != nil {
		return nil, curated.Errorf("video: invalid number of frames field (%s)", fields[videoFieldNumFrames])
	}

	return reg, nil
}

// ID implements the database.Entry interface.
func (reg VideoRegression) ID() string {
	return videoEntryType
}

// String implements the database.Entry interface.
func (reg VideoRegression) String() string {
	s := strings.Builder{}

	s.WriteString(fmt.Sprintf("[%s] %s frames=%d", reg.ID(), romloader.NewLoader(reg.ROM).ShortName(), reg.NumFrames))
	if reg.Notes != "" {
		s.WriteString(fmt.Sprintf(" [%s]", reg.Notes))
	}

	return s.String()
}

// Serialise implements the database.Entry interface.
func (reg *VideoRegression) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{
		reg.ROM,
		strconv.Itoa(reg.NumFrames),
		reg.digest,
		reg.Notes,
	}, nil
}

// CleanUp implements the database.Entry interface.
func (reg VideoRegression) CleanUp() error {
	return nil
}

// regress implements the Regressor interface.
func (reg *VideoRegression) regress(newRegression bool, output io.Writer, message string) (bool, error) {
	output.Write([]byte(message))

	scr, err := screen.NewScreen()
	if err != nil {
		return false, curated.Errorf("video: %v", err)
	}
	defer scr.End()

	// a regression run is not expected to keep pace with a real machine
	scr.SetFPSCap(false)

	dig, err := digest.NewVideo(scr)
	if err != nil {
		return false, curated.Errorf("video: %v", err)
	}

	vm, err := hardware.NewChip8(scr)
	if err != nil {
		return false, curated.Errorf("video: %v", err)
	}

	// quirk and clock preferences are loaded from disk when the machine is
	// created. digests must not depend on whatever the user has set there
	if err := vm.Prefs.SetDefaults(); err != nil {
		return false, curated.Errorf("video: %v", err)
	}

	ld := romloader.NewLoader(reg.ROM)
	if err := vm.AttachROM(ld); err != nil {
		return false, curated.Errorf("video: %v", err)
	}

	// a fixed seed makes the RND instruction reproducible from run to run
	vm.SetRandSeed(0)

	if err := vm.RunForFrames(reg.NumFrames, nil); err != nil {
		return false, curated.Errorf("video: %v", err)
	}

	if newRegression {
		reg.digest = dig.Hash()
		return true, nil
	}

	return dig.Hash() == reg.digest, nil
}
