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

package modalflag_test

import (
	"testing"

	"github.com/hexbus/gopher8/modalflag"
	"github.com/hexbus/gopher8/test"
)

func TestNoModesNoFlags(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"rom.ch8"})

	p, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, int(p), int(modalflag.ParseContinue))
	test.Equate(t, len(md.RemainingArgs()), 1)
	test.Equate(t, md.GetArg(0), "rom.ch8")
}

func TestSubModes(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"DEBUG", "rom.ch8"})
	md.AddSubModes("RUN", "DEBUG", "DISASM")

	p, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, int(p), int(modalflag.ParseContinue))
	test.Equate(t, md.Mode(), "DEBUG")

	// remaining argument is the ROM file
	md.NewMode()
	p, err = md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, int(p), int(modalflag.ParseContinue))
	test.Equate(t, md.GetArg(0), "rom.ch8")
}

func TestDefaultSubMode(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"rom.ch8"})
	md.AddSubModes("RUN", "DEBUG")

	_, err := md.Parse()
	test.ExpectedSuccess(t, err)

	// no sub-mode specified so the default is selected
	test.Equate(t, md.Mode(), "RUN")
	test.Equate(t, md.GetArg(0), "rom.ch8")
}

func TestModeFlags(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-scale", "20", "rom.ch8"})

	scale := md.AddFloat64("scale", 10.0, "pixel scaling")

	_, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, int(*scale), 20)
	test.Equate(t, md.GetArg(0), "rom.ch8")
}

func TestUnknownFlag(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-unknown"})

	p, err := md.Parse()
	test.ExpectedFailure(t, err)
	test.Equate(t, int(p), int(modalflag.ParseError))
}
