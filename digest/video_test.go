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

package digest_test

import (
	"testing"

	"github.com/hexbus/gopher8/digest"
	"github.com/hexbus/gopher8/hardware/screen"
	"github.com/hexbus/gopher8/test"
)

func newFrame(t *testing.T, scr *screen.Screen, on bool) {
	t.Helper()
	fb := make([]bool, screen.Width*screen.Height)
	for i := range fb {
		fb[i] = on
	}
	if err := scr.NewFrame(fb, false); err != nil {
		t.Fatal(err)
	}
}

func TestChainedDigest(t *testing.T) {
	scr, err := screen.NewScreen()
	if err != nil {
		t.Fatal(err)
	}
	scr.SetFPSCap(false)

	dig, err := digest.NewVideo(scr)
	test.ExpectedSuccess(t, err)

	newFrame(t, scr, false)
	h1 := dig.Hash()

	newFrame(t, scr, true)
	h2 := dig.Hash()
	if h1 == h2 {
		t.Fatalf("digest did not change between frames")
	}

	// the digest chains frame to frame. pushing the same frame twice gives
	// different digests
	newFrame(t, scr, true)
	h3 := dig.Hash()
	if h2 == h3 {
		t.Fatalf("digest did not chain")
	}
}

func TestFinalFrameDigest(t *testing.T) {
	run := func(last bool) string {
		scr, err := screen.NewScreen()
		if err != nil {
			t.Fatal(err)
		}
		scr.SetFPSCap(false)

		dig, err := digest.NewVideo(scr)
		test.ExpectedSuccess(t, err)

		newFrame(t, scr, false)
		newFrame(t, scr, true)
		newFrame(t, scr, last)

		return dig.Hash()
	}

	// two runs that differ only in the last frame pushed must produce
	// different digests
	if run(false) == run(true) {
		t.Fatalf("digest does not cover the most recent frame")
	}
}

func TestDeterministicDigest(t *testing.T) {
	run := func() string {
		scr, err := screen.NewScreen()
		if err != nil {
			t.Fatal(err)
		}
		scr.SetFPSCap(false)

		dig, err := digest.NewVideo(scr)
		test.ExpectedSuccess(t, err)

		newFrame(t, scr, false)
		newFrame(t, scr, true)
		newFrame(t, scr, false)

		return dig.Hash()
	}

	test.Equate(t, run(), run())
}
