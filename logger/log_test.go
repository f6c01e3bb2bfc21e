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

package logger

import (
	"strings"
	"testing"

	"github.com/hexbus/gopher8/test"
)

func TestRepeatFolding(t *testing.T) {
	l := newLogger(10)
	l.log("test", "hello")
	l.log("test", "hello")
	l.log("test", "hello")

	s := &strings.Builder{}
	l.write(s)
	test.Equate(t, s.String(), "test: hello (repeat x3)\n")
}

func TestMaxEntries(t *testing.T) {
	l := newLogger(2)
	l.log("test", "one")
	l.log("test", "two")
	l.log("test", "three")

	s := &strings.Builder{}
	l.write(s)
	test.Equate(t, s.String(), "test: two\ntest: three\n")
}

func TestTail(t *testing.T) {
	l := newLogger(10)
	l.log("test", "one")
	l.log("test", "two")
	l.log("test", "three")

	s := &strings.Builder{}
	l.tail(s, 1)
	test.Equate(t, s.String(), "test: three\n")

	// tail of more entries than exist is the same as write
	s.Reset()
	l.tail(s, 100)
	test.Equate(t, s.String(), "test: one\ntest: two\ntest: three\n")
}
