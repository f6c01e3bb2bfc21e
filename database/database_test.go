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

package database_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/hexbus/gopher8/database"
	"github.com/hexbus/gopher8/test"
)

type testEntry struct {
	value string
}

func deserialiseTestEntry(fields database.SerialisedEntry) (database.Entry, error) {
	return &testEntry{value: strings.Join(fields, ",")}, nil
}

func (ent testEntry) ID() string {
	return "test"
}

func (ent testEntry) String() string {
	return ent.value
}

func (ent testEntry) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{ent.value}, nil
}

func (ent testEntry) CleanUp() error {
	return nil
}

func registerEntryTypes(db *database.Session) error {
	return db.RegisterEntryType("test", deserialiseTestEntry)
}

func TestAddAndCommit(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "testDB")

	db, err := database.StartSession(pth, database.ActivityCreating, registerEntryTypes)
	test.ExpectedSuccess(t, err)

	test.ExpectedSuccess(t, db.Add(&testEntry{value: "first"}))
	test.ExpectedSuccess(t, db.Add(&testEntry{value: "second"}))
	test.Equate(t, db.NumEntries(), 2)

	test.ExpectedSuccess(t, db.EndSession(true))

	// reopen and check entries survived
	db, err = database.StartSession(pth, database.ActivityReading, registerEntryTypes)
	test.ExpectedSuccess(t, err)
	test.Equate(t, db.NumEntries(), 2)

	ent, err := db.Get(0)
	test.ExpectedSuccess(t, err)
	test.Equate(t, ent.String(), "first")

	// read-only sessions cannot commit
	test.ExpectedFailure(t, db.EndSession(true))
}

func TestDelete(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "testDB")

	db, err := database.StartSession(pth, database.ActivityCreating, registerEntryTypes)
	test.ExpectedSuccess(t, err)

	test.ExpectedSuccess(t, db.Add(&testEntry{value: "first"}))
	test.ExpectedSuccess(t, db.Add(&testEntry{value: "second"}))
	test.ExpectedSuccess(t, db.Delete(0))
	test.Equate(t, db.NumEntries(), 1)

	// deleting an unknown key fails
	test.ExpectedFailure(t, db.Delete(99))

	test.ExpectedSuccess(t, db.EndSession(true))

	db, err = database.StartSession(pth, database.ActivityReading, registerEntryTypes)
	test.ExpectedSuccess(t, err)
	test.Equate(t, db.NumEntries(), 1)

	ent, err := db.Get(1)
	test.ExpectedSuccess(t, err)
	test.Equate(t, ent.String(), "second")
}

func TestSelectKeys(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "testDB")

	db, err := database.StartSession(pth, database.ActivityCreating, registerEntryTypes)
	test.ExpectedSuccess(t, err)

	test.ExpectedSuccess(t, db.Add(&testEntry{value: "first"}))
	test.ExpectedSuccess(t, db.Add(&testEntry{value: "second"}))

	ct := 0
	_, err = db.SelectKeys(func(ent database.Entry) error {
		ct++
		return nil
	})
	test.ExpectedSuccess(t, err)
	test.Equate(t, ct, 2)

	ent, err := db.SelectKeys(nil, 1)
	test.ExpectedSuccess(t, err)
	test.Equate(t, ent.String(), "second")

	_, err = db.SelectKeys(nil, 99)
	test.ExpectedFailure(t, err)
}
