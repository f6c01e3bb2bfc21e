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

package database

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/hexbus/gopher8/curated"
)

// Activity defines the general activity of the database session.
type Activity int

// List of valid Activity states.
const (
	ActivityReading Activity = iota
	ActivityModifying
	ActivityCreating
)

// Session keeps track of a database session.
type Session struct {
	path     string
	activity Activity

	entries    map[int]Entry
	entryTypes map[string]deserialiser
}

// StartSession starts/opens a database session. The initialisation function
// is called before any entries are read; it should register the entry types
// the caller expects to find in the database.
func StartSession(path string, activity Activity, init func(*Session) error) (*Session, error) {
	db := &Session{
		path:       path,
		activity:   activity,
		entries:    make(map[int]Entry),
		entryTypes: make(map[string]deserialiser),
	}

	if init != nil {
		if err := init(db); err != nil {
			return nil, curated.Errorf("database: %v", err)
		}
	}

	if err := db.read(); err != nil {
		return nil, err
	}

	return db, nil
}

// EndSession closes the database session. if commit is true and the session
// activity allows it, the current entries are written back to the database
// file.
func (db *Session) EndSession(commit bool) error {
	if commit {
		if db.activity == ActivityReading {
			return curated.Errorf("database: cannot commit to a read-only session")
		}
		if err := db.write(); err != nil {
			return err
		}
	}

	db.entries = nil
	db.entryTypes = nil

	return nil
}

func (db *Session) read() error {
	f, err := os.Open(db.path)
	if err != nil {
		// a missing database file is the same as an empty database
		if os.IsNotExist(err) {
			return nil
		}
		return curated.Errorf("database: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		s := scanner.Text()
		if strings.TrimSpace(s) == "" {
			continue
		}

		fields := strings.Split(s, fieldSep)
		if len(fields) < numLeaderFields {
			return curated.Errorf("database: malformed entry (%s)", s)
		}

		key, err := strconv.Atoi(fields[leaderFieldKey])
		if err != nil {
			return curated.Errorf("database: malformed key (%s)", fields[leaderFieldKey])
		}

		if _, ok := db.entries[key]; ok {
			return curated.Errorf("database: duplicate key (%03d)", key)
		}

		des, ok := db.entryTypes[fields[leaderFieldID]]
		if !ok {
			return curated.Errorf("database: unrecognised entry type (%s)", fields[leaderFieldID])
		}

		ent, err := des(fields[numLeaderFields:])
		if err != nil {
			return curated.Errorf("database: %v", err)
		}

		db.entries[key] = ent
	}

	if err := scanner.Err(); err != nil {
		return curated.Errorf("database: %v", err)
	}

	return nil
}

func (db *Session) write() (rerr error) {
	f, err := os.Create(db.path)
	if err != nil {
		return curated.Errorf("database: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			rerr = curated.Errorf("database: %v", err)
		}
	}()

	for _, key := range db.SortedKeyList() {
		ent := db.entries[key]

		ser, err := ent.Serialise()
		if err != nil {
			return curated.Errorf("database: %v", err)
		}

		s := recordHeader(key, ent.ID())
		if len(ser) > 0 {
			s += fieldSep + strings.Join(ser, fieldSep)
		}

		if _, err := f.WriteString(s + entrySep); err != nil {
			return curated.Errorf("database: %v", err)
		}
	}

	return nil
}
