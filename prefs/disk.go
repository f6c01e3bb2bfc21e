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

// Package prefs stores and restores preference values used by other parts of
// the emulation. Preference types are safe to access concurrently and a Disk
// instance groups preferences for saving to and loading from a single file
// under the resource path.
package prefs

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hexbus/gopher8/curated"
	"github.com/hexbus/gopher8/logger"
)

// the string that separates the key from the value in the saved file.
const keySep = " :: "

// WarnNearPrefsFile is the warning that is printed to the log when a prefs
// file contains an entry that is not recognised.
const warnUnrecognisedEntry = "unrecognised entry in prefs file"

// Disk represents a collection of preferences that are loaded from and saved
// to a single file on disk.
type Disk struct {
	path    string
	entries map[string]pref
	keys    []string
}

// NewDisk is the preferred method of initialisation for the Disk type. The
// path argument should be the result of a call to paths.ResourcePath().
func NewDisk(path string) (*Disk, error) {
	return &Disk{
		path:    path,
		entries: make(map[string]pref),
	}, nil
}

// Add a preference to the Disk collection under the supplied key.
func (dsk *Disk) Add(key string, p pref) error {
	if _, ok := dsk.entries[key]; ok {
		return curated.Errorf("prefs: duplicate key (%s)", key)
	}
	dsk.entries[key] = p
	dsk.keys = append(dsk.keys, key)
	sort.Strings(dsk.keys)
	return nil
}

// Save current preference values to disk.
func (dsk *Disk) Save() (rerr error) {
	if err := os.MkdirAll(filepath.Dir(dsk.path), 0755); err != nil {
		return curated.Errorf("prefs: %v", err)
	}

	f, err := os.Create(dsk.path)
	if err != nil {
		return curated.Errorf("prefs: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil {
			rerr = curated.Errorf("prefs: %v", err)
		}
	}()

	for _, k := range dsk.keys {
		if _, err := f.WriteString(k + keySep + dsk.entries[k].String() + "\n"); err != nil {
			return curated.Errorf("prefs: %v", err)
		}
	}

	return nil
}

// Load preference values from disk. A missing prefs file is not an error; the
// current (default) values are kept.
func (dsk *Disk) Load() error {
	f, err := os.Open(dsk.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return curated.Errorf("prefs: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		s := scanner.Text()
		if strings.TrimSpace(s) == "" {
			continue
		}

		p := strings.SplitN(s, keySep, 2)
		if len(p) != 2 {
			logger.Logf("prefs", "%s (%s)", warnUnrecognisedEntry, s)
			continue
		}

		ent, ok := dsk.entries[p[0]]
		if !ok {
			// an entry for another part of the application, or from an older
			// version. leave it alone by ignoring it
			continue
		}

		if err := ent.Set(p[1]); err != nil {
			return curated.Errorf("prefs: %v", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return curated.Errorf("prefs: %v", err)
	}

	return nil
}
