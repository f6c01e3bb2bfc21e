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

// Package romloader is used to specify the location of a CHIP-8 ROM. ROMs can
// be loaded from the local filesystem or over HTTP.
package romloader

import (
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/hexbus/gopher8/curated"
)

// Loader is used to specify the ROM to load into the emulated machine. Call
// Load() to actually fetch the ROM data.
type Loader struct {
	Filename string

	// expected SHA1 hash of the loaded data. if the field is empty at load
	// time it is filled in with the hash of whatever was loaded; if it is not
	// empty the loaded data must match or Load() fails
	Hash string

	// the data of the loaded ROM. empty until Load() is called
	Data []byte
}

// NewLoader is the preferred method of initialisation for the Loader type.
func NewLoader(filename string) Loader {
	return Loader{Filename: filename}
}

// ShortName returns a shortened version of the ROM filename, with directory
// and file extension removed.
func (ld Loader) ShortName() string {
	shortCartName := filepath.Base(ld.Filename)
	shortCartName = strings.TrimSuffix(shortCartName, filepath.Ext(ld.Filename))
	return shortCartName
}

// HasLoaded returns true if ROM data has been loaded.
func (ld Loader) HasLoaded() bool {
	return len(ld.Data) > 0
}

// Load the ROM data and verify its hash. the data is retrieved over HTTP if
// the filename parses as a http or https URL.
func (ld *Loader) Load() error {
	if ld.HasLoaded() {
		return nil
	}

	scheme := "file"

	u, err := url.Parse(ld.Filename)
	if err == nil {
		scheme = u.Scheme
	}

	switch scheme {
	case "http", "https":
		resp, err := http.Get(ld.Filename)
		if err != nil {
			return curated.Errorf("romloader: %v", err)
		}
		defer resp.Body.Close()

		ld.Data, err = io.ReadAll(resp.Body)
		if err != nil {
			return curated.Errorf("romloader: %v", err)
		}

	case "file", "":
		fallthrough

	default:
		f, err := os.Open(ld.Filename)
		if err != nil {
			return curated.Errorf("romloader: %v", err)
		}
		defer f.Close()

		ld.Data, err = io.ReadAll(f)
		if err != nil {
			return curated.Errorf("romloader: %v", err)
		}
	}

	// generate hash and check for consistency
	hash := fmt.Sprintf("%x", sha1.Sum(ld.Data))
	if ld.Hash == "" {
		ld.Hash = hash
	} else if ld.Hash != hash {
		return curated.Errorf("romloader: %v", "unexpected hash value")
	}

	return nil
}
