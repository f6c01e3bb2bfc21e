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

// Package regression records the frame digest of known ROMs and compares
// emulation output against those recordings in later runs. Regression
// entries are stored in a plain-text database under the resource path.
package regression

import (
	"fmt"
	"io"
	"strconv"

	"github.com/hexbus/gopher8/curated"
	"github.com/hexbus/gopher8/database"
	"github.com/hexbus/gopher8/paths"
)

// the location of the regressionDB file.
const regressionDBFile = "regressionDB"

// Regressor is the generic entry type in the regressionDB database.
type Regressor interface {
	database.Entry

	// perform the regression test for the regression type. the newRegression
	// flag is true if the test is being run as part of adding a new
	// regression to the database.
	//
	// message is the string to print before the regression test is run. it
	// can be used to indicate test progress
	regress(newRegression bool, output io.Writer, message string) (bool, error)
}

// when starting a database session we must register what entry types will be
// found in the database.
func initDBSession(db *database.Session) error {
	if err := db.RegisterEntryType(videoEntryType, deserialiseVideoEntry); err != nil {
		return err
	}
	return nil
}

// RegressList lists all entries in the regression database.
func RegressList(output io.Writer) error {
	if output == nil {
		return curated.Errorf("regression: %v", "io.Writer should not be nil (RegressList)")
	}

	db, err := database.StartSession(paths.ResourcePath(regressionDBFile), database.ActivityReading, initDBSession)
	if err != nil {
		return err
	}
	defer db.EndSession(false)

	return db.List(output)
}

// RegressAdd adds a new regression handler to the database. the regression
// is run once to record the initial digest.
func RegressAdd(output io.Writer, reg Regressor) error {
	if output == nil {
		return curated.Errorf("regression: %v", "io.Writer should not be nil (RegressAdd)")
	}

	msg := fmt.Sprintf("adding: %s", reg)

	ok, err := reg.regress(true, output, msg)
	if err != nil || !ok {
		return err
	}

	output.Write([]byte(fmt.Sprintf("\radded: %s\n", reg)))

	db, err := database.StartSession(paths.ResourcePath(regressionDBFile), database.ActivityCreating, initDBSession)
	if err != nil {
		return err
	}
	defer db.EndSession(true)

	return db.Add(reg)
}

// RegressDelete removes the specified key from the database. the confirmation
// io.Reader is used to ask the user for confirmation; an io.Reader that
// immediately returns 'y' will skip the question.
func RegressDelete(output io.Writer, confirmation io.Reader, key string) error {
	if output == nil {
		return curated.Errorf("regression: %v", "io.Writer should not be nil (RegressDelete)")
	}

	v, err := strconv.Atoi(key)
	if err != nil {
		return curated.Errorf("regression: invalid key (%s)", key)
	}

	db, err := database.StartSession(paths.ResourcePath(regressionDBFile), database.ActivityModifying, initDBSession)
	if err != nil {
		return err
	}
	defer db.EndSession(true)

	ent, err := db.Get(v)
	if err != nil {
		return err
	}

	output.Write([]byte(fmt.Sprintf("%s\ndelete? (y/n): ", ent)))

	confirm := make([]byte, 32)
	if _, err := confirmation.Read(confirm); err != nil {
		return curated.Errorf("regression: %v", err)
	}

	if confirm[0] == 'y' || confirm[0] == 'Y' {
		if err := db.Delete(v); err != nil {
			return err
		}
		output.Write([]byte(fmt.Sprintf("deleted test #%d from regression database\n", v)))
	}

	return nil
}

// RegressRun runs all the tests in the regression database. if the keys
// argument is not empty then only the specified tests are run.
func RegressRun(output io.Writer, verbose bool, keys []string) error {
	if output == nil {
		return curated.Errorf("regression: %v", "io.Writer should not be nil (RegressRun)")
	}

	db, err := database.StartSession(paths.ResourcePath(regressionDBFile), database.ActivityReading, initDBSession)
	if err != nil {
		return err
	}
	defer db.EndSession(false)

	keysV := make([]int, 0, len(keys))
	for i := range keys {
		v, err := strconv.Atoi(keys[i])
		if err != nil {
			return curated.Errorf("regression: invalid key (%s)", keys[i])
		}
		keysV = append(keysV, v)
	}

	numSucceed := 0
	numFail := 0
	numError := 0

	defer func() {
		output.Write([]byte(fmt.Sprintf("regression tests: %d succeed, %d fail, %d error\n", numSucceed, numFail, numError)))
	}()

	_, err = db.SelectKeys(func(ent database.Entry) error {
		reg, ok := ent.(Regressor)
		if !ok {
			return curated.Errorf("regression: unexpected entry type (%s)", ent.ID())
		}

		msg := fmt.Sprintf("running: %s", reg)

		ok, err := reg.regress(false, output, msg)
		if err != nil {
			numError++
			output.Write([]byte(fmt.Sprintf("\rerror: %s\n", reg)))
			if verbose {
				output.Write([]byte(fmt.Sprintf("  %v\n", err)))
			}
			// an error in one test does not stop the remaining tests
			return nil
		}

		if !ok {
			numFail++
			output.Write([]byte(fmt.Sprintf("\rfail: %s\n", reg)))
			return nil
		}

		numSucceed++
		output.Write([]byte(fmt.Sprintf("\rsucceed: %s\n", reg)))
		return nil
	}, keysV...)

	if err != nil {
		// an empty database is not an error
		if curated.Is(err, "database: select empty") {
			return nil
		}
		return err
	}

	return nil
}
