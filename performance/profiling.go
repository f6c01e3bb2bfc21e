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

package performance

import (
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/hexbus/gopher8/curated"
)

// ProfileCPU runs the supplied function, writing a pprof CPU profile of the
// run to the specified file.
func ProfileCPU(outFile string, run func() error) (rerr error) {
	f, err := os.Create(outFile)
	if err != nil {
		return curated.Errorf("profiling: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			rerr = curated.Errorf("profiling: %v", err)
		}
	}()

	if err := pprof.StartCPUProfile(f); err != nil {
		return curated.Errorf("profiling: %v", err)
	}
	defer pprof.StopCPUProfile()

	return run()
}

// ProfileMem writes a pprof memory profile of the current heap to the
// specified file.
func ProfileMem(outFile string) (rerr error) {
	f, err := os.Create(outFile)
	if err != nil {
		return curated.Errorf("profiling: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			rerr = curated.Errorf("profiling: %v", err)
		}
	}()

	runtime.GC()

	if err := pprof.WriteHeapProfile(f); err != nil {
		return curated.Errorf("profiling: %v", err)
	}

	return nil
}
