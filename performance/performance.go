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

// Package performance measures the emulation frame rate over a fixed period
// of time. Optionally produces CPU and memory profiles of the measured run.
package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/hexbus/gopher8/curated"
	"github.com/hexbus/gopher8/hardware"
	"github.com/hexbus/gopher8/hardware/screen"
	"github.com/hexbus/gopher8/romloader"
)

// the amount of emulation time to wait before starting the measurement.
// allows the host to settle.
const leadTime = 2 * time.Second

// Check runs the ROM for the specified duration and reports the achieved
// frame rate.
func Check(output io.Writer, profile bool, scr *screen.Screen, ld romloader.Loader, duration string) error {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	vm, err := hardware.NewChip8(scr)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	if err := vm.AttachROM(ld); err != nil {
		return curated.Errorf("performance: %v", err)
	}

	// the phase channel signals the end of the lead time and then the end of
	// the measurement period
	phase := make(chan bool, 1)
	go func() {
		time.Sleep(leadTime)
		phase <- true
		time.Sleep(dur)
		phase <- false
	}()

	startFrame := 0
	var startTime time.Time

	runner := func() error {
		return vm.Run(func() (bool, error) {
			select {
			case measuring := <-phase:
				if !measuring {
					return false, nil
				}
				startFrame = scr.FrameNum()
				startTime = time.Now()
			default:
			}
			return true, nil
		})
	}

	if profile {
		err = ProfileCPU("performance.cpu.profile", runner)
		if err == nil {
			err = ProfileMem("performance.mem.profile")
		}
	} else {
		err = runner()
	}
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	if startTime.IsZero() {
		return curated.Errorf("performance: %v", "measurement never started")
	}

	numFrames := scr.FrameNum() - startFrame
	fps, accuracy := CalcFPS(numFrames, time.Since(startTime).Seconds())
	output.Write([]byte(fmt.Sprintf("%.2f fps (%d frames in %.2f seconds) %.1f%%\n", fps, numFrames, dur.Seconds(), accuracy)))

	return nil
}
