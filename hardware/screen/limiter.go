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

package screen

import (
	"fmt"
	"sync/atomic"
	"time"
)

type limiter struct {
	// whether to wait on the sync channel each frame. accessed atomically
	// because SetFPSCap() can be called from a different goroutine to the
	// emulation
	limit int32

	// the requested number of frames per second
	requested float32

	// actual calculation
	measured       atomic.Value // float32
	actualCt       int
	actualCtTarget int
	actualRefTime  time.Time

	// channels
	sync    chan bool
	reqRate chan time.Duration
	quit    chan bool
}

func (lmtr *limiter) init(fps float32) {
	lmtr.limit = 1
	lmtr.requested = fps
	lmtr.actualCtTarget = int(fps) / 2
	lmtr.actualRefTime = time.Now()
	lmtr.measured.Store(float32(0))
	lmtr.sync = make(chan bool)
	lmtr.reqRate = make(chan time.Duration)
	lmtr.quit = make(chan bool)

	rate, _ := time.ParseDuration(fmt.Sprintf("%fs", float32(1.0)/fps))

	go func() {
		tck := time.NewTicker(rate)

		for {
			select {
			case <-tck.C:
				select {
				case lmtr.sync <- true:

				// listen for reqRate signals too while signalling the sync
				// channel. if we don't do this here, it's possible for the
				// sync send to deadlock, even with very large buffers on
				// reqRate
				case d := <-lmtr.reqRate:
					tck.Stop()
					tck = time.NewTicker(d)

				case <-lmtr.quit:
					tck.Stop()
					return
				}

			// also a source for deadlocking and just generally slow response
			// times if the Ticker duration is very long
			case d := <-lmtr.reqRate:
				tck.Stop()
				tck = time.NewTicker(d)

			case <-lmtr.quit:
				tck.Stop()
				return
			}
		}
	}()
}

// stop the limiter goroutine and its ticker. the limiter cannot be restarted.
func (lmtr *limiter) end() {
	lmtr.quit <- true
}

func (lmtr *limiter) setActive(limit bool) {
	if limit {
		atomic.StoreInt32(&lmtr.limit, 1)
	} else {
		atomic.StoreInt32(&lmtr.limit, 0)
	}
}

// check fps rate and pause if necessary. called once per frame.
func (lmtr *limiter) wait() {
	if atomic.LoadInt32(&lmtr.limit) == 1 {
		<-lmtr.sync
	}
	lmtr.measureActual()
}

func (lmtr *limiter) actual() float32 {
	return lmtr.measured.Load().(float32)
}

// called every frame to calculate the actual frame rate being achieved
func (lmtr *limiter) measureActual() {
	lmtr.actualCt++
	if lmtr.actualCt >= lmtr.actualCtTarget {
		t := time.Now()
		actual := float32(lmtr.actualCtTarget) / float32(t.Sub(lmtr.actualRefTime).Seconds())
		lmtr.measured.Store(actual)

		// remeasure every second or so. if the actual rate is less than one
		// frame per second remeasure every frame
		if actual > 1 {
			lmtr.actualCtTarget = int(actual)
		} else {
			lmtr.actualCtTarget = 1
		}

		lmtr.actualRefTime = t
		lmtr.actualCt = 0
	}
}
