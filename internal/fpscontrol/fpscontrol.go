// Package fpscontrol adapts the number of iterations performed per
// rendered frame to keep frame time inside a target window, and prints a
// once-per-second throughput line.
package fpscontrol

import (
	"fmt"
	"io"
	"time"
)

const usecPerSec = 1_000_000

// Thresholds bracket the target per-frame time: below lowUsec the
// controller is running too fast for the eye (increase work per frame);
// above highUsec it is falling behind (decrease work per frame).
const (
	lowUsec  = usecPerSec / 45
	highUsec = usecPerSec / 30
)

// Controller tracks the adaptive iterations-per-frame value and the
// running totals needed for the once-per-second status line.
type Controller struct {
	ItPerFrame uint64

	lastReportAt   time.Time
	itersThisSec   uint64
	framesThisSec  uint64
}

// New returns a Controller with ItPerFrame starting at 1, per spec.md §4.5.
func New() *Controller {
	return &Controller{ItPerFrame: 1, lastReportAt: time.Time{}}
}

// Observe records the wall-clock duration of one frame's iteration batch
// (of exactly ItPerFrame iterations) and adjusts ItPerFrame for the next
// frame.
func (c *Controller) Observe(frameDuration time.Duration) {
	measuredUsec := float64(frameDuration.Microseconds())
	if measuredUsec <= 0 {
		measuredUsec = 1
	}

	switch {
	case measuredUsec < lowUsec:
		c.ItPerFrame++
	case measuredUsec > highUsec && c.ItPerFrame > 1:
		if c.ItPerFrame < 10 {
			c.ItPerFrame--
		} else {
			next := uint64(float64(c.ItPerFrame) * highUsec / measuredUsec)
			if next < 1 {
				next = 1
			}
			c.ItPerFrame = next
		}
	}
}

// Tick records one completed frame for the once-per-second report and,
// if a full wall-clock second has elapsed since the last report, writes
// the throughput line to w and resets the per-second counters.
func (c *Controller) Tick(w io.Writer, now time.Time, iterationsThisFrame uint64, threads int, escaped, notEscaped int) {
	c.itersThisSec += iterationsThisFrame
	c.framesThisSec++

	if c.lastReportAt.IsZero() {
		c.lastReportAt = now
		return
	}
	if now.Sub(c.lastReportAt) < time.Second {
		return
	}

	elapsed := now.Sub(c.lastReportAt).Seconds()
	itersPerSec := float64(c.itersThisSec) / elapsed
	framesPerSec := float64(c.framesThisSec) / elapsed

	fmt.Fprintf(w, "it/s: %.1f fps: %.1f it/frame: %d threads: %d escaped: %d not: %d\n",
		itersPerSec, framesPerSec, c.ItPerFrame, threads, escaped, notEscaped)

	c.itersThisSec = 0
	c.framesThisSec = 0
	c.lastReportAt = now
}
