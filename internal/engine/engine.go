// Package engine implements the incremental escape-time iteration loop:
// advancing only not-yet-escaped points, partitioning the work across the
// worker pool by striping the live-points list, and compacting the
// surviving points so the work done per frame shrinks monotonically.
package engine

import (
	"runtime"
	"sync/atomic"

	"github.com/whalelogic/fractalscope/internal/plane"
	"github.com/whalelogic/fractalscope/internal/pool"
)

// stripeContext is the per-worker state for one Iterate batch: a strided
// view of the live list, a private scratch output buffer, and local
// counters. Different contexts never touch the same Point or the same
// Scratch index, so no synchronization is needed within a batch.
type stripeContext struct {
	pl        *plane.Plane
	variant   plane.Variant
	live      []int
	w, t      int
	steps     uint64
	startIter uint64

	scratch []int

	localEscaped    int
	localNotEscaped int
	done            atomic.Bool
}

// run is the Job body submitted to the pool; arg is unused (the context
// carries everything it needs as a receiver).
func (c *stripeContext) run(arg any) int {
	points := c.pl.AllPoints
	n := 0
	for j := c.t; j < len(c.live); j += c.w {
		idx := c.live[j]
		p := &points[idx]
		for i := uint64(0); i < c.steps && p.Escaped == 0; i++ {
			if c.variant.Escaped(p.Z) {
				p.Escaped = c.startIter + i + 1
				break
			}
			c.variant.Step(p)
		}
		if p.Escaped != 0 {
			c.localEscaped++
		} else {
			c.scratch[n] = idx
			n++
			c.localNotEscaped++
		}
	}
	c.scratch = c.scratch[:n]
	c.done.Store(true)
	return 0
}

// Iterate advances the plane's live points by up to steps iterations,
// clamped so the total iteration count never exceeds a non-zero
// HaltAfter. It returns the number of points that newly escaped during
// this batch.
//
// An empty live set or steps == 0 short-circuits to zero work, per
// spec.md §4.3 / §8.
func Iterate(pl *plane.Plane, wp *pool.Pool, steps uint64) (int, error) {
	if pl.HaltAfter != 0 {
		if pl.IterationCount >= pl.HaltAfter {
			steps = 0
		} else if remaining := pl.HaltAfter - pl.IterationCount; steps > remaining {
			steps = remaining
		}
	}
	if steps == 0 || len(pl.Live) == 0 {
		return 0, nil
	}

	w := int(pl.NumThreads)
	if w < 1 {
		w = 1
	}

	variant := plane.Variants[pl.FunctionIndex]
	liveLen := len(pl.Live)

	// Stripe t owns live indices {t, t+w, t+2w, ...}, so its true count is
	// ceil((liveLen-t)/w), not a uniform share: liveLen doesn't divide w
	// evenly in general, and laying out contiguous windows sized by a
	// single rounded-up perThread can ask a later stripe for more room
	// than is left in pl.Scratch. Lay each stripe's window out at the
	// exact count it will fill instead.
	contexts := make([]*stripeContext, w)
	offset := 0
	for t := 0; t < w; t++ {
		count := 0
		if t < liveLen {
			count = (liveLen - t + w - 1) / w
		}
		lo := offset
		hi := offset + count
		contexts[t] = &stripeContext{
			pl:        pl,
			variant:   variant,
			live:      pl.Live,
			w:         w,
			t:         t,
			steps:     steps,
			startIter: pl.IterationCount,
			scratch:   pl.Scratch[lo:hi:hi],
		}
		offset = hi
	}

	if w < 2 {
		contexts[0].run(nil)
	} else {
		for _, c := range contexts {
			if err := wp.Add(c.run, nil); err != nil {
				return 0, err
			}
		}
		if err := wp.Wait(); err != nil {
			return 0, err
		}
		// Defensive re-check: Wait() already establishes happens-before
		// for every context's writes, this guards against a primitive
		// that provides a weaker guarantee (see spec.md §9).
		for _, c := range contexts {
			for !c.done.Load() {
				runtime.Gosched()
			}
		}
	}

	newLive := pl.Live[:0]
	totalEscaped := 0
	for _, c := range contexts {
		newLive = append(newLive, c.scratch...)
		totalEscaped += c.localEscaped
	}
	pl.Live = newLive
	pl.Escaped += totalEscaped
	pl.IterationCount += steps

	if len(newLive) == liveLen {
		pl.Unchanged += steps
	} else {
		pl.Unchanged = 0
	}

	return totalEscaped, nil
}

// Done reports whether the plane has reached a natural stopping point:
// the live set is empty, HaltAfter has been reached, or Unchanged has
// exceeded threshold. This is informational only — Iterate never
// enforces it, per spec.md §4.3.
func Done(pl *plane.Plane, unchangedThreshold uint64) bool {
	if len(pl.Live) == 0 {
		return true
	}
	if pl.HaltAfter != 0 && pl.IterationCount >= pl.HaltAfter {
		return true
	}
	return unchangedThreshold != 0 && pl.Unchanged > unchangedThreshold
}
