package engine

import "github.com/whalelogic/fractalscope/internal/pool"

// EnsurePool returns a pool sized to at least desired workers, reusing
// current when it is already large enough.
//
// This preserves an asymmetry documented as an open question in
// spec.md §9: lowering Plane.NumThreads never shrinks the worker pool —
// Iterate simply stripes across fewer workers than the pool has, leaving
// the rest idle for that batch. The pool only grows, and only when the
// caller raises NumThreads past the pool's current size. Growing replaces
// the pool outright rather than resizing it in place, since Pool's worker
// count is fixed for its lifetime (spec.md §4.1).
func EnsurePool(current *pool.Pool, desired int) (*pool.Pool, error) {
	if desired < 1 {
		desired = 1
	}
	if current != nil && current.Size() >= desired {
		return current, nil
	}
	next, err := pool.New(desired)
	if err != nil {
		return nil, err
	}
	if current != nil {
		current.StopAndFree()
	}
	return next, nil
}
