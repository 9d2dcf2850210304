// Package plane implements the coordinate-plane and per-pixel escape-time
// data model: a rectangle of the complex plane mapped one-to-one onto a
// pixel grid, with per-pixel orbit state that survives across frames.
package plane

// XY is a pair of wide-precision reals representing one complex value.
//
// Go has no portable 80-bit extended type; float64 is the widest native
// binary float available, so it is used throughout. See SPEC_FULL.md §9
// for the precision deviation this implies against the reference
// scenarios in spec.md §8.
type XY struct {
	X, Y float64
}

// Sq returns the complex square of p: (x+yi)^2 = (x^2-y^2, 2xy).
func (p XY) Sq() XY {
	return XY{p.X*p.X - p.Y*p.Y, 2 * p.X * p.Y}
}

// Add returns the component-wise sum of p and q.
func (p XY) Add(q XY) XY {
	return XY{p.X + q.X, p.Y + q.Y}
}

// AbsSq returns |p|^2, avoiding the square root needed for |p|.
func (p XY) AbsSq() float64 {
	return p.X*p.X + p.Y*p.Y
}
