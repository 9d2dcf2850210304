//go:build burningship

package plane

// burningShipInit behaves like Mandelbrot but is never trapped: the cheap
// a-priori predicates are specific to z -> z^2 + c and do not hold for the
// folded-absolute-value variant below.
func burningShipInit(p *Point, xy, seed XY) {
	p.C = xy
	p.Z = XY{0, 0}
	p.Seed = seed
	p.Trapped = false
}

// burningShipStep advances z -> (|Re(z)| + i|Im(z)|)^2 + c, the classic
// "Burning Ship" fractal generator.
func burningShipStep(p *Point) {
	re, im := p.Z.X, p.Z.Y
	if re < 0 {
		re = -re
	}
	if im < 0 {
		im = -im
	}
	folded := XY{re, im}
	p.Z = folded.Sq().Add(p.C)
}

// init appends BurningShip to the build's Variants table. It is only
// compiled in under the "burningship" build tag: NextFunction's
// Mandelbrot<->Julia role-swap (plane.go) is defined for indices 0 and 1
// only, so adding a third entry changes what a 0->1->2->0 cycle through
// NextFunction does to Center/Seed. Opting in is a deliberate trade: a
// third generator to explore, at the cost of the role-swap no longer
// reproducing index 0's original view after a full cycle through all
// three variants (see DESIGN.md).
func init() {
	Variants = append(Variants, Variant{
		Name:    "BurningShip",
		Init:    burningShipInit,
		Step:    burningShipStep,
		Escaped: escapePredicate,
	})
}
