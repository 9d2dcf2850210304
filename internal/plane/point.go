package plane

// Point is the per-pixel iteration record.
//
// Invariants: once Escaped > 0 it never changes again; Trapped is set
// only at Reset time and only for the Mandelbrot variant; a Point with
// Trapped == true is never present in a Plane's live list.
type Point struct {
	C       XY     // fixed complex coordinate this pixel represents
	Z       XY     // current orbit value, mutated each iteration
	Seed    XY     // Julia seed; unused by variants that ignore it
	Escaped uint64 // 0 until the orbit exceeds the escape radius, then the 1-based iteration index
	Trapped bool   // true if proven in the Mandelbrot set a priori
}
