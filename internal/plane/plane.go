package plane

import (
	"fmt"
	"math"
)

// Plane is the coordinate-plane value object: pixel dimensions, position
// on the complex plane, the selected generator, iteration bookkeeping,
// and the per-pixel storage backing all of it.
//
// Plane.Escaped, Plane.TrappedCount, Plane.Live, and Plane.Unchanged are
// written only by the goroutine driving Iterate, never by a worker (see
// SPEC_FULL.md §5). Per-Point records are mutated only by the single
// worker that owns their stripe during a batch.
type Plane struct {
	WinWidth, WinHeight uint32

	Center                   XY
	ResolutionX, ResolutionY float64

	FunctionIndex int
	Seed          XY

	SkipRounds uint32
	HaltAfter  uint64
	NumThreads uint32

	IterationCount uint64
	Escaped        int
	TrappedCount   int
	Unchanged      uint64

	AllPoints []Point
	Live      []int
	Scratch   []int
}

// New allocates a Plane sized to width*height pixels and resets it with
// the given view parameters.
func New(width, height uint32, center XY, resX, resY float64, functionIndex int, seed XY) (*Plane, error) {
	p := &Plane{}
	if err := p.Reset(width, height, center, resX, resY, functionIndex, seed); err != nil {
		return nil, err
	}
	return p, nil
}

// Reset re-initializes every per-point field, preserving the existing
// backing arrays when they are already large enough. Fails if either
// resolution is non-positive.
func (p *Plane) Reset(width, height uint32, center XY, resX, resY float64, functionIndex int, seed XY) error {
	if resX <= 0 {
		return fmt.Errorf("plane: Reset: invalid resolution_x %v: %w", resX, ErrInvalidConfig)
	}
	if resY <= 0 {
		return fmt.Errorf("plane: Reset: invalid resolution_y %v: %w", resY, ErrInvalidConfig)
	}

	n := int(width) * int(height)
	if cap(p.AllPoints) < n {
		p.AllPoints = make([]Point, n)
		p.Live = make([]int, 0, n)
		p.Scratch = make([]int, n)
	} else {
		p.AllPoints = p.AllPoints[:n]
		p.Live = p.Live[:0]
	}

	p.WinWidth, p.WinHeight = width, height
	p.Center = center
	p.ResolutionX, p.ResolutionY = resX, resY
	p.FunctionIndex = functionIndex
	p.Seed = seed

	p.IterationCount = 0
	p.Escaped = 0
	p.TrappedCount = 0
	p.Unchanged = 0

	variant := Variants[functionIndex]

	xMin := center.X - resX*(float64(width)/2)
	yMax := center.Y + resY*(float64(height)/2)

	idx := 0
	for py := uint32(0); py < height; py++ {
		y := yMax - float64(py)*resY
		if math.Abs(y) < resY/2 {
			y = 0
		}
		for px := uint32(0); px < width; px++ {
			x := xMin + float64(px)*resX
			if math.Abs(x) < resX/2 {
				x = 0
			}

			pt := &p.AllPoints[idx]
			*pt = Point{}
			variant.Init(pt, XY{x, y}, seed)

			if pt.Trapped {
				p.TrappedCount++
			} else {
				p.Live = append(p.Live, idx)
			}
			idx++
		}
	}

	return nil
}

// Resize derives a new ResolutionX from the current x-span and the new
// pixel width. When preserveRatio is true, ResolutionY is derived from
// the y-span; otherwise ResolutionY == ResolutionX. It then resets.
func (p *Plane) Resize(width, height uint32, preserveRatio bool) error {
	xSpan := p.ResolutionX * float64(p.WinWidth)
	ySpan := p.ResolutionY * float64(p.WinHeight)

	resX := xSpan / float64(width)
	resY := resX
	if preserveRatio {
		resY = ySpan / float64(height)
	}

	return p.Reset(width, height, p.Center, resX, resY, p.FunctionIndex, p.Seed)
}

// Pan shifts the centre by one eighth of the x- or y-span in the given
// direction ("up", "down", "left", "right").
func (p *Plane) Pan(direction string) error {
	xSpan := p.ResolutionX * float64(p.WinWidth)
	ySpan := p.ResolutionY * float64(p.WinHeight)
	center := p.Center

	switch direction {
	case "up":
		center.Y += ySpan / 8
	case "down":
		center.Y -= ySpan / 8
	case "left":
		center.X -= xSpan / 8
	case "right":
		center.X += xSpan / 8
	default:
		return fmt.Errorf("plane: Pan: unknown direction %q", direction)
	}

	return p.Reset(p.WinWidth, p.WinHeight, center, p.ResolutionX, p.ResolutionY, p.FunctionIndex, p.Seed)
}

// Zoom multiplies both resolutions by 0.8 (in) or 1.25 (out), keeping the
// centre fixed.
func (p *Plane) Zoom(in bool) error {
	factor := 1.25
	if in {
		factor = 0.8
	}
	return p.Reset(p.WinWidth, p.WinHeight, p.Center, p.ResolutionX*factor, p.ResolutionY*factor, p.FunctionIndex, p.Seed)
}

// Recenter sets the new centre to the complex coordinate of pixel (x, y).
func (p *Plane) Recenter(x, y uint32) error {
	idx := int(y)*int(p.WinWidth) + int(x)
	if idx < 0 || idx >= len(p.AllPoints) {
		return fmt.Errorf("plane: Recenter: pixel (%d,%d) out of range", x, y)
	}
	center := p.AllPoints[idx].C
	return p.Reset(p.WinWidth, p.WinHeight, center, p.ResolutionX, p.ResolutionY, p.FunctionIndex, p.Seed)
}

// NextFunction advances FunctionIndex modulo len(Variants). When the
// transition is directly between the Mandelbrot and Julia variants (index
// 0 and 1, in either direction), centre and seed swap roles so that
// switching away and back reproduces the original view exactly.
func (p *Plane) NextFunction() error {
	oldIdx := p.FunctionIndex
	newIdx := (oldIdx + 1) % len(Variants)

	center, seed := p.Center, p.Seed
	if isMandelbrotJuliaPair(oldIdx, newIdx) {
		center, seed = seed, center
	}

	return p.Reset(p.WinWidth, p.WinHeight, center, p.ResolutionX, p.ResolutionY, newIdx, seed)
}

func isMandelbrotJuliaPair(a, b int) bool {
	return (a == 0 && b == 1) || (a == 1 && b == 0)
}
