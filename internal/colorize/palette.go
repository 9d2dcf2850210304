// Package colorize turns per-pixel escape counts into packed ARGB pixels:
// palette construction (HSV-ramped, with a black "skip" prefix) and a
// parallel per-frame mapping pass over the plane's points.
package colorize

import (
	"math"
	"runtime"
	"sync/atomic"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/whalelogic/fractalscope/internal/plane"
	"github.com/whalelogic/fractalscope/internal/pool"
)

// RGB is a 24-bit colour triple.
type RGB struct {
	R, G, B uint8
}

// Palette is an ordered array of colours indexed by escaped mod len(Palette).
type Palette []RGB

// GrowPalette returns a Palette of length l with entries [0, skipRounds)
// forced to black and each remaining entry i set to
// hue = 360*frac(log2(i)/8), saturation = 1, value = 1.
//
// Growing an existing palette (by calling GrowPalette again with a larger
// l) is cheap because every entry is a pure function of its index; there
// is nothing to preserve beyond recomputing, so "growing preserves
// already-computed entries" falls out for free.
func GrowPalette(l int, skipRounds uint32) Palette {
	pal := make(Palette, l)
	for i := 0; i < l; i++ {
		if uint32(i) < skipRounds {
			pal[i] = RGB{0, 0, 0}
			continue
		}
		pal[i] = hueEntry(i)
	}
	return pal
}

func hueEntry(i int) RGB {
	var hue float64
	if i > 0 {
		v := math.Log2(float64(i)) / 8
		hue = 360 * (v - math.Floor(v))
	}
	c := colorful.Hsv(hue, 1, 1)
	return RGB{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
	}
}

func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// Pack returns the 32-bit ARGB word for an RGB entry (alpha forced opaque).
func (c RGB) Pack() uint32 {
	return 0xFF000000 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// lineRangeContext maps a contiguous run of rows; see MapFrame.
type lineRangeContext struct {
	pl     *plane.Plane
	pal    Palette
	pixels []uint32
	yStart int
	yEnd   int
	done   atomic.Bool
}

func (c *lineRangeContext) run(arg any) int {
	width := int(c.pl.WinWidth)
	n := len(c.pal)
	for y := c.yStart; y < c.yEnd; y++ {
		row := y * width
		for x := 0; x < width; x++ {
			idx := row + x
			escaped := c.pl.AllPoints[idx].Escaped
			entry := c.pal[int(escaped)%n]
			c.pixels[idx] = entry.Pack()
		}
	}
	c.done.Store(true)
	return 0
}

// MapFrame maps every pixel's final escape count through pal into pixels,
// a buffer matching the plane's dimensions. Work is split into W
// contiguous row ranges (not stripes — each row is independent, and
// locality on the pixel buffer matters more than balancing load across
// clustered survivors, unlike the iteration engine's partition).
func MapFrame(pl *plane.Plane, wp *pool.Pool, pal Palette, pixels []uint32) error {
	if len(pal) == 0 {
		return nil
	}
	height := int(pl.WinHeight)
	w := 1
	if wp != nil {
		w = wp.Size()
	}
	if w < 1 {
		w = 1
	}

	if w < 2 {
		ctx := &lineRangeContext{pl: pl, pal: pal, pixels: pixels, yStart: 0, yEnd: height}
		ctx.run(nil)
		return nil
	}

	lines := height / w
	if lines < 1 {
		lines = 1
	}

	contexts := make([]*lineRangeContext, 0, w)
	y := 0
	for t := 0; t < w && y < height; t++ {
		yEnd := y + lines
		if t == w-1 || yEnd > height {
			yEnd = height
		}
		ctx := &lineRangeContext{pl: pl, pal: pal, pixels: pixels, yStart: y, yEnd: yEnd}
		contexts = append(contexts, ctx)
		if err := wp.Add(ctx.run, nil); err != nil {
			return err
		}
		y = yEnd
	}

	if err := wp.Wait(); err != nil {
		return err
	}
	for _, ctx := range contexts {
		for !ctx.done.Load() {
			runtime.Gosched()
		}
	}
	return nil
}
