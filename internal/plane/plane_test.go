package plane

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlane(t *testing.T, w, h uint32) *Plane {
	t.Helper()
	p, err := New(w, h, XY{-0.5, 0}, 4.0/float64(w), 3.0/float64(h), 0, XY{-1.25643, -0.381086})
	require.NoError(t, err)
	return p
}

func TestResetRejectsNonPositiveResolution(t *testing.T) {
	p := &Plane{}
	err := p.Reset(10, 10, XY{}, 0, 1, 0, XY{})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	err = p.Reset(10, 10, XY{}, 1, -1, 0, XY{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestPartitionInvariant(t *testing.T) {
	p := newTestPlane(t, 40, 30)
	total := p.Escaped + p.TrappedCount + len(p.Live)
	assert.Equal(t, 40*30, total)
}

func TestLiveExcludesTrappedPoints(t *testing.T) {
	p := newTestPlane(t, 60, 45)
	for _, idx := range p.Live {
		assert.False(t, p.AllPoints[idx].Trapped)
		assert.Zero(t, p.AllPoints[idx].Escaped)
	}
}

func TestTrappedPointsAreNeverInLive(t *testing.T) {
	p := newTestPlane(t, 60, 45)
	live := make(map[int]bool, len(p.Live))
	for _, idx := range p.Live {
		live[idx] = true
	}
	for i, pt := range p.AllPoints {
		if pt.Trapped {
			assert.False(t, live[i])
		}
	}
}

func TestResetIsIdempotent(t *testing.T) {
	p := newTestPlane(t, 20, 15)
	first := make([]Point, len(p.AllPoints))
	copy(first, p.AllPoints)
	firstLive := append([]int(nil), p.Live...)

	require.NoError(t, p.Reset(p.WinWidth, p.WinHeight, p.Center, p.ResolutionX, p.ResolutionY, p.FunctionIndex, p.Seed))

	assert.Equal(t, first, p.AllPoints)
	assert.Equal(t, firstLive, p.Live)
	assert.Zero(t, p.IterationCount)
	assert.Zero(t, p.Unchanged)
}

func TestMandelbrotTrappedPredicateMatchesCardioidAndBulb(t *testing.T) {
	assert.True(t, Trapped(XY{0, 0}))   // centre of main cardioid
	assert.True(t, Trapped(XY{-1, 0}))  // centre of period-2 bulb
	assert.False(t, Trapped(XY{1, 1}))  // well outside the set
	assert.False(t, Trapped(XY{-2, 0})) // the set's leftmost tip: in the set, but outside cardioid and bulb
}

func TestPanLeftThenRightRestoresCentre(t *testing.T) {
	p := newTestPlane(t, 20, 15)
	original := p.Center

	require.NoError(t, p.Pan("left"))
	require.NoError(t, p.Pan("right"))

	assert.InDelta(t, original.X, p.Center.X, 1e-9)
	assert.InDelta(t, original.Y, p.Center.Y, 1e-9)
}

func TestZoomInThenOutRestoresResolution(t *testing.T) {
	p := newTestPlane(t, 20, 15)
	resX, resY := p.ResolutionX, p.ResolutionY

	require.NoError(t, p.Zoom(true))
	require.NoError(t, p.Zoom(false))

	assert.InDelta(t, resX, p.ResolutionX, 1e-12)
	assert.InDelta(t, resY, p.ResolutionY, 1e-12)
}

func TestZoomIn10TimesThenOut10TimesRestoresResolution(t *testing.T) {
	p := newTestPlane(t, 20, 15)
	resX, resY := p.ResolutionX, p.ResolutionY
	centerBefore := p.Center

	for i := 0; i < 10; i++ {
		require.NoError(t, p.Zoom(true))
	}
	for i := 0; i < 10; i++ {
		require.NoError(t, p.Zoom(false))
	}

	assert.InDelta(t, resX, p.ResolutionX, 1e-9)
	assert.InDelta(t, resY, p.ResolutionY, 1e-9)
	assert.Equal(t, centerBefore, p.Center)
}

// TestSwitchMandelbrotJuliaMandelbrotRestoresView drives the real input
// loop's control surface (repeated NextFunction calls, spec.md §6's
// "Space" binding) through a full Mandelbrot->Julia->Mandelbrot cycle and
// checks the view is restored exactly, per spec.md §8 invariant 7. The
// base Variants table has exactly two entries (see variant.go), so the
// cycle completes in two calls.
func TestSwitchMandelbrotJuliaMandelbrotRestoresView(t *testing.T) {
	p := newTestPlane(t, 20, 15)
	originalCenter, originalSeed := p.Center, p.Seed
	originalResX, originalResY := p.ResolutionX, p.ResolutionY

	require.NoError(t, p.NextFunction()) // -> Julia
	assert.Equal(t, 1, p.FunctionIndex)
	require.NoError(t, p.NextFunction()) // -> Mandelbrot
	assert.Equal(t, 0, p.FunctionIndex)

	assert.Equal(t, originalCenter, p.Center)
	assert.Equal(t, originalSeed, p.Seed)
	assert.InDelta(t, originalResX, p.ResolutionX, 1e-12)
	assert.InDelta(t, originalResY, p.ResolutionY, 1e-12)
}

// TestSwitchMandelbrotToJuliaAndBackSwapsRoundTrip checks the mid-cycle
// state too: entering Julia via NextFunction must actually swap
// Center/Seed (the Julia seed becomes the view's centre, and vice versa),
// not just happen to restore the original on the way back out.
func TestSwitchMandelbrotToJuliaAndBackSwapsRoundTrip(t *testing.T) {
	p := newTestPlane(t, 20, 15)
	originalCenter, originalSeed := p.Center, p.Seed

	require.NoError(t, p.NextFunction()) // -> Julia
	assert.Equal(t, originalSeed, p.Center)
	assert.Equal(t, originalCenter, p.Seed)

	require.NoError(t, p.NextFunction()) // -> Mandelbrot
	assert.Equal(t, originalCenter, p.Center)
	assert.Equal(t, originalSeed, p.Seed)
}

func TestResizePreservesRatio(t *testing.T) {
	p := newTestPlane(t, 40, 30)
	xSpanBefore := p.ResolutionX * float64(p.WinWidth)
	ySpanBefore := p.ResolutionY * float64(p.WinHeight)

	require.NoError(t, p.Resize(80, 60, true))

	xSpanAfter := p.ResolutionX * float64(p.WinWidth)
	ySpanAfter := p.ResolutionY * float64(p.WinHeight)
	assert.InDelta(t, xSpanBefore, xSpanAfter, 1e-9)
	assert.InDelta(t, ySpanBefore, ySpanAfter, 1e-9)
}
