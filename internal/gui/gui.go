// Package gui implements the windowing/input backend named as an
// external collaborator in spec.md §1/§6: a graphics surface that hands
// back a pixel buffer and delivers keyboard/mouse events, built on
// raylib-go the way albertnadal-MandelbrotGoLang wires it.
package gui

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	rg "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"golang.org/x/image/draw"

	"github.com/whalelogic/fractalscope/internal/colorize"
	"github.com/whalelogic/fractalscope/internal/config"
	"github.com/whalelogic/fractalscope/internal/engine"
	"github.com/whalelogic/fractalscope/internal/fpscontrol"
	"github.com/whalelogic/fractalscope/internal/plane"
	"github.com/whalelogic/fractalscope/internal/pool"
)

// snapshotMaxWidth bounds the exported PNG's width; frames wider than
// this are downsampled with x/image/draw rather than written 1:1, so a
// snapshot from a very large window stays a reasonable file size.
const snapshotMaxWidth = 1920

// Surface owns the raylib window, the pixel buffer, and the worker pool
// feeding both the iteration engine and the colouring pass.
type Surface struct {
	pl     *plane.Plane
	wp     *pool.Pool
	pal    colorize.Palette
	pixels []uint32
	canvas rl.RenderTexture2D
	fps    *fpscontrol.Controller
}

// New creates the window, allocates the pixel buffer, and starts the
// worker pool sized to opts.Threads.
func New(opts config.Options, pl *plane.Plane) (*Surface, error) {
	rl.InitWindow(int32(opts.Width), int32(opts.Height), "fractalscope")
	rl.SetTargetFPS(60)

	wp, err := pool.New(opts.Threads)
	if err != nil {
		return nil, err
	}

	s := &Surface{
		pl:     pl,
		wp:     wp,
		pal:    colorize.GrowPalette(2048, opts.SkipRounds),
		pixels: make([]uint32, opts.Width*opts.Height),
		canvas: rl.LoadRenderTexture(int32(opts.Width), int32(opts.Height)),
		fps:    fpscontrol.New(),
	}
	return s, nil
}

// Close stops the worker pool and releases the window/texture.
func (s *Surface) Close() {
	s.wp.StopAndFree()
	rl.UnloadTexture(s.canvas.Texture)
	rl.CloseWindow()
}

// Run drives the main loop until the window is asked to close or the
// user presses Esc/q.
func (s *Surface) Run() {
	for !rl.WindowShouldClose() {
		s.handleInput()

		start := time.Now()
		_, err := engine.Iterate(s.pl, s.wp, s.fps.ItPerFrame)
		if err != nil {
			config.Fatalf("gui: iterate: %v", err)
		}
		s.fps.Observe(time.Since(start))

		if err := colorize.MapFrame(s.pl, s.wp, s.pal, s.pixels); err != nil {
			config.Fatalf("gui: colorize: %v", err)
		}

		s.draw()
		s.fps.Tick(os.Stderr, time.Now(), s.fps.ItPerFrame, s.wp.Size(), s.pl.Escaped, s.pl.TrappedCount+len(s.pl.Live))
	}
}

func (s *Surface) draw() {
	rl.UpdateTexture(s.canvas.Texture, s.pixels)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	rl.DrawTexture(s.canvas.Texture, 0, 0, rl.White)
	rg.Label(rl.NewRectangle(4, 4, 200, 16), statusLine(s.pl))
	rl.EndDrawing()
}

func statusLine(pl *plane.Plane) string {
	return plane.Variants[pl.FunctionIndex].Name
}

// handleInput maps raylib key/mouse state onto the pan/zoom/recentre/
// next-function/thread-count operations from spec.md §6's input table.
// Esc/q/Space are level-triggered; pan/zoom/thread-count are
// edge-triggered via IsKeyPressed, which raylib itself debounces.
func (s *Surface) handleInput() {
	if rl.IsKeyDown(rl.KeyEscape) || rl.IsKeyDown(rl.KeyQ) {
		rl.CloseWindow()
		return
	}
	if rl.IsKeyDown(rl.KeySpace) {
		if err := s.pl.NextFunction(); err != nil {
			config.Fatalf("gui: next function: %v", err)
		}
	}

	if rl.IsKeyPressed(rl.KeyW) || rl.IsKeyPressed(rl.KeyUp) {
		_ = s.pl.Pan("up")
	}
	if rl.IsKeyPressed(rl.KeyS) || rl.IsKeyPressed(rl.KeyDown) {
		_ = s.pl.Pan("down")
	}
	if rl.IsKeyPressed(rl.KeyA) || rl.IsKeyPressed(rl.KeyLeft) {
		_ = s.pl.Pan("left")
	}
	if rl.IsKeyPressed(rl.KeyD) || rl.IsKeyPressed(rl.KeyRight) {
		_ = s.pl.Pan("right")
	}

	if rl.IsKeyPressed(rl.KeyZ) || rl.IsKeyPressed(rl.KeyPageDown) || rl.GetMouseWheelMove() > 0 {
		_ = s.pl.Zoom(true)
	}
	if rl.IsKeyPressed(rl.KeyX) || rl.IsKeyPressed(rl.KeyPageUp) || rl.GetMouseWheelMove() < 0 {
		_ = s.pl.Zoom(false)
	}

	if rl.IsKeyPressed(rl.KeyM) {
		s.pl.NumThreads++
		grown, err := engine.EnsurePool(s.wp, int(s.pl.NumThreads))
		if err != nil {
			config.Fatalf("gui: grow pool: %v", err)
		}
		s.wp = grown
	}
	if rl.IsKeyPressed(rl.KeyN) && s.pl.NumThreads > 1 {
		s.pl.NumThreads--
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		mx, my := rl.GetMouseX(), rl.GetMouseY()
		_ = s.pl.Recenter(uint32(mx), uint32(my))
	}

	if rl.IsKeyPressed(rl.KeyP) {
		path := fmt.Sprintf("fractalscope-%d.png", time.Now().UnixNano())
		if err := s.SaveSnapshot(path); err != nil {
			config.Fatalf("gui: save snapshot: %v", err)
		}
	}
}

// SaveSnapshot encodes the current pixel buffer as a PNG at path,
// downscaling with x/image/draw first when the frame is wider than
// snapshotMaxWidth.
func (s *Surface) SaveSnapshot(path string) error {
	src := image.NewRGBA(image.Rect(0, 0, int(s.pl.WinWidth), int(s.pl.WinHeight)))
	for i, px := range s.pixels {
		src.Pix[i*4+0] = byte(px >> 16)
		src.Pix[i*4+1] = byte(px >> 8)
		src.Pix[i*4+2] = byte(px)
		src.Pix[i*4+3] = 0xff
	}

	out := image.Image(src)
	if int(s.pl.WinWidth) > snapshotMaxWidth {
		scale := float64(snapshotMaxWidth) / float64(s.pl.WinWidth)
		dstH := int(float64(s.pl.WinHeight) * scale)
		dst := image.NewRGBA(image.Rect(0, 0, snapshotMaxWidth, dstH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
		out = dst
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, out)
}
