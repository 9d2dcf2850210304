// Command fractalscope-ascii is the headless rendering backend: it
// iterates the plane to completion (or until --halt_after) and prints
// glyph frames to the terminal, matching the CLI check harness in
// spec.md §8 scenario 1.
package main

import (
	"os"

	"github.com/whalelogic/fractalscope/internal/ascii"
	"github.com/whalelogic/fractalscope/internal/config"
	"github.com/whalelogic/fractalscope/internal/diag"
	"github.com/whalelogic/fractalscope/internal/engine"
	"github.com/whalelogic/fractalscope/internal/plane"
	"github.com/whalelogic/fractalscope/internal/pool"
)

const stepsPerBatch = 25

func main() {
	defer diag.RecoverAndReport()

	opts := config.Parse(config.DefaultsASCII(), os.Args[1:])

	pl, err := plane.New(
		uint32(opts.Width), uint32(opts.Height),
		plane.XY{X: opts.CenterX, Y: opts.CenterY},
		(opts.To-opts.From)/float64(opts.Width),
		(opts.To-opts.From)/float64(opts.Width),
		opts.Function,
		plane.XY{X: opts.SeedX, Y: opts.SeedY},
	)
	if err != nil {
		config.Fatalf("fractalscope-ascii: initial plane: %v", err)
	}
	pl.HaltAfter = opts.HaltAfter
	pl.SkipRounds = opts.SkipRounds
	pl.NumThreads = uint32(opts.Threads)

	wp, err := pool.New(opts.Threads)
	if err != nil {
		config.Fatalf("fractalscope-ascii: pool: %v", err)
	}
	defer wp.StopAndFree()

	variantName := plane.Variants[pl.FunctionIndex].Name

	for !engine.Done(pl, 0) {
		if _, err := engine.Iterate(pl, wp, stepsPerBatch); err != nil {
			config.Fatalf("fractalscope-ascii: iterate: %v", err)
		}
		ascii.Render(os.Stdout, pl, variantName)
	}
}
