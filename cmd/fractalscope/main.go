// Command fractalscope is the interactive GUI front end: it opens a
// window, continuously refines escape-time iterations for the visible
// region, and lets the user pan/zoom/recentre/switch generators with the
// keyboard and mouse (spec.md §6).
package main

import (
	"os"

	"github.com/whalelogic/fractalscope/internal/config"
	"github.com/whalelogic/fractalscope/internal/diag"
	"github.com/whalelogic/fractalscope/internal/gui"
	"github.com/whalelogic/fractalscope/internal/plane"
)

func main() {
	defer diag.RecoverAndReport()
	diag.InstallCrashHandler()

	opts := config.Parse(config.DefaultsGUI(), os.Args[1:])

	pl, err := plane.New(
		uint32(opts.Width), uint32(opts.Height),
		plane.XY{X: opts.CenterX, Y: opts.CenterY},
		(opts.To-opts.From)/float64(opts.Width),
		(opts.To-opts.From)/float64(opts.Width),
		opts.Function,
		plane.XY{X: opts.SeedX, Y: opts.SeedY},
	)
	if err != nil {
		config.Fatalf("fractalscope: initial plane: %v", err)
	}
	pl.HaltAfter = opts.HaltAfter
	pl.SkipRounds = opts.SkipRounds
	pl.NumThreads = uint32(opts.Threads)

	surface, err := gui.New(opts, pl)
	if err != nil {
		config.Fatalf("fractalscope: gui init: %v", err)
	}
	defer surface.Close()

	surface.Run()
}
