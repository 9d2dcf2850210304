// Package config parses the CLI flags shared by the GUI and ASCII front
// ends (spec.md §6) and provides the fatal-error helper used throughout
// the module for invalid-configuration and allocation failures (spec.md
// §7).
package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/alexflint/go-arg"
)

// Options is the full CLI surface from spec.md §6. Both front ends parse
// the same struct; only the zero-value defaults differ (see
// DefaultsGUI/DefaultsASCII).
type Options struct {
	Width  int `arg:"-w,--width" help:"output width in pixels"`
	Height int `arg:"-h,--height" help:"output height in pixels"`

	CenterX float64 `arg:"-x,--center_x" help:"real part of the view centre"`
	CenterY float64 `arg:"-y,--center_y" help:"imaginary part of the view centre"`

	From float64 `arg:"-f,--from" help:"left edge of the initial view on the real axis"`
	To   float64 `arg:"-t,--to" help:"right edge of the initial view on the real axis"`

	Function int `arg:"-j,--function" help:"generator: 0 Mandelbrot, 1 Julia"`

	SeedX float64 `arg:"-r,--seed_x" help:"Julia seed, real part"`
	SeedY float64 `arg:"-i,--seed_y" help:"Julia seed, imaginary part"`

	Threads int `arg:"-c,--threads" help:"worker thread count"`

	HaltAfter  uint64 `arg:"-a,--halt_after" help:"hard stop at this total iteration count, 0 for unbounded"`
	SkipRounds uint32 `arg:"-s,--skip_rounds" help:"leading palette entries forced to black"`

	Help    bool `arg:"-H,--help" help:"print usage and exit"`
	Version bool `arg:"-V,--version" help:"print version and exit"`
}

// Version is the string printed by --version. Set at build time via
// -ldflags "-X github.com/whalelogic/fractalscope/internal/config.Version=...";
// left as a plain var (not a build-info lookup) so a plain `go build`
// still produces a meaningful value in development.
var Version = "dev"

// DefaultsGUI returns the GUI front end's default Options, per spec.md §6.
func DefaultsGUI() Options {
	width := 800
	return Options{
		Width:      width,
		Height:     width * 3 / 4,
		CenterX:    -0.5,
		CenterY:    0.0,
		From:       -2.5,
		To:         -2.5 + 4.0,
		Function:   0,
		SeedX:      -1.25643,
		SeedY:      -0.381086,
		Threads:    onlineCPUsLessOne(),
		HaltAfter:  0,
		SkipRounds: 0,
	}
}

// DefaultsASCII returns the headless front end's default Options.
func DefaultsASCII() Options {
	o := DefaultsGUI()
	o.Width = 79
	o.Height = 24
	return o
}

func onlineCPUsLessOne() int {
	n := runtime.NumCPU() - 1
	if n < 1 {
		n = 1
	}
	return n
}

// Parse fills defaults (by front end) then overrides with any flags the
// user passed. --help and --version are handled here: both print and
// exit 0, matching spec.md §6. An unrecognised flag also triggers help:
// the parse error is printed to stderr, followed by the usage text, and
// the process exits 0.
func Parse(defaults Options, args []string) Options {
	opts := defaults
	parser, err := arg.NewParser(arg.Config{Program: "fractalscope"}, &opts)
	if err != nil {
		Fatalf("config: building parser: %v", err)
	}

	if err := parser.Parse(args); err != nil {
		if err == arg.ErrHelp {
			parser.WriteHelp(os.Stdout)
			os.Exit(0)
		}
		if err == arg.ErrVersion {
			fmt.Println(Version)
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "fractalscope: %v\n", err)
		parser.WriteHelp(os.Stderr)
		os.Exit(0)
	}

	if opts.Help {
		parser.WriteHelp(os.Stdout)
		os.Exit(0)
	}
	if opts.Version {
		fmt.Println(Version)
		os.Exit(0)
	}

	return opts
}

// FatalError is a fatal configuration/allocation/concurrency error,
// carrying the file:function:line of the call site per spec.md §7.
type FatalError struct {
	Site    string
	Message string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Site, e.Message)
}

// Fatalf prints file:function:line and the formatted message to stderr,
// then exits the process with status 1. It never returns.
func Fatalf(format string, args ...any) {
	site := callSite(2)
	fmt.Fprintf(os.Stderr, "%s: %s\n", site, fmt.Sprintf(format, args...))
	os.Exit(1)
}

func callSite(skip int) string {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	name := "?"
	if fn := runtime.FuncForPC(pc); fn != nil {
		name = fn.Name()
	}
	return fmt.Sprintf("%s:%s:%d", file, name, line)
}
