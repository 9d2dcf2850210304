// Package ascii implements the headless rendering backend from spec.md
// §6: a plain-terminal glyph-per-pixel view plus a status line, used by
// cmd/fractalscope-ascii and by the CLI check harness referenced in
// spec.md §8 scenario 1.
package ascii

import (
	"bufio"
	"fmt"
	"io"

	"github.com/whalelogic/fractalscope/internal/plane"
)

const clearScreen = "\x1b[H\x1b[J"

// Glyph derives the single-character representation of an escape count:
// 0 -> space, 1-9 -> that digit, 10-35 -> uppercase letter, 36-61 ->
// lowercase letter, otherwise '*'.
func Glyph(escaped uint64) byte {
	switch {
	case escaped == 0:
		return ' '
	case escaped <= 9:
		return byte('0' + escaped)
	case escaped <= 35:
		return byte('A' + (escaped - 10))
	case escaped <= 61:
		return byte('a' + (escaped - 36))
	default:
		return '*'
	}
}

// Render clears the screen, prints WinHeight rows of WinWidth glyphs
// derived from each point's escape count, and prints a status line
// naming variantName, the iteration ordinal, and the totals
// "escaped: N not: M".
func Render(w io.Writer, pl *plane.Plane, variantName string) {
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	io.WriteString(bw, clearScreen)

	width := int(pl.WinWidth)
	height := int(pl.WinHeight)
	row := make([]byte, width+1)
	row[width] = '\n'

	for y := 0; y < height; y++ {
		base := y * width
		for x := 0; x < width; x++ {
			row[x] = Glyph(pl.AllPoints[base+x].Escaped)
		}
		bw.Write(row)
	}

	fmt.Fprintf(bw, "%s iteration %d escaped: %d not: %d\n",
		variantName, pl.IterationCount, pl.Escaped, pl.TrappedCount+len(pl.Live))
}
