// Package plot renders single-line ASCII bars for live terminal output.
package plot

import (
	"math"
	"strings"
)

const fillChar = "#"

// Bar renders x on a [xMin, xMax] scale as a fixed-budget bar: round
// proportional fill, space-padded to exactly chars characters.
//
// Overflow keeps the historical behavior of the original tool: when x exceeds
// xMax the bar is a run of int(xMax) fill characters with no padding, not a
// chars-wide saturated bar. Downstream consumers key off that width.
func Bar(x, xMax, xMin float64, chars int) string {
	if chars <= 0 || xMax <= xMin {
		return ""
	}
	if x > xMax {
		return strings.Repeat(fillChar, int(xMax))
	}
	fill := int(math.Round((x - xMin) / (xMax - xMin) * float64(chars)))
	if fill < 0 {
		fill = 0
	}
	if fill > chars {
		fill = chars
	}
	return strings.Repeat(fillChar, fill) + strings.Repeat(" ", chars-fill)
}
