package chart

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gonum.org/v1/plot"

	"github.com/arloliu/fitview/dataset"
)

// DefaultTickCount is the number of intervals drawn on each axis.
const DefaultTickCount = 10

// PercentTicks divides the unit interval into n equal steps and labels each
// boundary as a whole percentage, yielding n+1 ticks ("0%" ... "100%").
// n < 1 is treated as 1.
func PercentTicks(n int) []plot.Tick {
	if n < 1 {
		n = 1
	}

	ticks := make([]plot.Tick, 0, n+1)
	for i := 0; i <= n; i++ {
		v := float64(i) / float64(n)
		ticks = append(ticks, plot.Tick{Value: v, Label: fmt.Sprintf("%.0f%%", v*100)})
	}

	return ticks
}

// ColumnLabel titles a column name for axes and tooltips, e.g. "busyness"
// becomes "Busyness".
func ColumnLabel(column string) string {
	return cases.Title(language.English, cases.NoLower).String(column)
}

// Tooltip returns the hover text of a row: the row ID, the x value tagged as
// sentiment and the y value under its column label, one per line, with two
// decimals.
//
// Example:
//
//	chart.Tooltip(row, "terp", "busyness") // "P1\nterp sentiment: 0.40\nBusyness: 0.40"
func Tooltip(row dataset.Row, xCol, yCol string) string {
	var sb strings.Builder
	sb.WriteString(row.ID)
	fmt.Fprintf(&sb, "\n%s sentiment: %.2f", xCol, row.Values[xCol])
	fmt.Fprintf(&sb, "\n%s: %.2f", ColumnLabel(yCol), row.Values[yCol])

	return sb.String()
}
