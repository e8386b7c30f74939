package terminal

import (
	"math"
	"strings"

	"github.com/LeonardoBeccarini/symbiont/internal/projection"
)

// ChartRows is the height of the block chart; each row covers
// ViewHeight/ChartRows viewBox units.
const ChartRows = 10

const (
	blockFull  = "██"
	blockEmpty = "  "
)

// Columns returns how many rows each bar fills, clipped to the chart like
// the SVG viewBox clips it.
func Columns(c projection.Chart) []int {
	unit := float64(projection.ViewHeight) / ChartRows
	out := make([]int, len(c.Bars))
	for i, b := range c.Bars {
		n := int(math.Round(b.Height / unit))
		out[i] = min(max(n, 0), ChartRows)
	}
	return out
}

// RenderChart draws the bars as block columns, top row first.
func RenderChart(c projection.Chart) []string {
	cols := Columns(c)
	rows := make([]string, 0, ChartRows+1)
	for r := ChartRows; r >= 1; r-- {
		var b strings.Builder
		for i, n := range cols {
			if i > 0 {
				b.WriteByte(' ')
			}
			if n >= r {
				b.WriteString(blockFull)
			} else {
				b.WriteString(blockEmpty)
			}
		}
		rows = append(rows, b.String())
	}
	return rows
}
