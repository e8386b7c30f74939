package projection

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectTen(t *testing.T) {
	got := Project(10)
	require.Len(t, got, 12)
	for i, v := range got {
		assert.InDelta(t, 10*(1+0.1*float64(i)), v, 1e-9, "month %d", i)
		assert.InDelta(t, float64(10+i), v, 1e-9)
	}
}

func TestProjectEndpoints(t *testing.T) {
	for _, y := range []float64{0, 1, 12, 17.5, 60, -4, 1e9} {
		got := Project(y)
		require.Len(t, got, Months)
		assert.Equal(t, y, got[0])
		assert.InDelta(t, y*2.1, got[11], 1e-9*math.Max(1, math.Abs(y)))
	}
}

func TestProjectNaN(t *testing.T) {
	got := Project(math.NaN())
	assert.Len(t, got, Months)
}

func TestDisplayFigures(t *testing.T) {
	assert.InDelta(t, 16.8, RisingTo(12), 1e-9)
	assert.InDelta(t, 54.0, ProjectedTotal(12), 1e-9)
}

func TestBarsGeometry(t *testing.T) {
	bars := Bars(Project(10))
	require.Len(t, bars, 12)

	first, last := bars[0], bars[11]
	assert.Equal(t, 1, first.Month)
	assert.Equal(t, 0.0, first.X)
	assert.Equal(t, 20.0, first.Height)
	assert.Equal(t, 80.0, first.Y)
	assert.Equal(t, "Month 1: 10.0 tons", first.Title)

	assert.Equal(t, 176.0, last.X)
	assert.InDelta(t, 42.0, last.Height, 1e-9)
	assert.Equal(t, "Month 12: 21.0 tons", last.Title)

	for _, b := range bars {
		assert.Equal(t, 15.0, b.Width)
		assert.Equal(t, BarFill, b.Fill)
		assert.InDelta(t, 100.0, b.Y+b.Height, 1e-9)
	}
}

func TestBarsNeverNegative(t *testing.T) {
	for _, v := range []float64{-5, -0.01, math.NaN(), math.Inf(-1)} {
		b := Bars([]float64{v})[0]
		assert.Equal(t, 0.0, b.Height, "value %v", v)
		assert.Equal(t, 100.0, b.Y)
	}
}

func TestNewChart(t *testing.T) {
	c := NewChart(12)
	assert.Len(t, c.Values, 12)
	assert.Len(t, c.Bars, 12)
	assert.Equal(t, "Yield trend: rising to 16.799999999999997 tons", c.AriaLabel)
	assert.Equal(t, 200, c.Width)
	assert.Equal(t, 100, c.Height)
}
