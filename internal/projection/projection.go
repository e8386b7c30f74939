// Package projection derives the toy monthly growth chart shown under the metrics.
//
// The twelve-point sequence, the "rising to" figure and the "projected 2030"
// figure use three independent multipliers on the same yield.
package projection

import (
	"fmt"
	"math"
)

const (
	Months = 12

	// MonthlyStep is the linear growth added per month.
	MonthlyStep = 0.1
	// RisingMultiplier drives the accessible trend label.
	RisingMultiplier = 1.4
	// TotalMultiplier drives the "Projected 2030" figure.
	TotalMultiplier = 4.5

	ViewWidth  = 200
	ViewHeight = 100
	BarStride  = 16
	BarWidth   = 15
	HeightPerT = 2.0
	BarFill    = "#008000"
)

// Project returns the twelve monthly values y*(1+i*0.1).
func Project(y float64) []float64 {
	out := make([]float64, Months)
	for i := range out {
		out[i] = y * (1 + float64(i)*MonthlyStep)
	}
	return out
}

// RisingTo is the figure announced in the chart's accessible label.
func RisingTo(y float64) float64 { return y * RisingMultiplier }

// ProjectedTotal is the "Projected 2030" figure.
func ProjectedTotal(y float64) float64 { return y * TotalMultiplier }

// Bar is one rectangle of the chart in viewBox coordinates.
type Bar struct {
	Month  int     `json:"month"` // 1-based
	Value  float64 `json:"value"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Fill   string  `json:"fill"`
	Title  string  `json:"title"`
}

// Bars maps values to rectangles; heights never go negative.
func Bars(values []float64) []Bar {
	out := make([]Bar, len(values))
	for i, v := range values {
		h := BarHeight(v)
		out[i] = Bar{
			Month:  i + 1,
			Value:  v,
			X:      float64(i * BarStride),
			Y:      ViewHeight - h,
			Width:  BarWidth,
			Height: h,
			Fill:   BarFill,
			Title:  fmt.Sprintf("Month %d: %.1f tons", i+1, v),
		}
	}
	return out
}

// BarHeight is max(0, v*2); NaN renders as an empty bar.
func BarHeight(v float64) float64 {
	h := v * HeightPerT
	if math.IsNaN(h) || h < 0 {
		return 0
	}
	return h
}

// Chart bundles everything a host needs to draw the projection.
type Chart struct {
	Yield          float64   `json:"yield"`
	Values         []float64 `json:"values"`
	Bars           []Bar     `json:"bars"`
	RisingTo       float64   `json:"rising_to"`
	ProjectedTotal float64   `json:"projected_total"`
	AriaLabel      string    `json:"aria_label"`
	Width          int       `json:"width"`
	Height         int       `json:"height"`
}

// NewChart computes the chart for a yield.
func NewChart(y float64) Chart {
	values := Project(y)
	return Chart{
		Yield:          y,
		Values:         values,
		Bars:           Bars(values),
		RisingTo:       RisingTo(y),
		ProjectedTotal: ProjectedTotal(y),
		AriaLabel:      fmt.Sprintf("Yield trend: rising to %s tons", FormatNumber(RisingTo(y))),
		Width:          ViewWidth,
		Height:         ViewHeight,
	}
}

// FormatNumber prints v with the shortest representation, like a browser would.
func FormatNumber(v float64) string {
	return fmt.Sprintf("%v", v)
}
