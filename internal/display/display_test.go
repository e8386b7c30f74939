package display

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/LeonardoBeccarini/symbiont/internal/model"
)

func TestFormatMetrics(t *testing.T) {
	assert.Equal(t, "12.0 tons/ha", FormatYield(12))
	assert.Equal(t, "17.5 tons/ha", FormatYield(17.46))
	assert.Equal(t, "25.0% Blight", FormatRisk(25))
	assert.Equal(t, "0.0% Blight", FormatRisk(0))
}

func TestFormatWaterSaved(t *testing.T) {
	tests := []struct {
		water float64
		want  string
	}{
		{0, "₦0.00"},
		{250, "₦25.00"},
		{-50, "-₦5.00"},
		{12500, "₦1,250.00"},
		{-0.01, "₦0.00"},
		{math.NaN(), "₦0.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatWaterSaved(tt.water), "water=%v", tt.water)
	}
}

func TestFormatLocalTime(t *testing.T) {
	at := time.Date(2025, 12, 31, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "31/12/2025, 23:30:00", FormatLocalTime(at, nil))

	wat := time.FixedZone("WAT", 3600)
	assert.Equal(t, "01/01/2026, 00:30:00", FormatLocalTime(at, wat))
}

func TestNew(t *testing.T) {
	v := New(model.InitialState(12), time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), time.UTC, true)
	assert.Equal(t, Values{
		Yield:       "12.0 tons/ha",
		Risk:        "25.0% Blight",
		WaterSaved:  "₦0.00",
		LocalTime:   "02/01/2025, 03:04:05",
		ThemeToggle: "☀️",
		DarkMode:    true,
	}, v)
}
