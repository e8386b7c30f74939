package farm

import (
	"math"
	"strconv"
	"strings"

	"github.com/LeonardoBeccarini/symbiont/internal/model"
	"github.com/LeonardoBeccarini/symbiont/internal/model/entities"
)

// Predict computes the next farm state for a signed adjustment.
// It is pure: s is not modified and the result shares no memory with it.
// Adjustments outside the UI hint of [-10, 10] are accepted; the domain
// clamps keep yield in [0, 60] and risk at or above 0.
func Predict(s model.FarmState, adjustment float64) model.FarmState {
	if math.IsNaN(adjustment) {
		adjustment = 0
	}
	return model.FarmState{
		Yield:       Clamp(s.Yield+adjustment, entities.MinYield, entities.MaxYield),
		Risk:        math.Max(0, s.Risk-math.Abs(adjustment)*entities.RiskPerTon),
		Water:       s.Water + adjustment*entities.WaterPerTon,
		Suggestions: Suggestions(),
	}
}

// Suggestions returns the hints attached to every prediction.
func Suggestions() []string {
	out := make([]string, entities.MaxSuggestions)
	copy(out, entities.Hunches[:entities.MaxSuggestions])
	return out
}

// Clamp constrains v to [lo, hi]. NaN collapses to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// NormalizeAdjustment turns raw UI input into an adjustment.
// Anything that is not a finite number becomes 0.
func NormalizeAdjustment(raw string) float64 {
	return ParseNumber(raw)
}

// ParseNumber reads a user-supplied number, accepting a decimal comma.
// Anything that is not a finite number becomes 0.
func ParseNumber(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return 0
	}
	return Sanitize(v)
}

// Bounded brings a state from outside the store back into the domain:
// yield into [0, 60], risk to at least 0, and non-finite numbers to 0.
func Bounded(s model.FarmState) model.FarmState {
	out := s.Clone()
	out.Yield = Clamp(Sanitize(s.Yield), entities.MinYield, entities.MaxYield)
	out.Risk = math.Max(0, Sanitize(s.Risk))
	out.Water = Sanitize(s.Water)
	return out
}

// Sanitize maps NaN and ±Inf to 0.
func Sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
