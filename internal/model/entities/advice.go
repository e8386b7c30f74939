package entities

const (
	MinYield = 0.0
	MaxYield = 60.0

	DefaultInitialYield = 12.0
	DefaultInitialRisk  = 25.0

	// RiskPerTon is the blight risk removed per ton of |adjustment|.
	RiskPerTon = 2.0
	// WaterPerTon is the mock water saving per ton of adjustment.
	WaterPerTon = 50.0

	// MaxSuggestions is how many hints a prediction keeps.
	MaxSuggestions = 2
)

// SeedSuggestion is shown before the first prediction.
const SeedSuggestion = "Monitor humidity east plot."

// Hunches is the static advice list a prediction draws from.
var Hunches = [...]string{
	"Pivot irrigation 15° east.",
	"Dose nutrients +10% N.",
	"Harvest early if risk >20%.",
}

// InitialState builds the startup record for the given yield.
func InitialState(initialYield float64) FarmState {
	return FarmState{
		Yield:       initialYield,
		Risk:        DefaultInitialRisk,
		Water:       0,
		Suggestions: []string{SeedSuggestion},
	}
}
