package app

import (
	"encoding/json"

	"github.com/LeonardoBeccarini/symbiont/internal/display"
	"github.com/LeonardoBeccarini/symbiont/internal/farm"
	"github.com/LeonardoBeccarini/symbiont/internal/model"
	"github.com/LeonardoBeccarini/symbiont/internal/notify"
)

// ---------- Request payloads ----------

// AdjustmentRequest is the body of /api/predict and /api/evolve.
// The adjustment may arrive as a number, a string or a bool; anything that
// is not a finite number becomes 0.
type AdjustmentRequest struct {
	Adjustment float64 `json:"adjustment"`
}

func (a *AdjustmentRequest) UnmarshalJSON(b []byte) error {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	switch x := m["adjustment"].(type) {
	case float64:
		a.Adjustment = farm.Sanitize(x)
	case string:
		a.Adjustment = farm.NormalizeAdjustment(x)
	case bool:
		if x {
			a.Adjustment = 1
		}
	default:
		// null, missing, arrays and objects count as no adjustment
		a.Adjustment = 0
	}
	return nil
}

// ---------- Responses ----------

type StateResponse struct {
	model.FarmState
	Display display.Values `json:"display"`
}

type PredictResponse struct {
	Adjustment float64         `json:"adjustment"`
	Current    model.FarmState `json:"current"`
	Predicted  model.FarmState `json:"predicted"`
}

type ThemeResponse struct {
	Dark bool   `json:"dark"`
	Icon string `json:"icon"`
}

type ToastsResponse struct {
	Toasts []notify.Toast `json:"toasts"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
