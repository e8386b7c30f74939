package entities

// FarmState is the single record shown by the dashboard.
type FarmState struct {
	Yield       float64  `json:"yield"`       // tons/hectare, kept in [0, 60]
	Risk        float64  `json:"risk"`        // % blight risk, never below 0
	Water       float64  `json:"water"`       // liters saved (mock), signed
	Suggestions []string `json:"suggestions"` // short hints, at most 2 after a prediction
}

// Clone returns a copy that shares no memory with s.
func (s FarmState) Clone() FarmState {
	out := s
	if s.Suggestions != nil {
		out.Suggestions = append([]string(nil), s.Suggestions...)
	}
	return out
}

// Equal reports whether two states hold the same values.
func (s FarmState) Equal(o FarmState) bool {
	if s.Yield != o.Yield || s.Risk != o.Risk || s.Water != o.Water {
		return false
	}
	if len(s.Suggestions) != len(o.Suggestions) {
		return false
	}
	for i := range s.Suggestions {
		if s.Suggestions[i] != o.Suggestions[i] {
			return false
		}
	}
	return true
}
