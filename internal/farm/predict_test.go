package farm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeonardoBeccarini/symbiont/internal/model"
	"github.com/LeonardoBeccarini/symbiont/internal/model/entities"
)

func TestPredictScenarios(t *testing.T) {
	cases := []struct {
		name       string
		in         model.FarmState
		adjustment float64
		want       model.FarmState
	}{
		{
			name:       "initial plus five",
			in:         model.InitialState(12),
			adjustment: 5,
			want:       model.FarmState{Yield: 17, Risk: 15, Water: 250},
		},
		{
			name:       "yield clamps at 60",
			in:         model.FarmState{Yield: 58, Risk: 10},
			adjustment: 10,
			want:       model.FarmState{Yield: 60, Risk: 0, Water: 500},
		},
		{
			name:       "risk and yield clamp at 0",
			in:         model.FarmState{Yield: 3, Risk: 5},
			adjustment: -10,
			want:       model.FarmState{Yield: 0, Risk: 0, Water: -500},
		},
		{
			name:       "out of hint range still accepted",
			in:         model.FarmState{Yield: 30, Risk: 100, Water: 10},
			adjustment: -25,
			want:       model.FarmState{Yield: 5, Risk: 50, Water: -1240},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Predict(tc.in, tc.adjustment)
			assert.InDelta(t, tc.want.Yield, got.Yield, 1e-9)
			assert.InDelta(t, tc.want.Risk, got.Risk, 1e-9)
			assert.InDelta(t, tc.want.Water, got.Water, 1e-9)
			assert.Equal(t, []string{entities.Hunches[0], entities.Hunches[1]}, got.Suggestions)
		})
	}
}

func TestPredictZeroIsNoOp(t *testing.T) {
	in := model.FarmState{Yield: 42.5, Risk: 33, Water: -12, Suggestions: []string{"x"}}
	got := Predict(in, 0)

	assert.Equal(t, in.Yield, got.Yield)
	assert.Equal(t, in.Risk, got.Risk)
	assert.Equal(t, in.Water, got.Water)
	assert.Len(t, got.Suggestions, entities.MaxSuggestions)
}

func TestPredictStaysInBounds(t *testing.T) {
	adjustments := []float64{-1e6, -60, -10, -3.25, -0.1, 0, 0.1, 2, 10, 59.9, 1e6}
	for y := 0.0; y <= 60; y += 7.5 {
		for _, risk := range []float64{0, 1, 25, 100} {
			for _, a := range adjustments {
				s := model.FarmState{Yield: y, Risk: risk, Water: 100}
				got := Predict(s, a)
				require.GreaterOrEqual(t, got.Yield, 0.0)
				require.LessOrEqual(t, got.Yield, 60.0)
				require.GreaterOrEqual(t, got.Risk, 0.0)
				require.Equal(t, s.Water+a*50, got.Water)
				require.LessOrEqual(t, len(got.Suggestions), 2)
			}
		}
	}
}

func TestPredictDoesNotAliasInput(t *testing.T) {
	in := model.InitialState(12)
	got := Predict(in, 1)
	got.Suggestions[0] = "changed"

	assert.Equal(t, entities.SeedSuggestion, in.Suggestions[0])
	assert.Equal(t, entities.Hunches[0], Suggestions()[0])
}

func TestPredictNaNAdjustment(t *testing.T) {
	in := model.FarmState{Yield: 12, Risk: 25}
	got := Predict(in, math.NaN())
	assert.Equal(t, 12.0, got.Yield)
	assert.Equal(t, 25.0, got.Risk)
	assert.Equal(t, 0.0, got.Water)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 60))
	assert.Equal(t, 60.0, Clamp(61, 0, 60))
	assert.Equal(t, 12.5, Clamp(12.5, 0, 60))
	assert.Equal(t, 0.0, Clamp(math.NaN(), 0, 60))
	assert.Equal(t, 60.0, Clamp(math.Inf(1), 0, 60))
}

func TestNormalizeAdjustment(t *testing.T) {
	cases := map[string]float64{
		"":       0,
		"  ":     0,
		"abc":    0,
		"NaN":    0,
		"Inf":    0,
		"-Inf":   0,
		"3.5":    3.5,
		" -10 ":  -10,
		"2,5":    2.5,
		"12e-1":  1.2,
		"7tons":  0,
		"100000": 100000,
	}
	for raw, want := range cases {
		assert.Equal(t, want, NormalizeAdjustment(raw), "input %q", raw)
	}
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, 1.5, ParseNumber(" 1,5 "))
	assert.Equal(t, 10.0, ParseNumber("10"))
	assert.Equal(t, 0.0, ParseNumber("ten"))
	assert.Equal(t, 0.0, ParseNumber("+Inf"))
}

func TestBounded(t *testing.T) {
	cases := []struct {
		name string
		in   model.FarmState
		want model.FarmState
	}{
		{"in range", model.FarmState{Yield: 12, Risk: 25, Water: 100}, model.FarmState{Yield: 12, Risk: 25, Water: 100}},
		{"yield above max", model.FarmState{Yield: 90, Risk: 5}, model.FarmState{Yield: 60, Risk: 5}},
		{"negative yield and risk", model.FarmState{Yield: -4, Risk: -1, Water: -50}, model.FarmState{Yield: 0, Risk: 0, Water: -50}},
		{"non-finite", model.FarmState{Yield: math.NaN(), Risk: math.Inf(1), Water: math.Inf(-1)}, model.FarmState{}},
		{"risk not capped", model.FarmState{Yield: 1, Risk: 140}, model.FarmState{Yield: 1, Risk: 140}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Bounded(tc.in))
		})
	}

	in := model.FarmState{Yield: 3, Suggestions: []string{"a"}}
	out := Bounded(in)
	out.Suggestions[0] = "b"
	assert.Equal(t, "a", in.Suggestions[0])
}
