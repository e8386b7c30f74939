// Package display formats farm values the way both hosts show them.
package display

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/LeonardoBeccarini/symbiont/internal/model"
	"github.com/LeonardoBeccarini/symbiont/internal/theme"
)

// NairaPerLiter converts mock water savings into currency.
const NairaPerLiter = 0.1

// LocalTimeLayout matches the en-NG date/time rendering.
const LocalTimeLayout = "02/01/2006, 15:04:05"

var naira = message.NewPrinter(language.English)

func FormatYield(v float64) string { return fmt.Sprintf("%.1f tons/ha", v) }

func FormatRisk(v float64) string { return fmt.Sprintf("%.1f%% Blight", v) }

// FormatWaterSaved renders water*0.1 as NGN with thousands grouping.
func FormatWaterSaved(water float64) string {
	amount := water * NairaPerLiter
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "₦0.00"
	}
	amount = math.Round(amount*100) / 100
	switch {
	case amount == 0:
		// also catches -0 left by rounding
		return "₦0.00"
	case amount < 0:
		return "-₦" + naira.Sprintf("%.2f", -amount)
	default:
		return "₦" + naira.Sprintf("%.2f", amount)
	}
}

func FormatLocalTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(LocalTimeLayout)
}

// Values carries the formatted strings a host shows.
type Values struct {
	Yield       string `json:"yield"`
	Risk        string `json:"risk"`
	WaterSaved  string `json:"water_saved"`
	LocalTime   string `json:"local_time"`
	ThemeToggle string `json:"theme_toggle"`
	DarkMode    bool   `json:"dark_mode"`
}

func New(s model.FarmState, now time.Time, loc *time.Location, dark bool) Values {
	return Values{
		Yield:       FormatYield(s.Yield),
		Risk:        FormatRisk(s.Risk),
		WaterSaved:  FormatWaterSaved(s.Water),
		LocalTime:   FormatLocalTime(now, loc),
		ThemeToggle: theme.ToggleIcon(dark),
		DarkMode:    dark,
	}
}
