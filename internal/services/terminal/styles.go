package terminal

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/LeonardoBeccarini/symbiont/internal/notify"
	"github.com/LeonardoBeccarini/symbiont/internal/projection"
)

// Palette is one color scheme of the terminal dashboard.
type Palette struct {
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Accent     lipgloss.Color
	IsDark     bool
}

var (
	lightPalette = Palette{
		Foreground: lipgloss.Color("#101F38"),
		Muted:      lipgloss.Color("#5f6b7a"),
		Border:     lipgloss.Color("#c4cad2"),
		Accent:     lipgloss.Color("#2e7d32"),
	}
	darkPalette = Palette{
		Foreground: lipgloss.Color("#f2f2f2"),
		Muted:      lipgloss.Color("#9aa5b5"),
		Border:     lipgloss.Color("#2a3850"),
		Accent:     lipgloss.Color("#8BC34A"),
		IsDark:     true,
	}

	successColor = lipgloss.Color("#2e7d32")
	errorColor   = lipgloss.Color("#c62828")
	barColor     = lipgloss.Color(projection.BarFill)
)

func PaletteFor(dark bool) Palette {
	if dark {
		return darkPalette
	}
	return lightPalette
}

// Styles are the rendered styles for one palette.
type Styles struct {
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Card       lipgloss.Style
	CardTitle  lipgloss.Style
	Value      lipgloss.Style
	Suggestion lipgloss.Style
	Bar        lipgloss.Style
	Help       lipgloss.Style
}

func NewStyles(p Palette) Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.Foreground),
		Subtitle: lipgloss.NewStyle().Foreground(p.Muted),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1).
			MarginRight(1),
		CardTitle:  lipgloss.NewStyle().Bold(true).Foreground(p.Muted),
		Value:      lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Suggestion: lipgloss.NewStyle().Foreground(p.Foreground),
		Bar:        lipgloss.NewStyle().Foreground(barColor),
		Help:       lipgloss.NewStyle().Foreground(p.Muted).Italic(true),
	}
}

func toastStyle(kind notify.Kind) lipgloss.Style {
	bg := successColor
	if kind == notify.KindError {
		bg = errorColor
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(bg).Padding(0, 1)
}
