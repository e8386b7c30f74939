package terminal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/LeonardoBeccarini/symbiont/internal/display"
	"github.com/LeonardoBeccarini/symbiont/internal/projection"
)

const helpLine = "enter co-evolve • ↑/↓ step • t theme • q quit"

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	st := m.styles
	v := display.New(m.state, m.now, m.cfg.Location, m.dark)

	var b strings.Builder
	if toasts := m.renderToasts(); toasts != "" {
		b.WriteString(toasts + "\n\n")
	}

	b.WriteString(st.Title.Render("Symbiont Dashboard 🇳🇬") + "  " + v.ThemeToggle + "\n")
	b.WriteString(st.Subtitle.Render("Empowering farmers since 2025. Local time: "+v.LocalTime) + "\n\n")

	hunches := make([]string, 0, len(m.state.Suggestions))
	for _, s := range m.state.Suggestions {
		hunches = append(hunches, st.Suggestion.Render("• "+s))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.card("Yield", st.Value.Render(v.Yield)),
		m.card("Risk", st.Value.Render(v.Risk)),
		m.card("Water Saved", st.Value.Render(v.WaterSaved)),
		m.card("AI Hunches", strings.Join(hunches, "\n")),
	) + "\n\n")

	b.WriteString(m.input.View())
	if m.CanEvolve() {
		b.WriteString("  " + st.Value.Render("[Co-Evolve Yield]"))
	} else {
		b.WriteString("  " + st.Subtitle.Render("[Co-Evolve Yield]"))
	}
	b.WriteString("\n" + st.Subtitle.Render("Apply neural hunch to optimize farm.") + "\n\n")

	b.WriteString(m.renderProjection() + "\n\n")
	b.WriteString(st.Help.Render(helpLine))
	if m.width > 0 {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
	}
	return b.String()
}

func (m *Model) card(title, body string) string {
	return m.styles.Card.Render(m.styles.CardTitle.Render(title) + "\n" + body)
}

func (m *Model) renderToasts() string {
	lines := make([]string, 0, len(m.toasts))
	for _, t := range m.toasts {
		lines = append(lines, toastStyle(t.Kind).Render(t.Message))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderProjection() string {
	c := projection.NewChart(m.state.Yield)
	st := m.styles

	var b strings.Builder
	b.WriteString(st.Title.Render("Monthly Projection") + "\n")
	b.WriteString(fmt.Sprintf("Projected 2030: %s tons (Symbiont Boost!)\n", projection.FormatNumber(c.ProjectedTotal)))
	b.WriteString(st.Subtitle.Render(c.AriaLabel) + "\n")
	for _, row := range RenderChart(c) {
		b.WriteString(st.Bar.Render(row) + "\n")
	}
	months := make([]string, len(c.Bars))
	for i, bar := range c.Bars {
		months[i] = fmt.Sprintf("%2d", bar.Month)
	}
	b.WriteString(st.Subtitle.Render(strings.Join(months, " ")))
	return b.String()
}
