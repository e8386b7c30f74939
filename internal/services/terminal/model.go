// Package terminal is the bubbletea host of the dashboard.
package terminal

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LeonardoBeccarini/symbiont/internal/clock"
	"github.com/LeonardoBeccarini/symbiont/internal/farm"
	"github.com/LeonardoBeccarini/symbiont/internal/model"
	"github.com/LeonardoBeccarini/symbiont/internal/notify"
	"github.com/LeonardoBeccarini/symbiont/internal/projection"
	"github.com/LeonardoBeccarini/symbiont/internal/theme"
)

// RefreshInterval drives the clock line and toast expiry.
const RefreshInterval = time.Second

// MaxAdjustment bounds the up/down stepping, like the form's min and max.
const MaxAdjustment = 10

type Config struct {
	Store    *farm.Store
	Tray     *notify.Tray
	Theme    *theme.Preference
	Clock    clock.Clock
	Location *time.Location
}

type (
	tickMsg    time.Time
	changedMsg struct{}
)

type Model struct {
	cfg     Config
	input   textinput.Model
	changes chan struct{}
	cancels []func()

	state  model.FarmState
	dark   bool
	styles Styles
	toasts []notify.Toast
	now    time.Time
	width  int

	quitting bool
}

func New(cfg Config) *Model {
	if cfg.Clock == nil {
		cfg.Clock = clock.RealClock{}
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Theme == nil {
		cfg.Theme = theme.NewPreference(false)
	}

	in := textinput.New()
	in.Prompt = "AI Adjustment (+/- tons): "
	in.Placeholder = "0"
	in.CharLimit = 8
	in.Width = 8
	in.Focus()

	m := &Model{
		cfg:     cfg,
		input:   in,
		changes: make(chan struct{}, 1),
	}
	m.cancels = append(m.cancels,
		cfg.Store.Subscribe(func(model.FarmState) { m.signal() }),
		cfg.Theme.Subscribe(func(bool) { m.signal() }),
	)
	m.refresh()
	return m
}

// signal coalesces change events; the listener re-reads the sources.
func (m *Model) signal() {
	select {
	case m.changes <- struct{}{}:
	default:
	}
}

func (m *Model) listen() tea.Cmd {
	return func() tea.Msg {
		<-m.changes
		return changedMsg{}
	}
}

func tick() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) refresh() {
	m.state = m.cfg.Store.State()
	m.dark = m.cfg.Theme.Dark()
	m.styles = NewStyles(PaletteFor(m.dark))
	m.now = m.cfg.Clock.Now()
	if m.cfg.Tray != nil {
		m.toasts = m.cfg.Tray.Active()
	}
}

// Close drops the store and theme subscriptions.
func (m *Model) Close() {
	for _, cancel := range m.cancels {
		cancel()
	}
	m.cancels = nil
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.listen(), tick())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case changedMsg:
		m.refresh()
		return m, m.listen()
	case tickMsg:
		m.refresh()
		return m, tick()
	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey implements the shortcuts. Letters never reach the numeric input.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return tea.Quit, true
	case "t":
		m.cfg.Theme.Toggle()
		m.refresh()
		return nil, true
	case "enter":
		m.evolve()
		return nil, true
	case "up":
		m.step(1)
		return nil, true
	case "down":
		m.step(-1)
		return nil, true
	}
	return nil, msg.Type == tea.KeyRunes && !isNumeric(msg.Runes)
}

// Adjustment is the current input value; anything unparsable is 0.
func (m *Model) Adjustment() float64 {
	return farm.NormalizeAdjustment(m.input.Value())
}

// CanEvolve mirrors the disabled state of the web button.
func (m *Model) CanEvolve() bool { return m.Adjustment() != 0 }

func (m *Model) evolve() {
	if !m.CanEvolve() {
		return
	}
	m.cfg.Store.Evolve(m.Adjustment())
	m.input.SetValue("")
	m.refresh()
}

func (m *Model) step(delta float64) {
	next := farm.Clamp(m.Adjustment()+delta, -MaxAdjustment, MaxAdjustment)
	m.input.SetValue(projection.FormatNumber(next))
	m.input.CursorEnd()
}

func isNumeric(rs []rune) bool {
	for _, r := range rs {
		switch {
		case r >= '0' && r <= '9', r == '-', r == '+', r == '.', r == ',':
		default:
			return false
		}
	}
	return true
}
