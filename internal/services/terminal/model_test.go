package terminal

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeonardoBeccarini/symbiont/internal/clock"
	"github.com/LeonardoBeccarini/symbiont/internal/farm"
	"github.com/LeonardoBeccarini/symbiont/internal/model"
	"github.com/LeonardoBeccarini/symbiont/internal/notify"
	"github.com/LeonardoBeccarini/symbiont/internal/projection"
	"github.com/LeonardoBeccarini/symbiont/internal/theme"
)

type harness struct {
	m     *Model
	store *farm.Store
	tray  *notify.Tray
	pref  *theme.Preference
	clk   *clock.Fake
}

func newHarness(t *testing.T) harness {
	t.Helper()
	clk := clock.NewFake(time.Date(2025, 3, 4, 13, 5, 6, 0, time.UTC))
	tray := notify.NewTray(clk, 3*time.Second)
	store := farm.NewStore(model.InitialState(12), farm.WithNotifier(tray))
	pref := theme.NewPreference(false)
	m := New(Config{Store: store, Tray: tray, Theme: pref, Clock: clk})
	t.Cleanup(m.Close)
	return harness{m: m, store: store, tray: tray, pref: pref, clk: clk}
}

func (h harness) typeText(s string) {
	for _, r := range s {
		h.m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (h harness) key(k tea.KeyType) tea.Cmd {
	_, cmd := h.m.Update(tea.KeyMsg{Type: k})
	return cmd
}

func TestEnterEvolvesWithTypedAdjustment(t *testing.T) {
	h := newHarness(t)

	h.typeText("5")
	assert.True(t, h.m.CanEvolve())
	h.key(tea.KeyEnter)

	s := h.store.State()
	assert.Equal(t, 17.0, s.Yield)
	assert.Equal(t, 15.0, s.Risk)
	assert.Equal(t, 250.0, s.Water)
	assert.Equal(t, 0.0, h.m.Adjustment())

	view := h.m.View()
	assert.Contains(t, view, "17.0 tons/ha")
	assert.Contains(t, view, "₦25.00")
	assert.Contains(t, view, "Pivot irrigation 15° east.")
	assert.Contains(t, view, farm.EvolvedMessage)
}

func TestEnterIgnoredForZeroAdjustment(t *testing.T) {
	h := newHarness(t)

	h.key(tea.KeyEnter)
	h.typeText("0")
	h.key(tea.KeyEnter)

	assert.Equal(t, model.InitialState(12), h.store.State())
	assert.Empty(t, h.tray.Active())
}

func TestLettersDoNotReachInput(t *testing.T) {
	h := newHarness(t)

	h.typeText("-3x")
	assert.Equal(t, -3.0, h.m.Adjustment())
	h.key(tea.KeyEnter)
	assert.Equal(t, 9.0, h.store.State().Yield)
}

func TestThemeToggleKey(t *testing.T) {
	h := newHarness(t)
	assert.Contains(t, h.m.View(), theme.ToggleIcon(false))

	h.typeText("t")
	assert.True(t, h.pref.Dark())
	assert.Contains(t, h.m.View(), theme.ToggleIcon(true))
}

func TestQuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
	} {
		h := newHarness(t)
		_, cmd := h.m.Update(msg)
		require.NotNil(t, cmd, msg.String())
		assert.IsType(t, tea.QuitMsg{}, cmd(), msg.String())
		assert.Empty(t, h.m.View())
	}
}

func TestStepIsClamped(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 15; i++ {
		h.key(tea.KeyUp)
	}
	assert.Equal(t, 10.0, h.m.Adjustment())
	for i := 0; i < 25; i++ {
		h.key(tea.KeyDown)
	}
	assert.Equal(t, -10.0, h.m.Adjustment())
}

func TestExternalUpdatesRefreshView(t *testing.T) {
	h := newHarness(t)

	h.store.Update(model.FarmState{Yield: 40, Risk: 3, Water: -50})
	cmd := h.m.listen()
	h.m.Update(cmd())

	view := h.m.View()
	assert.Contains(t, view, "40.0 tons/ha")
	assert.Contains(t, view, "3.0% Blight")
	assert.Contains(t, view, "-₦5.00")
}

func TestToastsExpireOnTick(t *testing.T) {
	h := newHarness(t)
	h.store.Evolve(1)
	h.m.Update(tickMsg(h.clk.Now()))
	assert.Contains(t, h.m.View(), farm.EvolvedMessage)

	h.clk.Advance(4 * time.Second)
	h.m.Update(tickMsg(h.clk.Now()))
	assert.NotContains(t, h.m.View(), farm.EvolvedMessage)
}

func TestColumns(t *testing.T) {
	cols := Columns(projection.NewChart(12))
	require.Len(t, cols, projection.Months)
	// 12*2 = 24 units -> 2 rows; month 12 is 12*2.1*2 = 50.4 -> 5 rows
	assert.Equal(t, 2, cols[0])
	assert.Equal(t, 5, cols[11])

	for _, n := range Columns(projection.NewChart(60)) {
		assert.LessOrEqual(t, n, ChartRows)
	}
	for _, n := range Columns(projection.NewChart(0)) {
		assert.Equal(t, 0, n)
	}
}

func TestRenderChartShape(t *testing.T) {
	rows := RenderChart(projection.NewChart(12))
	require.Len(t, rows, ChartRows)
	// bottom row has every bar, top row none
	assert.Equal(t, projection.Months, countBlocks(rows[ChartRows-1]))
	assert.Equal(t, 0, countBlocks(rows[0]))
}

func countBlocks(row string) int {
	n := 0
	for _, r := range row {
		if r == '█' {
			n++
		}
	}
	return n / 2
}
