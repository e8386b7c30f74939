package theme

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreferenceNotifiesOnlyOnChange(t *testing.T) {
	p := NewPreference(false)
	var seen []bool
	cancel := p.Subscribe(func(dark bool) { seen = append(seen, dark) })

	p.Set(false)
	p.Set(true)
	p.Set(true)
	assert.False(t, p.Toggle())
	cancel()
	p.Toggle()

	assert.Equal(t, []bool{true, false}, seen)
	assert.True(t, p.Dark())
}

func TestSeedDoesNotOverrideExplicitChoice(t *testing.T) {
	p := NewPreference(false)
	p.Seed(true)
	assert.True(t, p.Dark())

	p.Toggle()
	p.Seed(true)
	assert.False(t, p.Dark())
}

func TestSeedFollowsSystemChanges(t *testing.T) {
	p := NewPreference(false)
	var heard []bool
	p.Subscribe(func(dark bool) { heard = append(heard, dark) })

	p.Seed(true)
	p.Seed(false)

	assert.False(t, p.Dark())
	assert.Equal(t, []bool{true, false}, heard)
}

func TestSeedAfterToggle(t *testing.T) {
	p := NewPreference(false)
	p.Seed(true)
	p.Toggle()

	p.Seed(true)
	assert.False(t, p.Dark(), "repeated hint keeps the explicit choice")

	p.Seed(false)
	assert.False(t, p.Dark())
	p.Seed(true)
	assert.True(t, p.Dark(), "a new system value applies")
}

func TestFirstSeedKeepsEarlierChoice(t *testing.T) {
	p := NewPreference(false)
	p.Set(true)
	p.Seed(false)
	assert.True(t, p.Dark())

	p.Seed(true)
	p.Seed(false)
	assert.False(t, p.Dark())
}

func TestConcurrentTogglesAreNotLost(t *testing.T) {
	p := NewPreference(false)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Toggle()
		}()
	}
	wg.Wait()
	assert.False(t, p.Dark())
}

func TestFromClientHint(t *testing.T) {
	cases := []struct {
		in       string
		dark, ok bool
	}{
		{"dark", true, true},
		{`"dark"`, true, true},
		{" Light ", false, true},
		{"", false, false},
		{"no-preference", false, false},
	}
	for _, tc := range cases {
		dark, ok := FromClientHint(tc.in)
		assert.Equal(t, tc.dark, dark, tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
	}
}

func TestToggleIcon(t *testing.T) {
	assert.Equal(t, "☀️", ToggleIcon(true))
	assert.Equal(t, "🌙", ToggleIcon(false))
}

var _ Source = (*Preference)(nil)
