// Package theme tracks the dark-mode preference. It is purely cosmetic.
package theme

import (
	"strings"
	"sync"
)

// ClientHintHeader carries the browser's system color scheme.
const ClientHintHeader = "Sec-CH-Prefers-Color-Scheme"

// Source reports the current preference and its changes.
type Source interface {
	Dark() bool
	Subscribe(fn func(dark bool)) (cancel func())
}

// Preference is a Source that can be set by the host.
//
// It follows the system preference reported through Seed: the first hint
// applies unless the user already chose, and every later hint that differs
// from the previous one is a real system change and applies too. Repeating
// the same hint never undoes an explicit Set or Toggle.
type Preference struct {
	mu       sync.RWMutex
	dark     bool
	explicit bool
	hinted   bool
	lastHint bool
	subs     map[int]func(bool)
	nextSub  int
}

func NewPreference(dark bool) *Preference {
	return &Preference{dark: dark, subs: make(map[int]func(bool))}
}

func (p *Preference) Dark() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.dark
}

// Set records an explicit choice; subscribers only hear about real changes.
func (p *Preference) Set(dark bool) {
	p.mu.Lock()
	p.explicit = true
	subs := p.applyLocked(dark)
	p.mu.Unlock()
	notifyAll(subs, dark)
}

// Toggle flips the preference and returns the new value.
func (p *Preference) Toggle() bool {
	p.mu.Lock()
	p.explicit = true
	next := !p.dark
	subs := p.applyLocked(next)
	p.mu.Unlock()
	notifyAll(subs, next)
	return next
}

// Seed reports the current system preference.
func (p *Preference) Seed(dark bool) {
	p.mu.Lock()
	if p.hinted && p.lastHint == dark {
		p.mu.Unlock()
		return
	}
	first := !p.hinted
	p.hinted, p.lastHint = true, dark
	if first && p.explicit {
		p.mu.Unlock()
		return
	}
	subs := p.applyLocked(dark)
	p.mu.Unlock()
	notifyAll(subs, dark)
}

// applyLocked stores dark and returns the subscribers to call, nil when
// nothing changed.
func (p *Preference) applyLocked(dark bool) []func(bool) {
	if p.dark == dark {
		return nil
	}
	p.dark = dark
	return p.snapshotLocked()
}

func notifyAll(subs []func(bool), dark bool) {
	for _, fn := range subs {
		fn(dark)
	}
}

func (p *Preference) Subscribe(fn func(dark bool)) (cancel func()) {
	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

func (p *Preference) snapshotLocked() []func(bool) {
	out := make([]func(bool), 0, len(p.subs))
	for i := 0; i < p.nextSub; i++ {
		if fn, ok := p.subs[i]; ok {
			out = append(out, fn)
		}
	}
	return out
}

// FromClientHint parses a Sec-CH-Prefers-Color-Scheme value.
// ok is false when the header is missing or unknown.
func FromClientHint(value string) (dark, ok bool) {
	switch strings.ToLower(strings.Trim(strings.TrimSpace(value), `"`)) {
	case "dark":
		return true, true
	case "light":
		return false, true
	default:
		return false, false
	}
}

// ToggleIcon is the label of the theme button.
func ToggleIcon(dark bool) string {
	if dark {
		return "☀️"
	}
	return "🌙"
}
