package refresh

import "sync/atomic"

// Signal is a single-slot wake-up. Any number of Notify calls made before the
// receiver wakes collapse into one wake-up.
type Signal struct {
	ch chan struct{}
}

// NewSignal returns a Signal with nothing pending.
func NewSignal() *Signal {
	return &Signal{ch: make(chan struct{}, 1)}
}

// Notify marks the signal pending. It never blocks.
func (s *Signal) Notify() {
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// C returns the channel that receives once per pending notification.
func (s *Signal) C() <-chan struct{} {
	return s.ch
}

// Text holds the latest input text. The render loop stores into it, the
// search task loads from it when it wakes.
type Text struct {
	v atomic.Pointer[string]
}

// Store replaces the current text.
func (t *Text) Store(s string) {
	t.v.Store(&s)
}

// Load returns the current text, or "" when nothing was stored yet.
func (t *Text) Load() string {
	if p := t.v.Load(); p != nil {
		return *p
	}
	return ""
}
