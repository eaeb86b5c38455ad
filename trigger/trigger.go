// Package trigger provides TriggerInput implementations for hosts, where
// there is no physical button.
package trigger

import (
	"sync"
	"time"

	"github.com/ystepanoff/rssilink/transport"
)

var (
	_ transport.TriggerInput = (*Manual)(nil)
	_ transport.TriggerInput = (*Interval)(nil)
)

// Manual behaves like a momentary push button: a press is only seen by a
// poll that follows it within hold. Presses made while the session is busy
// have long expired by the time it polls again, so they are ignored.
type Manual struct {
	clock transport.Clock
	hold  time.Duration

	mu      sync.Mutex
	pressed time.Time
	pending bool
}

// NewManual returns a button whose presses stay visible for hold, which
// should be the session's trigger poll interval.
func NewManual(clock transport.Clock, hold time.Duration) *Manual {
	if clock == nil {
		clock = transport.SystemClock
	}
	return &Manual{clock: clock, hold: hold}
}

// Fire is safe to call from any goroutine.
func (m *Manual) Fire() {
	now := m.clock.Now()
	m.mu.Lock()
	m.pressed = now
	m.pending = true
	m.mu.Unlock()
}

func (m *Manual) IsAsserted() bool {
	now := m.clock.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.pending {
		return false
	}
	m.pending = false
	return now.Sub(m.pressed) <= m.hold
}

// Interval asserts on the first poll and then whenever every has elapsed
// since the previous assertion.
type Interval struct {
	clock transport.Clock
	every time.Duration
	next  time.Time
	armed bool
}

func NewInterval(clock transport.Clock, every time.Duration) *Interval {
	if clock == nil {
		clock = transport.SystemClock
	}
	return &Interval{clock: clock, every: every}
}

func (i *Interval) IsAsserted() bool {
	now := i.clock.Now()
	if i.armed && now.Before(i.next) {
		return false
	}
	i.armed = true
	i.next = now.Add(i.every)
	return true
}
