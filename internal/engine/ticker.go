// Package engine drives a runner game: it owns the tick cadence, drains host
// input once per tick and calls update then draw.
package engine

import (
	"sync"
	"time"
)

// DefaultTickRate is the simulation rate used when none is configured.
const DefaultTickRate = 60

// TickSource delivers the cadence the loop runs at.
type TickSource interface {
	Ticks() <-chan time.Time
	Stop()
}

// IntervalTicker is a TickSource backed by a wall-clock ticker.
type IntervalTicker struct {
	t *time.Ticker
}

// NewIntervalTicker ticks rate times per second.
func NewIntervalTicker(rate int) *IntervalTicker {
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return &IntervalTicker{t: time.NewTicker(time.Second / time.Duration(rate))}
}

// Ticks implements TickSource.
func (t *IntervalTicker) Ticks() <-chan time.Time { return t.t.C }

// Stop implements TickSource.
func (t *IntervalTicker) Stop() { t.t.Stop() }

// ManualTicker is a TickSource driven by the caller, for tests and headless runs.
type ManualTicker struct {
	c    chan time.Time
	done chan struct{}
	once sync.Once
}

// NewManualTicker creates a ticker that only ticks on Advance.
func NewManualTicker() *ManualTicker {
	return &ManualTicker{c: make(chan time.Time), done: make(chan struct{})}
}

// Ticks implements TickSource.
func (m *ManualTicker) Ticks() <-chan time.Time { return m.c }

// Advance delivers n ticks, blocking until each one is received.
// It returns early once the ticker is stopped.
func (m *ManualTicker) Advance(n int) {
	for range n {
		select {
		case m.c <- time.Now():
		case <-m.done:
			return
		}
	}
}

// Stop implements TickSource. It is safe to call more than once.
func (m *ManualTicker) Stop() {
	m.once.Do(func() { close(m.done) })
}
