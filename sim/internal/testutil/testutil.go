// Package testutil provides shared test infrastructure for the dispatch
// simulator: scripted random sources, a manually driven ticker and float
// assertion helpers used across sim/ and its sub-package tests.
package testutil

import (
	"math"
	"sync"
	"testing"
	"time"
)

// Sequence is a random source that returns scripted draws in order and
// repeats the last one once exhausted. An empty Sequence always returns 0.
type Sequence struct {
	mu    sync.Mutex
	draws []float64
	next  int
}

// NewSequence creates a Sequence over draws.
func NewSequence(draws ...float64) *Sequence {
	return &Sequence{draws: draws}
}

// Float64 returns the next scripted draw.
func (s *Sequence) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.draws) == 0 {
		return 0
	}
	idx := s.next
	if idx >= len(s.draws) {
		idx = len(s.draws) - 1
	}
	s.next++
	return s.draws[idx]
}

// Calls returns how many draws have been taken.
func (s *Sequence) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

// Constant is a random source that always returns the same draw.
type Constant float64

// Float64 returns c.
func (c Constant) Float64() float64 { return float64(c) }

// ManualTicker is a ticker whose ticks are fired by the test.
type ManualTicker struct {
	ch      chan time.Time
	stopped chan struct{}
	once    sync.Once
	period  time.Duration
}

// NewManualTicker creates a stopped-on-demand ticker. period is only recorded.
func NewManualTicker(period time.Duration) *ManualTicker {
	return &ManualTicker{
		ch:      make(chan time.Time),
		stopped: make(chan struct{}),
		period:  period,
	}
}

// C returns the tick channel.
func (m *ManualTicker) C() <-chan time.Time { return m.ch }

// Stop stops the ticker. Safe to call more than once.
func (m *ManualTicker) Stop() { m.once.Do(func() { close(m.stopped) }) }

// Period returns the period the ticker was created with.
func (m *ManualTicker) Period() time.Duration { return m.period }

// Fire delivers one tick and blocks until the consumer receives it.
// Returns false if the ticker was stopped before the tick was taken.
func (m *ManualTicker) Fire(now time.Time) bool {
	select {
	case <-m.stopped:
		return false
	default:
	}
	select {
	case m.ch <- now:
		return true
	case <-m.stopped:
		return false
	}
}

// Stopped reports whether Stop has been called.
func (m *ManualTicker) Stopped() bool {
	select {
	case <-m.stopped:
		return true
	default:
		return false
	}
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
