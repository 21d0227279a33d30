package sim

import (
	"fmt"
	"math"
	"time"
)

const (
	// DefaultConfirmProbability is the per-tick chance that a sent record is confirmed.
	DefaultConfirmProbability = 0.35
	// DefaultTickPeriod is the interval between dispatch ticks.
	DefaultTickPeriod = 1200 * time.Millisecond
)

// DispatchConfig groups the dispatch simulation parameters.
type DispatchConfig struct {
	ConfirmProbability float64       // chance in (0, 1] that a sent record confirms on a tick
	TickPeriod         time.Duration // wall-clock (or virtual) time between ticks (must be > 0)
}

// NewDispatchConfig creates a DispatchConfig. Zero values are kept as given.
func NewDispatchConfig(confirmProbability float64, tickPeriod time.Duration) DispatchConfig {
	return DispatchConfig{
		ConfirmProbability: confirmProbability,
		TickPeriod:         tickPeriod,
	}
}

// DefaultDispatchConfig returns the observed defaults: p=0.35 every 1200 ms.
func DefaultDispatchConfig() DispatchConfig {
	return NewDispatchConfig(DefaultConfirmProbability, DefaultTickPeriod)
}

// Validate checks that the probability is in (0, 1] and the period is positive.
// A zero probability would never settle.
func (c DispatchConfig) Validate() error {
	p := c.ConfirmProbability
	if math.IsNaN(p) || math.IsInf(p, 0) || p <= 0 || p > 1 {
		return fmt.Errorf("confirm probability must be in (0, 1], got %f", p)
	}
	if c.TickPeriod <= 0 {
		return fmt.Errorf("tick period must be positive, got %v", c.TickPeriod)
	}
	return nil
}
