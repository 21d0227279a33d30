package sim

import (
	"context"
	"sync"
	"time"
)

// Ticker delivers periodic ticks until stopped. *time.Ticker is adapted by
// NewWallTicker; tests drive a manual implementation.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates a Ticker firing every period.
type TickerFactory func(period time.Duration) Ticker

type wallTicker struct {
	t *time.Ticker
}

func (w wallTicker) C() <-chan time.Time { return w.t.C }
func (w wallTicker) Stop()               { w.t.Stop() }

// NewWallTicker wraps time.NewTicker.
func NewWallTicker(period time.Duration) Ticker {
	return wallTicker{t: time.NewTicker(period)}
}

// PeriodicTask is a cancellable handle on a function run once per tick.
// The loop ends when the function returns false, when Cancel is called or
// when the parent context is done. Cancel is idempotent and may be called
// from inside the function.
type PeriodicTask struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// StartPeriodic runs fn on every tick of ticker in a new goroutine.
// fn returns whether the task should keep running.
func StartPeriodic(ctx context.Context, ticker Ticker, fn func(now time.Time) bool) *PeriodicTask {
	ctx, cancel := context.WithCancel(ctx)
	task := &PeriodicTask{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(task.done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C():
				// a cancel racing with a tick wins
				if ctx.Err() != nil {
					return
				}
				if !fn(now) {
					task.Cancel()
					return
				}
			}
		}
	}()

	return task
}

// Cancel stops the task. Safe to call any number of times, and on a nil task.
func (t *PeriodicTask) Cancel() {
	if t == nil {
		return
	}
	t.once.Do(t.cancel)
}

// Done is closed once the task's goroutine has exited.
func (t *PeriodicTask) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task's goroutine has exited. Must not be called from fn.
func (t *PeriodicTask) Wait() {
	if t == nil {
		return
	}
	<-t.done
}
