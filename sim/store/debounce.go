package store

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DebouncedSaver coalesces bursts of saves: each Schedule replaces the
// pending value and restarts the delay, and only the last value is written
// once the delay elapses without a new Schedule. Save errors are logged and
// dropped.
type DebouncedSaver[T any] struct {
	name  string
	delay time.Duration
	save  func(T) error

	writeMu sync.Mutex // orders writes so a later value never lands first
	mu      sync.Mutex
	timer   *time.Timer
	pending *T
	closed  bool
}

// NewDebouncedSaver creates a saver that calls save at most once per quiet period of delay.
func NewDebouncedSaver[T any](name string, delay time.Duration, save func(T) error) *DebouncedSaver[T] {
	return &DebouncedSaver[T]{name: name, delay: delay, save: save}
}

// Schedule queues v to be saved after the delay. Ignored after Close.
func (d *DebouncedSaver[T]) Schedule(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.pending = &v
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

// Flush writes the pending value now, if any.
func (d *DebouncedSaver[T]) Flush() {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	v := d.pending
	d.pending = nil
	d.mu.Unlock()
	d.write(v)
}

// Close flushes the pending value and stops accepting new ones.
// Safe to call more than once.
func (d *DebouncedSaver[T]) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()
	d.Flush()
}

func (d *DebouncedSaver[T]) fire() {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()
	d.mu.Lock()
	v := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()
	d.write(v)
}

func (d *DebouncedSaver[T]) write(v *T) {
	if v == nil {
		return
	}
	if err := d.save(*v); err != nil {
		logrus.Warnf("failed to persist %s: %v", d.name, err)
	}
}
