package floodfill

import (
	"context"
	"time"
)

// Scheduler decides when a fill may continue after a step.
//
// Wait is called once after every step. It returns nil to release the next
// step, or an error (normally ctx.Err()) to stop the fill.
type Scheduler interface {
	Wait(ctx context.Context) error
}

// Immediate returns a scheduler that never suspends.
func Immediate() Scheduler {
	return immediate{}
}

type immediate struct{}

func (immediate) Wait(context.Context) error { return nil }

// Ticker releases one step per tick of a fixed-interval timer.
// Call Stop when it is no longer needed.
type Ticker struct {
	t        *time.Ticker
	interval time.Duration
}

// NewTicker returns a Ticker releasing one step every interval.
// It panics if interval is not positive, like time.NewTicker.
func NewTicker(interval time.Duration) *Ticker {
	return &Ticker{t: time.NewTicker(interval), interval: interval}
}

// Reset restarts the interval and discards a tick that fired while no fill
// was waiting. Engine.Fill calls it when a fill starts, so a Ticker reused
// across fills paces the first step like the others.
func (t *Ticker) Reset() {
	t.t.Reset(t.interval)
}

// Wait blocks until the next tick or until ctx is done.
func (t *Ticker) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.t.C:
		return nil
	}
}

// Stop turns off the ticker.
func (t *Ticker) Stop() {
	t.t.Stop()
}

// Manual releases one step per call to Advance.
// It is safe for concurrent use.
type Manual struct {
	release chan struct{}
}

// NewManual returns a Manual scheduler with no pending release.
func NewManual() *Manual {
	return &Manual{release: make(chan struct{}, 1)}
}

// Advance releases the suspended step, or the next one if no fill is
// waiting. Releases do not accumulate: several calls made while nothing
// waits release a single step.
func (m *Manual) Advance() {
	select {
	case m.release <- struct{}{}:
	default:
	}
}

// Wait blocks until Advance is called or ctx is done.
func (m *Manual) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-m.release:
		return nil
	}
}

// defaultPollInterval is used by Poll when no interval is given.
const defaultPollInterval = 10 * time.Millisecond

// Poll returns a scheduler that samples gate once per step and, while it
// reports false, samples it again every interval. Use it when the host
// exposes a "may advance" flag rather than an event.
func Poll(gate func() bool, interval time.Duration) Scheduler {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return poll{gate: gate, interval: interval}
}

type poll struct {
	gate     func() bool
	interval time.Duration
}

func (p poll) Wait(ctx context.Context) error {
	if p.gate() {
		return nil
	}
	t := time.NewTicker(p.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if p.gate() {
				return nil
			}
		}
	}
}
