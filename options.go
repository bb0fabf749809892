package floodfill

import "log/slog"

// Option configures an Engine during creation.
// Use functional options to customize Engine behavior.
//
// Example:
//
//	// Unthrottled fill, no observer
//	e := floodfill.NewEngine()
//
//	// One step every 50ms, rendering each step
//	ticker := floodfill.NewTicker(50 * time.Millisecond)
//	defer ticker.Stop()
//	e := floodfill.NewEngine(
//	    floodfill.WithScheduler(ticker),
//	    floodfill.WithObserver(render),
//	)
type Option func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	scheduler     Scheduler
	observer      func(Step)
	colorIdentity bool
	logger        *slog.Logger
}

// defaultOptions returns the default engine options.
func defaultOptions() engineOptions {
	return engineOptions{
		scheduler: nil, // Will be set to Immediate if nil
	}
}

// WithScheduler sets how Fill paces steps. The default is Immediate.
func WithScheduler(s Scheduler) Option {
	return func(o *engineOptions) {
		o.scheduler = s
	}
}

// WithObserver sets a function called by Fill with every step, right after
// the cell is painted and before the scheduler is consulted. The grid
// reflects the step when the observer runs.
func WithObserver(fn func(Step)) Option {
	return func(o *engineOptions) {
		o.observer = fn
	}
}

// WithColorIdentityVisited makes fills treat any cell already equal to the
// fill color as visited, instead of tracking visited cells separately.
//
// This reproduces the classic behavior but has a known edge case: a cell
// that naturally has the fill color blocks the fill even if it is similar
// to the target.
func WithColorIdentityVisited() Option {
	return func(o *engineOptions) {
		o.colorIdentity = true
	}
}

// WithLogger sets a logger for this engine, overriding the package logger
// returned by Logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *engineOptions) {
		o.logger = l
	}
}
