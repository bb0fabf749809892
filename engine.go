package floodfill

import (
	"context"
	"iter"
	"log/slog"
)

// Engine binds an algorithm, a comparator and a scheduler to fill requests.
// The algorithm and metric come from each Request; the scheduler, observer
// and visited-marker policy come from the Engine options.
//
// An Engine holds no per-fill state and may be shared. A Grid must not be
// filled by two operations at the same time; use a Session to serialise
// fills on one grid.
type Engine struct {
	opts engineOptions
}

// Result is the outcome of Engine.Fill.
type Result struct {
	Stats

	// Canceled reports that the fill stopped before completion.
	// The cells painted so far stay painted.
	Canceled bool
}

// NewEngine creates an engine. Without options it drains fills immediately,
// tracks visited cells with a separate marker and observes nothing.
func NewEngine(opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.scheduler == nil {
		o.scheduler = Immediate()
	}
	return &Engine{opts: o}
}

func (e *Engine) logger() *slog.Logger {
	if e.opts.logger != nil {
		return e.opts.logger
	}
	return Logger()
}

// Steps returns the lazy step sequence of filling g according to req.
// Nothing is read or painted until the sequence is iterated; the target
// color is captured from the seed cell at that point. The returned Stats
// are updated as steps are pulled.
//
// The request is validated up front. A seed outside the grid yields no
// steps and no error.
func (e *Engine) Steps(g *Grid, req Request) (iter.Seq[Step], *Stats, error) {
	if g == nil {
		return nil, nil, ErrNilGrid
	}
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}
	if req.Algorithm == AlgorithmRunLength && req.Obstacles != nil {
		if err := req.Obstacles.matches(g); err != nil {
			return nil, nil, err
		}
	}

	stats := &Stats{}
	seq := func(yield func(Step) bool) {
		x, y := req.Seed.X, req.Seed.Y
		if !g.InBounds(x, y) {
			return
		}
		target := g.Get(x, y)
		r := newRegion(g, req, target, e.opts.colorIdentity, stats)

		// Nothing can change; this also makes refilling a filled region
		// a no-op.
		if target.Equal(req.Fill) {
			return
		}

		if req.Algorithm == AlgorithmRunLength {
			occ := req.Obstacles
			if occ == nil {
				occ = e.occupancy(g, req, target)
			}
			runLengthFill(occ, x, y, &stats.Probes, func(x, y int) bool {
				return yield(r.paint(x, y))
			})
			return
		}
		fillFuncs[req.Algorithm](r, x, y, yield)
	}
	return seq, stats, nil
}

// occupancy builds the obstacle grid for a run-length fill with the same
// predicate the color-grid algorithms use.
func (e *Engine) occupancy(g *Grid, req Request, target RGBA) *Occupancy {
	occ := OccupancyFromGrid(g, target, req.Metric, req.Threshold)
	if e.opts.colorIdentity {
		for i, c := range g.cells {
			if c.Equal(req.Fill) {
				occ.cells[i] = true
			}
		}
	}
	return occ
}

// Fill fills g according to req, passing every step to the observer and
// waiting on the scheduler after each one. A scheduler with a Reset method,
// such as Ticker, is reset before the first step.
//
// The context is checked before every step. When it is done, or the
// scheduler reports an error, Fill stops without painting further and
// returns the partial result with Canceled set, together with the error.
func (e *Engine) Fill(ctx context.Context, g *Grid, req Request) (Result, error) {
	seq, stats, err := e.Steps(g, req)
	if err != nil {
		return Result{}, err
	}

	log := e.logger().With("id", req.ID)
	log.Debug("fill started",
		"algorithm", req.Algorithm,
		"metric", req.Metric,
		"seed", req.Seed,
		"threshold", req.Threshold)

	if err := ctx.Err(); err != nil {
		log.Debug("fill canceled", "painted", 0, "err", err)
		return Result{Canceled: true}, err
	}
	if r, ok := e.opts.scheduler.(interface{ Reset() }); ok {
		r.Reset()
	}

	var stopErr error
	for s := range seq {
		if e.opts.observer != nil {
			e.opts.observer(s)
		}
		if stopErr = ctx.Err(); stopErr != nil {
			break
		}
		if stopErr = e.opts.scheduler.Wait(ctx); stopErr != nil {
			break
		}
		// The context may end while the scheduler releases the step.
		if stopErr = ctx.Err(); stopErr != nil {
			break
		}
	}

	res := Result{Stats: *stats, Canceled: stopErr != nil}
	if stopErr != nil {
		log.Debug("fill canceled", "painted", res.Painted, "err", stopErr)
		return res, stopErr
	}
	log.Debug("fill finished",
		"painted", res.Painted,
		"probes", res.Probes,
		"bounds", res.Bounds)
	return res, nil
}

// Run is a fill driven one step at a time by the caller.
// It is not safe for concurrent use.
type Run struct {
	next     func() (Step, bool)
	stop     func()
	stats    *Stats
	done     bool
	canceled bool
}

// Start prepares a fill of g according to req that advances only when
// Next is called. The observer and scheduler options do not apply.
// Call Stop to abandon the fill early and release its resources.
func (e *Engine) Start(g *Grid, req Request) (*Run, error) {
	seq, stats, err := e.Steps(g, req)
	if err != nil {
		return nil, err
	}
	next, stop := iter.Pull(seq)
	return &Run{next: next, stop: stop, stats: stats}, nil
}

// Next paints one more cell and returns its step. It returns false once
// the fill is complete or stopped.
func (r *Run) Next() (Step, bool) {
	if r.done {
		return Step{}, false
	}
	s, ok := r.next()
	if !ok {
		r.done = true
	}
	return s, ok
}

// Stop abandons the fill. Cells painted so far stay painted.
// Stop may be called more than once.
func (r *Run) Stop() {
	if !r.done {
		r.canceled = true
	}
	r.done = true
	r.stop()
}

// Done reports whether the fill is complete or stopped.
func (r *Run) Done() bool {
	return r.done
}

// Stats returns the progress so far.
func (r *Run) Stats() Stats {
	return *r.stats
}

// Result returns the progress so far. Canceled is set when Stop was called
// before the fill completed.
func (r *Run) Result() Result {
	return Result{Stats: *r.stats, Canceled: r.canceled}
}
