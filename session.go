package floodfill

import (
	"context"
	"sync"
)

// Session owns a grid and runs fills on it one at a time.
// Starting a fill cancels the fill still running on the grid, if any, and
// waits for it to stop before painting.
//
// Session is safe for concurrent use.
type Session struct {
	grid   *Grid
	engine *Engine

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSession creates a session filling g with e.
func NewSession(g *Grid, e *Engine) *Session {
	return &Session{grid: g, engine: e}
}

// Grid returns the session's grid. Do not modify it while a fill runs.
func (s *Session) Grid() *Grid {
	return s.grid
}

// Fill cancels any running fill and then fills the grid according to req.
// It blocks until the fill completes, is canceled through ctx, or is
// superseded by another call to Fill or Cancel.
func (s *Session) Fill(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	s.mu.Lock()
	for s.cancel != nil {
		s.engine.logger().Info("fill superseded", "by", req.ID)
		s.cancel()
		done := s.done
		s.mu.Unlock()
		<-done
		s.mu.Lock()
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel, s.done = cancel, done
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if s.done == done {
			s.cancel, s.done = nil, nil
		}
		s.mu.Unlock()
		cancel()
		close(done)
	}()

	return s.engine.Fill(ctx, s.grid, req)
}

// Cancel stops the running fill, if any, and waits for it to stop.
func (s *Session) Cancel() {
	s.mu.Lock()
	if s.cancel == nil {
		s.mu.Unlock()
		return
	}
	s.cancel()
	done := s.done
	s.mu.Unlock()
	<-done
}

// Busy reports whether a fill is running.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}
