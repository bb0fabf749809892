package term

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// progressInterval is how often the spinner line is refreshed.
const progressInterval = 100 * time.Millisecond

// Progress shows a spinner with a running count of painted cells while an
// unthrottled fill runs. Step is safe to call from the filling goroutine.
type Progress struct {
	w       io.Writer
	total   int
	painted atomic.Int64

	start time.Time
	done  chan struct{}
	wg    sync.WaitGroup
}

// NewProgress returns a progress line for a fill of at most total cells.
func NewProgress(w io.Writer, total int) *Progress {
	return &Progress{w: w, total: total, done: make(chan struct{})}
}

// Step records one painted cell.
func (p *Progress) Step() {
	p.painted.Add(1)
}

// Painted returns the number of cells recorded so far.
func (p *Progress) Painted() int {
	return int(p.painted.Load())
}

// Start begins refreshing the spinner line in the background.
func (p *Progress) Start() {
	p.start = time.Now()
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		s := spinner.New()
		s.Spinner = spinner.Dot
		s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
		ticker := time.NewTicker(progressInterval)
		defer ticker.Stop()

		for {
			select {
			case <-p.done:
				return
			case <-ticker.C:
				s, _ = s.Update(spinner.TickMsg{})
				fmt.Fprintf(p.w, "\r%s Filling %d/%d cells... (%.0f cells/s)",
					s.View(), p.Painted(), p.total, p.rate())
			}
		}
	}()
}

func (p *Progress) rate() float64 {
	elapsed := time.Since(p.start).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(p.Painted()) / elapsed
}

// Stop ends the spinner and prints the final count, reporting the fill as
// interrupted when completed is false. It returns the elapsed time since
// Start.
func (p *Progress) Stop(completed bool) time.Duration {
	close(p.done)
	p.wg.Wait()
	elapsed := time.Since(p.start)
	if completed {
		fmt.Fprintf(p.w, "\r✓ Fill complete. %d cells painted.\n", p.Painted())
	} else {
		fmt.Fprintf(p.w, "\r✗ Fill interrupted. %d cells painted.\n", p.Painted())
	}
	return elapsed
}
