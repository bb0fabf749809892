// Command floodfill flood-fills a region of an image from a seed pixel.
//
// Usage:
//
//	floodfill -i in.png -o out.png -s 10,20 -f "#ff8800" -t 0.15 -a heckbert
//
// With --animate the fill is drawn step by step in the terminal, with
// --serve every step is streamed to websocket clients, and with --pdf the
// result is also exported as a PDF page.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/floodfill"
	"github.com/gogpu/floodfill/internal/export"
	"github.com/gogpu/floodfill/internal/imageio"
	"github.com/gogpu/floodfill/internal/stream"
	"github.com/gogpu/floodfill/internal/term"
)

// animateMaxWidth caps the animated grid width in cells.
const animateMaxWidth = 60

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		os.Exit(2)
	}
	s, err := validate(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, s, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run loads the input, performs the fill and writes the requested outputs.
func run(ctx context.Context, s *settings, stdin io.Reader, stdout, stderr io.Writer) error {
	level := slog.LevelInfo
	if s.Verbose {
		level = slog.LevelDebug
	}
	floodfill.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer floodfill.SetLogger(nil)

	img, err := imageio.Load(s.Input)
	if err != nil {
		return err
	}
	grid := floodfill.NewGridFromImage(img)
	if !grid.InBounds(s.seed.X, s.seed.Y) {
		floodfill.Logger().Warn("seed outside the image, nothing to fill",
			"seed", s.seed, "width", grid.Width(), "height", grid.Height())
	}

	req, err := floodfill.NewRequest(s.seed, s.fill, s.Threshold, s.metric, s.algorithm)
	if err != nil {
		return err
	}

	var (
		opts      []floodfill.Option
		observers []func(floodfill.Step)
		progress  *term.Progress
	)
	if s.ColorIdentity {
		opts = append(opts, floodfill.WithColorIdentityVisited())
	}

	var hub *stream.Hub
	if s.Serve != "" {
		hub = stream.NewHub()
		shutdown, err := serve(s.Serve, hub)
		if err != nil {
			return err
		}
		defer shutdown()
		observers = append(observers, hub.Observe)
	}

	fillCtx, cancelFill := context.WithCancel(ctx)
	defer cancelFill()

	switch {
	case s.Manual:
		manual := floodfill.NewManual()
		go advanceOnEnter(stdin, manual, cancelFill)
		opts = append(opts, floodfill.WithScheduler(manual))
		fmt.Fprintln(stderr, "Press Enter to paint the next cell, Ctrl-C to stop.")
	case s.Animate:
		ticker := floodfill.NewTicker(s.Interval)
		defer ticker.Stop()
		opts = append(opts, floodfill.WithScheduler(ticker))
	default:
		progress = term.NewProgress(stderr, grid.Len())
		observers = append(observers, func(floodfill.Step) { progress.Step() })
	}
	if s.Animate {
		r := term.NewRenderer(stdout)
		r.MaxWidth = animateMaxWidth
		anim := term.NewAnimator(stdout, r)
		_ = anim.Draw(grid)
		observers = append(observers, func(floodfill.Step) { _ = anim.Draw(grid) })
	}
	if len(observers) > 0 {
		opts = append(opts, floodfill.WithObserver(func(st floodfill.Step) {
			for _, o := range observers {
				o(st)
			}
		}))
	}

	session := floodfill.NewSession(grid, floodfill.NewEngine(opts...))
	start := time.Now()
	if progress != nil {
		progress.Start()
	}
	res, fillErr := session.Fill(fillCtx, req)
	if progress != nil {
		progress.Stop(fillErr == nil)
	}
	elapsed := time.Since(start)

	if fillErr != nil && !res.Canceled {
		return fillErr
	}
	if hub != nil {
		hub.Finish(req, res)
	}
	if res.Canceled {
		floodfill.Logger().Info("fill interrupted, saving partial result", "painted", res.Painted)
	}

	fmt.Fprintln(stdout, summarize(req, res, elapsed, true))

	if s.Output != "" {
		if err := imageio.Save(s.Output, grid.ToImage()); err != nil {
			return err
		}
		floodfill.Logger().Info("image saved", "path", s.Output)
	}
	if s.PDF != "" {
		if err := writePDF(s.PDF, grid, s.Input, summarize(req, res, elapsed, false)); err != nil {
			return err
		}
		floodfill.Logger().Info("pdf saved", "path", s.PDF)
	}
	return nil
}

// summarize formats the fill outcome with grouped numbers, colored for the
// terminal when styled is set.
func summarize(req floodfill.Request, res floodfill.Result, elapsed time.Duration, styled bool) string {
	p := message.NewPrinter(language.English)
	status := "filled"
	if res.Canceled {
		status = "interrupted"
	}
	countStyle := lipgloss.NewStyle()
	timeStyle := lipgloss.NewStyle()
	if styled {
		countStyle = countStyle.Foreground(lipgloss.Color("202"))
		timeStyle = timeStyle.Foreground(lipgloss.Color("75"))
	}
	return p.Sprintf("%s %s: %s cells painted, %s cells probed, bounds %v, %s",
		req.Algorithm, status,
		countStyle.Render(p.Sprintf("%d", res.Painted)),
		countStyle.Render(p.Sprintf("%d", res.Probes)),
		res.Bounds,
		timeStyle.Render(elapsed.Round(time.Microsecond).String()))
}

// serve starts an HTTP server streaming steps at /ws and returns a function
// that shuts it down.
func serve(addr string, hub *stream.Hub) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("serve: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			floodfill.Logger().Warn("stream server stopped", "err", err)
		}
	}()
	floodfill.Logger().Info("streaming steps", "url", "ws://"+ln.Addr().String()+"/ws")

	return func() {
		hub.Close()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}

// advanceOnEnter releases one step per input line. When r is exhausted no
// further step can be released, so it stops the fill with cancel.
func advanceOnEnter(r io.Reader, m *floodfill.Manual, cancel context.CancelFunc) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		m.Advance()
	}
	if err := sc.Err(); err != nil {
		floodfill.Logger().Warn("reading input failed", "err", err)
	}
	cancel()
}

func writePDF(path string, g *floodfill.Grid, title, caption string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	if err := export.WritePDF(f, g, export.PDFOptions{Title: title, Caption: caption}); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
