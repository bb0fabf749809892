package main

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/gogpu/floodfill"
	"github.com/gogpu/floodfill/internal/imageio"
)

// config holds the command-line flags.
type config struct {
	Input     string
	Output    string
	Seed      string
	Fill      string
	Threshold float64
	Metric    string
	Algorithm string

	Animate       bool
	Interval      time.Duration
	Manual        bool
	ColorIdentity bool

	Serve   string
	PDF     string
	Verbose bool
}

// settings is a validated config with every value parsed.
type settings struct {
	config

	seed      image.Point
	fill      floodfill.RGBA
	metric    floodfill.Metric
	algorithm floodfill.Algorithm
}

// parseFlags defines and parses command-line flags, returning them
// in a config struct.
func parseFlags(args []string, stderr io.Writer) (*config, error) {
	cfg := &config{}
	fs := pflag.NewFlagSet("floodfill", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVarP(&cfg.Input, "input", "i", "", "Path to the input image (png, jpeg, bmp, tiff).")
	fs.StringVarP(&cfg.Output, "output", "o", "", "Path to save the filled image; the format follows the extension.")
	fs.StringVarP(&cfg.Seed, "seed", "s", "0,0", "Seed cell as \"x,y\".")
	fs.StringVarP(&cfg.Fill, "fill", "f", "red", "Fill color: a name or a hex value such as #ff8800.")
	fs.Float64VarP(&cfg.Threshold, "threshold", "t", 0.1, "Largest dissimilarity to the seed color that is still filled, in [0, 1].")
	fs.StringVarP(&cfg.Metric, "metric", "m", floodfill.MetricEuclidean.String(), "Color metric: "+metricNames()+".")
	fs.StringVarP(&cfg.Algorithm, "algorithm", "a", floodfill.AlgorithmHeckbert.String(), "Fill algorithm: "+algorithmNames()+".")
	fs.BoolVar(&cfg.Animate, "animate", false, "Render every step in the terminal.")
	fs.DurationVar(&cfg.Interval, "interval", 20*time.Millisecond, "Delay between animated steps.")
	fs.BoolVar(&cfg.Manual, "manual", false, "Advance one step each time Enter is pressed (implies --animate).")
	fs.BoolVar(&cfg.ColorIdentity, "color-identity", false, "Treat cells already equal to the fill color as visited.")
	fs.StringVar(&cfg.Serve, "serve", "", "Stream steps to websocket clients on this address, e.g. :8080.")
	fs.StringVar(&cfg.PDF, "pdf", "", "Path to export the filled image as a PDF.")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Log fill details.")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks cfg and parses its values.
func validate(cfg *config) (*settings, error) {
	if cfg.Input == "" {
		return nil, errors.New("--input/-i flag is required")
	}
	if _, err := os.Stat(cfg.Input); os.IsNotExist(err) {
		return nil, fmt.Errorf("input file does not exist: %s", cfg.Input)
	}
	if cfg.Output != "" {
		if _, err := imageio.FormatFromPath(cfg.Output); err != nil {
			return nil, fmt.Errorf("--output: %w", err)
		}
	}
	if cfg.Threshold < 0 || cfg.Threshold > 1 {
		return nil, fmt.Errorf("--threshold must be in [0, 1], got %v", cfg.Threshold)
	}
	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("--interval must be positive, got %v", cfg.Interval)
	}

	s := &settings{config: *cfg}
	var err error
	if s.seed, err = parseSeed(cfg.Seed); err != nil {
		return nil, err
	}
	if s.fill, err = floodfill.ParseColor(cfg.Fill); err != nil {
		return nil, fmt.Errorf("--fill: %w", err)
	}
	if s.metric, err = floodfill.ParseMetric(cfg.Metric); err != nil {
		return nil, fmt.Errorf("--metric: %w", err)
	}
	if s.algorithm, err = floodfill.ParseAlgorithm(cfg.Algorithm); err != nil {
		return nil, fmt.Errorf("--algorithm: %w", err)
	}
	if s.Manual {
		s.Animate = true
	}
	return s, nil
}

// parseSeed parses "x,y".
func parseSeed(v string) (image.Point, error) {
	xs, ys, ok := strings.Cut(v, ",")
	if !ok {
		return image.Point{}, fmt.Errorf("--seed must be \"x,y\", got %q", v)
	}
	x, errX := strconv.Atoi(strings.TrimSpace(xs))
	y, errY := strconv.Atoi(strings.TrimSpace(ys))
	if errX != nil || errY != nil {
		return image.Point{}, fmt.Errorf("--seed must be \"x,y\", got %q", v)
	}
	return image.Pt(x, y), nil
}

func metricNames() string {
	names := make([]string, len(floodfill.UIMetrics))
	for i, m := range floodfill.UIMetrics {
		names[i] = m.String()
	}
	return strings.Join(names, ", ")
}

func algorithmNames() string {
	names := make([]string, len(floodfill.Algorithms))
	for i, a := range floodfill.Algorithms {
		names[i] = a.String()
	}
	return strings.Join(names, ", ")
}
