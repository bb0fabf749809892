package floodfill

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math/rand/v2"
	"testing"
)

// squareGrid returns a 4x4 white grid with a black 2x2 square at (1,1)-(2,2).
func squareGrid() *Grid {
	g := NewGrid(4, 4)
	g.Clear(White)
	g.FillRect(image.Rect(1, 1, 3, 3), Black)
	return g
}

// mazeGrid returns a grid of white cells with roughly density black walls
// and a few gray cells, generated from a fixed seed.
func mazeGrid(w, h int, density float64, seed uint64) *Grid {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	g := NewGrid(w, h)
	for y := range h {
		for x := range w {
			switch v := rng.Float64(); {
			case v < density:
				g.Set(x, y, Black)
			case v < density+0.05:
				g.Set(x, y, RGB(0.9, 0.9, 0.9))
			default:
				g.Set(x, y, White)
			}
		}
	}
	return g
}

// gradientGrid returns a grid whose gray level grows with x+y.
func gradientGrid(w, h int) *Grid {
	g := NewGrid(w, h)
	for y := range h {
		for x := range w {
			v := float64(x+y) / float64(w+h-2)
			g.Set(x, y, RGB(v, v, v))
		}
	}
	return g
}

// expectedRegion computes the fill region with a plain BFS over the
// unmodified grid, independent of the engine.
func expectedRegion(g *Grid, seed image.Point, metric Metric, threshold float64) map[image.Point]bool {
	out := map[image.Point]bool{}
	if !g.InBounds(seed.X, seed.Y) {
		return out
	}
	target := g.Get(seed.X, seed.Y)
	queue := []image.Point{seed}
	out[seed] = true
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, n := range neighbors(p) {
			if !g.InBounds(n.X, n.Y) || out[n] {
				continue
			}
			if metric.Dissimilarity(g.Get(n.X, n.Y), target) <= threshold {
				out[n] = true
				queue = append(queue, n)
			}
		}
	}
	return out
}

// runFill fills a clone of g and returns the clone, the steps and the stats.
func runFill(t *testing.T, e *Engine, g *Grid, req Request) (*Grid, []Step, Stats) {
	t.Helper()
	g = g.Clone()
	seq, stats, err := e.Steps(g, req)
	if err != nil {
		t.Fatalf("Steps() error = %v", err)
	}
	steps := Record(seq)
	return g, steps, *stats
}

func mustRequest(t testing.TB, seed image.Point, fill RGBA, threshold float64, m Metric, a Algorithm) Request {
	t.Helper()
	req, err := NewRequest(seed, fill, threshold, m, a)
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	return req
}

// paintedSet converts steps to a set, failing if any cell appears twice.
func paintedSet(t *testing.T, steps []Step) map[image.Point]bool {
	t.Helper()
	out := make(map[image.Point]bool, len(steps))
	for _, s := range steps {
		if out[s.Point()] {
			t.Fatalf("cell %v painted twice", s.Point())
		}
		out[s.Point()] = true
	}
	return out
}

func sameSet(a, b map[image.Point]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for p := range a {
		if !b[p] {
			return false
		}
	}
	return true
}

func TestFill_SquareScenarios(t *testing.T) {
	tests := []struct {
		name      string
		seed      image.Point
		wantRed   int
		untouched RGBA
	}{
		{"outside square", image.Pt(0, 0), 12, Black},
		{"inside square", image.Pt(1, 1), 4, White},
	}

	for _, tt := range tests {
		for _, algo := range Algorithms {
			t.Run(tt.name+"/"+algo.String(), func(t *testing.T) {
				req := mustRequest(t, tt.seed, Red, 0.05, MetricEuclidean, algo)
				g, steps, stats := runFill(t, NewEngine(), squareGrid(), req)

				if len(steps) != tt.wantRed || stats.Painted != tt.wantRed {
					t.Errorf("painted %d cells (stats %d), want %d", len(steps), stats.Painted, tt.wantRed)
				}
				red, other := 0, 0
				for y := range 4 {
					for x := range 4 {
						switch c := g.Get(x, y); {
						case c.Equal(Red):
							red++
						case c.Equal(tt.untouched):
							other++
						default:
							t.Errorf("cell (%d,%d) = %v, unexpected", x, y, c)
						}
					}
				}
				if red != tt.wantRed || other != 16-tt.wantRed {
					t.Errorf("red = %d, untouched = %d; want %d, %d", red, other, tt.wantRed, 16-tt.wantRed)
				}
			})
		}
	}
}

func TestFill_BinaryZeroThresholdUniform(t *testing.T) {
	for _, algo := range Algorithms {
		for _, seed := range []image.Point{{0, 0}, {4, 3}, {9, 6}} {
			t.Run(fmt.Sprintf("%s/%v", algo, seed), func(t *testing.T) {
				g := NewGrid(10, 7)
				g.Clear(Blue)
				req := mustRequest(t, seed, Yellow, 0, MetricBinary, algo)
				res, err := NewEngine().Fill(context.Background(), g, req)
				if err != nil {
					t.Fatalf("Fill() error = %v", err)
				}
				if res.Painted != 70 {
					t.Errorf("Painted = %d, want 70", res.Painted)
				}
				for i, c := range g.cells {
					if !c.Equal(Yellow) {
						t.Fatalf("cell %d = %v, want yellow", i, c)
					}
				}
				if res.Bounds != g.Bounds() {
					t.Errorf("Bounds = %v, want %v", res.Bounds, g.Bounds())
				}
			})
		}
	}
}

func TestFill_RegionEquivalence(t *testing.T) {
	type config struct {
		metric    Metric
		threshold float64
	}
	configs := []config{
		{MetricBinary, 0},
		{MetricEuclidean, 0.05},
		{MetricEuclidean, 0.2},
		{MetricEuclideanRGBA, 0.1},
		{MetricLumaRec601, 0.05},
		{MetricLumaRec709, 0.05},
	}
	grids := map[string]*Grid{
		"maze30":   mazeGrid(23, 17, 0.30, 1),
		"maze45":   mazeGrid(19, 21, 0.45, 2),
		"sparse":   mazeGrid(16, 16, 0.10, 3),
		"gradient": gradientGrid(12, 9),
		"square":   squareGrid(),
	}

	for name, grid := range grids {
		seeds := []image.Point{
			{0, 0}, {grid.Width() - 1, 0}, {0, grid.Height() - 1},
			{grid.Width() - 1, grid.Height() - 1}, {grid.Width() / 2, grid.Height() / 2},
			{1, grid.Height() / 3},
		}
		for _, cfg := range configs {
			for _, seed := range seeds {
				want := expectedRegion(grid, seed, cfg.metric, cfg.threshold)
				for _, colorIdentity := range []bool{false, true} {
					var opts []Option
					if colorIdentity {
						opts = append(opts, WithColorIdentityVisited())
					}
					e := NewEngine(opts...)

					var first *Grid
					for _, algo := range Algorithms {
						label := fmt.Sprintf("%s/%s/%v/%v/%s/identity=%v",
							name, cfg.metric, cfg.threshold, seed, algo, colorIdentity)
						req := mustRequest(t, seed, Magenta, cfg.threshold, cfg.metric, algo)
						g, steps, _ := runFill(t, e, grid, req)

						got := paintedSet(t, steps)
						if !sameSet(got, want) {
							t.Errorf("%s: painted %d cells, want %d", label, len(got), len(want))
							continue
						}
						if first == nil {
							first = g
						} else if !gridsEqual(first, g) {
							t.Errorf("%s: final grid differs from %s", label, Algorithms[0])
						}
					}
				}
			}
		}
	}
}

func gridsEqual(a, b *Grid) bool {
	if a.width != b.width || a.height != b.height {
		return false
	}
	for i := range a.cells {
		if !a.cells[i].Equal(b.cells[i]) {
			return false
		}
	}
	return true
}

func TestFill_Idempotent(t *testing.T) {
	for _, algo := range Algorithms {
		t.Run(algo.String(), func(t *testing.T) {
			g := mazeGrid(20, 20, 0.3, 7)
			g.Set(5, 5, White)
			e := NewEngine()

			first, err := e.Fill(context.Background(), g, mustRequest(t, image.Pt(5, 5), Green, 0.05, MetricEuclidean, algo))
			if err != nil {
				t.Fatal(err)
			}
			if first.Painted == 0 {
				t.Fatal("first fill painted nothing")
			}
			before := g.Clone()

			// Reseed anywhere inside the filled region.
			var inside image.Point
			for y := range g.Height() {
				for x := range g.Width() {
					if g.Get(x, y).Equal(Green) {
						inside = image.Pt(x, y)
					}
				}
			}
			second, err := e.Fill(context.Background(), g, mustRequest(t, inside, Green, 0.05, MetricEuclidean, algo))
			if err != nil {
				t.Fatal(err)
			}
			if second.Painted != 0 {
				t.Errorf("second fill painted %d cells, want 0", second.Painted)
			}
			if !gridsEqual(before, g) {
				t.Error("second fill changed the grid")
			}
		})
	}
}

func TestFill_SeedOutOfBounds(t *testing.T) {
	for _, algo := range Algorithms {
		for _, seed := range []image.Point{{-1, 0}, {0, -1}, {4, 0}, {0, 4}, {100, 100}} {
			req := mustRequest(t, seed, Red, 0.5, MetricEuclidean, algo)
			g := squareGrid()
			res, err := NewEngine().Fill(context.Background(), g, req)
			if err != nil {
				t.Errorf("%s %v: Fill() error = %v, want nil", algo, seed, err)
			}
			if res.Painted != 0 || !gridsEqual(g, squareGrid()) {
				t.Errorf("%s %v: painted %d cells, want 0", algo, seed, res.Painted)
			}
		}
	}
}

func TestFill_EdgeSeeds(t *testing.T) {
	// A 1-cell-wide frame of white around a black interior: every edge seed
	// must fill exactly the frame.
	g := NewGrid(7, 5)
	g.Clear(White)
	g.FillRect(image.Rect(1, 1, 6, 4), Black)
	want := 7*5 - 5*3

	var seeds []image.Point
	for x := range 7 {
		seeds = append(seeds, image.Pt(x, 0), image.Pt(x, 4))
	}
	for y := range 5 {
		seeds = append(seeds, image.Pt(0, y), image.Pt(6, y))
	}
	for _, algo := range Algorithms {
		for _, seed := range seeds {
			req := mustRequest(t, seed, Red, 0.05, MetricEuclidean, algo)
			_, steps, _ := runFill(t, NewEngine(), g, req)
			if len(steps) != want {
				t.Errorf("%s seed %v: painted %d, want %d", algo, seed, len(steps), want)
			}
		}
	}
}

func TestFill_ThresholdMonotonic(t *testing.T) {
	g := gradientGrid(15, 15)
	seed := image.Pt(0, 0)
	thresholds := []float64{0, 0.05, 0.1, 0.3, 0.6, 1}

	for _, metric := range []Metric{MetricBinary, MetricEuclidean} {
		for _, algo := range Algorithms {
			var prev map[image.Point]bool
			for _, th := range thresholds {
				req := mustRequest(t, seed, Red, th, metric, algo)
				_, steps, _ := runFill(t, NewEngine(), g, req)
				cur := paintedSet(t, steps)
				for p := range prev {
					if !cur[p] {
						t.Errorf("%s/%s: cell %v filled at a lower threshold but not at %v", metric, algo, p, th)
					}
				}
				prev = cur
			}
		}
	}
}

func TestFill_SpanAlgorithmsProbeFewerCells(t *testing.T) {
	g := NewGrid(32, 32)
	g.Clear(White)
	seed := image.Pt(16, 16)

	probes := map[Algorithm]int{}
	for _, algo := range Algorithms {
		req := mustRequest(t, seed, Red, 0.1, MetricEuclidean, algo)
		_, steps, stats := runFill(t, NewEngine(), g, req)
		if len(steps) != 32*32 {
			t.Fatalf("%s painted %d, want %d", algo, len(steps), 32*32)
		}
		probes[algo] = stats.Probes
	}

	for _, fast := range []Algorithm{AlgorithmHeckbert, AlgorithmRunLength} {
		for _, slow := range []Algorithm{AlgorithmDFS, AlgorithmBFS} {
			if probes[fast] >= probes[slow] {
				t.Errorf("%s probed %d cells, want fewer than %s (%d)", fast, probes[fast], slow, probes[slow])
			}
		}
	}
}

func TestFill_RecursiveOrder(t *testing.T) {
	// On an open 3x3 grid from the center, the recursive order goes right
	// first, then back left along the row before moving down.
	g := NewGrid(3, 3)
	g.Clear(White)
	req := mustRequest(t, image.Pt(1, 1), Red, 0, MetricBinary, AlgorithmRecursive)
	_, steps, _ := runFill(t, NewEngine(), g, req)

	want := []image.Point{
		{1, 1}, {2, 1}, {2, 2}, {1, 2}, {0, 2}, {0, 1}, {0, 0}, {1, 0}, {2, 0},
	}
	if len(steps) != len(want) {
		t.Fatalf("got %d steps, want %d", len(steps), len(want))
	}
	for i, p := range want {
		if steps[i].Point() != p {
			t.Errorf("step %d = %v, want %v", i, steps[i].Point(), p)
		}
	}
}

func TestFill_LargeRegionNoStackGrowth(t *testing.T) {
	// A naive recursive descent would recurse once per cell here.
	g := NewGrid(600, 600)
	g.Clear(White)
	req := mustRequest(t, image.Pt(0, 0), Red, 0, MetricBinary, AlgorithmRecursive)
	res, err := NewEngine().Fill(context.Background(), g, req)
	if err != nil {
		t.Fatal(err)
	}
	if res.Painted != 600*600 {
		t.Errorf("Painted = %d, want %d", res.Painted, 600*600)
	}
}

func TestFill_ColorIdentityEdgeCase(t *testing.T) {
	// The middle column already has the fill color but is similar enough to
	// the target. The explicit marker fills through it; the color rule
	// treats it as visited and stops.
	g := NewGrid(3, 1)
	g.Clear(White)
	nearWhite := RGB(0.98, 0.98, 0.98)
	g.Set(1, 0, nearWhite)

	for _, algo := range Algorithms {
		req := mustRequest(t, image.Pt(0, 0), nearWhite, 0.05, MetricEuclidean, algo)

		_, steps, _ := runFill(t, NewEngine(), g, req)
		if len(steps) != 3 {
			t.Errorf("%s marker: painted %d, want 3", algo, len(steps))
		}

		_, steps, _ = runFill(t, NewEngine(WithColorIdentityVisited()), g, req)
		if len(steps) != 1 {
			t.Errorf("%s color identity: painted %d, want 1", algo, len(steps))
		}
	}
}

func TestFill_LumaIsSigned(t *testing.T) {
	// Darker cells score negative against a light target and pass any
	// threshold; lighter cells do not.
	g := NewGrid(3, 1)
	g.Set(0, 0, Black)
	g.Set(1, 0, RGB(0.5, 0.5, 0.5))
	g.Set(2, 0, White)

	req := mustRequest(t, image.Pt(1, 0), Red, 0.1, MetricLumaRec601, AlgorithmBFS)
	_, steps, _ := runFill(t, NewEngine(), g, req)
	got := paintedSet(t, steps)
	if !got[image.Pt(0, 0)] || !got[image.Pt(1, 0)] || got[image.Pt(2, 0)] {
		t.Errorf("painted %v, want (0,0) and (1,0) only", got)
	}
}

func TestRunLength_Obstacles(t *testing.T) {
	g := squareGrid()
	t.Run("mismatch", func(t *testing.T) {
		req := mustRequest(t, image.Pt(0, 0), Red, 0.05, MetricEuclidean, AlgorithmRunLength)
		req.Obstacles = NewOccupancy(3, 4)
		if _, _, err := NewEngine().Steps(g, req); !errors.Is(err, ErrDimensionMismatch) {
			t.Errorf("Steps() error = %v, want ErrDimensionMismatch", err)
		}
	})
	t.Run("supplied", func(t *testing.T) {
		// Only the right column is blocked; the black square is not an
		// obstacle here, so everything else is filled.
		occ := NewOccupancy(4, 4)
		for y := range 4 {
			occ.Set(3, y, true)
		}
		req := mustRequest(t, image.Pt(0, 0), Red, 0.05, MetricEuclidean, AlgorithmRunLength)
		req.Obstacles = occ
		got, steps, _ := runFill(t, NewEngine(), g, req)
		if len(steps) != 12 {
			t.Errorf("painted %d, want 12", len(steps))
		}
		for y := range 4 {
			if !got.Get(3, y).Equal(White) {
				t.Errorf("blocked cell (3,%d) painted", y)
			}
		}
		if occ.Count() != 16 {
			t.Errorf("occupancy has %d set cells, want 16", occ.Count())
		}
	})
}

func BenchmarkFill(b *testing.B) {
	src := mazeGrid(256, 256, 0.2, 42)
	src.Set(128, 128, White)
	for _, algo := range Algorithms {
		b.Run(algo.String(), func(b *testing.B) {
			e := NewEngine()
			req := mustRequest(b, image.Pt(128, 128), Red, 0.05, MetricEuclidean, algo)
			b.ReportAllocs()
			for b.Loop() {
				g := src.Clone()
				if _, err := e.Fill(context.Background(), g, req); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
