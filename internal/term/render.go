// Package term draws grids and fill progress on a terminal.
package term

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gogpu/floodfill"
	"github.com/gogpu/floodfill/internal/imageio"
)

// cellText is printed for every cell; two columns make cells roughly square.
const cellText = "  "

// Renderer turns a grid into rows of colored terminal cells.
type Renderer struct {
	r *lipgloss.Renderer

	// MaxWidth caps the number of cells per row. Wider grids are scaled
	// down with nearest-neighbor sampling. Zero means no limit.
	MaxWidth int

	styles map[floodfill.RGBA]lipgloss.Style
}

// NewRenderer returns a renderer whose color support is detected from w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{
		r:      lipgloss.NewRenderer(w),
		styles: make(map[floodfill.RGBA]lipgloss.Style),
	}
}

func (r *Renderer) style(c floodfill.RGBA) lipgloss.Style {
	if s, ok := r.styles[c]; ok {
		return s
	}
	// Terminals have no alpha; drop it from the hex form.
	s := r.r.NewStyle().Background(lipgloss.Color(c.String()[:7]))
	r.styles[c] = s
	return s
}

// Render returns the grid as newline-separated rows.
func (r *Renderer) Render(g *floodfill.Grid) string {
	src := g
	if r.MaxWidth > 0 && g.Width() > r.MaxWidth {
		h := max(1, g.Height()*r.MaxWidth/g.Width())
		src = floodfill.NewGridFromImage(imageio.Scale(g, r.MaxWidth, h))
	}

	rows := make([]string, src.Height())
	var b strings.Builder
	for y := range src.Height() {
		b.Reset()
		for x := range src.Width() {
			b.WriteString(r.style(src.Get(x, y)).Render(cellText))
		}
		rows[y] = b.String()
	}
	return strings.Join(rows, "\n")
}

// Animator redraws a grid in place.
type Animator struct {
	w     io.Writer
	r     *Renderer
	lines int
}

// NewAnimator returns an animator drawing to w with r.
func NewAnimator(w io.Writer, r *Renderer) *Animator {
	return &Animator{w: w, r: r}
}

// Draw renders g, moving the cursor back over the previous frame first.
func (a *Animator) Draw(g *floodfill.Grid) error {
	frame := a.r.Render(g)
	if a.lines > 0 {
		if _, err := fmt.Fprintf(a.w, "\x1b[%dA\r", a.lines); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(a.w, frame); err != nil {
		return err
	}
	a.lines = strings.Count(frame, "\n") + 1
	return nil
}
