package floodfill

import (
	"image"
	"image/color"
)

// Grid is a rectangular buffer of colors addressed by cell coordinates.
// Cell (x, y) is stored at index x + y*width.
//
// A Grid is not safe for concurrent use. Fills mutate it in place.
type Grid struct {
	width  int
	height int
	cells  []RGBA
}

// NewGrid creates a grid of the given dimensions filled with Transparent.
// Negative dimensions are treated as zero.
func NewGrid(width, height int) *Grid {
	width, height = max(width, 0), max(height, 0)
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]RGBA, width*height),
	}
}

// NewGridFromImage creates a grid holding the pixels of img.
// Cell (0, 0) corresponds to img.Bounds().Min.
func NewGridFromImage(img image.Image) *Grid {
	bounds := img.Bounds()
	g := NewGrid(bounds.Dx(), bounds.Dy())

	// Fast path for NRGBA images
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := range g.height {
			row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+g.width*4]
			for x := range g.width {
				p := row[x*4 : x*4+4]
				g.cells[x+y*g.width] = RGBA{
					R: float64(p[0]) / 255,
					G: float64(p[1]) / 255,
					B: float64(p[2]) / 255,
					A: float64(p[3]) / 255,
				}
			}
		}
		return g
	}

	for y := range g.height {
		for x := range g.width {
			g.cells[x+y*g.width] = FromColor(img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return g
}

// Width returns the width of the grid.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the height of the grid.
func (g *Grid) Height() int {
	return g.height
}

// Len returns the number of cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// Index returns the linear index of cell (x, y). The result is only
// meaningful when InBounds(x, y) holds.
func (g *Grid) Index(x, y int) int {
	return x + y*g.width
}

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Get returns the color of cell (x, y), or Transparent if out of bounds.
func (g *Grid) Get(x, y int) RGBA {
	if !g.InBounds(x, y) {
		return Transparent
	}
	return g.cells[x+y*g.width]
}

// Set sets the color of cell (x, y). Out-of-bounds writes are ignored.
func (g *Grid) Set(x, y int, c RGBA) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[x+y*g.width] = c
}

// Clear fills the entire grid with a color.
func (g *Grid) Clear(c RGBA) {
	for i := range g.cells {
		g.cells[i] = c
	}
}

// FillRect sets every cell of r (clipped to the grid) to c.
func (g *Grid) FillRect(r image.Rectangle, c RGBA) {
	r = r.Intersect(g.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			g.cells[x+y*g.width] = c
		}
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{width: g.width, height: g.height, cells: make([]RGBA, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// ToImage converts the grid to an image.NRGBA.
func (g *Grid) ToImage() *image.NRGBA {
	img := image.NewNRGBA(g.Bounds())
	for y := range g.height {
		for x := range g.width {
			img.SetNRGBA(x, y, g.cells[x+y*g.width].Color().(color.NRGBA))
		}
	}
	return img
}

// At implements the image.Image interface.
func (g *Grid) At(x, y int) color.Color {
	return g.Get(x, y).Color()
}

// Bounds implements the image.Image interface.
func (g *Grid) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.width, g.height)
}

// ColorModel implements the image.Image interface.
func (g *Grid) ColorModel() color.Model {
	return color.NRGBAModel
}
