// Package export writes filled grids to documents.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/gogpu/floodfill"
	"github.com/gogpu/floodfill/internal/imageio"
)

// PDFOptions controls PDF output.
type PDFOptions struct {
	// Title is printed above the image. Empty means no title.
	Title string

	// Caption is printed below the image, for example the fill summary.
	Caption string
}

const (
	pageMargin = 15.0 // mm
	lineHeight = 8.0  // mm
	imageName  = "grid"
)

// WritePDF renders g on a single A4 page, scaled to fit the page width
// with its aspect ratio kept, and writes the document to w.
func WritePDF(w io.Writer, g *floodfill.Grid, opts PDFOptions) error {
	if g.Width() == 0 || g.Height() == 0 {
		return errors.New("export: empty grid")
	}

	// Enlarge small grids so PDF viewers do not blur the cells.
	img := g.ToImage()
	if scale := max(1, 512/max(g.Width(), g.Height())); scale > 1 {
		img = imageio.Scale(img, g.Width()*scale, g.Height()*scale)
	}
	var png bytes.Buffer
	if err := imageio.Encode(&png, img, imageio.FormatPNG); err != nil {
		return err
	}

	orientation := "P"
	if g.Width() > g.Height() {
		orientation = "L"
	}
	p := gofpdf.New(orientation, "mm", "A4", "")
	p.SetMargins(pageMargin, pageMargin, pageMargin)
	p.AddPage()
	p.SetFont("Helvetica", "", 12)

	pageW, pageH := p.GetPageSize()
	y := pageMargin
	if opts.Title != "" {
		p.SetFont("Helvetica", "B", 14)
		p.Text(pageMargin, y+lineHeight/2, opts.Title)
		p.SetFont("Helvetica", "", 12)
		y += lineHeight
	}

	availW := pageW - 2*pageMargin
	availH := pageH - y - pageMargin - lineHeight
	imgW := availW
	imgH := imgW * float64(g.Height()) / float64(g.Width())
	if imgH > availH {
		imgH = availH
		imgW = imgH * float64(g.Width()) / float64(g.Height())
	}

	info := p.RegisterImageOptionsReader(imageName, gofpdf.ImageOptions{ImageType: "PNG"}, &png)
	if info == nil {
		return fmt.Errorf("export: register image: %w", p.Error())
	}
	p.ImageOptions(imageName, pageMargin, y, imgW, imgH, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	if opts.Caption != "" {
		p.Text(pageMargin, y+imgH+lineHeight, opts.Caption)
	}

	if err := p.Output(w); err != nil {
		return fmt.Errorf("export: write pdf: %w", err)
	}
	return nil
}
