package engine

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"
	"golang.org/x/text/encoding/charmap"

	"github.com/fillkit/fillkit/internal/pdf/fill"
)

const (
	// overlayFont is the monospaced face used for all drawn text.
	overlayFont = "Courier"

	// ascentRatio places the text baseline below the top anchor so the
	// glyphs hang from the rectangle's upper edge.
	ascentRatio = 0.8
)

// canvas renders text onto fpdf pages. With an importer attached, every
// added page is first stamped with the matching page of the source
// document; page content comes along, interactive elements do not.
type canvas struct {
	pdf      *fpdf.Fpdf
	importer *gofpdi.Importer
	src      io.ReadSeeker
	pages    int
	fontSize float64
}

// NewBlankCanvas returns a canvas producing a fresh document that holds
// only drawn text.
func (e *Engine) NewBlankCanvas() fill.Canvas {
	return newCanvas()
}

// NewPageCanvas returns a canvas whose pages mirror src. Used for the
// flatten path: the original page content is carried over and the
// injected values are drawn on top of it.
func (e *Engine) NewPageCanvas(src []byte) (fill.Canvas, error) {
	if len(src) == 0 {
		return nil, errors.New("empty source document")
	}
	c := newCanvas()
	c.importer = gofpdi.NewImporter()
	c.src = bytes.NewReader(src)
	return c, nil
}

func newCanvas() *canvas {
	pdf := fpdf.New("P", "pt", "", "")
	pdf.SetFont(overlayFont, "", fill.DefaultFontSize)
	return &canvas{pdf: pdf, fontSize: fill.DefaultFontSize}
}

// AddPage appends a page of the given size and, in import mode, stamps
// the corresponding source page onto it.
func (c *canvas) AddPage(size fill.PageSize) (err error) {
	// gofpdi reports unparseable source documents by panicking; turn
	// that into an error so one bad document cannot take the process
	// down.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("import page %d: %v", c.pages, r)
		}
	}()

	c.pages++
	c.pdf.AddPageFormat("P", fpdf.SizeType{Wd: size.Width, Ht: size.Height})

	if c.importer != nil {
		tpl := c.importer.ImportPageFromStream(c.pdf, &c.src, c.pages, "/MediaBox")
		c.importer.UseImportedTemplate(c.pdf, tpl, 0, 0, size.Width, 0)
	}
	return c.pdf.Error()
}

// SetFontSize switches the size used by subsequent DrawText calls.
func (c *canvas) SetFontSize(points float64) {
	c.fontSize = points
	c.pdf.SetFontSize(points)
}

// DrawText places text with its top-left corner at (x, y), measured
// from the current page's top-left corner.
func (c *canvas) DrawText(x, y float64, text string) error {
	// fpdf's core fonts are Latin-1; characters outside it would corrupt
	// the content stream.
	latin1, err := charmap.ISO8859_1.NewEncoder().String(text)
	if err != nil {
		latin1 = text
	}
	c.pdf.Text(x, y+c.fontSize*ascentRatio, latin1)
	return c.pdf.Error()
}

// Bytes finalizes the document.
func (c *canvas) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write rendered document: %w", err)
	}
	return buf.Bytes(), nil
}
