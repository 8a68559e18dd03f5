// Package export writes drawings to printable documents.
package export

import (
	"fmt"
	"io"
	"os"

	"github.com/jung-kurt/gofpdf"

	"LocalSketch/internal/config"
	"LocalSketch/internal/geom"
	"LocalSketch/internal/state"
)

// margin is the page offset of the board origin, in document units.
const margin = 10.0

// PDF writes entities to w as a single page. Board units are multiplied by
// opts.Scale; y grows downward on both the board and the page, so no flip
// is needed.
func PDF(w io.Writer, entities []state.Entity, opts config.ExportConfig) error {
	p := gofpdf.New(opts.Orientation, opts.Unit, opts.Size, "")
	p.SetTitle("LocalSketch drawing", true)
	p.SetCreator("LocalSketch", true)
	p.AddPage()
	p.SetDrawColor(0, 0, 0)
	p.SetFillColor(0, 0, 0)
	p.SetLineWidth(opts.LineWidth)

	for _, e := range entities {
		draw(p, e, opts)
	}
	if err := p.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// PDFFile writes the drawing to path, replacing any existing file.
func PDFFile(path string, entities []state.Entity, opts config.ExportConfig) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := PDF(f, entities, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func draw(p *gofpdf.Fpdf, e state.Entity, opts config.ExportConfig) {
	s := opts.Scale
	switch e.Kind {
	case state.KindPoint:
		x, y := toPage(e.At, s)
		p.Circle(x, y, 2*opts.LineWidth, "F")
	case state.KindSegment:
		x0, y0 := toPage(e.P0, s)
		x1, y1 := toPage(e.P1, s)
		p.Line(x0, y0, x1, y1)
	case state.KindCircle:
		x, y := toPage(e.Center, s)
		p.Circle(x, y, e.Radius*s, "D")
	case state.KindArc:
		// gofpdf measures counterclockwise from 3 o'clock as seen on the
		// page, the same convention the board uses.
		x, y := toPage(e.Center, s)
		r := e.Radius * s
		p.Arc(x, y, r, r, 0, e.Start, e.Start+e.Extent, "D")
	}
}

func toPage(pt geom.Point, scale float64) (float64, float64) {
	return margin + pt.X*scale, margin + pt.Y*scale
}
