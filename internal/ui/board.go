package ui

import (
	"errors"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"github.com/sirupsen/logrus"

	"LocalSketch/internal/geom"
	"LocalSketch/internal/state"
)

var (
	backgroundColor = color.NRGBA{R: 0x12, G: 0x12, B: 0x12, A: 0xff}
	gridColor       = color.NRGBA{R: 0x2a, G: 0x2a, B: 0x2a, A: 0xff}
	entityColor     = color.NRGBA{R: 0xff, A: 0xff}
	previewColor    = color.NRGBA{R: 0xff, G: 0x80, B: 0x80, A: 0xa0}
)

const (
	strokeWidth  = 2
	markerRadius = 2
	// arcStep is the largest angle, in degrees, covered by one line of an
	// arc polyline.
	arcStep = 4.0
)

// Drawing is the shared drawing the board edits. The host's sync hub and a
// joined client both satisfy it.
type Drawing interface {
	Create(e state.Entity) error
	Trim(id uint64, pick geom.Point) error
	Undo() error
	Pick(p geom.Point, tol float64) (uint64, bool)
	SetHandles(id uint64, handles []state.Handle) error
	Entities() []state.Entity
}

// board owns the canvas objects of the drawing layer. Each entity's
// objects are handed to the Drawing as its render handles, so removal only
// needs what a diff carries.
type board struct {
	drawing Drawing
	layer   *fyne.Container
	log     logrus.FieldLogger
}

func newBoard(d Drawing, log logrus.FieldLogger) *board {
	return &board{drawing: d, layer: container.NewWithoutLayout(), log: log}
}

// applyDiff must run on the fyne goroutine.
func (b *board) applyDiff(d state.Diff) {
	for _, e := range d.Removed {
		for _, h := range e.Handles {
			if obj, ok := h.(fyne.CanvasObject); ok {
				b.layer.Remove(obj)
			}
		}
	}
	for _, e := range d.Added {
		objs := renderEntity(e, entityColor)
		for _, obj := range objs {
			b.layer.Add(obj)
		}
		handles := make([]state.Handle, len(objs))
		for i, obj := range objs {
			handles[i] = obj
		}
		if err := b.drawing.SetHandles(e.ID, handles); err != nil {
			// Removed again before this diff reached the screen.
			if !errors.Is(err, state.ErrNotFound) {
				b.log.WithError(err).WithField("id", e.ID).Warn("store render handles")
			}
			for _, obj := range objs {
				b.layer.Remove(obj)
			}
		}
	}
	b.layer.Refresh()
}

// redraw replaces the layer with the drawing's current entities.
func (b *board) redraw() {
	b.layer.RemoveAll()
	b.applyDiff(state.Diff{Added: b.drawing.Entities()})
}

func renderEntity(e state.Entity, c color.Color) []fyne.CanvasObject {
	switch e.Kind {
	case state.KindPoint:
		return []fyne.CanvasObject{marker(e.At, c)}
	case state.KindSegment:
		return []fyne.CanvasObject{line(e.P0, e.P1, c)}
	case state.KindCircle:
		return []fyne.CanvasObject{circle(e.Center, e.Radius, c)}
	case state.KindArc:
		return arcLines(e.Center, e.Radius, e.Start, e.Extent, c)
	}
	return nil
}

func pos(p geom.Point) fyne.Position {
	return fyne.NewPos(float32(p.X), float32(p.Y))
}

func line(p0, p1 geom.Point, c color.Color) *canvas.Line {
	l := canvas.NewLine(c)
	l.StrokeWidth = strokeWidth
	l.Position1 = pos(p0)
	l.Position2 = pos(p1)
	return l
}

func circle(center geom.Point, r float64, c color.Color) *canvas.Circle {
	ci := canvas.NewCircle(color.Transparent)
	ci.StrokeColor = c
	ci.StrokeWidth = strokeWidth
	ci.Position1 = pos(geom.Pt(center.X-r, center.Y-r))
	ci.Position2 = pos(geom.Pt(center.X+r, center.Y+r))
	return ci
}

func marker(at geom.Point, c color.Color) *canvas.Circle {
	m := canvas.NewCircle(c)
	m.Position1 = pos(geom.Pt(at.X-markerRadius, at.Y-markerRadius))
	m.Position2 = pos(geom.Pt(at.X+markerRadius, at.Y+markerRadius))
	return m
}

func arcLines(center geom.Point, r, start, extent float64, c color.Color) []fyne.CanvasObject {
	n := max(1, int(math.Ceil(extent/arcStep)))
	objs := make([]fyne.CanvasObject, 0, n)
	prev := geom.PointAt(center, r, start)
	for i := 1; i <= n; i++ {
		next := geom.PointAt(center, r, start+extent*float64(i)/float64(n))
		objs = append(objs, line(prev, next, c))
		prev = next
	}
	return objs
}

// gridLines covers size with lines every pitch units.
func gridLines(size fyne.Size, pitch float64) []fyne.CanvasObject {
	if pitch <= 0 {
		return nil
	}
	var lines []fyne.CanvasObject
	step := float32(pitch)
	for x := float32(0); x <= size.Width; x += step {
		l := canvas.NewLine(gridColor)
		l.StrokeWidth = 1
		l.Position1 = fyne.NewPos(x, 0)
		l.Position2 = fyne.NewPos(x, size.Height)
		lines = append(lines, l)
	}
	for y := float32(0); y <= size.Height; y += step {
		l := canvas.NewLine(gridColor)
		l.StrokeWidth = 1
		l.Position1 = fyne.NewPos(0, y)
		l.Position2 = fyne.NewPos(size.Width, y)
		lines = append(lines, l)
	}
	return lines
}
