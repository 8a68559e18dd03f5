package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"LocalSketch/internal/config"
	"LocalSketch/internal/geom"
	"LocalSketch/internal/state"
)

// BoardWidget is the interactive sketch surface. Clicks become entities or
// trims on the Drawing; the drawing reports back through ApplyDiff.
type BoardWidget struct {
	widget.BaseWidget

	board    *board
	sketch   sketch
	showGrid bool
	pickTol  float64

	grid    *fyne.Container
	preview *fyne.Container
	status  *widget.Label

	onToolChange func(Tool)
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Tappable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)

func NewBoardWidget(d Drawing, cfg *config.Config, log logrus.FieldLogger) *BoardWidget {
	if log == nil {
		log = logrus.StandardLogger()
	}
	b := &BoardWidget{
		board:    newBoard(d, log.WithField("component", "ui")),
		sketch:   sketch{grid: cfg.Grid},
		showGrid: cfg.Grid.Show,
		pickTol:  cfg.Trim.PickTolerance,
		grid:     container.NewWithoutLayout(),
		preview:  container.NewWithoutLayout(),
		status:   widget.NewLabel("Ready"),
	}
	b.ExtendBaseWidget(b)
	return b
}

// Status is the label the board reports to.
func (b *BoardWidget) Status() *widget.Label {
	return b.status
}

// ApplyDiff redraws what d changed. Safe to call from any goroutine.
func (b *BoardWidget) ApplyDiff(d state.Diff) {
	fyne.Do(func() { b.board.applyDiff(d) })
}

// SetStatus shows text in the status label. Safe from any goroutine.
func (b *BoardWidget) SetStatus(text string) {
	fyne.Do(func() { b.status.SetText(text) })
}

func (b *BoardWidget) SetTool(t Tool) {
	b.sketch.setTool(t)
	b.preview.RemoveAll()
	b.status.SetText(t.String() + " mode")
}

// Cancel leaves the current mode and drops a pending first click.
func (b *BoardWidget) Cancel() {
	b.sketch.cancel()
	b.preview.RemoveAll()
	b.preview.Refresh()
	if b.onToolChange != nil {
		b.onToolChange(ToolNone)
	}
	b.status.SetText("Ready")
}

func (b *BoardWidget) Undo() {
	if err := b.board.drawing.Undo(); err != nil {
		b.report("undo", err)
	}
}

func (b *BoardWidget) ToggleGrid() {
	b.showGrid = !b.showGrid
	b.layoutGrid(b.Size())
}

// Redraw rebuilds every entity from the drawing.
func (b *BoardWidget) Redraw() {
	fyne.Do(b.board.redraw)
}

func (b *BoardWidget) Tapped(ev *fyne.PointEvent) {
	at := geom.Pt(float64(ev.Position.X), float64(ev.Position.Y))
	in, ok := b.sketch.click(at)
	b.showPreview(at)
	if !ok {
		return
	}
	d := b.board.drawing
	switch {
	case in.create != nil:
		if err := d.Create(*in.create); err != nil {
			b.report("create "+in.create.Kind.String(), err)
		}
	case in.trim:
		id, hit := d.Pick(in.at, b.pickTol)
		if !hit {
			b.status.SetText("Nothing to trim here")
			return
		}
		if err := d.Trim(id, in.at); err != nil {
			b.report(fmt.Sprintf("trim %d", id), err)
		}
	}
}

func (b *BoardWidget) MouseIn(ev *desktop.MouseEvent) {
	b.MouseMoved(ev)
}

func (b *BoardWidget) MouseMoved(ev *desktop.MouseEvent) {
	b.showPreview(geom.Pt(float64(ev.Position.X), float64(ev.Position.Y)))
}

func (b *BoardWidget) MouseOut() {
	b.preview.RemoveAll()
	b.preview.Refresh()
}

func (b *BoardWidget) showPreview(at geom.Point) {
	pv := b.sketch.preview(at)
	var objs []fyne.CanvasObject
	if pv.marker {
		objs = append(objs, marker(pv.cursor, previewColor))
	}
	if pv.anchor != nil {
		objs = append(objs, marker(*pv.anchor, entityColor))
		if pv.line {
			objs = append(objs, line(*pv.anchor, pv.cursor, previewColor))
		}
		if pv.radius > 0 {
			objs = append(objs, circle(*pv.anchor, pv.radius, previewColor))
		}
	}
	b.preview.Objects = objs
	b.preview.Refresh()
}

func (b *BoardWidget) report(what string, err error) {
	b.board.log.WithError(err).Warn(what + " failed")
	b.status.SetText(fmt.Sprintf("%s: %v", what, err))
}

func (b *BoardWidget) layoutGrid(size fyne.Size) {
	if b.showGrid {
		b.grid.Objects = gridLines(size, b.sketch.grid.Pitch)
	} else {
		b.grid.Objects = nil
	}
	b.grid.Refresh()
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(backgroundColor)
	return &boardRenderer{
		widget:     b,
		background: bg,
		objects:    []fyne.CanvasObject{bg, b.grid, b.board.layer, b.preview},
	}
}

type boardRenderer struct {
	widget     *BoardWidget
	background *canvas.Rectangle
	objects    []fyne.CanvasObject
	last       fyne.Size
}

func (r *boardRenderer) Layout(size fyne.Size) {
	for _, o := range r.objects {
		o.Resize(size)
	}
	if size != r.last {
		r.last = size
		r.widget.layoutGrid(size)
	}
}

func (r *boardRenderer) MinSize() fyne.Size {
	return fyne.NewSize(640, 480)
}

func (r *boardRenderer) Refresh() {
	r.background.Refresh()
	for _, o := range r.objects[1:] {
		o.Refresh()
	}
}

func (r *boardRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *boardRenderer) Destroy() {}
