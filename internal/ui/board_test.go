package ui

import (
	"io"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
	"github.com/sirupsen/logrus"

	"LocalSketch/internal/geom"
	"LocalSketch/internal/state"
)

// editorDrawing adapts a local Editor to Drawing, reporting diffs to
// onDiff the way the sync hub does.
type editorDrawing struct {
	ed     *state.Editor
	onDiff func(state.Diff)
}

func (d *editorDrawing) Create(e state.Entity) error {
	e, err := d.ed.Create(e)
	if err != nil {
		return err
	}
	d.onDiff(state.Diff{Added: []state.Entity{e}})
	return nil
}

func (d *editorDrawing) Trim(id uint64, pick geom.Point) error {
	diff, _, err := d.ed.Trim(id, pick)
	if err != nil {
		return err
	}
	d.onDiff(diff)
	return nil
}

func (d *editorDrawing) Undo() error {
	if diff, ok := d.ed.UndoLast(); ok {
		d.onDiff(diff)
	}
	return nil
}

func (d *editorDrawing) Pick(p geom.Point, tol float64) (uint64, bool) { return d.ed.Pick(p, tol) }
func (d *editorDrawing) SetHandles(id uint64, h []state.Handle) error  { return d.ed.SetHandles(id, h) }
func (d *editorDrawing) Entities() []state.Entity                      { return d.ed.Snapshot() }

func newTestBoard(t *testing.T) (*board, *editorDrawing) {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	log := logrus.New()
	log.SetOutput(io.Discard)
	d := &editorDrawing{ed: state.NewEditor(log)}
	b := newBoard(d, log)
	d.onDiff = b.applyDiff
	return b, d
}

func TestBoardDrawsAndRemovesHandles(t *testing.T) {
	b, d := newTestBoard(t)

	if err := d.Create(state.NewSegment(geom.Pt(0, 50), geom.Pt(100, 50))); err != nil {
		t.Fatal(err)
	}
	if err := d.Create(state.NewCircle(geom.Pt(50, 50), 20)); err != nil {
		t.Fatal(err)
	}
	if n := len(b.layer.Objects); n != 2 {
		t.Fatalf("layer has %d objects, want 2", n)
	}
	seg, err := d.ed.Get(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(seg.Handles) != 1 {
		t.Fatalf("segment has %d handles", len(seg.Handles))
	}
	if _, ok := seg.Handles[0].(*canvas.Line); !ok {
		t.Errorf("segment handle is %T", seg.Handles[0])
	}

	// Trimming the circle where the segment crosses it leaves an arc, drawn
	// as a polyline.
	if err := d.Trim(1, geom.Pt(30, 50)); err != nil {
		t.Fatal(err)
	}
	for _, o := range b.layer.Objects {
		if _, ok := o.(*canvas.Circle); ok {
			t.Error("circle still drawn after trim")
		}
	}
	// A half circle takes 45 lines, or 46 if rounding pushes it past 180.
	if n := len(b.layer.Objects); n < 1+45 || n > 1+46 {
		t.Errorf("layer has %d objects, want the segment and a half-circle polyline", n)
	}

	if err := d.Undo(); err != nil {
		t.Fatal(err)
	}
	if err := d.Undo(); err != nil {
		t.Fatal(err)
	}
	if n := len(b.layer.Objects); n != 0 {
		t.Errorf("layer has %d objects after undoing everything", n)
	}
}

func TestBoardDropsObjectsOfVanishedEntity(t *testing.T) {
	b, d := newTestBoard(t)
	// The entity is gone before its diff is drawn.
	b.applyDiff(state.Diff{Added: []state.Entity{{ID: 7, Kind: state.KindPoint, At: geom.Pt(1, 1)}}})
	if n := len(b.layer.Objects); n != 0 {
		t.Errorf("layer kept %d objects for a missing entity", n)
	}
	if d.ed.Len() != 0 {
		t.Error("editor changed")
	}
}

func TestRenderEntity(t *testing.T) {
	tests := []struct {
		name string
		e    state.Entity
		want int
	}{
		{"point", state.NewPoint(geom.Pt(1, 2)), 1},
		{"segment", state.NewSegment(geom.Pt(0, 0), geom.Pt(3, 4)), 1},
		{"circle", state.NewCircle(geom.Pt(0, 0), 5), 1},
		{"arc", state.NewArc(geom.Pt(0, 0), 5, 0, 90), 23},
		{"sliver arc", state.NewArc(geom.Pt(0, 0), 5, 10, 1), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(renderEntity(tt.e, entityColor)); got != tt.want {
				t.Errorf("renderEntity gave %d objects, want %d", got, tt.want)
			}
		})
	}
}

func TestArcLinesFollowTheArc(t *testing.T) {
	objs := arcLines(geom.Pt(100, 100), 50, 0, 90, entityColor)
	first := objs[0].(*canvas.Line)
	last := objs[len(objs)-1].(*canvas.Line)
	if first.Position1 != fyne.NewPos(150, 100) {
		t.Errorf("arc starts at %v", first.Position1)
	}
	// 90 degrees counterclockwise is straight up on a y-down board.
	if d := last.Position2.Subtract(fyne.NewPos(100, 50)); d.X*d.X+d.Y*d.Y > 1e-6 {
		t.Errorf("arc ends at %v", last.Position2)
	}
}

func TestGridLines(t *testing.T) {
	if got := len(gridLines(fyne.NewSize(100, 40), 20)); got != 6+3 {
		t.Errorf("grid has %d lines, want 9", got)
	}
	if gridLines(fyne.NewSize(100, 40), 0) != nil {
		t.Error("zero pitch drew a grid")
	}
}
