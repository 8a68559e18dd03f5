package state

import (
	"errors"
	"slices"
	"sync"
	"testing"

	"LocalSketch/internal/geom"
)

func TestEditorCreateUndoRoundTrip(t *testing.T) {
	ed := NewEditor(nil)
	mustCreate(t, ed, NewPoint(geom.Pt(0, 0)))
	beforeLen, beforeLog := ed.Len(), ed.Log()

	e := mustCreate(t, ed, NewCircle(geom.Pt(10, 10), 20))
	diff, ok := ed.UndoLast()
	if !ok {
		t.Fatalf("UndoLast returned false")
	}
	if len(diff.Removed) != 1 || diff.Removed[0].ID != e.ID {
		t.Errorf("undo removed %+v, want id %d", diff.Removed, e.ID)
	}
	if ed.Len() != beforeLen || !slices.Equal(ed.Log(), beforeLog) {
		t.Errorf("Len %d log %v, want %d %v", ed.Len(), ed.Log(), beforeLen, beforeLog)
	}

	ed.UndoLast()
	if _, ok := ed.UndoLast(); ok {
		t.Errorf("UndoLast on empty drawing returned true")
	}
}

func TestEditorCreateRejectsDegenerate(t *testing.T) {
	ed := NewEditor(nil)
	if _, err := ed.Create(NewCircle(geom.Pt(0, 0), 0)); !errors.Is(err, ErrDegenerateGeometry) {
		t.Fatalf("Create error = %v, want ErrDegenerateGeometry", err)
	}
	if ed.Len() != 0 {
		t.Errorf("Len() = %d after rejected create", ed.Len())
	}
}

func TestEditorTrimUpdatesUndoLog(t *testing.T) {
	ed := NewEditor(nil)
	line := mustCreate(t, ed, NewSegment(geom.Pt(0, 0), geom.Pt(100, 0)))
	cross := mustCreate(t, ed, NewSegment(geom.Pt(40, -20), geom.Pt(40, 20)))

	diff, _, err := ed.Trim(line.ID, geom.Pt(10, 0))
	if err != nil {
		t.Fatalf("Trim: %v", err)
	}
	piece := diff.Added[0]
	if !slices.Equal(ed.Log(), []uint64{cross.ID, piece.ID}) {
		t.Fatalf("Log() = %v, want [%d %d]", ed.Log(), cross.ID, piece.ID)
	}

	undo, ok := ed.UndoLast()
	if !ok || undo.Removed[0].ID != piece.ID {
		t.Fatalf("first undo removed %+v, want the trimmed piece", undo.Removed)
	}
	undo, ok = ed.UndoLast()
	if !ok || undo.Removed[0].ID != cross.ID {
		t.Fatalf("second undo removed %+v, want the crossing line", undo.Removed)
	}
	if _, ok := ed.UndoLast(); ok {
		t.Errorf("trimmed original came back through undo")
	}
}

func TestEditorTrimReturnsHandles(t *testing.T) {
	ed := NewEditor(nil)
	p := mustCreate(t, ed, NewPoint(geom.Pt(5, 5)))
	if err := ed.SetHandles(p.ID, []Handle{1, 2}); err != nil {
		t.Fatalf("SetHandles: %v", err)
	}
	diff, _, err := ed.Trim(p.ID, geom.Pt(5, 5))
	if err != nil {
		t.Fatalf("Trim: %v", err)
	}
	if got := diff.Removed[0].Handles; len(got) != 2 {
		t.Errorf("removed handles = %v", got)
	}
}

func TestEditorDelete(t *testing.T) {
	ed := NewEditor(nil)
	p := mustCreate(t, ed, NewPoint(geom.Pt(5, 5)))
	if _, err := ed.Delete(p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := ed.Delete(p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete error = %v", err)
	}
}

func TestEditorConcurrentCreatesGetDistinctIDs(t *testing.T) {
	ed := NewEditor(nil)
	var wg sync.WaitGroup
	ids := make(chan uint64, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			e, err := ed.Create(NewPoint(geom.Pt(float64(i), 0)))
			if err != nil {
				t.Errorf("Create: %v", err)
				return
			}
			ids <- e.ID
		}(i)
	}
	wg.Wait()
	close(ids)
	seen := map[uint64]bool{}
	for id := range ids {
		if seen[id] {
			t.Fatalf("id %d assigned twice", id)
		}
		seen[id] = true
	}
	if len(seen) != 64 {
		t.Errorf("got %d ids, want 64", len(seen))
	}
}
