package state

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"LocalSketch/internal/geom"
)

// Editor is the owned state of one drawing. Every method holds the lock for
// its whole run, so a trim always sees a consistent set of other entities
// and a failed operation leaves the drawing as it was.
type Editor struct {
	mu    sync.Mutex
	reg   *Registry
	clock *Clock
	log   logrus.FieldLogger
}

// NewEditor creates an empty drawing. A nil logger means the logrus
// standard logger.
func NewEditor(logger logrus.FieldLogger) *Editor {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	clock := NewClock()
	return &Editor{
		reg:   NewRegistry(),
		clock: clock,
		log: logger.WithFields(logrus.Fields{
			"component": "state",
			"site":      clock.Site(),
		}),
	}
}

// Clock returns the clock that stamps this drawing's ops.
func (ed *Editor) Clock() *Clock {
	return ed.clock
}

// Create stores e and returns it with its new id.
func (ed *Editor) Create(e Entity) (Entity, error) {
	ed.mu.Lock()
	defer ed.mu.Unlock()

	id, err := ed.reg.Create(e)
	if err != nil {
		return Entity{}, fmt.Errorf("create %s: %w", e.Kind, err)
	}
	e.ID = id
	ed.log.WithFields(logrus.Fields{"id": id, "kind": e.Kind}).Debug("entity created")
	return e, nil
}

// UndoLast removes the most recently created entity that still exists.
func (ed *Editor) UndoLast() (Diff, bool) {
	ed.mu.Lock()
	defer ed.mu.Unlock()

	e, ok := ed.reg.UndoLast()
	if !ok {
		return Diff{}, false
	}
	ed.log.WithFields(logrus.Fields{"id": e.ID, "kind": e.Kind}).Debug("creation undone")
	return Diff{Removed: []Entity{e}}, true
}

// Delete removes id outright.
func (ed *Editor) Delete(id uint64) (Diff, error) {
	ed.mu.Lock()
	defer ed.mu.Unlock()

	e, err := ed.reg.Delete(id)
	if err != nil {
		return Diff{}, fmt.Errorf("delete: %w", err)
	}
	return Diff{Removed: []Entity{e}}, nil
}

// Trim cuts entity id at the intersections nearest to pick. The old entity
// is always removed; any surviving pieces are created as new entities.
func (ed *Editor) Trim(id uint64, pick geom.Point) (Diff, TrimOutcome, error) {
	ed.mu.Lock()
	defer ed.mu.Unlock()

	target, err := ed.reg.Get(id)
	if err != nil {
		return Diff{}, TrimOutcome{}, fmt.Errorf("trim: %w", err)
	}
	hits := geom.Intersections(ToCurve(target), toCurves(ed.reg.Others(id)))
	nearest := geom.ClosestTwo(hits, pick)

	outcome, err := ResolveTrim(target, nearest, pick)
	if err != nil {
		return Diff{}, TrimOutcome{}, fmt.Errorf("trim entity %d: %w", id, err)
	}
	for _, r := range outcome.Replacements {
		if err := r.Validate(); err != nil {
			return Diff{}, TrimOutcome{}, fmt.Errorf("trim entity %d: %w", id, err)
		}
	}

	removed, err := ed.reg.Delete(id)
	if err != nil {
		return Diff{}, TrimOutcome{}, fmt.Errorf("trim: %w", err)
	}
	diff := Diff{Removed: []Entity{removed}}
	for _, r := range outcome.Replacements {
		newID, err := ed.reg.Create(r)
		if err != nil {
			// Unreachable: every replacement was validated above.
			return Diff{}, TrimOutcome{}, fmt.Errorf("trim entity %d: %w", id, err)
		}
		r.ID = newID
		diff.Added = append(diff.Added, r)
	}

	ed.log.WithFields(logrus.Fields{
		"id":            id,
		"kind":          target.Kind,
		"intersections": len(hits),
		"action":        outcome.Action,
		"added":         len(diff.Added),
	}).Info("entity trimmed")
	return diff, outcome, nil
}

// Pick returns the entity within tol of p, see Registry.Pick.
func (ed *Editor) Pick(p geom.Point, tol float64) (uint64, bool) {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.reg.Pick(p, tol)
}

func (ed *Editor) Get(id uint64) (Entity, error) {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.reg.Get(id)
}

// SetHandles stores the render handles the caller drew for id.
func (ed *Editor) SetHandles(id uint64, handles []Handle) error {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.reg.SetHandles(id, handles)
}

// Snapshot returns every entity in ascending id order.
func (ed *Editor) Snapshot() []Entity {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.reg.All()
}

func (ed *Editor) Len() int {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.reg.Len()
}

// Log returns the ids undo would remove, oldest first.
func (ed *Editor) Log() []uint64 {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.reg.Log()
}
