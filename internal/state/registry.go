package state

import (
	"fmt"
	"slices"
)

// Registry owns the entities of one drawing and the creation log used by
// undo. It does no locking of its own; Editor and Replica serialize access.
type Registry struct {
	entities map[uint64]Entity
	log      []uint64
	nextID   uint64
}

func NewRegistry() *Registry {
	return &Registry{entities: make(map[uint64]Entity)}
}

// Create validates e, assigns it the next id and appends the id to the
// creation log. Ids start at 0 and are never reused.
func (r *Registry) Create(e Entity) (uint64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}
	e.ID = r.nextID
	r.nextID++
	r.entities[e.ID] = e
	r.log = append(r.log, e.ID)
	return e.ID, nil
}

// Insert stores an entity that already has an id, as received from the
// writer of a shared drawing. Later local ids continue past it.
func (r *Registry) Insert(e Entity) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if _, exists := r.entities[e.ID]; exists {
		return fmt.Errorf("insert entity %d: already present", e.ID)
	}
	r.entities[e.ID] = e
	r.log = append(r.log, e.ID)
	if e.ID >= r.nextID {
		r.nextID = e.ID + 1
	}
	return nil
}

func (r *Registry) Get(id uint64) (Entity, error) {
	e, ok := r.entities[id]
	if !ok {
		return Entity{}, fmt.Errorf("entity %d: %w", id, ErrNotFound)
	}
	return e, nil
}

// Delete removes id from the drawing and from the creation log, so a later
// undo never refers to it.
func (r *Registry) Delete(id uint64) (Entity, error) {
	e, ok := r.entities[id]
	if !ok {
		return Entity{}, fmt.Errorf("entity %d: %w", id, ErrNotFound)
	}
	delete(r.entities, id)
	if i := slices.Index(r.log, id); i >= 0 {
		r.log = slices.Delete(r.log, i, i+1)
	}
	return e, nil
}

// UndoLast removes the most recently created entity still in the log.
func (r *Registry) UndoLast() (Entity, bool) {
	if len(r.log) == 0 {
		return Entity{}, false
	}
	id := r.log[len(r.log)-1]
	r.log = r.log[:len(r.log)-1]
	e, ok := r.entities[id]
	if !ok {
		return Entity{}, false
	}
	delete(r.entities, id)
	return e, true
}

// SetHandles records the render handles drawn for id.
func (r *Registry) SetHandles(id uint64, handles []Handle) error {
	e, ok := r.entities[id]
	if !ok {
		return fmt.Errorf("entity %d: %w", id, ErrNotFound)
	}
	e.Handles = handles
	r.entities[id] = e
	return nil
}

func (r *Registry) Len() int {
	return len(r.entities)
}

// IDs returns every stored id in ascending order.
func (r *Registry) IDs() []uint64 {
	var ids []uint64
	for id := range r.entities {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Log returns a copy of the creation log, oldest first.
func (r *Registry) Log() []uint64 {
	return slices.Clone(r.log)
}

// All returns every entity in ascending id order.
func (r *Registry) All() []Entity {
	out := make([]Entity, 0, len(r.entities))
	for _, id := range r.IDs() {
		out = append(out, r.entities[id])
	}
	return out
}

// Others returns every entity except id, in ascending id order.
func (r *Registry) Others(id uint64) []Entity {
	out := make([]Entity, 0, len(r.entities))
	for _, e := range r.All() {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

// Reset drops every entity and the log. The id counter keeps running.
func (r *Registry) Reset() []Entity {
	old := r.All()
	clear(r.entities)
	r.log = nil
	return old
}
