package state

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"LocalSketch/internal/geom"
)

type opKey struct {
	site    string
	lamport uint64
}

// Replica mirrors a drawing owned by another site. It only applies ops it
// receives; it never assigns ids itself.
type Replica struct {
	mu    sync.RWMutex
	reg   *Registry
	seen  map[opKey]struct{}
	clock *Clock
	log   logrus.FieldLogger
}

func NewReplica(logger logrus.FieldLogger) *Replica {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Replica{
		reg:   NewRegistry(),
		seen:  make(map[opKey]struct{}),
		clock: NewClock(),
		log:   logger.WithField("component", "replica"),
	}
}

// Apply merges one op and returns what changed. Ops that were already
// applied, or that refer to ids this replica does not hold, change nothing.
func (r *Replica) Apply(op Op) Diff {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := opKey{site: op.Site, lamport: op.Lamport}
	if _, dup := r.seen[key]; dup {
		r.log.WithField("op", op.String()).Debug("op already applied, ignoring")
		return Diff{}
	}
	r.seen[key] = struct{}{}
	r.clock.Observe(op.Lamport)

	switch op.Type {
	case OpInsert:
		if op.Entity == nil {
			return Diff{}
		}
		e := op.Entity.Geometry()
		e.ID = op.Entity.ID
		if err := r.reg.Insert(e); err != nil {
			r.log.WithError(err).WithField("op", op.String()).Warn("insert rejected")
			return Diff{}
		}
		return Diff{Added: []Entity{e}}
	case OpDelete:
		e, err := r.reg.Delete(op.Target)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				r.log.WithError(err).Warn("delete rejected")
			}
			return Diff{}
		}
		return Diff{Removed: []Entity{e}}
	}
	r.log.WithField("type", op.Type).Warn("unknown op type")
	return Diff{}
}

// Load replaces the whole mirror with a snapshot from the writer.
func (r *Replica) Load(entities []Entity) Diff {
	r.mu.Lock()
	defer r.mu.Unlock()

	diff := Diff{Removed: r.reg.Reset()}
	for _, e := range entities {
		e.Handles = nil
		if err := r.reg.Insert(e); err != nil {
			r.log.WithError(err).WithField("id", e.ID).Warn("snapshot entity rejected")
			continue
		}
		diff.Added = append(diff.Added, e)
	}
	return diff
}

// Time returns the latest Lamport time this replica has seen.
func (r *Replica) Time() uint64 {
	return r.clock.lamport.Load()
}

func (r *Replica) Pick(p geom.Point, tol float64) (uint64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.reg.Pick(p, tol)
}

func (r *Replica) SetHandles(id uint64, handles []Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reg.SetHandles(id, handles)
}

func (r *Replica) Entities() []Entity {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.reg.All()
}
