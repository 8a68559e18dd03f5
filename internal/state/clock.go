package state

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Clock is a Lamport clock bound to one site.
type Clock struct {
	site    string
	lamport atomic.Uint64
}

func NewClock() *Clock {
	return &Clock{site: uuid.NewString()}
}

func (c *Clock) Site() string {
	return c.site
}

// Tick advances the clock and returns the new time.
func (c *Clock) Tick() uint64 {
	return c.lamport.Add(1)
}

// Observe moves the clock forward to a time seen from another site.
func (c *Clock) Observe(t uint64) {
	for {
		cur := c.lamport.Load()
		if t <= cur || c.lamport.CompareAndSwap(cur, t) {
			return
		}
	}
}

// Stamp turns a diff into ops, deletions first, each with its own tick.
func (c *Clock) Stamp(d Diff) []Op {
	ops := make([]Op, 0, len(d.Removed)+len(d.Added))
	for _, e := range d.Removed {
		ops = append(ops, Op{Type: OpDelete, Target: e.ID, Lamport: c.Tick(), Site: c.site})
	}
	for _, e := range d.Added {
		e := e
		e.Handles = nil
		ops = append(ops, Op{Type: OpInsert, Entity: &e, Lamport: c.Tick(), Site: c.site})
	}
	return ops
}
