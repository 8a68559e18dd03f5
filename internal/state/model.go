package state

import (
	"fmt"
	"math"

	"LocalSketch/internal/geom"
)

// Kind tags which primitive an Entity holds.
type Kind int

const (
	KindPoint Kind = iota
	KindSegment
	KindCircle
	KindArc
)

var kindNames = map[Kind]string{
	KindPoint:   "point",
	KindSegment: "segment",
	KindCircle:  "circle",
	KindArc:     "arc",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	for kind, name := range kindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownKind, b)
}

// Handle is an opaque render object owned by whoever draws the entity.
type Handle = any

// Entity is one stored primitive. Only the fields that belong to Kind are
// meaningful:
//
//	point:   At
//	segment: P0, P1
//	circle:  Center, Radius
//	arc:     Center, Radius, Start, Extent (degrees, counterclockwise)
//
// Geometry never changes after creation; a trim replaces the entity.
type Entity struct {
	ID     uint64     `json:"id"`
	Kind   Kind       `json:"kind"`
	At     geom.Point `json:"at,omitzero"`
	P0     geom.Point `json:"p0,omitzero"`
	P1     geom.Point `json:"p1,omitzero"`
	Center geom.Point `json:"center,omitzero"`
	Radius float64    `json:"radius,omitzero"`
	Start  float64    `json:"start,omitzero"`
	Extent float64    `json:"extent,omitzero"`

	Handles []Handle `json:"-"`
}

func NewPoint(at geom.Point) Entity {
	return Entity{Kind: KindPoint, At: at}
}

func NewSegment(p0, p1 geom.Point) Entity {
	return Entity{Kind: KindSegment, P0: p0, P1: p1}
}

func NewCircle(center geom.Point, radius float64) Entity {
	return Entity{Kind: KindCircle, Center: center, Radius: radius}
}

// NewArc builds an arc starting at start degrees and sweeping extent
// degrees counterclockwise. start is normalized into [0, 360).
func NewArc(center geom.Point, radius, start, extent float64) Entity {
	return Entity{
		Kind:   KindArc,
		Center: center,
		Radius: radius,
		Start:  geom.NormalizeDeg(start),
		Extent: extent,
	}
}

const (
	// minLength is the shortest segment that is stored.
	minLength = 1e-9
	// minExtent is the smallest arc sweep, in degrees, that is stored.
	minExtent = 1e-7
)

// Validate rejects geometry that cannot be stored.
func (e Entity) Validate() error {
	for _, v := range []float64{e.At.X, e.At.Y, e.P0.X, e.P0.Y, e.P1.X, e.P1.Y, e.Center.X, e.Center.Y, e.Radius, e.Start, e.Extent} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite coordinate", ErrDegenerateGeometry)
		}
	}
	switch e.Kind {
	case KindPoint:
		return nil
	case KindSegment:
		if geom.Dist(e.P0, e.P1) <= minLength {
			return fmt.Errorf("%w: zero-length segment at %v", ErrDegenerateGeometry, e.P0)
		}
		return nil
	case KindCircle:
		if e.Radius <= 0 {
			return fmt.Errorf("%w: circle radius %v", ErrDegenerateGeometry, e.Radius)
		}
		return nil
	case KindArc:
		if e.Radius <= 0 {
			return fmt.Errorf("%w: arc radius %v", ErrDegenerateGeometry, e.Radius)
		}
		if e.Extent <= minExtent || e.Extent >= 360-minExtent {
			return fmt.Errorf("%w: arc extent %v", ErrDegenerateGeometry, e.Extent)
		}
		return nil
	}
	return fmt.Errorf("%w: %d", ErrUnknownKind, int(e.Kind))
}

// Geometry returns a copy of e without its id or render handles.
func (e Entity) Geometry() Entity {
	e.ID = 0
	e.Handles = nil
	return e
}

// Diff is what an edit did to a drawing. Removed entities still carry
// their render handles so the caller can drop them.
type Diff struct {
	Removed []Entity
	Added   []Entity
}

// Empty reports whether the diff changes nothing.
func (d Diff) Empty() bool {
	return len(d.Removed) == 0 && len(d.Added) == 0
}

type OpType string

const (
	OpInsert OpType = "insert"
	OpDelete OpType = "delete"
)

// Op is one replicated change, stamped with the writer's Lamport time and
// site id.
type Op struct {
	Type    OpType  `json:"type"`
	Entity  *Entity `json:"entity,omitempty"`
	Target  uint64  `json:"target,omitempty"`
	Lamport uint64  `json:"lamport"`
	Site    string  `json:"site"`
}

func (op Op) String() string {
	if op.Type == OpInsert && op.Entity != nil {
		return fmt.Sprintf("%s %s#%d @%d", op.Type, op.Entity.Kind, op.Entity.ID, op.Lamport)
	}
	return fmt.Sprintf("%s #%d @%d", op.Type, op.Target, op.Lamport)
}
