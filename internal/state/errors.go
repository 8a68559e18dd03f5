package state

import "errors"

var (
	// ErrNotFound is returned when an id is not (or no longer) in the drawing.
	ErrNotFound = errors.New("entity not found")
	// ErrDegenerateGeometry rejects zero-length segments, non-positive radii
	// and empty arcs.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
	// ErrInvalidTrimTarget is returned when a trim meets a kind it has no
	// policy for.
	ErrInvalidTrimTarget = errors.New("invalid trim target")
	// ErrUnknownKind is returned for an Entity whose Kind is not one of the
	// declared constants.
	ErrUnknownKind = errors.New("unknown entity kind")
)
