package state

import (
	"fmt"

	"LocalSketch/internal/geom"
)

// TrimAction says what a trim does to its target.
type TrimAction int

const (
	// TrimDelete removes the target and adds nothing.
	TrimDelete TrimAction = iota
	// TrimReplace removes the target and adds Replacements.
	TrimReplace
)

func (a TrimAction) String() string {
	if a == TrimReplace {
		return "replace"
	}
	return "delete"
}

// TrimOutcome is the decision for one trim. Replacements have no ids yet.
type TrimOutcome struct {
	Action       TrimAction
	Replacements []Entity
}

func deleteOutcome() TrimOutcome {
	return TrimOutcome{Action: TrimDelete}
}

// replaceOutcome keeps the pieces that can be stored. If none survive, the
// trim deletes the target instead.
func replaceOutcome(pieces ...Entity) TrimOutcome {
	var kept []Entity
	for _, p := range pieces {
		if p.Validate() == nil {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return deleteOutcome()
	}
	return TrimOutcome{Action: TrimReplace, Replacements: kept}
}

// ResolveTrim decides what survives when target is trimmed at pick.
// nearest holds at most two intersection points, nearest to pick first, as
// returned by geom.ClosestTwo.
func ResolveTrim(target Entity, nearest []geom.Point, pick geom.Point) (TrimOutcome, error) {
	switch target.Kind {
	case KindPoint:
		return deleteOutcome(), nil
	case KindSegment:
		return trimSegment(target.P0, target.P1, nearest, pick), nil
	case KindCircle:
		return trimCircle(target.Center, target.Radius, nearest), nil
	case KindArc:
		arc := geom.ArcCurve{Center: target.Center, Radius: target.Radius, Start: target.Start, Extent: target.Extent}
		return trimArc(arc, nearest, pick), nil
	}
	return TrimOutcome{}, fmt.Errorf("%w: %s", ErrInvalidTrimTarget, target.Kind)
}

// trimSegment treats pick as marking the part to throw away. With a single
// crossing, the endpoint farther from pick survives up to the crossing.
// When pick sits between two crossings, the middle goes and both outer
// pieces stay.
func trimSegment(p0, p1 geom.Point, hits []geom.Point, pick geom.Point) TrimOutcome {
	if len(hits) == 0 {
		return deleteOutcome()
	}
	i0 := hits[0]
	single := func() TrimOutcome {
		if geom.Dist(p0, pick) > geom.Dist(p1, pick) {
			return replaceOutcome(NewSegment(p0, i0))
		}
		return replaceOutcome(NewSegment(p1, i0))
	}
	if len(hits) == 1 {
		return single()
	}

	i1 := hits[1]
	v0, v1 := i0.Sub(pick), i1.Sub(pick)
	if v0.Dot(v1) >= 0 {
		return single()
	}
	if v0.Dot(p0.Sub(pick)) > 0 {
		return replaceOutcome(NewSegment(p0, i0), NewSegment(p1, i1))
	}
	return replaceOutcome(NewSegment(p0, i1), NewSegment(p1, i0))
}

// trimCircle keeps the counterclockwise arc from the nearest crossing to the
// second nearest, whichever side pick is on.
func trimCircle(center geom.Point, radius float64, hits []geom.Point) TrimOutcome {
	if len(hits) < 2 {
		return deleteOutcome()
	}
	a0 := geom.AngleOf(center, hits[0])
	a1 := geom.AngleOf(center, hits[1])
	return replaceOutcome(NewArc(center, radius, a0, geom.Sweep(a0, a1)))
}

// trimArc applies the segment rules along the arc, measuring positions as
// counterclockwise offsets from its start.
func trimArc(arc geom.ArcCurve, hits []geom.Point, pick geom.Point) TrimOutcome {
	if len(hits) == 0 {
		return deleteOutcome()
	}
	offset := func(p geom.Point) float64 {
		return clampOffset(arc, arc.Offset(geom.AngleOf(arc.Center, p)))
	}
	sub := func(from, to float64) Entity {
		return NewArc(arc.Center, arc.Radius, arc.Start+from, to-from)
	}

	tp := offset(pick)
	t0 := offset(hits[0])
	if len(hits) == 2 {
		lo, hi := t0, offset(hits[1])
		if lo > hi {
			lo, hi = hi, lo
		}
		if lo < tp && tp < hi {
			return replaceOutcome(sub(0, lo), sub(hi, arc.Extent))
		}
	}
	if t0 > tp {
		return replaceOutcome(sub(t0, arc.Extent))
	}
	return replaceOutcome(sub(0, t0))
}

// clampOffset folds an offset outside the arc span onto the nearer end.
func clampOffset(arc geom.ArcCurve, off float64) float64 {
	if off <= arc.Extent {
		return off
	}
	if off-arc.Extent < 360-off {
		return arc.Extent
	}
	return 0
}
