package state

import "LocalSketch/internal/geom"

// ToCurve returns the exact geometry of e for intersection and hit tests.
// Unknown kinds map to nil, which intersects nothing.
func ToCurve(e Entity) geom.Curve {
	switch e.Kind {
	case KindPoint:
		return geom.PointCurve{At: e.At}
	case KindSegment:
		return geom.SegmentCurve{P0: e.P0, P1: e.P1}
	case KindCircle:
		return geom.CircleCurve{Center: e.Center, Radius: e.Radius}
	case KindArc:
		return geom.ArcCurve{Center: e.Center, Radius: e.Radius, Start: e.Start, Extent: e.Extent}
	}
	return nil
}

func toCurves(entities []Entity) []geom.Curve {
	out := make([]geom.Curve, 0, len(entities))
	for _, e := range entities {
		if c := ToCurve(e); c != nil {
			out = append(out, c)
		}
	}
	return out
}
