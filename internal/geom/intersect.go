package geom

import (
	"math"
	"slices"
)

// Epsilon is the relative tolerance for degenerate denominators,
// discriminants and parameter clipping. It is scaled by the squared
// magnitude of the inputs involved in each test.
const Epsilon = 1e-9

// Intersect returns the exact intersection points of a and b.
//
// Parallel or collinear segments and concentric circles yield nothing, as
// does any pairing with a PointCurve.
func Intersect(a, b Curve) []Point {
	switch a := a.(type) {
	case SegmentCurve:
		switch b := b.(type) {
		case SegmentCurve:
			return segmentSegment(a, b)
		case CircleCurve:
			return segmentCircle(a, b)
		case ArcCurve:
			return onArc(b, segmentCircle(a, b.Circle()))
		}
	case CircleCurve:
		switch b := b.(type) {
		case SegmentCurve:
			return segmentCircle(b, a)
		case CircleCurve:
			return circleCircle(a, b)
		case ArcCurve:
			return onArc(b, circleCircle(a, b.Circle()))
		}
	case ArcCurve:
		switch b.(type) {
		case SegmentCurve, CircleCurve, ArcCurve:
			return onArc(a, Intersect(a.Circle(), b))
		}
	}
	return nil
}

// Intersections flattens the intersections of target with every curve in
// others, in the order others are given. Points shared by several curves
// are reported once per curve.
func Intersections(target Curve, others []Curve) []Point {
	var out []Point
	for _, o := range others {
		out = append(out, Intersect(target, o)...)
	}
	return out
}

// ClosestTwo returns at most two of points, nearest to pick first. Points at
// equal distance keep their original order.
func ClosestTwo(points []Point, pick Point) []Point {
	sorted := slices.Clone(points)
	slices.SortStableFunc(sorted, func(a, b Point) int {
		da, db := Dist(a, pick), Dist(b, pick)
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return 0
	})
	if len(sorted) > 2 {
		sorted = sorted[:2]
	}
	return sorted
}

func segmentSegment(a, b SegmentCurve) []Point {
	r := a.P1.Sub(a.P0)
	s := b.P1.Sub(b.P0)
	denom := r.Cross(s)
	if math.Abs(denom) <= Epsilon*r.Len()*s.Len() {
		return nil
	}
	qp := b.P0.Sub(a.P0)
	t := qp.Cross(s) / denom
	u := qp.Cross(r) / denom
	if !inUnit(t) || !inUnit(u) {
		return nil
	}
	return []Point{a.P0.Add(r.Mul(clampUnit(t)))}
}

// segmentCircle substitutes P0 + t*d into |x - c|^2 = R^2 and keeps the
// roots with t in [0, 1], in ascending t.
func segmentCircle(s SegmentCurve, c CircleCurve) []Point {
	d := s.P1.Sub(s.P0)
	f := s.P0.Sub(c.Center)
	a := d.Dot(d)
	if a == 0 {
		return nil
	}
	b := 2 * f.Dot(d)
	cc := f.Dot(f) - c.Radius*c.Radius
	disc := b*b - 4*a*cc
	scale := b*b + math.Abs(4*a*cc) + a*c.Radius*c.Radius
	if disc < -Epsilon*scale {
		return nil
	}
	if math.Abs(disc) <= Epsilon*scale {
		t := -b / (2 * a)
		if !inUnit(t) {
			return nil
		}
		return []Point{s.P0.Add(d.Mul(clampUnit(t)))}
	}
	root := math.Sqrt(disc)
	var out []Point
	for _, t := range []float64{(-b - root) / (2 * a), (-b + root) / (2 * a)} {
		if inUnit(t) {
			out = append(out, s.P0.Add(d.Mul(clampUnit(t))))
		}
	}
	return out
}

// circleCircle uses the radical line: the chord through both intersections
// is perpendicular to the center line at distance a from the first center.
func circleCircle(c1, c2 CircleCurve) []Point {
	delta := c2.Center.Sub(c1.Center)
	d := delta.Len()
	rmax := math.Max(c1.Radius, c2.Radius)
	if d <= Epsilon*rmax {
		return nil
	}
	tol := Epsilon * (d + c1.Radius + c2.Radius)
	if d > c1.Radius+c2.Radius+tol || d < math.Abs(c1.Radius-c2.Radius)-tol {
		return nil
	}
	a := (c1.Radius*c1.Radius - c2.Radius*c2.Radius + d*d) / (2 * d)
	h2 := c1.Radius*c1.Radius - a*a
	mid := c1.Center.Add(delta.Mul(a / d))
	if h2 <= Epsilon*c1.Radius*c1.Radius {
		return []Point{mid}
	}
	h := math.Sqrt(h2)
	off := Point{X: -delta.Y * h / d, Y: delta.X * h / d}
	return []Point{mid.Sub(off), mid.Add(off)}
}

func onArc(arc ArcCurve, pts []Point) []Point {
	var out []Point
	for _, p := range pts {
		if arc.ContainsAngle(AngleOf(arc.Center, p)) {
			out = append(out, p)
		}
	}
	return out
}

func inUnit(t float64) bool {
	return t >= -Epsilon && t <= 1+Epsilon
}

func clampUnit(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}
