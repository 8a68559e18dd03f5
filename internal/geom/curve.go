package geom

import (
	"math"

	cgeom "github.com/ctessum/geom"
)

// angleEpsilon is the tolerance in degrees used when deciding whether an
// angle falls inside an arc span.
const angleEpsilon = 1e-7

// Curve is an exact geometric shape that can be intersected and hit-tested.
type Curve interface {
	// Bounds returns the axis-aligned bounding box of the curve.
	Bounds() *cgeom.Bounds
	// Distance returns the shortest distance from p to the curve.
	Distance(p Point) float64
}

// PointCurve is a single location.
type PointCurve struct {
	At Point
}

// SegmentCurve is the closed line segment between P0 and P1.
type SegmentCurve struct {
	P0, P1 Point
}

// CircleCurve is a full circle.
type CircleCurve struct {
	Center Point
	Radius float64
}

// ArcCurve is the part of a circle swept counterclockwise from Start by
// Extent degrees.
type ArcCurve struct {
	Center Point
	Radius float64
	Start  float64
	Extent float64
}

func (c PointCurve) Bounds() *cgeom.Bounds {
	return cgeom.NewBoundsPoint(cgeom.Point{X: c.At.X, Y: c.At.Y})
}

func (c PointCurve) Distance(p Point) float64 {
	return Dist(c.At, p)
}

func (c SegmentCurve) Bounds() *cgeom.Bounds {
	b := cgeom.NewBoundsPoint(cgeom.Point{X: c.P0.X, Y: c.P0.Y})
	b.Extend(cgeom.NewBoundsPoint(cgeom.Point{X: c.P1.X, Y: c.P1.Y}))
	return b
}

// Distance measures to the projection of p onto the segment, clamped to the
// endpoints.
func (c SegmentCurve) Distance(p Point) float64 {
	d := c.P1.Sub(c.P0)
	l2 := d.Dot(d)
	if l2 == 0 {
		return Dist(c.P0, p)
	}
	t := p.Sub(c.P0).Dot(d) / l2
	t = math.Max(0, math.Min(1, t))
	return Dist(c.P0.Add(d.Mul(t)), p)
}

func (c CircleCurve) Bounds() *cgeom.Bounds {
	return circleBounds(c.Center, c.Radius)
}

func (c CircleCurve) Distance(p Point) float64 {
	return math.Abs(Dist(c.Center, p) - c.Radius)
}

// Circle returns the full circle the arc lies on.
func (c ArcCurve) Circle() CircleCurve {
	return CircleCurve{Center: c.Center, Radius: c.Radius}
}

// StartPoint returns the point at the start angle.
func (c ArcCurve) StartPoint() Point {
	return PointAt(c.Center, c.Radius, c.Start)
}

// EndPoint returns the point at Start+Extent.
func (c ArcCurve) EndPoint() Point {
	return PointAt(c.Center, c.Radius, c.Start+c.Extent)
}

// Offset returns how far counterclockwise deg lies from the start of the
// arc, in [0, 360).
func (c ArcCurve) Offset(deg float64) float64 {
	return Sweep(c.Start, deg)
}

// ContainsAngle reports whether deg lies inside the arc span, endpoints
// included.
func (c ArcCurve) ContainsAngle(deg float64) bool {
	off := c.Offset(deg)
	return off <= c.Extent+angleEpsilon || off >= 360-angleEpsilon
}

// Bounds is the bounding box of the whole circle, which always contains the
// arc.
func (c ArcCurve) Bounds() *cgeom.Bounds {
	return circleBounds(c.Center, c.Radius)
}

func (c ArcCurve) Distance(p Point) float64 {
	if Dist(c.Center, p) > 0 && c.ContainsAngle(AngleOf(c.Center, p)) {
		return c.Circle().Distance(p)
	}
	return math.Min(Dist(c.StartPoint(), p), Dist(c.EndPoint(), p))
}
