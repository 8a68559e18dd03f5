// Package geom holds the exact 2D geometry used by the sketch core: points,
// analytic curves, pairwise intersections and the angle convention for arcs.
//
// Coordinates are screen coordinates: x grows to the right and y grows
// downwards. Angles are reported in the usual counterclockwise mathematical
// sense, which means the y axis is flipped whenever an angle is involved.
package geom

import "math"

// Point is a 2D point or vector.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul scales p by s.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the z component of the 3D cross product of p and q.
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Len returns the length of p as a vector.
func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Dist returns the Euclidean distance between p and q.
func Dist(p, q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Near reports whether p and q are within tol of each other.
func Near(p, q Point, tol float64) bool {
	return Dist(p, q) <= tol
}

// Snap rounds both coordinates of p to the nearest multiple of pitch.
// A non-positive pitch leaves p unchanged.
func Snap(p Point, pitch float64) Point {
	return Point{X: SnapLength(p.X, pitch), Y: SnapLength(p.Y, pitch)}
}

// SnapLength rounds v to the nearest multiple of pitch.
func SnapLength(v, pitch float64) float64 {
	if pitch <= 0 {
		return v
	}
	return math.Round(v/pitch) * pitch
}
