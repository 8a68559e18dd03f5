package geom

import "math"

// AngleOf returns the angle of p around center in degrees, in [0, 360).
// The y axis is inverted so that, in screen space, 90 points up.
func AngleOf(center, p Point) float64 {
	deg := math.Atan2(-(p.Y-center.Y), p.X-center.X) * 180 / math.Pi
	return NormalizeDeg(deg)
}

// PointAt is the inverse of AngleOf for a circle of radius r.
func PointAt(center Point, r, deg float64) Point {
	rad := deg * math.Pi / 180
	return Point{
		X: center.X + r*math.Cos(rad),
		Y: center.Y - r*math.Sin(rad),
	}
}

// NormalizeDeg maps deg into [0, 360).
func NormalizeDeg(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg -= 360
	}
	return deg
}

// Sweep returns the counterclockwise extent from one angle to another,
// (to - from) mod 360.
func Sweep(from, to float64) float64 {
	return NormalizeDeg(to - from)
}
