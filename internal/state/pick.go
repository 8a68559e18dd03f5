package state

import (
	"math"

	"LocalSketch/internal/geom"
)

// Pick returns the entity closest to p, provided it is within tol. When
// several are equally close the newest one wins, matching what is drawn on
// top.
func (r *Registry) Pick(p geom.Point, tol float64) (uint64, bool) {
	var (
		best  uint64
		bestD = math.Inf(1)
		found bool
	)
	at := geom.BoundsAround(p, geom.Epsilon)
	for _, e := range r.All() {
		c := ToCurve(e)
		if c == nil || !geom.Grow(c.Bounds(), tol).Overlaps(at) {
			continue
		}
		if d := c.Distance(p); d <= tol && d <= bestD {
			best, bestD, found = e.ID, d, true
		}
	}
	return best, found
}
