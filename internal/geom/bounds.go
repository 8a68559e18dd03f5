package geom

import (
	cgeom "github.com/ctessum/geom"
)

func circleBounds(center Point, r float64) *cgeom.Bounds {
	return &cgeom.Bounds{
		Min: cgeom.Point{X: center.X - r, Y: center.Y - r},
		Max: cgeom.Point{X: center.X + r, Y: center.Y + r},
	}
}

// Grow returns a copy of b expanded by d on every side.
func Grow(b *cgeom.Bounds, d float64) *cgeom.Bounds {
	return &cgeom.Bounds{
		Min: cgeom.Point{X: b.Min.X - d, Y: b.Min.Y - d},
		Max: cgeom.Point{X: b.Max.X + d, Y: b.Max.Y + d},
	}
}

// BoundsAround returns the square of half-width d centered on p.
func BoundsAround(p Point, d float64) *cgeom.Bounds {
	return Grow(cgeom.NewBoundsPoint(cgeom.Point{X: p.X, Y: p.Y}), d)
}
