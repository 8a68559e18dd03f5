package geom

import (
	"math"
	"testing"
)

func TestCurveDistance(t *testing.T) {
	tests := []struct {
		name  string
		curve Curve
		p     Point
		want  float64
	}{
		{"point", PointCurve{At: Pt(0, 0)}, Pt(3, 4), 5},
		{"segment interior", SegmentCurve{P0: Pt(0, 0), P1: Pt(100, 0)}, Pt(50, 7), 7},
		{"segment past end", SegmentCurve{P0: Pt(0, 0), P1: Pt(100, 0)}, Pt(103, 4), 5},
		{"circle outside", CircleCurve{Center: Pt(0, 0), Radius: 10}, Pt(0, 15), 5},
		{"circle inside", CircleCurve{Center: Pt(0, 0), Radius: 10}, Pt(0, 4), 6},
		{"arc on span", ArcCurve{Center: Pt(0, 0), Radius: 10, Start: 0, Extent: 180}, Pt(0, -12), 2},
		{"arc off span", ArcCurve{Center: Pt(0, 0), Radius: 10, Start: 0, Extent: 180}, Pt(0, 10), math.Sqrt(200)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.curve.Distance(tt.p); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Distance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCurveBounds(t *testing.T) {
	b := SegmentCurve{P0: Pt(10, 50), P1: Pt(-5, 20)}.Bounds()
	if b.Min.X != -5 || b.Min.Y != 20 || b.Max.X != 10 || b.Max.Y != 50 {
		t.Errorf("segment bounds = %+v", b)
	}
	c := CircleCurve{Center: Pt(1, 2), Radius: 3}.Bounds()
	if c.Min.X != -2 || c.Max.Y != 5 {
		t.Errorf("circle bounds = %+v", c)
	}
	if !Grow(b, 10).Overlaps(BoundsAround(Pt(20, 35), 1)) {
		t.Errorf("grown bounds should reach (20, 35)")
	}
	if b.Overlaps(BoundsAround(Pt(40, 35), 1)) {
		t.Errorf("bounds should not reach (40, 35)")
	}
}

func TestArcEndpoints(t *testing.T) {
	arc := ArcCurve{Center: Pt(0, 0), Radius: 10, Start: 90, Extent: 90}
	if !near(arc.StartPoint(), Pt(0, -10)) {
		t.Errorf("StartPoint() = %v", arc.StartPoint())
	}
	if !near(arc.EndPoint(), Pt(-10, 0)) {
		t.Errorf("EndPoint() = %v", arc.EndPoint())
	}
	if !arc.ContainsAngle(135) || arc.ContainsAngle(200) || !arc.ContainsAngle(90) {
		t.Errorf("ContainsAngle mismatch")
	}
}
