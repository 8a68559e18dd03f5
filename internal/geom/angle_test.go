package geom

import (
	"math"
	"testing"
)

func TestAngleOf(t *testing.T) {
	c := Pt(100, 100)
	tests := []struct {
		p    Point
		want float64
	}{
		{Pt(150, 100), 0},
		{Pt(100, 50), 90}, // up on screen
		{Pt(50, 100), 180},
		{Pt(100, 150), 270},
		{Pt(150, 50), 45},
		{Pt(150, 150), 315},
	}
	for _, tt := range tests {
		got := AngleOf(c, tt.p)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("AngleOf(%v) = %v, want %v", tt.p, got, tt.want)
		}
		if got < 0 || got >= 360 {
			t.Errorf("AngleOf(%v) = %v out of range", tt.p, got)
		}
	}
}

func TestPointAtRoundTrip(t *testing.T) {
	c := Pt(-20, 35)
	for deg := 0.0; deg < 360; deg += 22.5 {
		p := PointAt(c, 40, deg)
		if got := AngleOf(c, p); math.Abs(got-deg) > 1e-9 && math.Abs(got-deg) < 360-1e-9 {
			t.Errorf("AngleOf(PointAt(%v)) = %v", deg, got)
		}
		if d := Dist(c, p); math.Abs(d-40) > 1e-9 {
			t.Errorf("radius at %v = %v", deg, d)
		}
	}
}

func TestNormalizeAndSweep(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0}, {360, 0}, {-90, 270}, {725, 5}, {-1e-15, 0},
	}
	for _, tt := range tests {
		if got := NormalizeDeg(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeDeg(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if got := Sweep(180, 0); got != 180 {
		t.Errorf("Sweep(180, 0) = %v", got)
	}
	if got := Sweep(350, 10); math.Abs(got-20) > 1e-9 {
		t.Errorf("Sweep(350, 10) = %v", got)
	}
}
