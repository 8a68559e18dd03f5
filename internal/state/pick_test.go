package state

import (
	"testing"

	"LocalSketch/internal/geom"
)

func TestPick(t *testing.T) {
	r := NewRegistry()
	line, _ := r.Create(NewSegment(geom.Pt(0, 0), geom.Pt(100, 0)))
	circle, _ := r.Create(NewCircle(geom.Pt(200, 200), 50))
	dot, _ := r.Create(NewPoint(geom.Pt(100, 0)))

	tests := []struct {
		name   string
		p      geom.Point
		wantID uint64
		wantOK bool
	}{
		{"on the line", geom.Pt(50, 4), line, true},
		{"on the circle edge", geom.Pt(200, 146), circle, true},
		{"circle center is not the circle", geom.Pt(200, 200), 0, false},
		{"shared endpoint prefers the newest", geom.Pt(100, 0), dot, true},
		{"empty space", geom.Pt(500, 500), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := r.Pick(tt.p, 10)
			if ok != tt.wantOK || (ok && id != tt.wantID) {
				t.Errorf("Pick(%v) = %d, %v; want %d, %v", tt.p, id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}
