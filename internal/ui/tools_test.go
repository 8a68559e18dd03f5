package ui

import (
	"testing"

	"LocalSketch/internal/config"
	"LocalSketch/internal/geom"
	"LocalSketch/internal/state"
)

func newSketch(tool Tool) *sketch {
	s := &sketch{grid: config.Default().Grid}
	s.setTool(tool)
	return s
}

func TestSketchPointSnaps(t *testing.T) {
	s := newSketch(ToolPoint)
	in, ok := s.click(geom.Pt(31, 9))
	if !ok || in.create == nil {
		t.Fatalf("click gave %+v, %v", in, ok)
	}
	if in.create.Kind != state.KindPoint || in.create.At != geom.Pt(40, 0) {
		t.Errorf("created %+v, want point at (40,0)", in.create)
	}
}

func TestSketchLineNeedsTwoClicks(t *testing.T) {
	s := newSketch(ToolLine)
	if _, ok := s.click(geom.Pt(2, 3)); ok {
		t.Fatal("first click created something")
	}
	in, ok := s.click(geom.Pt(58, 41))
	if !ok {
		t.Fatal("second click created nothing")
	}
	if in.create.P0 != geom.Pt(0, 0) || in.create.P1 != geom.Pt(60, 40) {
		t.Errorf("segment = %v-%v", in.create.P0, in.create.P1)
	}
	if s.anchor != nil {
		t.Error("anchor kept after the segment was made")
	}
}

func TestSketchLineSameCellDiscarded(t *testing.T) {
	s := newSketch(ToolLine)
	s.click(geom.Pt(20, 20))
	if _, ok := s.click(geom.Pt(22, 18)); ok {
		t.Error("zero-length line was created")
	}
	if s.anchor != nil {
		t.Error("anchor kept after a discarded line")
	}
}

func TestSketchCircleRadius(t *testing.T) {
	tests := []struct {
		name       string
		snapRadius bool
		second     geom.Point
		wantR      float64
		wantOK     bool
	}{
		{"snapped", true, geom.Pt(40, 20), 40, true},
		{"unsnapped", false, geom.Pt(40, 20), 44.721359549995796, true},
		{"rounds to zero", true, geom.Pt(40, 30), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSketch(ToolCircle)
			s.grid.SnapRadius = tt.snapRadius
			if tt.name == "rounds to zero" {
				s.grid.Pitch = 100
			}
			s.click(geom.Pt(0, 0))
			in, ok := s.click(tt.second)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if d := in.create.Radius - tt.wantR; d > 1e-9 || d < -1e-9 {
				t.Errorf("radius = %v, want %v", in.create.Radius, tt.wantR)
			}
		})
	}
}

func TestSketchTrimKeepsRawPick(t *testing.T) {
	s := newSketch(ToolTrim)
	in, ok := s.click(geom.Pt(13, 27))
	if !ok || !in.trim || in.at != geom.Pt(13, 27) {
		t.Errorf("trim click = %+v, %v", in, ok)
	}
}

func TestSketchCancelDropsAnchor(t *testing.T) {
	s := newSketch(ToolCircle)
	s.click(geom.Pt(40, 40))
	s.cancel()
	if s.anchor != nil || s.tool != ToolNone {
		t.Fatalf("after cancel: tool %v anchor %v", s.tool, s.anchor)
	}
	if _, ok := s.click(geom.Pt(80, 80)); ok {
		t.Error("click with no tool did something")
	}
}

func TestSketchPreview(t *testing.T) {
	s := newSketch(ToolCircle)
	if pv := s.preview(geom.Pt(9, 11)); !pv.marker || pv.anchor != nil || pv.cursor != geom.Pt(0, 20) {
		t.Errorf("preview before anchor = %+v", pv)
	}
	s.click(geom.Pt(100, 100))
	pv := s.preview(geom.Pt(130, 100))
	if pv.anchor == nil || *pv.anchor != geom.Pt(100, 100) || pv.radius != 40 {
		t.Errorf("preview with anchor = %+v", pv)
	}

	s.setTool(ToolTrim)
	if pv := s.preview(geom.Pt(5, 5)); pv.marker || pv.anchor != nil {
		t.Errorf("trim preview = %+v", pv)
	}
}

func TestToolNames(t *testing.T) {
	for _, tool := range []Tool{ToolNone, ToolPoint, ToolLine, ToolCircle, ToolTrim} {
		if got := toolByName(tool.String()); got != tool {
			t.Errorf("toolByName(%q) = %v", tool.String(), got)
		}
	}
	if Tool(42).String() != "Unknown" {
		t.Error("out of range tool has a name")
	}
}
