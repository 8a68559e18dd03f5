package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"LocalSketch/internal/config"
	"LocalSketch/internal/geom"
	"LocalSketch/internal/state"
)

func drawing() []state.Entity {
	return []state.Entity{
		state.NewPoint(geom.Pt(10, 10)),
		state.NewSegment(geom.Pt(0, 0), geom.Pt(200, 100)),
		state.NewCircle(geom.Pt(100, 100), 40),
		state.NewArc(geom.Pt(300, 100), 50, 90, 240),
	}
}

func TestPDFWritesDocument(t *testing.T) {
	var buf bytes.Buffer
	if err := PDF(&buf, drawing(), config.Default().Export); err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output does not start with a PDF header")
	}
	if !bytes.Contains(buf.Bytes(), []byte("%%EOF")) {
		t.Errorf("output has no trailer")
	}
}

func TestPDFEmptyDrawing(t *testing.T) {
	var buf bytes.Buffer
	if err := PDF(&buf, nil, config.Default().Export); err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("empty drawing produced no output")
	}
}

func TestPDFFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	if err := PDFFile(path, drawing(), config.Default().Export); err != nil {
		t.Fatalf("PDFFile: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("file is empty")
	}
}

func TestPDFFileBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.pdf")
	if err := PDFFile(path, drawing(), config.Default().Export); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func TestToPage(t *testing.T) {
	x, y := toPage(geom.Pt(40, 80), 0.25)
	if x != margin+10 || y != margin+20 {
		t.Errorf("toPage = (%v, %v)", x, y)
	}
}
