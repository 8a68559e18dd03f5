package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"LocalSketch/internal/config"
	"LocalSketch/internal/geom"
	"LocalSketch/internal/state"
)

// Tool is the active board mode.
type Tool int

const (
	ToolNone Tool = iota
	ToolPoint
	ToolLine
	ToolCircle
	ToolTrim
)

var toolNames = []string{"None", "Point", "Line", "Circle", "Trim"}

func (t Tool) String() string {
	if t < 0 || int(t) >= len(toolNames) {
		return "Unknown"
	}
	return toolNames[t]
}

func toolByName(name string) Tool {
	for i, n := range toolNames {
		if n == name {
			return Tool(i)
		}
	}
	return ToolNone
}

// intent is what one click on the board asks for.
type intent struct {
	create *state.Entity
	trim   bool
	at     geom.Point
}

// sketch turns clicks into entities for the active tool. Lines and circles
// take two clicks; the first is held as the anchor until the second lands
// or the mode is cancelled.
type sketch struct {
	tool   Tool
	anchor *geom.Point
	grid   config.GridConfig
}

func (s *sketch) setTool(t Tool) {
	s.tool = t
	s.anchor = nil
}

func (s *sketch) cancel() {
	s.setTool(ToolNone)
}

func (s *sketch) snap(p geom.Point) geom.Point {
	return geom.Snap(p, s.grid.Pitch)
}

func (s *sketch) radius(center, p geom.Point) float64 {
	r := geom.Dist(center, p)
	if s.grid.SnapRadius {
		r = geom.SnapLength(r, s.grid.Pitch)
	}
	return r
}

// click handles a primary click at raw board coordinates.
func (s *sketch) click(raw geom.Point) (intent, bool) {
	p := s.snap(raw)
	switch s.tool {
	case ToolPoint:
		e := state.NewPoint(p)
		return intent{create: &e}, true
	case ToolLine:
		if s.anchor == nil {
			s.anchor = &p
			return intent{}, false
		}
		a := *s.anchor
		s.anchor = nil
		if a == p {
			return intent{}, false
		}
		e := state.NewSegment(a, p)
		return intent{create: &e}, true
	case ToolCircle:
		if s.anchor == nil {
			s.anchor = &p
			return intent{}, false
		}
		c := *s.anchor
		s.anchor = nil
		r := s.radius(c, p)
		if r <= 0 {
			return intent{}, false
		}
		e := state.NewCircle(c, r)
		return intent{create: &e}, true
	case ToolTrim:
		return intent{trim: true, at: raw}, true
	}
	return intent{}, false
}

// preview is the rubber-band shape shown while the cursor moves.
type preview struct {
	cursor geom.Point
	marker bool
	anchor *geom.Point
	line   bool
	radius float64
}

func (s *sketch) preview(raw geom.Point) preview {
	p := s.snap(raw)
	pv := preview{cursor: p}
	switch s.tool {
	case ToolPoint:
		pv.marker = true
	case ToolLine:
		pv.marker = true
		if s.anchor != nil {
			a := *s.anchor
			pv.anchor = &a
			pv.line = true
		}
	case ToolCircle:
		pv.marker = true
		if s.anchor != nil {
			a := *s.anchor
			pv.anchor = &a
			pv.radius = s.radius(a, p)
		}
	}
	return pv
}

// NewToolbar builds the mode selector and action buttons for board.
func NewToolbar(board *BoardWidget, share string, onExport func()) fyne.CanvasObject {
	modes := widget.NewRadioGroup(toolNames[1:], func(name string) {
		board.SetTool(toolByName(name))
	})
	modes.Horizontal = true
	board.onToolChange = func(t Tool) {
		if t == ToolNone {
			modes.SetSelected("")
			return
		}
		modes.SetSelected(t.String())
	}

	actions := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentUndoIcon(), board.Undo),
		widget.NewToolbarAction(theme.GridIcon(), board.ToggleGrid),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), onExport),
	)

	items := []fyne.CanvasObject{
		widget.NewLabel("Tool:"),
		modes,
		widget.NewSeparator(),
		actions,
		layout.NewSpacer(),
	}
	if share != "" {
		link := widget.NewEntry()
		link.SetText(share)
		link.Disable()
		items = append(items, widget.NewLabel("Share:"),
			container.New(layout.NewGridWrapLayout(fyne.NewSize(260, 35)), link))
	}
	return container.NewHBox(items...)
}
