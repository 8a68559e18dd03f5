package net

import (
	"errors"
	"fmt"

	"LocalSketch/internal/geom"
	"LocalSketch/internal/state"
)

// Frame types. Requests flow from peers to the host; ops, snapshot and
// error frames flow back.
const (
	FrameCreate   = "create"
	FrameTrim     = "trim"
	FrameUndo     = "undo"
	FrameDelete   = "delete"
	FrameOps      = "ops"
	FrameSnapshot = "snapshot"
	FrameError    = "error"
)

// Frame is the single JSON message shape on the sync socket.
type Frame struct {
	Type     string         `json:"type"`
	ID       string         `json:"id,omitempty"`
	Entity   *state.Entity  `json:"entity,omitempty"`
	Target   uint64         `json:"target,omitempty"`
	Pick     *geom.Point    `json:"pick,omitempty"`
	Ops      []state.Op     `json:"ops,omitempty"`
	Entities []state.Entity `json:"entities,omitempty"`
	Drawing  string         `json:"drawing,omitempty"`
	Error    *RemoteError   `json:"error,omitempty"`
}

// RemoteError is a failure reported by the host for one request.
type RemoteError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Request string `json:"request,omitempty"`
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is lets errors.Is match a RemoteError against the state sentinels.
func (e *RemoteError) Is(target error) bool {
	switch e.Code {
	case "not_found":
		return target == state.ErrNotFound
	case "degenerate_geometry":
		return target == state.ErrDegenerateGeometry
	case "invalid_trim_target":
		return target == state.ErrInvalidTrimTarget
	}
	return false
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, state.ErrNotFound):
		return "not_found"
	case errors.Is(err, state.ErrDegenerateGeometry):
		return "degenerate_geometry"
	case errors.Is(err, state.ErrInvalidTrimTarget):
		return "invalid_trim_target"
	}
	return "bad_request"
}
