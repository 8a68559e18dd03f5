package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"LocalSketch/internal/geom"
	"LocalSketch/internal/state"
)

const (
	maxFrameBytes = 1 << 20
	pongWait      = 45 * time.Second
	pingInterval  = 15 * time.Second
	writeWait     = 10 * time.Second
	peerQueue     = 64
)

// SyncPath is where the hub accepts websocket peers.
const SyncPath = "/sync"

// Hub is the single writer of a shared drawing. Local edits and requests
// from peers are applied one at a time; each result is broadcast as ops to
// every peer before the next edit starts.
type Hub struct {
	mu       sync.Mutex
	editor   *state.Editor
	drawing  string
	peers    map[*peer]struct{}
	upgrader websocket.Upgrader
	log      logrus.FieldLogger

	// OnDiff is called with every applied change, for the host's own board.
	OnDiff func(state.Diff)
}

type peer struct {
	id     string
	conn   *websocket.Conn
	send   chan []byte
	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub(editor *state.Editor, logger logrus.FieldLogger) *Hub {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	drawing := uuid.NewString()
	return &Hub{
		editor:  editor,
		drawing: drawing,
		peers:   make(map[*peer]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  8192,
			WriteBufferSize: 8192,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		log: logger.WithFields(logrus.Fields{"component": "sync", "drawing": drawing}),
	}
}

// Drawing returns the id of the shared drawing.
func (h *Hub) Drawing() string {
	return h.drawing
}

// Peers returns the number of connected peers.
func (h *Hub) Peers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.peers)
}

// ListenAndServe serves the hub on port until ctx is done.
func (h *Hub) ListenAndServe(ctx context.Context, port int) error {
	mux := http.NewServeMux()
	mux.Handle(SyncPath, h)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	h.log.WithField("port", port).Info("sync hub listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("sync hub: %w", err)
	}
	return nil
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	ctx, cancel := context.WithCancel(r.Context())
	p := &peer{
		id:     uuid.NewString(),
		conn:   conn,
		send:   make(chan []byte, peerQueue),
		ctx:    ctx,
		cancel: cancel,
	}

	// Registering under the lock keeps the snapshot and later ops in order.
	h.mu.Lock()
	h.peers[p] = struct{}{}
	snap := Frame{Type: FrameSnapshot, Drawing: h.drawing, Entities: stripHandles(h.editor.Snapshot())}
	h.enqueue(p, snap)
	h.mu.Unlock()

	log := h.log.WithFields(logrus.Fields{"peer": p.id, "addr": r.RemoteAddr})
	log.Info("peer connected")
	defer func() {
		h.mu.Lock()
		delete(h.peers, p)
		h.mu.Unlock()
		cancel()
		_ = conn.Close()
		log.Info("peer disconnected")
	}()

	go h.writeLoop(p)
	h.readLoop(p, log)
}

func (h *Hub) readLoop(p *peer, log logrus.FieldLogger) {
	p.conn.SetReadLimit(maxFrameBytes)
	_ = p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		return p.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		var f Frame
		if err := p.conn.ReadJSON(&f); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Warn("read failed")
			}
			return
		}
		if _, err := h.handle(f); err != nil {
			log.WithError(err).WithField("type", f.Type).Info("request rejected")
			h.mu.Lock()
			h.enqueue(p, Frame{Type: FrameError, ID: f.ID, Error: &RemoteError{
				Code:    errorCode(err),
				Message: err.Error(),
				Request: f.Type,
			}})
			h.mu.Unlock()
		}
	}
}

func (h *Hub) writeLoop(p *peer) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-p.ctx.Done():
			return
		case msg := <-p.send:
			_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				p.cancel()
				return
			}
		case <-ticker.C:
			_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				p.cancel()
				return
			}
		}
	}
}

// handle applies one request frame and broadcasts the result.
func (h *Hub) handle(f Frame) (state.Diff, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	diff, err := h.apply(f)
	if err != nil {
		return state.Diff{}, err
	}
	if diff.Empty() {
		return diff, nil
	}
	ops := h.editor.Clock().Stamp(diff)
	for p := range h.peers {
		h.enqueue(p, Frame{Type: FrameOps, Ops: ops})
	}
	if h.OnDiff != nil {
		h.OnDiff(diff)
	}
	return diff, nil
}

func (h *Hub) apply(f Frame) (state.Diff, error) {
	switch f.Type {
	case FrameCreate:
		if f.Entity == nil {
			return state.Diff{}, errors.New("create: missing entity")
		}
		e, err := h.editor.Create(f.Entity.Geometry())
		if err != nil {
			return state.Diff{}, err
		}
		return state.Diff{Added: []state.Entity{e}}, nil
	case FrameTrim:
		if f.Pick == nil {
			return state.Diff{}, errors.New("trim: missing pick point")
		}
		diff, _, err := h.editor.Trim(f.Target, *f.Pick)
		return diff, err
	case FrameUndo:
		diff, _ := h.editor.UndoLast()
		return diff, nil
	case FrameDelete:
		return h.editor.Delete(f.Target)
	}
	return state.Diff{}, fmt.Errorf("unsupported frame type %q", f.Type)
}

// enqueue must be called with h.mu held. A peer that cannot keep up is
// disconnected rather than allowed to stall the drawing.
func (h *Hub) enqueue(p *peer, f Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		h.log.WithError(err).Error("encode frame")
		return
	}
	select {
	case p.send <- data:
	default:
		h.log.WithField("peer", p.id).Warn("peer queue full, dropping peer")
		delete(h.peers, p)
		p.cancel()
		_ = p.conn.Close()
	}
}

func (h *Hub) Create(e state.Entity) error {
	_, err := h.handle(Frame{Type: FrameCreate, Entity: &e})
	return err
}

func (h *Hub) Trim(id uint64, pick geom.Point) error {
	_, err := h.handle(Frame{Type: FrameTrim, Target: id, Pick: &pick})
	return err
}

func (h *Hub) Undo() error {
	_, err := h.handle(Frame{Type: FrameUndo})
	return err
}

func (h *Hub) Delete(id uint64) error {
	_, err := h.handle(Frame{Type: FrameDelete, Target: id})
	return err
}

func (h *Hub) Pick(p geom.Point, tol float64) (uint64, bool) {
	return h.editor.Pick(p, tol)
}

func (h *Hub) SetHandles(id uint64, handles []state.Handle) error {
	return h.editor.SetHandles(id, handles)
}

func (h *Hub) Entities() []state.Entity {
	return h.editor.Snapshot()
}

func stripHandles(entities []state.Entity) []state.Entity {
	for i := range entities {
		entities[i].Handles = nil
	}
	return entities
}
