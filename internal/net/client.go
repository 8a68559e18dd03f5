package net

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"LocalSketch/internal/geom"
	"LocalSketch/internal/state"
)

// Client joins a drawing hosted elsewhere. Edits are sent to the host as
// requests; the local mirror only changes when the host's ops come back.
type Client struct {
	conn    *websocket.Conn
	replica *state.Replica
	log     logrus.FieldLogger

	writeMu sync.Mutex
	closed  chan struct{}
	once    sync.Once

	// OnDiff is called from the read loop with every change to the mirror.
	OnDiff func(state.Diff)
	// OnError is called when the host rejects one of our requests.
	OnError func(*RemoteError)
}

// Dial connects to a hub at addr (host:port).
func Dial(ctx context.Context, addr string, logger logrus.FieldLogger) (*Client, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	url := "ws://" + addr + SyncPath
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	log := logger.WithFields(logrus.Fields{"component": "client", "host": addr})
	return &Client{
		conn:    conn,
		replica: state.NewReplica(logger),
		log:     log,
		closed:  make(chan struct{}),
	}, nil
}

// Run reads frames from the host until the connection closes or ctx is
// done. It returns nil on a clean shutdown.
func (c *Client) Run(ctx context.Context) error {
	go func() {
		select {
		case <-ctx.Done():
			c.Close()
		case <-c.closed:
		}
	}()
	c.conn.SetReadLimit(maxFrameBytes)
	for {
		var f Frame
		if err := c.conn.ReadJSON(&f); err != nil {
			select {
			case <-c.closed:
				return nil
			default:
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("read from host: %w", err)
		}
		c.dispatch(f)
	}
}

func (c *Client) dispatch(f Frame) {
	switch f.Type {
	case FrameSnapshot:
		c.log.WithFields(logrus.Fields{"drawing": f.Drawing, "entities": len(f.Entities)}).Info("snapshot received")
		c.notify(c.replica.Load(f.Entities))
	case FrameOps:
		for _, op := range f.Ops {
			c.notify(c.replica.Apply(op))
		}
	case FrameError:
		if f.Error == nil {
			return
		}
		c.log.WithField("code", f.Error.Code).Warn(f.Error.Message)
		if c.OnError != nil {
			c.OnError(f.Error)
		}
	default:
		c.log.WithField("type", f.Type).Debug("ignoring frame")
	}
}

func (c *Client) notify(d state.Diff) {
	if !d.Empty() && c.OnDiff != nil {
		c.OnDiff(d)
	}
}

func (c *Client) send(f Frame) error {
	f.ID = uuid.NewString()
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(f); err != nil {
		return fmt.Errorf("send %s: %w", f.Type, err)
	}
	return nil
}

func (c *Client) Create(e state.Entity) error {
	if err := e.Validate(); err != nil {
		return err
	}
	g := e.Geometry()
	return c.send(Frame{Type: FrameCreate, Entity: &g})
}

func (c *Client) Trim(id uint64, pick geom.Point) error {
	return c.send(Frame{Type: FrameTrim, Target: id, Pick: &pick})
}

// Undo asks the host to undo the most recent creation in the drawing,
// whoever made it.
func (c *Client) Undo() error {
	return c.send(Frame{Type: FrameUndo})
}

func (c *Client) Delete(id uint64) error {
	return c.send(Frame{Type: FrameDelete, Target: id})
}

func (c *Client) Pick(p geom.Point, tol float64) (uint64, bool) {
	return c.replica.Pick(p, tol)
}

func (c *Client) SetHandles(id uint64, handles []state.Handle) error {
	return c.replica.SetHandles(id, handles)
}

func (c *Client) Entities() []state.Entity {
	return c.replica.Entities()
}

// Close sends a close frame and drops the connection.
func (c *Client) Close() error {
	var err error
	c.once.Do(func() {
		close(c.closed)
		c.writeMu.Lock()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		c.writeMu.Unlock()
		err = c.conn.Close()
	})
	return err
}
