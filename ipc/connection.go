package ipc

import (
	"context"
	"io"
	"log/slog"
	"sync"
)

// Handler processes a received envelope. Return nil to send no reply.
type Handler func(ctx context.Context, env Envelope) (*Envelope, error)

// Connection is a single mod instance talking to the sidecar.
type Connection struct {
	rw       io.ReadWriteCloser
	handlers map[string]Handler
	writeMu  sync.Mutex
	Player   string
}

func NewConnection(rw io.ReadWriteCloser, handlers map[string]Handler) *Connection {
	if handlers == nil {
		handlers = make(map[string]Handler)
	}
	return &Connection{
		rw:       rw,
		handlers: handlers,
	}
}

func (c *Connection) RegisterHandler(msgType string, handler Handler) {
	c.handlers[msgType] = handler
}

// Send frames data as an envelope of msgType and writes it.
func (c *Connection) Send(msgType string, data any) error {
	env, err := NewEnvelope(msgType, data)
	if err != nil {
		return err
	}
	return c.write(env)
}

func (c *Connection) write(env Envelope) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return WriteEnvelope(c.rw, env)
}

// ReadLoop blocks until the connection closes, errors, or ctx is done. It
// owns the connection lifetime so callers don't need to track cleanup.
func (c *Connection) ReadLoop(ctx context.Context) {
	defer c.rw.Close()

	stop := context.AfterFunc(ctx, func() { _ = c.rw.Close() })
	defer stop()

	for {
		env, err := ReadEnvelope(c.rw)
		if err != nil {
			slog.Info("connection read ended", "player", c.Player, "error", err)
			return
		}

		handler, ok := c.handlers[env.Type]
		if !ok {
			slog.Warn("no handler for message type", "type", env.Type)
			continue
		}

		resp, err := handler(ctx, env)
		if err != nil {
			slog.Error("handler error", "type", env.Type, "error", err)
			continue
		}

		if resp != nil {
			if err := c.write(*resp); err != nil {
				slog.Error("failed to send response", "type", resp.Type, "error", err)
				return
			}
			slog.Debug("sent response", "type", resp.Type, "player", c.Player)
		}
	}
}
