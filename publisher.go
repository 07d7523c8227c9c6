package differenzler

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/kataras/neffos"
	"github.com/lmittmann/tint"

	"differenzler/game"
)

// Publisher delivers one outbound event to one connection.
type Publisher interface {
	Publish(to, event string, payload any)
}

type (
	errorPayload struct {
		Message string `json:"message"`
	}

	gameStartedPayload struct {
		SessionID    string   `json:"sessionId"`
		Participants []string `json:"participants"`
	}

	guessReceivedPayload struct {
		Guess int `json:"guess"`
	}
)

// connPublisher writes each event straight to the namespace connection of its owner, so events
// of one connection leave in the order they were published and no connection waits on another.
type connPublisher struct {
	mu    sync.RWMutex
	conns map[string]*neffos.NSConn
	codec Codec
	log   *slog.Logger
}

func newConnPublisher(codec Codec, log *slog.Logger) *connPublisher {
	return &connPublisher{
		conns: make(map[string]*neffos.NSConn),
		codec: codec,
		log:   log,
	}
}

// attach makes c reachable by its connection id.
func (p *connPublisher) attach(c *neffos.NSConn) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.conns[c.Conn.ID()] = c
}

func (p *connPublisher) detach(connID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.conns, connID)
}

func (p *connPublisher) Publish(to, event string, payload any) {
	err := p.deliver(to, event, payload)
	if err == nil {
		return
	}
	level := slog.LevelDebug
	var appErr *BackendErr
	if errors.As(err, &appErr) && appErr.Code == SystemCode {
		level = slog.LevelError
	}
	p.log.Log(context.Background(), level, "event dropped",
		slog.String("conn", to),
		slog.String("event", event),
		tint.Err(err))
}

func (p *connPublisher) deliver(to, event string, payload any) error {
	p.mu.RLock()
	c, ok := p.conns[to]
	p.mu.RUnlock()
	if !ok {
		return BackendError(ConnectionCode, "connection not attached", nil, to)
	}

	body, err := p.codec.Encode(payload)
	if err != nil {
		return BackendError(SystemCode, "encode event", err, event)
	}
	ok = c.Conn.Write(neffos.Message{
		Namespace: game.SpaceName,
		Event:     event,
		Body:      body,
		SetBinary: p.codec.Binary(),
	})
	if !ok {
		return BackendError(ConnectionCode, "write failed", nil, to)
	}
	return nil
}
