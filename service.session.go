package differenzler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kataras/neffos"
	"github.com/lmittmann/tint"

	"differenzler/game"
)

type (
	startGameRequest struct {
		ParticipantName string `json:"participantName"`
	}

	makeGuessRequest struct {
		SessionID string `json:"sessionId"`
		Guess     int    `json:"guess"`
	}

	// playCardRequest suit is a name, rank a name or its numeric value
	playCardRequest struct {
		SessionID string `json:"sessionId"`
		Suit      string `json:"suit"`
		Rank      any    `json:"rank"`
	}
)

// OpponentFactory builds the three non-remote players and the options of a new session.
type OpponentFactory interface {
	Build() ([]*game.Player, game.Options)
}

// connDirectory tracks the namespace connections events can be written to.
type connDirectory interface {
	attach(c *neffos.NSConn)
	detach(connID string)
}

// ConnCounter counts namespace connections.
type ConnCounter interface {
	ConnAdd(connID string)
	ConnSub(connID string)
}

// SessionService handles the inbound events of the differenzler namespace.
type SessionService struct {
	registry   *Registry
	opponents  OpponentFactory
	codec      Codec
	counter    ConnCounter
	conns      connDirectory
	publisher  Publisher
	remoteSeat int
	log        *slog.Logger
}

func newSessionService(registry *Registry, opponents OpponentFactory, codec Codec, counter ConnCounter, publisher *connPublisher, remoteSeat int, log *slog.Logger) *SessionService {
	if log == nil {
		log = slog.Default()
	}
	return &SessionService{
		registry:   registry,
		opponents:  opponents,
		codec:      codec,
		counter:    counter,
		conns:      publisher,
		publisher:  publisher,
		remoteSeat: remoteSeat,
		log:        log,
	}
}

func (svc *SessionService) _OnNamespaceConnected(c *neffos.NSConn, m neffos.Message) error {
	spaceLog(svc.log, c, m)
	svc.conns.attach(c)
	if svc.counter != nil {
		svc.counter.ConnAdd(c.Conn.ID())
	}
	return nil
}

// _OnNamespaceDisconnect abandons the session of the leaving connection.
func (svc *SessionService) _OnNamespaceDisconnect(c *neffos.NSConn, m neffos.Message) error {
	spaceLog(svc.log, c, m)
	if svc.registry.AbandonOwner(c.Conn.ID()) {
		svc.log.Info("owner disconnected", slog.String("conn", c.Conn.ID()))
	}
	svc.conns.detach(c.Conn.ID())
	if svc.counter != nil {
		svc.counter.ConnSub(c.Conn.ID())
	}
	return nil
}

// StartGame creates a session for the caller, announces it and starts the game loop.
func (svc *SessionService) StartGame(c *neffos.NSConn, m neffos.Message) error {
	spaceLog(svc.log, c, m)
	var req startGameRequest
	if err := svc.codec.Decode(m.Body, &req); err != nil {
		return svc.reject(c, BackendError(GeneralCode, "malformed start_game", err, string(m.Body)))
	}
	name := strings.TrimSpace(req.ParticipantName)
	if name == "" {
		return svc.reject(c, BackendError(GeneralCode, "participantName is required", nil, nil))
	}

	others, opts := svc.opponents.Build()
	s, err := svc.registry.Create(Remote{Identity: c.Conn.ID(), Name: name, Seat: svc.remoteSeat}, others, opts)
	if err != nil {
		return svc.reject(c, BackendError(SessionCode, "cannot create session", err, name))
	}

	svc.publisher.Publish(c.Conn.ID(), game.ClnEvents.GameStarted, gameStartedPayload{
		SessionID:    s.ID,
		Participants: s.game.Names(),
	})
	if err = svc.registry.Start(s.ID); err != nil {
		return svc.reject(c, BackendError(SystemCode, "cannot start session", err, s.ID))
	}
	return nil
}

// MakeGuess acknowledges an accepted guess with guess_received.
func (svc *SessionService) MakeGuess(c *neffos.NSConn, m neffos.Message) error {
	spaceLog(svc.log, c, m)
	var req makeGuessRequest
	if err := svc.codec.Decode(m.Body, &req); err != nil {
		return svc.reject(c, BackendError(GeneralCode, "malformed make_guess", err, string(m.Body)))
	}
	if err := svc.registry.SubmitGuess(req.SessionID, c.Conn.ID(), req.Guess); err != nil {
		return svc.reject(c, BackendError(SessionCode, "guess rejected", err, req))
	}
	svc.publisher.Publish(c.Conn.ID(), game.ClnEvents.GuessReceived, guessReceivedPayload{Guess: req.Guess})
	return nil
}

// PlayCard needs no acknowledgement, card_played follows from the game loop.
func (svc *SessionService) PlayCard(c *neffos.NSConn, m neffos.Message) error {
	spaceLog(svc.log, c, m)
	var req playCardRequest
	if err := svc.codec.Decode(m.Body, &req); err != nil {
		return svc.reject(c, BackendError(GeneralCode, "malformed play_card", err, string(m.Body)))
	}
	suit, err := game.ParseSuit(req.Suit)
	if err != nil {
		return svc.reject(c, BackendError(GeneralCode, "card rejected", err, req))
	}
	rank, err := game.ParseRank(fmt.Sprint(req.Rank))
	if err != nil {
		return svc.reject(c, BackendError(GeneralCode, "card rejected", err, req))
	}
	if err = svc.registry.SubmitCard(req.SessionID, c.Conn.ID(), suit, rank); err != nil {
		return svc.reject(c, BackendError(SessionCode, "card rejected", err, req))
	}
	return nil
}

// reject reports err to the caller as error{message}. The connection stays open, so nil is
// returned to neffos.
func (svc *SessionService) reject(c *neffos.NSConn, err *BackendErr) error {
	level := slog.LevelDebug
	if err.Code == SystemCode || errors.Is(err, ErrPlayMultipleGame) {
		level = slog.LevelWarn
	}
	svc.log.Log(context.Background(), level, "request rejected",
		slog.String("conn", c.Conn.ID()),
		slog.Int("code", int(err.Code)),
		slog.Any("reason", err.reason),
		tint.Err(err))
	svc.publisher.Publish(c.Conn.ID(), game.ClnEvents.Error, errorPayload{Message: clientMessage(err)})
	return nil
}
