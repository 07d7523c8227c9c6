package differenzler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	uuid "github.com/iris-contrib/go.uuid"

	"differenzler/game"
)

// SessionCounter receives every session status change.
type SessionCounter interface {
	SessionMove(from, to Status)
}

// Registry sessions of this process keyed by id. Sessions are independent; the registry lock
// only guards the maps.
type Registry struct {
	pid       context.Context
	publisher Publisher
	counter   SessionCounter
	log       *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
	byOwner  map[string]string
	wg       sync.WaitGroup
}

func NewRegistry(pid context.Context, publisher Publisher, counter SessionCounter, log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{
		pid:       pid,
		publisher: publisher,
		counter:   counter,
		log:       log,
		sessions:  make(map[string]*Session),
		byOwner:   make(map[string]string),
	}
}

// Create seats remote at remote.Seat among others (three players, seat order kept) and
// registers the session in status created. opts.Listener and opts.Logger are replaced.
func (r *Registry) Create(remote Remote, others []*game.Player, opts game.Options) (*Session, error) {
	if len(others) != game.PlayersLimit-1 {
		return nil, fmt.Errorf("%w: %d opponents", game.ErrSeatCount, len(others))
	}
	if remote.Seat < 0 || remote.Seat >= game.PlayersLimit {
		return nil, fmt.Errorf("%w: remote seat %d", game.ErrSeatCount, remote.Seat)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if sid, ok := r.byOwner[remote.Identity]; ok {
		return nil, fmt.Errorf("%w: %s", ErrPlayMultipleGame, sid)
	}

	s := newSession(r.pid, id.String(), remote, r.publisher, r.log)
	if r.counter != nil {
		s.onStatus = func(_ *Session, from, to Status) { r.counter.SessionMove(from, to) }
	}

	players := make([]*game.Player, 0, game.PlayersLimit)
	players = append(players, others[:remote.Seat]...)
	players = append(players, game.NewPlayer(remote.Name, game.NewRemotePlayer(s)))
	players = append(players, others[remote.Seat:]...)

	opts.Listener = s.forward
	opts.Logger = s.log
	g, err := game.New(s.ID, players, opts)
	if err != nil {
		s.cancel()
		return nil, err
	}
	s.game = g

	r.sessions[s.ID] = s
	r.byOwner[remote.Identity] = s.ID
	if r.counter != nil {
		r.counter.SessionMove(StatusNone, StatusCreated)
	}
	s.log.Info("session created",
		slog.String("owner", remote.Identity),
		slog.String("name", remote.Name),
		slog.Int("seat", remote.Seat),
		slog.Int("rounds", g.Rounds()))
	return s, nil
}

// Start runs the session's game loop on its own goroutine.
func (r *Registry) Start(id string) error {
	s, err := r.Session(id)
	if err != nil {
		return err
	}
	return s.start(&r.wg, r.remove)
}

func (r *Registry) Session(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSessionNotFound, id)
	}
	return s, nil
}

// SessionOf the active session of identity.
func (r *Registry) SessionOf(identity string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byOwner[identity]
	if !ok {
		return nil, false
	}
	s, ok := r.sessions[id]
	return s, ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *Registry) SubmitGuess(id, identity string, guess int) error {
	s, err := r.Session(id)
	if err != nil {
		return err
	}
	return s.SubmitGuess(identity, guess)
}

func (r *Registry) SubmitCard(id, identity string, suit game.Suit, rank game.Rank) error {
	s, err := r.Session(id)
	if err != nil {
		return err
	}
	card, err := game.NewCard(suit, rank)
	if err != nil {
		return fmt.Errorf("%w: %w", game.ErrIllegalCard, err)
	}
	return s.SubmitCard(identity, card)
}

// Abandon ends the session; a waiting game loop returns promptly.
func (r *Registry) Abandon(id string) error {
	s, err := r.Session(id)
	if err != nil {
		return err
	}
	r.abandon(s)
	return nil
}

// AbandonOwner abandons whatever session identity is playing, e.g. on disconnect.
func (r *Registry) AbandonOwner(identity string) bool {
	s, ok := r.SessionOf(identity)
	if !ok {
		return false
	}
	r.abandon(s)
	return true
}

func (r *Registry) abandon(s *Session) {
	if !s.abandon() {
		return
	}
	s.log.Info("session abandon requested", slog.String("owner", s.remote.Identity))
	if !s.started() {
		// no game loop will remove it
		r.remove(s)
	}
}

// remove forgets a finished session.
func (r *Registry) remove(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.sessions[s.ID]; !ok || cur != s {
		return
	}
	delete(r.sessions, s.ID)
	if r.byOwner[s.remote.Identity] == s.ID {
		delete(r.byOwner, s.remote.Identity)
	}
	if r.counter != nil {
		r.counter.SessionMove(s.Status(), StatusNone)
	}
}

// Close abandons every session and waits for their loops.
func (r *Registry) Close() {
	r.mu.RLock()
	all := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		all = append(all, s)
	}
	r.mu.RUnlock()

	for _, s := range all {
		r.abandon(s)
	}
	r.wg.Wait()
}
