package differenzler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lmittmann/tint"

	"differenzler/game"
)

type Status uint8

const (
	StatusNone Status = iota
	StatusCreated
	StatusRunning
	StatusAwaitingInput
	StatusAbandoned
	StatusComplete
)

func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusRunning:
		return "running"
	case StatusAwaitingInput:
		return "awaiting-input"
	case StatusAbandoned:
		return "abandoned"
	case StatusComplete:
		return "complete"
	}
	return "none"
}

// Terminal no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusAbandoned || s == StatusComplete
}

type DecisionKind uint8

const (
	DecisionGuess DecisionKind = iota + 1
	DecisionCard
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionGuess:
		return "guess"
	case DecisionCard:
		return "card"
	}
	return "none"
}

type (
	// Remote the one network participant of a session
	Remote struct {
		Identity string // connection id
		Name     string
		Seat     int
	}

	// decision the single pending request of a session
	decision struct {
		kind  DecisionKind
		owner string
		hand  []game.Card
		legal []game.Card
		slot  *waitOnce
	}

	// Session one game running on its own goroutine. mu guards status and pending and orders
	// outbound events against abandon; the game itself is only touched by that goroutine.
	Session struct {
		ID     string
		remote Remote

		mu      sync.Mutex
		status  Status
		running bool
		pending *decision
		err     error

		game      *game.Game
		ctx       context.Context
		cancel    context.CancelFunc
		done      chan struct{}
		publisher Publisher
		log       *slog.Logger

		// onStatus is called with mu held
		onStatus func(s *Session, from, to Status)
	}
)

func newSession(pid context.Context, id string, remote Remote, publisher Publisher, log *slog.Logger) *Session {
	ctx, cancel := context.WithCancel(pid)
	return &Session{
		ID:        id,
		remote:    remote,
		status:    StatusCreated,
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
		publisher: publisher,
		log:       log.With(slog.String("session", id)),
		onStatus:  func(*Session, Status, Status) {},
	}
}

func (s *Session) Remote() Remote { return s.remote }

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Pending kind and owner of the outstanding decision, if any.
func (s *Session) Pending() (DecisionKind, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return 0, "", false
	}
	return s.pending.kind, s.pending.owner, true
}

func (s *Session) started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Done is closed once the game loop returned.
func (s *Session) Done() <-chan struct{} { return s.done }

// Err why the game loop stopped early, nil for a completed game.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// setStatus requires mu.
func (s *Session) setStatus(to Status) {
	from := s.status
	if from == to {
		return
	}
	s.status = to
	s.onStatus(s, from, to)
	s.log.Debug("session status", slog.String("from", from.String()), slog.String("to", to.String()))
}

func (s *Session) start(wg *sync.WaitGroup, finished func(*Session)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusCreated {
		return fmt.Errorf("%w: %s", ErrSessionStarted, s.status)
	}
	s.setStatus(StatusRunning)
	s.running = true

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer finished(s)
		s.run()
	}()
	return nil
}

func (s *Session) run() {
	defer close(s.done)
	defer s.cancel()

	err := s.game.Run(s.ctx)

	s.mu.Lock()
	s.pending = nil
	s.err = err
	switch {
	case err == nil:
		s.setStatus(StatusComplete)
		s.log.Info("session complete")
	case game.IsAbandoned(err):
		s.setStatus(StatusAbandoned)
		s.log.Info("session abandoned")
	default:
		s.setStatus(StatusAbandoned)
		s.log.Error("session stopped", tint.Err(err))
	}
	s.mu.Unlock()

	if err != nil && !game.IsAbandoned(err) {
		s.publisher.Publish(s.remote.Identity, game.ClnEvents.Error, errorPayload{Message: clientMessage(err)})
	}
}

// abandon is terminal. It returns false when the session had already ended.
func (s *Session) abandon() bool {
	s.mu.Lock()
	if s.status.Terminal() {
		s.mu.Unlock()
		return false
	}
	s.pending = nil
	s.setStatus(StatusAbandoned)
	s.mu.Unlock()

	s.cancel()
	return true
}

// forward game events to the remote participant; hands of other seats stay private. The event
// is published under mu so nothing leaves after abandon returned.
func (s *Session) forward(e game.Event) {
	if e.Seat != game.AllSeats && e.Seat != s.remote.Seat {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusAbandoned {
		return
	}
	s.publisher.Publish(s.remote.Identity, e.Kind, e.Payload)
}

// arm opens the pending slot and publishes its request. It fails once the session is abandoned;
// the request is published under mu so abandon cannot slip in between.
func (s *Session) arm(kind DecisionKind, hand, legal []game.Card, event string, request any) (*decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusRunning {
		return nil, fmt.Errorf("%w: status %s", game.ErrAbandoned, s.status)
	}
	d := &decision{
		kind:  kind,
		owner: s.remote.Identity,
		hand:  hand,
		legal: legal,
		slot:  newWaiterOnce(),
	}
	s.pending = d
	s.setStatus(StatusAwaitingInput)
	s.publisher.Publish(s.remote.Identity, event, request)
	return d, nil
}

// disarm clears d if nobody filled it, e.g. when ctx ended first.
func (s *Session) disarm(d *decision) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == d {
		s.pending = nil
		if s.status == StatusAwaitingInput {
			s.setStatus(StatusRunning)
		}
	}
}

// AwaitGuess publishes request_guess and blocks until the owner answers or ctx ends.
func (s *Session) AwaitGuess(ctx context.Context, v game.View) (int, error) {
	d, err := s.arm(DecisionGuess, v.Hand, nil, game.ClnEvents.RequestGuess, game.RequestGuessPayload{
		TrumpSuit: v.Trump,
		Hand:      v.Hand,
	})
	if err != nil {
		return 0, err
	}
	defer s.disarm(d)

	val, err := d.slot.wait(ctx)
	return val.guess, err
}

// AwaitCard publishes request_card and blocks until the owner answers or ctx ends.
func (s *Session) AwaitCard(ctx context.Context, v game.View, legal []game.Card) (game.Card, error) {
	d, err := s.arm(DecisionCard, v.Hand, legal, game.ClnEvents.RequestCard, game.RequestCardPayload{
		LegalCards:   legal,
		CurrentTrick: v.CurrentTrick,
		LeadingSuit:  v.Leading,
	})
	if err != nil {
		return game.Card{}, err
	}
	defer s.disarm(d)

	val, err := d.slot.wait(ctx)
	return val.card, err
}

// SubmitGuess accepts the pending guess of identity. On error nothing changes.
func (s *Session) SubmitGuess(identity string, guess int) error {
	return s.submit(identity, DecisionGuess, func(*decision) (decisionValue, error) {
		if err := game.ValidateGuess(guess); err != nil {
			return decisionValue{}, err
		}
		return decisionValue{guess: guess}, nil
	})
}

// SubmitCard accepts the pending card of identity. On error nothing changes.
func (s *Session) SubmitCard(identity string, card game.Card) error {
	return s.submit(identity, DecisionCard, func(d *decision) (decisionValue, error) {
		if !containsCard(d.hand, card) {
			return decisionValue{}, fmt.Errorf("%w: %s not in hand", game.ErrIllegalCard, card)
		}
		if !containsCard(d.legal, card) {
			return decisionValue{}, fmt.Errorf("%w: %s", game.ErrIllegalCard, card)
		}
		return decisionValue{card: card}, nil
	})
}

// submit checks, in order: status, decision kind, owner, value. The slot is filled under mu
// so two submissions can never both pass.
func (s *Session) submit(identity string, kind DecisionKind, check func(*decision) (decisionValue, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.pending
	if s.status != StatusAwaitingInput || d == nil {
		return fmt.Errorf("%w: session is %s", ErrUnauthorizedAction, s.status)
	}
	if d.kind != kind {
		return fmt.Errorf("%w: waiting for a %s", ErrUnauthorizedAction, d.kind)
	}
	if d.owner != identity {
		return fmt.Errorf("%w: not your decision", ErrUnauthorizedAction)
	}
	v, err := check(d)
	if err != nil {
		return err
	}
	if !d.slot.unwait(v) {
		return fmt.Errorf("%w: already decided", ErrUnauthorizedAction)
	}
	s.pending = nil
	s.setStatus(StatusRunning)
	return nil
}

func containsCard(cards []game.Card, c game.Card) bool {
	for i := range cards {
		if cards[i] == c {
			return true
		}
	}
	return false
}
