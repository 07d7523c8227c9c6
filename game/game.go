package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/lmittmann/tint"
)

// DefaultRounds rounds per game when Options.Rounds is not set
const DefaultRounds = 5

type Phase uint8

const (
	PhaseSetup Phase = iota
	PhaseGuessing
	PhaseTrick
	PhaseScoring
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseGuessing:
		return "guessing"
	case PhaseTrick:
		return "trick"
	case PhaseScoring:
		return "scoring"
	case PhaseComplete:
		return "complete"
	}
	return "unknown"
}

type (
	Options struct {
		Rounds int
		// Rng drives dealing and every random fallback; required for reproducible games
		Rng      *rand.Rand
		Dealer   Dealer
		Listener Listener
		Recorder Recorder
		Logger   *slog.Logger
		// FoldLastTrickBonus counts the +5 towards the winner's actual points instead of
		// adding it to the cumulative points directly
		FoldLastTrickBonus bool
	}

	// Game runs the rounds of one table. It is not safe for concurrent use: Run and every
	// Participant call happen on the caller's goroutine.
	Game struct {
		ID      string
		players []*Player
		seats   *SeatManager

		rounds    int
		rng       *rand.Rand
		dealer    Dealer
		listener  Listener
		recorder  Recorder
		log       *slog.Logger
		foldBonus bool

		phase   Phase
		round   int
		trump   Suit
		leading Suit
		// tricksPlayed within the current round
		tricksPlayed int
		// played grows monotonically during a round
		played  []Card
		trick   []Play
		history []string
	}
)

// New seats exactly four players in the given order.
func New(id string, players []*Player, opts Options) (*Game, error) {
	if len(players) != PlayersLimit {
		return nil, fmt.Errorf("%w: got %d", ErrSeatCount, len(players))
	}
	names := make(map[string]struct{}, len(players))
	for i, p := range players {
		if p == nil || p.Participant == nil {
			return nil, fmt.Errorf("seat %d has no participant", i)
		}
		if _, dup := names[p.Name]; dup {
			return nil, fmt.Errorf("duplicate player name %q", p.Name)
		}
		names[p.Name] = struct{}{}
	}

	if opts.Rounds <= 0 {
		opts.Rounds = DefaultRounds
	}
	if opts.Rng == nil {
		opts.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Dealer == nil {
		opts.Dealer = NewShuffleDealer(opts.Rng)
	}
	if opts.Listener == nil {
		opts.Listener = func(Event) {}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Game{
		ID:        id,
		players:   players,
		seats:     newSeatManager(players),
		rounds:    opts.Rounds,
		rng:       opts.Rng,
		dealer:    opts.Dealer,
		listener:  opts.Listener,
		recorder:  opts.Recorder,
		log:       opts.Logger.With(slog.String("game", id)),
		foldBonus: opts.FoldLastTrickBonus,
	}, nil
}

func (g *Game) Players() []*Player { return g.players }

func (g *Game) Phase() Phase { return g.phase }

func (g *Game) Rounds() int { return g.rounds }

// Names seat names in seat order.
func (g *Game) Names() []string {
	names := make([]string, len(g.players))
	for i, p := range g.players {
		names[i] = p.Name
	}
	return names
}

// Scores cumulative points in seat order.
func (g *Game) Scores() []Score {
	scores := make([]Score, len(g.players))
	for i, p := range g.players {
		scores[i] = Score{Participant: p.Name, Points: p.Points}
	}
	return scores
}

// Winner seat with the lowest cumulative points, the earlier seat on ties.
func (g *Game) Winner() *Player {
	var winner *Player
	for _, p := range g.players {
		if winner == nil || p.Points < winner.Points {
			winner = p
		}
	}
	return winner
}

// Run plays every round. Once ctx ends no further decision is asked for and Run returns
// ErrAbandoned wrapping the context error.
func (g *Game) Run(ctx context.Context) error {
	for r := 1; r <= g.rounds; r++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrAbandoned, err)
		}
		if err := g.playRound(ctx, r); err != nil {
			return err
		}
	}

	g.phase = PhaseComplete
	winner := g.Winner()
	g.emit(ClnEvents.GameComplete, AllSeats, GameCompletePayload{
		FinalScores: g.Scores(),
		Winner:      winner.Name,
	})
	g.log.Info("game complete", slog.String("winner", winner.Name), slog.Int("points", winner.Points))
	return nil
}

func (g *Game) playRound(ctx context.Context, round int) error {
	g.setup(round)

	g.phase = PhaseGuessing
	for seat, p := range g.players {
		guess, err := g.askGuess(ctx, seat)
		if err != nil {
			return err
		}
		p.Guess = guess
		g.history = append(g.history, fmt.Sprintf("%s guessed %d points", p.Name, guess))
	}

	g.phase = PhaseTrick
	// the opening leader is drawn per round, trick winners lead afterwards
	leader := g.rng.Intn(PlayersLimit)
	for k := 1; k <= NumOfCardsOnePlayer; k++ {
		winner, err := g.playTrick(ctx, k, leader)
		if err != nil {
			return err
		}
		leader = winner
	}

	return g.score(ctx)
}

// setup deals a new round and clears every per-round field.
func (g *Game) setup(round int) {
	g.phase = PhaseSetup
	g.round = round

	trump, hands := g.dealer.Deal(round)
	g.trump = trump
	g.leading = ZeroSuit
	g.tricksPlayed = 0
	g.played = make([]Card, 0, NumOfCardsInDeck)
	g.trick = nil
	g.history = nil

	for seat, p := range g.players {
		p.receiveHand(hands[seat])
		g.emit(ClnEvents.RoundStart, seat, RoundStartPayload{
			Round:     round,
			TrumpSuit: trump,
			Hand:      append([]Card(nil), p.Hand...),
		})
	}
	g.log.Debug("round start", slog.Int("round", round), slog.String("trump", trump.String()))
}

// playTrick returns the seat that won.
func (g *Game) playTrick(ctx context.Context, number, leader int) (int, error) {
	g.leading = ZeroSuit
	g.trick = make([]Play, 0, PlayersLimit)

	order := g.seats.playOrder(leader)
	names := make([]string, len(order))
	for i, item := range order {
		names[i] = item.Player.Name
	}
	g.emit(ClnEvents.TrickStart, AllSeats, TrickStartPayload{TrickNumber: number, PlayerOrder: names})

	for _, item := range order {
		seat, p := item.Seat, item.Player
		card, err := g.askCard(ctx, seat)
		if err != nil {
			return 0, err
		}
		p.Hand, _ = removeCard(p.Hand, card)
		if g.leading == ZeroSuit {
			g.leading = card.Suit
		}
		g.trick = append(g.trick, Play{Seat: seat, Participant: p.Name, Card: card})
		g.played = append(g.played, card)
		g.history = append(g.history, fmt.Sprintf("%s plays %s", p.Name, card))

		g.emit(ClnEvents.CardPlayed, AllSeats, CardPlayedPayload{
			Participant: p.Name,
			Card:        card,
			Trick:       g.currentTrick(),
		})
	}

	won := g.trick[ResolveTrick(g.trick, g.trump, g.leading)]
	winner := g.players[won.Seat]
	cards := make([]Card, len(g.trick))
	for i := range g.trick {
		cards[i] = g.trick[i].Card
	}
	winner.Tricks = append(winner.Tricks, cards)
	g.tricksPlayed++
	g.history = append(g.history, fmt.Sprintf("%s wins the trick: [%s]", winner.Name, cardsString(cards)))

	g.emit(ClnEvents.TrickComplete, AllSeats, TrickCompletePayload{Winner: winner.Name, Trick: g.currentTrick()})

	if number == NumOfCardsOnePlayer {
		if g.foldBonus {
			winner.foldedBonus = LastTrickBonus
		} else {
			winner.Points += LastTrickBonus
		}
		g.emit(ClnEvents.LastTrickBonus, AllSeats, LastTrickBonusPayload{Participant: winner.Name, Bonus: LastTrickBonus})
	}
	return won.Seat, nil
}

func (g *Game) score(ctx context.Context) error {
	g.phase = PhaseScoring

	captured := 0
	for _, p := range g.players {
		captured += p.CapturedPoints(g.trump)
	}
	if captured != TotalCardPoints {
		err := fmt.Errorf("%w: round %d captured %d", ErrPointTotal, g.round, captured)
		g.log.Error("round invariant violated", tint.Err(err))
		return err
	}

	results := ScoreRound(g.players, g.trump)
	scores := g.Scores()

	g.emit(ClnEvents.RoundComplete, AllSeats, RoundCompletePayload{Round: g.round, Scores: scores})
	g.emit(ClnEvents.RoundGuessResults, AllSeats, RoundGuessResultsPayload{Round: g.round, PerParticipant: results})

	if g.recorder != nil {
		rec := RoundRecord{GameID: g.ID, Round: g.round, Scores: scores, At: time.Now()}
		if err := g.recorder.Record(ctx, rec); err != nil {
			g.log.Warn("round record not stored", slog.Int("round", g.round), tint.Err(err))
		}
	}

	for _, p := range g.players {
		p.clearRound()
	}
	g.leading = ZeroSuit
	g.trick = nil
	g.played = nil
	g.history = nil
	return nil
}

// askGuess falls back to a uniform random guess when the participant fails or answers out
// of range. Only a finished context or a participant reporting ErrAbandoned ends the game.
func (g *Game) askGuess(ctx context.Context, seat int) (int, error) {
	p := g.players[seat]
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrAbandoned, err)
	}
	guess, err := p.Participant.Guess(ctx, g.view(seat))
	if err == nil {
		err = ValidateGuess(guess)
	}
	if err == nil {
		return guess, nil
	}
	if IsAbandoned(err) {
		return 0, err
	}
	if cerr := ctx.Err(); cerr != nil {
		return 0, fmt.Errorf("%w: %w", ErrAbandoned, cerr)
	}

	guess = g.rng.Intn(MaxGuess + 1)
	g.log.Warn("guess replaced",
		slog.String("player", p.Name),
		slog.String("kind", p.Participant.Kind().String()),
		slog.Int("guess", guess),
		tint.Err(err))
	return guess, nil
}

// askCard falls back to a uniform random legal card when the participant fails or answers
// with a card it may not play.
func (g *Game) askCard(ctx context.Context, seat int) (Card, error) {
	p := g.players[seat]
	if err := ctx.Err(); err != nil {
		return Card{}, fmt.Errorf("%w: %w", ErrAbandoned, err)
	}
	legal := LegalCards(p.Hand, g.leading, g.trump)

	card, err := p.Participant.Play(ctx, g.view(seat), append([]Card(nil), legal...))
	if err == nil && !IsLegal(p.Hand, card, g.leading, g.trump) {
		err = fmt.Errorf("%w: %s", ErrIllegalCard, card)
	}
	if err == nil {
		return card, nil
	}
	if IsAbandoned(err) {
		return Card{}, err
	}
	if cerr := ctx.Err(); cerr != nil {
		return Card{}, fmt.Errorf("%w: %w", ErrAbandoned, cerr)
	}

	card = legal[g.rng.Intn(len(legal))]
	g.log.Warn("card replaced",
		slog.String("player", p.Name),
		slog.String("kind", p.Participant.Kind().String()),
		slog.String("card", card.String()),
		tint.Err(err))
	return card, nil
}

func (g *Game) view(seat int) View {
	p := g.players[seat]
	return View{
		GameID:       g.ID,
		Round:        g.round,
		Rounds:       g.rounds,
		Seat:         seat,
		Name:         p.Name,
		Trump:        g.trump,
		Leading:      g.leading,
		Hand:         append([]Card(nil), p.Hand...),
		CurrentTrick: g.currentTrick(),
		Played:       append([]Card(nil), g.played...),
		History:      append([]string(nil), g.history...),
		Participants: g.Names(),
	}
}

func (g *Game) currentTrick() []Play {
	return append([]Play(nil), g.trick...)
}

func (g *Game) emit(kind string, seat int, payload any) {
	g.listener(Event{Kind: kind, Seat: seat, Payload: payload})
}

// IsAbandoned reports whether err ended a game because its context finished.
func IsAbandoned(err error) bool {
	return errors.Is(err, ErrAbandoned)
}
