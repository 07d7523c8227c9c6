package differenzler

import (
	"log/slog"
	"math/rand"
	"sync/atomic"
	"time"

	"differenzler/advisor"
	"differenzler/config"
	"differenzler/game"
)

// SeatFactory builds the opponents and game options of every new session from configuration.
type SeatFactory struct {
	seats     []config.Seat
	rounds    int
	seed      int64
	foldBonus bool
	recorder  game.Recorder
	log       *slog.Logger

	// generator builds the text backend of an advisor seat
	generator func(config.Seat) game.Generator
	seq       atomic.Int64
}

func NewSeatFactory(cfg *config.Config, recorder game.Recorder, log *slog.Logger) *SeatFactory {
	if log == nil {
		log = slog.Default()
	}
	return &SeatFactory{
		seats:     cfg.Seats,
		rounds:    cfg.Rounds,
		seed:      cfg.Seed,
		foldBonus: cfg.FoldLastTrickBonus,
		recorder:  recorder,
		log:       log,
		generator: func(s config.Seat) game.Generator {
			c := advisor.New(s.BaseURL, s.Model, s.APIKey())
			if s.MaxTokens > 0 {
				c.MaxTokens = s.MaxTokens
			}
			return c
		},
	}
}

// Build one rng per session: a fixed seed gives seed, seed+1, ... in session order.
func (f *SeatFactory) Build() ([]*game.Player, game.Options) {
	n := f.seq.Add(1) - 1
	seed := time.Now().UnixNano()
	if f.seed != 0 {
		seed = f.seed + n
	}
	rng := rand.New(rand.NewSource(seed))

	players := make([]*game.Player, 0, len(f.seats))
	for _, s := range f.seats {
		var p game.Participant
		switch s.Kind {
		case config.SeatAdvisor:
			p = game.NewAdvisorPlayer(f.generator(s), rng, f.log.With(slog.String("seat", s.Name)))
		default:
			p = game.NewRandomBot(rng)
		}
		players = append(players, game.NewPlayer(s.Name, p))
	}

	return players, game.Options{
		Rounds:             f.rounds,
		Rng:                rng,
		Recorder:           f.recorder,
		FoldLastTrickBonus: f.foldBonus,
	}
}

// Names opponent names in seat order.
func (f *SeatFactory) Names() []string {
	names := make([]string, len(f.seats))
	for i, s := range f.seats {
		names[i] = s.Name
	}
	return names
}
