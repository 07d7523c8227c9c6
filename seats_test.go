package differenzler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"differenzler/config"
	"differenzler/game"
)

func TestSeatFactoryBuildsConfiguredSeats(t *testing.T) {
	cfg := config.Default()
	cfg.Rounds = 2
	cfg.Seed = 11
	cfg.FoldLastTrickBonus = true
	cfg.Seats[1] = config.Seat{Name: "Oracle", Kind: config.SeatAdvisor, Model: "m", BaseURL: "http://127.0.0.1:1"}

	f := NewSeatFactory(cfg, nil, quietLog())
	players, opts := f.Build()

	require.Len(t, players, 3)
	assert.Equal(t, []string{"Bot 1", "Oracle", "Bot 3"}, f.Names())
	assert.Equal(t, game.KindBot, players[0].Participant.Kind())
	assert.Equal(t, game.KindAdvisor, players[1].Participant.Kind())
	assert.Equal(t, 2, opts.Rounds)
	assert.True(t, opts.FoldLastTrickBonus)
	require.NotNil(t, opts.Rng)
}

func TestSeatFactorySeedsPerSession(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 5

	a := NewSeatFactory(cfg, nil, quietLog())
	b := NewSeatFactory(cfg, nil, quietLog())

	_, first := a.Build()
	_, again := b.Build()
	assert.Equal(t, first.Rng.Int63(), again.Rng.Int63())

	_, second := a.Build()
	_, secondAgain := b.Build()
	assert.Equal(t, second.Rng.Int63(), secondAgain.Rng.Int63())
}
