package game

import (
	"context"
	"math/rand"
)

// RandomBot guesses uniformly in 0..MaxGuess and plays a uniformly random legal card.
type RandomBot struct {
	rng *rand.Rand
}

func NewRandomBot(rng *rand.Rand) *RandomBot {
	return &RandomBot{rng: rng}
}

func (b *RandomBot) Kind() Kind { return KindBot }

func (b *RandomBot) Guess(context.Context, View) (int, error) {
	return b.rng.Intn(MaxGuess + 1), nil
}

func (b *RandomBot) Play(_ context.Context, _ View, legal []Card) (Card, error) {
	return legal[b.rng.Intn(len(legal))], nil
}
