package game

import "context"

// Decider hands a decision to someone outside the game loop and blocks until it arrives
// or ctx ends.
type Decider interface {
	AwaitGuess(ctx context.Context, v View) (int, error)
	AwaitCard(ctx context.Context, v View, legal []Card) (Card, error)
}

// RemotePlayer seat played over the network; every decision goes through its Decider.
type RemotePlayer struct {
	decider Decider
}

func NewRemotePlayer(d Decider) *RemotePlayer {
	return &RemotePlayer{decider: d}
}

func (r *RemotePlayer) Kind() Kind { return KindRemote }

func (r *RemotePlayer) Guess(ctx context.Context, v View) (int, error) {
	return r.decider.AwaitGuess(ctx, v)
}

func (r *RemotePlayer) Play(ctx context.Context, v View, legal []Card) (Card, error) {
	return r.decider.AwaitCard(ctx, v, legal)
}
