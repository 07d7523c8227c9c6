package differenzler

import (
	"context"
	"sync/atomic"

	"differenzler/game"
)

// decisionValue what a remote participant answered
type decisionValue struct {
	guess int
	card  game.Card
}

// waitOnce one-shot slot: filled at most once, waited on by the game loop.
type waitOnce struct {
	filled *uint32
	ready  *uint32

	value   decisionValue
	channel chan struct{}
}

func newWaiterOnce() *waitOnce {
	return &waitOnce{
		filled:  new(uint32),
		ready:   new(uint32),
		channel: make(chan struct{}),
	}
}

func (w *waitOnce) isReady() bool {
	return atomic.LoadUint32(w.ready) > 0
}

// wait blocks until unwait or ctx ends.
func (w *waitOnce) wait(ctx context.Context) (decisionValue, error) {
	if w.isReady() {
		return w.value, nil
	}
	select {
	case <-w.channel:
		return w.value, nil
	case <-ctx.Done():
		return decisionValue{}, ctx.Err()
	}
}

// unwait fills the slot; only the first call wins.
func (w *waitOnce) unwait(v decisionValue) bool {
	if !atomic.CompareAndSwapUint32(w.filled, 0, 1) {
		return false
	}
	w.value = v
	atomic.StoreUint32(w.ready, 1)
	close(w.channel)
	return true
}
