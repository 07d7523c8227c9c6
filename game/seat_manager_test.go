package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seatsOf(items []*seatItem) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.Seat
	}
	return out
}

func TestSeatManagerPlayOrder(t *testing.T) {
	mgr := newSeatManager(newPlayers(0, 0, 0, 0))

	assert.Equal(t, []int{0, 1, 2, 3}, seatsOf(mgr.playOrder(0)))
	assert.Equal(t, []int{2, 3, 0, 1}, seatsOf(mgr.playOrder(2)))
	assert.Equal(t, []int{1, 2, 3, 0}, seatsOf(mgr.playOrder(1)))

	order := mgr.playOrder(3)
	assert.Equal(t, []int{3, 0, 1, 2}, seatsOf(order))
	assert.Equal(t, "P3", order[0].Player.Name)
	assert.Equal(t, 3, mgr.current().Seat)
}
