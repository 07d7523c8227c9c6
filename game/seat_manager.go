package game

import (
	"container/ring"
)

type (
	seatItem struct {
		Seat   int
		Player *Player
	}

	// SeatManager ring of the four seats in clockwise order. The current element is the seat
	// that plays next; it is only touched by the game goroutine.
	SeatManager struct {
		*ring.Ring
	}
)

func newSeatManager(players []*Player) *SeatManager {
	r := ring.New(len(players))
	for i := range players {
		r.Value = &seatItem{Seat: i, Player: players[i]}
		r = r.Next()
	}
	// ref the current seat is 0
	return &SeatManager{Ring: r}
}

func (mgr *SeatManager) current() *seatItem {
	return mgr.Value.(*seatItem)
}

// moveTo turns the ring until seat is current.
func (mgr *SeatManager) moveTo(seat int) {
	for i := 0; i < mgr.Len() && mgr.current().Seat != seat; i++ {
		mgr.Ring = mgr.Next()
	}
}

// playOrder every seat once, starting at leader. The ring is left at leader.
func (mgr *SeatManager) playOrder(leader int) []*seatItem {
	mgr.moveTo(leader)
	order := make([]*seatItem, 0, mgr.Len())
	mgr.Do(func(v any) {
		order = append(order, v.(*seatItem))
	})
	return order
}
