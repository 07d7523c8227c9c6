package game

import "context"

// Kind closed set of participant variants
type Kind uint8

const (
	KindBot Kind = iota + 1
	KindLocal
	KindRemote
	KindAdvisor
)

func (k Kind) String() string {
	switch k {
	case KindBot:
		return "bot"
	case KindLocal:
		return "local"
	case KindRemote:
		return "remote"
	case KindAdvisor:
		return "advisor"
	}
	return "unknown"
}

// Participant decision source of one seat.
// Play receives the legal cards and should return one of them; the game replaces anything else
// with a random legal card.
type Participant interface {
	Kind() Kind
	Guess(ctx context.Context, v View) (int, error)
	Play(ctx context.Context, v View, legal []Card) (Card, error)
}

// View what a participant may see when deciding. Slices are copies.
type View struct {
	GameID       string
	Round        int
	Rounds       int
	Seat         int
	Name         string
	Trump        Suit
	Leading      Suit
	Hand         []Card
	CurrentTrick []Play
	Played       []Card
	History      []string
	Participants []string
}

// Player one seat: identity, round state, cumulative penalty points
type Player struct {
	Name        string
	Participant Participant

	Hand   []Card
	Tricks [][]Card
	Guess  int
	// Points cumulative, never reset during a game
	Points int

	foldedBonus int
}

func NewPlayer(name string, p Participant) *Player {
	return &Player{Name: name, Participant: p}
}

// CapturedPoints card points of every trick won this round.
func (p *Player) CapturedPoints(trump Suit) int {
	total := 0
	for _, trick := range p.Tricks {
		total += TrickPoints(trick, trump)
	}
	return total
}

func (p *Player) receiveHand(hand []Card) {
	p.Hand = append([]Card(nil), hand...)
	SortCards(p.Hand)
	p.Tricks = nil
	p.Guess = 0
	p.foldedBonus = 0
}

func (p *Player) clearRound() {
	p.Hand = nil
	p.Tricks = nil
	p.foldedBonus = 0
}
