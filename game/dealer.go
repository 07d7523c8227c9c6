package game

import (
	"math/rand"
)

// Dealer supplies trump and the four hands of a round.
type Dealer interface {
	Deal(round int) (trump Suit, hands [PlayersLimit][]Card)
}

// NewDeck one card of every suit/rank combination, ordered by suit then rank
func NewDeck() [NumOfCardsInDeck]Card {
	var deck [NumOfCardsInDeck]Card
	i := 0
	for _, s := range Suits {
		for _, r := range Ranks {
			deck[i] = Card{Suit: s, Rank: r}
			i++
		}
	}
	return deck
}

// ShuffleDealer shuffles a fresh deck each round and picks trump uniformly at random.
type ShuffleDealer struct {
	rng *rand.Rand
}

func NewShuffleDealer(rng *rand.Rand) *ShuffleDealer {
	return &ShuffleDealer{rng: rng}
}

func (d *ShuffleDealer) Deal(int) (Suit, [PlayersLimit][]Card) {
	deck := NewDeck()
	d.rng.Shuffle(NumOfCardsInDeck, func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	trump := Suits[d.rng.Intn(len(Suits))]
	hands := split(deck)
	return trump, hands
}

// FixedDealer deals the same trump and hands every round.
type FixedDealer struct {
	Trump Suit
	Hands [PlayersLimit][]Card
}

func (d FixedDealer) Deal(int) (Suit, [PlayersLimit][]Card) {
	var hands [PlayersLimit][]Card
	for i := range d.Hands {
		hands[i] = append([]Card(nil), d.Hands[i]...)
		SortCards(hands[i])
	}
	return d.Trump, hands
}

// split cuts the deck into four sorted, disjoint hands of nine.
func split(deck [NumOfCardsInDeck]Card) [PlayersLimit][]Card {
	var hands [PlayersLimit][]Card
	for seat := 0; seat < PlayersLimit; seat++ {
		from := seat * NumOfCardsOnePlayer
		hand := make([]Card, NumOfCardsOnePlayer)
		copy(hand, deck[from:from+NumOfCardsOnePlayer])
		SortCards(hand)
		hands[seat] = hand
	}
	return hands
}
