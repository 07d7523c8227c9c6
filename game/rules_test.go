package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cards(cs ...Card) []Card { return cs }

func TestLegalCards(t *testing.T) {
	tests := []struct {
		name    string
		hand    []Card
		leading Suit
		trump   Suit
		want    []Card
	}{
		{
			name:    "no leading suit, whole hand",
			hand:    cards(Card{Rosen, Six}, Card{Schellen, Ace}),
			leading: ZeroSuit,
			trump:   Rosen,
			want:    cards(Card{Rosen, Six}, Card{Schellen, Ace}),
		},
		{
			name:    "follow suit or trump",
			hand:    cards(Card{Schellen, Ace}, Card{Eicheln, Six}, Card{Rosen, King}, Card{Schellen, Six}),
			leading: Schellen,
			trump:   Rosen,
			want:    cards(Card{Schellen, Six}, Card{Schellen, Ace}, Card{Rosen, King}),
		},
		{
			name:    "lone trump jack without leading suit frees the hand",
			hand:    cards(Card{Eicheln, Six}, Card{Rosen, Jack}, Card{Schilten, Ace}),
			leading: Schellen,
			trump:   Rosen,
			want:    cards(Card{Eicheln, Six}, Card{Rosen, Jack}, Card{Schilten, Ace}),
		},
		{
			name:    "lone trump jack with leading suit must follow",
			hand:    cards(Card{Schellen, Six}, Card{Rosen, Jack}, Card{Schilten, Ace}),
			leading: Schellen,
			trump:   Rosen,
			want:    cards(Card{Schellen, Six}, Card{Rosen, Jack}),
		},
		{
			name:    "jack with another trump is no exemption",
			hand:    cards(Card{Eicheln, Six}, Card{Rosen, Jack}, Card{Rosen, Six}),
			leading: Schellen,
			trump:   Rosen,
			want:    cards(Card{Rosen, Six}, Card{Rosen, Jack}),
		},
		{
			name:    "trump only when leading suit missing",
			hand:    cards(Card{Eicheln, Six}, Card{Rosen, Ten}),
			leading: Schellen,
			trump:   Rosen,
			want:    cards(Card{Rosen, Ten}),
		},
		{
			name:    "neither suit, whole hand",
			hand:    cards(Card{Eicheln, Six}, Card{Schilten, Ten}),
			leading: Schellen,
			trump:   Rosen,
			want:    cards(Card{Eicheln, Six}, Card{Schilten, Ten}),
		},
		{
			name:    "trump led",
			hand:    cards(Card{Eicheln, Six}, Card{Rosen, Ten}, Card{Rosen, Six}),
			leading: Rosen,
			trump:   Rosen,
			want:    cards(Card{Rosen, Six}, Card{Rosen, Ten}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LegalCards(tt.hand, tt.leading, tt.trump))
		})
	}
}

func TestLegalCardsNonEmptySubset(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		deck := NewDeck()
		rng.Shuffle(len(deck), func(a, b int) { deck[a], deck[b] = deck[b], deck[a] })
		hand := deck[:1+rng.Intn(NumOfCardsOnePlayer)]
		trump := Suits[rng.Intn(4)]
		leading := Suit(rng.Intn(5)) // ZeroSuit included

		legal := LegalCards(hand, leading, trump)
		require.NotEmpty(t, legal)
		for _, c := range legal {
			require.Contains(t, hand, c)
		}
		if leading == ZeroSuit {
			require.ElementsMatch(t, hand, legal)
		}
	}
}

func TestLegalCardsDoesNotAliasHand(t *testing.T) {
	hand := cards(Card{Rosen, Ace}, Card{Schellen, Six})
	legal := LegalCards(hand, ZeroSuit, Rosen)
	legal[0] = Card{Eicheln, Six}
	assert.Equal(t, Card{Rosen, Ace}, hand[0])
}

func TestIsLegal(t *testing.T) {
	hand := cards(Card{Schellen, Ace}, Card{Eicheln, Six}, Card{Rosen, King})

	assert.True(t, IsLegal(hand, Card{Eicheln, Six}, ZeroSuit, Rosen))
	assert.True(t, IsLegal(hand, Card{Schellen, Ace}, Schellen, Rosen))
	assert.True(t, IsLegal(hand, Card{Rosen, King}, Schellen, Rosen))
	// must follow Schellen or trump
	assert.False(t, IsLegal(hand, Card{Eicheln, Six}, Schellen, Rosen))
	// not held
	assert.False(t, IsLegal(hand, Card{Schilten, Ace}, ZeroSuit, Rosen))
}

func TestResolveTrick(t *testing.T) {
	trick := []Play{
		{Seat: 0, Participant: "a", Card: Card{Schellen, Ten}},
		{Seat: 1, Participant: "b", Card: Card{Schellen, Ace}},
		{Seat: 2, Participant: "c", Card: Card{Eicheln, Ace}},
		{Seat: 3, Participant: "d", Card: Card{Schellen, King}},
	}
	for i := 0; i < 10; i++ {
		assert.Equal(t, 1, ResolveTrick(trick, Rosen, Schellen))
	}

	// a low trump beats the leading ace
	trick[2].Card = Card{Rosen, Six}
	w := ResolveTrick(trick, Rosen, Schellen)
	assert.Equal(t, 2, w)
	for i := range trick {
		if i != w {
			assert.Greater(t, trick[w].Card.Strength(Rosen, Schellen), trick[i].Card.Strength(Rosen, Schellen))
		}
	}

	// trump nine loses to the trump jack only
	trick[0].Card = Card{Rosen, Nine}
	trick[3].Card = Card{Rosen, Jack}
	assert.Equal(t, 3, ResolveTrick(trick, Rosen, Rosen))
}

func TestResolveTrickRandomTricksHaveStrictWinner(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		deck := NewDeck()
		rng.Shuffle(len(deck), func(a, b int) { deck[a], deck[b] = deck[b], deck[a] })
		trump := Suits[rng.Intn(4)]
		trick := make([]Play, PlayersLimit)
		for s := range trick {
			trick[s] = Play{Seat: s, Card: deck[s]}
		}
		leading := trick[0].Card.Suit
		w := ResolveTrick(trick, trump, leading)
		require.Equal(t, w, ResolveTrick(trick, trump, leading))
		for s := range trick {
			if s != w {
				require.Greater(t, trick[w].Card.Strength(trump, leading), trick[s].Card.Strength(trump, leading))
			}
		}
	}
}

func TestValidateGuess(t *testing.T) {
	for g := 0; g <= MaxGuess; g++ {
		require.NoError(t, ValidateGuess(g))
	}
	for _, g := range []int{-1, -100, MaxGuess + 1, 1000} {
		assert.ErrorIs(t, ValidateGuess(g), ErrInvalidGuess, g)
	}
}

func TestScoreRound(t *testing.T) {
	a := &Player{Name: "a", Guess: 30, Points: 4}
	a.Tricks = [][]Card{{{Rosen, Jack}, {Rosen, Nine}, {Schellen, Six}, {Eicheln, Six}}}
	b := &Player{Name: "b", Guess: 0, foldedBonus: LastTrickBonus}

	results := ScoreRound([]*Player{a, b}, Rosen)
	assert.Equal(t, []GuessResult{
		{Participant: "a", Guess: 30, Actual: 34, Difference: 4},
		{Participant: "b", Guess: 0, Actual: 5, Difference: 5},
	}, results)
	assert.Equal(t, 8, a.Points)
	assert.Equal(t, 5, b.Points)
}
