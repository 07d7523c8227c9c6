package game

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

const (
	// NumOfCardsInDeck Swiss-German deck, 4 suits x 9 ranks
	NumOfCardsInDeck int = 36
	// NumOfCardsOnePlayer cards per seat per round, also the number of tricks per round
	NumOfCardsOnePlayer int = 9
	// PlayersLimit seats at a table
	PlayersLimit int = 4

	// TotalCardPoints sum of all card values in one round, independent of trump
	TotalCardPoints int = 152
	// LastTrickBonus flat bonus for the winner of the final trick
	LastTrickBonus int = 5
	// MaxGuess highest legal guess (card points plus last trick bonus)
	MaxGuess int = TotalCardPoints + LastTrickBonus
)

type (
	Suit uint8
	Rank uint8
)

const (
	// ZeroSuit leading suit not yet set
	ZeroSuit Suit = iota
	Schellen
	Eicheln
	Schilten
	Rosen
)

const (
	Six   Rank = 6
	Seven Rank = 7
	Eight Rank = 8
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

var (
	Suits = [4]Suit{Schellen, Eicheln, Schilten, Rosen}
	Ranks = [9]Rank{Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

	suitNames = map[Suit]string{
		Schellen: "Schellen",
		Eicheln:  "Eicheln",
		Schilten: "Schilten",
		Rosen:    "Rosen",
	}
	rankNames = map[Rank]string{
		Six:   "Six",
		Seven: "Seven",
		Eight: "Eight",
		Nine:  "Nine",
		Ten:   "Ten",
		Jack:  "Jack",
		Queen: "Queen",
		King:  "King",
		Ace:   "Ace",
	}

	// plainOrder rank order of a non-trump suit (Ace high)
	plainOrder = map[Rank]int{
		Ace: 8, King: 7, Queen: 6, Jack: 5, Ten: 4, Nine: 3, Eight: 2, Seven: 1, Six: 0,
	}
	// trumpOrder rank order inside the trump suit (Jack, then Nine, then Ace)
	trumpOrder = map[Rank]int{
		Jack: 8, Nine: 7, Ace: 6, King: 5, Queen: 4, Ten: 3, Eight: 2, Seven: 1, Six: 0,
	}
	trumpPoints = map[Rank]int{
		Jack: 20, Nine: 14, Ace: 11, Ten: 10, King: 4, Queen: 3,
	}
	plainPoints = map[Rank]int{
		Ace: 11, Ten: 10, King: 4, Queen: 3, Jack: 2,
	}
)

func (s Suit) String() string {
	if name, ok := suitNames[s]; ok {
		return name
	}
	return "None"
}

// Key upper-case wire name, e.g. ROSEN
func (s Suit) Key() string {
	return strings.ToUpper(s.String())
}

func (s Suit) Valid() bool {
	_, ok := suitNames[s]
	return ok
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Rank(%d)", uint8(r))
}

// Key upper-case wire name, e.g. JACK
func (r Rank) Key() string {
	return strings.ToUpper(r.String())
}

func (r Rank) Valid() bool {
	_, ok := rankNames[r]
	return ok
}

// ParseSuit accepts the suit name in any case.
func ParseSuit(s string) (Suit, error) {
	s = strings.TrimSpace(s)
	for suit, name := range suitNames {
		if strings.EqualFold(name, s) {
			return suit, nil
		}
	}
	return ZeroSuit, fmt.Errorf("%w: %q", ErrUnknownSuit, s)
}

// ParseRank accepts the rank name (SIX..ACE) in any case, or its numeric value 6..14.
func ParseRank(s string) (Rank, error) {
	s = strings.TrimSpace(s)
	for rank, name := range rankNames {
		if strings.EqualFold(name, s) || fmt.Sprint(uint8(rank)) == s {
			return rank, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRank, s)
}

// Card immutable suit/rank pair, compared by value
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard validates suit and rank.
func NewCard(suit Suit, rank Rank) (Card, error) {
	if !suit.Valid() {
		return Card{}, fmt.Errorf("%w: %d", ErrUnknownSuit, suit)
	}
	if !rank.Valid() {
		return Card{}, fmt.Errorf("%w: %d", ErrUnknownRank, rank)
	}
	return Card{Suit: suit, Rank: rank}, nil
}

// ParseCard reads the "Rank-Suit" form used in prompts, e.g. "Jack-Schilten".
func ParseCard(s string) (Card, error) {
	s = strings.Trim(strings.TrimSpace(s), `"'.`)
	rank, suit, ok := strings.Cut(s, "-")
	if !ok {
		return Card{}, fmt.Errorf("%w: %q is not Rank-Suit", ErrUnknownRank, s)
	}
	r, err := ParseRank(rank)
	if err != nil {
		return Card{}, err
	}
	st, err := ParseSuit(suit)
	if err != nil {
		return Card{}, err
	}
	return Card{Suit: st, Rank: r}, nil
}

func (c Card) String() string {
	return c.Rank.String() + "-" + c.Suit.String()
}

// Strength trump 100+, leading suit 50+, anything else its plain order.
func (c Card) Strength(trump, leading Suit) int {
	switch c.Suit {
	case trump:
		return 100 + trumpOrder[c.Rank]
	case leading:
		return 50 + plainOrder[c.Rank]
	default:
		return plainOrder[c.Rank]
	}
}

// PointValue card points under the given trump.
func (c Card) PointValue(trump Suit) int {
	if c.Suit == trump {
		return trumpPoints[c.Rank]
	}
	return plainPoints[c.Rank]
}

// SortCards orders by suit then rank, stable.
func SortCards(cards []Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		if cards[i].Suit != cards[j].Suit {
			return cards[i].Suit < cards[j].Suit
		}
		return cards[i].Rank < cards[j].Rank
	})
}

func containsCard(cards []Card, c Card) bool {
	for i := range cards {
		if cards[i] == c {
			return true
		}
	}
	return false
}

func removeCard(cards []Card, c Card) ([]Card, bool) {
	for i := range cards {
		if cards[i] == c {
			return append(cards[:i:i], cards[i+1:]...), true
		}
	}
	return cards, false
}

func cardsString(cards []Card) string {
	names := make([]string, 0, len(cards))
	for i := range cards {
		names = append(names, cards[i].String())
	}
	return strings.Join(names, ", ")
}

func (s Suit) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return []byte{}, nil
	}
	return []byte(s.Key()), nil
}

func (s *Suit) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*s = ZeroSuit
		return nil
	}
	v, err := ParseSuit(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (r Rank) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRank, r)
	}
	return []byte(r.Key()), nil
}

func (r *Rank) UnmarshalText(text []byte) error {
	v, err := ParseRank(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// cardJSON wire form {suit, rank, value}
type cardJSON struct {
	Suit  Suit  `json:"suit"`
	Rank  *Rank `json:"rank,omitempty"`
	Value uint8 `json:"value,omitempty"`
}

func (c Card) MarshalJSON() ([]byte, error) {
	rank := c.Rank
	return json.Marshal(cardJSON{Suit: c.Suit, Rank: &rank, Value: uint8(c.Rank)})
}

// UnmarshalJSON rank wins over value when both are present.
func (c *Card) UnmarshalJSON(data []byte) error {
	var v cardJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	rank := Rank(v.Value)
	if v.Rank != nil {
		rank = *v.Rank
	}
	card, err := NewCard(v.Suit, rank)
	if err != nil {
		return err
	}
	*c = card
	return nil
}
