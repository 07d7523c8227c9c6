package game

import "fmt"

// Play one card put on the table by a seat
type Play struct {
	Seat        int    `json:"-"`
	Participant string `json:"participant"`
	Card        Card   `json:"card"`
}

// LegalCards returns the cards of hand that may be played on the current trick.
//
//   - no leading suit yet: the whole hand
//   - the trump Jack is the only trump held and no card of the leading suit: the whole hand
//   - otherwise the leading suit and trump cards held, ordered by suit then rank
//   - none of either: the whole hand
//
// The result is a fresh slice and never empty for a non-empty hand.
func LegalCards(hand []Card, leading, trump Suit) []Card {
	all := append([]Card(nil), hand...)
	if leading == ZeroSuit {
		return all
	}

	var (
		union    = make([]Card, 0, len(hand))
		follow   int
		trumps   int
		loneJack bool
	)
	for _, c := range hand {
		if c.Suit == leading {
			follow++
		}
		if c.Suit == trump {
			trumps++
			loneJack = c.Rank == Jack
		}
		if c.Suit == leading || c.Suit == trump {
			union = append(union, c)
		}
	}

	if trumps == 1 && loneJack && follow == 0 {
		return all
	}
	if len(union) == 0 {
		return all
	}
	SortCards(union)
	return union
}

// IsLegal reports whether card may be played from hand.
func IsLegal(hand []Card, card Card, leading, trump Suit) bool {
	if !containsCard(hand, card) {
		return false
	}
	return containsCard(LegalCards(hand, leading, trump), card)
}

// ResolveTrick returns the index of the winning play. Strengths are unique inside one trick,
// the first maximum wins. trick must not be empty.
func ResolveTrick(trick []Play, trump, leading Suit) int {
	best, bestStrength := 0, -1
	for i := range trick {
		if s := trick[i].Card.Strength(trump, leading); s > bestStrength {
			best, bestStrength = i, s
		}
	}
	return best
}

// TrickPoints card points of one trick.
func TrickPoints(cards []Card, trump Suit) int {
	total := 0
	for _, c := range cards {
		total += c.PointValue(trump)
	}
	return total
}

// ValidateGuess accepts 0..MaxGuess.
func ValidateGuess(guess int) error {
	if guess < 0 || guess > MaxGuess {
		return fmt.Errorf("%w: %d", ErrInvalidGuess, guess)
	}
	return nil
}

// Penalty |guess - actual|
func Penalty(guess, actual int) int {
	if guess > actual {
		return guess - actual
	}
	return actual - guess
}

// GuessResult one seat's round outcome.
type GuessResult struct {
	Participant string `json:"participant"`
	Guess       int    `json:"guess"`
	Actual      int    `json:"actual"`
	Difference  int    `json:"difference"`
}

// ScoreRound adds each player's penalty to the cumulative points.
// actual counts captured card points, plus the last trick bonus already credited when the
// bonus is folded into the round result.
func ScoreRound(players []*Player, trump Suit) []GuessResult {
	results := make([]GuessResult, 0, len(players))
	for _, p := range players {
		actual := p.CapturedPoints(trump) + p.foldedBonus
		diff := Penalty(p.Guess, actual)
		p.Points += diff
		results = append(results, GuessResult{
			Participant: p.Name,
			Guess:       p.Guess,
			Actual:      actual,
			Difference:  diff,
		})
	}
	return results
}
