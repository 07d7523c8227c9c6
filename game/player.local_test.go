package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedPrompter replays answers in order.
type scriptedPrompter struct {
	answers []string
	notices []string
	options [][]string
}

func (s *scriptedPrompter) next() string {
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a
}

func (s *scriptedPrompter) Input(string) (string, error) { return s.next(), nil }

func (s *scriptedPrompter) Select(_ string, options []string) (string, error) {
	s.options = append(s.options, options)
	return s.next(), nil
}

func (s *scriptedPrompter) Notice(msg string) { s.notices = append(s.notices, msg) }

func TestLocalPlayerGuessRetries(t *testing.T) {
	p := &scriptedPrompter{answers: []string{"lots", "200", " 61 "}}
	l := NewLocalPlayer(p)

	guess, err := l.Guess(context.Background(), View{Name: "me", Trump: Rosen})
	require.NoError(t, err)
	assert.Equal(t, 61, guess)
	assert.Contains(t, p.notices, "Enter a number.")
	assert.Contains(t, p.notices, "Guess must be between 0 and 157")
}

func TestLocalPlayerPlayOffersLegalCards(t *testing.T) {
	p := &scriptedPrompter{answers: []string{"King-Rosen", "Ace-Schellen"}}
	l := NewLocalPlayer(p)
	legal := []Card{{Schellen, Six}, {Schellen, Ace}}

	card, err := l.Play(context.Background(), View{Hand: append(legal, Card{Rosen, King})}, legal)
	require.NoError(t, err)
	assert.Equal(t, Card{Schellen, Ace}, card)
	assert.Equal(t, []string{"Six-Schellen", "Ace-Schellen"}, p.options[0])
	assert.Contains(t, p.notices, "Invalid choice. Try again.")
}
