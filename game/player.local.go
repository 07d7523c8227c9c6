package game

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Prompter terminal I/O for a local human.
type Prompter interface {
	// Input reads one line of free text.
	Input(title string) (string, error)
	// Select lets the user pick one of options.
	Select(title string, options []string) (string, error)
	// Notice shows a message that needs no answer.
	Notice(msg string)
}

// LocalPlayer human at the local terminal; blocks the game loop while deciding.
type LocalPlayer struct {
	prompt Prompter
}

func NewLocalPlayer(p Prompter) *LocalPlayer {
	return &LocalPlayer{prompt: p}
}

func (l *LocalPlayer) Kind() Kind { return KindLocal }

// Guess asks until the answer is a number in range.
func (l *LocalPlayer) Guess(ctx context.Context, v View) (int, error) {
	l.prompt.Notice(fmt.Sprintf("Trump: %s\nYour hand: %s", v.Trump, cardsString(v.Hand)))
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		text, err := l.prompt.Input(fmt.Sprintf("%s, guess your points (0-%d)", v.Name, MaxGuess))
		if err != nil {
			return 0, err
		}
		guess, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			l.prompt.Notice("Enter a number.")
			continue
		}
		if err = ValidateGuess(guess); err != nil {
			l.prompt.Notice(fmt.Sprintf("Guess must be between 0 and %d", MaxGuess))
			continue
		}
		return guess, nil
	}
}

// Play offers the legal cards only.
func (l *LocalPlayer) Play(ctx context.Context, v View, legal []Card) (Card, error) {
	if err := ctx.Err(); err != nil {
		return Card{}, err
	}
	if len(v.CurrentTrick) > 0 {
		table := make([]string, 0, len(v.CurrentTrick))
		for _, p := range v.CurrentTrick {
			table = append(table, p.Participant+": "+p.Card.String())
		}
		l.prompt.Notice("On the table: " + strings.Join(table, ", "))
	}
	l.prompt.Notice(fmt.Sprintf("Trump: %s\nYour hand: %s", v.Trump, cardsString(v.Hand)))

	options := make([]string, len(legal))
	for i := range legal {
		options[i] = legal[i].String()
	}
	for {
		if err := ctx.Err(); err != nil {
			return Card{}, err
		}
		choice, err := l.prompt.Select("Play a card", options)
		if err != nil {
			return Card{}, err
		}
		card, err := ParseCard(choice)
		if err == nil && containsCard(legal, card) {
			return card, nil
		}
		l.prompt.Notice("Invalid choice. Try again.")
	}
}
