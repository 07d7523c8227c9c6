package game

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	"github.com/lmittmann/tint"
)

// Generator opaque text generation backend, e.g. a chat completion endpoint.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

var (
	numberPattern = regexp.MustCompile(`-?\d+`)
	cardPattern   = regexp.MustCompile(`(?i)\b(six|seven|eight|nine|ten|jack|queen|king|ace)-(schellen|eicheln|schilten|rosen)\b`)
)

// AdvisorPlayer asks a Generator and never fails: unusable answers are replaced by a uniform
// random legal value and logged.
type AdvisorPlayer struct {
	gen Generator
	rng *rand.Rand
	log *slog.Logger
}

func NewAdvisorPlayer(gen Generator, rng *rand.Rand, log *slog.Logger) *AdvisorPlayer {
	if log == nil {
		log = slog.Default()
	}
	return &AdvisorPlayer{gen: gen, rng: rng, log: log}
}

func (a *AdvisorPlayer) Kind() Kind { return KindAdvisor }

func (a *AdvisorPlayer) Guess(ctx context.Context, v View) (int, error) {
	prompt, err := GuessPrompt(v)
	if err != nil {
		return 0, err
	}
	reply, err := a.gen.Generate(ctx, prompt)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return a.fallbackGuess(v, reply, err), nil
	}
	guess, err := ParseGuess(reply)
	if err != nil {
		return a.fallbackGuess(v, reply, err), nil
	}
	return guess, nil
}

func (a *AdvisorPlayer) Play(ctx context.Context, v View, legal []Card) (Card, error) {
	prompt, err := CardPrompt(v, legal)
	if err != nil {
		return Card{}, err
	}
	reply, err := a.gen.Generate(ctx, prompt)
	if err != nil {
		if ctx.Err() != nil {
			return Card{}, ctx.Err()
		}
		return a.fallbackCard(v, legal, reply, err), nil
	}
	card, err := ParseCardChoice(reply, legal)
	if err != nil {
		return a.fallbackCard(v, legal, reply, err), nil
	}
	return card, nil
}

func (a *AdvisorPlayer) fallbackGuess(v View, reply string, cause error) int {
	guess := a.rng.Intn(MaxGuess + 1)
	a.log.Warn("advisor guess unusable, using random guess",
		slog.String("player", v.Name),
		slog.Int("round", v.Round),
		slog.String("reply", clip(reply)),
		slog.Int("guess", guess),
		tint.Err(fmt.Errorf("%w: %w", ErrAgentResponseInvalid, cause)))
	return guess
}

func (a *AdvisorPlayer) fallbackCard(v View, legal []Card, reply string, cause error) Card {
	card := legal[a.rng.Intn(len(legal))]
	a.log.Warn("advisor card unusable, using random legal card",
		slog.String("player", v.Name),
		slog.Int("round", v.Round),
		slog.String("reply", clip(reply)),
		slog.String("card", card.String()),
		tint.Err(fmt.Errorf("%w: %w", ErrAgentResponseInvalid, cause)))
	return card
}

// ParseGuess reads the first integer of an agent reply and checks its range.
func ParseGuess(reply string) (int, error) {
	text := strings.TrimSpace(reply)
	guess, err := strconv.Atoi(text)
	if err != nil {
		m := numberPattern.FindString(text)
		if m == "" {
			return 0, fmt.Errorf("%w: no number in %q", ErrAgentResponseInvalid, clip(reply))
		}
		if guess, err = strconv.Atoi(m); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrAgentResponseInvalid, err)
		}
	}
	if err = ValidateGuess(guess); err != nil {
		return 0, err
	}
	return guess, nil
}

// ParseCardChoice reads a Rank-Suit card from an agent reply and checks it is legal.
func ParseCardChoice(reply string, legal []Card) (Card, error) {
	card, err := ParseCard(reply)
	if err != nil {
		m := cardPattern.FindString(reply)
		if m == "" {
			return Card{}, fmt.Errorf("%w: no card in %q", ErrAgentResponseInvalid, clip(reply))
		}
		if card, err = ParseCard(m); err != nil {
			return Card{}, fmt.Errorf("%w: %w", ErrAgentResponseInvalid, err)
		}
	}
	if !containsCard(legal, card) {
		return Card{}, fmt.Errorf("%w: %s", ErrIllegalCard, card)
	}
	return card, nil
}

func clip(s string) string {
	const limit = 80
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
