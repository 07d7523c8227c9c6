package game

import "errors"

var (
	ErrInvalidGuess         = errors.New("guess out of range 0..157")
	ErrIllegalCard          = errors.New("card not in hand or not legal")
	ErrAgentResponseInvalid = errors.New("advisory agent response unusable")
	ErrSeatCount            = errors.New("a game needs exactly four seats")
	ErrUnknownSuit          = errors.New("unknown suit")
	ErrUnknownRank          = errors.New("unknown rank")
)

var (
	// ErrAbandoned game loop stopped because its session was abandoned
	ErrAbandoned = errors.New("game abandoned")
	// ErrPointTotal captured card points of a round do not add up to TotalCardPoints
	ErrPointTotal = errors.New("card point total mismatch")
)
