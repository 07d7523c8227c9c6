package game

// AllSeats Event.Seat value for events every seat may see
const AllSeats = -1

// Event something that happened in a game; Kind is one of the ClnEvents names.
type Event struct {
	Kind    string
	Seat    int // AllSeats or the only seat allowed to see Payload
	Payload any
}

// Listener receives events synchronously on the game's goroutine.
type Listener func(Event)

type (
	// Score cumulative points of one participant
	Score struct {
		Participant string `json:"participant"`
		Points      int    `json:"points"`
	}

	RoundStartPayload struct {
		Round     int    `json:"round"`
		TrumpSuit Suit   `json:"trumpSuit"`
		Hand      []Card `json:"hand"`
	}

	RequestGuessPayload struct {
		TrumpSuit Suit   `json:"trumpSuit"`
		Hand      []Card `json:"hand"`
	}

	RequestCardPayload struct {
		LegalCards   []Card `json:"legalCards"`
		CurrentTrick []Play `json:"currentTrick"`
		LeadingSuit  Suit   `json:"leadingSuit"`
	}

	TrickStartPayload struct {
		TrickNumber int      `json:"trickNumber"`
		PlayerOrder []string `json:"playerOrder"`
	}

	CardPlayedPayload struct {
		Participant string `json:"participant"`
		Card        Card   `json:"card"`
		Trick       []Play `json:"trick"`
	}

	TrickCompletePayload struct {
		Winner string `json:"winner"`
		Trick  []Play `json:"trick"`
	}

	LastTrickBonusPayload struct {
		Participant string `json:"participant"`
		Bonus       int    `json:"bonus"`
	}

	RoundCompletePayload struct {
		Round  int     `json:"round"`
		Scores []Score `json:"scores"`
	}

	RoundGuessResultsPayload struct {
		Round          int           `json:"round"`
		PerParticipant []GuessResult `json:"perParticipant"`
	}

	GameCompletePayload struct {
		FinalScores []Score `json:"finalScores"`
		Winner      string  `json:"winner"`
	}
)
