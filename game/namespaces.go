package game

// SpaceName websocket namespace of a differenzler session
const SpaceName = "differenzler"

type ServerClientEnum byte

const (
	serverEvent ServerClientEnum = iota // server
	clientEvent                         // client
)

type sessionNamespace struct {
	// inbound
	StartGame string `json:"startGame,omitempty"`
	MakeGuess string `json:"makeGuess,omitempty"`
	PlayCard  string `json:"playCard,omitempty"`

	// outbound
	GameStarted       string `json:"gameStarted,omitempty"`
	RoundStart        string `json:"roundStart,omitempty"`
	RequestGuess      string `json:"requestGuess,omitempty"`
	GuessReceived     string `json:"guessReceived,omitempty"`
	RequestCard       string `json:"requestCard,omitempty"`
	TrickStart        string `json:"trickStart,omitempty"`
	CardPlayed        string `json:"cardPlayed,omitempty"`
	TrickComplete     string `json:"trickComplete,omitempty"`
	LastTrickBonus    string `json:"lastTrickBonus,omitempty"`
	RoundComplete     string `json:"roundComplete,omitempty"`
	RoundGuessResults string `json:"roundGuessResults,omitempty"`
	GameComplete      string `json:"gameComplete,omitempty"`
	Error             string `json:"error,omitempty"`
}

var (
	// client -> server
	serverSessionSpace = &sessionNamespace{
		StartGame: "start_game",
		MakeGuess: "make_guess",
		PlayCard:  "play_card",
	}

	// server -> client
	clientSessionSpace = &sessionNamespace{
		GameStarted:       "game_started",
		RoundStart:        "round_start",
		RequestGuess:      "request_guess",
		GuessReceived:     "guess_received",
		RequestCard:       "request_card",
		TrickStart:        "trick_start",
		CardPlayed:        "card_played",
		TrickComplete:     "trick_complete",
		LastTrickBonus:    "last_trick_bonus",
		RoundComplete:     "round_complete",
		RoundGuessResults: "round_guess_results",
		GameComplete:      "game_complete",
		Error:             "error",
	}

	sessionSpaceEvents = map[ServerClientEnum]*sessionNamespace{
		serverEvent: serverSessionSpace,
		clientEvent: clientSessionSpace,
	}

	// SrvEvents event names the server listens on
	SrvEvents = sessionSpaceEvents[serverEvent]

	// ClnEvents event names the server emits
	ClnEvents = sessionSpaceEvents[clientEvent]
)
