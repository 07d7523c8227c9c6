package differenzler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kataras/neffos"
	"github.com/kataras/neffos/gobwas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"differenzler/config"
	"differenzler/game"
	"differenzler/stats"
)

// wsClient one websocket participant of the differenzler namespace.
type wsClient struct {
	client   *neffos.Client
	conn     *neffos.NSConn
	messages chan neffos.Message
	// skipped messages stay here for later next calls
	pending []neffos.Message
}

func dialApp(t *testing.T, ctx context.Context, url string) *wsClient {
	t.Helper()
	wc := &wsClient{messages: make(chan neffos.Message, 4096)}
	events := neffos.Events{}
	for _, name := range []string{
		game.ClnEvents.GameStarted, game.ClnEvents.RoundStart, game.ClnEvents.RequestGuess,
		game.ClnEvents.GuessReceived, game.ClnEvents.RequestCard, game.ClnEvents.TrickStart,
		game.ClnEvents.CardPlayed, game.ClnEvents.TrickComplete, game.ClnEvents.LastTrickBonus,
		game.ClnEvents.RoundComplete, game.ClnEvents.RoundGuessResults, game.ClnEvents.GameComplete,
		game.ClnEvents.Error,
	} {
		events[name] = func(_ *neffos.NSConn, m neffos.Message) error {
			wc.messages <- m
			return nil
		}
	}

	client, err := neffos.Dial(ctx, gobwas.DefaultDialer, url, neffos.Namespaces{game.SpaceName: events})
	require.NoError(t, err)
	wc.client = client
	wc.conn, err = client.Connect(ctx, game.SpaceName)
	require.NoError(t, err)
	return wc
}

func (wc *wsClient) emit(t *testing.T, event string, v any) {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	require.True(t, wc.conn.Emit(event, body))
}

func (wc *wsClient) next(t *testing.T, event string, v any) {
	t.Helper()
	decode := func(m neffos.Message) {
		if v != nil {
			require.NoError(t, json.Unmarshal(m.Body, v))
		}
	}
	for i, m := range wc.pending {
		if m.Event == event {
			wc.pending = append(wc.pending[:i], wc.pending[i+1:]...)
			decode(m)
			return
		}
	}

	timeout := time.After(5 * time.Second)
	for {
		select {
		case m := <-wc.messages:
			if m.Event != event {
				wc.pending = append(wc.pending, m)
				continue
			}
			decode(m)
			return
		case <-timeout:
			t.Fatalf("no %s event", event)
		}
	}
}

func startApp(t *testing.T) (*App, *config.Config, string, context.Context) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := config.Default()
	cfg.Rounds = 1
	cfg.Seed = 3
	cfg.StatsPath = filepath.Join(t.TempDir(), "stats.csv")

	app, err := InitProject(ctx, cfg, quietLog())
	require.NoError(t, err)
	srv := httptest.NewServer(app.Server)
	t.Cleanup(func() {
		app.Close()
		srv.Close()
	})
	return app, cfg, "ws://" + strings.TrimPrefix(srv.URL, "http://"), ctx
}

func TestWebsocketGame(t *testing.T) {
	app, cfg, url, ctx := startApp(t)
	wc := dialApp(t, ctx, url)
	defer wc.client.Close()

	wc.emit(t, game.SrvEvents.StartGame, map[string]string{"participantName": "Ann"})

	var started gameStartedPayload
	wc.next(t, game.ClnEvents.GameStarted, &started)
	require.NotEmpty(t, started.SessionID)
	assert.Equal(t, []string{"Ann", "Bot 1", "Bot 2", "Bot 3"}, started.Participants)

	wc.next(t, game.ClnEvents.RequestGuess, nil)
	wc.emit(t, game.SrvEvents.MakeGuess, map[string]any{"sessionId": started.SessionID, "guess": 40})
	var ack guessReceivedPayload
	wc.next(t, game.ClnEvents.GuessReceived, &ack)
	assert.Equal(t, 40, ack.Guess)

	for i := 0; i < game.NumOfCardsOnePlayer; i++ {
		var req game.RequestCardPayload
		wc.next(t, game.ClnEvents.RequestCard, &req)
		require.NotEmpty(t, req.LegalCards)
		c := req.LegalCards[0]
		wc.emit(t, game.SrvEvents.PlayCard, map[string]any{
			"sessionId": started.SessionID,
			"suit":      c.Suit.Key(),
			"rank":      c.Rank.Key(),
		})
	}

	var results game.RoundGuessResultsPayload
	wc.next(t, game.ClnEvents.RoundGuessResults, &results)
	require.Len(t, results.PerParticipant, game.PlayersLimit)
	assert.Equal(t, 40, results.PerParticipant[0].Guess)

	var done game.GameCompletePayload
	wc.next(t, game.ClnEvents.GameComplete, &done)
	assert.Len(t, done.FinalScores, game.PlayersLimit)

	require.Eventually(t, func() bool { return app.Registry.Len() == 0 }, 2*time.Second, 10*time.Millisecond)

	rows, err := stats.ReadAll(cfg.StatsPath)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWebsocketDeliversEveryEvent(t *testing.T) {
	_, _, url, ctx := startApp(t)
	wc := dialApp(t, ctx, url)
	defer wc.client.Close()

	wc.emit(t, game.SrvEvents.StartGame, map[string]string{"participantName": "Ann"})
	var started gameStartedPayload
	wc.next(t, game.ClnEvents.GameStarted, &started)

	counts := map[string]int{game.ClnEvents.GameStarted: 1}
	timeout := time.After(10 * time.Second)
	for counts[game.ClnEvents.GameComplete] == 0 {
		var m neffos.Message
		if len(wc.pending) > 0 {
			m, wc.pending = wc.pending[0], wc.pending[1:]
		} else {
			select {
			case m = <-wc.messages:
			case <-timeout:
				t.Fatalf("game did not complete, got %v", counts)
			}
		}
		counts[m.Event]++

		switch m.Event {
		case game.ClnEvents.RequestGuess:
			wc.emit(t, game.SrvEvents.MakeGuess, map[string]any{"sessionId": started.SessionID, "guess": 30})
		case game.ClnEvents.RequestCard:
			var req game.RequestCardPayload
			require.NoError(t, json.Unmarshal(m.Body, &req))
			c := req.LegalCards[0]
			wc.emit(t, game.SrvEvents.PlayCard, map[string]any{
				"sessionId": started.SessionID,
				"suit":      c.Suit.Key(),
				"rank":      int(c.Rank),
			})
		}
	}

	tricks := game.NumOfCardsOnePlayer
	assert.Equal(t, map[string]int{
		game.ClnEvents.GameStarted:       1,
		game.ClnEvents.RoundStart:        1,
		game.ClnEvents.RequestGuess:      1,
		game.ClnEvents.GuessReceived:     1,
		game.ClnEvents.TrickStart:        tricks,
		game.ClnEvents.RequestCard:       tricks,
		game.ClnEvents.CardPlayed:        tricks * game.PlayersLimit,
		game.ClnEvents.TrickComplete:     tricks,
		game.ClnEvents.LastTrickBonus:    1,
		game.ClnEvents.RoundComplete:     1,
		game.ClnEvents.RoundGuessResults: 1,
		game.ClnEvents.GameComplete:      1,
	}, counts)
}

func TestWebsocketRejections(t *testing.T) {
	_, _, url, ctx := startApp(t)
	wc := dialApp(t, ctx, url)
	defer wc.client.Close()

	var failure errorPayload
	wc.emit(t, game.SrvEvents.MakeGuess, map[string]any{"sessionId": "nope", "guess": 10})
	wc.next(t, game.ClnEvents.Error, &failure)
	assert.Contains(t, failure.Message, "session not found")

	wc.emit(t, game.SrvEvents.StartGame, map[string]string{"participantName": " "})
	wc.next(t, game.ClnEvents.Error, &failure)
	assert.Contains(t, failure.Message, "participantName")

	wc.emit(t, game.SrvEvents.StartGame, map[string]string{"participantName": "Ann"})
	var started gameStartedPayload
	wc.next(t, game.ClnEvents.GameStarted, &started)

	wc.next(t, game.ClnEvents.RequestGuess, nil)

	wc.emit(t, game.SrvEvents.StartGame, map[string]string{"participantName": "Ann"})
	wc.next(t, game.ClnEvents.Error, &failure)
	assert.Contains(t, failure.Message, "another session")

	wc.emit(t, game.SrvEvents.PlayCard, map[string]any{"sessionId": started.SessionID, "suit": "ROSEN", "rank": 14})
	wc.next(t, game.ClnEvents.Error, &failure)
	assert.Contains(t, failure.Message, "not expected")

	wc.emit(t, game.SrvEvents.PlayCard, map[string]any{"sessionId": started.SessionID, "suit": "HEARTS", "rank": "ACE"})
	wc.next(t, game.ClnEvents.Error, &failure)
	assert.Contains(t, failure.Message, "unknown suit")

	wc.emit(t, game.SrvEvents.MakeGuess, map[string]any{"sessionId": started.SessionID, "guess": 500})
	wc.next(t, game.ClnEvents.Error, &failure)
	assert.Contains(t, failure.Message, "guess")
}

func TestWebsocketDisconnectAbandons(t *testing.T) {
	app, _, url, ctx := startApp(t)
	wc := dialApp(t, ctx, url)

	wc.emit(t, game.SrvEvents.StartGame, map[string]string{"participantName": "Ann"})
	var started gameStartedPayload
	wc.next(t, game.ClnEvents.GameStarted, &started)
	wc.next(t, game.ClnEvents.RequestGuess, nil)

	s, err := app.Registry.Session(started.SessionID)
	require.NoError(t, err)

	wc.client.Close()

	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("session survived its owner")
	}
	assert.Equal(t, StatusAbandoned, s.Status())
	require.Eventually(t, func() bool { return app.Registry.Len() == 0 }, 2*time.Second, 10*time.Millisecond)
}
