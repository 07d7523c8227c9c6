package differenzler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"differenzler/game"
)

func TestCodecs(t *testing.T) {
	for _, binary := range []bool{false, true} {
		codec := NewCodec(binary)
		assert.Equal(t, binary, codec.Binary())

		body, err := codec.Encode(game.RequestCardPayload{
			LegalCards:  []game.Card{{Suit: game.Rosen, Rank: game.Jack}},
			LeadingSuit: game.Rosen,
		})
		require.NoError(t, err)

		var got game.RequestCardPayload
		require.NoError(t, codec.Decode(body, &got))
		assert.Equal(t, []game.Card{{Suit: game.Rosen, Rank: game.Jack}}, got.LegalCards)
		assert.Equal(t, game.Rosen, got.LeadingSuit)

		body, err = codec.Encode(map[string]any{"sessionId": "s-1", "guess": 42})
		require.NoError(t, err)
		var req makeGuessRequest
		require.NoError(t, codec.Decode(body, &req))
		assert.Equal(t, makeGuessRequest{SessionID: "s-1", Guess: 42}, req)
	}
}

func TestStructCodecNeedsObject(t *testing.T) {
	_, err := NewCodec(true).Encode([]int{1, 2})
	assert.Error(t, err)
}

func TestJSONWireNames(t *testing.T) {
	body, err := NewCodec(false).Encode(gameStartedPayload{SessionID: "s-1", Participants: []string{"You"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"sessionId":"s-1","participants":["You"]}`, string(body))
}
