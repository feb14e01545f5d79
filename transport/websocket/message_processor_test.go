package websocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

func TestEncodeMessage(t *testing.T) {
	t.Run("Request payload", func(t *testing.T) {
		cell := 3

		data, err := encodeMessage("game:turn", Payload{Cell: &cell})

		require.NoError(t, err)
		assert.JSONEq(t, `{"action":"game:turn","payload":{"cell":3}}`, string(data))
	})

	t.Run("Error payload has no game", func(t *testing.T) {
		data, err := encodeMessage("game:mode", Payload{Error: "unknown game mode"})

		require.NoError(t, err)
		assert.JSONEq(t, `{"action":"game:mode","payload":{"error":"unknown game mode"}}`, string(data))
	})

	t.Run("Game payload", func(t *testing.T) {
		snapshot := entity.Snapshot{Mode: entity.HumanVsHuman}

		data, err := encodeMessage("game:state", Payload{Game: &snapshot})

		require.NoError(t, err)
		assert.Contains(t, string(data), `"mode":"pvp"`)
		assert.Contains(t, string(data), `"computer_thinking":false`)
	})
}
