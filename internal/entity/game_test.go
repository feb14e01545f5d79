package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_EmptyCells(t *testing.T) {
	t.Run("Returns every index of an empty board", func(t *testing.T) {
		// Given: an empty board
		board := Board{}

		// When: collecting empty cells
		cells := board.EmptyCells()

		// Then: all nine indices should be returned in order
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, cells)
		assert.False(t, board.IsFull())
	})

	t.Run("Skips marked cells", func(t *testing.T) {
		// Given: a board with a few marks
		board := Board{
			PlayerX, EmptyCell, PlayerO,
			EmptyCell, PlayerX, EmptyCell,
			PlayerO, EmptyCell, EmptyCell,
		}

		// When: collecting empty cells
		cells := board.EmptyCells()

		// Then: only unmarked indices should be returned
		assert.Equal(t, []int{1, 3, 5, 7, 8}, cells)
	})

	t.Run("Full board has no empty cells", func(t *testing.T) {
		// Given: a full board
		board := Board{
			PlayerX, PlayerO, PlayerX,
			PlayerX, PlayerO, PlayerO,
			PlayerO, PlayerX, PlayerX,
		}

		// Then: there should be nothing left to play
		assert.Empty(t, board.EmptyCells())
		assert.True(t, board.IsFull())
	})
}

func TestMark_Opponent(t *testing.T) {
	assert.Equal(t, PlayerO, PlayerX.Opponent())
	assert.Equal(t, PlayerX, PlayerO.Opponent())
	assert.Equal(t, EmptyCell, EmptyCell.Opponent())
}

func TestOutcome(t *testing.T) {
	t.Run("Ongoing is not finished", func(t *testing.T) {
		outcome := Ongoing()

		assert.True(t, outcome.IsOngoing())
		assert.False(t, outcome.IsFinished())
		assert.Equal(t, EmptyCell, outcome.Winner)
	})

	t.Run("Won and drawn are finished", func(t *testing.T) {
		assert.True(t, Won(PlayerO).IsFinished())
		assert.Equal(t, PlayerO, Won(PlayerO).Winner)
		assert.True(t, Drawn().IsFinished())
		assert.False(t, Drawn().IsOngoing())
	})
}

func TestScores_Add(t *testing.T) {
	t.Run("Adds one win to the given mark only", func(t *testing.T) {
		// Given: a ledger with some wins
		scores := Scores{X: 2, O: 1}

		// When: X wins again
		updated := scores.Add(PlayerX)

		// Then: only X should grow, and the original value should be untouched
		assert.Equal(t, Scores{X: 3, O: 1}, updated)
		assert.Equal(t, Scores{X: 2, O: 1}, scores)
		assert.Equal(t, 3, updated.Of(PlayerX))
		assert.Equal(t, 1, updated.Of(PlayerO))
	})

	t.Run("Empty mark changes nothing", func(t *testing.T) {
		scores := Scores{X: 1}

		assert.Equal(t, scores, scores.Add(EmptyCell))
		assert.Equal(t, 0, scores.Of(EmptyCell))
	})
}

func TestParseMode(t *testing.T) {
	t.Run("Known modes", func(t *testing.T) {
		mode, err := ParseMode("pvp")
		require.NoError(t, err)
		assert.Equal(t, HumanVsHuman, mode)

		mode, err = ParseMode("bot")
		require.NoError(t, err)
		assert.Equal(t, HumanVsComputer, mode)
		assert.True(t, mode.IsWithBot())
	})

	t.Run("Unknown mode", func(t *testing.T) {
		// When: parsing a name that is not a mode
		_, err := ParseMode("online")

		// Then: ErrUnknownMode should be returned
		require.ErrorIs(t, err, ErrUnknownMode)
		assert.False(t, Mode("online").IsValid())
	})

	t.Run("Toggle switches modes", func(t *testing.T) {
		assert.Equal(t, HumanVsComputer, HumanVsHuman.Toggle())
		assert.Equal(t, HumanVsHuman, HumanVsComputer.Toggle())
	})
}

func TestSnapshot_AcceptsHumanMove(t *testing.T) {
	t.Run("Any turn in human vs human", func(t *testing.T) {
		snapshot := Snapshot{Game: Game{Turn: PlayerO, Outcome: Ongoing()}, Mode: HumanVsHuman}

		assert.True(t, snapshot.AcceptsHumanMove())
	})

	t.Run("Only the human mark against the computer", func(t *testing.T) {
		snapshot := Snapshot{Game: Game{Turn: ComputerMark, Outcome: Ongoing()}, Mode: HumanVsComputer}
		assert.False(t, snapshot.AcceptsHumanMove())

		snapshot.Turn = HumanMark
		assert.True(t, snapshot.AcceptsHumanMove())
	})

	t.Run("Never after the match ended", func(t *testing.T) {
		snapshot := Snapshot{Game: Game{Turn: PlayerX, Outcome: Drawn()}, Mode: HumanVsHuman}

		assert.False(t, snapshot.AcceptsHumanMove())
	})
}
