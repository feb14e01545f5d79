package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

// WinCombos lists every winning line in the order they are checked.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// NewGame returns an empty board with X to move.
func NewGame() entity.Game {
	return entity.Game{
		Turn:    entity.PlayerX,
		Outcome: entity.Ongoing(),
	}
}

// MakeTurn places the mark whose turn it is on cell and evaluates the result.
// On error the returned game is the input game, untouched.
func MakeTurn(game entity.Game, cell int) (entity.Game, error) {
	if !game.Outcome.IsOngoing() {
		return game, apperror.ErrGameFinished
	}

	if err := validateMove(game.Board, cell); err != nil {
		return game, fmt.Errorf("invalid turn: %w", err)
	}

	game.Board[cell] = game.Turn
	game.Outcome = DetermineOutcome(game.Board)

	// the turn stays with the last mover once the match is over
	if game.Outcome.IsOngoing() {
		game.Turn = game.Turn.Opponent()
	}

	return game, nil
}

// validateMove - checks if the move is valid.
func validateMove(board entity.Board, cell int) error {
	if cell < 0 || cell >= len(board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if board[cell] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	return nil
}

// DetermineOutcome checks the winning lines first, then whether the board is full.
func DetermineOutcome(board entity.Board) entity.Outcome {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return entity.Won(a)
		}
	}

	if board.IsFull() {
		return entity.Drawn()
	}

	return entity.Ongoing()
}
