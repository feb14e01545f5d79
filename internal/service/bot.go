package service

import (
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

// MovePolicy picks the computer's cell. ok is false when the board has no empty cell.
type MovePolicy interface {
	ChooseCell(board entity.Board) (cell int, ok bool)
}

// Rand is the subset of *rand.Rand the bot needs.
type Rand interface {
	IntN(n int) int
}

type botService struct {
	rnd Rand
}

// NewBotService returns a policy that plays a uniformly random empty cell.
// A nil rnd uses the global math/rand/v2 source.
func NewBotService(rnd Rand) MovePolicy {
	if rnd == nil {
		rnd = globalRand{}
	}

	return &botService{
		rnd: rnd,
	}
}

func (that *botService) ChooseCell(board entity.Board) (int, bool) {
	availableCells := board.EmptyCells()
	if len(availableCells) == 0 {
		return 0, false
	}

	return availableCells[that.rnd.IntN(len(availableCells))], true
}

type globalRand struct{}

func (globalRand) IntN(n int) int {
	return rand.IntN(n) //nolint: gosec // it's ok
}
