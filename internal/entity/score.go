package entity

// Scores counts won matches per mark. Draws are never counted.
type Scores struct {
	X int `json:"x"`
	O int `json:"o"`
}

// Add returns a copy of the ledger with one more win for mark.
func (that Scores) Add(mark Mark) Scores {
	switch mark {
	case PlayerX:
		that.X++
	case PlayerO:
		that.O++
	}

	return that
}

func (that Scores) Of(mark Mark) int {
	switch mark {
	case PlayerX:
		return that.X
	case PlayerO:
		return that.O
	default:
		return 0
	}
}
