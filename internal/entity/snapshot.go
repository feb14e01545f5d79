package entity

// Snapshot is everything a presentation layer needs to render the engine.
type Snapshot struct {
	Game
	Scores Scores `json:"scores"`
	Mode   Mode   `json:"mode"`
	// ComputerThinking is set while a computer reply is scheduled but has not fired yet.
	ComputerThinking bool `json:"computer_thinking"`
}

// AcceptsHumanMove reports whether a cell selection by a person could be applied right now.
func (that Snapshot) AcceptsHumanMove() bool {
	if !that.Outcome.IsOngoing() {
		return false
	}

	return !that.Mode.IsWithBot() || that.Turn == HumanMark
}
