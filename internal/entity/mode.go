package entity

import (
	"errors"
	"fmt"
)

var ErrUnknownMode = errors.New("unknown game mode")

type Mode string

const (
	HumanVsHuman    Mode = "pvp"
	HumanVsComputer Mode = "bot"
)

const (
	// HumanMark is played by the person at the keyboard in HumanVsComputer mode.
	HumanMark = PlayerX
	// ComputerMark is played by the move policy in HumanVsComputer mode.
	ComputerMark = PlayerO
)

func ParseMode(value string) (Mode, error) {
	switch mode := Mode(value); mode {
	case HumanVsHuman, HumanVsComputer:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, value)
	}
}

func (that Mode) IsValid() bool {
	return that == HumanVsHuman || that == HumanVsComputer
}

func (that Mode) IsWithBot() bool {
	return that == HumanVsComputer
}

// Toggle switches between the two modes.
func (that Mode) Toggle() Mode {
	if that == HumanVsComputer {
		return HumanVsHuman
	}
	return HumanVsComputer
}
