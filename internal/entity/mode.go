package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const (
	ModeWithFriend   Mode = "withFriend"
	ModeWithComputer Mode = "withComputer"

	DefaultMode = ModeWithFriend
)

// Mode selects who plays the second side: another human or the heuristic opponent.
type Mode string

func ParseMode(value string) (Mode, error) {
	mode := Mode(value)
	if !mode.Valid() {
		return "", fmt.Errorf("%w: %q", apperror.ErrInvalidMode, value)
	}

	return mode, nil
}

func (that Mode) Valid() bool {
	return that == ModeWithFriend || that == ModeWithComputer
}

// Toggle switches between the two modes. Anything unknown toggles to ModeWithComputer.
func (that Mode) Toggle() Mode {
	if that == ModeWithComputer {
		return ModeWithFriend
	}

	return ModeWithComputer
}

// ModeRecord is the persisted form of the last selected mode.
type ModeRecord struct {
	GameMode Mode `json:"gameMode"`
}
