package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const (
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"
)

// Match is one game owned by the orchestrating layer.
type Match struct {
	ID       string     `json:"id"`
	Mode     Mode       `json:"game_mode"`
	State    *GameState `json:"state"`
	Status   string     `json:"status"`
	Winner   string     `json:"winner"`
	Computer Player     `json:"computer,omitempty"`
}

func NewMatch(id string, mode Mode) *Match {
	match := &Match{
		ID:     id,
		Mode:   mode,
		State:  NewGameState(),
		Status: StatusOngoing,
	}

	if mode == ModeWithComputer {
		match.Computer = Cross
	}

	return match
}

// UpdateStatus finishes the match once the board has a winner or is full.
func (that *Match) UpdateStatus() {
	switch result := that.State.Result(); result {
	case "":
		that.Status = StatusOngoing
	default:
		that.Winner = result
		that.Status = StatusFinished
	}
}

func (that *Match) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Match) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Match) IsWithComputer() bool {
	return that.Mode == ModeWithComputer
}

// IsComputerTurn reports whether the heuristic opponent is the one to move.
func (that *Match) IsComputerTurn() bool {
	return that.IsWithComputer() && that.IsOngoing() && that.State.Turn == that.Computer
}

func (that *Match) ConfirmOngoingState() error {
	switch that.Status {
	case StatusOngoing:
		return nil
	case StatusFinished:
		return apperror.ErrGameFinished
	default:
		return fmt.Errorf("unknown match status: %s", that.Status)
	}
}

// Validate checks a match restored from storage.
func (that *Match) Validate() error {
	if !that.Mode.Valid() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMode, that.Mode)
	}

	if that.State == nil {
		return fmt.Errorf("match %s has no state", that.ID)
	}

	if err := that.State.Validate(); err != nil {
		return fmt.Errorf("invalid state of match %s: %w", that.ID, err)
	}

	return nil
}
