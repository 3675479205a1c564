package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCell      = errors.New("invalid cell")
	ErrInvalidPlayer    = errors.New("invalid player")
	ErrInvalidMode      = errors.New("invalid game mode")
	ErrCellOccupied     = fmt.Errorf("%w: cell is already occupied", ErrInvalidCell)
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrGameFinished     = errors.New("game is already finished")
	ErrInputDisabled    = errors.New("input is disabled while the opponent is moving")
	ErrMatchNotFound    = errors.New("match not found")
	ErrNoAvailableMoves = errors.New("no available moves")
)
