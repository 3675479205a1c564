package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// GameState is the occupancy of the board and the player to move next.
// It is not safe for concurrent use; the owner serialises calls.
type GameState struct {
	Circle CellSet `json:"circle"`
	Cross  CellSet `json:"cross"`
	Turn   Player  `json:"player_turn"`
}

func NewGameState() *GameState {
	return &GameState{
		Turn: Circle,
	}
}

// Reset clears the board and gives the move back to Circle.
func (that *GameState) Reset() {
	*that = *NewGameState()
}

// Occupancy returns the cells held by player. An unknown player holds nothing.
func (that *GameState) Occupancy(player Player) CellSet {
	switch player {
	case Circle:
		return that.Circle
	case Cross:
		return that.Cross
	default:
		return 0
	}
}

func (that *GameState) occupied() CellSet {
	return that.Circle.Union(that.Cross)
}

// IsEmpty reports whether cell is on the board and held by nobody.
func (that *GameState) IsEmpty(cell Cell) bool {
	return cell.Valid() && !that.occupied().Contains(cell)
}

// EmptyCells lists the playable cells in increasing order.
func (that *GameState) EmptyCells() []Cell {
	occupied := that.occupied()

	cells := make([]Cell, 0, int(LastCell)-occupied.Len())
	for cell := FirstCell; cell <= LastCell; cell++ {
		if !occupied.Contains(cell) {
			cells = append(cells, cell)
		}
	}

	return cells
}

// ApplyMove gives cell to player and passes the turn to the other player.
// A rejected move leaves the state untouched.
func (that *GameState) ApplyMove(cell Cell, player Player) error {
	if !cell.Valid() {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if !player.Valid() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidPlayer, player)
	}

	if !that.IsEmpty(cell) {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	if player == Circle {
		that.Circle = that.Circle.With(cell)
	} else {
		that.Cross = that.Cross.With(cell)
	}

	that.Turn = player.Other()

	return nil
}

// HasWon reports whether cells contains a complete line. It does not look at the board.
func (that *GameState) HasWon(cells CellSet) bool {
	return HasWon(cells)
}

// Winner returns the player holding a complete line, if any.
func (that *GameState) Winner() (Player, bool) {
	for _, player := range []Player{Circle, Cross} {
		if HasWon(that.Occupancy(player)) {
			return player, true
		}
	}

	return "", false
}

// IsDraw reports a full board without a winner.
func (that *GameState) IsDraw() bool {
	if _, won := that.Winner(); won {
		return false
	}

	return len(that.EmptyCells()) == 0
}

func (that *GameState) IsGameOver() bool {
	if _, won := that.Winner(); won {
		return true
	}

	return that.IsDraw()
}

// Result returns the winner, PlayerTie for a draw or an empty string while the game goes on.
func (that *GameState) Result() string {
	if winner, won := that.Winner(); won {
		return string(winner)
	}

	if that.IsDraw() {
		return PlayerTie
	}

	return ""
}

// Validate checks a state restored from storage.
func (that *GameState) Validate() error {
	if that.Circle.Intersects(that.Cross) {
		return fmt.Errorf("%w: cells %v held by both players", apperror.ErrCellOccupied, (that.Circle & that.Cross).Cells())
	}

	if !that.Turn.Valid() {
		return fmt.Errorf("%w: turn %q", apperror.ErrInvalidPlayer, that.Turn)
	}

	return nil
}
