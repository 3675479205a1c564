package service

import (
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	StrategyWin    = "win"
	StrategyBlock  = "block"
	StrategyCenter = "center"
	StrategyRandom = "random"
)

// RandSource picks an integer in [0, n). *rand.Rand satisfies it.
type RandSource interface {
	Intn(n int) int
}

// Strategy proposes a cell from the selector's own cells, the opponent's cells
// and the empty cells in increasing order.
type Strategy struct {
	Name string
	Pick func(own, opponent entity.CellSet, empty []entity.Cell) (entity.Cell, bool)
}

// Decision is the chosen cell and the strategy that produced it.
type Decision struct {
	Cell     entity.Cell
	Strategy string
}

// MoveSelector chooses the opponent's move with a fixed-priority heuristic:
// win, block, center, random. It does not search and can lose to a fork.
type MoveSelector struct {
	strategies []Strategy
}

// NewMoveSelector builds the heuristic. A nil source falls back to the math/rand global generator.
func NewMoveSelector(source RandSource) *MoveSelector {
	if source == nil {
		source = globalSource{}
	}

	return &MoveSelector{
		strategies: []Strategy{
			{Name: StrategyWin, Pick: winningCell},
			{Name: StrategyBlock, Pick: blockingCell},
			{Name: StrategyCenter, Pick: centerCell},
			{Name: StrategyRandom, Pick: randomCell(source)},
		},
	}
}

// SelectMove returns the cell the player should take next. The state is only read.
func (that *MoveSelector) SelectMove(state *entity.GameState, player entity.Player) (entity.Cell, error) {
	decision, err := that.Decide(state, player)
	if err != nil {
		return 0, err
	}

	return decision.Cell, nil
}

func (that *MoveSelector) Decide(state *entity.GameState, player entity.Player) (Decision, error) {
	if !player.Valid() {
		return Decision{}, fmt.Errorf("%w: %q", apperror.ErrInvalidPlayer, player)
	}

	empty := state.EmptyCells()
	if len(empty) == 0 {
		return Decision{}, apperror.ErrNoAvailableMoves
	}

	own := state.Occupancy(player)
	opponent := state.Occupancy(player.Other())

	for _, strategy := range that.strategies {
		if cell, ok := strategy.Pick(own, opponent, empty); ok {
			return Decision{Cell: cell, Strategy: strategy.Name}, nil
		}
	}

	return Decision{}, apperror.ErrNoAvailableMoves
}

// winningCell is the first empty cell that completes a line for the selector.
func winningCell(own, _ entity.CellSet, empty []entity.Cell) (entity.Cell, bool) {
	for _, cell := range empty {
		if entity.HasWon(own.With(cell)) {
			return cell, true
		}
	}

	return 0, false
}

// blockingCell is the first empty cell that would complete a line for the opponent.
// Only one threat is answered.
func blockingCell(_, opponent entity.CellSet, empty []entity.Cell) (entity.Cell, bool) {
	defend := make([]entity.Cell, 0, len(empty))
	for _, cell := range empty {
		if entity.HasWon(opponent.With(cell)) {
			defend = append(defend, cell)
		}
	}

	if len(defend) == 0 {
		return 0, false
	}

	return defend[0], true
}

func centerCell(_, _ entity.CellSet, empty []entity.Cell) (entity.Cell, bool) {
	for _, cell := range empty {
		if cell == entity.CenterCell {
			return cell, true
		}
	}

	return 0, false
}

func randomCell(source RandSource) func(_, _ entity.CellSet, empty []entity.Cell) (entity.Cell, bool) {
	return func(_, _ entity.CellSet, empty []entity.Cell) (entity.Cell, bool) {
		if len(empty) == 0 {
			return 0, false
		}

		return empty[source.Intn(len(empty))], true
	}
}

type globalSource struct{}

func (globalSource) Intn(n int) int {
	return rand.Intn(n) //nolint: gosec // it's ok
}
