package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var rowSeparator = strings.TrimSuffix(strings.Repeat("---+", entity.BoardSide), "+") + "\n"

// renderBoard draws the board with O for circle, X for cross and the cell number for empty cells.
func renderBoard(state *entity.GameState) string {
	var b strings.Builder

	for _, cell := range entity.AllCells() {
		column := int(cell-entity.FirstCell) % entity.BoardSide

		if column > 0 {
			b.WriteString("|")
		}

		fmt.Fprintf(&b, " %s ", mark(state, cell))

		if column == entity.BoardSide-1 {
			b.WriteString("\n")
			if cell != entity.LastCell {
				b.WriteString(rowSeparator)
			}
		}
	}

	return b.String()
}

func mark(state *entity.GameState, cell entity.Cell) string {
	switch {
	case state.Circle.Contains(cell):
		return "O"
	case state.Cross.Contains(cell):
		return "X"
	}

	return strconv.Itoa(int(cell))
}

func announce(match *entity.Match) string {
	if match.Winner == string(entity.PlayerTie) {
		return "Game is a Tie!"
	}

	return match.Winner + " wins!"
}
