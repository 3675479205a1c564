package entity

import (
	"encoding/json"
	"fmt"
	"math/bits"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// BoardSide is the number of cells in a row or column.
const BoardSide = 3

// Cell is a board position numbered 1..9 row-major from the top-left corner.
type Cell int

const (
	FirstCell  Cell = 1
	CenterCell Cell = 5
	LastCell   Cell = BoardSide * BoardSide
)

func (that Cell) Valid() bool {
	return that >= FirstCell && that <= LastCell
}

// AllCells returns every cell of the board in increasing order.
func AllCells() []Cell {
	cells := make([]Cell, 0, LastCell)
	for cell := FirstCell; cell <= LastCell; cell++ {
		cells = append(cells, cell)
	}

	return cells
}

// CellSet is a set of cells stored as a bit mask, bit 0 being cell 1.
type CellSet uint16

// NewCellSet builds a set from the given cells, ignoring out-of-range ones.
func NewCellSet(cells ...Cell) CellSet {
	var set CellSet
	for _, cell := range cells {
		set = set.With(cell)
	}

	return set
}

func (that CellSet) Contains(cell Cell) bool {
	return cell.Valid() && that&cellBit(cell) != 0
}

// With returns a copy of the set that also holds cell.
func (that CellSet) With(cell Cell) CellSet {
	if !cell.Valid() {
		return that
	}

	return that | cellBit(cell)
}

func (that CellSet) Union(other CellSet) CellSet {
	return that | other
}

func (that CellSet) Intersects(other CellSet) bool {
	return that&other != 0
}

// Covers reports whether every cell of other is also in the set.
func (that CellSet) Covers(other CellSet) bool {
	return that&other == other
}

func (that CellSet) Len() int {
	return bits.OnesCount16(uint16(that))
}

func (that CellSet) IsEmpty() bool {
	return that == 0
}

// Cells lists the members of the set in increasing order.
func (that CellSet) Cells() []Cell {
	cells := make([]Cell, 0, that.Len())
	for cell := FirstCell; cell <= LastCell; cell++ {
		if that.Contains(cell) {
			cells = append(cells, cell)
		}
	}

	return cells
}

func (that CellSet) MarshalJSON() ([]byte, error) {
	cells := that.Cells()

	numbers := make([]int, len(cells))
	for i, cell := range cells {
		numbers[i] = int(cell)
	}

	return json.Marshal(numbers)
}

func (that *CellSet) UnmarshalJSON(data []byte) error {
	var numbers []int
	if err := json.Unmarshal(data, &numbers); err != nil {
		return fmt.Errorf("failed to unmarshal cell set: %w", err)
	}

	var set CellSet
	for _, number := range numbers {
		cell := Cell(number)
		if !cell.Valid() {
			return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, number)
		}
		set = set.With(cell)
	}

	*that = set

	return nil
}

func cellBit(cell Cell) CellSet {
	return 1 << uint(cell-FirstCell)
}
