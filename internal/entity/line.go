package entity

// WinLine is a row, column or diagonal. Owning all three cells wins the game.
type WinLine [BoardSide]Cell

func (that WinLine) Set() CellSet {
	return NewCellSet(that[:]...)
}

// WinLines holds the 8 lines of the board: rows, then columns, then diagonals.
var WinLines = [...]WinLine{
	row(1),
	row(2),
	row(3),
	column(1),
	column(2),
	column(3),
	{1, 5, 9},
	{3, 5, 7},
}

var winSets = func() [len(WinLines)]CellSet {
	var sets [len(WinLines)]CellSet
	for i, line := range WinLines {
		sets[i] = line.Set()
	}

	return sets
}()

func row(n int) WinLine {
	first := Cell(BoardSide*(n-1)) + FirstCell
	return WinLine{first, first + 1, first + 2}
}

func column(n int) WinLine {
	first := Cell(n)
	return WinLine{first, first + BoardSide, first + 2*BoardSide}
}

// HasWon reports whether cells contains at least one complete WinLine.
func HasWon(cells CellSet) bool {
	for _, line := range winSets {
		if cells.Covers(line) {
			return true
		}
	}

	return false
}
