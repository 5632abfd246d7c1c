package pkg

import (
	"github.com/notnil/chess"
)

const (
	numrows = 8
	numcols = 8
)

func getSquare(f chess.File, r chess.Rank) chess.Square {
	return chess.Square((int(r) * 8) + int(f))
}

// RowCol maps a square to board grid coordinates. Row 0 is the top row
// of the rendered board, so with White at the bottom a8 lands on (0, 0).
// Flipping puts Black at the bottom.
func RowCol(sq chess.Square, flip bool) (row, col int) {
	row = numrows - int(sq.Rank()) - 1
	col = int(sq.File())
	if flip {
		row = numrows - row - 1
		col = numcols - col - 1
	}
	return row, col
}

// SquareAt is the exact inverse of RowCol at every flip state.
func SquareAt(row, col int, flip bool) chess.Square {
	if flip {
		row = numrows - row - 1
		col = numcols - col - 1
	}
	return getSquare(chess.File(col), chess.Rank(numrows-row-1))
}
