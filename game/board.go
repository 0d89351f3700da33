package game

import (
	"connectx/meta"
)

// axes are the four lines through a disc, in the order they are checked:
// top-left to bottom-right, bottom-left to top-right, horizontal, vertical.
var axes = [4]Coord{{Col: 1, Row: -1}, {Col: 1, Row: 1}, {Col: 1, Row: 0}, {Col: 0, Row: 1}}

// Board is a grid of Cols columns, each a stack of at most Rows discs.
type Board struct {
	cols int
	rows int
	grid [][]int
}

// NewBoard returns an empty board.
func NewBoard(cols, rows int) *Board {
	grid := make([][]int, cols)
	for c := range grid {
		grid[c] = make([]int, 0, rows)
	}
	return &Board{cols: cols, rows: rows, grid: grid}
}

// FromState clones a snapshot into a new board, so that speculative play never
// touches the board the snapshot came from.
func FromState(state BoardState) *Board {
	s := state.Copy()
	for len(s.Grid) < s.Cols {
		s.Grid = append(s.Grid, make([]int, 0, s.Rows))
	}
	return &Board{cols: s.Cols, rows: s.Rows, grid: s.Grid}
}

func (b *Board) Cols() int { return b.cols }
func (b *Board) Rows() int { return b.rows }

// State returns a deep copy of the board.
func (b *Board) State() BoardState {
	return BoardState{Cols: b.cols, Rows: b.rows, Grid: b.grid}.Copy()
}

// FullGrid returns the board row by row, bottom row first, with Empty for free cells.
func (b *Board) FullGrid() [][]int {
	full := make([][]int, b.rows)
	for r := range full {
		full[r] = make([]int, b.cols)
		for c := range full[r] {
			full[r][c] = b.at(c, r)
		}
	}
	return full
}

func (b *Board) validate(col int) error {
	if col < 0 || col >= b.cols {
		return Errorf(InvalidColumn, "column %d not in [0,%d)", col, b.cols)
	}
	return nil
}

// CanInsert reports whether col has room for another disc.
func (b *Board) CanInsert(col int) (bool, error) {
	if err := b.validate(col); err != nil {
		return false, err
	}
	return len(b.grid[col]) < b.rows, nil
}

// AvailableColumns returns the columns with room, in ascending order.
func (b *Board) AvailableColumns() []int {
	cols := make([]int, 0, b.cols)
	for c, stack := range b.grid {
		if len(stack) < b.rows {
			cols = append(cols, c)
		}
	}
	return cols
}

// Insert drops a disc of player into col.
func (b *Board) Insert(col, player int) (Move, error) {
	if err := b.validate(col); err != nil {
		return Move{}, err
	}
	if len(b.grid[col]) >= b.rows {
		return Move{}, Errorf(ColumnFull, "column %d is full", col)
	}
	b.grid[col] = append(b.grid[col], player)
	return Move{Col: col, Player: player}, nil
}

// Remove takes the top disc out of col.
func (b *Board) Remove(col int) error {
	if err := b.validate(col); err != nil {
		return err
	}
	if len(b.grid[col]) == 0 {
		return Errorf(EmptyColumn, "column %d is empty", col)
	}
	b.grid[col] = b.grid[col][:len(b.grid[col])-1]
	return nil
}

// IsFull reports whether every column is at capacity.
func (b *Board) IsFull() bool {
	for _, stack := range b.grid {
		if len(stack) < b.rows {
			return false
		}
	}
	return true
}

func (b *Board) at(col, row int) int {
	if col < 0 || col >= b.cols || row < 0 || row >= len(b.grid[col]) {
		return Empty
	}
	return b.grid[col][row]
}

// CheckWin looks for WIN_LENGTH aligned discs through the top disc of last.Col.
// Only the window of offsets -3..+3 around that disc on each axis is scanned.
func (b *Board) CheckWin(last Move) (Win, bool) {
	if last.Col < 0 || last.Col >= b.cols || len(b.grid[last.Col]) == 0 {
		return Win{}, false
	}
	row := len(b.grid[last.Col]) - 1
	reach := meta.WIN_LENGTH - 1

	for _, axis := range axes {
		var run [meta.WIN_LENGTH]Coord
		n := 0
		for i := -reach; i <= reach; i++ {
			c, r := last.Col+axis.Col*i, row+axis.Row*i
			if b.at(c, r) != last.Player {
				n = 0
				continue
			}
			run[n] = Coord{Col: c, Row: r}
			n++
			if n == meta.WIN_LENGTH {
				return Win{Player: last.Player, Coords: run}, true
			}
		}
	}
	return Win{}, false
}
