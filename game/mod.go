package game

import "connectx/meta"

// Empty marks an unoccupied cell in FullGrid.
const Empty = -1

// Move is a disc dropped by a player into a column. Player is the index of the
// player in the game roster.
type Move struct {
	Col    int `json:"col"`
	Player int `json:"player"`
}

// Coord addresses a cell, row 0 being the bottom of the board.
type Coord struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Win describes an aligned run of discs ending a game.
type Win struct {
	Player int                    `json:"player"`
	Coords [meta.WIN_LENGTH]Coord `json:"coords"`
}

// BoardState is a snapshot of a board: Cols stacks of player indices, bottom first.
type BoardState struct {
	Cols int     `json:"cols"`
	Rows int     `json:"rows"`
	Grid [][]int `json:"grid"`
}

// Copy returns a deep copy of the snapshot.
func (s BoardState) Copy() BoardState {
	grid := make([][]int, len(s.Grid))
	for c, stack := range s.Grid {
		grid[c] = make([]int, len(stack), max(len(stack), s.Rows))
		copy(grid[c], stack)
	}
	return BoardState{Cols: s.Cols, Rows: s.Rows, Grid: grid}
}
