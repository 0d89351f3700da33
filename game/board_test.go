package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	a = 0
	b = 1
)

func stacks(grid ...[]int) BoardState {
	return BoardState{Cols: 7, Rows: 6, Grid: append(grid, make([][]int, 7-len(grid))...)}
}

func TestBoardInsert(t *testing.T) {
	t.Run("stacks discs bottom first", func(t *testing.T) {
		board := NewBoard(7, 6)

		move, err := board.Insert(3, a)
		require.NoError(t, err)
		require.Equal(t, Move{Col: 3, Player: a}, move)
		_, err = board.Insert(3, b)
		require.NoError(t, err)

		require.Equal(t, []int{a, b}, board.State().Grid[3])
	})

	t.Run("fails with ColumnFull once a column holds Rows discs", func(t *testing.T) {
		board := NewBoard(7, 6)
		for i := 0; i < 6; i++ {
			_, err := board.Insert(0, i%2)
			require.NoError(t, err)
		}

		for i := 0; i < 3; i++ {
			_, err := board.Insert(0, a)
			require.ErrorIs(t, err, ErrColumnFull)
		}
		require.Len(t, board.State().Grid[0], 6, "Full column should not grow")
	})

	t.Run("fails with InvalidColumn out of range", func(t *testing.T) {
		board := NewBoard(7, 6)
		for _, col := range []int{-1, 7, 100} {
			_, err := board.Insert(col, a)
			require.ErrorIs(t, err, ErrInvalidColumn, "column %d", col)

			var domainErr *DomainError
			require.True(t, errors.As(err, &domainErr))
			require.Equal(t, InvalidColumn, domainErr.Cause)
		}
	})
}

func TestBoardRemove(t *testing.T) {
	board := NewBoard(7, 6)
	require.ErrorIs(t, board.Remove(2), ErrEmptyColumn)
	require.ErrorIs(t, board.Remove(9), ErrInvalidColumn)

	_, err := board.Insert(2, a)
	require.NoError(t, err)
	_, err = board.Insert(2, b)
	require.NoError(t, err)
	require.NoError(t, board.Remove(2))
	require.Equal(t, []int{a}, board.State().Grid[2])
}

func TestBoardAvailableColumns(t *testing.T) {
	board := FromState(stacks(
		[]int{a, b, a, b, a, b},
		[]int{a},
		[]int{},
		[]int{b, a, b, a, b, a},
	))

	require.Equal(t, []int{1, 2, 4, 5, 6}, board.AvailableColumns())
	ok, err := board.CanInsert(0)
	require.NoError(t, err)
	require.False(t, ok)
	ok, err = board.CanInsert(1)
	require.NoError(t, err)
	require.True(t, ok)
	_, err = board.CanInsert(7)
	require.ErrorIs(t, err, ErrInvalidColumn)
	require.False(t, board.IsFull())
}

func TestBoardIsFull(t *testing.T) {
	board := NewBoard(2, 2)
	for _, col := range []int{0, 0, 1} {
		_, err := board.Insert(col, a)
		require.NoError(t, err)
	}
	require.False(t, board.IsFull())
	_, err := board.Insert(1, b)
	require.NoError(t, err)
	require.True(t, board.IsFull())
	require.Empty(t, board.AvailableColumns())
}

func TestBoardFromState(t *testing.T) {
	t.Run("round-trips every legal sequence of inserts", func(t *testing.T) {
		board := NewBoard(7, 6)
		sequence := []int{3, 3, 2, 4, 0, 6, 6, 6, 1, 5, 3, 3, 3, 3}
		for i, col := range sequence {
			_, err := board.Insert(col, i%2)
			require.NoError(t, err)

			state := board.State()
			clone := FromState(state)
			require.Equal(t, state, clone.State())
			require.Equal(t, board.FullGrid(), clone.FullGrid())
		}
	})

	t.Run("clone does not share stacks with the source", func(t *testing.T) {
		board := NewBoard(7, 6)
		_, err := board.Insert(0, a)
		require.NoError(t, err)

		clone := FromState(board.State())
		_, err = clone.Insert(0, b)
		require.NoError(t, err)
		require.NoError(t, clone.Remove(0))
		require.NoError(t, clone.Remove(0))

		require.Equal(t, []int{a}, board.State().Grid[0], "Source should be untouched")
	})
}

func TestBoardFullGrid(t *testing.T) {
	board := NewBoard(3, 2)
	_, _ = board.Insert(1, a)
	_, _ = board.Insert(1, b)
	_, _ = board.Insert(2, a)

	require.Equal(t, [][]int{
		{Empty, a, a},
		{Empty, b, Empty},
	}, board.FullGrid())
}

func TestBoardCheckWin(t *testing.T) {
	tests := []struct {
		name  string
		state BoardState
		last  Move
		want  [4]Coord
	}{
		{
			name:  "top-left to bottom-right diagonal",
			state: stacks([]int{b, b, b, a}, []int{b, b, a}, []int{b, a}, []int{a}),
			last:  Move{Col: 3, Player: a},
			want:  [4]Coord{{0, 3}, {1, 2}, {2, 1}, {3, 0}},
		},
		{
			name:  "bottom-left to top-right diagonal",
			state: stacks([]int{a}, []int{b, a}, []int{b, b, a}, []int{b, a, b, a}),
			last:  Move{Col: 3, Player: a},
			want:  [4]Coord{{0, 0}, {1, 1}, {2, 2}, {3, 3}},
		},
		{
			name:  "horizontal with the last disc in the middle",
			state: stacks([]int{}, []int{a}, []int{a}, []int{a}, []int{a}),
			last:  Move{Col: 2, Player: a},
			want:  [4]Coord{{1, 0}, {2, 0}, {3, 0}, {4, 0}},
		},
		{
			name:  "vertical",
			state: stacks([]int{}, []int{}, []int{}, []int{b, a, a, a, a}),
			last:  Move{Col: 3, Player: a},
			want:  [4]Coord{{3, 1}, {3, 2}, {3, 3}, {3, 4}},
		},
		{
			name:  "five in a row reports the first four scanned",
			state: stacks([]int{a}, []int{a}, []int{a}, []int{a}, []int{a}),
			last:  Move{Col: 2, Player: a},
			want:  [4]Coord{{0, 0}, {1, 0}, {2, 0}, {3, 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := FromState(tt.state)
			win, ok := board.CheckWin(tt.last)

			require.True(t, ok)
			require.Equal(t, tt.last.Player, win.Player)
			require.Equal(t, tt.want, win.Coords)
			for _, coord := range win.Coords {
				require.Equal(t, tt.last.Player, board.State().Grid[coord.Col][coord.Row],
					"Every winning disc should belong to the winner")
			}
		})
	}
}

func TestBoardCheckWinNone(t *testing.T) {
	tests := []struct {
		name  string
		state BoardState
		last  Move
	}{
		{"three vertical", stacks([]int{}, []int{a, a, a}), Move{Col: 1, Player: a}},
		{"three horizontal", stacks([]int{a}, []int{a}, []int{a}, []int{b}), Move{Col: 2, Player: a}},
		{"three diagonal", stacks([]int{a}, []int{b, a}, []int{b, b, a}), Move{Col: 2, Player: a}},
		{"broken run", stacks([]int{a}, []int{a}, []int{b}, []int{a}, []int{a}), Move{Col: 4, Player: a}},
		{"run of the other player", stacks([]int{b}, []int{b}, []int{b}, []int{b}, []int{a}), Move{Col: 4, Player: a}},
		{"empty column", stacks(), Move{Col: 0, Player: a}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := FromState(tt.state).CheckWin(tt.last)
			require.False(t, ok)
		})
	}
}

func TestDomainErrorIs(t *testing.T) {
	err := Errorf(ColumnFull, "column %d is full", 4)

	require.ErrorIs(t, err, ErrColumnFull)
	require.NotErrorIs(t, err, ErrInvalidColumn)
	require.Equal(t, "column full: column 4 is full", err.Error())
	require.Equal(t, "no legal moves", ErrNoLegalMoves.Error())
}
