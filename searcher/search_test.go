package searcher

import (
	"context"
	"testing"
	"time"

	"connectx/game"
	"connectx/timeslice"

	"github.com/stretchr/testify/require"
)

func state(grid ...[]int) game.BoardState {
	return game.BoardState{Cols: 7, Rows: 6, Grid: append(grid, make([][]int, 7-len(grid))...)}
}

// steppingClock advances by step on every reading, making iteration counts
// independent of the machine.
func steppingClock(step time.Duration) timeslice.Option {
	t := time.Time{}
	return timeslice.WithClock(func() time.Time {
		t = t.Add(step)
		return t
	})
}

func searchers(options ...Option) map[string]Searcher {
	return map[string]Searcher{
		"flat": NewFlat(options...),
		"uct":  NewUCT(options...),
	}
}

func TestSearch(t *testing.T) {
	// Player 0 completes column 3 with its next disc.
	winInOne := state([]int{1}, []int{1}, []int{1}, []int{0, 0, 0})

	// Only columns 2 and 5 are open.
	full := []int{0, 0, 1, 1, 0, 0}
	twoOpen := state(full, full, nil, full, full, nil, full)

	for name, searcher := range searchers(WithDuration(200*time.Millisecond), WithSeed(1)) {
		t.Run(name+" takes a win in one", func(t *testing.T) {
			decision, err := searcher.Search(context.Background(), winInOne, 2, 0)
			require.NoError(t, err)
			require.Equal(t, 3, decision.Col)
			require.Equal(t, 1.0, decision.Rates[3])
		})
	}

	for name, searcher := range searchers(WithDuration(30 * time.Millisecond)) {
		t.Run(name+" only returns open columns", func(t *testing.T) {
			for i := 0; i < 5; i++ {
				decision, err := searcher.Search(context.Background(), twoOpen, 2, i%2)
				require.NoError(t, err)
				require.Contains(t, []int{2, 5}, decision.Col)
			}
		})
	}

	for name, searcher := range searchers(WithDuration(100*time.Millisecond), WithSlicing(steppingClock(time.Millisecond)), WithMetrics()) {
		t.Run(name+" counts one root visit per playout", func(t *testing.T) {
			decision, err := searcher.Search(context.Background(), winInOne, 2, 0)
			require.NoError(t, err)

			visits := 0
			for _, v := range decision.Visits {
				visits += v
			}
			require.Positive(t, decision.Iterations)
			require.Equal(t, decision.Iterations, visits)
			require.Equal(t, decision.Iterations, decision.Metric.Playouts)
			require.Equal(t, decision.Metric.Playouts, decision.Metric.Wins+decision.Metric.Draws)
			require.Greater(t, decision.Metric.TreeSize, 1)
		})
	}

	for name, searcher := range searchers(WithDuration(time.Millisecond), WithSlicing(steppingClock(time.Second))) {
		t.Run(name+" falls back to a random open column", func(t *testing.T) {
			decision, err := searcher.Search(context.Background(), twoOpen, 2, 0)
			require.NoError(t, err)
			require.Zero(t, decision.Iterations)
			require.Contains(t, []int{2, 5}, decision.Col)
		})
	}

	for name, searcher := range searchers(WithDuration(10 * time.Millisecond)) {
		t.Run(name+" fails without open columns", func(t *testing.T) {
			_, err := searcher.Search(context.Background(), state(full, full, full, full, full, full, full), 2, 0)
			require.ErrorIs(t, err, game.ErrNoLegalMoves)
		})

		t.Run(name+" fails for a player outside the roster", func(t *testing.T) {
			_, err := searcher.Search(context.Background(), winInOne, 2, 2)
			require.ErrorIs(t, err, game.ErrPlayerNotInRoster)
		})

		t.Run(name+" stops when the context is cancelled", func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := searcher.Search(ctx, winInOne, 2, 0)
			require.ErrorIs(t, err, context.Canceled)
		})
	}
}

func TestUCTSelectChild(t *testing.T) {
	u := NewUCT(WithSeed(3))

	t.Run("picks the unvisited child", func(t *testing.T) {
		tree := NewTree(node{col: -1, player: -1, played: 4})
		tree.AddChild(Root, node{col: 0, played: 4, score: 4})
		unvisited := tree.AddChild(Root, node{col: 1})

		for i := 0; i < 20; i++ {
			require.Equal(t, unvisited, u.selectChild(tree, Root))
		}
	})

	t.Run("breaks ties at random", func(t *testing.T) {
		tree := NewTree(node{col: -1, player: -1})
		for col := 0; col < 3; col++ {
			tree.AddChild(Root, node{col: col})
		}

		picked := map[NodeID]bool{}
		for i := 0; i < 100; i++ {
			picked[u.selectChild(tree, Root)] = true
		}
		require.Len(t, picked, 3, "Every unvisited child should come up")
	})

	t.Run("prefers the higher upper bound", func(t *testing.T) {
		tree := NewTree(node{col: -1, player: -1, played: 20})
		strong := tree.AddChild(Root, node{col: 0, played: 10, score: 9})
		tree.AddChild(Root, node{col: 1, played: 10, score: 1})

		require.Equal(t, strong, u.selectChild(tree, Root))
	})
}

func TestBackup(t *testing.T) {
	newPath := func() (*Tree[node], NodeID, NodeID) {
		tree := NewTree(node{col: -1, player: -1})
		mine := tree.AddChild(Root, node{col: 3, player: 0})
		theirs := tree.AddChild(mine, node{col: 4, player: 1})
		return tree, mine, theirs
	}

	t.Run("uct credits the winner up to the root", func(t *testing.T) {
		tree, mine, theirs := newPath()
		backup(tree, theirs, true, 1)

		require.Equal(t, node{col: 4, player: 1, played: 1, score: WIN}, *tree.Data(theirs))
		require.Equal(t, node{col: 3, player: 0, played: 1, score: LOSS}, *tree.Data(mine))
		require.Equal(t, 1, tree.Data(Root).played)
	})

	t.Run("uct credits half a point on a draw", func(t *testing.T) {
		tree, mine, theirs := newPath()
		backup(tree, theirs, false, 0)

		require.Equal(t, DRAW, tree.Data(theirs).score)
		require.Equal(t, DRAW, tree.Data(mine).score)
		require.Equal(t, DRAW, tree.Data(Root).score)
	})

	t.Run("flat skips the root and ignores draws", func(t *testing.T) {
		tree, mine, theirs := newPath()
		f := NewFlat()
		f.backup(tree, theirs, true, 0)
		f.backup(tree, theirs, false, 0)

		require.Equal(t, node{col: 3, player: 0, played: 2, score: WIN}, *tree.Data(mine))
		require.Equal(t, node{col: 4, player: 1, played: 2}, *tree.Data(theirs))
		require.Zero(t, tree.Data(Root).played)
	})
}

func TestFindOrAdd(t *testing.T) {
	tree := NewTree(node{col: -1, player: -1})
	a := findOrAdd(tree, Root, 2, 0)
	require.Equal(t, a, findOrAdd(tree, Root, 2, 0))
	require.NotEqual(t, a, findOrAdd(tree, Root, 2, 1), "Same column by another player is another node")
	require.Equal(t, 3, tree.Len())
}

func TestBest(t *testing.T) {
	s := NewFlat(WithSeed(5))

	t.Run("by rate", func(t *testing.T) {
		tree := NewTree(node{col: -1, player: -1})
		tree.AddChild(Root, node{col: 0, played: 10, score: 5})
		best := tree.AddChild(Root, node{col: 1, played: 2, score: 2})
		require.Equal(t, best, s.best(tree, 0))
	})

	t.Run("then by visits", func(t *testing.T) {
		tree := NewTree(node{col: -1, player: -1})
		tree.AddChild(Root, node{col: 0, played: 2, score: 1})
		best := tree.AddChild(Root, node{col: 1, played: 10, score: 5})
		require.Equal(t, best, s.best(tree, 0))
	})

	t.Run("unplayed rate decides against weak children", func(t *testing.T) {
		tree := NewTree(node{col: -1, player: -1})
		tree.AddChild(Root, node{col: 0})
		lost := tree.AddChild(Root, node{col: 1, played: 4})

		require.Equal(t, lost, s.best(tree, -1), "Unplayed rates -1 below a 0 rate")
	})
}

func TestUCB1(t *testing.T) {
	require.True(t, ucb1(3, 0, 1.4, 2) > 1e300, "Unvisited should be +Inf")
	require.InDelta(t, 0.5+1.4*0.5, ucb1(2, 4, 1.4, 1), 1e-9)
}
