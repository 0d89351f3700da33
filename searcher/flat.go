package searcher

import (
	"context"

	"connectx/game"
	"connectx/utils"
)

// Flat is a pure Monte Carlo searcher: every playout picks uniformly random
// columns and records its path in the tree, so that the root children collect
// the win rate of each first move.
type Flat struct {
	search
}

func NewFlat(options ...Option) *Flat {
	f := &Flat{}
	f.configure(options)
	return f
}

func (f *Flat) Search(ctx context.Context, state game.BoardState, players, self int) (Decision, error) {
	tree := NewTree(node{col: -1, player: -1})
	return f.run(ctx, state, players, self, tree, 0, func(board *game.Board) (bool, error) {
		id := Root
		player := self
		for {
			col := utils.PickRandom(f.rng, board.AvailableColumns())
			move, err := board.Insert(col, player)
			if err != nil {
				return false, err
			}
			id = findOrAdd(tree, id, col, player)

			win, won := board.CheckWin(move)
			if won || board.IsFull() {
				f.backup(tree, id, won, win.Player)
				return won, nil
			}
			player = (player + 1) % players
		}
	})
}

// backup credits a win to every node on the path whose mover won. The root
// is left untouched.
func (f *Flat) backup(tree *Tree[node], id NodeID, won bool, winner int) {
	for id != Root {
		n := tree.Data(id)
		n.played++
		if won && n.player == winner {
			n.score += WIN
		}
		id, _ = tree.Parent(id)
	}
}

func findOrAdd(tree *Tree[node], parent NodeID, col, player int) NodeID {
	for _, child := range tree.Children(parent) {
		if n := tree.Data(child); n.col == col && n.player == player {
			return child
		}
	}
	return tree.AddChild(parent, node{col: col, player: player})
}
