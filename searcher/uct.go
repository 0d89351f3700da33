package searcher

import (
	"context"
	"math"

	"connectx/game"
	"connectx/utils"
)

// UCT grows the tree one level per visit: a node gets a child for every open
// column the first time a playout reaches it, and children are then chosen by
// UCB1 all the way to the end of the game.
type UCT struct {
	search
}

func NewUCT(options ...Option) *UCT {
	u := &UCT{}
	u.configure(options)
	return u
}

func (u *UCT) Search(ctx context.Context, state game.BoardState, players, self int) (Decision, error) {
	tree := NewTree(node{col: -1, player: -1})
	return u.run(ctx, state, players, self, tree, -1, func(board *game.Board) (bool, error) {
		id := Root
		player := self
		for {
			if len(tree.Children(id)) == 0 {
				for _, col := range board.AvailableColumns() {
					tree.AddChild(id, node{col: col, player: player})
				}
			}
			id = u.selectChild(tree, id)

			move, err := board.Insert(tree.Data(id).col, player)
			if err != nil {
				return false, err
			}
			win, won := board.CheckWin(move)
			if won || board.IsFull() {
				backup(tree, id, won, win.Player)
				return won, nil
			}
			player = (player + 1) % players
		}
	})
}

// selectChild returns one of the children with the highest UCB1 value, chosen
// at random among equals.
func (u *UCT) selectChild(tree *Tree[node], parent NodeID) NodeID {
	lnN := math.Log(float64(tree.Data(parent).played))
	best := math.Inf(-1)
	var ties []NodeID
	for _, child := range tree.Children(parent) {
		n := tree.Data(child)
		value := ucb1(n.score, n.played, u.exploration, lnN)
		if value > best {
			best = value
			ties = ties[:0]
		}
		if value == best {
			ties = append(ties, child)
		}
	}
	return utils.PickRandom(u.rng, ties)
}

// backup scores every node from id up to and including the root.
func backup(tree *Tree[node], id NodeID, won bool, winner int) {
	for {
		n := tree.Data(id)
		n.played++
		n.score += reward(won, winner, n.player)

		parent, ok := tree.Parent(id)
		if !ok {
			return
		}
		id = parent
	}
}
