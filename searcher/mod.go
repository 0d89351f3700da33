package searcher

import (
	"context"
	"math"
	"time"

	"connectx/game"
)

const WIN = 1.0
const DRAW = 0.5
const LOSS = 0.0

// Searcher picks a column for the player at index self of a roster of
// players, starting from board.
type Searcher interface {
	Search(ctx context.Context, board game.BoardState, players, self int) (Decision, error)
}

// Decision is the outcome of a search, with the statistics of every root column.
type Decision struct {
	Col        int
	Visits     []int     // per column, 0 when never tried
	Rates      []float64 // per column, score over visits
	Iterations int
	Elapsed    time.Duration
	Metric     Metric
}

var (
	_ Searcher = (*Flat)(nil)
	_ Searcher = (*UCT)(nil)
)

// node is the payload of a search tree node: the move that leads to it.
type node struct {
	col    int
	player int
	played int
	score  float64
}

func (n *node) rate(unplayed float64) float64 {
	if n.played == 0 {
		return unplayed
	}
	return n.score / float64(n.played)
}

func reward(won bool, winner, player int) float64 {
	switch {
	case won && winner == player:
		return WIN
	case !won:
		return DRAW
	default:
		return LOSS
	}
}

func ucb1(score float64, visits int, c, lnN float64) float64 {
	// Prioritize unexplored nodes
	if visits == 0 {
		return math.Inf(1)
	}

	n := float64(visits)
	return score/n + c*math.Sqrt(lnN/n)
}
