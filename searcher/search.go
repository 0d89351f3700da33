package searcher

import (
	"context"
	"sync"
	"time"

	"connectx/game"
	"connectx/meta"
	"connectx/timeslice"
	"connectx/utils"

	"golang.org/x/exp/rand"
)

// search holds what Flat and UCT share: the budget, the random source and the metrics.
type search struct {
	duration    time.Duration
	exploration float64
	seed        uint64
	slicing     []timeslice.Option
	collector   func() Collector

	mu  sync.Mutex // serializes searches sharing rng
	rng *rand.Rand
}

func (s *search) configure(options []Option) {
	// Default values
	s.duration = meta.TIME_LIMIT
	s.exploration = meta.EXPLORATION
	s.collector = NewDummyCollector
	for _, option := range options {
		option(s)
	}
	s.rng = utils.NewRand(s.seed)
}

// playout plays one simulated game to its end on a private board and reports
// whether it ended with a win.
type playout func(board *game.Board) (won bool, err error)

// run repeats simulate on clones of state until the budget is spent, then picks
// the best root child. Unplayed children rate as unplayed.
func (s *search) run(ctx context.Context, state game.BoardState, players, self int,
	tree *Tree[node], unplayed float64, simulate playout) (Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if players < 1 || self < 0 || self >= players {
		return Decision{}, game.Errorf(game.PlayerNotInRoster, "player %d of %d", self, players)
	}
	legal := game.FromState(state).AvailableColumns()
	if len(legal) == 0 {
		return Decision{}, game.ErrNoLegalMoves
	}

	metrics := s.collector()
	metrics.Start()
	report, err := timeslice.Run(ctx, func(context.Context) error {
		won, err := simulate(game.FromState(state))
		if err != nil {
			return err
		}
		metrics.AddPlayout(won)
		return nil
	}, s.duration, s.slicing...)
	if err != nil {
		return Decision{}, err
	}

	decision := Decision{
		Visits:     make([]int, state.Cols),
		Rates:      make([]float64, state.Cols),
		Iterations: report.Iterations,
		Elapsed:    report.Elapsed,
		Metric:     metrics.Complete(report.Slices, tree.Len()),
	}
	for _, child := range tree.Children(Root) {
		n := tree.Data(child)
		decision.Visits[n.col] = n.played
		decision.Rates[n.col] = n.rate(0)
	}

	if len(tree.Children(Root)) == 0 {
		// Budget spent before the first playout
		decision.Col = utils.PickRandom(s.rng, legal)
	} else {
		decision.Col = tree.Data(s.best(tree, unplayed)).col
	}
	return decision, nil
}

// best compares root children by rate, then by visits, then by a coin flip.
func (s *search) best(tree *Tree[node], unplayed float64) NodeID {
	children := tree.Children(Root)
	best := children[0]
	for _, child := range children[1:] {
		c, b := tree.Data(child), tree.Data(best)
		cr, br := c.rate(unplayed), b.rate(unplayed)
		switch {
		case cr != br:
			if cr > br {
				best = child
			}
		case c.played != b.played:
			if c.played > b.played {
				best = child
			}
		case s.rng.Float64() < 0.5:
			best = child
		}
	}
	return best
}
