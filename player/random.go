package player

import (
	"context"
	"sync"
	"time"

	"connectx/engine"
	"connectx/game"
	"connectx/meta"
	"connectx/utils"

	"golang.org/x/exp/rand"
)

// Random waits a little, then drops a disc in any open column.
type Random struct {
	game  Game
	name  string
	color string
	delay time.Duration

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// NewRandom uses meta.RANDOM_DELAY for a negative delay.
func NewRandom(g Game, name, color string, delay time.Duration, seed uint64) *Random {
	if delay < 0 {
		delay = meta.RANDOM_DELAY
	}
	return &Random{game: g, name: name, color: color, delay: delay, rng: utils.NewRand(seed)}
}

func (r *Random) Name() string  { return r.name }
func (r *Random) Color() string { return r.color }

func (r *Random) Move(ctx context.Context) (int, error) {
	if r.delay > 0 {
		timer := time.NewTimer(r.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}

	if status := r.game.State().Status(); status != engine.StatusPlay {
		return 0, game.Errorf(game.GameNotInPlay, "game is in state %s", status)
	}
	cols := r.game.AvailableColumns()
	if len(cols) == 0 {
		return 0, game.ErrNoLegalMoves
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return utils.PickRandom(r.rng, cols), nil
}
