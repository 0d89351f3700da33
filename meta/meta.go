// meta/meta.go
package meta

import (
	"math"
	"time"
)

// DEFAULT_COLS defines the number of columns of a new board.
const DEFAULT_COLS = 7

// DEFAULT_ROWS defines the number of rows of a new board.
const DEFAULT_ROWS = 6

// WIN_LENGTH defines how many aligned discs win the game.
const WIN_LENGTH = 4

// RANDOM_DELAY defines the pause of a random player before it picks a column.
const RANDOM_DELAY = 300 * time.Millisecond

// TIME_LIMIT defines the search budget of the MCTS players.
const TIME_LIMIT = 1000 * time.Millisecond

// SLICE_DURATION defines the longest burst of work between two yields.
const SLICE_DURATION = 10 * time.Millisecond

// MAX_PER_SLICE defines the most units of work run in a single burst.
const MAX_PER_SLICE = 200

// EXPLORATION defines the UCB1 exploration constant.
const EXPLORATION = math.Sqrt2

// MAX_REJECTED_MOVES defines how many consecutive rejected columns a player may
// propose before the turn loop halts.
const MAX_REJECTED_MOVES = 3
