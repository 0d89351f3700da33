package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"connectx/game"
	"connectx/meta"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	errStaleGame = errors.New("move belongs to a previous game")
	errStaleTurn = errors.New("move belongs to a turn already played")
)

type subscriber struct {
	id int
	fn func()
}

// Engine runs one game at a time. A new Start abandons the previous game.
type Engine struct {
	cols   int
	rows   int
	logger zerolog.Logger

	mu      sync.Mutex
	id      uuid.UUID
	log     zerolog.Logger
	board   *game.Board
	players []Player
	history []game.Move
	state   GameState
	err     error
	gen     uint64 // bumped by every Start
	cancel  context.CancelFunc
	done    chan struct{}

	subs    []subscriber
	nextSub int
}

type Option func(e *Engine)

func WithSize(cols, rows int) Option {
	return func(e *Engine) {
		if cols > 0 && rows > 0 {
			e.cols, e.rows = cols, rows
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func New(options ...Option) *Engine {
	e := &Engine{ // Default values
		cols:   meta.DEFAULT_COLS,
		rows:   meta.DEFAULT_ROWS,
		logger: log.Logger,
		state:  Ready{},
	}
	for _, option := range options {
		option(e)
	}
	e.log = e.logger
	return e
}

// Start resets the board, installs the roster and launches the turn loop.
// It returns the initial Play snapshot without waiting for any move.
func (e *Engine) Start(ctx context.Context, players []Player) (GameState, error) {
	e.mu.Lock()
	if e.cancel != nil {
		e.cancel()
	}
	e.gen++
	gen := e.gen
	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	done := make(chan struct{})
	e.done = done

	e.id = uuid.New()
	e.log = e.logger.With().Str("game", e.id.String()).Logger()
	e.board = game.NewBoard(e.cols, e.rows)
	e.players = slices.Clone(players)
	e.history = nil
	e.err = nil
	e.state = Play{Progress: e.progress()}
	state := e.state
	e.log.Info().Msgf("starting a %dx%d game with %d players", e.cols, e.rows, len(players))
	e.mu.Unlock()

	e.notify()
	go e.loop(ctx, cancel, gen, done)
	return state, nil
}

// Insert plays col for the current player of the current game.
func (e *Engine) Insert(col int) (GameState, error) {
	e.mu.Lock()
	state, err := e.insert(col)
	e.mu.Unlock()

	if err != nil {
		return state, err
	}
	e.notify()
	return state, nil
}

// insertGen plays col only if game gen is still at the given turn, so that a
// column is never recorded for a player other than the one who proposed it.
func (e *Engine) insertGen(gen uint64, turn, col int) (GameState, error) {
	e.mu.Lock()
	if e.gen != gen {
		e.mu.Unlock()
		return nil, errStaleGame
	}
	if len(e.history) != turn {
		e.mu.Unlock()
		return nil, errStaleTurn
	}
	state, err := e.insert(col)
	e.mu.Unlock()

	if err != nil {
		return state, err
	}
	e.notify()
	return state, nil
}

// insert must be called with mu held.
func (e *Engine) insert(col int) (GameState, error) {
	if _, ok := e.state.(Play); !ok {
		return e.state, game.Errorf(game.GameAlreadyFinished, "game is in state %s", e.state.Status())
	}
	if e.current() == nil {
		return e.state, game.ErrNoCurrentPlayer
	}

	move, err := e.board.Insert(col, len(e.history)%len(e.players))
	if err != nil {
		return e.state, err
	}
	e.history = append(e.history, move)

	if win, ok := e.board.CheckWin(move); ok {
		e.state = Win{Progress: e.progress(), Winner: e.players[win.Player], Coordinates: win.Coords}
		e.log.Info().Msgf("%s wins after %d moves", e.players[win.Player].Name(), len(e.history))
	} else if e.board.IsFull() {
		e.state = Draw{Progress: e.progress()}
		e.log.Info().Msgf("draw after %d moves", len(e.history))
	} else {
		e.state = Play{Progress: e.progress()}
	}
	return e.state, nil
}

func (e *Engine) current() Player {
	if len(e.players) == 0 {
		return nil
	}
	return e.players[len(e.history)%len(e.players)]
}

func (e *Engine) progress() Progress {
	return Progress{
		Board:         e.board.State(),
		History:       slices.Clone(e.history),
		CurrentPlayer: e.current(),
	}
}

func (e *Engine) loop(ctx context.Context, cancel context.CancelFunc, gen uint64, done chan struct{}) {
	defer close(done)
	defer cancel()

	rejected := 0
	for {
		e.mu.Lock()
		if e.gen != gen {
			e.mu.Unlock()
			return
		}
		play, ok := e.state.(Play)
		logger := e.log
		e.mu.Unlock()
		if !ok {
			return
		}

		player, turn := play.CurrentPlayer, len(play.History)
		if player == nil {
			e.halt(gen, game.ErrNoCurrentPlayer)
			return
		}

		col, err := player.Move(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logger.Debug().Msgf("%s stopped waiting: %v", player.Name(), ctx.Err())
				return
			}
			e.halt(gen, fmt.Errorf("%s failed to move: %w", player.Name(), err))
			return
		}

		_, err = e.insertGen(gen, turn, col)
		switch {
		case err == nil:
			rejected = 0
			logger.Debug().Msgf("%s inserted in column %d", player.Name(), col)
		case errors.Is(err, errStaleGame):
			return
		case errors.Is(err, errStaleTurn):
			rejected = 0
			logger.Debug().Msgf("dropped column %d of %s, turn %d was played meanwhile", col, player.Name(), turn+1)
		case errors.Is(err, game.ErrInvalidColumn), errors.Is(err, game.ErrColumnFull):
			rejected++
			logger.Warn().Err(err).Msgf("%s proposed column %d (%d/%d)", player.Name(), col, rejected, meta.MAX_REJECTED_MOVES)
			if rejected >= meta.MAX_REJECTED_MOVES {
				e.halt(gen, fmt.Errorf("%s proposed %d rejected columns: %w", player.Name(), rejected, err))
				return
			}
		default:
			e.halt(gen, err)
			return
		}
	}
}

// halt stops the turn loop of game gen, leaving the game in Play.
func (e *Engine) halt(gen uint64, err error) {
	e.mu.Lock()
	if e.gen != gen {
		e.mu.Unlock()
		return
	}
	e.err = err
	logger := e.log
	e.mu.Unlock()

	logger.Error().Err(err).Msg("turn loop halted")
	e.notify()
}

// Subscribe registers fn to be called after every change of state. The
// returned function removes it.
func (e *Engine) Subscribe(fn func()) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextSub
	e.nextSub++
	e.subs = append(e.subs, subscriber{id: id, fn: fn})

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.subs = slices.DeleteFunc(e.subs, func(s subscriber) bool { return s.id == id })
	}
}

func (e *Engine) notify() {
	e.mu.Lock()
	subs := slices.Clone(e.subs)
	e.mu.Unlock()

	for _, s := range subs {
		s.fn()
	}
}

func (e *Engine) State() GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Engine) Players() []Player {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.players)
}

func (e *Engine) AvailableColumns() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.board == nil {
		return nil
	}
	return e.board.AvailableColumns()
}

// ID identifies the current game; it changes on every Start.
func (e *Engine) ID() uuid.UUID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.id
}

// Logger returns the logger of the current game, tagged with its id.
func (e *Engine) Logger() zerolog.Logger {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.log
}

// Err returns why the turn loop of the current game halted, if it did.
func (e *Engine) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// Wait blocks until the turn loop of the current game exits or ctx is done.
func (e *Engine) Wait(ctx context.Context) (GameState, error) {
	e.mu.Lock()
	done := e.done
	e.mu.Unlock()

	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			return e.State(), ctx.Err()
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state, e.err
}
