package engine

import (
	"context"
	"fmt"

	"connectx/game"
	"connectx/meta"
)

// Player proposes columns for the engine to play.
type Player interface {
	Name() string
	Color() string
	// Move blocks until the player picks a column or ctx is done.
	Move(ctx context.Context) (int, error)
}

type Status int

const (
	StatusReady Status = iota
	StatusPlay
	StatusWin
	StatusDraw
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusPlay:
		return "play"
	case StatusWin:
		return "win"
	case StatusDraw:
		return "draw"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// GameState is one of Ready, Play, Win or Draw. Snapshots are never mutated
// once published.
type GameState interface {
	Status() Status
	isGameState()
}

// Progress is what every started game carries. CurrentPlayer is the roster
// entry at len(History) modulo the roster size.
type Progress struct {
	Board         game.BoardState
	History       []game.Move
	CurrentPlayer Player
}

type Ready struct{}

type Play struct {
	Progress
}

type Win struct {
	Progress
	Winner      Player
	Coordinates [meta.WIN_LENGTH]game.Coord
}

type Draw struct {
	Progress
}

func (Ready) Status() Status { return StatusReady }
func (Play) Status() Status  { return StatusPlay }
func (Win) Status() Status   { return StatusWin }
func (Draw) Status() Status  { return StatusDraw }

func (Ready) isGameState() {}
func (Play) isGameState()  {}
func (Win) isGameState()   {}
func (Draw) isGameState()  {}

// ProgressOf returns the progress of a started game.
func ProgressOf(state GameState) (Progress, bool) {
	switch s := state.(type) {
	case Play:
		return s.Progress, true
	case Win:
		return s.Progress, true
	case Draw:
		return s.Progress, true
	default:
		return Progress{}, false
	}
}
