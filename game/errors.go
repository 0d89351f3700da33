package game

import "fmt"

// Cause identifies what rule a DomainError reports.
type Cause int

const (
	InvalidColumn Cause = iota
	ColumnFull
	EmptyColumn
	GameAlreadyFinished
	NoCurrentPlayer
	GameNotInPlay
	NoLegalMoves
	PlayerNotInRoster
)

func (c Cause) String() string {
	switch c {
	case InvalidColumn:
		return "invalid column"
	case ColumnFull:
		return "column full"
	case EmptyColumn:
		return "empty column"
	case GameAlreadyFinished:
		return "game already finished"
	case NoCurrentPlayer:
		return "no current player"
	case GameNotInPlay:
		return "game not in play"
	case NoLegalMoves:
		return "no legal moves"
	case PlayerNotInRoster:
		return "player not in roster"
	default:
		return fmt.Sprintf("cause(%d)", int(c))
	}
}

// DomainError is the single error kind raised by the board, the engine and the players.
type DomainError struct {
	Cause   Cause
	Message string
}

func (e *DomainError) Error() string {
	if e.Message == "" {
		return e.Cause.String()
	}
	return e.Cause.String() + ": " + e.Message
}

// Is reports whether target is a DomainError with the same cause, so that
// errors.Is(err, ErrColumnFull) matches any column-full error.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Cause == e.Cause
}

var (
	ErrInvalidColumn       = &DomainError{Cause: InvalidColumn}
	ErrColumnFull          = &DomainError{Cause: ColumnFull}
	ErrEmptyColumn         = &DomainError{Cause: EmptyColumn}
	ErrGameAlreadyFinished = &DomainError{Cause: GameAlreadyFinished}
	ErrNoCurrentPlayer     = &DomainError{Cause: NoCurrentPlayer}
	ErrGameNotInPlay       = &DomainError{Cause: GameNotInPlay}
	ErrNoLegalMoves        = &DomainError{Cause: NoLegalMoves}
	ErrPlayerNotInRoster   = &DomainError{Cause: PlayerNotInRoster}
)

// Errorf builds a DomainError with a formatted message.
func Errorf(cause Cause, format string, args ...any) error {
	return &DomainError{Cause: cause, Message: fmt.Sprintf(format, args...)}
}
