package game

import "errors"

// Sentinel errors returned by the engine. Callers match them with errors.Is;
// the wrapped message carries the offending move or parameter.
var (
	// ErrIllegalMove reports a move that is not legal in the current position.
	ErrIllegalMove = errors.New("illegal move")

	// ErrNoHistory reports an undo with no applied moves left to take back.
	ErrNoHistory = errors.New("no move to undo")

	// ErrInvalidConfiguration reports bad engine or game parameters.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrTerminalState reports an action on a finished game.
	ErrTerminalState = errors.New("game is over")
)
