package engine

import "errors"

var (
	// ErrBoardTooLarge means the board's width*height exceeds the 128-cell
	// bitboard capacity.
	ErrBoardTooLarge = errors.New("engine: board exceeds 128 cells")
	// ErrSnakeOverflow means more snakes were supplied than MaxSnakes.
	ErrSnakeOverflow = errors.New("engine: more snakes than MaxSnakes")
	// ErrInvalidPoint means a body or food coordinate fell outside the board.
	ErrInvalidPoint = errors.New("engine: point out of bounds")
	// ErrEmptyBody means a snake was supplied with zero body points.
	ErrEmptyBody = errors.New("engine: snake has no body")
	// ErrHeadMismatch means a supplied head coordinate didn't match the
	// first point of that snake's body.
	ErrHeadMismatch = errors.New("engine: head does not match first body point")

	// errAborted is returned internally up the step/turn call chain when
	// the search's time budget is exhausted. It never escapes Driver.Run.
	errAborted = errors.New("engine: search aborted on time budget")
)
