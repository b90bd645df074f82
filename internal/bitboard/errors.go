package bitboard

import "errors"

// ErrBoardTooLarge is returned when a board's cell count doesn't fit in a
// 128-bit set, or when either dimension is non-positive.
var ErrBoardTooLarge = errors.New("bitboard: board exceeds 128 cells")
