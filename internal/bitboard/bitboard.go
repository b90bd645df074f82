// Package bitboard implements a fixed-width, up-to-128-cell bit set and the
// mask-aware cardinal shifts the move-selection engine runs its search over.
//
// Go has no native 128-bit integer, so a Bits value is a pair of uint64
// words (the original engine this package is modeled on used a compiler
// __uint128_t extension). Popcount becomes two hardware popcounts summed.
package bitboard

import "math/bits"

// Bits is a 128-bit set, bit i addressing cell i. Lo holds bits 0-63, Hi
// holds bits 64-127.
type Bits struct {
	Lo, Hi uint64
}

// BitAt returns a Bits value with only bit i set. i must be in [0, 128).
func BitAt(i int) Bits {
	if i < 64 {
		return Bits{Lo: 1 << uint(i)}
	}
	return Bits{Hi: 1 << uint(i-64)}
}

func onesMask(n int) Bits {
	switch {
	case n <= 0:
		return Bits{}
	case n >= 128:
		return Bits{Lo: ^uint64(0), Hi: ^uint64(0)}
	case n < 64:
		return Bits{Lo: 1<<uint(n) - 1}
	default:
		return Bits{Lo: ^uint64(0), Hi: 1<<uint(n-64) - 1}
	}
}

func (b Bits) IsZero() bool { return b.Lo == 0 && b.Hi == 0 }

func (b Bits) Equal(o Bits) bool { return b.Lo == o.Lo && b.Hi == o.Hi }

func (b Bits) Or(o Bits) Bits  { return Bits{b.Lo | o.Lo, b.Hi | o.Hi} }
func (b Bits) And(o Bits) Bits { return Bits{b.Lo & o.Lo, b.Hi & o.Hi} }
func (b Bits) Xor(o Bits) Bits { return Bits{b.Lo ^ o.Lo, b.Hi ^ o.Hi} }

// AndNot returns b with every bit set in o cleared.
func (b Bits) AndNot(o Bits) Bits { return Bits{b.Lo &^ o.Lo, b.Hi &^ o.Hi} }

// TestBit reports whether bit i is set.
func (b Bits) TestBit(i int) bool {
	if i < 64 {
		return b.Lo&(1<<uint(i)) != 0
	}
	return b.Hi&(1<<uint(i-64)) != 0
}

// WithBit returns b with bit i set to the given value.
func (b Bits) WithBit(i int, set bool) Bits {
	if set {
		return b.Or(BitAt(i))
	}
	return b.AndNot(BitAt(i))
}

// Index returns the position of the single set bit in b. The result is
// meaningless if b does not have exactly one bit set.
func (b Bits) Index() int {
	if b.Lo != 0 {
		return bits.TrailingZeros64(b.Lo)
	}
	return 64 + bits.TrailingZeros64(b.Hi)
}

// PopCount returns the number of set bits.
func (b Bits) PopCount() int {
	return bits.OnesCount64(b.Lo) + bits.OnesCount64(b.Hi)
}

// Shl shifts left by n bits, n in [0, 128]. Go defines a shift of a uint64
// by >= 64 as zero, which is exactly what the >64 and <64 branches below
// rely on instead of special-casing n == 0 or n == 64.
func (b Bits) Shl(n uint) Bits {
	if n >= 128 {
		return Bits{}
	}
	if n >= 64 {
		return Bits{Hi: b.Lo << (n - 64)}
	}
	return Bits{Lo: b.Lo << n, Hi: b.Hi<<n | b.Lo>>(64-n)}
}

// Shr shifts right by n bits, n in [0, 128].
func (b Bits) Shr(n uint) Bits {
	if n >= 128 {
		return Bits{}
	}
	if n >= 64 {
		return Bits{Lo: b.Hi >> (n - 64)}
	}
	return Bits{Lo: b.Lo>>n | b.Hi<<(64-n), Hi: b.Hi >> n}
}

// Geometry holds the immutable masks derived from a board's width and
// height: which cells are in bounds, and which column a horizontal shift
// must exclude to avoid wrapping into the adjacent row.
type Geometry struct {
	Width, Height int
	BoardMask     Bits
	// XMask excludes the column that a shift-by-1 would otherwise wrap out
	// of (cell x=0, the low end of each row — see ShiftLeft/ShiftRight).
	XMask Bits
}

// NewGeometry builds the masks for a width x height board. Returns an error
// if the board doesn't fit in 128 cells.
func NewGeometry(width, height int) (Geometry, error) {
	if width <= 0 || height <= 0 {
		return Geometry{}, ErrBoardTooLarge
	}
	if width*height > 128 {
		return Geometry{}, ErrBoardTooLarge
	}
	boardMask := onesMask(width * height)
	var column0 Bits
	for y := 0; y < height; y++ {
		column0 = column0.Or(BitAt(y * width))
	}
	return Geometry{
		Width:     width,
		Height:    height,
		BoardMask: boardMask,
		XMask:     boardMask.AndNot(column0),
	}, nil
}

// Index returns the bit index for cell (x, y) and whether it's in bounds.
func (g Geometry) Index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return 0, false
	}
	return x + y*g.Width, true
}

// ShiftLeft moves every cell one step in the -x direction, dropping cells
// that would cross the row boundary.
func (g Geometry) ShiftLeft(b Bits) Bits { return b.And(g.XMask).Shr(1) }

// ShiftRight moves every cell one step in the +x direction.
func (g Geometry) ShiftRight(b Bits) Bits { return b.Shl(1).And(g.XMask) }

// ShiftDown moves every cell one step in the -y direction.
func (g Geometry) ShiftDown(b Bits) Bits { return b.Shr(uint(g.Width)) }

// ShiftUp moves every cell one step in the +y direction.
func (g Geometry) ShiftUp(b Bits) Bits { return b.Shl(uint(g.Width)).And(g.BoardMask) }

// Adj returns the union of b shifted one step in each cardinal direction.
func (g Geometry) Adj(b Bits) Bits {
	return g.ShiftLeft(b).Or(g.ShiftRight(b)).Or(g.ShiftUp(b)).Or(g.ShiftDown(b))
}
