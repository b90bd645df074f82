package engine

import (
	"fmt"

	"github.com/Bricktech2000/Sandworm/internal/bitboard"
)

// MaxSnakes bounds the number of snakes a State can hold. It is a compile
// time constant (rather than a slice) so the search's hot path never
// allocates.
const MaxSnakes = 4

// Point is a cell coordinate in the external (x, y) system, as opposed to
// the bitboard's linear cell index.
type Point struct {
	X, Y int
}

// Snake is one snake's bitboard-encoded state.
type Snake struct {
	Head, Tail Bits
	// Axis and Sign together record, for every occupied body cell, the
	// direction out of that cell toward the head — used to retract the
	// tail one step per turn without storing the whole body as a list.
	Axis, Sign Bits
	Length     uint8
	Health     uint8
	TailLag    uint8
}

// Bits is an alias kept local to engine so call sites here read as
// engine-domain types rather than leaking the bitboard package's name into
// every signature.
type Bits = bitboard.Bits

// State is the authoritative, bitboard-encoded board. The controlled snake
// is always Snakes[0]; dead slots have Health == 0.
type State struct {
	Geometry bitboard.Geometry
	Snakes   [MaxSnakes]Snake
	Food     Bits
	Bodies   Bits
	// Heads holds the heads of snakes that have not yet moved in the
	// current turn. Used by the evaluator and the head-adjacency check to
	// see who is still pending.
	Heads Bits
	// PrevMove is Snakes[0]'s most recent move, inferred from its two most
	// recent body points, or NoMove if the body has fewer than two points.
	PrevMove Move
}

// SnakeInput is one snake as supplied by a parser: a head-first ordered
// body (Body[0] is the head, the last element is the tail), current health
// and length. Head, if non-nil, must equal Body[0] — callers with a
// separately-reported head field (as real wire formats have) should set it
// so NewState can catch an inconsistent request.
type SnakeInput struct {
	Body   []Point
	Health int
	Length int
	Head   *Point
}

// NewState builds a State from parsed input. Snakes[0] is built from
// snakes[0]; callers are responsible for ordering the controlled snake
// first (see cmd/sandworm, which reorders by matching the wire "you" id).
func NewState(width, height int, food []Point, snakes []SnakeInput) (*State, error) {
	geom, err := bitboard.NewGeometry(width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBoardTooLarge, err)
	}
	if len(snakes) > MaxSnakes {
		return nil, ErrSnakeOverflow
	}

	st := &State{Geometry: geom, PrevMove: NoMove}

	for _, p := range food {
		idx, ok := geom.Index(p.X, p.Y)
		if !ok {
			return nil, fmt.Errorf("%w: food (%d,%d)", ErrInvalidPoint, p.X, p.Y)
		}
		// Duplicate food points OR together into the same bit: harmless
		// idempotence, no special-casing needed.
		st.Food = st.Food.WithBit(idx, true)
	}

	for i, in := range snakes {
		snake, bodies, prevMove, err := buildSnake(geom, in)
		if err != nil {
			return nil, err
		}
		st.Snakes[i] = snake
		st.Bodies = st.Bodies.Or(bodies)
		if i == 0 {
			st.PrevMove = prevMove
		}
	}

	return st, nil
}

func buildSnake(geom bitboard.Geometry, in SnakeInput) (Snake, Bits, Move, error) {
	if len(in.Body) == 0 {
		return Snake{}, Bits{}, NoMove, ErrEmptyBody
	}

	var snake Snake
	snake.Length = uint8(in.Length)
	snake.Health = uint8(in.Health)

	var bodies Bits
	var headIdx, tailIdx int
	prevMove := NoMove
	prevX, prevY := 0, 0

	for i, pt := range in.Body {
		idx, ok := geom.Index(pt.X, pt.Y)
		if !ok {
			return Snake{}, Bits{}, NoMove, fmt.Errorf("%w: body (%d,%d)", ErrInvalidPoint, pt.X, pt.Y)
		}

		if i == 0 {
			headIdx = idx
		} else {
			dx, dy := prevX-pt.X, prevY-pt.Y
			axis := dy != 0
			sign := dx > 0 || dy > 0
			if i == 1 {
				prevMove = Move(b2i(axis)<<1 | b2i(sign))
			}
			if prevX == pt.X && prevY == pt.Y {
				// Stacked body points (same cell twice in a row) represent
				// tail lag: the tail won't retract this many ticks. The
				// cell keeps the direction recorded for its first copy.
				snake.TailLag++
			} else {
				snake.Axis = snake.Axis.WithBit(idx, axis)
				snake.Sign = snake.Sign.WithBit(idx, sign)
			}
		}

		tailIdx = idx
		prevX, prevY = pt.X, pt.Y
		bodies = bodies.WithBit(idx, true)
	}

	if in.Head != nil {
		wantIdx, ok := geom.Index(in.Head.X, in.Head.Y)
		if !ok || wantIdx != headIdx {
			return Snake{}, Bits{}, NoMove, ErrHeadMismatch
		}
	}

	snake.Head = bitboard.BitAt(headIdx)
	snake.Tail = bitboard.BitAt(tailIdx)
	return snake, bodies, prevMove, nil
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
