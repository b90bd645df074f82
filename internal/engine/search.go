package engine

import "time"

// Tie-break magnitudes, resolving spec's "imperfect opponent" open question
// with the same values the reference engine used. They must not exceed the
// alpha-beta transmission offset or pruning becomes unsound; keeping them
// as named constants rather than inline literals makes that constraint
// easy to check at a glance.
const (
	tieBreakSurvive       int16 = 2  // prefer a later death to an earlier one
	tieBreakOpponent      int16 = 2  // prefer death an opponent must cause over death we walk into
	tieBreakProbableDeath int16 = 16 // prefer a probable head-to-head over certain collision
)

// Result is what one step/turn call returns: the eval from Snakes[0]'s
// point of view (opponents minimize it), and which move produced it
// (meaningless at a pure leaf).
type Result struct {
	Eval int16
	Move Move
}

// cacheRow holds the four move-ordering scores at one recursion depth from
// the root. The low bit of each entry marks it as already tried during the
// current ordering pass (see pickSlot).
type cacheRow [4]int16

func pickSlot(row cacheRow, maximizing bool) int {
	best := -1
	for i := 0; i < 4; i++ {
		if row[i]&1 != 0 {
			continue
		}
		if best == -1 {
			best = i
			continue
		}
		if maximizing {
			if row[i] > row[best] {
				best = i
			}
		} else if row[i] < row[best] {
			best = i
		}
	}
	if best == -1 {
		// Every slot already marked — can't happen since each of the four
		// loop iterations marks exactly one new slot before the next pick.
		best = 0
	}
	return best
}

func worstDefault(maximizing bool) int16 {
	if maximizing {
		return EvalMin | 1
	}
	return EvalMax | 1
}

// searcher holds the mutable search context threaded through step/turn:
// the board under search, the per-depth move-ordering cache, the time
// budget, and the running eval counter.
type searcher struct {
	state      *State
	cache      []cacheRow
	cutoff     time.Time
	checkDepth int
	weights    Weights
	maxVoronoi int
	evalCount  int
}

func (sc *searcher) outOfBounds(head Bits, axis, sign bool) bool {
	g := sc.state.Geometry
	switch {
	case !axis && !sign: // left
		return head.And(g.XMask).IsZero()
	case !axis && sign: // right
		return head.Shl(1).And(g.XMask).IsZero()
	case axis && !sign: // down
		return head.Shr(uint(g.Width)).IsZero()
	default: // up
		return head.Shl(uint(g.Width)).And(g.BoardMask).IsZero()
	}
}

// advance shifts a single-bit board one cell in the direction given by
// axis/sign, the same shift semantics used by the board's cardinal shifts.
func advance(width int, b Bits, axis, sign bool) Bits {
	amount := uint(1)
	if axis {
		amount = uint(width)
	}
	if sign {
		return b.Shl(amount)
	}
	return b.Shr(amount)
}

// turn runs one full turn: every live snake retracts its tail (unless
// taillag holds it in place), then step(-1, ...) drives each snake through
// its move in index order. The board is restored to its pre-call state on
// every exit path, abort included.
func (sc *searcher) turn(alpha, beta int16, depth, ply int) (Result, error) {
	st := sc.state

	type tailUndo struct {
		index            int
		axisBit, signBit bool
		oldTail          Bits
	}
	var undos []tailUndo

	for s := 0; s < MaxSnakes; s++ {
		snake := &st.Snakes[s]
		if snake.Health == 0 {
			continue
		}
		st.Heads = st.Heads.Or(snake.Head)
		if snake.TailLag > 0 {
			continue
		}

		tailIdx := snake.Tail.Index()
		axisBit := snake.Axis.TestBit(tailIdx)
		signBit := snake.Sign.TestBit(tailIdx)

		st.Bodies = st.Bodies.AndNot(snake.Tail)
		oldTail := snake.Tail
		snake.Tail = advance(st.Geometry.Width, snake.Tail, axisBit, signBit)

		undos = append(undos, tailUndo{index: s, axisBit: axisBit, signBit: signBit, oldTail: oldTail})
	}

	result, err := sc.step(-1, alpha, beta, depth, ply)

	for i := len(undos) - 1; i >= 0; i-- {
		u := undos[i]
		snake := &st.Snakes[u.index]
		snake.Tail = u.oldTail
		oldTailIdx := u.oldTail.Index()
		snake.Axis = snake.Axis.WithBit(oldTailIdx, u.axisBit)
		snake.Sign = snake.Sign.WithBit(oldTailIdx, u.signBit)
		st.Bodies = st.Bodies.Or(snake.Tail)
	}

	st.Heads = Bits{}

	return result, err
}

// step performs one minimax step: a single snake's move. s is the index of
// the snake that moved last (or -1 at the start of a turn); step advances
// to the next live snake, or hands off to turn() once every snake has
// moved this tick.
func (sc *searcher) step(s int, alpha, beta int16, depth, ply int) (Result, error) {
	st := sc.state

	if st.Snakes[0].Health == 0 {
		// Snake 0 dead ends the line regardless of whose turn it
		// theoretically is — nothing else matters once we're dead.
		return Result{Eval: EvalMin}, nil
	}
	if depth == 0 {
		sc.evalCount++
		return Result{Eval: Evaluate(st, sc.weights, sc.maxVoronoi) * 2, Move: NoMove}, nil
	}
	if depth >= sc.checkDepth && time.Now().After(sc.cutoff) {
		return Result{}, errAborted
	}

	for {
		s++
		if s == MaxSnakes {
			return sc.turn(alpha, beta, depth, ply)
		}
		if st.Snakes[s].Health != 0 {
			break
		}
	}

	snake := &st.Snakes[s]
	maximizing := s == 0

	best := Result{Move: NoMove}
	if maximizing {
		best.Eval = EvalMin
	} else {
		best.Eval = EvalMax
	}

	savedLength, savedHealth, savedTailLag := snake.Length, snake.Health, snake.TailLag
	origHead := snake.Head
	headIdx := origHead.Index()
	origAxisBit := snake.Axis.TestBit(headIdx)
	origSignBit := snake.Sign.TestBit(headIdx)

	st.Heads = st.Heads.AndNot(snake.Head)

	didRecurse := false
	row := &sc.cache[ply]

	for i := 0; i < 4; i++ {
		m := Move(pickSlot(*row, maximizing))
		row[m] = worstDefault(maximizing)

		if alpha >= beta {
			continue
		}

		axis, sign := m.Axis(), m.Sign()
		if sc.outOfBounds(snake.Head, axis, sign) {
			continue
		}

		snake.Axis = snake.Axis.WithBit(headIdx, axis)
		snake.Sign = snake.Sign.WithBit(headIdx, sign)
		snake.Head = advance(st.Geometry.Width, snake.Head, axis, sign)

		revertHeadAndPath := func() {
			snake.Head = origHead
			snake.Axis = snake.Axis.WithBit(headIdx, origAxisBit)
			snake.Sign = snake.Sign.WithBit(headIdx, origSignBit)
		}

		if !snake.Head.And(st.Bodies).IsZero() {
			// Would collide with a body (including a cell an earlier
			// mover already occupies this turn): fatal, don't recurse.
			revertHeadAndPath()
			continue
		}

		committed := false
		var tieBreak int16

		headAdj := st.Geometry.Adj(snake.Head)
		nearCertainDeath := false
		if !headAdj.And(st.Heads).IsZero() {
			for r := s + 1; r < MaxSnakes; r++ {
				opp := st.Snakes[r]
				if opp.Health != 0 && opp.Length >= snake.Length && !headAdj.And(opp.Head).IsZero() {
					row[m] += tieBreakProbableDeath
					nearCertainDeath = true
					break
				}
			}
		}

		if !nearCertainDeath {
			committed = true
			st.Bodies = st.Bodies.Or(snake.Head)
			snake.Health--
			if snake.TailLag > 0 {
				snake.TailLag--
			}
			if !snake.Head.And(st.Food).IsZero() {
				snake.Length++
				snake.TailLag++
				snake.Health = 100
				st.Food = st.Food.AndNot(snake.Head)
			}

			tieBreak = tieBreakSurvive
			if s != 0 {
				tieBreak += tieBreakOpponent
			}

			didRecurse = true
			res, err := sc.step(s, alpha-tieBreak, beta-tieBreak, depth-1, ply+1)
			if err != nil {
				if snake.Length > savedLength {
					st.Food = st.Food.Or(snake.Head)
				}
				snake.Length, snake.Health, snake.TailLag = savedLength, savedHealth, savedTailLag
				st.Bodies = st.Bodies.AndNot(snake.Head)
				revertHeadAndPath()
				return Result{}, err
			}
			row[m] = res.Eval + tieBreak
		}

		if maximizing {
			if row[m] > best.Eval {
				best.Eval, best.Move = row[m], m
				if best.Eval > alpha {
					alpha = best.Eval
				}
			}
		} else if row[m] < best.Eval {
			best.Eval, best.Move = row[m], m
			if best.Eval < beta {
				beta = best.Eval
			}
		}

		row[m] |= 1

		if committed {
			if snake.Length > savedLength {
				st.Food = st.Food.Or(snake.Head)
			}
			snake.Length, snake.Health, snake.TailLag = savedLength, savedHealth, savedTailLag
			st.Bodies = st.Bodies.AndNot(snake.Head)
		}
		revertHeadAndPath()
	}

	for i := range row {
		row[i] &^= 1
	}

	// An opponent with no legal move this turn is dead; keep searching
	// deeper with them marked so, rather than pruning the branch outright.
	if s != 0 && !didRecurse {
		snake.Health = 0
		res, err := sc.step(s, alpha, beta, depth-1, ply+1)
		snake.Health = savedHealth
		if err != nil {
			st.Heads = st.Heads.Or(origHead)
			return Result{}, err
		}
		best = res
	}

	st.Heads = st.Heads.Or(origHead)

	return best, nil
}
