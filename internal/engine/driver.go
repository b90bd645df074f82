package engine

import (
	"errors"
	"time"

	"golang.org/x/exp/rand"
)

// Config tunes the iterative deepening driver.
type Config struct {
	// SearchTime is the budget used when the best move found so far differs
	// from PrevMove: we can afford to come back empty-handed because the
	// caller won't reuse a stale move.
	SearchTime time.Duration
	// TotalTime is the budget used once the best move matches PrevMove:
	// repeating that move on timeout is harmless, so it's safe to keep
	// searching closer to the caller's own round-trip deadline.
	TotalTime time.Duration
	// MaxDepth bounds both the iterative deepening loop and the
	// move-ordering cache's row count.
	MaxDepth int
	// CheckDepth is the remaining search depth at or above which step()
	// samples the clock; sampling on every call would be needlessly slow
	// near the leaves.
	CheckDepth int
	MaxVoronoi int
	Weights    Weights
}

// DefaultConfig mirrors the reference engine's constants.
func DefaultConfig() Config {
	return Config{
		SearchTime: 400 * time.Millisecond,
		TotalTime:  500 * time.Millisecond,
		MaxDepth:   32,
		CheckDepth: 8,
		MaxVoronoi: DefaultMaxVoronoi,
		Weights:    DefaultWeights,
	}
}

// DepthTrace reports one iterative-deepening iteration's timing, for
// callers that want to log search progress.
type DepthTrace struct {
	Depth       int
	Micros      int64
	TotalMicros int64
	Evals       int
	EvalsPerSec int64
}

// Driver runs iterative deepening search to a time budget.
type Driver struct {
	cfg       Config
	TraceFunc func(DepthTrace)
}

// NewDriver builds a Driver from cfg.
func NewDriver(cfg Config) *Driver {
	return &Driver{cfg: cfg}
}

// Run picks the best move for st.Snakes[0] within the configured time
// budget, seeding the move-ordering cache deterministically from seed so
// identical boards always search in the same order. It returns the chosen
// move and the root-level eval for all four candidate moves, in Move order.
func (d *Driver) Run(st *State, seed uint64) (Move, [4]int16, error) {
	cfg := d.cfg
	if cfg.MaxDepth <= 0 {
		cfg = DefaultConfig()
	}

	sc := &searcher{
		state:      st,
		cache:      make([]cacheRow, cfg.MaxDepth+1),
		checkDepth: cfg.CheckDepth,
		weights:    cfg.Weights,
		maxVoronoi: cfg.MaxVoronoi,
	}

	// Commenting this out may give different root evals but must never
	// change which move is chosen.
	rng := rand.New(rand.NewSource(seed))
	for depth := range sc.cache {
		for m := 0; m < 4; m++ {
			sc.cache[depth][m] = int16(rng.Uint32()&0xFFFF) &^ 1
		}
	}

	// depth 0 is a pure eval and yields NoMove. Depths below CheckDepth
	// never sample the clock, so they always complete; from depth 1 on,
	// move is a real move unless every move of Snakes[0] is off the board
	// or into a body, in which case it stays NoMove.
	move := NoMove
	var rootEvals [4]int16

	start := time.Now()
	prev := start

	for depth := 0; depth <= cfg.MaxDepth; depth++ {
		budget := cfg.SearchTime
		if move == st.PrevMove {
			budget = cfg.TotalTime
		}
		sc.cutoff = start.Add(budget)

		result, err := sc.turn(EvalMin, EvalMax, depth, 0)
		if err != nil {
			if errors.Is(err, errAborted) {
				break
			}
			return NoMove, rootEvals, err
		}
		move = result.Move
		rootEvals = sc.cache[0]

		now := time.Now()
		if d.TraceFunc != nil {
			total := now.Sub(start)
			var evalsPerSec int64
			if total > 0 {
				evalsPerSec = int64(sc.evalCount) * int64(time.Second) / int64(total)
			}
			d.TraceFunc(DepthTrace{
				Depth:       depth,
				Micros:      now.Sub(prev).Microseconds(),
				TotalMicros: total.Microseconds(),
				Evals:       sc.evalCount,
				EvalsPerSec: evalsPerSec,
			})
		}
		prev = now
	}

	return move, rootEvals, nil
}
