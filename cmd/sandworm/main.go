package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/Bricktech2000/Sandworm/internal/engine"
)

const (
	apiVersion = "1"
	author     = "Bricktech2000"
	color      = "#32a844"
	headStyle  = "sand-worm"
	tailStyle  = "round-bum"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "-info" {
		runInfo(os.Stdout)
		return
	}

	if err := runMove(os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runInfo reproduces index.c's metadata response without touching stdin.
func runInfo(w io.Writer) {
	writeCGIPreamble(w)
	json.NewEncoder(w).Encode(infoResponse{
		APIVersion: apiVersion,
		Author:     author,
		Color:      color,
		Head:       headStyle,
		Tail:       tailStyle,
	})
}

func runMove(in io.Reader, out, errOut io.Writer) error {
	requestID := uuid.New().String()
	logger := slog.New(newTraceHandler(errOut, slog.LevelInfo)).With("request_id", requestID)

	body, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}

	var game BattleSnakeGame
	if err := json.Unmarshal(body, &game); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}

	st, err := buildState(game.Board, game.You.ID)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	driver := engine.NewDriver(cfg)

	start := time.Now()
	printRow := printDepthTable(errOut, true)
	driver.TraceFunc = func(t engine.DepthTrace) {
		printRow(int64(t.Depth), t.Micros, t.TotalMicros, t.Evals, t.EvalsPerSec)
	}

	move, rootEvals, err := driver.Run(st, deriveSeed(game.Board))
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	logger.Info("move selected",
		"move", move.String(),
		"duration_ms", time.Since(start).Milliseconds(),
		"eval_left", rootEvals[engine.MoveLeft],
		"eval_right", rootEvals[engine.MoveRight],
		"eval_down", rootEvals[engine.MoveDown],
		"eval_up", rootEvals[engine.MoveUp],
	)

	writeCGIPreamble(out)
	return json.NewEncoder(out).Encode(moveResponse{Move: move.String()})
}

// deriveSeed folds every body coordinate into a seed the same way move.c's
// main() does (seed <<= 1, seed ^= x ^ y per point), so identical requests
// search in the same deterministic order.
func deriveSeed(board Board) uint64 {
	var seed uint64
	for _, s := range board.Snakes {
		for _, p := range s.Body {
			seed <<= 1
			seed ^= uint64(p.X) ^ uint64(p.Y)
		}
	}
	return seed
}

// writeCGIPreamble keeps stdout byte-compatible with move.c/index.c's
// historical CGI framing.
func writeCGIPreamble(w io.Writer) {
	fmt.Fprint(w, "Status: 200 OK\nContent-Type: application/json\n\n")
}
