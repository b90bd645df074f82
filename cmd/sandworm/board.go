package main

import (
	"fmt"

	"github.com/Bricktech2000/Sandworm/internal/engine"
)

// reorderSnakes returns board.Snakes with the snake matching youID moved to
// index 0, so it lands on engine.State as Snakes[0], the maximizing side.
func reorderSnakes(snakes []Snake, youID string) []Snake {
	reordered := make([]Snake, len(snakes))
	copy(reordered, snakes)
	for i, s := range reordered {
		if s.ID == youID {
			reordered[0], reordered[i] = reordered[i], reordered[0]
			break
		}
	}
	return reordered
}

func toPoints(pts []Point) []engine.Point {
	out := make([]engine.Point, len(pts))
	for i, p := range pts {
		out[i] = engine.Point{X: p.X, Y: p.Y}
	}
	return out
}

// buildState turns one move-request body into an engine.State with youID's
// snake as Snakes[0].
func buildState(board Board, youID string) (*engine.State, error) {
	snakes := reorderSnakes(board.Snakes, youID)
	if len(snakes) == 0 || snakes[0].ID != youID {
		return nil, fmt.Errorf("build state: %q not found among board snakes", youID)
	}

	inputs := make([]engine.SnakeInput, len(snakes))
	for i, s := range snakes {
		head := engine.Point{X: s.Head.X, Y: s.Head.Y}
		inputs[i] = engine.SnakeInput{
			Body:   toPoints(s.Body),
			Health: s.Health,
			Length: s.Length,
			Head:   &head,
		}
	}

	st, err := engine.NewState(board.Width, board.Height, toPoints(board.Food), inputs)
	if err != nil {
		return nil, fmt.Errorf("build state: %w", err)
	}
	return st, nil
}
