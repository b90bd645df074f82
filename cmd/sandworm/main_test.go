package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMoveReturnsLegalMoveJSON(t *testing.T) {
	request := BattleSnakeGame{
		Game:  Game{ID: "g1", Timeout: 500},
		Board: Board{
			Width:  11,
			Height: 11,
			Snakes: []Snake{
				{
					ID:     "you",
					Health: 100,
					Length: 3,
					Body:   []Point{{X: 5, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 0}},
					Head:   Point{X: 5, Y: 0},
				},
			},
		},
		You: Snake{ID: "you"},
	}

	payload, err := json.Marshal(request)
	require.NoError(t, err)

	var stdout, stderr bytes.Buffer
	err = runMove(bytes.NewReader(payload), &stdout, &stderr)
	require.NoError(t, err)

	out := stdout.String()
	require.True(t, strings.HasPrefix(out, "Status: 200 OK\nContent-Type: application/json\n\n"))

	var resp moveResponse
	body := out[strings.Index(out, "\n\n")+2:]
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	// The head sits on row y=0, so "down" would leave the board.
	assert.Contains(t, []string{"left", "right", "up"}, resp.Move)
}

func TestRunInfoOutputsMetadata(t *testing.T) {
	var stdout bytes.Buffer
	runInfo(&stdout)

	out := stdout.String()
	require.True(t, strings.HasPrefix(out, "Status: 200 OK\nContent-Type: application/json\n\n"))

	var resp infoResponse
	body := out[strings.Index(out, "\n\n")+2:]
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.Equal(t, "1", resp.APIVersion)
	assert.Equal(t, author, resp.Author)
}

func TestDeriveSeedDeterministic(t *testing.T) {
	board := Board{Snakes: []Snake{{Body: []Point{{X: 1, Y: 2}, {X: 1, Y: 1}}}}}
	assert.Equal(t, deriveSeed(board), deriveSeed(board))
}
