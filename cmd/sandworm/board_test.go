package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReorderSnakesPutsYouFirst(t *testing.T) {
	testCases := []struct {
		Description string
		Snakes      []Snake
		YouID       string
		WantFirstID string
	}{
		{
			Description: "you already first",
			Snakes:      []Snake{{ID: "a"}, {ID: "b"}},
			YouID:       "a",
			WantFirstID: "a",
		},
		{
			Description: "you in the middle",
			Snakes:      []Snake{{ID: "a"}, {ID: "b"}, {ID: "c"}},
			YouID:       "b",
			WantFirstID: "b",
		},
		{
			Description: "you last",
			Snakes:      []Snake{{ID: "a"}, {ID: "b"}, {ID: "c"}},
			YouID:       "c",
			WantFirstID: "c",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Description, func(t *testing.T) {
			reordered := reorderSnakes(tc.Snakes, tc.YouID)
			require.Len(t, reordered, len(tc.Snakes))
			assert.Equal(t, tc.WantFirstID, reordered[0].ID)
		})
	}
}

func TestBuildStateRejectsUnknownYouID(t *testing.T) {
	board := Board{
		Width:  11,
		Height: 11,
		Snakes: []Snake{
			{ID: "a", Body: []Point{{X: 0, Y: 0}}, Health: 100, Length: 1, Head: Point{X: 0, Y: 0}},
		},
	}
	_, err := buildState(board, "nonexistent")
	assert.Error(t, err)
}

func TestBuildStateOrdersYouFirst(t *testing.T) {
	board := Board{
		Width:  11,
		Height: 11,
		Snakes: []Snake{
			{ID: "opponent", Body: []Point{{X: 9, Y: 9}}, Health: 100, Length: 1, Head: Point{X: 9, Y: 9}},
			{ID: "you", Body: []Point{{X: 5, Y: 5}}, Health: 100, Length: 1, Head: Point{X: 5, Y: 5}},
		},
	}
	st, err := buildState(board, "you")
	require.NoError(t, err)
	idx, ok := st.Geometry.Index(5, 5)
	require.True(t, ok)
	assert.True(t, st.Snakes[0].Head.TestBit(idx))
}
