package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStateBuildsSnakesHeadFirst(t *testing.T) {
	testCases := []struct {
		Description string
		Width       int
		Height      int
		Food        []Point
		Snakes      []SnakeInput
		WantTailLag uint8
		ExpectErr   error
	}{
		{
			Description: "single snake, no taillag, head matches body[0]",
			Width:       5,
			Height:      5,
			Snakes: []SnakeInput{{
				Body:   []Point{{X: 2, Y: 2}, {X: 2, Y: 1}, {X: 2, Y: 0}},
				Health: 100,
				Length: 3,
				Head:   &Point{X: 2, Y: 2},
			}},
		},
		{
			Description: "stacked tail points register taillag",
			Width:       5,
			Height:      5,
			Snakes: []SnakeInput{{
				Body:   []Point{{X: 2, Y: 2}, {X: 2, Y: 1}, {X: 2, Y: 0}, {X: 2, Y: 0}},
				Health: 100,
				Length: 3,
			}},
			WantTailLag: 1,
		},
		{
			Description: "mismatched head field is rejected",
			Width:       5,
			Height:      5,
			Snakes: []SnakeInput{{
				Body:   []Point{{X: 2, Y: 2}, {X: 2, Y: 1}},
				Health: 100,
				Length: 2,
				Head:   &Point{X: 0, Y: 0},
			}},
			ExpectErr: ErrHeadMismatch,
		},
		{
			Description: "empty body is rejected",
			Width:       5,
			Height:      5,
			Snakes:      []SnakeInput{{Body: nil}},
			ExpectErr:   ErrEmptyBody,
		},
		{
			Description: "out of bounds body point is rejected",
			Width:       5,
			Height:      5,
			Snakes: []SnakeInput{{
				Body:   []Point{{X: 10, Y: 10}},
				Health: 100,
				Length: 1,
			}},
			ExpectErr: ErrInvalidPoint,
		},
		{
			Description: "board too large is rejected",
			Width:       16,
			Height:      16,
			Snakes:      []SnakeInput{{Body: []Point{{X: 0, Y: 0}}, Health: 1, Length: 1}},
			ExpectErr:   ErrBoardTooLarge,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Description, func(t *testing.T) {
			st, err := NewState(tc.Width, tc.Height, tc.Food, tc.Snakes)
			if tc.ExpectErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tc.ExpectErr))
				return
			}
			require.NoError(t, err)
			require.NotNil(t, st)

			headIdx, ok := st.Geometry.Index(tc.Snakes[0].Body[0].X, tc.Snakes[0].Body[0].Y)
			require.True(t, ok)
			assert.True(t, st.Snakes[0].Head.TestBit(headIdx))
			assert.Equal(t, tc.WantTailLag, st.Snakes[0].TailLag)
		})
	}
}

func TestNewStateTooManySnakes(t *testing.T) {
	snakes := make([]SnakeInput, MaxSnakes+1)
	for i := range snakes {
		snakes[i] = SnakeInput{Body: []Point{{X: i, Y: 0}}, Health: 1, Length: 1}
	}
	_, err := NewState(11, 11, nil, snakes)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSnakeOverflow))
}

func TestNewStatePrevMoveFromSecondBodyPoint(t *testing.T) {
	st, err := NewState(11, 11, nil, []SnakeInput{{
		Body:   []Point{{X: 5, Y: 5}, {X: 5, Y: 4}, {X: 5, Y: 3}},
		Health: 100,
		Length: 3,
	}})
	require.NoError(t, err)
	assert.Equal(t, MoveUp, st.PrevMove)
}

func TestNewStateDuplicateFoodIsIdempotent(t *testing.T) {
	st, err := NewState(11, 11, []Point{{X: 3, Y: 3}, {X: 3, Y: 3}}, []SnakeInput{{
		Body:   []Point{{X: 0, Y: 0}},
		Health: 100,
		Length: 1,
	}})
	require.NoError(t, err)
	idx, ok := st.Geometry.Index(3, 3)
	require.True(t, ok)
	assert.True(t, st.Food.TestBit(idx))
	assert.Equal(t, 1, st.Food.PopCount())
}
