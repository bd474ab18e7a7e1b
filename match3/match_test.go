package match3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectCheckerHasNoMatches(t *testing.T) {
	res := Detect(buildBoard(t))
	assert.True(t, res.Empty())
	assert.Zero(t, res.Score)
	assert.Empty(t, res.Matched)
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		rows    []string
		score   int
		matched []Position
	}{
		{
			name:    "three at the start of a row",
			rows:    []string{"********", "********", "********", "rrrbg***"},
			score:   3,
			matched: positions(3, 0, 3, 1, 3, 2),
		},
		{
			name:  "split pairs do not match",
			rows:  []string{"********", "********", "********", "rrbrr***"},
			score: 0,
		},
		{
			name:    "five in a row scores five",
			rows:    []string{"********", "********", "********", "rrrrr***"},
			score:   5,
			matched: positions(3, 0, 3, 1, 3, 2, 3, 3, 3, 4),
		},
		{
			name:    "four down a column",
			rows:    []string{"********", "********", "y*******", "y*******", "y*******", "y*******"},
			score:   4,
			matched: positions(2, 0, 3, 0, 4, 0, 5, 0),
		},
		{
			name:    "corner shared by a row and a column",
			rows:    []string{"********", "********", "********", "yyy*****", "y*******", "y*******"},
			score:   6,
			matched: positions(3, 0, 3, 1, 3, 2, 4, 0, 5, 0),
		},
		{
			name:  "blanks never match",
			rows:  []string{"********", "********", "********", "........"},
			score: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Detect(buildBoard(t, tt.rows...))
			assert.Equal(t, tt.score, res.Score)
			assert.Equal(t, tt.matched, res.Matched)
		})
	}
}

func TestDetectOrdersLongestFirst(t *testing.T) {
	b := buildBoard(t,
		"********",
		"y*******",
		"y*******",
		"y*******",
		"********",
		"********",
		"********",
		"**rrrrr*",
	)
	res := Detect(b)
	require.Len(t, res.Runs, 2)
	assert.Equal(t, 5, res.Runs[0].Length)
	assert.True(t, res.Runs[0].Horizontal)
	assert.Equal(t, Position{Row: 7, Col: 2}, res.Runs[0].Start)
	assert.Equal(t, 3, res.Runs[1].Length)
	assert.False(t, res.Runs[1].Horizontal)
	assert.Equal(t, 8, res.Score)
}

func TestHasMatchAt(t *testing.T) {
	b := buildBoard(t, "********", "********", "********", "rrrbg***")
	assert.True(t, HasMatchAt(b, Position{Row: 3, Col: 0}))
	assert.True(t, HasMatchAt(b, Position{Row: 3, Col: 2}))
	assert.False(t, HasMatchAt(b, Position{Row: 3, Col: 3}))
	assert.False(t, HasMatchAt(b, Position{Row: 9, Col: 9}))
}

func TestRunPositions(t *testing.T) {
	r := Run{Start: Position{Row: 2, Col: 5}, Length: 3}
	assert.Equal(t, positions(2, 5, 3, 5, 4, 5), r.Positions())
	r.Horizontal = true
	assert.Equal(t, positions(2, 5, 2, 6, 2, 7), r.Positions())
}
