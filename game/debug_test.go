package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tilearcade/match3"
)

func TestHint(t *testing.T) {
	b := match3.NewBoard(match3.NewRand(11))
	names := make([]string, match3.Size*match3.Size)
	for i := range names {
		p := match3.Pos(i)
		names[i] = match3.Palette[(p.Row+2*p.Col)%len(match3.Palette)].String()
	}
	require.NoError(t, b.SetFromNames(names))
	_, ok := Hint(b)
	assert.False(t, ok, "pattern board has no moves")

	// r r b r on the fourth row: moving the last red left makes three.
	b.Set(match3.Position{Row: 3, Col: 0}, match3.Red)
	b.Set(match3.Position{Row: 3, Col: 1}, match3.Red)
	b.Set(match3.Position{Row: 3, Col: 2}, match3.Blue)
	b.Set(match3.Position{Row: 3, Col: 3}, match3.Red)
	m, ok := Hint(b)
	require.True(t, ok)
	assert.True(t, b.WouldMatch(m.A, m.B))
}

func TestPaddleDecisionDirection(t *testing.T) {
	assert.Equal(t, -1, int(PaddleDecision{Move: -0.1}.Direction()))
	assert.Equal(t, 0, int(PaddleDecision{}.Direction()))
	assert.Equal(t, 1, int(PaddleDecision{Move: 3}.Direction()))
}
