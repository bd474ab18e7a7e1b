package match3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallStepDropsOneRow(t *testing.T) {
	b := buildBoard(t,
		"********",
		"********",
		"********",
		"********",
		"********",
		".*******",
		".*******",
		".*******",
	)
	require.True(t, b.HasFloating())
	row4 := b.At(Position{4, 0})
	row3 := b.At(Position{3, 0})

	falls := b.FallStep()
	require.Len(t, falls, 1, "only the symbol resting on the gap moves")
	assert.Equal(t, Fall{From: Position{4, 0}, To: Position{5, 0}, Symbol: row4}, falls[0])
	assert.Equal(t, Empty, b.At(Position{4, 0}))

	falls = b.FallStep()
	assert.ElementsMatch(t, []Fall{
		{From: Position{3, 0}, To: Position{4, 0}, Symbol: row3},
		{From: Position{5, 0}, To: Position{6, 0}, Symbol: row4},
	}, falls)
}

func TestFallStepOnSettledBoard(t *testing.T) {
	b := buildBoard(t)
	assert.False(t, b.HasFloating())
	assert.Empty(t, b.FallStep())
}

func TestRefillTopOnlyFillsTopRow(t *testing.T) {
	b := buildBoard(t, ".*.*****", "........")
	filled := b.RefillTop(fixedRand(2))
	assert.Equal(t, positions(0, 0, 0, 2), filled)
	assert.Equal(t, Green, b.At(Position{0, 0}))
	assert.Equal(t, Green, b.At(Position{0, 2}))
	assert.Equal(t, Empty, b.At(Position{1, 0}), "lower rows wait for the fall")
}

func TestSettleLeavesNoGaps(t *testing.T) {
	for seed := uint64(1); seed <= 25; seed++ {
		rng := NewRand(seed)
		b := NewBoard(rng)
		for i := 0; i < 20; i++ {
			b.Set(Pos(rng.IntN(Size*Size)), Empty)
		}
		b.Settle(rng)
		assert.True(t, b.Full(), "seed %d", seed)
		assert.True(t, noGaps(b), "seed %d", seed)
	}
}
