package match3

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fixedRand returns the same value for every draw.
type fixedRand int

func (f fixedRand) IntN(n int) int { return int(f) % n }

var letters = map[byte]Symbol{
	'r': Red,
	'b': Blue,
	'g': Green,
	'y': Yellow,
	'p': Purple,
	'.': Empty,
}

// checker returns a symbol pattern with no run of two or more in any row
// and no run of three in any column, even with one row overwritten.
func checker(r, c int) Symbol {
	return Palette[(r+2*c)%len(Palette)]
}

// buildBoard lays rows over the checker pattern. '*' keeps the pattern,
// missing rows are all pattern.
func buildBoard(t *testing.T, rows ...string) *Board {
	t.Helper()
	require.LessOrEqual(t, len(rows), Size)
	b := &Board{}
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			b.Set(Position{Row: r, Col: c}, checker(r, c))
		}
	}
	for r, row := range rows {
		require.Len(t, row, Size, "row %d", r)
		for c := 0; c < Size; c++ {
			if row[c] == '*' {
				continue
			}
			s, ok := letters[row[c]]
			require.True(t, ok, "unknown letter %q", row[c])
			b.Set(Position{Row: r, Col: c}, s)
		}
	}
	return b
}

func positions(pairs ...int) []Position {
	out := make([]Position, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Position{Row: pairs[i], Col: pairs[i+1]})
	}
	return out
}

// noGaps reports whether every column is free of empty cells sitting
// under non-empty ones.
func noGaps(b *Board) bool {
	return !b.HasFloating()
}
