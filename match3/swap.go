package match3

// Move is a swap between two adjacent cells.
type Move struct {
	A, B Position
}

// WouldMatch swaps a and b, checks both cells for a run, and swaps them
// back. The board is left as it was. Non-adjacent pairs never match.
func (b *Board) WouldMatch(p, q Position) bool {
	if !Adjacent(p, q) {
		return false
	}
	b.swap(p, q)
	ok := HasMatchAt(b, p) || HasMatchAt(b, q)
	b.swap(p, q)
	return ok
}

// TrySwap commits the swap of p and q only if it creates a match.
func (b *Board) TrySwap(p, q Position) bool {
	if !b.WouldMatch(p, q) {
		return false
	}
	b.swap(p, q)
	return true
}

// FindMoves lists every adjacent swap that would create a match,
// scanning right and down neighbours in row-major order.
func (b *Board) FindMoves() []Move {
	var moves []Move
	for i := 0; i < Size*Size; i++ {
		p := Pos(i)
		for _, q := range []Position{{Row: p.Row, Col: p.Col + 1}, {Row: p.Row + 1, Col: p.Col}} {
			if b.WouldMatch(p, q) {
				moves = append(moves, Move{A: p, B: q})
			}
		}
	}
	return moves
}
