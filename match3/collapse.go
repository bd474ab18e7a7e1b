package match3

// Fall records one symbol dropping a single row.
type Fall struct {
	From, To Position
	Symbol   Symbol
}

// HasFloating reports whether any symbol sits directly above an empty cell.
func (b *Board) HasFloating() bool {
	for i := 0; i < (Size-1)*Size; i++ {
		if b.cells[i] != Empty && b.cells[i+Size] == Empty {
			return true
		}
	}
	return false
}

// FallStep moves every floating symbol down one row. Which symbols move is
// decided from the board as it was before the step, so a stacked column
// drops one cell per step rather than all at once.
func (b *Board) FallStep() []Fall {
	var falls []Fall
	for i := 0; i < (Size-1)*Size; i++ {
		if b.cells[i] != Empty && b.cells[i+Size] == Empty {
			falls = append(falls, Fall{From: Pos(i), To: Pos(i + Size), Symbol: b.cells[i]})
		}
	}
	for _, f := range falls {
		b.cells[f.To.Index()] = f.Symbol
		b.cells[f.From.Index()] = Empty
	}
	return falls
}

// RefillTop deals a random symbol into every empty top-row cell.
func (b *Board) RefillTop(rng IntNSource) []Position {
	var filled []Position
	for c := 0; c < Size; c++ {
		if b.cells[c] == Empty {
			b.cells[c] = randomSymbol(rng)
			filled = append(filled, Position{Row: 0, Col: c})
		}
	}
	return filled
}

// Settle drops and refills until the board is full. It does not clear
// matches.
func (b *Board) Settle(rng IntNSource) {
	for !b.Full() || b.HasFloating() {
		if b.HasFloating() {
			b.FallStep()
			continue
		}
		b.RefillTop(rng)
	}
}
