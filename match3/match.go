package match3

import "sort"

// MinRun is the shortest run that counts as a match.
const MinRun = 3

// Run is a maximal line of identical non-empty symbols.
type Run struct {
	Start      Position
	Length     int
	Horizontal bool
	Symbol     Symbol
}

// Positions lists the cells covered by the run.
func (r Run) Positions() []Position {
	out := make([]Position, r.Length)
	for i := range out {
		if r.Horizontal {
			out[i] = Position{Row: r.Start.Row, Col: r.Start.Col + i}
		} else {
			out[i] = Position{Row: r.Start.Row + i, Col: r.Start.Col}
		}
	}
	return out
}

// Result is what one detection pass found.
type Result struct {
	// Runs are ordered longest first, rows before columns at equal length.
	Runs []Run

	// Matched holds every cell of every run once, in row-major order.
	Matched []Position

	// Score is the sum of the run lengths.
	Score int
}

// Empty reports whether nothing matched.
func (r Result) Empty() bool {
	return len(r.Runs) == 0
}

// Detect scans every row and column for runs of MinRun or more.
// Only maximal runs are reported, so a run of five scores five and not
// the fours and threes nested inside it.
func Detect(b *Board) Result {
	var runs []Run
	for r := 0; r < Size; r++ {
		runs = scanLine(b, Position{Row: r}, 0, 1, true, runs)
	}
	for c := 0; c < Size; c++ {
		runs = scanLine(b, Position{Col: c}, 1, 0, false, runs)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].Length != runs[j].Length {
			return runs[i].Length > runs[j].Length
		}
		return runs[i].Horizontal && !runs[j].Horizontal
	})

	res := Result{Runs: runs}
	var seen [Size * Size]bool
	for _, run := range runs {
		res.Score += run.Length
		for _, p := range run.Positions() {
			seen[p.Index()] = true
		}
	}
	for i, hit := range seen {
		if hit {
			res.Matched = append(res.Matched, Pos(i))
		}
	}
	return res
}

func scanLine(b *Board, start Position, dr, dc int, horizontal bool, runs []Run) []Run {
	runStart := start
	runLen := 0
	prev := Empty
	flush := func() {
		if prev != Empty && runLen >= MinRun {
			runs = append(runs, Run{Start: runStart, Length: runLen, Horizontal: horizontal, Symbol: prev})
		}
	}
	for p := start; p.Valid(); p = (Position{Row: p.Row + dr, Col: p.Col + dc}) {
		cur := b.At(p)
		if cur == prev && cur != Empty {
			runLen++
			continue
		}
		flush()
		prev = cur
		runStart = p
		runLen = 1
	}
	flush()
	return runs
}

// HasMatchAt reports whether the symbol at p is part of a horizontal or
// vertical run of MinRun or more.
func HasMatchAt(b *Board, p Position) bool {
	s := b.At(p)
	if s == Empty {
		return false
	}
	return lineLength(b, p, 0, 1, s) >= MinRun || lineLength(b, p, 1, 0, s) >= MinRun
}

func lineLength(b *Board, p Position, dr, dc int, s Symbol) int {
	n := 1
	for q := (Position{Row: p.Row - dr, Col: p.Col - dc}); q.Valid() && b.At(q) == s; q = (Position{Row: q.Row - dr, Col: q.Col - dc}) {
		n++
	}
	for q := (Position{Row: p.Row + dr, Col: p.Col + dc}); q.Valid() && b.At(q) == s; q = (Position{Row: q.Row + dr, Col: q.Col + dc}) {
		n++
	}
	return n
}
