// Package match3 implements the tile-matching puzzle core: a fixed 8x8
// board, run detection, swap validation and the fall/refill cycle.
//
// Nothing in this package draws or reads input. Front ends drive a Loop (or
// a State directly) and render the Effects it returns.
package match3

import (
	"errors"
	"strings"
)

// Size is the board dimension. The board is always Size x Size.
const Size = 8

// Symbol is a cell value. The zero value is an empty cell.
type Symbol uint8

const (
	Empty Symbol = iota
	Red
	Blue
	Green
	Yellow
	Purple
)

// Palette lists the symbols that can be dealt onto the board.
var Palette = []Symbol{Red, Blue, Green, Yellow, Purple}

var symbolNames = [...]string{
	Empty:  "blank",
	Red:    "red",
	Blue:   "blue",
	Green:  "green",
	Yellow: "yellow",
	Purple: "purple",
}

var symbolGlyphs = [...]string{
	Empty:  "  ",
	Red:    "🍎",
	Blue:   "🫐",
	Green:  "🍏",
	Yellow: "🍋",
	Purple: "🍇",
}

func (s Symbol) String() string {
	if int(s) < len(symbolNames) {
		return symbolNames[s]
	}
	return "-"
}

// Glyph returns the fruit used to show the symbol in text front ends.
func (s Symbol) Glyph() string {
	if int(s) < len(symbolGlyphs) {
		return symbolGlyphs[s]
	}
	return "??"
}

// ParseSymbol maps a color name ("red", "blank", ...) to its Symbol.
func ParseSymbol(name string) (Symbol, bool) {
	for i, n := range symbolNames {
		if n == name {
			return Symbol(i), true
		}
	}
	return Empty, false
}

// ErrMalformedBoard is returned when debug input does not describe a full board.
var ErrMalformedBoard = errors.New("match3: board needs exactly 64 cells")

// Position addresses a cell. Row 0 is the top row.
type Position struct {
	Row, Col int
}

// Pos converts a row-major index into a Position.
func Pos(index int) Position {
	return Position{Row: index / Size, Col: index % Size}
}

// Index returns the row-major index of p.
func (p Position) Index() int {
	return p.Row*Size + p.Col
}

// Valid reports whether p lies on the board.
func (p Position) Valid() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

// Adjacent reports whether a and b are on the board and exactly one
// row or column step apart.
func Adjacent(a, b Position) bool {
	if !a.Valid() || !b.Valid() {
		return false
	}
	return iabs(a.Row-b.Row)+iabs(a.Col-b.Col) == 1
}

// Board is the grid of cells.
type Board struct {
	cells [Size * Size]Symbol
}

// NewBoard returns a board dealt uniformly from the palette.
func NewBoard(rng IntNSource) *Board {
	b := &Board{}
	b.Fill(rng)
	return b
}

// Fill replaces every cell with a random palette symbol.
func (b *Board) Fill(rng IntNSource) {
	for i := range b.cells {
		b.cells[i] = randomSymbol(rng)
	}
}

// At returns the symbol at p, or Empty when p is off the board.
func (b *Board) At(p Position) Symbol {
	if !p.Valid() {
		return Empty
	}
	return b.cells[p.Index()]
}

// Set writes s at p. Off-board writes are ignored.
func (b *Board) Set(p Position, s Symbol) {
	if !p.Valid() {
		return
	}
	b.cells[p.Index()] = s
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// Cells returns a row-major copy of the board.
func (b *Board) Cells() []Symbol {
	out := make([]Symbol, len(b.cells))
	copy(out, b.cells[:])
	return out
}

// Full reports whether no cell is empty.
func (b *Board) Full() bool {
	for _, s := range b.cells {
		if s == Empty {
			return false
		}
	}
	return true
}

func (b *Board) swap(p, q Position) {
	i, j := p.Index(), q.Index()
	b.cells[i], b.cells[j] = b.cells[j], b.cells[i]
}

// SetFromNames loads a board from Size*Size color names in row-major order.
// Unknown names leave the existing cell untouched.
func (b *Board) SetFromNames(names []string) error {
	if len(names) != Size*Size {
		return ErrMalformedBoard
	}
	for i, name := range names {
		if s, ok := ParseSymbol(name); ok {
			b.cells[i] = s
		}
	}
	return nil
}

// String prints the board one row per line, e.g. "red blue blank ...".
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < Size; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < Size; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(b.cells[r*Size+c].String())
		}
	}
	return sb.String()
}

func randomSymbol(rng IntNSource) Symbol {
	return Palette[rng.IntN(len(Palette))]
}

func iabs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
