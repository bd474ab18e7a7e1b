package tui

import (
	"fmt"
	"strings"

	"tilearcade/match3"
)

// Cell brackets, strongest first.
const (
	markCursor   = "[]"
	markSelected = "<>"
	markClearing = "**"
	markSwap     = "~~"
	markHint     = "()"
)

func (m Model) View() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Score: %d\n\n", m.loop.Score())

	marks := m.marks()
	board := m.loop.Board()
	for r := 0; r < match3.Size; r++ {
		for c := 0; c < match3.Size; c++ {
			p := match3.Position{Row: r, Col: c}
			mark, ok := marks[p]
			if !ok {
				mark = "  "
			}
			sb.WriteByte(mark[0])
			sb.WriteString(board.At(p).Glyph())
			sb.WriteByte(mark[1])
		}
		sb.WriteByte('\n')
	}

	sb.WriteString("\n")
	sb.WriteString(m.status)
	sb.WriteString("\n")
	sb.WriteString("space: select/swap  r: reset  s: shuffle  h: hint  q: quit\n")
	return sb.String()
}

// marks decides the bracket drawn around each cell.
func (m Model) marks() map[match3.Position]string {
	out := make(map[match3.Position]string)
	if m.showHint && !m.loop.State().Busy() {
		if moves := m.loop.Board().FindMoves(); len(moves) > 0 {
			out[moves[0].A] = markHint
			out[moves[0].B] = markHint
		}
	}
	if move, _, ok := m.loop.SwapOffset(); ok {
		out[move.A] = markSwap
		out[move.B] = markSwap
	}
	for _, p := range m.loop.ClearPending() {
		out[p] = markClearing
	}
	if m.hasSelected {
		out[m.selected] = markSelected
	}
	out[m.cursor] = markCursor
	return out
}
