package tui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"tilearcade/match3"
)

// Model is the Bubble Tea model for the puzzle.
type Model struct {
	loop *match3.Loop

	cursor      match3.Position
	selected    match3.Position
	hasSelected bool
	showHint    bool

	status string
	last   time.Time
}

// NewModel wraps a puzzle loop.
func NewModel(loop *match3.Loop) Model {
	return Model{loop: loop, status: "arrows move, space selects"}
}

func (m Model) Init() tea.Cmd {
	return tickCmd(FrameInterval)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		now := time.Time(msg)
		if !m.last.IsZero() {
			dt := now.Sub(m.last)
			if dt > 100*time.Millisecond {
				dt = 100 * time.Millisecond
			}
			for _, fx := range m.loop.Advance(dt) {
				if fx.ScoreDelta > 0 {
					m.status = fmt.Sprintf("+%d", fx.ScoreDelta)
				}
			}
		}
		m.last = now
		return m, tickCmd(FrameInterval)
	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up":
		m.moveCursor(-1, 0)
	case "down":
		m.moveCursor(1, 0)
	case "left":
		m.moveCursor(0, -1)
	case "right":
		m.moveCursor(0, 1)
	case " ", "enter":
		m.pick()
	case "r":
		m.loop.Reset()
		m.hasSelected = false
		m.status = "new board"
		logrus.Debug("Board reset")
	case "s":
		m.loop.Shuffle()
		m.hasSelected = false
		m.status = "shuffled"
		logrus.Debug("Board shuffled")
	case "h":
		m.showHint = !m.showHint
	}
	return m, nil
}

func (m *Model) moveCursor(dr, dc int) {
	next := match3.Position{Row: m.cursor.Row + dr, Col: m.cursor.Col + dc}
	if next.Valid() {
		m.cursor = next
	}
}

// pick selects the tile under the cursor, or swaps it with the selected
// one. Picking the selected tile again deselects it.
func (m *Model) pick() {
	if !m.hasSelected {
		m.selected, m.hasSelected = m.cursor, true
		return
	}
	from := m.selected
	m.hasSelected = false
	if from == m.cursor {
		return
	}
	ok, err := m.loop.Swap(from, m.cursor)
	switch {
	case errors.Is(err, match3.ErrNotAdjacent):
		m.status = "pick a neighbour"
	case errors.Is(err, match3.ErrBusy):
		m.status = "wait for the board to settle"
	case err != nil:
		m.status = err.Error()
	case !ok:
		m.status = "no match"
	default:
		m.status = ""
	}
}

// Cursor returns the cursor position.
func (m Model) Cursor() match3.Position {
	return m.cursor
}

// Selected returns the picked tile, if any.
func (m Model) Selected() (match3.Position, bool) {
	return m.selected, m.hasSelected
}

// Status is the message line under the board.
func (m Model) Status() string {
	return m.status
}
