// Package tui provides the Bubble Tea front end for the puzzle. It maps
// keys to board actions and advances the puzzle loop on a frame tick.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameInterval is how often the model advances the puzzle loop.
const FrameInterval = 30 * time.Millisecond

// TickMsg is sent to advance the puzzle loop.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends a TickMsg after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
