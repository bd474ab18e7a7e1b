package game

import (
	"strings"

	"github.com/sirupsen/logrus"

	"tilearcade/match3"
)

// DebugState holds global debug flags that persist across game resets
type DebugState struct {
	ShowIndices bool // Show cell indices over the tiles
	ShowHint    bool // Outline a valid move
	ShowTPS     bool
}

// Global debug state instance (persists across game resets)
var globalDebugState = &DebugState{}

// GetDebugState returns the global debug state
func GetDebugState() *DebugState {
	return globalDebugState
}

// LogBoard writes the board one row per line at info level.
func LogBoard(b *match3.Board, score int) {
	entry := logrus.WithField("score", score)
	entry.Info("Board:")
	for _, row := range strings.Split(b.String(), "\n") {
		entry.Info(row)
	}
}

// Hint returns the first available move, if there is one.
func Hint(b *match3.Board) (match3.Move, bool) {
	moves := b.FindMoves()
	if len(moves) == 0 {
		return match3.Move{}, false
	}
	return moves[0], true
}
