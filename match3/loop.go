package match3

import "time"

// Default timings.
const (
	DefaultTickInterval = 120 * time.Millisecond
	DefaultClearDelay   = 200 * time.Millisecond
	DefaultSwapDuration = 120 * time.Millisecond
)

// Timings configures a Loop.
type Timings struct {
	TickInterval time.Duration
	ClearDelay   time.Duration
	SwapDuration time.Duration
}

// DefaultTimings returns the stock animation timings.
func DefaultTimings() Timings {
	return Timings{
		TickInterval: DefaultTickInterval,
		ClearDelay:   DefaultClearDelay,
		SwapDuration: DefaultSwapDuration,
	}
}

// Loop turns elapsed time into State transitions. It is not safe for
// concurrent use; call it from the one goroutine that owns the game,
// typically a frame or timer callback.
type Loop struct {
	state   *State
	timings Timings

	sinceTick time.Duration
	clearLeft time.Duration

	swapLeft  time.Duration
	swapTotal time.Duration

	lastFalls []Fall
}

// NewLoop drives s with the given timings. Zero fields fall back to the
// defaults.
func NewLoop(s *State, t Timings) *Loop {
	def := DefaultTimings()
	if t.TickInterval <= 0 {
		t.TickInterval = def.TickInterval
	}
	if t.ClearDelay <= 0 {
		t.ClearDelay = def.ClearDelay
	}
	if t.SwapDuration <= 0 {
		t.SwapDuration = def.SwapDuration
	}
	return &Loop{state: s, timings: t}
}

// State returns the driven state.
func (l *Loop) State() *State {
	return l.state
}

// Board is shorthand for State().Board.
func (l *Loop) Board() *Board {
	return l.state.Board
}

// Score is shorthand for State().Score.
func (l *Loop) Score() int {
	return l.state.Score
}

// Advance moves the clock forward by dt and returns the transitions that
// happened, oldest first. Ticks that found nothing to do are omitted.
func (l *Loop) Advance(dt time.Duration) []Effects {
	var out []Effects

	if l.swapLeft > 0 {
		l.swapLeft -= dt
		if l.swapLeft <= 0 {
			l.swapLeft, l.swapTotal = 0, 0
			out = append(out, l.state.FinishSwap())
		}
	}

	if l.clearLeft > 0 {
		l.clearLeft -= dt
		if l.clearLeft <= 0 {
			l.clearLeft = 0
			out = append(out, l.state.CommitClear())
		}
	}

	l.sinceTick += dt
	for l.sinceTick >= l.timings.TickInterval {
		l.sinceTick -= l.timings.TickInterval
		fx := l.state.Tick()
		l.lastFalls = nil
		switch fx.Phase {
		case PhaseBusy:
			continue
		case PhaseClearing:
			l.clearLeft = l.timings.ClearDelay
		case PhaseFalling:
			l.lastFalls = fx.Falls
		case PhaseIdle:
			if len(fx.Refilled) == 0 {
				continue
			}
		}
		out = append(out, fx)
	}
	return out
}

// Swap starts a swap animation between a and b. A swap that makes no
// match still animates, bouncing back, and leaves the board unchanged.
func (l *Loop) Swap(a, b Position) (bool, error) {
	ok, err := l.state.BeginSwap(a, b)
	if err != nil {
		return false, err
	}
	l.swapTotal = l.timings.SwapDuration
	if !ok {
		l.swapTotal *= 2
	}
	l.swapLeft = l.swapTotal
	return ok, nil
}

// SwapOffset reports the swap in flight and how far the two tiles have
// travelled towards each other's cell, from 0 to 1.
func (l *Loop) SwapOffset() (Move, float64, bool) {
	move, ok, active := l.state.PendingSwap()
	if !active || l.swapTotal == 0 {
		return Move{}, 0, false
	}
	elapsed := l.swapTotal - l.swapLeft
	half := l.timings.SwapDuration
	if ok || elapsed <= half {
		return move, clamp01(float64(elapsed) / float64(half)), true
	}
	return move, clamp01(1 - float64(elapsed-half)/float64(half)), true
}

// ClearPending returns the highlighted cells waiting to be cleared.
func (l *Loop) ClearPending() []Position {
	return l.state.Marked()
}

// LastFalls returns the falls made by the most recent tick, if that tick
// was a falling one, along with how far into the tick interval we are.
func (l *Loop) LastFalls() ([]Fall, float64) {
	return l.lastFalls, clamp01(float64(l.sinceTick) / float64(l.timings.TickInterval))
}

// Reset zeroes the score, deals a new board and cancels pending timers.
func (l *Loop) Reset() {
	l.state.Reset()
	l.stopTimers()
}

// Shuffle deals a new board, keeps the score and cancels pending timers.
func (l *Loop) Shuffle() {
	l.state.Shuffle()
	l.stopTimers()
}

// SetBoard replaces the cells from color names, for debugging. Pending
// timers are cancelled along with the swap or clear they belong to.
func (l *Loop) SetBoard(names []string) error {
	if err := l.state.SetBoard(names); err != nil {
		return err
	}
	l.stopTimers()
	return nil
}

func (l *Loop) stopTimers() {
	l.sinceTick = 0
	l.clearLeft = 0
	l.swapLeft, l.swapTotal = 0, 0
	l.lastFalls = nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
