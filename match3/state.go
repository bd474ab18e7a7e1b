package match3

import "errors"

var (
	// ErrBusy is returned while a swap animation or clear highlight is pending.
	ErrBusy = errors.New("match3: board is busy")

	// ErrNotAdjacent is returned for swaps between cells that are off the
	// board or not neighbours.
	ErrNotAdjacent = errors.New("match3: cells are not adjacent")
)

// Phase names what a tick did.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFalling
	PhaseClearing
	PhaseBusy
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFalling:
		return "falling"
	case PhaseClearing:
		return "clearing"
	case PhaseBusy:
		return "busy"
	default:
		return "unknown"
	}
}

// SwapOutcome describes a finished swap.
type SwapOutcome struct {
	Move      Move
	Committed bool
}

// Effects is what a state transition changed, for front ends to animate.
type Effects struct {
	Phase Phase

	Falls    []Fall
	Refilled []Position

	// Marked cells are highlighted and will be blanked by CommitClear.
	Marked []Position
	// Cleared cells were just blanked.
	Cleared []Position

	ScoreDelta int

	Swap *SwapOutcome
}

type pendingSwap struct {
	move Move
	ok   bool
}

// State owns the board, the score and the busy flag. All mutation goes
// through its methods so the busy rules hold.
type State struct {
	Board *Board
	Score int

	rng     IntNSource
	busy    bool
	marked  []Position
	pending *pendingSwap
}

// NewState deals a fresh board.
func NewState(rng IntNSource) *State {
	return &State{Board: NewBoard(rng), rng: rng}
}

// NewStateFromBoard wraps an existing board, e.g. one loaded for debugging.
func NewStateFromBoard(b *Board, rng IntNSource) *State {
	return &State{Board: b, rng: rng}
}

// Busy reports whether a swap or clear is in flight.
func (s *State) Busy() bool {
	return s.busy
}

// Marked returns the cells waiting to be cleared.
func (s *State) Marked() []Position {
	return s.marked
}

// PendingSwap returns the swap in flight and whether it will be committed.
func (s *State) PendingSwap() (Move, bool, bool) {
	if s.pending == nil {
		return Move{}, false, false
	}
	return s.pending.move, s.pending.ok, true
}

// Tick runs one resolution step. A board with floating symbols only
// falls; a settled board is checked for matches; a settled board with no
// matches gets its top row refilled.
func (s *State) Tick() Effects {
	if s.busy {
		return Effects{Phase: PhaseBusy}
	}

	if s.Board.HasFloating() {
		return Effects{Phase: PhaseFalling, Falls: s.Board.FallStep()}
	}

	res := Detect(s.Board)
	if !res.Empty() {
		s.Score += res.Score
		s.marked = res.Matched
		s.busy = true
		return Effects{Phase: PhaseClearing, Marked: res.Matched, ScoreDelta: res.Score}
	}

	return Effects{Phase: PhaseIdle, Refilled: s.Board.RefillTop(s.rng)}
}

// CommitClear blanks the cells marked by the last clearing tick and
// releases the busy flag.
func (s *State) CommitClear() Effects {
	cleared := s.marked
	for _, p := range cleared {
		s.Board.Set(p, Empty)
	}
	s.marked = nil
	if s.pending == nil {
		s.busy = false
	}
	return Effects{Phase: PhaseIdle, Cleared: cleared}
}

// BeginSwap validates a swap between a and b and holds the board busy
// until FinishSwap. The returned bool says whether the swap will stick;
// the board itself is not touched yet.
func (s *State) BeginSwap(a, b Position) (bool, error) {
	if !Adjacent(a, b) {
		return false, ErrNotAdjacent
	}
	if s.busy {
		return false, ErrBusy
	}
	ok := s.Board.WouldMatch(a, b)
	s.pending = &pendingSwap{move: Move{A: a, B: b}, ok: ok}
	s.busy = true
	return ok, nil
}

// FinishSwap commits a valid pending swap, drops an invalid one, and
// releases the busy flag.
func (s *State) FinishSwap() Effects {
	if s.pending == nil {
		return Effects{Phase: PhaseIdle}
	}
	p := s.pending
	s.pending = nil
	if p.ok {
		s.Board.swap(p.move.A, p.move.B)
	}
	if s.marked == nil {
		s.busy = false
	}
	return Effects{Phase: PhaseIdle, Swap: &SwapOutcome{Move: p.move, Committed: p.ok}}
}

// Reset zeroes the score, deals a new board and drops anything in flight.
func (s *State) Reset() {
	s.Score = 0
	s.Shuffle()
}

// Shuffle deals a new board and keeps the score.
func (s *State) Shuffle() {
	s.Board.Fill(s.rng)
	s.drop()
}

// SetBoard replaces the cells from color names and drops any swap or clear
// in flight, since their verdicts were made against the old cells. A
// malformed list leaves the state untouched.
func (s *State) SetBoard(names []string) error {
	if err := s.Board.SetFromNames(names); err != nil {
		return err
	}
	s.drop()
	return nil
}

func (s *State) drop() {
	s.marked = nil
	s.pending = nil
	s.busy = false
}
