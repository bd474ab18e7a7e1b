package game

import (
	"math"

	"tilearcade/match3"
)

// BoardLayout maps screen pixels to board cells.
type BoardLayout struct {
	OriginX, OriginY float64
	Tile             float64
	Gap              float64
}

// Pitch is the distance between neighbouring tile origins.
func (l BoardLayout) Pitch() float64 {
	return l.Tile + l.Gap
}

// Extent is the board edge length in pixels.
func (l BoardLayout) Extent() float64 {
	return float64(match3.Size)*l.Pitch() - l.Gap
}

// CellAt returns the cell under a screen point. Points in the gaps between
// tiles or off the board hit nothing.
func (l BoardLayout) CellAt(x, y float64) (match3.Position, bool) {
	dx, dy := x-l.OriginX, y-l.OriginY
	if dx < 0 || dy < 0 {
		return match3.Position{}, false
	}
	p := match3.Position{Row: int(dy / l.Pitch()), Col: int(dx / l.Pitch())}
	if !p.Valid() {
		return match3.Position{}, false
	}
	if math.Mod(dx, l.Pitch()) >= l.Tile || math.Mod(dy, l.Pitch()) >= l.Tile {
		return match3.Position{}, false
	}
	return p, true
}

// CellOrigin returns the top-left pixel of a cell.
func (l BoardLayout) CellOrigin(p match3.Position) (float64, float64) {
	return l.OriginX + float64(p.Col)*l.Pitch(), l.OriginY + float64(p.Row)*l.Pitch()
}

// SwipeTarget picks the neighbour of from in the dominant direction of a
// swipe. Short swipes and swipes off the board edge pick nothing.
func SwipeTarget(from match3.Position, dx, dy, threshold float64) (match3.Position, bool) {
	if math.Max(math.Abs(dx), math.Abs(dy)) < threshold {
		return match3.Position{}, false
	}
	to := from
	if math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			to.Col++
		} else {
			to.Col--
		}
	} else {
		if dy > 0 {
			to.Row++
		} else {
			to.Row--
		}
	}
	if !to.Valid() {
		return match3.Position{}, false
	}
	return to, true
}

// ActionKind says what a pointer gesture asked for.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionSelect
	ActionDeselect
	ActionSwap
)

// Action is the outcome of a pointer event.
type Action struct {
	Kind ActionKind
	Cell match3.Position
	Move match3.Move
}

type press struct {
	active  bool
	touch   bool
	onBoard bool
	handled bool

	cell   match3.Position
	startX float64
	startY float64

	hover    match3.Position
	hasHover bool
}

// BoardInput turns mouse and touch gestures into puzzle actions: click a
// tile then a neighbour, drag a tile onto a neighbour, or swipe.
type BoardInput struct {
	layout    BoardLayout
	threshold float64

	selected    match3.Position
	hasSelected bool

	press press
}

// NewBoardInput creates a board input handler
func NewBoardInput(layout BoardLayout, swipeThreshold float64) *BoardInput {
	return &BoardInput{layout: layout, threshold: swipeThreshold}
}

// Selected returns the tile picked by a first click or a touch.
func (b *BoardInput) Selected() (match3.Position, bool) {
	return b.selected, b.hasSelected
}

// DragTarget returns the tile a mouse drag is hovering over.
func (b *BoardInput) DragTarget() (match3.Position, bool) {
	if !b.press.active || b.press.touch || !b.press.hasHover || b.press.hover == b.press.cell {
		return match3.Position{}, false
	}
	return b.press.hover, true
}

// Dragging returns the tile a mouse drag started on.
func (b *BoardInput) Dragging() (match3.Position, bool) {
	if !b.press.active || b.press.touch || !b.press.onBoard {
		return match3.Position{}, false
	}
	return b.press.cell, true
}

// Clear drops the selection and any gesture in progress.
func (b *BoardInput) Clear() {
	b.hasSelected = false
	b.press = press{}
}

// PointerDown starts a gesture. A touch selects its tile right away.
func (b *BoardInput) PointerDown(x, y float64, touch bool) Action {
	cell, ok := b.layout.CellAt(x, y)
	b.press = press{active: true, touch: touch, onBoard: ok, cell: cell, startX: x, startY: y}
	if !ok || !touch {
		return Action{}
	}
	b.selected, b.hasSelected = cell, true
	return Action{Kind: ActionSelect, Cell: cell}
}

// PointerMove follows a gesture. A touch that travels past the swipe
// threshold swaps once; a mouse drag only tracks the hovered tile.
func (b *BoardInput) PointerMove(x, y float64) Action {
	p := &b.press
	if !p.active || !p.onBoard {
		return Action{}
	}
	if !p.touch {
		if cell, ok := b.layout.CellAt(x, y); ok {
			p.hover, p.hasHover = cell, true
		}
		return Action{}
	}
	if p.handled {
		return Action{}
	}
	to, ok := SwipeTarget(p.cell, x-p.startX, y-p.startY, b.threshold)
	if !ok {
		return Action{}
	}
	p.handled = true
	b.hasSelected = false
	return Action{Kind: ActionSwap, Move: match3.Move{A: p.cell, B: to}}
}

// PointerUp ends a gesture. Releasing the mouse on the pressed tile is a
// click; releasing it elsewhere drops the dragged tile there.
func (b *BoardInput) PointerUp(x, y float64) Action {
	p := b.press
	b.press = press{}
	if !p.active || !p.onBoard {
		return Action{}
	}
	if p.touch {
		b.hasSelected = false
		if p.handled {
			return Action{}
		}
		return Action{Kind: ActionDeselect, Cell: p.cell}
	}
	cell, ok := b.layout.CellAt(x, y)
	if ok && cell == p.cell {
		return b.click(cell)
	}
	if !ok && p.hasHover {
		// Released off the board: use the last tile the drag passed over.
		cell, ok = p.hover, p.hover != p.cell
	}
	if !ok {
		return Action{}
	}
	b.hasSelected = false
	return Action{Kind: ActionSwap, Move: match3.Move{A: p.cell, B: cell}}
}

// click selects a first tile, deselects it on a second click, or asks for
// a swap with a different tile. The selection is dropped either way.
func (b *BoardInput) click(cell match3.Position) Action {
	if !b.hasSelected {
		b.selected, b.hasSelected = cell, true
		return Action{Kind: ActionSelect, Cell: cell}
	}
	from := b.selected
	b.hasSelected = false
	if from == cell {
		return Action{Kind: ActionDeselect, Cell: cell}
	}
	return Action{Kind: ActionSwap, Move: match3.Move{A: from, B: cell}}
}
