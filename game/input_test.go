package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tilearcade/match3"
)

func testLayout() BoardLayout {
	return BoardLayout{OriginX: 16, OriginY: 80, Tile: 50, Gap: 2}
}

// center returns the screen point in the middle of a cell.
func center(l BoardLayout, r, c int) (float64, float64) {
	x, y := l.CellOrigin(match3.Position{Row: r, Col: c})
	return x + l.Tile/2, y + l.Tile/2
}

func TestCellAt(t *testing.T) {
	l := testLayout()
	tests := []struct {
		name string
		x, y float64
		want match3.Position
		ok   bool
	}{
		{"top left corner", 16, 80, match3.Position{Row: 0, Col: 0}, true},
		{"inside second column", 16 + 52 + 10, 80 + 10, match3.Position{Row: 0, Col: 1}, true},
		{"bottom right tile", 16 + 52*7 + 49, 80 + 52*7 + 49, match3.Position{Row: 7, Col: 7}, true},
		{"gap between tiles", 16 + 50.5, 90, match3.Position{}, false},
		{"left of board", 15, 90, match3.Position{}, false},
		{"right of board", 16 + 52*8, 90, match3.Position{}, false},
		{"below board", 20, 80 + 52*8, match3.Position{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := l.CellAt(tt.x, tt.y)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCellOriginRoundTrip(t *testing.T) {
	l := testLayout()
	for i := 0; i < match3.Size*match3.Size; i++ {
		p := match3.Pos(i)
		x, y := l.CellOrigin(p)
		got, ok := l.CellAt(x, y)
		require.True(t, ok)
		assert.Equal(t, p, got)
	}
}

func TestSwipeTarget(t *testing.T) {
	from := match3.Position{Row: 3, Col: 3}
	tests := []struct {
		name   string
		dx, dy float64
		want   match3.Position
		ok     bool
	}{
		{"right", 20, 5, match3.Position{Row: 3, Col: 4}, true},
		{"left", -30, 10, match3.Position{Row: 3, Col: 2}, true},
		{"down", 4, 18, match3.Position{Row: 4, Col: 3}, true},
		{"up", -10, -25, match3.Position{Row: 2, Col: 3}, true},
		{"too short", 17, 17, match3.Position{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SwipeTarget(from, tt.dx, tt.dy, 18)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := SwipeTarget(match3.Position{Row: 0, Col: 7}, 40, 0, 18)
	assert.False(t, ok, "no neighbour past the edge")
}

func click(in *BoardInput, x, y float64) Action {
	in.PointerDown(x, y, false)
	return in.PointerUp(x, y)
}

func TestBoardInputClickToSwap(t *testing.T) {
	l := testLayout()
	in := NewBoardInput(l, 18)

	a := click(in, 20, 90)
	assert.Equal(t, ActionSelect, a.Kind)
	sel, ok := in.Selected()
	require.True(t, ok)
	assert.Equal(t, match3.Position{}, sel)

	x, y := center(l, 0, 1)
	a = click(in, x, y)
	assert.Equal(t, ActionSwap, a.Kind)
	assert.Equal(t, match3.Move{A: match3.Position{Row: 0, Col: 0}, B: match3.Position{Row: 0, Col: 1}}, a.Move)
	_, ok = in.Selected()
	assert.False(t, ok, "selection is dropped after a swap attempt")
}

func TestBoardInputClickSameTileDeselects(t *testing.T) {
	l := testLayout()
	in := NewBoardInput(l, 18)
	x, y := center(l, 4, 4)

	click(in, x, y)
	a := click(in, x, y)
	assert.Equal(t, ActionDeselect, a.Kind)
	_, ok := in.Selected()
	assert.False(t, ok)
}

func TestBoardInputClickOffBoard(t *testing.T) {
	in := NewBoardInput(testLayout(), 18)
	assert.Equal(t, Action{}, click(in, 2, 2))
	_, ok := in.Selected()
	assert.False(t, ok)
}

func TestBoardInputMouseDrag(t *testing.T) {
	l := testLayout()
	in := NewBoardInput(l, 18)
	x, y := center(l, 2, 2)
	tx, ty := center(l, 3, 2)

	in.PointerDown(x, y, false)
	in.PointerMove(tx, ty)
	target, ok := in.DragTarget()
	require.True(t, ok)
	assert.Equal(t, match3.Position{Row: 3, Col: 2}, target)

	a := in.PointerUp(tx, ty)
	assert.Equal(t, ActionSwap, a.Kind)
	assert.Equal(t, match3.Move{A: match3.Position{Row: 2, Col: 2}, B: match3.Position{Row: 3, Col: 2}}, a.Move)
	_, ok = in.DragTarget()
	assert.False(t, ok)
}

func TestBoardInputDragReleasedOffBoard(t *testing.T) {
	l := testLayout()
	in := NewBoardInput(l, 18)
	x, y := center(l, 0, 6)
	tx, ty := center(l, 0, 7)

	in.PointerDown(x, y, false)
	in.PointerMove(tx, ty)
	in.PointerMove(tx+100, ty)
	a := in.PointerUp(tx+100, ty)
	assert.Equal(t, ActionSwap, a.Kind)
	assert.Equal(t, match3.Position{Row: 0, Col: 7}, a.Move.B)
}

func TestBoardInputTouchSwipe(t *testing.T) {
	l := testLayout()
	in := NewBoardInput(l, 18)
	x, y := center(l, 5, 5)

	a := in.PointerDown(x, y, true)
	assert.Equal(t, ActionSelect, a.Kind)

	assert.Equal(t, Action{}, in.PointerMove(x+10, y))
	a = in.PointerMove(x+5, y-20)
	assert.Equal(t, ActionSwap, a.Kind)
	assert.Equal(t, match3.Move{A: match3.Position{Row: 5, Col: 5}, B: match3.Position{Row: 4, Col: 5}}, a.Move)

	assert.Equal(t, Action{}, in.PointerMove(x+60, y), "one swap per touch")
	assert.Equal(t, Action{}, in.PointerUp(x+60, y))
	_, ok := in.Selected()
	assert.False(t, ok)
}

func TestBoardInputTouchTapDeselects(t *testing.T) {
	l := testLayout()
	in := NewBoardInput(l, 18)
	x, y := center(l, 1, 1)

	in.PointerDown(x, y, true)
	a := in.PointerUp(x, y)
	assert.Equal(t, ActionDeselect, a.Kind)
	_, ok := in.Selected()
	assert.False(t, ok)
}
