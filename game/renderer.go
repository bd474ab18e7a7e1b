package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"tilearcade/match3"
	"tilearcade/pong"
)

var (
	colorBackground = color.RGBA{20, 20, 40, 255}
	colorBoard      = color.RGBA{36, 36, 64, 255}
	colorSlot       = color.RGBA{48, 48, 82, 255}
	colorText       = color.RGBA{230, 230, 240, 255}
	colorTextSoft   = color.RGBA{150, 150, 180, 255}
	colorSelected   = color.RGBA{255, 255, 255, 255}
	colorDragTarget = color.RGBA{255, 215, 0, 255}
	colorHint       = color.RGBA{0, 255, 160, 255}
	colorButton     = color.RGBA{70, 70, 120, 255}
)

// symbolColors maps each symbol to its tile color.
var symbolColors = map[match3.Symbol]color.RGBA{
	match3.Red:    {231, 76, 60, 255},
	match3.Blue:   {52, 152, 219, 255},
	match3.Green:  {46, 204, 113, 255},
	match3.Yellow: {241, 196, 15, 255},
	match3.Purple: {155, 89, 182, 255},
}

var face = text.NewGoXFace(basicfont.Face7x13)

// drawText draws s with its top edge at y. align picks the horizontal
// anchor at x.
func drawText(dst *ebiten.Image, s string, x, y, scale float64, align text.Align, clr color.Color) {
	op := &text.DrawOptions{}
	op.PrimaryAlign = align
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, face, op)
}

// Button is a clickable HUD rectangle.
type Button struct {
	Label      string
	X, Y, W, H float64
}

// Contains reports whether a screen point is inside the button.
func (b Button) Contains(x, y float64) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

func (b Button) draw(dst *ebiten.Image) {
	vector.DrawFilledRect(dst, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), colorButton, true)
	drawText(dst, b.Label, b.X+b.W/2, b.Y+b.H/2-6, 1, text.AlignCenter, colorText)
}

// BoardView is everything the board renderer needs for one frame.
type BoardView struct {
	Loop  *match3.Loop
	Input *BoardInput
	Debug *DebugState
	TPS   float64
}

// BoardRenderer draws the puzzle and its HUD.
type BoardRenderer struct {
	layout  BoardLayout
	Reset   Button
	Shuffle Button
}

// NewBoardRenderer creates a board renderer
func NewBoardRenderer(layout BoardLayout) *BoardRenderer {
	return &BoardRenderer{
		layout:  layout,
		Reset:   Button{Label: "Reset", X: layout.OriginX + layout.Extent() - 180, Y: 24, W: 84, H: 32},
		Shuffle: Button{Label: "Shuffle", X: layout.OriginX + layout.Extent() - 84, Y: 24, W: 84, H: 32},
	}
}

// Render draws the board with swap, fall and clear animations
func (r *BoardRenderer) Render(screen *ebiten.Image, v BoardView) {
	screen.Fill(colorBackground)
	l := r.layout
	loop := v.Loop
	board := loop.Board()

	drawText(screen, fmt.Sprintf("Score: %d", loop.Score()), l.OriginX, 28, 2, text.AlignStart, colorText)
	r.Reset.draw(screen)
	r.Shuffle.draw(screen)

	pad := float32(6)
	vector.DrawFilledRect(screen, float32(l.OriginX)-pad, float32(l.OriginY)-pad,
		float32(l.Extent())+2*pad, float32(l.Extent())+2*pad, colorBoard, true)

	for i := 0; i < match3.Size*match3.Size; i++ {
		x, y := l.CellOrigin(match3.Pos(i))
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(l.Tile), float32(l.Tile), colorSlot, true)
	}

	// Tiles in motion are drawn after the rest so they pass over them.
	moving := make(map[match3.Position]bool)
	type sprite struct {
		sym  match3.Symbol
		x, y float64
	}
	var sprites []sprite

	if move, off, ok := loop.SwapOffset(); ok {
		ax, ay := l.CellOrigin(move.A)
		bx, by := l.CellOrigin(move.B)
		sprites = append(sprites,
			sprite{board.At(move.A), lerp(ax, bx, off), lerp(ay, by, off)},
			sprite{board.At(move.B), lerp(bx, ax, off), lerp(by, ay, off)},
		)
		moving[move.A], moving[move.B] = true, true
	}

	falls, progress := loop.LastFalls()
	for _, f := range falls {
		if board.At(f.To) != f.Symbol {
			continue
		}
		fx, fy := l.CellOrigin(f.From)
		tx, ty := l.CellOrigin(f.To)
		sprites = append(sprites, sprite{f.Symbol, lerp(fx, tx, progress), lerp(fy, ty, progress)})
		moving[f.To] = true
	}

	for i := 0; i < match3.Size*match3.Size; i++ {
		p := match3.Pos(i)
		if moving[p] {
			continue
		}
		x, y := l.CellOrigin(p)
		r.drawTile(screen, board.At(p), x, y)
	}
	for _, s := range sprites {
		r.drawTile(screen, s.sym, s.x, s.y)
	}

	for _, p := range loop.ClearPending() {
		x, y := l.CellOrigin(p)
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(l.Tile), float32(l.Tile), color.RGBA{255, 255, 255, 110}, true)
		r.outline(screen, p, colorSelected, 3)
	}

	if v.Input != nil {
		if p, ok := v.Input.Selected(); ok {
			r.outline(screen, p, colorSelected, 3)
		}
		if p, ok := v.Input.Dragging(); ok {
			r.outline(screen, p, colorSelected, 2)
		}
		if p, ok := v.Input.DragTarget(); ok {
			r.outline(screen, p, colorDragTarget, 3)
		}
	}

	if v.Debug == nil {
		return
	}
	if v.Debug.ShowHint && !loop.State().Busy() {
		if m, ok := Hint(board); ok {
			r.outline(screen, m.A, colorHint, 2)
			r.outline(screen, m.B, colorHint, 2)
		}
	}
	if v.Debug.ShowIndices {
		for i := 0; i < match3.Size*match3.Size; i++ {
			x, y := l.CellOrigin(match3.Pos(i))
			drawText(screen, fmt.Sprint(i), x+3, y+2, 1, text.AlignStart, colorText)
		}
	}
	if v.Debug.ShowTPS {
		drawText(screen, fmt.Sprintf("TPS %.0f", v.TPS), l.OriginX, 60, 1, text.AlignStart, colorTextSoft)
	}
}

func (r *BoardRenderer) drawTile(screen *ebiten.Image, s match3.Symbol, x, y float64) {
	clr, ok := symbolColors[s]
	if !ok {
		return
	}
	half := r.layout.Tile / 2
	vector.DrawFilledCircle(screen, float32(x+half), float32(y+half), float32(half-5), clr, true)
	// Small shine so same-colored neighbours read as separate tiles.
	vector.DrawFilledCircle(screen, float32(x+half-half/3), float32(y+half-half/3), float32(half/6), color.RGBA{255, 255, 255, 120}, true)
}

func (r *BoardRenderer) outline(screen *ebiten.Image, p match3.Position, clr color.Color, width float32) {
	x, y := r.layout.CellOrigin(p)
	vector.StrokeRect(screen, float32(x), float32(y), float32(r.layout.Tile), float32(r.layout.Tile), width, clr, true)
}

// PongRenderer draws a pong match.
type PongRenderer struct{}

// Render draws the field, paddles, ball, scores and the game over banner
func (PongRenderer) Render(screen *ebiten.Image, g *pong.Game) {
	c := g.Config()
	screen.Fill(color.Black)

	vector.DrawFilledRect(screen, 0, float32(g.PlayerY), float32(c.PaddleWidth), float32(c.PaddleHeight), color.White, false)
	vector.DrawFilledRect(screen, float32(c.Width-c.PaddleWidth), float32(g.OpponentY), float32(c.PaddleWidth), float32(c.PaddleHeight), color.White, false)
	vector.DrawFilledCircle(screen, float32(g.Ball.X), float32(g.Ball.Y), float32(c.BallSize/2), color.White, true)

	drawText(screen, fmt.Sprint(g.PlayerScore), c.Width/4, 24, 3, text.AlignCenter, color.White)
	drawText(screen, fmt.Sprint(g.OpponentScore), c.Width*3/4, 24, 3, text.AlignCenter, color.White)

	if g.Running {
		return
	}
	drawText(screen, g.Winner().Banner(), c.Width/2, c.Height/2-70, 4, text.AlignCenter, color.White)
	drawText(screen, pong.RestartHint, c.Width/2, c.Height/2+10, 2, text.AlignCenter, color.White)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
