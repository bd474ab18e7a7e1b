package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"tilearcade/pong"
)

// PaddleInput reads the player paddle controls
type PaddleInput struct {
	touchIDs []ebiten.TouchID
}

// Direction returns the keyboard step: W or the up arrow, S or the down arrow.
func (p *PaddleInput) Direction() pong.Direction {
	up := ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	down := ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown)
	switch {
	case up && !down:
		return pong.Up
	case down && !up:
		return pong.Down
	default:
		return pong.Stay
	}
}

// PointerY returns the height of a finger on the screen or of a held
// mouse button.
func (p *PaddleInput) PointerY() (float64, bool) {
	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])
	if len(p.touchIDs) > 0 {
		_, y := ebiten.TouchPosition(p.touchIDs[0])
		return float64(y), true
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		_, y := ebiten.CursorPosition()
		return float64(y), true
	}
	return 0, false
}

// Pressed reports a click or tap that started this frame.
func (p *PaddleInput) Pressed() bool {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return true
	}
	p.touchIDs = inpututil.AppendJustPressedTouchIDs(p.touchIDs[:0])
	return len(p.touchIDs) > 0
}

// PongGame is pong as an ebiten.Game.
type PongGame struct {
	game     *pong.Game
	opponent pong.Controller
	input    *PaddleInput
	renderer PongRenderer
}

// NewPongGame creates a pong game. A nil opponent plays with the built-in
// tracker.
func NewPongGame(cfg pong.Config, rng pong.Rand, opponent pong.Controller) *PongGame {
	if opponent == nil {
		opponent = pong.Tracker{}
	}
	return &PongGame{
		game:     pong.NewGame(cfg, rng),
		opponent: opponent,
		input:    &PaddleInput{},
	}
}

// Update updates the game state
func (g *PongGame) Update() error {
	if !g.game.Running {
		if g.input.Pressed() {
			g.game.Restart()
			logrus.Info("New pong game")
		}
		return nil
	}

	if dir := g.input.Direction(); dir != pong.Stay {
		g.game.MovePlayer(dir)
	}
	if y, ok := g.input.PointerY(); ok {
		g.game.SetPlayerCenter(y)
	}

	ev := g.game.Step(g.opponent)
	if ev.Scored != pong.None {
		logrus.WithFields(logrus.Fields{
			"scorer":   ev.Scored,
			"player":   g.game.PlayerScore,
			"opponent": g.game.OpponentScore,
		}).Info("Point scored")
	}
	if ev.GameOver {
		logrus.WithField("winner", g.game.Winner()).Info("Game over")
	}
	return nil
}

// Draw renders the game
func (g *PongGame) Draw(screen *ebiten.Image) {
	g.renderer.Render(screen, g.game)
}

// Layout returns the game's screen size
func (g *PongGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	c := g.game.Config()
	return int(c.Width), int(c.Height)
}
