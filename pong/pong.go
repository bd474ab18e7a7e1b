// Package pong is a one-player Pong against a paddle controller. It has
// no rendering or input code; front ends call Step once per frame and draw
// the exported state.
package pong

// Rand is the randomness the serve needs.
type Rand interface {
	IntN(n int) int
}

// Config holds the field geometry and the game rules. Distances are in
// pixels, speeds in pixels per frame.
type Config struct {
	Width, Height float64

	PaddleWidth  float64
	PaddleHeight float64
	BallSize     float64

	PlayerSpeed   float64
	OpponentSpeed float64
	ServeSpeed    float64
	// SpeedUp multiplies the ball velocity on every paddle hit.
	SpeedUp float64

	WinningScore int
}

func DefaultConfig() Config {
	return Config{
		Width:         800,
		Height:        400,
		PaddleWidth:   10,
		PaddleHeight:  80,
		BallSize:      10,
		PlayerSpeed:   6,
		OpponentSpeed: 4,
		ServeSpeed:    5,
		SpeedUp:       1.05,
		WinningScore:  7,
	}
}

// Side identifies a player.
type Side int

const (
	None Side = iota
	Player
	Opponent
)

func (s Side) String() string {
	switch s {
	case Player:
		return "player"
	case Opponent:
		return "opponent"
	default:
		return "none"
	}
}

// Banner is the game over headline for a winner.
func (s Side) Banner() string {
	switch s {
	case Player:
		return "Player 1 Wins!"
	case Opponent:
		return "AI Wins!"
	default:
		return ""
	}
}

// RestartHint is shown under the banner once the game is over.
const RestartHint = "Click to Play Again"

// Direction is a paddle step: -1 up, 0 stay, 1 down.
type Direction int

const (
	Up   Direction = -1
	Stay Direction = 0
	Down Direction = 1
)

// Ball is the ball center and its per-frame velocity.
type Ball struct {
	X, Y   float64
	VX, VY float64
}

// Events reports what happened during a Step.
type Events struct {
	WallBounce bool
	PaddleHit  Side
	Scored     Side
	GameOver   bool
}

// View is the read-only state a Controller decides on. Paddle is the
// opponent paddle top edge.
type View struct {
	Ball         Ball
	Paddle       float64
	PaddleHeight float64
	Width        float64
	Height       float64
}

// Controller moves the opponent paddle.
type Controller interface {
	Decide(v View) Direction
}

// Game is one match. PlayerY and OpponentY are the paddle top edges; the
// player paddle sits on the left wall.
type Game struct {
	cfg Config
	rng Rand

	PlayerY   float64
	OpponentY float64
	Ball      Ball

	PlayerScore   int
	OpponentScore int
	Running       bool
}

// NewGame centers both paddles and serves.
func NewGame(cfg Config, rng Rand) *Game {
	g := &Game{cfg: cfg, rng: rng}
	g.PlayerY = cfg.Height/2 - cfg.PaddleHeight/2
	g.OpponentY = g.PlayerY
	g.Restart()
	return g
}

func (g *Game) Config() Config {
	return g.cfg
}

// Restart zeroes the scores and serves in a random diagonal.
func (g *Game) Restart() {
	g.PlayerScore = 0
	g.OpponentScore = 0
	g.centerBall()
	g.Ball.VX = g.serveSign() * g.cfg.ServeSpeed
	g.Ball.VY = g.serveSign() * g.cfg.ServeSpeed
	g.Running = true
}

// Winner returns the side that reached the winning score, if any.
func (g *Game) Winner() Side {
	switch {
	case g.PlayerScore >= g.cfg.WinningScore:
		return Player
	case g.OpponentScore >= g.cfg.WinningScore:
		return Opponent
	default:
		return None
	}
}

// MovePlayer steps the player paddle. Ignored once the game is over.
func (g *Game) MovePlayer(dir Direction) {
	if !g.Running {
		return
	}
	g.PlayerY = g.clampPaddle(g.PlayerY + float64(dir)*g.cfg.PlayerSpeed)
}

// SetPlayerCenter puts the player paddle center at y, for touch input.
func (g *Game) SetPlayerCenter(y float64) {
	if !g.Running {
		return
	}
	g.PlayerY = g.clampPaddle(y - g.cfg.PaddleHeight/2)
}

// View returns what the opponent controller sees.
func (g *Game) View() View {
	return View{
		Ball:         g.Ball,
		Paddle:       g.OpponentY,
		PaddleHeight: g.cfg.PaddleHeight,
		Width:        g.cfg.Width,
		Height:       g.cfg.Height,
	}
}

// Step advances one frame. The opponent may be nil, in which case its
// paddle stays put.
func (g *Game) Step(opponent Controller) Events {
	var ev Events
	if !g.Running {
		return ev
	}
	c := g.cfg
	b := &g.Ball

	b.X += b.VX
	b.Y += b.VY

	if opponent != nil {
		dir := clampDirection(opponent.Decide(g.View()))
		g.OpponentY = g.clampPaddle(g.OpponentY + float64(dir)*c.OpponentSpeed)
	}

	// Only bounce when heading into the wall, otherwise a ball that
	// overshot would flip back and forth.
	if (b.Y+c.BallSize > c.Height && b.VY > 0) || (b.Y-c.BallSize < 0 && b.VY < 0) {
		b.VY = -b.VY
		ev.WallBounce = true
	}

	if b.X-c.BallSize < c.PaddleWidth && b.VX < 0 {
		if within(b.Y, g.PlayerY, c.PaddleHeight) {
			g.hit()
			ev.PaddleHit = Player
		} else if b.X-c.BallSize < 0 {
			g.OpponentScore++
			ev.Scored = Opponent
		}
	}

	if b.X+c.BallSize > c.Width-c.PaddleWidth && b.VX > 0 {
		if within(b.Y, g.OpponentY, c.PaddleHeight) {
			g.hit()
			ev.PaddleHit = Opponent
		} else if b.X+c.BallSize > c.Width {
			g.PlayerScore++
			ev.Scored = Player
		}
	}

	if ev.Scored != None {
		if g.Winner() != None {
			g.Running = false
			ev.GameOver = true
		} else {
			g.centerBall()
		}
	}
	return ev
}

func (g *Game) hit() {
	g.Ball.VX = -g.Ball.VX * g.cfg.SpeedUp
	g.Ball.VY *= g.cfg.SpeedUp
}

func (g *Game) centerBall() {
	g.Ball.X = g.cfg.Width / 2
	g.Ball.Y = g.cfg.Height / 2
}

func (g *Game) serveSign() float64 {
	if g.rng.IntN(2) == 0 {
		return -1
	}
	return 1
}

func (g *Game) clampPaddle(y float64) float64 {
	if y < 0 {
		return 0
	}
	if limit := g.cfg.Height - g.cfg.PaddleHeight; y > limit {
		return limit
	}
	return y
}

// within reports whether y is strictly inside the paddle span.
func within(y, top, height float64) bool {
	return y > top && y < top+height
}

func clampDirection(d Direction) Direction {
	switch {
	case d < 0:
		return Up
	case d > 0:
		return Down
	default:
		return Stay
	}
}
