package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"tilearcade/match3"
)

// TileGame is the puzzle as an ebiten.Game.
type TileGame struct {
	config   Config
	loop     *match3.Loop
	input    *BoardInput
	renderer *BoardRenderer

	touchID    ebiten.TouchID
	touching   bool
	touchX     float64
	touchY     float64
	touchIDBuf []ebiten.TouchID

	// Performance profiling, nil when disabled
	profiler *Profiler
	monitor  *TPSMonitor

	lastUpdateTime time.Time
}

// NewTileGame creates a puzzle game. profiler may be nil.
func NewTileGame(config Config, profiler *Profiler) *TileGame {
	rng := match3.NewRand(config.Seed)
	loop := match3.NewLoop(match3.NewState(rng), config.Timings)

	logrus.WithFields(logrus.Fields{
		"seed": config.Seed,
		"tick": config.Timings.TickInterval,
	}).Info("Puzzle started")

	return &TileGame{
		config:         config,
		loop:           loop,
		input:          NewBoardInput(config.Layout(), config.SwipeThreshold),
		renderer:       NewBoardRenderer(config.Layout()),
		profiler:       profiler,
		monitor:        NewTPSMonitor(float64(config.TPS) * 0.9),
		lastUpdateTime: time.Now(),
	}
}

// Loop exposes the puzzle loop, for debug scripts.
func (g *TileGame) Loop() *match3.Loop {
	return g.loop
}

// Update updates the game state
func (g *TileGame) Update() error {
	now := time.Now()
	dt := now.Sub(g.lastUpdateTime)
	g.lastUpdateTime = now

	// The monitor sees the real frame time so stalls show up as drops.
	g.watchTPS(dt)
	g.handleKeys()
	g.handleMouse()
	g.handleTouch()

	for _, fx := range g.loop.Advance(stepDelta(dt)) {
		logEffects(fx, g.loop.Score())
	}
	return nil
}

// maxStep caps how far one frame advances the puzzle timers.
const maxStep = 100 * time.Millisecond

func stepDelta(dt time.Duration) time.Duration {
	if dt > maxStep {
		return maxStep
	}
	return dt
}

func (g *TileGame) watchTPS(dt time.Duration) {
	if !g.monitor.Observe(dt) || g.profiler == nil {
		return
	}
	reason := fmt.Sprintf("tps%.0f", g.monitor.TPS())
	logrus.WithField("tps", g.monitor.TPS()).Warn("TPS drop detected, capturing profile")
	if err := g.profiler.CaptureProfile(reason); err != nil {
		logrus.WithError(err).Warn("Failed to capture profile")
	}
}

func (g *TileGame) handleKeys() {
	debug := GetDebugState()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyF1):
		debug.ShowIndices = !debug.ShowIndices
	case inpututil.IsKeyJustPressed(ebiten.KeyF2):
		debug.ShowTPS = !debug.ShowTPS
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		debug.ShowHint = !debug.ShowHint
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		LogBoard(g.loop.Board(), g.loop.Score())
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.reset()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.shuffle()
	}
}

func (g *TileGame) handleMouse() {
	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if g.hitButton(x, y) {
			return
		}
		g.apply(g.input.PointerDown(x, y, false))
		return
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.apply(g.input.PointerUp(x, y))
		return
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.apply(g.input.PointerMove(x, y))
	}
}

// handleTouch follows the first finger down until it lifts.
func (g *TileGame) handleTouch() {
	if g.touching {
		if inpututil.IsTouchJustReleased(g.touchID) {
			g.touching = false
			g.apply(g.input.PointerUp(g.touchX, g.touchY))
			return
		}
		tx, ty := ebiten.TouchPosition(g.touchID)
		g.touchX, g.touchY = float64(tx), float64(ty)
		g.apply(g.input.PointerMove(g.touchX, g.touchY))
		return
	}

	g.touchIDBuf = inpututil.AppendJustPressedTouchIDs(g.touchIDBuf[:0])
	if len(g.touchIDBuf) == 0 {
		return
	}
	id := g.touchIDBuf[0]
	tx, ty := ebiten.TouchPosition(id)
	x, y := float64(tx), float64(ty)
	if g.hitButton(x, y) {
		return
	}
	g.touchID, g.touching = id, true
	g.touchX, g.touchY = x, y
	g.apply(g.input.PointerDown(x, y, true))
}

func (g *TileGame) hitButton(x, y float64) bool {
	switch {
	case g.renderer.Reset.Contains(x, y):
		g.reset()
	case g.renderer.Shuffle.Contains(x, y):
		g.shuffle()
	default:
		return false
	}
	return true
}

func (g *TileGame) apply(a Action) {
	if a.Kind != ActionSwap {
		return
	}
	ok, err := g.loop.Swap(a.Move.A, a.Move.B)
	entry := logrus.WithFields(logrus.Fields{"from": a.Move.A, "to": a.Move.B})
	switch {
	case errors.Is(err, match3.ErrBusy), errors.Is(err, match3.ErrNotAdjacent):
		entry.WithError(err).Debug("Swap ignored")
	case err != nil:
		entry.WithError(err).Warn("Swap failed")
	default:
		entry.WithField("match", ok).Debug("Swap started")
	}
}

func (g *TileGame) reset() {
	g.loop.Reset()
	g.input.Clear()
	logrus.Info("Board reset")
}

func (g *TileGame) shuffle() {
	g.loop.Shuffle()
	g.input.Clear()
	logrus.WithField("score", g.loop.Score()).Info("Board shuffled")
}

// Draw renders the game
func (g *TileGame) Draw(screen *ebiten.Image) {
	g.renderer.Render(screen, BoardView{
		Loop:  g.loop,
		Input: g.input,
		Debug: GetDebugState(),
		TPS:   g.monitor.TPS(),
	})
}

// Layout returns the game's screen size
func (g *TileGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.config.ScreenWidth, g.config.ScreenHeight
}

func logEffects(fx match3.Effects, score int) {
	if !logrus.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	fields := logrus.Fields{"phase": fx.Phase, "score": score}
	switch {
	case fx.Swap != nil:
		fields["committed"] = fx.Swap.Committed
		logrus.WithFields(fields).Debug("Swap finished")
	case len(fx.Cleared) > 0:
		fields["cleared"] = len(fx.Cleared)
		logrus.WithFields(fields).Debug("Tiles cleared")
	case fx.Phase == match3.PhaseClearing:
		fields["delta"] = fx.ScoreDelta
		fields["marked"] = len(fx.Marked)
		logrus.WithFields(fields).Debug("Match found")
	case fx.Phase == match3.PhaseFalling:
		fields["falls"] = len(fx.Falls)
		logrus.WithFields(fields).Debug("Tiles fell")
	case len(fx.Refilled) > 0:
		fields["refilled"] = len(fx.Refilled)
		logrus.WithFields(fields).Debug("Top row refilled")
	}
}
