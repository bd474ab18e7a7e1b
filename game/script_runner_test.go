package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tilearcade/match3"
	"tilearcade/pong"
)

func paddleView(ballY float64) pong.View {
	return pong.View{
		Ball:         pong.Ball{X: 400, Y: ballY, VX: 5},
		Paddle:       160,
		PaddleHeight: 80,
		Width:        800,
		Height:       400,
	}
}

func TestExecutePaddleScript(t *testing.T) {
	r := NewScriptRunner()

	tests := []struct {
		name  string
		ballY float64
		want  pong.Direction
	}{
		{"ball below", 300, pong.Down},
		{"ball above", 50, pong.Up},
		{"ball level", 200, pong.Stay},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := r.ExecutePaddleScript(GetTrackerScript(), BuildPaddleContext(paddleView(tt.ballY), 0))
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Direction())
		})
	}
}

func TestExecutePaddleScriptNumberResult(t *testing.T) {
	r := NewScriptRunner()
	d, err := r.ExecutePaddleScript("function decide(ctx) { return -2.5; }", PaddleContext{})
	require.NoError(t, err)
	assert.Equal(t, -2.5, d.Move)
	assert.Equal(t, pong.Up, d.Direction())
}

func TestExecutePaddleScriptErrors(t *testing.T) {
	r := NewScriptRunner()

	_, err := r.ExecutePaddleScript("var x = 1;", PaddleContext{})
	assert.ErrorIs(t, err, ErrNoDecide)

	_, err = r.ExecutePaddleScript("function decide(ctx) { throw new Error('nope'); }", PaddleContext{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decide function failed")
}

func TestValidateScript(t *testing.T) {
	r := NewScriptRunner()
	assert.NoError(t, r.ValidateScript(GetTrackerScript()))
	assert.NoError(t, r.ValidateScript(GetLazyScript()))
	assert.ErrorIs(t, r.ValidateScript("var x = 1;"), ErrNoDecide)
	assert.Error(t, r.ValidateScript("var decide = 1;"))

	err := r.ValidateScript("function decide(ctx) {")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "script parse error")

	err = r.ValidateScript("function decide(ctx) { return ctx.ball.y; }")
	require.Error(t, err, "runtime errors surface before the match starts")
	assert.Contains(t, err.Error(), "decide function failed")
}

func newTestLoop() *match3.Loop {
	return match3.NewLoop(match3.NewState(match3.NewRand(1)), match3.Timings{})
}

func TestRunBoardScript(t *testing.T) {
	loop := newTestLoop()
	script := `
var names = [];
for (var i = 0; i < 64; i++) names.push(colors[i % colors.length]);
setBoard(names);
printBoard();
score();
`
	out, err := NewScriptRunner().RunBoardScript(script, loop)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, match3.Size+1)
	assert.Equal(t, "red blue green yellow purple red blue green", lines[0])
	assert.Equal(t, "0", lines[match3.Size])
	assert.Equal(t, match3.Red, loop.Board().At(match3.Position{Row: 0, Col: 0}))
	assert.Equal(t, match3.Blue, loop.Board().At(match3.Position{Row: 0, Col: 1}))
}

func TestRunBoardScriptRejectsShortBoard(t *testing.T) {
	loop := newTestLoop()
	before := loop.Board().Cells()

	_, err := NewScriptRunner().RunBoardScript(`setBoard(["red", "blue"]);`, loop)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "board script failed")
	assert.Equal(t, before, loop.Board().Cells())
}

func TestRunBoardScriptResetAndShuffle(t *testing.T) {
	loop := newTestLoop()
	loop.State().Score = 9

	out, err := NewScriptRunner().RunBoardScript("shuffle(); score();", loop)
	require.NoError(t, err)
	assert.Equal(t, "9", out)

	out, err = NewScriptRunner().RunBoardScript("reset(); score();", loop)
	require.NoError(t, err)
	assert.Equal(t, "0", out)
}

func TestScriptController(t *testing.T) {
	c, err := NewScriptController("tracker", GetTrackerScript(), 0)
	require.NoError(t, err)
	assert.Equal(t, pong.Down, c.Decide(paddleView(300)))
	assert.Equal(t, pong.Up, c.Decide(paddleView(50)))
	assert.False(t, c.Failed())
}

func TestScriptControllerInterval(t *testing.T) {
	c, err := NewScriptController("tracker", GetTrackerScript(), 3)
	require.NoError(t, err)

	assert.Equal(t, pong.Down, c.Decide(paddleView(300)))
	assert.Equal(t, pong.Down, c.Decide(paddleView(50)), "repeats the last decision between calls")
	assert.Equal(t, pong.Down, c.Decide(paddleView(50)))
	assert.Equal(t, pong.Up, c.Decide(paddleView(50)))
}

func TestScriptControllerFallsBack(t *testing.T) {
	script := `
function decide(ctx) {
	if (ctx.frame > 0) throw new Error("boom");
	return { move: -1 };
}
`
	c, err := NewScriptController("flaky", script, 1)
	require.NoError(t, err)

	assert.Equal(t, pong.Up, c.Decide(paddleView(300)))
	assert.Equal(t, pong.Down, c.Decide(paddleView(300)), "tracker takes over")
	assert.True(t, c.Failed())
}

func TestNewScriptControllerRejectsBadScript(t *testing.T) {
	_, err := NewScriptController("broken", "decide = 3", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}
