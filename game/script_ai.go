package game

import "tilearcade/pong"

// PaddleContext is passed to paddle scripts as input
type PaddleContext struct {
	// Ball state
	BallX  float64 `json:"ballX"`
	BallY  float64 `json:"ballY"`
	BallVX float64 `json:"ballVX"`
	BallVY float64 `json:"ballVY"`

	// Opponent paddle, top edge and height
	PaddleY      float64 `json:"paddleY"`
	PaddleHeight float64 `json:"paddleHeight"`

	// Field size
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Frame counts calls since the controller was created
	Frame int `json:"frame"`
}

// PaddleDecision is returned from paddle scripts.
// Move below zero goes up, above zero goes down.
type PaddleDecision struct {
	Move float64 `json:"move"`
}

// Direction converts the decision to a paddle step.
func (d PaddleDecision) Direction() pong.Direction {
	switch {
	case d.Move < 0:
		return pong.Up
	case d.Move > 0:
		return pong.Down
	default:
		return pong.Stay
	}
}

// BuildPaddleContext creates a PaddleContext from the controller view
func BuildPaddleContext(v pong.View, frame int) PaddleContext {
	return PaddleContext{
		BallX:        v.Ball.X,
		BallY:        v.Ball.Y,
		BallVX:       v.Ball.VX,
		BallVY:       v.Ball.VY,
		PaddleY:      v.Paddle,
		PaddleHeight: v.PaddleHeight,
		Width:        v.Width,
		Height:       v.Height,
		Frame:        frame,
	}
}

// GetTrackerScript returns a script that plays like the built-in tracker
func GetTrackerScript() string {
	return `
function decide(ctx) {
	var center = ctx.paddleY + ctx.paddleHeight / 2;
	if (ctx.ballY > center) return { move: 1 };
	if (ctx.ballY < center) return { move: -1 };
	return { move: 0 };
}
`
}

// GetLazyScript returns a script that only chases balls coming its way
// and drifts back to the middle otherwise
func GetLazyScript() string {
	return `
function decide(ctx) {
	var center = ctx.paddleY + ctx.paddleHeight / 2;
	var target = ctx.ballVX > 0 ? ctx.ballY : ctx.height / 2;
	if (Math.abs(target - center) < 8) return { move: 0 };
	return { move: target > center ? 1 : -1 };
}
`
}
