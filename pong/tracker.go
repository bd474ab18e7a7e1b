package pong

// Tracker is the built-in opponent: it steers its paddle center toward the
// ball height every frame.
type Tracker struct{}

func (Tracker) Decide(v View) Direction {
	center := v.Paddle + v.PaddleHeight/2
	switch {
	case v.Ball.Y > center:
		return Down
	case v.Ball.Y < center:
		return Up
	default:
		return Stay
	}
}
