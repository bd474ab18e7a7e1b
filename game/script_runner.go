package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dop251/goja"
	"github.com/sirupsen/logrus"

	"tilearcade/match3"
	"tilearcade/pong"
)

// ErrNoDecide is returned for paddle scripts without a decide function.
var ErrNoDecide = errors.New("script must define a 'decide' function")

// ScriptRunner executes JavaScript with goja (pure Go JavaScript engine).
// Every run gets a fresh runtime.
type ScriptRunner struct {
	mu sync.Mutex
}

// NewScriptRunner creates a new JavaScript runner
func NewScriptRunner() *ScriptRunner {
	return &ScriptRunner{}
}

// ExecutePaddleScript runs a paddle script once with the given context.
// The script must define decide(ctx) returning {move: n} or a number.
func (r *ScriptRunner) ExecutePaddleScript(code string, ctx PaddleContext) (PaddleDecision, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	vm := goja.New()
	decide, err := loadDecide(vm, code)
	if err != nil {
		return PaddleDecision{}, err
	}
	return callDecide(vm, decide, ctx)
}

// ValidateScript checks that a paddle script parses, defines decide, and
// answers a serve position without throwing.
func (r *ScriptRunner) ValidateScript(code string) error {
	_, err := r.ExecutePaddleScript(code, serveContext(pong.DefaultConfig()))
	return err
}

// serveContext is the opponent's view right after a serve towards it.
func serveContext(cfg pong.Config) PaddleContext {
	return PaddleContext{
		BallX:        cfg.Width / 2,
		BallY:        cfg.Height / 2,
		BallVX:       cfg.ServeSpeed,
		PaddleY:      (cfg.Height - cfg.PaddleHeight) / 2,
		PaddleHeight: cfg.PaddleHeight,
		Width:        cfg.Width,
		Height:       cfg.Height,
	}
}

// RunBoardScript runs a debugging script against a puzzle loop. The script
// sees these globals:
//
//	setBoard(names)  replace the board from 64 color names
//	printBoard()     return the board as text and add it to the output
//	score()          current score
//	reset()          score 0 and a new board
//	shuffle()        new board, same score
//	colors           the color names
//
// The returned output holds printed boards followed by the script result.
func (r *ScriptRunner) RunBoardScript(code string, loop *match3.Loop) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	vm := goja.New()
	var out []string

	names := make([]string, len(match3.Palette))
	for i, s := range match3.Palette {
		names[i] = s.String()
	}

	bindings := map[string]interface{}{
		"setBoard": func(call goja.FunctionCall) goja.Value {
			var cells []string
			if err := vm.ExportTo(call.Argument(0), &cells); err != nil {
				panic(vm.NewGoError(fmt.Errorf("setBoard expects an array of names: %w", err)))
			}
			if err := loop.SetBoard(cells); err != nil {
				panic(vm.NewGoError(err))
			}
			return goja.Undefined()
		},
		"printBoard": func(goja.FunctionCall) goja.Value {
			s := loop.Board().String()
			out = append(out, s)
			return vm.ToValue(s)
		},
		"score": func(goja.FunctionCall) goja.Value {
			return vm.ToValue(loop.Score())
		},
		"reset": func(goja.FunctionCall) goja.Value {
			loop.Reset()
			return goja.Undefined()
		},
		"shuffle": func(goja.FunctionCall) goja.Value {
			loop.Shuffle()
			return goja.Undefined()
		},
		"colors": names,
	}
	for name, v := range bindings {
		if err := vm.Set(name, v); err != nil {
			return "", fmt.Errorf("failed to bind %s: %w", name, err)
		}
	}

	result, err := vm.RunString(code)
	if err != nil {
		return strings.Join(out, "\n"), fmt.Errorf("board script failed: %w", err)
	}
	if result != nil && !goja.IsUndefined(result) && !goja.IsNull(result) {
		out = append(out, result.String())
	}
	return strings.Join(out, "\n"), nil
}

// ScriptController is a pong.Controller backed by a paddle script. The
// script is loaded once and decide is called every Interval frames; the
// last decision is repeated in between. After the first script error the
// controller logs it and falls back to the built-in tracker.
type ScriptController struct {
	mu       sync.Mutex
	vm       *goja.Runtime
	decide   goja.Callable
	name     string
	interval int

	frame    int
	last     pong.Direction
	failed   bool
	fallback pong.Controller
}

// NewScriptController compiles a paddle script. interval below 1 means
// every frame.
func NewScriptController(name, code string, interval int) (*ScriptController, error) {
	vm := goja.New()
	decide, err := loadDecide(vm, code)
	if err != nil {
		return nil, fmt.Errorf("paddle script %q: %w", name, err)
	}
	if interval < 1 {
		interval = 1
	}
	return &ScriptController{
		vm:       vm,
		decide:   decide,
		name:     name,
		interval: interval,
		fallback: pong.Tracker{},
	}, nil
}

// Failed reports whether the script has been replaced by the fallback.
func (c *ScriptController) Failed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failed
}

func (c *ScriptController) Decide(v pong.View) pong.Direction {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.failed {
		return c.fallback.Decide(v)
	}
	frame := c.frame
	c.frame++
	if frame%c.interval != 0 {
		return c.last
	}

	decision, err := callDecide(c.vm, c.decide, BuildPaddleContext(v, frame))
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"script": c.name,
			"frame":  frame,
		}).WithError(err).Error("Paddle script failed, using built-in opponent")
		c.failed = true
		return c.fallback.Decide(v)
	}
	c.last = decision.Direction()
	return c.last
}

func loadDecide(vm *goja.Runtime, code string) (goja.Callable, error) {
	if _, err := vm.RunString(code); err != nil {
		return nil, fmt.Errorf("script parse error: %w", err)
	}
	v := vm.Get("decide")
	if v == nil || goja.IsUndefined(v) {
		return nil, ErrNoDecide
	}
	decide, ok := goja.AssertFunction(v)
	if !ok {
		return nil, fmt.Errorf("'decide' must be a function")
	}
	return decide, nil
}

func callDecide(vm *goja.Runtime, decide goja.Callable, ctx PaddleContext) (PaddleDecision, error) {
	ctxJSON, err := json.Marshal(ctx)
	if err != nil {
		return PaddleDecision{}, fmt.Errorf("failed to serialize context: %w", err)
	}

	ctxObj, err := vm.RunString(fmt.Sprintf("(%s)", string(ctxJSON)))
	if err != nil {
		return PaddleDecision{}, fmt.Errorf("failed to parse context: %w", err)
	}

	result, err := decide(goja.Undefined(), ctxObj)
	if err != nil {
		return PaddleDecision{}, fmt.Errorf("decide function failed: %w", err)
	}

	switch v := result.Export().(type) {
	case int64:
		return PaddleDecision{Move: float64(v)}, nil
	case float64:
		return PaddleDecision{Move: v}, nil
	case nil:
		return PaddleDecision{}, nil
	}

	resultJSON, err := json.Marshal(result.Export())
	if err != nil {
		return PaddleDecision{}, fmt.Errorf("failed to serialize result: %w", err)
	}

	var decision PaddleDecision
	if err := json.Unmarshal(resultJSON, &decision); err != nil {
		return PaddleDecision{}, fmt.Errorf("failed to parse script result: %w (result: %s)", err, string(resultJSON))
	}
	return decision, nil
}
