package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"tilearcade/game"
	"tilearcade/match3"
	"tilearcade/pong"
)

func main() {
	envFile := flag.String("env", ".env", "Optional .env file with TILEARCADE_* settings")
	scriptPath := flag.String("script", "", "JavaScript file defining decide(ctx) for the opponent paddle")
	example := flag.String("example", "", "Use a bundled opponent script: tracker or lazy")
	interval := flag.Int("interval", 1, "Frames between opponent script calls")
	storeURL := flag.String("store-url", "", "Script store deployment URL (or set TILEARCADE_SCRIPT_STORE env var)")
	storeScript := flag.String("store-script", "", "Name of the opponent script to fetch from the script store")
	list := flag.Bool("list-scripts", false, "List the scripts in the script store and exit")
	flag.Parse()

	url := *storeURL
	if url == "" {
		url = os.Getenv("TILEARCADE_SCRIPT_STORE")
	}

	config, err := game.LoadConfig(*envFile)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load config")
	}
	logrus.SetLevel(config.LogLevel)

	if *list {
		if url == "" {
			logrus.Fatal("-list-scripts needs -store-url or TILEARCADE_SCRIPT_STORE")
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := listScripts(ctx, game.NewScriptClient(url)); err != nil {
			logrus.WithError(err).Fatal("Failed to list scripts")
		}
		return
	}

	src := opponentSource{path: *scriptPath, example: *example, storeURL: url, storeName: *storeScript}
	opponent, err := loadOpponent(src, *interval)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load opponent")
	}

	g := game.NewPongGame(config.Pong, match3.NewRand(config.Seed), opponent)

	w, h := config.WindowSize(int(config.Pong.Width), int(config.Pong.Height))
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Pong")
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(config.TPS)

	logrus.WithField("winning_score", config.Pong.WinningScore).Info("Starting pong")
	if err := ebiten.RunGame(g); err != nil {
		logrus.WithError(err).Fatal("Game exited")
	}
}

type opponentSource struct {
	path      string
	example   string
	storeURL  string
	storeName string
}

// loadOpponent returns nil for the built-in tracker.
func loadOpponent(src opponentSource, interval int) (pong.Controller, error) {
	var name, code string
	switch {
	case src.path != "":
		b, err := os.ReadFile(src.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read script: %w", err)
		}
		name, code = src.path, string(b)
	case src.storeName != "":
		if src.storeURL == "" {
			return nil, fmt.Errorf("-store-script needs -store-url or TILEARCADE_SCRIPT_STORE")
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logrus.WithField("url", src.storeURL).Info("Fetching opponent script")
		fetched, err := game.NewScriptClient(src.storeURL).FetchPaddleScript(ctx, src.storeName)
		if err != nil {
			return nil, err
		}
		name, code = src.storeName, fetched
	case src.example == "tracker":
		name, code = src.example, game.GetTrackerScript()
	case src.example == "lazy":
		name, code = src.example, game.GetLazyScript()
	case src.example != "":
		return nil, fmt.Errorf("unknown example script %q", src.example)
	default:
		return nil, nil
	}

	c, err := game.NewScriptController(name, code, interval)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"script": name, "interval": interval}).Info("Scripted opponent loaded")
	return c, nil
}

func listScripts(ctx context.Context, client *game.ScriptClient) error {
	scripts, err := client.ListScripts(ctx)
	if err != nil {
		return err
	}
	for _, s := range scripts {
		fields := logrus.Fields{"name": s.Name, "id": s.ID}
		if s.Description != nil {
			fields["description"] = *s.Description
		}
		logrus.WithFields(fields).Info("Stored script")
	}
	logrus.WithField("count", len(scripts)).Info("Script store listed")
	return nil
}
