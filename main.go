package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"tilearcade/game"
)

func main() {
	envFile := flag.String("env", ".env", "Optional .env file with TILEARCADE_* settings")
	seed := flag.Uint64("seed", 0, "Board seed, 0 for random (overrides TILEARCADE_SEED)")
	boardScript := flag.String("board-script", "", "JavaScript file run against the board at startup (setBoard, printBoard, score)")
	profileDir := flag.String("profile", "", "Capture CPU profiles into this directory when TPS drops")
	flag.Parse()

	config, err := game.LoadConfig(*envFile)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load config")
	}
	if *seed != 0 {
		config.Seed = *seed
	}
	logrus.SetLevel(config.LogLevel)

	var profiler *game.Profiler
	if *profileDir != "" {
		profiler, err = game.NewProfiler(*profileDir)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to set up profiler")
		}
	}

	g := game.NewTileGame(config, profiler)

	if *boardScript != "" {
		code, err := os.ReadFile(*boardScript)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to read board script")
		}
		out, err := game.NewScriptRunner().RunBoardScript(string(code), g.Loop())
		if err != nil {
			logrus.WithError(err).WithField("script", *boardScript).Error("Board script failed")
		}
		if out != "" {
			logrus.WithField("script", *boardScript).Info(out)
		}
	}

	ebiten.SetWindowSize(config.WindowSize(config.ScreenWidth, config.ScreenHeight))
	ebiten.SetWindowTitle("Fruit Match")
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(config.TPS)

	if err := ebiten.RunGame(g); err != nil {
		logrus.WithError(err).Fatal("Game exited")
	}
}
