package main

import (
	"flag"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"tilearcade/game"
	"tilearcade/match3"
	"tilearcade/tui"
)

func main() {
	envFile := flag.String("env", ".env", "Optional .env file with TILEARCADE_* settings")
	seed := flag.Uint64("seed", 0, "Board seed, 0 for random (overrides TILEARCADE_SEED)")
	logFile := flag.String("log", "", "Write logs to this file instead of discarding them")
	flag.Parse()

	config, err := game.LoadConfig(*envFile)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load config")
	}
	if *seed != 0 {
		config.Seed = *seed
	}
	logrus.SetLevel(config.LogLevel)

	// The terminal belongs to the UI, so logs go to a file or nowhere.
	if *logFile != "" {
		f, err := tea.LogToFile(*logFile, "tui")
		if err != nil {
			logrus.WithError(err).Fatal("Failed to open log file")
		}
		defer f.Close()
		logrus.SetOutput(f)
	} else {
		logrus.SetOutput(io.Discard)
	}

	loop := match3.NewLoop(match3.NewState(match3.NewRand(config.Seed)), config.Timings)
	if _, err := tea.NewProgram(tui.NewModel(loop), tea.WithAltScreen()).Run(); err != nil {
		logrus.WithError(err).Fatal("TUI exited")
	}
}
