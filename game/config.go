package game

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"tilearcade/match3"
	"tilearcade/pong"
)

// Environment variables read by LoadConfig.
const (
	EnvSeed     = "TILEARCADE_SEED"
	EnvTPS      = "TILEARCADE_TPS"
	EnvScale    = "TILEARCADE_SCALE"
	EnvLogLevel = "TILEARCADE_LOG_LEVEL"
)

// Config holds game configuration
type Config struct {
	// ScreenWidth is the logical screen width in pixels
	ScreenWidth int

	// ScreenHeight is the logical screen height in pixels
	ScreenHeight int

	// TileSize is the edge of one puzzle tile in pixels
	TileSize float64

	// TileGap is the space between tiles
	TileGap float64

	// BoardX and BoardY are the top-left corner of the board
	BoardX, BoardY float64

	// SwipeThreshold is how far a touch must travel to count as a swipe
	SwipeThreshold float64

	Timings match3.Timings
	Pong    pong.Config

	// Seed for the board RNG, 0 picks a random one
	Seed uint64

	// TPS is the ebiten update rate
	TPS int

	// Scale multiplies the window size
	Scale float64

	LogLevel logrus.Level
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		ScreenWidth:    446,
		ScreenHeight:   520,
		TileSize:       50,
		TileGap:        2,
		BoardX:         16,
		BoardY:         80,
		SwipeThreshold: 18,
		Timings:        match3.DefaultTimings(),
		Pong:           pong.DefaultConfig(),
		TPS:            60,
		Scale:          1,
		LogLevel:       logrus.InfoLevel,
	}
}

// Layout returns the board geometry.
func (c Config) Layout() BoardLayout {
	return BoardLayout{OriginX: c.BoardX, OriginY: c.BoardY, Tile: c.TileSize, Gap: c.TileGap}
}

// LoadConfig starts from DefaultConfig and applies overrides from envFile
// (if it exists) and the process environment. Variables already set in the
// environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	cfg := DefaultConfig()
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := lookup(EnvSeed); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvSeed, err)
		}
		c.Seed = seed
	}
	if v, ok := lookup(EnvTPS); ok {
		tps, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTPS, err)
		}
		if tps <= 0 {
			return fmt.Errorf("invalid %s: must be positive, got %d", EnvTPS, tps)
		}
		c.TPS = tps
	}
	if v, ok := lookup(EnvScale); ok {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvScale, err)
		}
		if scale <= 0 {
			return fmt.Errorf("invalid %s: must be positive, got %v", EnvScale, scale)
		}
		c.Scale = scale
	}
	if v, ok := lookup(EnvLogLevel); ok {
		lvl, err := logrus.ParseLevel(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvLogLevel, err)
		}
		c.LogLevel = lvl
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// WindowSize returns the scaled window size for a logical screen.
func (c Config) WindowSize(w, h int) (int, int) {
	return int(float64(w) * c.Scale), int(float64(h) * c.Scale)
}
