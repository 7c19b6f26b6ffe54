package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Window  WindowConfig  `toml:"window"`
	Game    GameConfig    `toml:"game"`
	Logging LoggingConfig `toml:"logging"`
	Debug   DebugConfig   `toml:"debug"`
}

type WindowConfig struct {
	Title     string `toml:"title"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Resizable bool   `toml:"resizable"`
}

type GameConfig struct {
	Level         string        `toml:"level"`
	FPS           int           `toml:"fps"`
	CapFrameRate  bool          `toml:"cap_frame_rate"`
	MaxDeltaTime  time.Duration `toml:"max_delta_time"`
	DrawColliders bool          `toml:"draw_colliders"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type DebugConfig struct {
	Overlay bool `toml:"overlay"` // imgui registry inspector
}

// Load reads the TOML file at path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
// The second result reports whether the file existed.
func LoadOrDefault(path string) (*Config, bool, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Defaults(), false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}

// Validate rejects values the game cannot run with.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Game.FPS <= 0 {
		return fmt.Errorf("fps %d must be positive", c.Game.FPS)
	}
	if c.Game.MaxDeltaTime <= 0 {
		return fmt.Errorf("max_delta_time %s must be positive", c.Game.MaxDeltaTime)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging level: %w", err)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging format %q must be json or console", c.Logging.Format)
	}
	return nil
}

// FrameTarget is the frame budget implied by FPS.
func (g GameConfig) FrameTarget() time.Duration {
	return time.Second / time.Duration(g.FPS)
}

func Defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Title:     "explore",
			Width:     1280,
			Height:    720,
			Resizable: true,
		},
		Game: GameConfig{
			Level:        "assets/levels/level1.yaml",
			FPS:          60,
			CapFrameRate: true,
			MaxDeltaTime: 50 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
