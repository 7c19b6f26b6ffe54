// Command explore runs a level of the top-down shooter.
//
//	explore -config explore.toml -level assets/levels/level1.yaml
//	explore -headless -frames 600 -profile cpu
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/plus3/explore/asset"
	"github.com/plus3/explore/config"
	"github.com/plus3/explore/ecs/debugui"
	debugui_ebiten "github.com/plus3/explore/ecs/debugui/ebiten"
	"github.com/plus3/explore/game"
	"github.com/plus3/explore/level"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "explore.toml", "path to the TOML configuration")
	levelPath := flag.String("level", "", "level file to load (.yaml or .lua); overrides the config")
	logLevel := flag.String("log-level", "", "log level; overrides the config")
	headless := flag.Bool("headless", false, "run without a window")
	frames := flag.Int("frames", 0, "frames to run headless; 0 runs until interrupted")
	profileMode := flag.String("profile", "", "write a cpu or mem profile to the working directory")
	flag.Parse()

	// 1. Config
	cfg, found, err := config.LoadOrDefault(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *levelPath != "" {
		cfg.Game.Level = *levelPath
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	// 2. Logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()
	if !found {
		log.Warn("config not found, using defaults", zap.String("path", *configPath))
	}

	// 3. Profiling
	if *profileMode != "" {
		stop, err := startProfile(*profileMode)
		if err != nil {
			return err
		}
		defer stop()
	}

	// 4. Level
	lvl, err := level.Load(cfg.Game.Level)
	if err != nil {
		return fmt.Errorf("load level: %w", err)
	}

	assets := asset.NewManager(log.Named("asset"))
	defer assets.Close()

	// under ebiten SetTPS paces frames, headless runs sleep themselves
	var target time.Duration
	if *headless && cfg.Game.CapFrameRate {
		target = cfg.Game.FrameTarget()
	}
	clock := game.NewClock(cfg.Game.MaxDeltaTime, target)
	world := game.NewWorld(log, cfg.Window.Width, cfg.Window.Height)
	world.ShowColliders = cfg.Game.DrawColliders
	if err := world.Load(lvl, assets, clock.Now()); err != nil {
		return fmt.Errorf("spawn level %s: %w", cfg.Game.Level, err)
	}

	// 5. Run
	if *headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		_, err := game.RunHeadless(ctx, world, clock, assets, *frames, log)
		return err
	}

	var overlay *debugui_ebiten.ImguiBackend
	if cfg.Debug.Overlay {
		overlay = debugui_ebiten.New(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height,
			debugui.NewOverlay(world.Registry, world.Timer))
	}

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(cfg.Game.FPS)
	ebiten.SetVsyncEnabled(cfg.Game.CapFrameRate)

	log.Info("starting",
		zap.String("level", lvl.Name),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Bool("overlay", overlay != nil),
	)
	if err := ebiten.RunGame(game.NewGame(world, clock, assets, overlay, log)); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

func startProfile(mode string) (func(), error) {
	var kind func(*profile.Profile)
	switch mode {
	case "cpu":
		kind = profile.CPUProfile
	case "mem":
		kind = profile.MemProfileAllocs
	default:
		return nil, fmt.Errorf("unknown profile mode %q (want cpu or mem)", mode)
	}
	p := profile.Start(kind, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet)
	return p.Stop, nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
