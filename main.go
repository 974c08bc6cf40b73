package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/galaxy/app"
	"github.com/pthm-cable/galaxy/config"
)

func main() {
	config.LoadEnv()

	// CLI flags
	configPath := flag.String("config", config.GetEnv(config.EnvConfig, ""), "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Generate without opening a window")
	seed := flag.Int64("seed", config.GetEnvInt64(config.EnvSeed, 0), "RNG seed (0 = config or time-based)")
	outputDir := flag.String("output-dir", config.GetEnv(config.EnvOutputDir, ""), "Output directory for regeneration stats and config snapshot (empty = config)")
	regenerations := flag.Int("regenerations", 1, "Headless: number of regenerations to run")
	exportPath := flag.String("export", "", "Write the final galaxy to this file on exit (.csv or binary)")
	logFormat := flag.String("log-format", "", "Log format: json or text (empty = config)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	setupLogging(cfg.Log, *logFormat)

	opts := app.Options{
		Seed:      *seed,
		OutputDir: cfg.Telemetry.ResolveOutputDir(*outputDir),
		Headless:  *headless,
		Export:    *exportPath,
	}

	if *headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		a, err := app.New(cfg, opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			os.Exit(1)
		}

		slog.Info("starting headless generation", "regenerations", *regenerations, "count", cfg.Derived.Params.Count)
		runErr := a.RunHeadless(ctx, *regenerations)
		if err := a.Unload(); err != nil {
			slog.Error("shutdown failed", "error", err)
			os.Exit(1)
		}
		if runErr != nil {
			slog.Error("headless run failed", "error", runErr)
			os.Exit(1)
		}
		return
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Galaxy")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	a, err := app.New(cfg, opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	if err := a.Start(context.Background()); err != nil {
		slog.Error("initial generation failed", "error", err)
	}

	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}

	if err := a.Unload(); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}

// setupLogging installs the default slog handler. override takes precedence
// over the configured format.
func setupLogging(lc config.LogConfig, override string) {
	format := lc.Format
	if override != "" {
		format = override
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(lc.Level)); err != nil {
		level = slog.LevelInfo
	}
	hopts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(format, "text") {
		handler = slog.NewTextHandler(os.Stdout, hopts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, hopts)
	}
	slog.SetDefault(slog.New(handler))
}
