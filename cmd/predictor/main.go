package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"StockPredictor/internal/collector"
	"StockPredictor/internal/config"
	"StockPredictor/internal/logger"
	"StockPredictor/internal/metrics"
	"StockPredictor/internal/parser"
	"StockPredictor/internal/pipeline"
	"StockPredictor/internal/recorder"
	"StockPredictor/internal/scheduler"

	"github.com/rs/zerolog"
)

func main() {
	boot := logger.NewWithWriter(os.Stderr, "console", zerolog.InfoLevel)

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		boot.Fatal().Err(err).Msg("load config")
	}
	args := os.Args[1:]
	if len(args) > 0 || cfg.Input.RootDir == "" {
		if err := cfg.ApplyArgs(args); err != nil {
			boot.Fatal().Err(err).Msg("usage: predictor <root-dir> <max-files-per-exchange>")
		}
	}
	if err := cfg.Validate(); err != nil {
		boot.Fatal().Err(err).Msg("config validation")
	}

	log, closeLog, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	if err != nil {
		boot.Fatal().Err(err).Msg("init logger")
	}
	defer func() {
		if err := closeLog(); err != nil {
			boot.Error().Err(err).Msg("close log file")
		}
	}()

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Output.Dir).Msg("create output directory")
	}

	seed := cfg.Sampling.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	// Init recorder
	var rec recorder.Recorder
	if cfg.History.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.History.SQLitePath, log)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	src := collector.NewFileSource(parser.New(log))
	col := collector.NewCollector(cfg.Input.RootDir, cfg.Input.MaxFilesPerExchange, cfg.Input.Extension, log)
	p := pipeline.New(src, rng, pipeline.Options{
		WindowSize:  cfg.Sampling.WindowSize,
		OutputDir:   cfg.Output.Dir,
		MetricsPath: cfg.Metrics.TextfilePath,
	}, rec, metrics.New(), log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, col, p, os.Stdout, log)

	if cfg.Schedule.Cron == "" {
		sched.RunOnce()
		return
	}

	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		log.Fatal().Err(err).Msg("register cron task")
	}
	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, executing batch now")
		sched.RunOnce()
	}
	sched.Start()
	defer sched.Stop()

	log.Info().Str("cron", cfg.Schedule.Cron).Msg("StockPredictor is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping...")
	cancel()
}
