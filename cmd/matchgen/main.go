package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"founder-match/internal/app"
	"founder-match/internal/config"
	"founder-match/internal/pkg/logger"
	"founder-match/internal/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	workers := flag.Int("workers", 0, "concurrent generators (defaults to MATCH_GENERATE_WORKERS)")
	rps := flag.Int("rps", -1, "users started per second (defaults to MATCH_GENERATE_RPS, 0 is unlimited)")
	timeout := flag.Duration("timeout", 30*time.Minute, "overall deadline")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.App.AppName+"-matchgen", cfg.App.Environment)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	c, err := app.NewContainer(cfg, lg)
	if err != nil {
		lg.Fatal("failed to init container", zap.Error(err))
	}
	defer func() {
		if err := c.Close(); err != nil {
			lg.Warn("close error", zap.Error(err))
		}
	}()

	n := *workers
	if n <= 0 {
		n = cfg.Matching.GenerateWorkers
	}

	limit := *rps
	if limit < 0 {
		limit = cfg.Matching.GenerateRPS
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	sum, err := usecase.NewMatchBatch(c.Profiles, c.Generator, n, lg.Named("batch")).
		WithRateLimit(limit).
		Run(ctx)
	if err != nil {
		lg.Error("batch generation stopped early",
			zap.Error(err),
			zap.Int("users", sum.Users),
			zap.Int("generated", sum.Generated),
		)
		cancel()
		_ = c.Close()
		_ = lg.Sync()
		os.Exit(1)
	}
}
