package main

import (
	"context"
	"flag"
	"log"
	"time"

	"founder-match/internal/config"
	"founder-match/internal/database/migration"
	dbpostgres "founder-match/internal/database/postgres"
	"founder-match/internal/database/seeder"
	"founder-match/internal/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	migrate := flag.Bool("migrate", true, "apply migrations before seeding")
	status := flag.Bool("status", false, "list migrations and exit without applying them")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.App.AppName+"-seed", cfg.App.Environment)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database, lg.Named("postgres"))
	if err != nil {
		lg.Fatal("connect postgres", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	migrations := migration.Runner{Dir: cfg.App.MigrationsDir, Logger: lg.Named("migration")}
	if *status {
		rows, err := migrations.Status(ctx, db.SQLDB())
		if err != nil {
			lg.Fatal("migration status failed", zap.Error(err))
		}
		for _, r := range rows {
			lg.Info("migration",
				zap.Int64("version", r.Version),
				zap.String("name", r.Name),
				zap.Bool("applied", r.Applied),
				zap.Bool("drifted", r.Drifted),
			)
		}
		return
	}

	if *migrate {
		if err := migrations.Run(ctx, db.SQLDB()); err != nil {
			lg.Fatal("migrations failed", zap.Error(err))
		}
	}

	seeders := seeder.Defaults(cfg.Seed)

	if err := (seeder.Runner{Seeders: seeders, Logger: lg.Named("seed")}).Run(ctx, db); err != nil {
		lg.Fatal("seeding failed", zap.Error(err))
	}
	lg.Info("seeding finished", zap.Int("seeders", len(seeders)))
}
