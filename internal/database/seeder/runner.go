package seeder

import (
	"context"
	"fmt"
	"time"

	"founder-match/internal/database"

	"go.uber.org/zap"
)

// Runner executes seeders in order and stops at the first failure.
type Runner struct {
	Seeders []Seeder
	Logger  *zap.Logger
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return database.ErrNilDB
	}
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		start := time.Now()
		if err := s.Run(ctx, db); err != nil {
			logger.Error("seeder failed", zap.String("seeder", s.Name()), zap.Error(err))
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		logger.Info("seeder finished", zap.String("seeder", s.Name()), zap.Duration("took", time.Since(start)))
	}
	return nil
}
