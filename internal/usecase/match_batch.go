package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"founder-match/internal/pkg/logger"
	"founder-match/internal/repository"
	"founder-match/internal/worker"

	"go.uber.org/zap"
)

type BatchSummary struct {
	Users     int           `json:"users"`
	Generated int           `json:"generated"`
	Failed    int           `json:"failed"`
	Took      time.Duration `json:"took"`
}

// MatchBatch runs Generate for every user with a profile on a bounded pool.
// Running it for both users of a pair at once is safe; the second create is
// absorbed as a duplicate.
type MatchBatch struct {
	profiles  repository.ProfileRepository
	generator MatchGeneratorUsecase
	workers   int
	rps       int
	logger    *zap.Logger
}

func NewMatchBatch(profiles repository.ProfileRepository, generator MatchGeneratorUsecase, workers int, log *zap.Logger) *MatchBatch {
	if workers <= 0 {
		workers = 1
	}
	return &MatchBatch{profiles: profiles, generator: generator, workers: workers, logger: logger.OrNop(log)}
}

// WithRateLimit caps how many users start generating per second. Zero or less
// removes the cap.
func (b *MatchBatch) WithRateLimit(rps int) *MatchBatch {
	b.rps = rps
	return b
}

func (b *MatchBatch) Run(ctx context.Context) (BatchSummary, error) {
	start := time.Now()

	ids, err := b.profiles.ListUserIDs(ctx)
	if err != nil {
		return BatchSummary{}, fmt.Errorf("list users: %w", err)
	}

	pool := worker.NewPool(b.workers, b.workers)
	pool.SetRateLimit(b.rps)
	results := pool.Run(ctx)

	go func() {
		defer pool.Close()
		for _, id := range ids {
			userID := id
			ok := pool.Submit(ctx, userID, func(ctx context.Context) (int, error) {
				res, err := b.generator.Generate(ctx, userID)
				return res.GeneratedCount, err
			})
			if !ok {
				return
			}
		}
	}()

	sum := BatchSummary{Users: len(ids)}
	for r := range results {
		if r.Err != nil {
			sum.Failed++
			if !errors.Is(r.Err, ErrProfileRequired) {
				b.logger.Warn("generate failed", zap.String("user_id", r.UserID.String()), zap.Error(r.Err))
			}
			continue
		}
		sum.Generated += r.Count
	}
	sum.Took = time.Since(start)

	if err := ctx.Err(); err != nil {
		return sum, err
	}

	b.logger.Info("batch generation finished",
		zap.Int("users", sum.Users),
		zap.Int("generated", sum.Generated),
		zap.Int("failed", sum.Failed),
		zap.Duration("took", sum.Took),
	)
	return sum, nil
}

