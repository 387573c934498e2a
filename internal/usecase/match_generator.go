package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"founder-match/internal/domain/match"
	"founder-match/internal/domain/matching"
	"founder-match/internal/metrics"
	"founder-match/internal/pkg/logger"
	"founder-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type GenerateResult struct {
	GeneratedCount int `json:"generated_count"`
}

type MatchGeneratorUsecase interface {
	Generate(ctx context.Context, userID uuid.UUID) (GenerateResult, error)
}

type MatchGenerator struct {
	profiles repository.ProfileRepository
	matches  repository.MatchRepository
	scorer   *matching.Scorer
	cache    Cache
	events   MatchEventPublisher
	logger   *zap.Logger
}

func NewMatchGenerator(
	profiles repository.ProfileRepository,
	matches repository.MatchRepository,
	scorer *matching.Scorer,
	cache Cache,
	events MatchEventPublisher,
	log *zap.Logger,
) *MatchGenerator {
	if scorer == nil {
		scorer = matching.NewScorer(matching.DefaultWeights())
	}
	return &MatchGenerator{
		profiles: profiles,
		matches:  matches,
		scorer:   scorer,
		cache:    cache,
		events:   events,
		logger:   logger.OrNop(log),
	}
}

// Generate scores the user against every other profile and stores a match for
// each unseen pair at or above the threshold. Pairs that already have a match,
// including ones created concurrently by the other side, are not counted.
func (g *MatchGenerator) Generate(ctx context.Context, userID uuid.UUID) (GenerateResult, error) {
	start := time.Now()
	defer func() { metrics.GenerateDuration.Observe(time.Since(start).Seconds()) }()

	self, err := g.profiles.GetSnapshot(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return GenerateResult{}, ErrProfileRequired
		}
		return GenerateResult{}, fmt.Errorf("load profile: %w", err)
	}

	candidates, err := g.profiles.ListSnapshots(ctx, userID)
	if err != nil {
		return GenerateResult{}, fmt.Errorf("list candidates: %w", err)
	}

	var (
		res     GenerateResult
		touched = []uuid.UUID{}
	)
	defer func() {
		if len(touched) > 0 {
			invalidateMatchLists(ctx, g.cache, g.logger, append(touched, userID)...)
		}
	}()

	for _, cand := range candidates {
		if cand.UserID == userID {
			continue
		}

		_, err := g.matches.FindByPair(ctx, userID, cand.UserID)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrMatchNotFound) {
			return res, fmt.Errorf("find pair: %w", err)
		}

		sc := g.scorer.Score(self, cand)
		metrics.CompatibilityScores.Observe(float64(sc.Total))
		if !g.scorer.Qualifies(sc) {
			continue
		}

		m, err := match.New(userID, cand.UserID, sc)
		if err != nil {
			continue
		}
		created, err := g.matches.Create(ctx, m)
		if err != nil {
			if errors.Is(err, repository.ErrDuplicateMatch) {
				metrics.MatchDuplicatesAbsorbedTotal.Inc()
				g.logger.Debug("match already created by concurrent run",
					zap.String("user_id", userID.String()),
					zap.String("candidate_id", cand.UserID.String()),
				)
				continue
			}
			return res, fmt.Errorf("create match: %w", err)
		}

		res.GeneratedCount++
		touched = append(touched, cand.UserID)
		metrics.MatchesCreatedTotal.Inc()
		publishMatchEvent(ctx, g.events, g.logger, match.NewEvent(match.EventCreated, created))
	}

	g.logger.Info("match generation finished",
		zap.String("user_id", userID.String()),
		zap.Int("candidates", len(candidates)),
		zap.Int("generated", res.GeneratedCount),
		zap.Duration("duration", time.Since(start)),
	)
	return res, nil
}
