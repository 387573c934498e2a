package usecase

import (
	"context"
	"fmt"

	"founder-match/internal/domain/match"
	"founder-match/internal/domain/matching"
	"founder-match/internal/domain/profile"
	"founder-match/internal/pkg/logger"
	"founder-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MatchView is one match as seen by one of its two users.
type MatchView struct {
	MatchID      uuid.UUID          `json:"id"`
	Score        int                `json:"score"`
	Breakdown    matching.Breakdown `json:"breakdown"`
	Status       match.Status       `json:"status"`
	MyStatus     match.Status       `json:"my_status"`
	OtherStatus  match.Status       `json:"other_status"`
	OtherUserID  uuid.UUID          `json:"other_user_id"`
	OtherProfile profile.View       `json:"other_profile"`
}

type MatchQueryUsecase interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]MatchView, error)
}

type MatchQueryService struct {
	matches  repository.MatchRepository
	profiles repository.ProfileRepository
	cache    Cache
	logger   *zap.Logger
}

func NewMatchQueryService(
	matches repository.MatchRepository,
	profiles repository.ProfileRepository,
	cache Cache,
	log *zap.Logger,
) *MatchQueryService {
	return &MatchQueryService{matches: matches, profiles: profiles, cache: cache, logger: logger.OrNop(log)}
}

// ListForUser returns the user's matches, best score first, minus the ones the
// user has rejected.
func (s *MatchQueryService) ListForUser(ctx context.Context, userID uuid.UUID) ([]MatchView, error) {
	key := matchListCacheKey(userID)
	cacheable := s.cache != nil
	var gen int64
	if cacheable {
		// Read the generation before the store so that an invalidation racing
		// this read leaves the written listing stale rather than live.
		g, err := matchListGeneration(ctx, s.cache, userID)
		if err != nil {
			s.logger.Debug("match list generation read failed", zap.String("key", key), zap.Error(err))
			cacheable = false
		}
		gen = g
	}
	if cacheable {
		var cached cachedMatchList
		ok, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			s.logger.Debug("match list cache read failed", zap.String("key", key), zap.Error(err))
		}
		if ok && cached.Gen == gen && cached.Items != nil {
			return cached.Items, nil
		}
	}

	ms, err := s.matches.FindAllContaining(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	others := make([]uuid.UUID, 0, len(ms))
	for _, m := range ms {
		if other, ok := m.OtherUser(userID); ok {
			others = append(others, other)
		}
	}
	profiles, err := s.profiles.GetByUserIDs(ctx, others)
	if err != nil {
		return nil, fmt.Errorf("load counterpart profiles: %w", err)
	}

	out := make([]MatchView, 0, len(ms))
	for _, m := range ms {
		mine, theirs, ok := m.StatusesFor(userID)
		if !ok {
			continue
		}
		if mine == match.StatusRejected {
			continue
		}
		other, _ := m.OtherUser(userID)

		view := profile.UnknownView()
		if p, ok := profiles[other]; ok {
			view = p.View()
		}

		out = append(out, MatchView{
			MatchID:      m.ID,
			Score:        m.Score,
			Breakdown:    m.Breakdown,
			Status:       m.Status,
			MyStatus:     mine,
			OtherStatus:  theirs,
			OtherUserID:  other,
			OtherProfile: view,
		})
	}

	if cacheable {
		if err := s.cache.SetJSON(ctx, key, cachedMatchList{Gen: gen, Items: out}, matchListTTL); err != nil {
			s.logger.Debug("match list cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return out, nil
}
