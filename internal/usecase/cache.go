package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Incr atomically bumps an integer counter and refreshes its ttl.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

const (
	matchListTTL = 5 * time.Minute
	// The generation must outlive every listing stamped with it.
	matchListGenTTL = 24 * time.Hour
)

func matchListCacheKey(userID uuid.UUID) string {
	return "matches:list:" + userID.String()
}

func matchListGenKey(userID uuid.UUID) string {
	return "matches:gen:" + userID.String()
}

// cachedMatchList is a listing stamped with the generation that was current
// before the store was read. A listing whose stamp no longer matches was built
// from data older than the last invalidation.
type cachedMatchList struct {
	Gen   int64       `json:"gen"`
	Items []MatchView `json:"items"`
}

func matchListGeneration(ctx context.Context, c Cache, userID uuid.UUID) (int64, error) {
	var gen int64
	if _, err := c.GetJSON(ctx, matchListGenKey(userID), &gen); err != nil {
		return 0, err
	}
	return gen, nil
}

// invalidateMatchLists bumps the listing generation of every given user and
// drops their cached listing. Cache errors are logged only; the store stays
// the source of truth.
func invalidateMatchLists(ctx context.Context, c Cache, logger *zap.Logger, userIDs ...uuid.UUID) {
	if c == nil {
		return
	}
	for _, id := range userIDs {
		if _, err := c.Incr(ctx, matchListGenKey(id), matchListGenTTL); err != nil {
			logger.Warn("match list generation bump failed", zap.String("user_id", id.String()), zap.Error(err))
		}
		if err := c.Delete(ctx, matchListCacheKey(id)); err != nil {
			logger.Warn("match list cache invalidation failed", zap.String("user_id", id.String()), zap.Error(err))
		}
	}
}
