package usecase

import (
	"context"
	"errors"
	"fmt"

	"founder-match/internal/domain/match"
	"founder-match/internal/domain/notification"
	"founder-match/internal/metrics"
	"founder-match/internal/pkg/logger"
	"founder-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultActAttempts = 5

type MatchLifecycleUsecase interface {
	Act(ctx context.Context, userID, matchID uuid.UUID, action match.Action) (match.Match, error)
}

type MatchLifecycle struct {
	matches  repository.MatchRepository
	notifier notification.Notifier
	cache    Cache
	events   MatchEventPublisher
	logger   *zap.Logger

	maxAttempts int
}

func NewMatchLifecycle(
	matches repository.MatchRepository,
	notifier notification.Notifier,
	cache Cache,
	events MatchEventPublisher,
	log *zap.Logger,
) *MatchLifecycle {
	return &MatchLifecycle{
		matches:     matches,
		notifier:    notifier,
		cache:       cache,
		events:      events,
		logger:      logger.OrNop(log),
		maxAttempts: defaultActAttempts,
	}
}

// Act records the caller's decision on their own slot. Writes are guarded by
// the match version; a write that lost to the counterpart's concurrent
// decision is re-read and re-applied so neither side's decision is lost.
func (l *MatchLifecycle) Act(ctx context.Context, userID, matchID uuid.UUID, action match.Action) (match.Match, error) {
	if !action.Valid() {
		metrics.MatchActionsTotal.WithLabelValues(string(action), "invalid").Inc()
		return match.Match{}, ErrInvalidMatchAction
	}

	for attempt := 1; ; attempt++ {
		m, err := l.matches.FindByID(ctx, matchID)
		if err != nil {
			if errors.Is(err, repository.ErrMatchNotFound) {
				return match.Match{}, ErrMatchNotFound
			}
			return match.Match{}, fmt.Errorf("load match: %w", err)
		}

		slot := m.SlotOf(userID)
		if slot == match.SlotNone {
			metrics.MatchActionsTotal.WithLabelValues(string(action), "forbidden").Inc()
			return match.Match{}, ErrNotMatchParticipant
		}

		prev := m.Status
		changed, err := m.Apply(slot, action)
		if err != nil {
			return match.Match{}, ErrInvalidMatchAction
		}
		if !changed {
			metrics.MatchActionsTotal.WithLabelValues(string(action), "unchanged").Inc()
			return m, nil
		}

		saved, err := l.matches.Save(ctx, m)
		if err != nil {
			switch {
			case errors.Is(err, repository.ErrStaleMatch):
				if attempt >= l.maxAttempts {
					metrics.MatchActionsTotal.WithLabelValues(string(action), "conflict").Inc()
					return match.Match{}, ErrMatchUpdateConflict
				}
				metrics.MatchActRetriesTotal.Inc()
				continue
			case errors.Is(err, repository.ErrMatchNotFound):
				return match.Match{}, ErrMatchNotFound
			default:
				return match.Match{}, fmt.Errorf("save match: %w", err)
			}
		}

		metrics.MatchActionsTotal.WithLabelValues(string(action), metrics.ResultOK).Inc()
		l.afterSave(ctx, prev, saved)
		return saved, nil
	}
}

func (l *MatchLifecycle) afterSave(ctx context.Context, prev match.Status, m match.Match) {
	invalidateMatchLists(ctx, l.cache, l.logger, m.User1ID, m.User2ID)

	if prev == m.Status {
		return
	}
	publishMatchEvent(ctx, l.events, l.logger, match.NewEvent(match.EventStatusChanged, m))

	if m.Status != match.StatusAccepted {
		return
	}
	for _, uid := range []uuid.UUID{m.User1ID, m.User2ID} {
		l.notify(ctx, uid, m)
	}
}

func (l *MatchLifecycle) notify(ctx context.Context, userID uuid.UUID, m match.Match) {
	if l.notifier == nil {
		return
	}
	related := m.ID
	err := l.notifier.Notify(ctx, notification.Notification{
		UserID:    userID,
		Title:     "It's a match!",
		Message:   "You and your co-founder candidate accepted each other. Start the conversation.",
		Type:      notification.TypeMatch,
		RelatedID: &related,
	})
	if err != nil {
		l.logger.Warn("match notification failed",
			zap.String("user_id", userID.String()),
			zap.String("match_id", m.ID.String()),
			zap.Error(err),
		)
	}
}
