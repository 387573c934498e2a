package usecase

import (
	"context"

	"founder-match/internal/domain/match"
	"founder-match/internal/metrics"

	"go.uber.org/zap"
)

type MatchEventPublisher interface {
	PublishMatchEvent(ctx context.Context, e match.Event) error
}

func publishMatchEvent(ctx context.Context, p MatchEventPublisher, logger *zap.Logger, e match.Event) {
	if p == nil {
		return
	}
	err := p.PublishMatchEvent(ctx, e)
	metrics.EventsPublishedTotal.WithLabelValues(string(e.Type), metrics.Result(err)).Inc()
	if err != nil {
		logger.Warn("match event publish failed",
			zap.String("type", string(e.Type)),
			zap.String("match_id", e.MatchID.String()),
			zap.Error(err),
		)
	}
}
