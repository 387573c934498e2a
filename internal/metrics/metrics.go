package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MatchesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "founder_match_matches_created_total",
			Help: "Total number of matches persisted by generation",
		},
	)

	MatchDuplicatesAbsorbedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "founder_match_duplicates_absorbed_total",
			Help: "Match inserts that lost a race on the pair uniqueness constraint",
		},
	)

	CompatibilityScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "founder_match_compatibility_scores",
			Help:    "Distribution of computed compatibility totals",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	GenerateDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "founder_match_generate_duration_seconds",
			Help:    "Time spent generating matches for one user",
			Buckets: prometheus.DefBuckets,
		},
	)

	MatchActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "founder_match_actions_total",
			Help: "Accept/reject decisions by outcome",
		},
		[]string{"action", "result"},
	)

	MatchActRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "founder_match_act_retries_total",
			Help: "Optimistic write retries caused by concurrent decisions",
		},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "founder_match_notifications_total",
			Help: "Notifications delivered per channel",
		},
		[]string{"channel", "result"},
	)

	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "founder_match_events_published_total",
			Help: "Match events written to the event stream",
		},
		[]string{"type", "result"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "founder_match_http_requests_total",
			Help: "HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "founder_match_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	HTTPPanicsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "founder_match_http_panics_total",
			Help: "Handler panics recovered by the error middleware",
		},
	)

	AuthRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "founder_match_auth_rejections_total",
			Help: "Requests refused by authentication or role checks",
		},
		[]string{"reason"},
	)

	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "founder_match_ws_connections",
			Help: "Open notification websocket connections",
		},
	)
)

const (
	ResultOK    = "ok"
	ResultError = "error"
)

func Result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}
