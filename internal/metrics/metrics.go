package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Game Metrics
var (
	ResultsResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameResultsResolved,
			Help: HelpTextResultsResolved,
		},
		[]string{LabelRegion},
	)

	ScoresAwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameScoresAwarded,
			Help: HelpTextScoresAwarded,
		},
	)

	WagersScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameWagersScored,
			Help: HelpTextWagersScored,
		},
	)

	Confirmations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameConfirmations,
			Help: HelpTextConfirmations,
		},
		[]string{LabelOutcome},
	)

	PendingConfirmations = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNamePendingConfirmations,
			Help: HelpTextPendingConfirmations,
		},
	)

	RecoveredResults = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRecoveredResults,
			Help: HelpTextRecoveredResults,
		},
	)

	LeaderboardCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLeaderboardCache,
			Help: HelpTextLeaderboardCache,
		},
		[]string{LabelOutcome},
	)
)
