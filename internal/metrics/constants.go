package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Game metric names
const (
	MetricNameResultsResolved      = "wagerbot_results_resolved_total"
	MetricNameScoresAwarded        = "wagerbot_scores_awarded_total"
	MetricNameWagersScored         = "wagerbot_wagers_scored_total"
	MetricNameConfirmations        = "wagerbot_confirmations_total"
	MetricNamePendingConfirmations = "wagerbot_pending_confirmations"
	MetricNameRecoveredResults     = "wagerbot_recovered_results_total"
	MetricNameLeaderboardCache     = "wagerbot_leaderboard_cache_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Game metric help text
const (
	HelpTextResultsResolved      = "Total number of region results resolved"
	HelpTextScoresAwarded        = "Total points awarded across all resolutions"
	HelpTextWagersScored         = "Total number of wagers turned into score records"
	HelpTextConfirmations        = "Bet confirmations by outcome"
	HelpTextPendingConfirmations = "Bet confirmations currently awaiting an answer"
	HelpTextRecoveredResults     = "Results rescored by the recovery sweep"
	HelpTextLeaderboardCache     = "Leaderboard cache lookups by outcome"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelRegion  = "region"
	LabelOutcome = "outcome"
)

// Leaderboard cache outcomes
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadInvalid = "Event payload could not be decoded"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
