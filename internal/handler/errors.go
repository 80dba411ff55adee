package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// View error messages
	ErrMsgListRegionsFailed    = "Failed to list regions"
	ErrMsgGetResultsFailed     = "Failed to retrieve results"
	ErrMsgGetLeaderboardFailed = "Failed to retrieve leaderboard"
	ErrMsgGetScoreboardFailed  = "Failed to retrieve scoreboard"
	ErrMsgListWagersFailed     = "Failed to list wagers"

	// Admin error messages
	ErrMsgResolveFailed       = "Failed to record result"
	ErrMsgRescoreFailed       = "Failed to rescore result"
	ErrMsgPlacedSummaryFailed = "Failed to count placed wagers"
	ErrMsgReloadRegionsFailed = "Failed to reload regions"

	// Info error messages
	ErrMsgTopicNotFound         = "Topic '%s' not found in feature '%s'"
	ErrMsgFeatureOrTopicMissing = "Feature or topic '%s' not found"
)

// Success messages for API responses
const (
	MsgResultRecorded  = "Result recorded"
	MsgResultRescored  = "Result rescored"
	MsgRegionsReloaded = "Regions reloaded"
)

// Log messages
const (
	LogMsgDecodeFailed    = "Failed to decode %s request"
	LogMsgRequestDecoded  = "%s request decoded"
	LogMsgMissingParam    = "Missing %s query parameter"
	LogMsgServiceError    = "Service call failed"
	LogMsgResultRecorded  = "Result recorded via API"
	LogMsgRegionsReloaded = "Regions reloaded via API"
	LogMsgReadinessFailed = "Readiness check failed"
	LogMsgEncodeFailed    = "Failed to encode JSON response"
	LogMsgWriteFailed     = "Failed to write response buffer"
)
