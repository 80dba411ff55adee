package scoring

// DefaultPoints is the undivided award for 1st through 6th place
var DefaultPoints = []int{100, 50, 25, 10, 5, 1}

// DefaultMaxAmount bounds result values and wagers
const DefaultMaxAmount = 900000000

// Error messages
const (
	ErrMsgValueRange           = "value must be between 0 and %d"
	ErrMsgMissingDate          = "date is required"
	ErrMsgCheckResultFailed    = "failed to check for existing result"
	ErrMsgInsertResultFailed   = "failed to record result"
	ErrMsgFindWagersFailed     = "failed to load wagers"
	ErrMsgInsertScoresFailed   = "failed to write scores"
	ErrMsgFindResultsFailed    = "failed to load results"
	ErrMsgFindScoresFailed     = "failed to load scores"
	ErrMsgResultMissing        = "no result recorded for %s on %s"
	ErrMsgScoresAlreadyPresent = "%d scores already recorded for %s on %s"
)

// Log messages
const (
	LogMsgResultResolved      = "Result resolved"
	LogMsgResultRescored      = "Result rescored"
	LogMsgPublishFailed       = "Failed to publish result event"
	LogMsgRecoveryStarted     = "Scanning for results without scores"
	LogMsgRecoveryFailed      = "Failed to recover result"
	LogMsgRecoveryFinished    = "Unscored result scan finished"
	LogMsgRecoverySkippedNone = "Result has no wagers, nothing to score"
	LogMsgScoredConcurrently  = "Result was scored by another worker"
)
