package worker

import "time"

// Day close scheduling
const (
	// DayCloseStandbyThreshold switches from standby to the final approach
	DayCloseStandbyThreshold = 1 * time.Hour
	// DayCloseWakeBefore is how long before midnight the standby timer wakes
	DayCloseWakeBefore = 45 * time.Minute
	// DayCloseEarlyTolerance reschedules a timer that fired this far before midnight
	DayCloseEarlyTolerance = 10 * time.Second
	// DayCloseJobTimeout bounds the summary query and publish
	DayCloseJobTimeout = 30 * time.Second
)

// DefaultRecoveryLookbackDays is how far back recovery looks for unscored results
const DefaultRecoveryLookbackDays = 7

// Log messages - worker pool
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgQueueFull       = "Worker queue full, job dropped"
)

// Log messages - recovery job
const (
	LogMsgRecoveryCompleted = "Recovered unscored results"
	LogMsgRecoveryIdle      = "No unscored results to recover"
)

// Log messages - day close worker
const (
	LogMsgDayCloseStandby   = "Day close standby"
	LogMsgDayCloseScheduled = "Day close scheduled"
	LogMsgDayCloseStarting  = "Betting closing for the day"
	LogMsgDayCloseCompleted = "Betting closed for the day"
	LogMsgDayCloseFailed    = "Day close failed"
	LogMsgShuttingDown      = "Shutting down worker"
	LogMsgTimerCancelled    = "Cancelled pending worker run"
	LogMsgShutdownComplete  = "Worker shutdown complete"
	LogMsgShutdownTimeout   = "Worker shutdown timeout, a run may still be in flight"
)

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)
