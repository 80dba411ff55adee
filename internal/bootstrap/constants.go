package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files (read/write for owner, read for group/others)
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of log files kept, including the new one
	LogFileRetentionCount = 10
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingWagerBot    = "Starting WagerBot"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// =============================================================================
// Event System Configuration
// =============================================================================

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgKafkaForwardingDisabled        = "KAFKA_BROKERS not set, events stay in-process"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
)

// Log messages for event handler registration
const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgLeaderboardHandlerReady    = "Leaderboard cache invalidation registered"
)

// =============================================================================
// Store and Cache
// =============================================================================

const (
	LogMsgMigrationsApplied      = "Database schema is up to date"
	LogMsgRedisDisabled          = "REDIS_ADDR not set, leaderboards are computed on every request"
	LogMsgRedisConnected         = "Leaderboard cache connected"
	ErrMsgFailedConnectDatabase  = "failed to connect to database"
	ErrMsgFailedMigrateDatabase  = "failed to migrate database"
	ErrMsgFailedConnectRedis     = "failed to connect to leaderboard cache"
	ErrMsgFailedLoadHelp         = "failed to load help topics"
	LogMsgHelpUnavailable        = "Help topics unavailable"
	ErrMsgFailedSyncRegions      = "failed to sync region catalogue"
	LogMsgSyncingRegions         = "Syncing region catalogue from JSON config..."
	LogMsgRegionsSynced          = "Region catalogue synced successfully"
	LogMsgRegionSyncFailedKeepDB = "Region catalogue sync failed, keeping the stored catalogue"
)

// =============================================================================
// Background Work
// =============================================================================

const (
	// WorkerPoolSize is the number of goroutines running background jobs
	WorkerPoolSize = 2

	// WorkerQueueSize bounds the background job queue
	WorkerQueueSize = 16

	// JobNameRecovery names the unscored result recovery in scheduler logs
	JobNameRecovery = "recover_unscored"

	LogMsgWorkersStarted = "Background workers started"

	// StartupTimeout bounds connecting to the store and cache at startup
	StartupTimeout = 30 * time.Second
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgDayCloseShutdownFailed     = "Day close worker shutdown failed"
	LogMsgCloseFailed                = "Failed to close connection"
)
