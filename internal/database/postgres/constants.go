package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Region Operations
const (
	ErrMsgFailedToQueryRegions   = "failed to query regions"
	ErrMsgFailedToScanRegion     = "failed to scan region"
	ErrMsgFailedToReplaceRegions = "failed to replace regions"
)

// Error Messages - Wager Operations
const (
	ErrMsgFailedToQueryWagers = "failed to query wagers"
	ErrMsgFailedToScanWager   = "failed to scan wager"
	ErrMsgFailedToGetWager    = "failed to get wager"
	ErrMsgFailedToUpsertWager = "failed to upsert wager"
)

// Error Messages - Result Operations
const (
	ErrMsgFailedToCheckResult  = "failed to check result"
	ErrMsgFailedToInsertResult = "failed to insert result"
	ErrMsgFailedToQueryResults = "failed to query results"
	ErrMsgFailedToScanResult   = "failed to scan result"
)

// Error Messages - Score Operations
const (
	ErrMsgFailedToQueryScores  = "failed to query scores"
	ErrMsgFailedToScanScore    = "failed to scan score"
	ErrMsgFailedToInsertScores = "failed to insert scores"
	ErrMsgScoreCountMismatch   = "inserted %d of %d scores"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)
