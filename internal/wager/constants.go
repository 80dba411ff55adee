package wager

import "time"

// DefaultConfirmTimeout is how long a proposal waits for its acknowledgement
const DefaultConfirmTimeout = 60 * time.Second

// State is the position of a confirmation in its lifecycle
type State string

// Confirmation states. Proposed is the only non-terminal one.
const (
	StateProposed  State = "proposed"
	StateConfirmed State = "confirmed"
	StateDeclined  State = "declined"
	StateExpired   State = "expired"
	StateFailed    State = "failed"
)

// Error messages
const (
	ErrMsgMissingUser       = "user id is required"
	ErrMsgAmountBounds      = "amount must be between 0 and %d"
	ErrMsgIdenticalWager    = "already have %d on %s for %s"
	ErrMsgAlreadyAwaited    = "confirmation %s is already being awaited"
	ErrMsgFindWagerFailed   = "failed to load existing wager"
	ErrMsgFindWagersFailed  = "failed to list wagers"
	ErrMsgUpsertWagerFailed = "failed to save wager"
)

// Log messages
const (
	LogMsgProposed       = "Wager proposed"
	LogMsgConfirmed      = "Wager confirmed"
	LogMsgDeclined       = "Wager declined"
	LogMsgExpired        = "Wager confirmation expired"
	LogMsgSaveFailed     = "Failed to save confirmed wager"
	LogMsgAckIgnored     = "Acknowledgement ignored"
	LogMsgPublishFailed  = "Failed to publish wager event"
	LogMsgPendingExpired = "Expired pending confirmations on shutdown"
)
