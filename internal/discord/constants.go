package discord

import "time"

const (
	DefaultBetNoun = "case"

	// Custom ids of the confirmation buttons: bet:<action>:<confirmation id>
	ComponentPrefix = "bet"
	ActionConfirm   = "confirm"
	ActionDecline   = "decline"

	InternalServerShutdownTimeout = 5 * time.Second
)

// Embed colors
const (
	ColorInfo    = 0x3498db
	ColorSuccess = 0x2ecc71
	ColorWarning = 0xf39c12
	ColorDanger  = 0xe74c3c
	ColorNeutral = 0x95a5a6
	ColorAdmin   = 0x9b59b6
)

// Footer constants for standardized embed footers
const (
	FooterWagerBot      = "WagerBot"
	FooterWagerBotAdmin = "WagerBot Admin"
)

// Log messages
const (
	LogMsgBotRunning         = "Discord bot is now running. Press CTRL-C to exit."
	LogMsgBotReady           = "Bot is ready"
	LogMsgExpiringPending    = "Expiring pending confirmations"
	LogMsgSessionCloseFailed = "Failed to close Discord session"
	LogMsgCheckingCommands   = "Checking Discord commands..."
	LogMsgCommandReceived    = "Command received"
	LogMsgCommandFailed      = "Command failed"
	LogMsgChannelRefused     = "Command refused outside allowed channels"
	LogMsgModeratorRefused   = "Moderator command refused"
	LogMsgEditFailed         = "Failed to edit interaction response"
	LogMsgRespondFailed      = "Failed to respond to interaction"
	LogMsgDeferFailed        = "Failed to send deferred response"
	LogMsgAckFailed          = "Failed to acknowledge button press"
	LogMsgOutcomeEditFailed  = "Failed to update confirmation message"
	LogMsgAwaitFailed        = "Confirmation ended with an error"
	LogMsgUnknownComponent   = "Ignoring unknown component"
	LogMsgAnnounceFailed     = "Failed to post announcement"
	LogMsgAnnounceSkipped    = "No announcement channel configured"
	LogMsgInternalStarting   = "Starting Discord internal HTTP server"
	LogMsgInternalFailed     = "Discord internal HTTP server failed"
	LogMsgInternalStopFailed = "Discord internal HTTP server shutdown failed"
	LogMsgHelpTopicMissing   = "Help topic not found"
	LogMsgRegisteredCommands = "Registered commands"
)
