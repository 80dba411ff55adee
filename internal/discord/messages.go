package discord

// Friendly message constants for Discord responses
const (
	MsgRegionNotFound   = "🗺️ **Unknown region**\nUse `/regions` to see the codes you can bet on."
	MsgRegionClosed     = "🚧 **Region closed**\nThat region isn't taking bets right now."
	MsgAmountOutOfRange = "🔢 **Amount out of range**\nPick a number between 0 and the game maximum."
	MsgNoChange         = "🤷 **Nothing to do**\nYou already have exactly that bet."
	MsgAlreadyResolved  = "📌 **Already recorded**\nThat region already has a result for the date."
	MsgAlreadyScored    = "📌 **Already scored**\nScores for that result were written earlier."
	MsgNotFound         = "❓ **Not found**"

	MsgChannelNotAllowed    = "🙅 Commands aren't accepted in this channel."
	MsgModeratorOnly        = "🔒 Only moderators can use this command."
	MsgNotYourConfirmation  = "This bet isn't yours to answer."
	MsgAlreadyAnswered      = "You've already answered this bet."
	MsgConfirmationFinished = "This bet prompt has already finished."

	MsgGenericError = "❌ Something went wrong."
)
