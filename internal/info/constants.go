package info

// Platforms the help text can be rendered for
const (
	PlatformDiscord = "discord"
	PlatformPlain   = "plain"
)

// Placeholders substituted into help text
const (
	VarNoun     = "{noun}"
	VarPoints   = "{points}"
	VarTimezone = "{timezone}"
)

const fileSuffix = ".yaml"

// Error messages
const (
	ErrMsgReadDirFailed    = "failed to read info directory"
	ErrMsgReadFileFailed   = "failed to read info file"
	ErrMsgParseFileFailed  = "failed to parse info file"
	ErrMsgInvalidFeature   = "invalid info feature"
	ErrMsgDuplicateFeature = "duplicate info feature %q"
)

// Log messages
const (
	LogMsgLoaded     = "Help topics loaded"
	LogMsgLoadFailed = "Failed to load help topics"
)
