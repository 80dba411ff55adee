package validation

// Error messages
const (
	ErrMsgSchemaValidation = "schema validation failed against"
	ErrMsgSchemaNotFound   = "schema file not found"
	ErrMsgReadSchema       = "failed to read schema"
	ErrMsgParseSchema      = "failed to parse schema"
	ErrMsgCompileSchema    = "failed to compile schema"
	ErrMsgReadData         = "failed to read data file"
	ErrMsgParseData        = "failed to parse JSON data"
)
