package validation

// Error messages
const (
	ErrMsgReadDataFileFailed    = "failed to read data file %s: %w"
	ErrMsgLoadSchemaFailed      = "failed to load schema %s: %w"
	ErrMsgParseDataFailed       = "failed to parse JSON data: %w"
	ErrMsgReadSchemaFailed      = "failed to read schema file: %w"
	ErrMsgParseSchemaFailed     = "failed to parse schema JSON: %w"
	ErrMsgAddSchemaFailed       = "failed to add schema resource: %w"
	ErrMsgCompileSchemaFailed   = "failed to compile schema: %w"
	ErrMsgGetWorkingDirFailed   = "failed to get current directory: %w"
	ErrMsgSchemaNotFound        = "schema file not found: %s"
	ErrMsgSchemaNotFoundFromCwd = "schema file not found: %s (searched from %s)"
)

// Formatting of schema violations
const (
	RootLocation        = "(root)"
	ViolationFmt        = "  - at %s: %s validation failed"
	ViolationNoKeyword  = "  - at %s: validation failed"
	ViolationSummaryFmt = "%w:\n%s"
)
