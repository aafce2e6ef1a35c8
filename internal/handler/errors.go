package handler

// Generic HTTP error messages for client responses.
// These do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgRequestTooLarge       = "Request body too large"
	ErrMsgInvalidRequestFormat  = "Invalid request format"
)

// User-facing messages for service errors
const (
	ErrMsgGenericServerError   = "Something went wrong. Please try again."
	ErrMsgOperationInProgress  = "Another action is in progress for this game. Please retry."
	ErrMsgSessionNotFound      = "Game not found"
	ErrMsgItemNotFound         = "Item not found"
	ErrMsgGameOver             = "The game is over"
	ErrMsgNotEnoughMoney       = "Not enough money to spin"
	ErrMsgNotEnoughTickets     = "Not enough tickets"
	ErrMsgTooManyRequests      = "Too many requests. Please try again later."
	ErrMsgAuthFailed           = "Authentication failed. Please check your API key."
	ErrMsgServiceUnavailable   = "Service is temporarily unavailable"
	ErrMsgDatabaseUnavailable  = "database connection failed"
	ErrMsgValidationNoHTML     = "Must not contain HTML tags"
	ErrMsgValidationRequired   = "This field is required"
	ErrMsgValidationInvalid    = "Invalid value"
	ErrMsgValidationMaxFmt     = "Must be at most %s characters"
	ErrMsgValidationMinFmt     = "Must be at least %s"
	ErrMsgValidationMinCharFmt = "Must be at least %s characters"
)

// Headers
const (
	HeaderRetryAfter      = "Retry-After"
	RetryAfterContention  = "1"
	ContentTypeJSON       = "application/json"
	URLParamSessionID     = "sessionID"
	HealthStatusOK        = "ok"
	HealthStatusUnhealthy = "unavailable"
)

// Log messages
const (
	LogMsgDecodeFailed    = "Failed to decode request"
	LogMsgRequestDecoded  = "Request decoded"
	LogMsgServiceError    = "Game operation failed"
	LogMsgEncodeFailed    = "Failed to encode JSON response"
	LogMsgWriteFailed     = "Failed to write response buffer"
	LogMsgReadinessFailed = "Readiness check failed"
)
