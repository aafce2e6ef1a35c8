package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too many requests. Please try again later."
)

// Security alert message templates
const (
	SecurityAlertFailedAuth = "⚠️ SECURITY ALERT: Multiple failed authentication attempts"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Authentication failed"
	LogMsgAuthDisabled     = "API key not configured, authentication disabled"
	LogMsgRateLimited      = "Rate limit exceeded"
	LogMsgRateLimitError   = "Rate limiter unavailable, allowing request"
)

// HTTP header names
const (
	HeaderAPIKey             = "X-API-Key"
	HeaderAuthorization      = "Authorization"
	HeaderForwardedFor       = "X-Forwarded-For"
	HeaderRequestID          = "X-Request-ID"
	HeaderContentType        = "X-Content-Type-Options"
	HeaderFrameOptions       = "X-Frame-Options"
	HeaderXSSProtection      = "X-XSS-Protection"
	HeaderReferrerPolicy     = "Referrer-Policy"
	HeaderCSP                = "Content-Security-Policy"
	HeaderHSTS               = "Strict-Transport-Security"
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"
	HeaderRetryAfter         = "Retry-After"
)

// Security header values
const (
	HeaderValueNoSniff              = "nosniff"
	HeaderValueDeny                 = "DENY"
	HeaderValueXSSBlock             = "1; mode=block"
	HeaderValueReferrerStrictOrigin = "strict-origin-when-cross-origin"
	HeaderValueCSP                  = "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'"
	HeaderValueHSTS                 = "max-age=31536000; includeSubDomains"
)

// Server limits
const (
	MaxRequestBodyBytes   = 1 << 20
	ReadHeaderTimeout     = 5 * time.Second
	FailedAuthAlertCount  = 5
	FailedAuthResetWindow = 5 * time.Minute
	APIPrefix             = "/api/v1"
)

// Public path prefixes that bypass authentication and rate limiting
var PublicPaths = []string{
	"/swagger/",
	"/healthz",
	"/readyz",
	"/metrics",
	"/version",
}

// Header redaction marker
const (
	RedactedValue = "[REDACTED]"
)
