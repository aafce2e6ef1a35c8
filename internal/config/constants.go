package config

// Configuration file paths
const (
	ConfigPathItems       = "configs/items/items.json"
	ConfigPathItemsSchema = "configs/schemas/items.schema.json"
)

// Storage backends
const (
	StorageBackendPostgres = "postgres"
	StorageBackendMemory   = "memory"
)

// Rate limit backends
const (
	RateLimitBackendMemory = "memory"
	RateLimitBackendRedis  = "redis"
)

// Environment names treated as production
const (
	EnvironmentProduction = "production"
	EnvironmentProd       = "prod"
)

// Values shipped in .env.example that must not reach production
const (
	ExampleDBPassword = "change_this_secure_password"
	ExampleAPIKey     = "generate_with_openssl_rand_hex_32"
)

// Error messages
const (
	ErrMsgParseEnvFailed           = "failed to parse environment: %w"
	ErrMsgUnknownStorageBackend    = "unknown STORAGE_BACKEND %q"
	ErrMsgUnknownRateLimitBackend  = "unknown RATE_LIMIT_BACKEND %q"
	ErrMsgRateLimitNotPositive     = "RATE_LIMIT_MAX_REQUESTS and RATE_LIMIT_WINDOW must be positive"
	ErrMsgAPIKeyRequiredInProd     = "API_KEY environment variable must be set in production"
	ErrMsgInvalidPort              = "invalid PORT value %d"
	ErrMsgOTELEndpointRequired     = "OTEL_ENDPOINT must be set when OTEL_ENABLED is true"
	ErrMsgNegativeLockSweepInterval = "LOCK_SWEEP_INTERVAL must not be negative"
)
