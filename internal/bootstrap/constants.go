package bootstrap

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of existing log files kept before a new one is opened
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingCloverPit   = "Starting CloverPit"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgConfigWarning       = "Configuration warning"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// =============================================================================
// Storage
// =============================================================================

const (
	LogMsgUsingPostgres       = "Using PostgreSQL storage"
	LogMsgUsingMemory         = "Using in-memory storage"
	LogMsgMigrationsSkipped   = "AUTO_MIGRATE disabled, skipping migrations"
	ErrMsgFailedConnectDB     = "failed to connect to database"
	ErrMsgFailedRunMigrations = "failed to run migrations"
)

// =============================================================================
// Rate Limiting
// =============================================================================

const (
	LogMsgRateLimitDisabled  = "Rate limiting disabled"
	LogMsgRateLimitEnabled   = "Rate limiting enabled"
	ErrMsgFailedRateLimiter  = "failed to create rate limiter"
	ErrMsgFailedConnectRedis = "failed to connect to redis"
	LogMsgRedisCloseFailed   = "Failed to close redis client"
)

// =============================================================================
// Config Sync Messages
// =============================================================================

const (
	LogMsgSyncingItems   = "Syncing items from JSON config..."
	LogMsgItemsSynced    = "Items synced successfully"
	LogMsgItemsUnchanged = "Items config unchanged, sync skipped"

	ErrMsgFailedLoadItems = "failed to load items config"
	ErrMsgInvalidItems    = "invalid items config"
	ErrMsgFailedSyncItems = "failed to sync items to database"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer    = "Shutting down server..."
	LogMsgServerStopped         = "Server stopped"
	LogMsgServerForcedShutdown  = "Server forced to shutdown"
	LogMsgGameShutdownFailed    = "Game service shutdown failed"
	LogMsgTracingShutdownFailed = "Tracing shutdown failed"
)
