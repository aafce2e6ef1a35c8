package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int    `env:"PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`
	LogDir      string `env:"LOG_DIR" envDefault:"logs"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"cloverpit"`
	Version     string `env:"VERSION" envDefault:"dev"`

	// API key for authentication. Empty disables the check outside production.
	APIKey         string   `env:"API_KEY"`
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	StorageBackend    string        `env:"STORAGE_BACKEND" envDefault:"postgres"`
	DBUser            string        `env:"DB_USER" envDefault:"postgres"`
	DBPassword        string        `env:"DB_PASSWORD" envDefault:"postgres"`
	DBHost            string        `env:"DB_HOST" envDefault:"localhost"`
	DBPort            string        `env:"DB_PORT" envDefault:"5432"`
	DBName            string        `env:"DB_NAME" envDefault:"cloverpit"`
	DBMaxConns        int           `env:"DB_MAX_CONNS" envDefault:"20"`
	DBMaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"5m"`
	DBMaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"30m"`
	AutoMigrate       bool          `env:"AUTO_MIGRATE" envDefault:"true"`

	ItemsConfigPath string `env:"ITEMS_CONFIG_PATH" envDefault:"configs/items/items.json"`

	RateLimitEnabled     bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitMaxRequests int           `env:"RATE_LIMIT_MAX_REQUESTS" envDefault:"100"`
	RateLimitWindow      time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"60s"`
	RateLimitBackend     string        `env:"RATE_LIMIT_BACKEND" envDefault:"memory"`
	RedisAddr            string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword        string        `env:"REDIS_PASSWORD"`
	RedisDB              int           `env:"REDIS_DB" envDefault:"0"`

	LockSweepInterval time.Duration `env:"LOCK_SWEEP_INTERVAL" envDefault:"1m"`

	OTELEnabled  bool   `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint string `env:"OTEL_ENDPOINT"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf(ErrMsgParseEnvFailed, err)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.StorageBackend = strings.ToLower(cfg.StorageBackend)
	cfg.RateLimitBackend = strings.ToLower(cfg.RateLimitBackend)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field constraints that env tags cannot express
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf(ErrMsgInvalidPort, c.Port)
	}

	switch c.StorageBackend {
	case StorageBackendPostgres, StorageBackendMemory:
	default:
		return fmt.Errorf(ErrMsgUnknownStorageBackend, c.StorageBackend)
	}

	switch c.RateLimitBackend {
	case RateLimitBackendMemory, RateLimitBackendRedis:
	default:
		return fmt.Errorf(ErrMsgUnknownRateLimitBackend, c.RateLimitBackend)
	}

	if c.RateLimitEnabled && (c.RateLimitMaxRequests <= 0 || c.RateLimitWindow <= 0) {
		return fmt.Errorf(ErrMsgRateLimitNotPositive)
	}

	if c.LockSweepInterval < 0 {
		return fmt.Errorf(ErrMsgNegativeLockSweepInterval)
	}

	if c.IsProduction() && c.APIKey == "" {
		return fmt.Errorf(ErrMsgAPIKeyRequiredInProd)
	}

	if c.OTELEnabled && c.OTELEndpoint == "" {
		return fmt.Errorf(ErrMsgOTELEndpointRequired)
	}

	return nil
}

// IsProduction reports whether the environment is production
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Environment)
	return env == EnvironmentProduction || env == EnvironmentProd
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// Warnings returns non-fatal issues such as example secrets left in place
func (c *Config) Warnings() []string {
	var warnings []string

	if c.DBPassword == ExampleDBPassword {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}

	if c.APIKey == ExampleAPIKey {
		warnings = append(warnings, "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}

	if c.APIKey == "" {
		warnings = append(warnings, "API_KEY is empty - API authentication is disabled")
	}

	if c.StorageBackend == StorageBackendMemory {
		warnings = append(warnings, "STORAGE_BACKEND=memory - game state is lost on restart")
	}

	return warnings
}
