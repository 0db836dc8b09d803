package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/osse101/NemoBot_Go/internal/database"
)

// Config holds the application configuration
type Config struct {
	EnvSchemaVersion string `envconfig:"ENV_SCHEMA_VERSION"`
	Environment      string `envconfig:"ENVIRONMENT" default:"dev"`
	ServiceName      string `envconfig:"SERVICE_NAME" default:"nemo-bot"`
	Version          string `envconfig:"VERSION" default:"dev"`

	// HTTP
	Port            int           `envconfig:"PORT" default:"8080"`
	APIKey          string        `envconfig:"API_KEY"`
	TrustedProxies  []string      `envconfig:"TRUSTED_PROXIES"`
	RateLimit       int           `envconfig:"RATE_LIMIT" default:"1000"`
	RateWindow      time.Duration `envconfig:"RATE_WINDOW" default:"5m"`
	MaxBodyBytes    int64         `envconfig:"MAX_BODY_BYTES" default:"1048576"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`

	// Logging
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	LogDir    string `envconfig:"LOG_DIR" default:"logs"`

	// Database
	DBDriver   string `envconfig:"DB_DRIVER" default:"sqlite"`
	DBPath     string `envconfig:"DB_PATH" default:"data/nemo.db"`
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"nemobot"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxConns int    `envconfig:"DB_MAX_CONNS" default:"10"`

	// Market
	EscrowUserID       int64         `envconfig:"MARKET_ESCROW_USER_ID" default:"0"`
	MaxConflictRetries int           `envconfig:"MARKET_MAX_CONFLICT_RETRIES" default:"3"`
	PlayerCacheSize    int           `envconfig:"PLAYER_CACHE_SIZE" default:"1000"`
	PlayerCacheTTL     time.Duration `envconfig:"PLAYER_CACHE_TTL" default:"5m"`

	// Events
	EventDeadLetterPath string `envconfig:"EVENT_DEADLETTER_PATH" default:"logs/event_deadletter.jsonl"`
}

// Load reads .env (when present) and the process environment, then validates
// the result.
func Load() (*Config, error) {
	// Missing .env is fine; real env vars may be set instead.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToProcessEnv, err)
	}
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.APIKey == "" {
		errs = append(errs, errors.New(ErrMsgAPIKeyRequired))
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, errors.New(ErrMsgInvalidPort))
	}

	switch c.DBDriver {
	case DriverSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			errs = append(errs, errors.New(ErrMsgSQLitePathRequired))
		}
	case DriverPostgres:
		if c.DBHost == "" || c.DBName == "" {
			errs = append(errs, errors.New(ErrMsgPostgresIncomplete))
		}
	default:
		errs = append(errs, fmt.Errorf("%s, got %q", ErrMsgUnknownDriver, c.DBDriver))
	}

	for name, v := range map[string]int64{
		"MARKET_ESCROW_USER_ID":       c.EscrowUserID,
		"MARKET_MAX_CONFLICT_RETRIES": int64(c.MaxConflictRetries),
		"PLAYER_CACHE_SIZE":           int64(c.PlayerCacheSize),
		"DB_MAX_CONNS":                int64(c.DBMaxConns),
	} {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s %s", name, ErrMsgNegativeSetting))
		}
	}

	return errors.Join(errs...)
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSSLMode}}.Encode(),
	}
	return u.String()
}

// DatabaseOptions maps the DB_* settings onto database.Options.
func (c *Config) DatabaseOptions() database.Options {
	opts := database.Options{
		Driver:       c.DBDriver,
		MaxOpenConns: c.DBMaxConns,
	}
	if c.DBDriver == DriverPostgres {
		opts.DSN = c.GetDBConnString()
	} else {
		opts.Path = c.DBPath
	}
	return opts
}
