// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes server timeouts,
// logging, database access, session cookies, body limits, asset storage,
// rate limiting, and observability.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool          `env:"ENABLE_HSTS" envDefault:"false"`
	HSTSMaxAge time.Duration `env:"HSTS_MAX_AGE" envDefault:"4320h"`
	// AssetCacheMaxAge lets browsers keep /fs images privately this long.
	AssetCacheMaxAge time.Duration `env:"ASSET_CACHE_MAX_AGE" envDefault:"5m"`
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    `env:"OTEL_ENABLED" envDefault:"false"`
	Endpoint    string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4317"`
	Insecure    bool    `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"true"`
	ServiceName string  `env:"OTEL_SERVICE_NAME" envDefault:"pigskit-server"`
	SampleRatio float64 `env:"OTEL_TRACES_SAMPLER_ARG" envDefault:"1.0"`
}

// DBConfig defines the PostgreSQL connection pool.
type DBConfig struct {
	URL             string        `env:"DATABASE_URL" envDefault:"host=postgres-server user=postgres dbname=postgres"`
	PoolSize        int           `env:"DB_POOL_SIZE" envDefault:"16"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"4"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	RetryAttempts   int           `env:"DB_RETRY_ATTEMPTS" envDefault:"5"`
	RetryInterval   time.Duration `env:"DB_RETRY_INTERVAL" envDefault:"2s"`
	AutoMigrate     bool          `env:"DB_AUTO_MIGRATE" envDefault:"false"`
}

// SessionConfig defines cookie lifetimes per session kind. A zero max age
// produces a browser-session cookie.
type SessionConfig struct {
	UserMaxAge         time.Duration `env:"USER_SESSION_MAX_AGE" envDefault:"0s"`
	CartMaxAge         time.Duration `env:"CART_SESSION_MAX_AGE" envDefault:"168h"`
	RegistrationMaxAge time.Duration `env:"REGISTER_SESSION_MAX_AGE" envDefault:"1h"`
	CookieSecure       bool          `env:"COOKIE_SECURE" envDefault:"false"`
}

// LimitsConfig defines request body caps in bytes.
type LimitsConfig struct {
	MaxBodyBytes   int64 `env:"MAX_BODY_BYTES" envDefault:"4194304"`
	MaxFormBytes   int64 `env:"MAX_FORM_BYTES" envDefault:"2000000"`
	MaxAvatarBytes int64 `env:"MAX_AVATAR_BYTES" envDefault:"512000"`
}

// StorageConfig selects and configures the binary asset backend.
type StorageConfig struct {
	Backend string `env:"STORAGE_BACKEND" envDefault:"local"` // local|s3
	Root    string `env:"STORAGE_ROOT" envDefault:"storage"`

	S3Bucket       string `env:"S3_BUCKET"`
	S3Region       string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Endpoint     string `env:"S3_ENDPOINT"`
	S3AccessKey    string `env:"S3_ACCESS_KEY"`
	S3SecretKey    string `env:"S3_SECRET_KEY"`
	S3UsePathStyle bool   `env:"S3_USE_PATH_STYLE" envDefault:"false"`
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        `env:"PORT" envDefault:"80"`
	ReadTimeout       time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"10s"`
	WriteTimeout      time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout       time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	MaxHeaderBytes    int           `env:"MAX_HEADER_BYTES" envDefault:"1048576"`
	GinMode           string        `env:"GIN_MODE" envDefault:"release"`

	// Development: permissive CORS for a single front-end origin.
	DevMode   bool   `env:"DEV_MODE" envDefault:"false"`
	DevOrigin string `env:"DEV_ORIGIN" envDefault:"http://localhost:3000"`

	// Logging / Docs
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty      bool   `env:"LOG_PRETTY" envDefault:"false"`
	SwaggerEnabled bool   `env:"SWAGGER_ENABLED" envDefault:"false"`

	// Rate limiting
	RateRPS   float64 `env:"RATE_RPS" envDefault:"20"`
	RateBurst int     `env:"RATE_BURST" envDefault:"40"`

	// Order submissions replayed with the same Idempotency-Key within this
	// window are answered without placing a second order.
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`

	DB       DBConfig
	Session  SessionConfig
	Limits   LimitsConfig
	Storage  StorageConfig
	CORS     CORSConfig
	Security SecurityConfig
	OTEL     OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}

	// --- normalization ---
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	cfg.GinMode = strings.ToLower(strings.TrimSpace(cfg.GinMode))
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	cfg.CORS.AllowedOrigins = trimAll(cfg.CORS.AllowedOrigins)

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.ShutdownTimeout <= 0 {
		return cfg, errors.New("SHUTDOWN_TIMEOUT must be > 0")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if strings.TrimSpace(cfg.DB.URL) == "" {
		return cfg, errors.New("DATABASE_URL must not be empty")
	}
	if cfg.DB.PoolSize < 1 {
		return cfg, errors.New("DB_POOL_SIZE must be >= 1")
	}
	if cfg.DB.RetryAttempts < 1 {
		return cfg, errors.New("DB_RETRY_ATTEMPTS must be >= 1")
	}
	if cfg.Session.UserMaxAge < 0 || cfg.Session.CartMaxAge < 0 || cfg.Session.RegistrationMaxAge < 0 {
		return cfg, errors.New("session max ages must be >= 0")
	}
	if cfg.Limits.MaxFormBytes <= 0 || cfg.Limits.MaxAvatarBytes <= 0 {
		return cfg, errors.New("form limits must be > 0")
	}
	if cfg.Limits.MaxBodyBytes < cfg.Limits.MaxFormBytes {
		return cfg, errors.New("MAX_BODY_BYTES must be >= MAX_FORM_BYTES")
	}
	switch cfg.Storage.Backend {
	case "local":
		if strings.TrimSpace(cfg.Storage.Root) == "" {
			return cfg, errors.New("STORAGE_ROOT must not be empty")
		}
	case "s3":
		if strings.TrimSpace(cfg.Storage.S3Bucket) == "" {
			return cfg, errors.New("S3_BUCKET must not be empty when STORAGE_BACKEND=s3")
		}
	default:
		return cfg, errors.New("STORAGE_BACKEND must be one of: local, s3")
	}
	if cfg.DevMode && strings.TrimSpace(cfg.DevOrigin) == "" {
		return cfg, errors.New("DEV_ORIGIN must not be empty when DEV_MODE is set")
	}
	if cfg.RateRPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.IdempotencyTTL <= 0 {
		return cfg, errors.New("IDEMPOTENCY_TTL must be > 0")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

func trimAll(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, p := range in {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
