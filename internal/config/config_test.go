package config

import (
	"os"
	"reflect"
	"strings"
	"testing"
	"time"
)

// --- MustLoad ---

func TestMustLoad_PanicsOnInvalidConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose") // invalid -> Load() error
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustLoad should panic on invalid config")
		}
	}()
	_ = MustLoad()
}

func TestMustLoad_Success_NoPanic(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("MustLoad should not panic on valid defaults, got: %v", r)
		}
	}()
	cfg := MustLoad()
	if cfg.Port == "" {
		t.Fatalf("unexpected empty config from MustLoad")
	}
}

// --- Load defaults ---

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != "80" || cfg.GinMode != "release" || cfg.LogLevel != "info" {
		t.Fatalf("server defaults unexpected: %+v", cfg)
	}
	if cfg.DB.URL != "host=postgres-server user=postgres dbname=postgres" || cfg.DB.PoolSize != 16 {
		t.Fatalf("db defaults unexpected: %+v", cfg.DB)
	}
	if cfg.Session.UserMaxAge != 0 || cfg.Session.CartMaxAge != 7*24*time.Hour || cfg.Session.RegistrationMaxAge != time.Hour {
		t.Fatalf("session defaults unexpected: %+v", cfg.Session)
	}
	if cfg.Limits.MaxFormBytes != 2000000 || cfg.Limits.MaxAvatarBytes != 512000 {
		t.Fatalf("limit defaults unexpected: %+v", cfg.Limits)
	}
	if cfg.Storage.Backend != "local" || cfg.Storage.Root != "storage" {
		t.Fatalf("storage defaults unexpected: %+v", cfg.Storage)
	}
	if cfg.DevMode || cfg.DevOrigin != "http://localhost:3000" {
		t.Fatalf("dev defaults unexpected: %v %q", cfg.DevMode, cfg.DevOrigin)
	}
	if cfg.IdempotencyTTL != 24*time.Hour {
		t.Fatalf("idempotency ttl default unexpected: %v", cfg.IdempotencyTTL)
	}
	if cfg.CORS.AllowedOrigins != nil {
		t.Fatalf("expected no CORS origins by default, got %#v", cfg.CORS.AllowedOrigins)
	}
}

// --- Load success + normalization + parsing ---

func TestLoad_Success_Overrides(t *testing.T) {
	t.Setenv("PORT", "8088")
	t.Setenv("READ_TIMEOUT", "2s")
	t.Setenv("READ_HEADER_TIMEOUT", "1s")
	t.Setenv("WRITE_TIMEOUT", "3s")
	t.Setenv("IDLE_TIMEOUT", "4s")
	t.Setenv("MAX_HEADER_BYTES", "8192")
	t.Setenv("GIN_MODE", "weird") // normalizes to "release"

	t.Setenv("LOG_LEVEL", "WARNING") // normalizes to "warn"
	t.Setenv("LOG_PRETTY", "true")
	t.Setenv("SWAGGER_ENABLED", "1")

	t.Setenv("DEV_MODE", "true")
	t.Setenv("DEV_ORIGIN", "http://localhost:5173")

	t.Setenv("DATABASE_URL", "postgres://u@db/app")
	t.Setenv("DB_POOL_SIZE", "4")
	t.Setenv("DB_AUTO_MIGRATE", "true")

	t.Setenv("CART_SESSION_MAX_AGE", "24h")
	t.Setenv("COOKIE_SECURE", "true")

	t.Setenv("STORAGE_BACKEND", "S3")
	t.Setenv("S3_BUCKET", "assets")
	t.Setenv("S3_USE_PATH_STYLE", "true")

	t.Setenv("RATE_RPS", "2.5")
	t.Setenv("RATE_BURST", "3")

	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.com , , http://b ")
	t.Setenv("ENABLE_HSTS", "TRUE")
	t.Setenv("HSTS_MAX_AGE", "24h")

	t.Setenv("OTEL_ENABLED", "1")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel:4317")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "0")
	t.Setenv("OTEL_SERVICE_NAME", "svc")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.75")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != "8088" ||
		cfg.ReadTimeout != 2*time.Second ||
		cfg.ReadHeaderTimeout != 1*time.Second ||
		cfg.WriteTimeout != 3*time.Second ||
		cfg.IdleTimeout != 4*time.Second ||
		cfg.MaxHeaderBytes != 8192 ||
		cfg.GinMode != "release" {
		t.Fatalf("server fields unexpected: %+v", cfg)
	}
	if cfg.LogLevel != "warn" || !cfg.LogPretty || !cfg.SwaggerEnabled {
		t.Fatalf("logging/docs unexpected: %+v", cfg)
	}
	if !cfg.DevMode || cfg.DevOrigin != "http://localhost:5173" {
		t.Fatalf("dev fields unexpected: %+v", cfg)
	}
	if cfg.DB.URL != "postgres://u@db/app" || cfg.DB.PoolSize != 4 || !cfg.DB.AutoMigrate {
		t.Fatalf("db unexpected: %+v", cfg.DB)
	}
	if cfg.Session.CartMaxAge != 24*time.Hour || !cfg.Session.CookieSecure {
		t.Fatalf("session unexpected: %+v", cfg.Session)
	}
	if cfg.Storage.Backend != "s3" || cfg.Storage.S3Bucket != "assets" || !cfg.Storage.S3UsePathStyle {
		t.Fatalf("storage unexpected: %+v", cfg.Storage)
	}
	if cfg.RateRPS != 2.5 || cfg.RateBurst != 3 {
		t.Fatalf("rate limiting unexpected: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, []string{"https://a.com", "http://b"}) {
		t.Fatalf("cors origins unexpected: %#v", cfg.CORS.AllowedOrigins)
	}
	if !cfg.Security.EnableHSTS || cfg.Security.HSTSMaxAge != 24*time.Hour {
		t.Fatalf("security unexpected: %+v", cfg.Security)
	}
	if !cfg.OTEL.Enabled || cfg.OTEL.Endpoint != "otel:4317" || cfg.OTEL.Insecure || cfg.OTEL.ServiceName != "svc" || cfg.OTEL.SampleRatio != 0.75 {
		t.Fatalf("otel unexpected: %+v", cfg.OTEL)
	}
}

func TestLoad_ParseError(t *testing.T) {
	t.Setenv("RATE_BURST", "nope")
	if _, err := Load(); err == nil {
		t.Fatalf("expected parse error for RATE_BURST")
	}
}

// --- Load validations (each case triggers exactly one validation error) ---

func TestLoad_ValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"invalid LOG_LEVEL", map[string]string{"LOG_LEVEL": "verbose"}, "LOG_LEVEL"},
		{"empty PORT via spaces", map[string]string{"PORT": "   "}, "PORT must not be empty"},
		{"non-positive timeouts", map[string]string{"READ_TIMEOUT": "0s"}, "timeouts must be positive"},
		{"non-positive shutdown", map[string]string{"SHUTDOWN_TIMEOUT": "0s"}, "SHUTDOWN_TIMEOUT"},
		{"max header bytes <= 0", map[string]string{"MAX_HEADER_BYTES": "0"}, "MAX_HEADER_BYTES"},
		{"empty DATABASE_URL", map[string]string{"DATABASE_URL": "   "}, "DATABASE_URL"},
		{"pool size < 1", map[string]string{"DB_POOL_SIZE": "0"}, "DB_POOL_SIZE"},
		{"retry attempts < 1", map[string]string{"DB_RETRY_ATTEMPTS": "0"}, "DB_RETRY_ATTEMPTS"},
		{"negative session age", map[string]string{"CART_SESSION_MAX_AGE": "-1h"}, "session max ages"},
		{"zero form cap", map[string]string{"MAX_FORM_BYTES": "0"}, "form limits"},
		{"body cap below form cap", map[string]string{"MAX_BODY_BYTES": "1000"}, "MAX_BODY_BYTES"},
		{"unknown storage backend", map[string]string{"STORAGE_BACKEND": "ftp"}, "STORAGE_BACKEND"},
		{"empty storage root", map[string]string{"STORAGE_ROOT": "  "}, "STORAGE_ROOT"},
		{"s3 without bucket", map[string]string{"STORAGE_BACKEND": "s3"}, "S3_BUCKET"},
		{"dev without origin", map[string]string{"DEV_MODE": "true", "DEV_ORIGIN": " "}, "DEV_ORIGIN"},
		{"rate rps negative", map[string]string{"RATE_RPS": "-1"}, "RATE_RPS"},
		{"rate burst < 1", map[string]string{"RATE_BURST": "0"}, "RATE_BURST"},
		{"idempotency ttl zero", map[string]string{"IDEMPOTENCY_TTL": "0s"}, "IDEMPOTENCY_TTL"},
		{"hsts max age negative", map[string]string{"HSTS_MAX_AGE": "-1s"}, "HSTS_MAX_AGE"},
		{"otel sample ratio out of range", map[string]string{"OTEL_TRACES_SAMPLER_ARG": "1.5"}, "OTEL_TRACES_SAMPLER_ARG"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil || !containsErr(err, tc.want) {
				t.Fatalf("expected %s validation error, got: %v", tc.want, err)
			}
		})
	}
}

// --- helpers ---

func TestTrimAll(t *testing.T) {
	if out := trimAll(nil); out != nil {
		t.Fatalf("trimAll(nil) should return nil")
	}
	if out := trimAll([]string{" ", ""}); out != nil {
		t.Fatalf("trimAll of blanks should return nil, got %#v", out)
	}
	want := []string{"a", "b", "c"}
	if got := trimAll([]string{" a", " ", "b ", "  c  "}); !reflect.DeepEqual(got, want) {
		t.Fatalf("trimAll mismatch: got %#v want %#v", got, want)
	}
}

// Ensure tests don't pick up a PORT from the outer environment.
func TestMain(m *testing.M) {
	os.Unsetenv("PORT")
	os.Exit(m.Run())
}

// containsErr reports whether err's message contains the given substring.
func containsErr(err error, want string) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), want)
}
