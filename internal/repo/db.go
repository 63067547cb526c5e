// Package repo implements the data persistence layer, backed by GORM on
// PostgreSQL. Shop, product, cart and order logic lives in stored
// procedures; functions here issue exactly one procedure call or statement
// with already-validated, typed parameters.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions (db.Transaction) or on the pool.
//
// Error semantics:
//   - A missing row is reported as ErrNotFound.
//   - Backend errors (including the procedures' own error codes) are
//     propagated unchanged for translation at the HTTP edge.
//
// This file contains connection bootstrapping and schema helpers.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/pigskit/pigskit-server/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// PoolOptions tunes the connection pool and the startup retry loop.
type PoolOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	RetryAttempts   int
	RetryInterval   time.Duration
	Tracing         bool
}

// OpenPostgres connects to PostgreSQL and verifies the connection with a
// ping. Attempt n waits n*RetryInterval before the next one, so several
// services restarting together do not hammer the database.
func OpenPostgres(ctx context.Context, dsn string, opts PoolOptions) (*gorm.DB, error) {
	attempts := opts.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		db, err := openOnce(ctx, dsn, opts)
		if err == nil {
			return db, nil
		}
		lastErr = err
		log.Warn().Err(err).Int("attempt", i+1).Int("of", attempts).Msg("database not ready")

		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(i+1) * opts.RetryInterval):
		}
	}
	return nil, fmt.Errorf("open postgres: %w", lastErr)
}

func openOnce(ctx context.Context, dsn string, opts PoolOptions) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		if db != nil {
			_ = Close(db)
		}
		return nil, err
	}
	if opts.Tracing {
		// Query arguments carry credentials (signin_user).
		if err := db.Use(tracing.NewPlugin(tracing.WithoutQueryVariables())); err != nil {
			return nil, err
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Close releases the pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AutoMigrate creates the tables queried directly by this package. The
// production schema (procedures included) is managed outside the server;
// this is for local databases and tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.RegisterSession{},
		&domain.User{},
		&domain.Idempotency{},
	)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, errNoRows) {
		return ErrNotFound
	}
	return err
}
