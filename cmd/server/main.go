// Command server runs the Pigskit shop HTTP API.
//
//	@title			Pigskit API
//	@version		1.0
//	@description	Shop, cart and account endpoints of the Pigskit backend. Sessions are carried by the USSID, GSSID and REGSSID cookies.
//	@BasePath		/
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/pigskit/pigskit-server/internal/assets"
	"github.com/pigskit/pigskit-server/internal/config"
	httpapi "github.com/pigskit/pigskit-server/internal/http"
	"github.com/pigskit/pigskit-server/internal/observability"
	"github.com/pigskit/pigskit-server/internal/repo"
	"github.com/pigskit/pigskit-server/internal/sysutil"
)

const purgeEvery = 15 * time.Minute

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	version := sysutil.Version("dev")
	sysutil.SetLogLevel(cfg.LogLevel)
	log.Logger = sysutil.NewLogger(os.Stdout, cfg.LogPretty, cfg.OTEL.ServiceName, version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, version); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server exited")
}

func run(ctx context.Context, cfg config.Config, version string) error {
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("tracer flush failed")
		}
	}()

	db, err := repo.OpenPostgres(ctx, cfg.DB.URL, repo.PoolOptions{
		MaxOpenConns:    cfg.DB.PoolSize,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
		RetryAttempts:   cfg.DB.RetryAttempts,
		RetryInterval:   cfg.DB.RetryInterval,
		Tracing:         cfg.OTEL.Enabled,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := repo.Close(db); err != nil {
			log.Warn().Err(err).Msg("closing database pool failed")
		}
	}()
	if cfg.DB.AutoMigrate {
		if err := repo.AutoMigrate(db); err != nil {
			return err
		}
	}

	store, err := newStore(cfg.Storage)
	if err != nil {
		return err
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, httpapi.NewHandlers(db, store, cfg), cfg, func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})

	srv := newHTTPServer(cfg, r)
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}

	go purgeIdempotency(ctx, db, purgeEvery)

	log.Info().Str("addr", srv.Addr).Str("version", version).Msg("listening")
	return serve(ctx, srv, ln, cfg.ShutdownTimeout)
}

// newHTTPServer leaves BaseContext unset: request contexts must outlive the
// signal context so Shutdown can drain in-flight requests.
func newHTTPServer(cfg config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           h,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}
}

// serve runs srv on ln until ctx ends, then shuts down gracefully within
// grace.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, grace time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	return srv.Shutdown(sctx)
}

func newStore(cfg config.StorageConfig) (assets.Store, error) {
	if cfg.Backend == "s3" {
		return assets.NewS3(assets.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PathStyle: cfg.S3UsePathStyle,
		})
	}
	return assets.NewLocal(cfg.Root)
}

// purgeIdempotency drops expired order keys until ctx ends.
func purgeIdempotency(ctx context.Context, db *gorm.DB, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := repo.PurgeIdempotency(ctx, db, now)
			if err != nil {
				log.Warn().Err(err).Msg("idempotency purge failed")
				continue
			}
			if n > 0 {
				log.Debug().Int64("rows", n).Msg("expired idempotency keys purged")
			}
		}
	}
}
