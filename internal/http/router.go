// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, idempotency, and rate limiting.
//
// Routing model: every path is registered once for all methods and its
// endpoints are tried as alternatives in written order. An alternative
// whose method or shape does not apply rejects softly and the next one is
// tried; the first alternative that gets past its method check owns the
// request, even when it then fails. Requests no alternative accepts fall
// through to the same 404 as unknown paths.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/pigskit/pigskit-server/internal/assets"
	"github.com/pigskit/pigskit-server/internal/config"
	_ "github.com/pigskit/pigskit-server/internal/docs" // registers the OpenAPI document
	"github.com/pigskit/pigskit-server/internal/http/filter"
	"github.com/pigskit/pigskit-server/internal/http/handlers"
	"github.com/pigskit/pigskit-server/internal/http/middleware"
	"github.com/pigskit/pigskit-server/internal/http/session"
	"github.com/pigskit/pigskit-server/internal/repo"
	"github.com/pigskit/pigskit-server/internal/services"
)

// NewHandlers builds the endpoint set over db and store.
//
// Dependency injection: services ← repo/db/assets, session lookups ← repo.
func NewHandlers(db *gorm.DB, store assets.Store, cfg config.Config) *handlers.Handlers {
	resolver := session.NewResolver(
		session.Lookups{
			User: func(ctx context.Context, token uuid.UUID) (uuid.UUID, error) {
				return repo.SessionUser(ctx, db, token)
			},
			Cart: func(ctx context.Context, token uuid.UUID) (uuid.UUID, error) {
				return repo.CartSession(ctx, db, token)
			},
			Registration: func(ctx context.Context, token uuid.UUID) (uuid.UUID, error) {
				return repo.RegisterSessionID(ctx, db, token)
			},
		},
		session.Options{
			UserMaxAge:         cfg.Session.UserMaxAge,
			CartMaxAge:         cfg.Session.CartMaxAge,
			RegistrationMaxAge: cfg.Session.RegistrationMaxAge,
			Secure:             cfg.Session.CookieSecure,
		},
	)

	return handlers.New(handlers.Deps{
		Accounts:       &services.AccountService{DB: db},
		Registration:   &services.RegistrationService{DB: db},
		Profiles:       &services.ProfileService{DB: db, Assets: store},
		Shops:          &services.ShopService{DB: db},
		Products:       &services.ProductService{DB: db, Assets: store},
		Carts:          &services.CartService{DB: db, IdempotencyTTL: cfg.IdempotencyTTL},
		Sessions:       resolver,
		MaxFormBytes:   cfg.Limits.MaxFormBytes,
		MaxAvatarBytes: cfg.Limits.MaxAvatarBytes,
	})
}

// RegisterRoutes attaches all middleware and endpoints to the given Gin
// engine. ready backs /health; nil reports healthy unconditionally.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Rate limiter (per IP)
//  8. Development CORS, when enabled
//  9. Dispatch: render the failure a route recorded
//
// gzip wraps /swagger only. It must not wrap routes whose failures Dispatch
// renders after the chain returns.
func RegisterRoutes(r *gin.Engine, h *handlers.Handlers, cfg config.Config, ready func(context.Context) error) {
	// Unknown trailing slashes are unknown paths, not redirects.
	r.RedirectTrailingSlash = false

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.Logger(middleware.NewRedactor(middleware.RedactOptions{
		MaskHeaders: []string{middleware.HeaderIdempotencyKey},
	})))

	// 4) Panic recovery to the internal error envelope
	r.Use(middleware.Recovery())

	// 5) Global body size limit; multipart forms apply their own tighter caps
	r.Use(limitBody(cfg.Limits.MaxBodyBytes))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP())
	r.Use(rl.Handler())

	// 8) Permissive CORS for a single front-end origin during development
	if cfg.DevMode {
		r.Use(middleware.DevCORS(cfg.DevOrigin))
	}

	// 9) Failure rendering and the shared 404
	r.Use(middleware.Dispatch())
	r.NoRoute(middleware.NotFound())

	// Liveness/health
	r.GET("/health", health(ready))

	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", gzip.Gzip(gzip.DefaultCompression), ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api", middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      true,
		EnablePolicy: true,
	}))
	{
		user := api.Group("/user")
		filter.Mount(user, "/session", filter.Or(h.SignIn(), h.CheckSession(), h.SignOut()))
		filter.Mount(user, "/session/success", h.SessionSuccess())
		filter.Mount(user, "/register", filter.Or(h.RegisterField(), h.RegisterStart(), h.RegisterStep()))
		filter.Mount(user, "/profile", h.UpdateProfile())
		filter.Mount(user, "/profile/avatar", h.ProfileAvatar())

		shop := api.Group("/shop")
		filter.Mount(shop.Group("", shopCORS(cfg)...), "", h.CreateShop())
		filter.Mount(shop, "/member", h.AddMember())
		filter.Mount(shop, "/member/authority", h.SetMemberAuthority())
		filter.Mount(shop, "/product", filter.Or(h.CreateProduct(), h.UpdateProduct(), h.DeleteProduct()))
		filter.Mount(shop, "/product/image", h.ProductImage())

		cart := api.Group("/cart")
		filter.Mount(cart, "/session", h.OpenCart())
		filter.Mount(cart, "/item", filter.Or(h.AddCartItem(), h.UpdateCartItem(), h.DeleteCartItem()))
		filter.Mount(cart.Group("", middleware.IdempotencyKey(middleware.IdempotencyOptions{MaxLen: 200})),
			"/order", h.PlaceOrder())
	}

	fs := r.Group("/fs", middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:  cfg.Security.EnableHSTS,
		HSTSMaxAge:  cfg.Security.HSTSMaxAge,
		CacheMaxAge: cfg.Security.AssetCacheMaxAge,
	}))
	{
		filter.Mount(fs, "/user/avatar", filter.Or(h.StoreAvatar(), h.Avatar(), h.DeleteAvatar()))
		filter.Mount(fs, "/shop/product/image",
			filter.Or(h.StoreProductImage(), h.FileProductImage(), h.DeleteProductImage()))
	}
}

// shopCORS restricts shop creation to the configured front-end origins.
// Development mode already answers every origin, and an empty allowlist
// declares no cross-origin access.
func shopCORS(cfg config.Config) []gin.HandlerFunc {
	if cfg.DevMode || len(cfg.CORS.AllowedOrigins) == 0 {
		return nil
	}
	return []gin.HandlerFunc{cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})}
}

// health reports liveness, and readiness of the database when ready is set.
func health(ready func(context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ready != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ready(ctx); err != nil {
				middleware.LoggerFrom(c).Warn().Err(err).Msg("health check failed")
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
