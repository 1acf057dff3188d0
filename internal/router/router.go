// AngelaMos | 2026
// router.go

// Package router composes the middleware pipeline and mounts every route.
package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"

	"github.com/carterperez-dev/templates/bookshelf/internal/admin"
	"github.com/carterperez-dev/templates/bookshelf/internal/auth"
	"github.com/carterperez-dev/templates/bookshelf/internal/book"
	"github.com/carterperez-dev/templates/bookshelf/internal/config"
	"github.com/carterperez-dev/templates/bookshelf/internal/core"
	"github.com/carterperez-dev/templates/bookshelf/internal/health"
	"github.com/carterperez-dev/templates/bookshelf/internal/middleware"
	"github.com/carterperez-dev/templates/bookshelf/internal/user"
)

const tracerName = "github.com/carterperez-dev/templates/bookshelf/http"

// Deps holds everything the routes need. Redis, RequestLog, Health and
// Admin may be nil.
type Deps struct {
	Config     *config.Config
	Logger     *slog.Logger
	Redis      *redis.Client
	RequestLog *middleware.RequestLog
	Tokens     middleware.TokenVerifier
	Identities middleware.IdentityLoader

	Auth   *auth.Handler
	Books  *book.Handler
	Health *health.Handler
	Admin  *admin.Handler
}

// Register installs the global middleware on r and mounts all routes.
func Register(r chi.Router, d Deps) {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := d.Config

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	if d.RequestLog != nil {
		r.Use(d.RequestLog.Handler)
	}
	r.Use(middleware.Tracing(otel.Tracer(tracerName)))
	if cfg.RateLimit.Requests > 0 {
		r.Use(middleware.NewRateLimiter(d.Redis, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			Prefix:   "ratelimit:global",
			FailOpen: cfg.RateLimit.FailOpen,
		}).Handler)
	}
	r.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	r.Use(middleware.CORS(cfg.CORS))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		core.Message(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		core.Message(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	if d.Health != nil {
		d.Health.RegisterRoutes(r)
	}

	var authLimiter func(http.Handler) http.Handler
	if cfg.RateLimit.AuthRequests > 0 {
		authLimiter = middleware.NewRateLimiter(d.Redis, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.AuthRequests,
				cfg.RateLimit.AuthBurst,
			),
			Prefix:   "ratelimit:auth",
			FailOpen: cfg.RateLimit.FailOpen,
		}).Handler
	}

	authenticator := middleware.Authenticator(d.Tokens, d.Identities)

	d.Auth.RegisterRoutes(r, authLimiter)
	d.Books.RegisterRoutes(r, authenticator)

	if d.Admin != nil {
		d.Admin.RegisterRoutes(r, authenticator, middleware.RequireRole(user.RoleAdmin))
	}
}
