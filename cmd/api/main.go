// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carterperez-dev/templates/bookshelf/internal/admin"
	"github.com/carterperez-dev/templates/bookshelf/internal/auth"
	"github.com/carterperez-dev/templates/bookshelf/internal/book"
	"github.com/carterperez-dev/templates/bookshelf/internal/config"
	"github.com/carterperez-dev/templates/bookshelf/internal/core"
	"github.com/carterperez-dev/templates/bookshelf/internal/health"
	"github.com/carterperez-dev/templates/bookshelf/internal/middleware"
	"github.com/carterperez-dev/templates/bookshelf/internal/router"
	"github.com/carterperez-dev/templates/bookshelf/internal/server"
	"github.com/carterperez-dev/templates/bookshelf/internal/storage"
	"github.com/carterperez-dev/templates/bookshelf/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
		"cover_policy", cfg.Storage.CoverPolicy,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			return err
		}
		logger.Info("database migrations applied")
	}

	deps := []health.Dependency{{Name: "database", Checker: db}}

	var redis *core.Redis
	if cfg.Redis.URL != "" {
		redis, err = core.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		deps = append(deps, health.Dependency{Name: "redis", Checker: redis})
		logger.Info("redis connected",
			"pool_size", cfg.Redis.PoolSize,
		)
	} else {
		logger.Info("redis not configured, rate limiting is per-process")
	}

	var covers book.CoverUploader
	if cfg.UploadsCovers() {
		store, err := storage.New(ctx, cfg.Storage)
		if err != nil {
			return err
		}
		covers = storage.NewCoverUploader(store, cfg.Storage.Folder)
		deps = append(deps, health.Dependency{Name: "storage", Checker: store})
		logger.Info("cover storage ready",
			"provider", cfg.Storage.Provider,
			"bucket", cfg.Storage.Bucket,
		)
	}

	tokens, err := auth.NewTokenManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("token manager initialized",
		"algorithm", "HS256",
		"expire", cfg.JWT.Expire,
	)

	var requestLog *middleware.RequestLog
	if cfg.Log.RequestFile != "" {
		rl, logFile, err := middleware.OpenRequestLog(cfg.Log.RequestFile)
		if err != nil {
			return err
		}
		defer logFile.Close() //nolint:errcheck // closed at exit
		requestLog = rl
	}

	userSvc := user.NewService(user.NewRepository(db.DB))
	authSvc := auth.NewService(userSvc, tokens)
	bookSvc := book.NewService(book.NewRepository(db.DB), covers)

	healthHandler := health.NewHandler(deps...)

	adminCfg := admin.HandlerConfig{
		DBStats:   db.Stats,
		DBPing:    db.Ping,
		UserCount: userSvc.Count,
		BookCount: bookSvc.Count,
	}
	if redis != nil {
		adminCfg.RedisStats = redis.PoolStats
		adminCfg.RedisPing = redis.Ping
	}

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	routes := router.Deps{
		Config:     cfg,
		Logger:     logger,
		RequestLog: requestLog,
		Tokens:     tokens,
		Identities: userSvc,
		Auth:       auth.NewHandler(authSvc),
		Books:      book.NewHandler(bookSvc, cfg.Storage),
		Health:     healthHandler,
		Admin:      admin.NewHandler(adminCfg),
	}
	if redis != nil {
		routes.Redis = redis.Client
	}
	router.Register(srv.Router(), routes)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
