// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	goredis "github.com/redis/go-redis/v9"

	"github.com/vayutech/vayu-backend/internal/admin"
	"github.com/vayutech/vayu-backend/internal/band"
	"github.com/vayutech/vayu-backend/internal/config"
	"github.com/vayutech/vayu-backend/internal/content"
	"github.com/vayutech/vayu-backend/internal/core"
	"github.com/vayutech/vayu-backend/internal/family"
	"github.com/vayutech/vayu-backend/internal/health"
	"github.com/vayutech/vayu-backend/internal/identity"
	"github.com/vayutech/vayu-backend/internal/middleware"
	"github.com/vayutech/vayu-backend/internal/notification"
	"github.com/vayutech/vayu-backend/internal/profile"
	"github.com/vayutech/vayu-backend/internal/report"
	"github.com/vayutech/vayu-backend/internal/server"
	"github.com/vayutech/vayu-backend/internal/store"
	"github.com/vayutech/vayu-backend/internal/subscription"
	"github.com/vayutech/vayu-backend/internal/support"
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

	var redisConn *core.Redis
	if cfg.Redis.URL != "" {
		redisConn, err = core.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		logger.Info("redis connected", "pool_size", cfg.Redis.PoolSize)
	}

	var dbConn *core.Database

	var (
		st        store.Store
		storePing func(ctx context.Context) error
	)
	switch cfg.Store.Backend {
	case "redis":
		if redisConn == nil {
			return fmt.Errorf("store backend redis requires redis.url")
		}
		st = store.NewRedisStore(redisConn.Client, cfg.Store.KeyPrefix)
		storePing = redisConn.Ping
	case "postgres":
		dbConn, err = core.NewDatabase(ctx, cfg.Database)
		if err != nil {
			return err
		}
		logger.Info("database connected",
			"max_open_conns", cfg.Database.MaxOpenConns,
			"max_idle_conns", cfg.Database.MaxIdleConns,
		)

		pg := store.NewPostgresStore(dbConn.DB)
		if err := pg.EnsureSchema(ctx); err != nil {
			return err
		}
		st = pg
		storePing = dbConn.Ping
	default:
		st = store.NewMemory()
		storePing = func(context.Context) error { return nil }
	}
	logger.Info("store initialized", "backend", cfg.Store.Backend)

	if _, statErr := os.Stat(cfg.JWT.PrivateKeyPath); errors.Is(statErr, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(cfg.JWT.PrivateKeyPath), 0o700); err != nil {
			return fmt.Errorf("create key directory: %w", err)
		}
		if err := identity.GenerateKeyPair(
			cfg.JWT.PrivateKeyPath,
			cfg.JWT.PublicKeyPath,
		); err != nil {
			return err
		}
		logger.Info("generated session key pair",
			"private_key", cfg.JWT.PrivateKeyPath,
		)
	}

	sessionManager, err := identity.NewSessionManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("session manager initialized",
		"algorithm", "ES256",
		"key_id", sessionManager.GetKeyID(),
	)

	identityRepo := identity.NewRepository(st)
	identitySvc := identity.NewService(identityRepo, sessionManager)
	identityHandler := identity.NewHandler(identitySvc)

	familySvc := family.NewService(family.NewRepository(st))
	familyHandler := family.NewHandler(familySvc)

	subscriptionSvc := subscription.NewService(
		subscription.NewRepository(st),
		familySvc,
	)
	subscriptionHandler := subscription.NewHandler(subscriptionSvc)

	bandSvc := band.NewService(band.NewRepository(st), familySvc, subscriptionSvc)
	bandHandler := band.NewHandler(bandSvc)
	familySvc.SetBandUnlinker(bandSvc)

	profileHandler := profile.NewHandler(profile.NewService(bandSvc, familySvc))

	reportHandler := report.NewHandler(report.NewService(
		identitySvc,
		familySvc,
		bandSvc,
		subscriptionSvc,
	))

	contentSvc := content.NewService(st)
	if err := contentSvc.EnsureDefaults(ctx); err != nil {
		return err
	}
	contentHandler := content.NewHandler(contentSvc)

	supportHandler := support.NewHandler(support.NewService(st, identitySvc))

	notificationHandler := notification.NewHandler(
		notification.NewService(st, identitySvc),
	)

	adminSvc := admin.NewService(
		st,
		familySvc,
		subscriptionSvc,
		bandSvc,
		sessionManager,
		logger,
	)
	if err := adminSvc.Seed(ctx, cfg.Admin); err != nil {
		return err
	}

	var (
		redisPing  func(ctx context.Context) error
		redisStats func() *goredis.PoolStats
		rlClient   *goredis.Client
	)
	if redisConn != nil {
		redisPing = redisConn.Ping
		redisStats = redisConn.PoolStats
		rlClient = redisConn.Client
	}

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		Service:    adminSvc,
		StorePing:  storePing,
		RedisPing:  redisPing,
		RedisStats: redisStats,
		Backend:    cfg.Store.Backend,
	})

	checks := []health.Check{{Name: cfg.Store.Backend, Ping: storePing}}
	if redisConn != nil && cfg.Store.Backend != "redis" {
		checks = append(checks, health.Check{
			Name: "redis",
			Ping: redisConn.Ping,
		})
	}
	healthHandler := health.NewHandler(checks...)

	srv := server.New(server.Config{
		ServerConfig: cfg.Server,
		Logger:       logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(rlClient, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", sessionManager.GetJWKSHandler())

	authenticator := middleware.Authenticator(sessionManager)
	adminOnly := middleware.RequireAdmin

	router.Route("/v1", func(r chi.Router) {
		identityHandler.RegisterRoutes(r, authenticator)
		familyHandler.RegisterRoutes(r, authenticator)
		subscriptionHandler.RegisterRoutes(r, authenticator)
		bandHandler.RegisterRoutes(r, authenticator)
		profileHandler.RegisterRoutes(r)
		contentHandler.RegisterRoutes(r, authenticator, adminOnly)
		supportHandler.RegisterRoutes(r, authenticator, adminOnly)
		notificationHandler.RegisterRoutes(r, authenticator, adminOnly)
		reportHandler.RegisterRoutes(r, authenticator, adminOnly)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

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

	healthHandler.SetShutdown(true)

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

	if redisConn != nil {
		if err := redisConn.Close(); err != nil {
			logger.Error("redis close error", "error", err)
		}
	}

	if dbConn != nil {
		if err := dbConn.Close(); err != nil {
			logger.Error("database close error", "error", err)
		}
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
