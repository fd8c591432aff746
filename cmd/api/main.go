package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/homestay/rental-service/internal/api/http"
	"github.com/homestay/rental-service/internal/api/http/handlers"
	"github.com/homestay/rental-service/internal/auth"
	"github.com/homestay/rental-service/internal/config"
	"github.com/homestay/rental-service/internal/events"
	"github.com/homestay/rental-service/internal/observability"
	"github.com/homestay/rental-service/internal/persistence"
	"github.com/homestay/rental-service/internal/repository"
	"github.com/homestay/rental-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Env)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	deps := map[string]handlers.Pinger{}
	var attempts httptransport.AttemptCounter
	if redis.Enabled() {
		deps["redis"] = redis
		attempts = redis
	}
	var store repository.CredentialStore
	if pg.Enabled() {
		store = repository.NewPostgresStore(pg.PoolHandle())
		deps["postgres"] = pg
	} else {
		logger.Warn("using in-memory credential store; accounts are lost on restart")
		store = repository.NewMemoryStore()
	}

	dispatcher := events.NewInMemoryDispatcher()
	service.NewNotificationService(dispatcher, logger, cfg.Notification).RegisterHandlers()

	authService := service.NewAuthService(service.AuthDependencies{
		Users:      repository.NewUserRepository(store, cfg.Auth.BcryptCost),
		Tokens:     auth.NewTokenIssuer(cfg.Auth.JWTSecret),
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:       handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, deps, metrics),
		Auth:         handlers.NewAuthHandler(authService),
		LoginLimiter: httptransport.LoginRateLimiter(attempts, cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow(), logger),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
