package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/placement-portal/experience-service/internal/api/http"
	"github.com/placement-portal/experience-service/internal/api/http/handlers"
	"github.com/placement-portal/experience-service/internal/auth"
	"github.com/placement-portal/experience-service/internal/config"
	"github.com/placement-portal/experience-service/internal/events"
	"github.com/placement-portal/experience-service/internal/observability"
	"github.com/placement-portal/experience-service/internal/persistence"
	"github.com/placement-portal/experience-service/internal/repository"
	"github.com/placement-portal/experience-service/internal/service"
	"github.com/placement-portal/experience-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.IsDevelopment())
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore := openStore(ctx, cfg, logger)
	defer closeStore()

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	dependencies := map[string]repository.Pinger{cfg.Store.Driver: store.Health}
	var forwarder service.EventForwarder
	if redis.Enabled() {
		dependencies["redis"] = redis
		forwarder = events.NewRedisPublisher(redis.Client, redis.Channel)
	}

	dispatcher := events.NewInMemoryDispatcher()
	notifications := service.NewNotificationService(forwarder, logger, cfg.Notification)
	worker.StartNotificationWorker(dispatcher, notifications, logger)

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo: store.Users,
		Logger:   logger,
	})
	experienceService := service.NewExperienceService(service.ExperienceDependencies{
		ExperienceRepo: store.Experiences,
		Dispatcher:     dispatcher,
		Logger:         logger,
	})
	discussionService := service.NewDiscussionService(service.DiscussionDependencies{
		DiscussionRepo: store.Discussions,
		UserRepo:       store.Users,
		Dispatcher:     dispatcher,
		Logger:         logger,
	})
	userService := service.NewUserService(store.Users, experienceService)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), store.Users)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, httptransport.MiddlewareConfig{
		Timeout:     cfg.App.RequestTimeout(),
		CORSOrigins: cfg.App.CORSOrigins,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, dependencies, metrics),
		Users:          handlers.NewUsersHandler(authService, userService),
		Experiences:    handlers.NewExperiencesHandler(experienceService, logger),
		Discussions:    handlers.NewDiscussionsHandler(discussionService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("store", cfg.Store.Driver))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.ShutdownWithTimeout(10 * time.Second)
}

// openStore connects the backend named by STORE_DRIVER and prepares its schema.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*repository.Store, func()) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		return repository.NewPostgresStore(pg.PoolHandle()), pg.Close

	case config.StoreDriverMongo:
		mg, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
		if err != nil {
			logger.Fatal("failed to connect mongo", zap.Error(err))
		}
		if err := repository.EnsureMongoIndexes(ctx, mg.DB); err != nil {
			logger.Fatal("failed to create mongo indexes", zap.Error(err))
		}
		return repository.NewMongoStore(mg.DB), func() { mg.Close(context.Background()) }

	default:
		logger.Warn("using in-memory store; data is lost on restart")
		return repository.NewMemoryStore(), func() {}
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
