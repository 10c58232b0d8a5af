package main

import (
	"context"
	"log"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/interview-service/internal/api/http"
	"github.com/spec-kit/interview-service/internal/api/http/handlers"
	"github.com/spec-kit/interview-service/internal/auth"
	"github.com/spec-kit/interview-service/internal/config"
	"github.com/spec-kit/interview-service/internal/events"
	"github.com/spec-kit/interview-service/internal/observability"
	"github.com/spec-kit/interview-service/internal/persistence"
	"github.com/spec-kit/interview-service/internal/repository"
	"github.com/spec-kit/interview-service/internal/service"
	"github.com/spec-kit/interview-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	go serveMetrics(cfg.Metrics.Addr, logger)

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	interviewRepo := repository.NewInterviewRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	userService := service.NewUserService(userRepo)
	interviewService := service.NewInterviewService(service.InterviewDependencies{
		InterviewRepo: interviewRepo,
		UserRepo:      userRepo,
		Dispatcher:    dispatcher,
		Metrics:       metrics,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification, redis.Client, metrics)
	worker.StartNotificationWorker(notificationService)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret)
	authMiddleware := auth.NewAuthMiddleware(tokenManager)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Interviews:     handlers.NewInterviewsHandler(interviewService),
		Users:          handlers.NewUsersHandler(userService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func serveMetrics(addr string, logger *zap.Logger) {
	mux := nethttp.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	logger.Info("metrics listener started", zap.String("addr", addr))
	if err := nethttp.ListenAndServe(addr, mux); err != nil {
		logger.Warn("metrics listener stopped", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
