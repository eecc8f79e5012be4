// @title        Wellness Dashboard API
// @version      1.0
// @description  Role-aware wellness dashboards: metric ingestion, stat cards and the role catalog.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/wellnest/wellness-api/internal/api"
	"github.com/wellnest/wellness-api/internal/api/handler"
	"github.com/wellnest/wellness-api/internal/core/service"
	"github.com/wellnest/wellness-api/internal/infrastructure/config"
	mongodb "github.com/wellnest/wellness-api/internal/infrastructure/db/mongo"
	redisdb "github.com/wellnest/wellness-api/internal/infrastructure/db/redis"
	"github.com/wellnest/wellness-api/internal/infrastructure/queue"
	"github.com/wellnest/wellness-api/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{Pretty: true})
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "wellness-api",
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() { _ = rdb.Close() }()

	// --- Repositories ---
	authRepo := mongodb.NewAuthRepository(db)
	metricRepo := mongodb.NewMetricRepository(db)
	if err := authRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}
	if err := metricRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create metric indexes")
	}

	// --- Services ---
	dashboardCache := redisdb.NewDashboardCache(rdb, cfg.Dashboard.CacheTTL)
	dedup := redisdb.NewDedupChecker(rdb, cfg.Redis.DedupTTL)

	authService := service.NewAuthService(authRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	metricService := service.NewMetricService(metricRepo, dedup, dashboardCache, log)
	dashboardService := service.NewDashboardService(metricRepo, dashboardCache, cfg.Dashboard.Days, log)

	workerCtx, stopWorkers := context.WithCancel(ctx)
	dispatcher := queue.NewDispatcher(cfg.Ingest.Workers, metricService, log)
	dispatcher.Start(workerCtx)

	e := api.NewRouter(api.Dependencies{
		AuthService:      authService,
		MetricService:    metricService,
		DashboardService: dashboardService,
		Dispatcher:       dispatcher,
		Readiness: map[string]handler.Pinger{
			"mongodb": mongodb.Pinger{Client: mongoClient},
			"redis":   redisdb.Pinger{Client: rdb},
		},
		JWTSecret: cfg.JWTSecret,
		Log:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting wellness api")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	waitForShutdown(log)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	stopWorkers()
	dispatcher.Wait()
	log.Info().Msg("shutdown complete")
}

func waitForShutdown(log zerolog.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	log.Info().Str("signal", sig.String()).Msg("shutting down")
}
