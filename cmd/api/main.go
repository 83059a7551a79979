package main

// @title Travel Ledger API
// @version 1.0.0
// @description Журнал путешествий: штампы (место + город + страна + дата) и производные представления.
// @description
// @description Основные возможности:
// @description - CRUD штампов с нормализацией стран и определением координат
// @description - Подсказка города и страны по координатам
// @description - Карта городов, паспорт по странам, маршрут и уровень путешественника

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/travel-ledger/docs"
	"github.com/travel-ledger/internal/config"
	httpDelivery "github.com/travel-ledger/internal/delivery/http"
	"github.com/travel-ledger/internal/delivery/http/handler"
	"github.com/travel-ledger/internal/domain/repository"
	"github.com/travel-ledger/internal/infrastructure/geocoder"
	"github.com/travel-ledger/internal/pkg/logger"
	"github.com/travel-ledger/internal/repository/cache"
	"github.com/travel-ledger/internal/repository/postgres"
	redisRepo "github.com/travel-ledger/internal/repository/redis"
	"github.com/travel-ledger/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "ledger-api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Travel Ledger API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.Bool("geocoder_enabled", cfg.Geocoder.Enabled),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize Repositories
	stampRepo := postgres.NewStampRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log, cfg.Worker.StreamReadTimeout, cfg.Worker.ClaimMinIdle)

	var geocoderRepo repository.GeocoderRepository
	if cfg.Geocoder.Enabled {
		geocoderRepo = geocoder.NewClient(&cfg.Geocoder, log)
	}

	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	stampUC := usecase.NewStampUseCase(stampRepo, cacheRepo, streamRepo, geocoderRepo, log)
	ledgerUC := usecase.NewLedgerUseCase(stampRepo, cacheRepo, log, cfg.Cache.LedgerSummaryTTL)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	healthHandler := handler.NewHealthHandler(map[string]handler.HealthCheck{
		"postgres": db.Health,
		"redis":    redisClient.Health,
	}, log)
	stampHandler := handler.NewStampHandler(stampUC, log)
	geocodeHandler := handler.NewGeocodeHandler(stampUC, log)
	ledgerHandler := handler.NewLedgerHandler(ledgerUC, log)

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		healthHandler,
		stampHandler,
		geocodeHandler,
		ledgerHandler,
	)

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if err := db.Close(); err != nil {
		log.Error("Failed to close PostgreSQL", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
