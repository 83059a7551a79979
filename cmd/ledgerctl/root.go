package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/travel-ledger/internal/config"
	"github.com/travel-ledger/internal/domain/repository"
	"github.com/travel-ledger/internal/pkg/logger"
	"github.com/travel-ledger/internal/repository/cache"
	"github.com/travel-ledger/internal/repository/postgres"
	redisRepo "github.com/travel-ledger/internal/repository/redis"
)

// rootCmd - утилита обслуживания журнала
var rootCmd = &cobra.Command{
	Use:   "ledgerctl",
	Short: "Maintenance tool for the travel ledger.",
	Long:  "ledgerctl runs one-off maintenance passes and reports against the travel ledger store.",
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
}

// Execute запускает корневую команду
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("env-file", ".env", "Path to the .env file")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "", "Override LOG_LEVEL (debug, info, warn, error)")
}

// deps - подключения, общие для команд
type deps struct {
	cfg        *config.Config
	log        *zap.Logger
	db         *postgres.DB
	redis      *cache.Redis
	stampRepo  repository.StampRepository
	cacheRepo  repository.CacheRepository
	streamRepo repository.StreamRepository
}

// openDeps подключается к PostgreSQL и, если получится, к Redis.
// Без Redis команды работают, но кеш и события не обновляются.
func openDeps(ctx context.Context, cmd *cobra.Command) (*deps, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.LoadFrom(envFile)
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if override, _ := cmd.Flags().GetString("loglevel"); override != "" {
		level = override
	}
	log, err := logger.New(level, "ledgerctl")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	if err := db.Health(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("PostgreSQL health check failed: %w", err)
	}

	d := &deps{
		cfg:       cfg,
		log:       log,
		db:        db,
		stampRepo: postgres.NewStampRepository(db),
	}

	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Warn("Redis unavailable, cache and events are skipped", zap.Error(err))
		return d, nil
	}
	d.redis = redisClient
	d.cacheRepo = cache.NewCacheRepository(redisClient)
	d.streamRepo = redisRepo.NewStreamRepository(redisClient.Client(), log, cfg.Worker.StreamReadTimeout, cfg.Worker.ClaimMinIdle)

	return d, nil
}

func (d *deps) Close() {
	if d.redis != nil {
		if err := d.redis.Close(); err != nil {
			d.log.Error("Failed to close Redis", zap.Error(err))
		}
	}
	if err := d.db.Close(); err != nil {
		d.log.Error("Failed to close PostgreSQL", zap.Error(err))
	}
	_ = d.log.Sync()
}
