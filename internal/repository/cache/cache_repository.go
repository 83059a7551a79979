package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/travel-ledger/internal/domain"
	"github.com/travel-ledger/internal/domain/repository"
)

// Ключи производных представлений журнала
const (
	KeyLedgerSummary = "ledger:summary"
)

var ledgerKeys = []string{KeyLedgerSummary}

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

// GetSummary получает сводку журнала из кеша
func (r *cacheRepository) GetSummary(ctx context.Context) (*domain.LedgerSummary, error) {
	data, err := r.Get(ctx, KeyLedgerSummary)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var summary domain.LedgerSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		r.logger.Error("Failed to unmarshal ledger summary from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal ledger summary: %w", err)
	}

	return &summary, nil
}

// SetSummary сохраняет сводку журнала в кеше
func (r *cacheRepository) SetSummary(ctx context.Context, summary *domain.LedgerSummary, ttl time.Duration) error {
	data, err := json.Marshal(summary)
	if err != nil {
		r.logger.Error("Failed to marshal ledger summary", zap.Error(err))
		return fmt.Errorf("marshal ledger summary: %w", err)
	}

	return r.Set(ctx, KeyLedgerSummary, data, ttl)
}

// InvalidateLedger удаляет производные представления после записи штампа
func (r *cacheRepository) InvalidateLedger(ctx context.Context) error {
	if err := r.client.Del(ctx, ledgerKeys...).Err(); err != nil {
		r.logger.Error("Failed to invalidate ledger cache", zap.Error(err))
		return fmt.Errorf("cache invalidate error: %w", err)
	}

	r.logger.Debug("Ledger cache invalidated")
	return nil
}
