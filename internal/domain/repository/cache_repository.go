package repository

import (
	"context"
	"time"

	"github.com/travel-ledger/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// GetSummary получает сводку журнала; nil без ошибки при промахе
	GetSummary(ctx context.Context) (*domain.LedgerSummary, error)

	// SetSummary сохраняет сводку журнала
	SetSummary(ctx context.Context, summary *domain.LedgerSummary, ttl time.Duration) error

	// InvalidateLedger удаляет все производные представления журнала
	InvalidateLedger(ctx context.Context) error
}
