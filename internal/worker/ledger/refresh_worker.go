package ledger

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/travel-ledger/internal/domain"
	"github.com/travel-ledger/internal/domain/repository"
	"github.com/travel-ledger/internal/pkg/metrics"
	"github.com/travel-ledger/internal/worker"
)

const (
	workerName = "ledger-refresh"
	retryDelay = 500 * time.Millisecond
)

// Результаты обработки сообщений для метрик
const (
	resultProcessed = "processed"
	resultMalformed = "malformed"
	resultFailed    = "failed"
)

// Refresher пересчитывает сводку журнала
type Refresher interface {
	Refresh(ctx context.Context) (*domain.LedgerSummary, error)
}

// RefreshWorker пересчитывает сводку журнала после изменений штампов.
// Сообщения, пришедшие вместе, схлопываются в один пересчёт.
type RefreshWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	refresher    Refresher
	consumerName string
	batchSize    int64
	maxRetries   int
}

// NewRefreshWorker создает новый RefreshWorker
func NewRefreshWorker(
	streamRepo repository.StreamRepository,
	refresher Refresher,
	consumerGroup string,
	batchSize int,
	maxRetries int,
	logger *zap.Logger,
) *RefreshWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%s", hostname, uuid.NewString()[:8])

	if batchSize <= 0 {
		batchSize = 1
	}
	if maxRetries <= 0 {
		maxRetries = 1
	}

	return &RefreshWorker{
		BaseWorker:   worker.NewBaseWorker(workerName, consumerGroup, logger),
		streamRepo:   streamRepo,
		refresher:    refresher,
		consumerName: consumerName,
		batchSize:    int64(batchSize),
		maxRetries:   maxRetries,
	}
}

// Start запускает воркер
func (w *RefreshWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting RefreshWorker",
		zap.String("stream", domain.StreamStampsChanged),
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int64("batch_size", w.batchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamStampsChanged, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	runCtx, cancel := w.RunContext(ctx)
	defer cancel()

	messages, err := w.streamRepo.ConsumeStream(runCtx, domain.StreamStampsChanged, w.ConsumerGroup(), w.consumerName, w.batchSize)
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	for {
		select {
		case <-runCtx.Done():
			if ctx.Err() != nil {
				logger.Info("Context cancelled")
				return ctx.Err()
			}
			logger.Info("Worker stopped")
			return nil

		case msg, ok := <-messages:
			if !ok {
				logger.Info("Stream closed")
				return nil
			}
			w.processBatch(runCtx, w.collectBatch(msg, messages))
		}
	}
}

// collectBatch добирает уже доступные сообщения без ожидания
func (w *RefreshWorker) collectBatch(first domain.StreamMessage, messages <-chan domain.StreamMessage) []domain.StreamMessage {
	batch := []domain.StreamMessage{first}
	for int64(len(batch)) < w.batchSize {
		select {
		case msg, ok := <-messages:
			if !ok {
				return batch
			}
			batch = append(batch, msg)
		default:
			return batch
		}
	}
	return batch
}

func (w *RefreshWorker) processBatch(ctx context.Context, batch []domain.StreamMessage) {
	logger := w.Logger()

	valid := make([]string, 0, len(batch))
	for _, msg := range batch {
		var event domain.StampChangedEvent
		if err := json.Unmarshal([]byte(msg.Data), &event); err != nil || !event.IsValid() {
			logger.Warn("Skipping malformed message",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			w.ack(ctx, msg.ID)
			metrics.RecordStreamMessage(domain.StreamStampsChanged, resultMalformed)
			continue
		}
		valid = append(valid, msg.ID)
	}

	if len(valid) == 0 {
		return
	}

	summary, err := w.refreshWithRetry(ctx)
	if err != nil {
		// Без ACK сообщения остаются в pending; ConsumeStream заберёт их через XAUTOCLAIM после простоя
		logger.Error("Failed to refresh ledger",
			zap.Int("messages", len(valid)),
			zap.Error(err))
		for range valid {
			metrics.RecordStreamMessage(domain.StreamStampsChanged, resultFailed)
		}
		return
	}

	event := &domain.LedgerRefreshedEvent{
		TotalStamps: summary.TotalStamps,
		TotalKm:     summary.TotalKm,
		Rank:        summary.Rank.Current.Name,
		Triggers:    len(valid),
		RefreshedAt: time.Now().UTC(),
	}
	if err := w.streamRepo.PublishToStream(ctx, domain.StreamLedgerRefreshed, event); err != nil {
		logger.Error("Failed to publish refreshed event", zap.Error(err))
	}

	for _, id := range valid {
		w.ack(ctx, id)
		metrics.RecordStreamMessage(domain.StreamStampsChanged, resultProcessed)
	}

	logger.Info("Ledger refreshed",
		zap.Int("triggers", len(valid)),
		zap.Int("total_stamps", summary.TotalStamps),
		zap.Int("total_km", summary.TotalKm))
}

func (w *RefreshWorker) refreshWithRetry(ctx context.Context) (*domain.LedgerSummary, error) {
	var lastErr error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		summary, err := w.refresher.Refresh(ctx)
		if err == nil {
			return summary, nil
		}
		lastErr = err

		if attempt == w.maxRetries {
			break
		}
		w.Logger().Warn("Refresh attempt failed",
			zap.Int("attempt", attempt),
			zap.Error(err))

		select {
		case <-time.After(retryDelay * time.Duration(attempt)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("refresh failed after %d attempts: %w", w.maxRetries, lastErr)
}

func (w *RefreshWorker) ack(ctx context.Context, id string) {
	if err := w.streamRepo.AckMessage(ctx, domain.StreamStampsChanged, w.ConsumerGroup(), id); err != nil {
		w.Logger().Warn("Failed to ack message",
			zap.String("message_id", id),
			zap.Error(err))
	}
}
