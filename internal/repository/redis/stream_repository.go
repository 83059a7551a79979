package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/travel-ledger/internal/domain"
	"github.com/travel-ledger/internal/domain/repository"
)

const (
	dataField          = "data"
	defaultBatchSize   = 10
	defaultReadBlock   = 1 * time.Second
	defaultClaimIdle   = 30 * time.Second
	claimCursorStart   = "0-0"
	readErrorBackoff   = 1 * time.Second
	busyGroupErrPrefix = "BUSYGROUP"
)

type streamRepository struct {
	client    *redis.Client
	logger    *zap.Logger
	readBlock time.Duration
	claimIdle time.Duration
}

// NewStreamRepository создает новый экземпляр StreamRepository.
// readBlock - сколько XREADGROUP ждёт новых сообщений, claimIdle - после какого простоя
// неподтверждённые сообщения группы забираются этим consumer'ом (0 - значения по умолчанию).
func NewStreamRepository(
	client *redis.Client,
	logger *zap.Logger,
	readBlock, claimIdle time.Duration,
) repository.StreamRepository {
	if readBlock <= 0 {
		readBlock = defaultReadBlock
	}
	if claimIdle <= 0 {
		claimIdle = defaultClaimIdle
	}
	return &streamRepository{
		client:    client,
		logger:    logger,
		readBlock: readBlock,
		claimIdle: claimIdle,
	}
}

// CreateConsumerGroup создаёт consumer group для стрима
func (r *streamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	// "$" - только новые сообщения, MKSTREAM создаёт стрим при необходимости
	err := r.client.XGroupCreateMkStream(ctx, stream, group, "$").Err()
	if err != nil {
		if strings.HasPrefix(err.Error(), busyGroupErrPrefix) {
			r.logger.Debug("Consumer group already exists",
				zap.String("stream", stream),
				zap.String("group", group))
			return nil
		}
		r.logger.Error("Failed to create consumer group",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	r.logger.Info("Consumer group created successfully",
		zap.String("stream", stream),
		zap.String("group", group))
	return nil
}

// ConsumeStream читает сообщения из стрима с использованием consumer group.
// Сначала и далее раз в claimIdle забирает через XAUTOCLAIM зависшие в pending сообщения
// (в том числе оставшиеся от прошлых процессов), затем читает новые.
// Канал закрывается при отмене контекста.
func (r *streamRepository) ConsumeStream(
	ctx context.Context,
	stream, group, consumer string,
	batchSize int64,
) (<-chan domain.StreamMessage, error) {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	msgChan := make(chan domain.StreamMessage, batchSize)

	go func() {
		defer close(msgChan)

		claimCursor := claimCursorStart
		var nextClaim time.Time

		for {
			if ctx.Err() != nil {
				r.logger.Info("Stream consumer stopped",
					zap.String("stream", stream),
					zap.String("consumer", consumer))
				return
			}

			if !time.Now().Before(nextClaim) {
				msgs, cursor, err := r.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
					Stream:   stream,
					Group:    group,
					Consumer: consumer,
					MinIdle:  r.claimIdle,
					Start:    claimCursor,
					Count:    batchSize,
				}).Result()
				switch {
				case err != nil && ctx.Err() != nil:
					return
				case err != nil:
					r.logger.Warn("Failed to claim pending messages",
						zap.String("stream", stream),
						zap.Error(err))
					claimCursor = claimCursorStart
					nextClaim = time.Now().Add(r.claimIdle)
				default:
					if len(msgs) > 0 {
						r.logger.Info("Claimed pending messages",
							zap.String("stream", stream),
							zap.String("consumer", consumer),
							zap.Int("count", len(msgs)))
					}
					claimCursor = cursor
					// Курсор вернулся в начало - pending просмотрен целиком
					if cursor == claimCursorStart || cursor == "" {
						claimCursor = claimCursorStart
						nextClaim = time.Now().Add(r.claimIdle)
					}
					if !r.deliver(ctx, msgChan, msgs) {
						return
					}
				}
			}

			result, err := r.client.XReadGroup(ctx, &redis.XReadGroupArgs{
				Group:    group,
				Consumer: consumer,
				Streams:  []string{stream, ">"},
				Count:    batchSize,
				Block:    r.readBlock,
			}).Result()

			if err != nil {
				if errors.Is(err, redis.Nil) {
					continue
				}
				if ctx.Err() != nil {
					return
				}
				r.logger.Error("Failed to read from stream",
					zap.String("stream", stream),
					zap.Error(err))

				select {
				case <-time.After(readErrorBackoff):
				case <-ctx.Done():
					return
				}
				continue
			}

			for _, s := range result {
				if !r.deliver(ctx, msgChan, s.Messages) {
					return
				}
			}
		}
	}()

	return msgChan, nil
}

// deliver отдаёт сообщения в канал; false - контекст отменён
func (r *streamRepository) deliver(ctx context.Context, out chan<- domain.StreamMessage, msgs []redis.XMessage) bool {
	for _, msg := range msgs {
		data, ok := msg.Values[dataField].(string)
		if !ok {
			r.logger.Warn("Message does not contain 'data' field",
				zap.String("message_id", msg.ID))
			// Пустое сообщение всё равно отдаём, чтобы воркер его подтвердил
			data = ""
		}

		select {
		case out <- domain.StreamMessage{ID: msg.ID, Data: data}:
		case <-ctx.Done():
			return false
		}
	}
	return true
}

// AckMessage подтверждает обработку сообщения
func (r *streamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	err := r.client.XAck(ctx, stream, group, messageID).Err()
	if err != nil {
		r.logger.Error("Failed to acknowledge message",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.String("message_id", messageID),
			zap.Error(err))
		return fmt.Errorf("failed to acknowledge message: %w", err)
	}

	r.logger.Debug("Message acknowledged",
		zap.String("message_id", messageID))
	return nil
}

// PublishToStream публикует сообщение в стрим
func (r *streamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error("Failed to marshal data",
			zap.String("stream", stream),
			zap.Error(err))
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	result, err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			dataField: string(jsonData),
		},
	}).Result()
	if err != nil {
		r.logger.Error("Failed to publish to stream",
			zap.String("stream", stream),
			zap.Error(err))
		return fmt.Errorf("failed to publish to stream: %w", err)
	}

	r.logger.Debug("Message published to stream",
		zap.String("stream", stream),
		zap.String("message_id", result))
	return nil
}
