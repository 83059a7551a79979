//go:build ignore

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/travel-ledger/internal/domain"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address")
	action := flag.String("action", domain.StampActionCreated, "Stamp action to publish")
	count := flag.Int("count", 1, "Number of events to publish")
	wait := flag.Bool("wait", true, "Wait for the ledger.refreshed event")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Последний ID до публикации, чтобы читать только новые события
	lastID := "$"
	if msgs, err := client.XRevRangeN(ctx, domain.StreamLedgerRefreshed, "+", "-", 1).Result(); err == nil && len(msgs) > 0 {
		lastID = msgs[0].ID
	}

	for i := 0; i < *count; i++ {
		event := domain.StampChangedEvent{
			StampID:    uuid.NewString(),
			Action:     *action,
			OccurredAt: time.Now().UTC(),
		}

		data, err := json.Marshal(event)
		if err != nil {
			log.Fatalf("Failed to marshal event: %v", err)
		}

		id, err := client.XAdd(ctx, &redis.XAddArgs{
			Stream: domain.StreamStampsChanged,
			Values: map[string]interface{}{
				"data": string(data),
			},
		}).Result()
		if err != nil {
			log.Fatalf("Failed to publish event: %v", err)
		}

		fmt.Printf("Published %s for stamp %s (message %s)\n", event.Action, event.StampID, id)
	}

	if !*wait {
		return
	}

	fmt.Println("Waiting for ledger.refreshed...")

	streams, err := client.XRead(ctx, &redis.XReadArgs{
		Streams: []string{domain.StreamLedgerRefreshed, lastID},
		Count:   1,
		Block:   15 * time.Second,
	}).Result()
	if err != nil {
		log.Fatalf("No refresh event received: %v", err)
	}

	for _, s := range streams {
		for _, msg := range s.Messages {
			var refreshed domain.LedgerRefreshedEvent
			if err := json.Unmarshal([]byte(msg.Values["data"].(string)), &refreshed); err != nil {
				log.Fatalf("Failed to parse refresh event: %v", err)
			}
			fmt.Printf("Ledger refreshed: %d stamps, %d km, rank %s (%d triggers)\n",
				refreshed.TotalStamps, refreshed.TotalKm, refreshed.Rank, refreshed.Triggers)
		}
	}
}
