// Command eventlog tails the domain event topic and logs every event.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"campus-connect/internal/config"
	"campus-connect/internal/events"
	"campus-connect/pkg/logger"

	"github.com/segmentio/kafka-go"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	appLogger := logger.New(cfg.App.LogLevel, cfg.App.Env)
	defer appLogger.Sync()

	if len(cfg.Kafka.Brokers) == 0 {
		appLogger.Fatal("KAFKA_BROKERS is required", errors.New("no brokers configured"))
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		GroupID:  cfg.Kafka.GroupID,
		Topic:    cfg.Kafka.Topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appLogger.Info("Tailing events", "topic", cfg.Kafka.Topic, "group", cfg.Kafka.GroupID)
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				appLogger.Info("Event log stopped")
				return
			}
			appLogger.Error("Failed to read event", "error", err)
			os.Exit(1)
		}

		event, err := decodeEvent(msg)
		if err != nil {
			appLogger.Warn("Skipping malformed event", "offset", msg.Offset, "error", err)
			continue
		}
		appLogger.Info("Event",
			"type", event.Type,
			"actor", event.ActorID,
			"subject", event.SubjectID,
			"payload", event.Payload,
			"occurred_at", event.OccurredAt,
			"partition", msg.Partition,
			"offset", msg.Offset,
		)
	}
}

func decodeEvent(msg kafka.Message) (events.Event, error) {
	var event events.Event
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return event, fmt.Errorf("invalid event json: %w", err)
	}
	if event.Type == "" {
		return event, errors.New("event type missing")
	}
	return event, nil
}
