package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"likering/internal/model"
	"likering/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// TopicActivity is the config key of the activity topic.
const TopicActivity = "video_activity"

// EventHandler processes one activity event.
type EventHandler func(ctx context.Context, event *model.ActivityEvent) error

// StartActivityConsumer reads the activity topic until ctx is cancelled. It
// blocks, so run it in its own goroutine. Handler failures are logged and the
// offset still advances; the periodic sweep repairs anything missed.
func StartActivityConsumer(ctx context.Context, brokers []string, topic, groupID string, handler EventHandler) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		StartOffset:    kafka.LastOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			logger.Error("Failed to close kafka consumer", zap.Error(err))
		}
		logger.Info("Kafka activity consumer stopped")
	}()

	logger.Info("Kafka activity consumer started",
		zap.String("topic", topic),
		zap.String("group", groupID),
	)

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("Failed to read kafka message", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}

		event, err := decodeEvent(msg.Value)
		if err != nil {
			logger.Error("Dropping malformed activity event",
				zap.Error(err),
				zap.ByteString("value", msg.Value),
			)
			continue
		}

		if err := handler(ctx, event); err != nil {
			logger.Error("Failed to handle activity event",
				zap.String("type", event.Type),
				zap.String("video_id", event.VideoID),
				zap.Error(err),
			)
		}
	}
}

func decodeEvent(value []byte) (*model.ActivityEvent, error) {
	var event model.ActivityEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal activity event: %w", err)
	}
	if event.Type == "" {
		return nil, fmt.Errorf("activity event has no type")
	}
	return &event, nil
}
