package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"likering/internal/config"
	"likering/internal/model"
	"likering/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ActivityPublisher writes activity events to the activity topic. It
// implements service.EventPublisher.
type ActivityPublisher struct {
	writer *kafka.Writer
	topic  string
}

// NewActivityPublisher creates the writer. Nothing is dialled until the first publish.
func NewActivityPublisher(cfg *config.KafkaConfig) *ActivityPublisher {
	topic := cfg.Topic(TopicActivity)
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", topic),
	)

	return &ActivityPublisher{writer: writer, topic: topic}
}

// Publish sends one event. Events for the same video share a key and so a partition.
func (p *ActivityPublisher) Publish(ctx context.Context, event model.ActivityEvent) error {
	msg, err := encodeEvent(&event)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send activity event: %w", err)
	}

	logger.Debug("Activity event sent",
		zap.String("type", event.Type),
		zap.String("video_id", event.VideoID),
		zap.String("topic", p.topic),
	)
	return nil
}

// Close flushes pending events and closes the writer.
func (p *ActivityPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return p.writer.Close()
}

func encodeEvent(event *model.ActivityEvent) (kafka.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal activity event: %w", err)
	}

	key := event.VideoID
	if key == "" {
		key = "user-" + event.Username
	}

	return kafka.Message{
		Key:   []byte(key),
		Value: payload,
	}, nil
}
