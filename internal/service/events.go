package service

import (
	"context"
	"time"

	"likering/internal/model"
	"likering/pkg/logger"

	"go.uber.org/zap"
)

const sideChannelTimeout = 2 * time.Second

// publish emits an activity event without ever failing the caller.
func publish(ctx context.Context, events EventPublisher, event model.ActivityEvent) {
	if events == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideChannelTimeout)
	defer cancel()

	if err := events.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish activity event",
			zap.String("type", event.Type),
			zap.String("video_id", event.VideoID),
			zap.Error(err),
		)
	}
}
