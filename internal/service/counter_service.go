package service

import (
	"context"

	"likering/internal/model"
	"likering/pkg/logger"

	"go.uber.org/zap"
)

// CounterService recomputes cached video counters from the like, view and comment tables.
type CounterService struct {
	videos VideoStore
}

// NewCounterService creates a CounterService over videos.
func NewCounterService(videos VideoStore) *CounterService {
	return &CounterService{videos: videos}
}

// HandleEvent reconciles the video an activity event refers to. Events
// without a video, and deletions, need no work.
func (s *CounterService) HandleEvent(ctx context.Context, event *model.ActivityEvent) error {
	if event.VideoID == "" || event.Type == model.EventVideoDeleted {
		return nil
	}

	fixed, err := s.videos.ReconcileCounters(ctx, event.VideoID)
	if err != nil {
		return err
	}
	if fixed {
		logger.Info("Video counters reconciled",
			zap.String("video_id", event.VideoID),
			zap.String("trigger", event.Type),
		)
	}
	return nil
}

// ReconcileAll sweeps every video and returns how many had drifted.
func (s *CounterService) ReconcileAll(ctx context.Context) (int64, error) {
	fixed, err := s.videos.ReconcileAll(ctx)
	if err != nil {
		return 0, err
	}
	logger.Info("Counter sweep finished", zap.Int64("fixed", fixed))
	return fixed, nil
}
