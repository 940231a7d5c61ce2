package main

import (
	"context"
	"fmt"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"likering/internal/config"
	"likering/internal/infra/database"
	infraKafka "likering/internal/infra/kafka"
	"likering/internal/repository"
	"likering/internal/service"
	"likering/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	counters := service.NewCounterService(repository.NewVideoRepository(database.Get()))

	var wg sync.WaitGroup

	if cfg.Kafka.Enabled {
		topic := cfg.Kafka.Topic(infraKafka.TopicActivity)
		wg.Add(1)
		go func() {
			defer wg.Done()
			infraKafka.StartActivityConsumer(ctx, cfg.Kafka.Brokers, topic, cfg.Worker.GroupID, counters.HandleEvent)
		}()
	}

	if every := cfg.Worker.ReconcileEvery(); every > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sweep(ctx, counters, every)
		}()
	}

	logger.Info("Counter worker started",
		zap.Bool("kafka", cfg.Kafka.Enabled),
		zap.String("group", cfg.Worker.GroupID),
		zap.Duration("reconcile_every", cfg.Worker.ReconcileEvery()),
	)

	<-ctx.Done()
	logger.Info("Shutting down counter worker")
	wg.Wait()
	logger.Info("Counter worker stopped")
}

// sweep recomputes every video's counters once at start and then on each tick.
func sweep(ctx context.Context, counters *service.CounterService, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		fixed, err := counters.ReconcileAll(ctx)
		if err != nil && ctx.Err() == nil {
			logger.Error("Counter sweep failed", zap.Error(err))
		} else if fixed > 0 {
			logger.Info("Counter sweep repaired videos", zap.Int64("videos", fixed))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
