package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"likering/internal/api/handler"
	"likering/internal/api/middleware"
	"likering/internal/api/router"
	"likering/internal/config"
	"likering/internal/infra/database"
	infraES "likering/internal/infra/elasticsearch"
	infraKafka "likering/internal/infra/kafka"
	infraMinio "likering/internal/infra/minio"
	infraRedis "likering/internal/infra/redis"
	"likering/internal/realtime"
	"likering/internal/repository"
	"likering/internal/service"
	"likering/pkg/logger"

	_ "likering/api/openapi"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title Likering API
// @version 1.0
// @description Short-video social backend: feed, likes, comments, follows and direct messages.

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /api

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

	db := database.Get()
	if err := database.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	feedRepo := repository.NewFeedRepository(db)
	engagementRepo := repository.NewEngagementRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	relationRepo := repository.NewRelationRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	videoService := service.NewVideoService(userRepo, videoRepo, feedRepo, engagementRepo)
	commentService := service.NewCommentService(commentRepo, videoRepo, userRepo)
	relationService := service.NewRelationService(relationRepo, userRepo)
	messageService := service.NewMessageService(messageRepo, userRepo)

	// Message push: local hub, optionally fanned out across instances via Redis.
	hub := realtime.NewHub()
	broker := realtime.NewBroker(hub)
	if cfg.Redis.Enabled {
		if err := infraRedis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, message push stays local", zap.Error(err))
		} else {
			defer infraRedis.Close()
			broker.WithRedis(infraRedis.Get(), cfg.Redis.Channel)
			go func() {
				if err := broker.Run(ctx); err != nil {
					logger.Error("Message relay stopped", zap.Error(err))
				}
			}()
		}
	}
	messageService.WithNotifier(broker)

	if cfg.MinIO.Enabled {
		if err := infraMinio.Init(&cfg.MinIO); err != nil {
			logger.Warn("MinIO unavailable, upload URLs disabled", zap.Error(err))
		} else {
			videoService.WithUploads(infraMinio.NewSigner(&cfg.MinIO), cfg.MinIO.UploadExpiryDuration())
		}
	}

	if cfg.Kafka.Enabled {
		publisher := infraKafka.NewActivityPublisher(&cfg.Kafka)
		defer publisher.Close()
		videoService.WithEvents(publisher)
		commentService.WithEvents(publisher)
		relationService.WithEvents(publisher)
	}

	var index service.SearchIndex
	if cfg.Elasticsearch.Enabled {
		if err := infraES.Init(&cfg.Elasticsearch); err != nil {
			logger.Warn("Elasticsearch unavailable, search falls back to database", zap.Error(err))
		} else {
			defer infraES.Close()
			name := cfg.Elasticsearch.VideosIndex()
			if err := infraES.EnsureVideosIndex(ctx, infraES.Get(), name); err != nil {
				logger.Warn("Failed to ensure videos index", zap.Error(err))
			}
			videoIndex := infraES.NewVideoIndex(infraES.Get(), name)
			videoService.WithSearchIndex(videoIndex)
			index = videoIndex
		}
	}
	searchService := service.NewSearchService(videoRepo, index)

	gin.SetMode(cfg.App.Mode)
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logger(), middleware.CORS(cfg.App.CORSOrigins))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.Setup(r, &router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		User:     handler.NewUserHandler(userService, authService),
		Video:    handler.NewVideoHandler(videoService, searchService),
		Comment:  handler.NewCommentHandler(commentService),
		Relation: handler.NewRelationHandler(relationService),
		Message:  handler.NewMessageHandler(messageService, hub),
		Health:   handler.NewHealthHandler(cfg.App.Name, cfg.App.Version),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("mode", cfg.App.Mode),
		zap.String("addr", srv.Addr),
		zap.Bool("redis", cfg.Redis.Enabled),
		zap.Bool("minio", cfg.MinIO.Enabled),
		zap.Bool("kafka", cfg.Kafka.Enabled),
		zap.Bool("elasticsearch", cfg.Elasticsearch.Enabled),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("Server exited")
}
