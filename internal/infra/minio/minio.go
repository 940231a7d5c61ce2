package minio

import (
	"context"
	"fmt"
	"strings"
	"time"

	"likering/internal/config"
	"likering/pkg/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

var client *minio.Client

// Init creates the client and makes sure the video bucket exists and is publicly readable.
func Init(cfg *config.MinIOConfig) error {
	var err error
	client, err = minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
		logger.Info("MinIO bucket created", zap.String("bucket", cfg.Bucket))
	}

	// clients play videos straight from the bucket
	if err := client.SetBucketPolicy(ctx, cfg.Bucket, publicReadPolicy(cfg.Bucket)); err != nil {
		return fmt.Errorf("failed to set public policy for %s: %w", cfg.Bucket, err)
	}

	logger.Info("MinIO connected",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("bucket", cfg.Bucket),
	)

	return nil
}

// Get returns the client set by Init, or nil.
func Get() *minio.Client {
	return client
}

func publicReadPolicy(bucket string) string {
	return fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, bucket)
}

// Signer issues presigned upload URLs. It implements service.UploadSigner.
type Signer struct {
	client *minio.Client
	cfg    config.MinIOConfig
}

// NewSigner uses the client created by Init.
func NewSigner(cfg *config.MinIOConfig) *Signer {
	return &Signer{client: client, cfg: *cfg}
}

// PresignUpload returns a PUT URL for objectName and the URL the object will be readable at.
func (s *Signer) PresignUpload(ctx context.Context, objectName, contentType string) (string, string, error) {
	u, err := s.client.PresignedPutObject(ctx, s.cfg.Bucket, objectName, s.cfg.UploadExpiryDuration())
	if err != nil {
		return "", "", fmt.Errorf("failed to presign upload: %w", err)
	}

	logger.Debug("Upload URL issued",
		zap.String("object", objectName),
		zap.String("content_type", contentType),
	)
	return u.String(), PublicURL(&s.cfg, objectName), nil
}

// PublicURL is where objectName is served from. A configured public endpoint
// (CDN or external host) wins over the API-facing endpoint.
func PublicURL(cfg *config.MinIOConfig, objectName string) string {
	base := strings.TrimRight(cfg.PublicEndpoint, "/")
	if base == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s", scheme, cfg.Endpoint)
	}
	return fmt.Sprintf("%s/%s/%s", base, cfg.Bucket, objectName)
}
