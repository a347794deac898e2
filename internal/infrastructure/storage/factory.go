package storage

import (
	"context"
	"fmt"

	listingapp "github.com/homefinder/backend/internal/application/listing"
	infraconfig "github.com/homefinder/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Image host providers
const (
	ProviderS3   = "s3"
	ProviderStub = "stub"
)

// NewImageHost creates the image host selected by cfg.Provider.
// For S3 the bucket is created when missing.
func NewImageHost(ctx context.Context, cfg *infraconfig.StorageConfig, logger *zap.Logger) (listingapp.ImageHost, error) {
	switch cfg.Provider {
	case ProviderS3:
		host, err := NewS3ImageHost(cfg, logger)
		if err != nil {
			return nil, err
		}
		if err := host.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		logger.Info("Using S3 image host",
			zap.String("bucket", host.GetBucket()),
			zap.String("endpoint", cfg.Endpoint))
		return host, nil
	case ProviderStub, "":
		logger.Warn("Using in-memory stub image host; uploaded images are not persisted")
		return NewStubImageHost(cfg.PublicBaseURL), nil
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
}
