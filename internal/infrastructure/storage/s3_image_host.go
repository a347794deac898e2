// Package storage provides image host implementations for listing photos.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	listingapp "github.com/homefinder/backend/internal/application/listing"
	"github.com/homefinder/backend/internal/domain/listing"
	infraconfig "github.com/homefinder/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Ensure S3ImageHost implements ImageHost
var _ listingapp.ImageHost = (*S3ImageHost)(nil)

// DefaultKeyPrefix is the object key prefix for listing images
const DefaultKeyPrefix = "listings"

// extensions maps accepted content types to object key extensions
var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// S3ImageHost stores listing images in an S3-compatible bucket (AWS S3, MinIO, R2).
// The object key doubles as the image's public ID.
type S3ImageHost struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
	keyPrefix     string
	logger        *zap.Logger
}

// NewS3ImageHost creates an S3ImageHost from configuration
func NewS3ImageHost(cfg *infraconfig.StorageConfig, logger *zap.Logger) (*S3ImageHost, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKey == "" {
		return nil, errors.New("storage access key is required")
	}
	if cfg.SecretKey == "" {
		return nil, errors.New("storage secret key is required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint != "" {
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}
		if _, err := url.Parse(endpoint); err != nil {
			return nil, fmt.Errorf("invalid storage endpoint: %w", err)
		}
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		baseURL = defaultPublicBaseURL(endpoint, region, cfg.Bucket, cfg.UsePathStyle)
	}

	return NewS3ImageHostWithClient(client, cfg.Bucket, baseURL, cfg.KeyPrefix, logger), nil
}

// NewS3ImageHostWithClient creates an S3ImageHost around an existing client
func NewS3ImageHostWithClient(client *s3.Client, bucket, publicBaseURL, keyPrefix string, logger *zap.Logger) *S3ImageHost {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &S3ImageHost{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		keyPrefix:     strings.Trim(keyPrefix, "/"),
		logger:        logger,
	}
}

// defaultPublicBaseURL derives the bucket URL when no CDN base URL is configured
func defaultPublicBaseURL(endpoint, region, bucket string, pathStyle bool) string {
	if endpoint == "" {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
	endpoint = strings.TrimRight(endpoint, "/")
	if pathStyle {
		return endpoint + "/" + bucket
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return endpoint + "/" + bucket
	}
	u.Host = bucket + "." + u.Host
	return u.String()
}

// EnsureBucket creates the bucket if it doesn't exist.
// Call this during application startup to ensure the bucket is ready.
func (h *S3ImageHost) EnsureBucket(ctx context.Context) error {
	_, err := h.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(h.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	h.logger.Info("Creating image bucket", zap.String("bucket", h.bucket))
	_, err = h.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(h.bucket),
	})
	if err != nil {
		// another instance may have created it first
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	h.logger.Info("Image bucket created", zap.String("bucket", h.bucket))
	return nil
}

// Upload stores the file under a fresh key and returns its public URL
func (h *S3ImageHost) Upload(ctx context.Context, file listingapp.ImageFile) (listing.ImageRef, error) {
	if file.Content == nil {
		return listing.ImageRef{}, errors.New("image content is required")
	}

	// the SDK needs a seekable body to sign the payload
	data, err := io.ReadAll(file.Content)
	if err != nil {
		return listing.ImageRef{}, fmt.Errorf("failed to read image: %w", err)
	}

	key := h.newKey(file)
	_, err = h.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(h.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(file.ContentType),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return listing.ImageRef{}, fmt.Errorf("failed to upload image: %w", err)
	}

	h.logger.Debug("Image uploaded",
		zap.String("key", key),
		zap.Int("bytes", len(data)))

	return listing.ImageRef{URL: h.PublicURL(key), PublicID: key}, nil
}

// Delete removes the object. S3 treats deleting a missing key as success.
func (h *S3ImageHost) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return errors.New("public id is required")
	}

	_, err := h.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(h.bucket),
		Key:    aws.String(publicID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// PublicURL returns the URL clients use to fetch the object
func (h *S3ImageHost) PublicURL(key string) string {
	return h.publicBaseURL + "/" + key
}

// GetBucket returns the bucket name
func (h *S3ImageHost) GetBucket() string {
	return h.bucket
}

func (h *S3ImageHost) newKey(file listingapp.ImageFile) string {
	return path.Join(h.keyPrefix, uuid.New().String()+extensionFor(file))
}

func extensionFor(file listingapp.ImageFile) string {
	if ext, ok := extensions[file.ContentType]; ok {
		return ext
	}
	return strings.ToLower(path.Ext(file.Filename))
}
