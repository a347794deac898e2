package listing

import (
	"context"

	"github.com/homefinder/backend/internal/domain/listing"
	"github.com/homefinder/backend/internal/domain/shared"
	"github.com/homefinder/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ImageManager coordinates remote image uploads with the image rows of a listing
type ImageManager struct {
	host        ImageHost
	images      listing.ImageRepository
	policy      listing.ImagePolicy
	maxFileSize int64
	metrics     *telemetry.BusinessMetrics
	logger      *zap.Logger
}

// NewImageManager creates a new image manager. A non-positive maxFileSize uses MaxImageSize.
func NewImageManager(
	host ImageHost,
	images listing.ImageRepository,
	policy listing.ImagePolicy,
	maxFileSize int64,
	metrics *telemetry.BusinessMetrics,
	logger *zap.Logger,
) *ImageManager {
	if maxFileSize <= 0 {
		maxFileSize = MaxImageSize
	}
	return &ImageManager{
		host:        host,
		images:      images,
		policy:      policy,
		maxFileSize: maxFileSize,
		metrics:     metrics,
		logger:      logger,
	}
}

// Policy returns the image count bound
func (m *ImageManager) Policy() listing.ImagePolicy {
	return m.policy
}

// CheckFiles validates the resulting image count and each file before anything is uploaded.
// retained is the number of images the listing keeps besides files.
func (m *ImageManager) CheckFiles(retained int, files []ImageFile) error {
	if err := m.policy.Check(retained + len(files)); err != nil {
		return err
	}
	for _, f := range files {
		if _, ok := AllowedImageTypes[f.ContentType]; !ok {
			return shared.NewValidationError("Unsupported image type: " + f.ContentType + " (use JPEG, PNG or WebP)")
		}
		if f.Size > m.maxFileSize {
			return shared.NewValidationError("Image " + f.Filename + " exceeds the maximum file size")
		}
		if f.Content == nil {
			return shared.NewValidationError("Image " + f.Filename + " is empty")
		}
	}
	return nil
}

// Upload checks the files, then uploads them one at a time.
// If an upload fails, the assets already uploaded are deleted and an
// EXTERNAL_SERVICE_ERROR is returned. On success the caller owns the
// returned Compensation and must Run it if its write fails or Discard it on commit.
func (m *ImageManager) Upload(ctx context.Context, retained int, files []ImageFile) ([]listing.ImageRef, *Compensation, error) {
	if err := m.CheckFiles(retained, files); err != nil {
		return nil, nil, err
	}

	comp := newCompensation(m.host, m.metrics, m.logger)
	refs := make([]listing.ImageRef, 0, len(files))
	for i, f := range files {
		ref, err := m.host.Upload(ctx, f)
		if err != nil {
			m.logger.Warn("Image upload failed, rolling back earlier uploads",
				zap.Int("index", i),
				zap.String("filename", f.Filename),
				zap.Int("rolled_back", len(refs)),
				zap.Error(err))
			comp.Run(ctx)
			return nil, nil, shared.WrapDomainError(shared.CodeExternalService, "Failed to upload images", err)
		}
		comp.add(ref.PublicID)
		refs = append(refs, ref)
	}

	m.metrics.RecordImagesUploaded(ctx, len(refs))
	return refs, comp, nil
}

// Attach persists image rows for refs under houseID within the ambient transaction
func (m *ImageManager) Attach(ctx context.Context, houseID uuid.UUID, refs []listing.ImageRef) ([]listing.Image, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	images := make([]listing.Image, 0, len(refs))
	for _, ref := range refs {
		img, err := listing.NewImage(houseID, ref)
		if err != nil {
			return nil, err
		}
		images = append(images, *img)
	}
	if err := m.images.Attach(ctx, houseID, images); err != nil {
		return nil, err
	}
	return images, nil
}

// Detach deletes the rows of houseID matching publicIDs. Rows of other houses are never touched.
func (m *ImageManager) Detach(ctx context.Context, houseID uuid.UUID, publicIDs []string) (int64, error) {
	if len(publicIDs) == 0 {
		return 0, nil
	}
	return m.images.Detach(ctx, houseID, publicIDs)
}

// EnsureCount re-checks the stored image count of houseID against the policy.
// It runs inside the write transaction after Detach and Attach.
func (m *ImageManager) EnsureCount(ctx context.Context, houseID uuid.UUID) error {
	n, err := m.images.CountByHouse(ctx, houseID)
	if err != nil {
		return err
	}
	return m.policy.Check(int(n))
}

// RemoveRemote deletes assets from the image host after a committed removal.
// It is best effort: failures are logged and counted, never returned.
func (m *ImageManager) RemoveRemote(ctx context.Context, publicIDs []string) {
	for _, id := range publicIDs {
		if err := m.host.Delete(ctx, id); err != nil {
			m.logger.Error("Failed to delete image from host; asset is orphaned",
				zap.String("public_id", id),
				zap.Error(err))
			m.metrics.RecordImageCompensation(ctx, reasonCleanup, telemetry.OutcomeFailed)
			continue
		}
		m.metrics.RecordImageCompensation(ctx, reasonCleanup, telemetry.OutcomeDeleted)
	}
}
