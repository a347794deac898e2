package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Compensation outcomes
const (
	OutcomeDeleted = "deleted"
	OutcomeFailed  = "failed"
)

// BusinessMetrics counts listing and invitation activity.
// All methods are safe to call on a nil receiver, which records nothing.
type BusinessMetrics struct {
	logger *zap.Logger

	listingsCreated    *Counter
	listingsDeleted    *Counter
	imagesUploaded     *Counter
	imageCompensations *Counter
	invitesIssued      *Counter
	invitesRedeemed    *Counter
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter  metric.Meter
	Logger *zap.Logger
}

// NewBusinessMetrics creates the business counters on the meter
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{logger: logger}

	counters := []struct {
		target      **Counter
		name        string
		description string
		unit        string
	}{
		{&bm.listingsCreated, "listings_created_total", "Total number of listings created", "{listings}"},
		{&bm.listingsDeleted, "listings_deleted_total", "Total number of listings deleted", "{listings}"},
		{&bm.imagesUploaded, "listing_images_uploaded_total", "Total number of listing images uploaded to the image host", "{images}"},
		{&bm.imageCompensations, "image_compensations_total", "Remote image deletions run to undo or clean up uploads", "{images}"},
		{&bm.invitesIssued, "invites_issued_total", "Total number of invite tokens issued", "{invites}"},
		{&bm.invitesRedeemed, "invites_redeemed_total", "Total number of invite tokens redeemed", "{invites}"},
	}
	for _, c := range counters {
		counter, err := NewCounter(cfg.Meter, c.name, c.description, c.unit)
		if err != nil {
			return nil, err
		}
		*c.target = counter
	}

	return bm, nil
}

// RecordListingCreated counts a new listing
func (bm *BusinessMetrics) RecordListingCreated(ctx context.Context, purpose string) {
	if bm == nil {
		return
	}
	bm.listingsCreated.Inc(ctx, AttrPurpose.String(purpose))
}

// RecordListingDeleted counts a deleted listing
func (bm *BusinessMetrics) RecordListingDeleted(ctx context.Context) {
	if bm == nil {
		return
	}
	bm.listingsDeleted.Inc(ctx)
}

// RecordImagesUploaded counts images stored on the image host
func (bm *BusinessMetrics) RecordImagesUploaded(ctx context.Context, n int) {
	if bm == nil || n <= 0 {
		return
	}
	bm.imagesUploaded.Add(ctx, int64(n))
}

// RecordImageCompensation counts a remote image deletion.
// reason is "rollback" for undoing a failed write or "cleanup" after a committed removal.
func (bm *BusinessMetrics) RecordImageCompensation(ctx context.Context, reason, outcome string) {
	if bm == nil {
		return
	}
	bm.imageCompensations.Inc(ctx, AttrReason.String(reason), AttrOutcome.String(outcome))
}

// RecordInviteIssued counts an issued invite
func (bm *BusinessMetrics) RecordInviteIssued(ctx context.Context, role string) {
	if bm == nil {
		return
	}
	bm.invitesIssued.Inc(ctx, AttrRole.String(role))
}

// RecordInviteRedeemed counts a redeemed invite
func (bm *BusinessMetrics) RecordInviteRedeemed(ctx context.Context, role string) {
	if bm == nil {
		return
	}
	bm.invitesRedeemed.Inc(ctx, AttrRole.String(role))
}

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
