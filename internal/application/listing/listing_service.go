package listing

import (
	"context"
	"errors"
	"strings"

	"github.com/homefinder/backend/internal/domain/identity"
	"github.com/homefinder/backend/internal/domain/listing"
	"github.com/homefinder/backend/internal/domain/shared"
	"github.com/homefinder/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// errListingNotFound is returned for missing listings and for listings the caller may not manage
var errListingNotFound = shared.NewNotFoundError("Listing")

// ListingService handles listing writes and the owner views
type ListingService struct {
	houses     listing.HouseRepository
	houseTypes listing.HouseTypeRepository
	images     *ImageManager
	chains     ChainResolver
	txManager  shared.TransactionManager
	metrics    *telemetry.BusinessMetrics
	logger     *zap.Logger
}

// NewListingService creates a new ListingService
func NewListingService(
	houses listing.HouseRepository,
	houseTypes listing.HouseTypeRepository,
	images *ImageManager,
	chains ChainResolver,
	txManager shared.TransactionManager,
	metrics *telemetry.BusinessMetrics,
	logger *zap.Logger,
) *ListingService {
	return &ListingService{
		houses:     houses,
		houseTypes: houseTypes,
		images:     images,
		chains:     chains,
		txManager:  txManager,
		metrics:    metrics,
		logger:     logger,
	}
}

// Create publishes a listing with its images.
// Images are uploaded before the transaction; if the transaction fails they are deleted again.
func (s *ListingService) Create(ctx context.Context, session identity.Session, req CreateListingRequest, files []ImageFile) (*ListingCreatedResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "listing", "create")
	defer span.End()

	if err := requireListingRole(session); err != nil {
		return nil, err
	}

	house, err := listing.NewHouse(session.UserID, req.ToInput())
	if err != nil {
		return nil, err
	}
	refs, comp, err := s.images.Upload(ctx, 0, files)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.chains.ValidateChain(txCtx, house.Place); err != nil {
			return err
		}
		if err := s.ensureHouseType(txCtx, house.HouseTypeID); err != nil {
			return err
		}
		if err := s.houses.Create(txCtx, house); err != nil {
			return err
		}
		images, err := s.images.Attach(txCtx, house.ID, refs)
		if err != nil {
			return err
		}
		house.Images = images
		return nil
	})
	if err != nil {
		s.logger.Warn("Listing creation failed, deleting uploaded images",
			zap.String("agent_id", session.UserID.String()),
			zap.Strings("public_ids", comp.Pending()),
			zap.Error(err))
		comp.Run(ctx)
		telemetry.RecordError(span, err)
		return nil, err
	}
	comp.Discard()

	s.metrics.RecordListingCreated(ctx, string(house.Purpose))
	telemetry.SetAttributes(span,
		telemetry.SpanAttrHouseID, house.ID.String(),
		telemetry.SpanAttrImageCount, len(refs))
	telemetry.SetOK(span)
	s.logger.Info("Listing created",
		zap.String("house_id", house.ID.String()),
		zap.String("agent_id", session.UserID.String()),
		zap.Int("images", len(refs)))

	return &ListingCreatedResponse{ID: house.ID}, nil
}

// Update applies a partial update, removes the requested images and adds new ones.
// The image count is checked against the loaded listing before upload and again
// against the locked row inside the transaction. Remote assets of removed
// images are deleted after the commit.
func (s *ListingService) Update(ctx context.Context, session identity.Session, id uuid.UUID, req UpdateListingRequest, files []ImageFile) (*ListingDetails, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "listing", "update")
	defer span.End()

	if err := requireListingRole(session); err != nil {
		return nil, err
	}

	house, err := s.loadManaged(ctx, session, id)
	if err != nil {
		return nil, err
	}

	// validate the scalar patch on a copy before anything is uploaded
	patch := req.ToPatch()
	preview := *house
	if err := preview.Apply(patch); err != nil {
		return nil, err
	}

	retained := len(house.Images) - len(house.OwnedPublicIDs(req.ImagesToDelete))
	if err := s.images.CheckFiles(retained, files); err != nil {
		return nil, err
	}

	newRefs, comp, err := s.uploadIfAny(ctx, retained, files)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var removed []string
	err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.houses.FindByIDForUpdate(txCtx, id)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return errListingNotFound
			}
			return err
		}
		if err := current.Apply(patch); err != nil {
			return err
		}
		if patch.TouchesLocation() {
			if err := s.chains.ValidateChain(txCtx, current.Place); err != nil {
				return err
			}
		}
		if patch.HouseTypeID != nil {
			if err := s.ensureHouseType(txCtx, *patch.HouseTypeID); err != nil {
				return err
			}
		}
		removed = current.OwnedPublicIDs(req.ImagesToDelete)
		if _, err := s.images.Detach(txCtx, id, removed); err != nil {
			return err
		}
		if _, err := s.images.Attach(txCtx, id, newRefs); err != nil {
			return err
		}
		if err := s.images.EnsureCount(txCtx, id); err != nil {
			return err
		}
		return s.houses.Update(txCtx, current)
	})
	if err != nil {
		if comp != nil {
			s.logger.Warn("Listing update failed, deleting uploaded images",
				zap.String("house_id", id.String()),
				zap.Strings("public_ids", comp.Pending()),
				zap.Error(err))
		}
		comp.Run(ctx)
		telemetry.RecordError(span, err)
		return nil, err
	}
	comp.Discard()

	s.images.RemoveRemote(ctx, removed)

	updated, err := s.houses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	telemetry.SetOK(span)
	s.logger.Info("Listing updated",
		zap.String("house_id", id.String()),
		zap.String("user_id", session.UserID.String()),
		zap.Int("images_added", len(newRefs)),
		zap.Int("images_removed", len(removed)))

	return toDetails(updated), nil
}

// Delete removes a listing and then its remote images
func (s *ListingService) Delete(ctx context.Context, session identity.Session, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "listing", "delete")
	defer span.End()

	if err := requireListingRole(session); err != nil {
		return err
	}

	var publicIDs []string
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		house, err := s.loadManaged(txCtx, session, id)
		if err != nil {
			return err
		}
		publicIDs = house.PublicIDs()
		return s.houses.Delete(txCtx, id)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	s.images.RemoveRemote(ctx, publicIDs)

	s.metrics.RecordListingDeleted(ctx)
	telemetry.SetOK(span)
	s.logger.Info("Listing deleted",
		zap.String("house_id", id.String()),
		zap.String("user_id", session.UserID.String()),
		zap.Int("images", len(publicIDs)))
	return nil
}

// ChangeStatus moves a listing to another market status
func (s *ListingService) ChangeStatus(ctx context.Context, session identity.Session, id uuid.UUID, status string) (*ListingSummary, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "listing", "change_status",
		telemetry.WithAttribute(telemetry.SpanAttrHouseID, id.String()))
	defer span.End()

	if err := requireListingRole(session); err != nil {
		return nil, err
	}

	next := listing.Status(strings.ToUpper(strings.TrimSpace(status)))
	if !next.IsValid() {
		return nil, shared.NewValidationError("Invalid listing status: " + status)
	}

	house, err := s.loadManaged(ctx, session, id)
	if err != nil {
		return nil, err
	}
	previous := house.Status
	if err := house.ChangeStatus(next); err != nil {
		return nil, err
	}
	if err := s.houses.Update(ctx, house); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span, "status", string(next))
	telemetry.SetOK(span)
	s.logger.Info("Listing status changed",
		zap.String("house_id", id.String()),
		zap.String("from", string(previous)),
		zap.String("to", string(next)))

	summary := ToSummary(house)
	return &summary, nil
}

// GetForEdit returns the full listing to its owner or an admin
func (s *ListingService) GetForEdit(ctx context.Context, session identity.Session, id uuid.UUID) (*ListingDetails, error) {
	if err := requireListingRole(session); err != nil {
		return nil, err
	}

	house, err := s.loadManaged(ctx, session, id)
	if err != nil {
		return nil, err
	}

	details := toDetails(house)
	details.Place = s.chains.Names(ctx, house.Place)
	if ht, err := s.houseTypes.FindByID(ctx, house.HouseTypeID); err == nil {
		details.HouseType = ht.Name
	}
	return details, nil
}

// loadManaged loads a listing the session may modify.
// A listing owned by someone else is reported as not found.
func (s *ListingService) loadManaged(ctx context.Context, session identity.Session, id uuid.UUID) (*listing.House, error) {
	house, err := s.houses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errListingNotFound
		}
		return nil, err
	}
	if !session.CanManage(house.AgentID) {
		s.logger.Debug("Listing access denied",
			zap.String("house_id", id.String()),
			zap.String("user_id", session.UserID.String()))
		return nil, errListingNotFound
	}
	return house, nil
}

func (s *ListingService) ensureHouseType(ctx context.Context, id uuid.UUID) error {
	if _, err := s.houseTypes.FindByID(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewValidationError("House type not found")
		}
		return err
	}
	return nil
}

func (s *ListingService) uploadIfAny(ctx context.Context, retained int, files []ImageFile) ([]listing.ImageRef, *Compensation, error) {
	if len(files) == 0 {
		return nil, nil, nil
	}
	return s.images.Upload(ctx, retained, files)
}

func requireListingRole(session identity.Session) error {
	if !session.HasAnyRole(identity.ListingRoles...) {
		return shared.NewDomainError(shared.CodeForbidden, "Only agents and admins can manage listings")
	}
	return nil
}
