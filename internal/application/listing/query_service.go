package listing

import (
	"context"
	"errors"

	"github.com/homefinder/backend/internal/domain/identity"
	"github.com/homefinder/backend/internal/domain/listing"
	"github.com/homefinder/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QueryService serves the public listing reads
type QueryService struct {
	houses     listing.HouseReader
	houseTypes listing.HouseTypeRepository
	chains     ChainResolver
	agents     AgentReader
	profiles   ProfileReader
	logger     *zap.Logger
}

// NewQueryService creates a new QueryService
func NewQueryService(
	houses listing.HouseReader,
	houseTypes listing.HouseTypeRepository,
	chains ChainResolver,
	agents AgentReader,
	profiles ProfileReader,
	logger *zap.Logger,
) *QueryService {
	return &QueryService{
		houses:     houses,
		houseTypes: houseTypes,
		chains:     chains,
		agents:     agents,
		profiles:   profiles,
		logger:     logger,
	}
}

// Search returns one page of listings matching flat query parameters.
// Unknown or malformed parameters are ignored.
func (s *QueryService) Search(ctx context.Context, params map[string]string) (*SearchResult, error) {
	return s.search(ctx, listing.ParseSearchParams(params))
}

// ListMine returns the caller's own listings, newest first
func (s *QueryService) ListMine(ctx context.Context, session identity.Session, page, limit int) (*SearchResult, error) {
	if err := requireListingRole(session); err != nil {
		return nil, err
	}
	agentID := session.UserID
	filter := listing.SearchFilter{AgentID: &agentID}.WithPaging(page, limit)
	return s.search(ctx, filter)
}

func (s *QueryService) search(ctx context.Context, filter listing.SearchFilter) (*SearchResult, error) {
	houses, err := s.houses.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.houses.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &SearchResult{
		Houses: ToSummaries(houses),
		Total:  total,
		Page:   filter.Page,
		Pages:  shared.TotalPages(total, filter.Limit),
	}, nil
}

// GetDetails returns the public view of one listing with names and agent contact
func (s *QueryService) GetDetails(ctx context.Context, id uuid.UUID) (*ListingDetails, error) {
	house, err := s.houses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errListingNotFound
		}
		return nil, err
	}

	details := toDetails(house)
	details.Place = s.chains.Names(ctx, house.Place)
	if ht, err := s.houseTypes.FindByID(ctx, house.HouseTypeID); err == nil {
		details.HouseType = ht.Name
	}
	details.Agent = s.agentInfo(ctx, house.AgentID)
	return details, nil
}

// agentInfo builds the agent card; a missing profile leaves the contact fields blank
func (s *QueryService) agentInfo(ctx context.Context, agentID uuid.UUID) *AgentInfo {
	user, err := s.agents.FindByID(ctx, agentID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Failed to load listing agent",
				zap.String("agent_id", agentID.String()),
				zap.Error(err))
		}
		return nil
	}

	info := &AgentInfo{ID: user.ID, Name: user.Name, Email: user.Email, Image: user.Image}
	profile, err := s.profiles.FindByUserID(ctx, agentID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Failed to load agent profile",
				zap.String("agent_id", agentID.String()),
				zap.Error(err))
		}
		return info
	}
	info.Phone = profile.Phone
	info.WhatsApp = profile.WhatsApp
	info.BusinessName = profile.BusinessName
	if profile.Email != "" {
		info.Email = profile.Email
	}
	return info
}
