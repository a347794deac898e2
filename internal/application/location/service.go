// Package location exposes the read side of the location hierarchy and
// house type reference data, and validates location chains for listings.
package location

import (
	"context"
	"errors"
	"strings"

	"github.com/homefinder/backend/internal/domain/listing"
	"github.com/homefinder/backend/internal/domain/location"
	"github.com/homefinder/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HouseTypeLister lists house types
type HouseTypeLister interface {
	List(ctx context.Context) ([]listing.HouseType, error)
}

// Service answers hierarchy queries.
// reader may be a cache; finder must hit the store so chain checks see the current transaction.
type Service struct {
	reader     location.Reader
	finder     location.Finder
	houseTypes HouseTypeLister
	logger     *zap.Logger
}

// NewService creates a new location service
func NewService(reader location.Reader, finder location.Finder, houseTypes HouseTypeLister, logger *zap.Logger) *Service {
	return &Service{
		reader:     reader,
		finder:     finder,
		houseTypes: houseTypes,
		logger:     logger,
	}
}

// ListRegions returns all regions in insertion order
func (s *Service) ListRegions(ctx context.Context) ([]RegionResponse, error) {
	regions, err := s.reader.ListRegions(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]RegionResponse, len(regions))
	for i, r := range regions {
		out[i] = RegionResponse{ID: r.ID, Name: r.Name}
	}
	return out, nil
}

// ListDivisions returns the divisions of the region identified by rawRegionID.
// An unknown, missing or malformed region ID yields an empty list.
func (s *Service) ListDivisions(ctx context.Context, rawRegionID string) ([]DivisionResponse, error) {
	regionID, ok := parseParentID(rawRegionID)
	if !ok {
		return []DivisionResponse{}, nil
	}
	divisions, err := s.reader.ListDivisions(ctx, regionID)
	if err != nil {
		return nil, err
	}
	out := make([]DivisionResponse, len(divisions))
	for i, d := range divisions {
		out[i] = DivisionResponse{ID: d.ID, Name: d.Name, RegionID: d.RegionID}
	}
	return out, nil
}

// ListSubdivisions returns the subdivisions of a division
func (s *Service) ListSubdivisions(ctx context.Context, rawDivisionID string) ([]SubdivisionResponse, error) {
	divisionID, ok := parseParentID(rawDivisionID)
	if !ok {
		return []SubdivisionResponse{}, nil
	}
	subs, err := s.reader.ListSubdivisions(ctx, divisionID)
	if err != nil {
		return nil, err
	}
	out := make([]SubdivisionResponse, len(subs))
	for i, sub := range subs {
		out[i] = SubdivisionResponse{ID: sub.ID, Name: sub.Name, DivisionID: sub.DivisionID}
	}
	return out, nil
}

// ListNeighborhoods returns the neighborhoods of a subdivision
func (s *Service) ListNeighborhoods(ctx context.Context, rawSubdivisionID string) ([]NeighborhoodResponse, error) {
	subdivisionID, ok := parseParentID(rawSubdivisionID)
	if !ok {
		return []NeighborhoodResponse{}, nil
	}
	hoods, err := s.reader.ListNeighborhoods(ctx, subdivisionID)
	if err != nil {
		return nil, err
	}
	out := make([]NeighborhoodResponse, len(hoods))
	for i, n := range hoods {
		out[i] = NeighborhoodResponse{ID: n.ID, Name: n.Name, SubdivisionID: n.SubdivisionID}
	}
	return out, nil
}

// ListHouseTypes returns all house types
func (s *Service) ListHouseTypes(ctx context.Context) ([]HouseTypeResponse, error) {
	types, err := s.houseTypes.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]HouseTypeResponse, len(types))
	for i, t := range types {
		out[i] = HouseTypeResponse{ID: t.ID, Name: t.Name, Description: t.Description}
	}
	return out, nil
}

// ValidateChain checks that the four levels form one path through the hierarchy.
// It reads through the store, so inside WithinTransaction it sees the transaction's view.
func (s *Service) ValidateChain(ctx context.Context, chain location.Chain) error {
	if _, err := s.finder.FindRegion(ctx, chain.RegionID); err != nil {
		if isNotFound(err) {
			return shared.NewValidationError("Region not found")
		}
		return err
	}

	div, err := s.finder.FindDivision(ctx, chain.DivisionID)
	if err != nil && !isNotFound(err) {
		return err
	}
	sub, err := s.finder.FindSubdivision(ctx, chain.SubdivisionID)
	if err != nil && !isNotFound(err) {
		return err
	}
	nb, err := s.finder.FindNeighborhood(ctx, chain.NeighborhoodID)
	if err != nil && !isNotFound(err) {
		return err
	}

	if err := chain.Verify(div, sub, nb); err != nil {
		s.logger.Debug("Rejected location chain",
			zap.String("region_id", chain.RegionID.String()),
			zap.String("neighborhood_id", chain.NeighborhoodID.String()),
			zap.Error(err))
		return err
	}
	return nil
}

// Names resolves the display names of a chain. Missing levels are left blank.
func (s *Service) Names(ctx context.Context, chain location.Chain) ChainNames {
	var names ChainNames
	if r, err := s.finder.FindRegion(ctx, chain.RegionID); err == nil {
		names.Region = r.Name
	}
	if d, err := s.finder.FindDivision(ctx, chain.DivisionID); err == nil {
		names.Division = d.Name
	}
	if sub, err := s.finder.FindSubdivision(ctx, chain.SubdivisionID); err == nil {
		names.Subdivision = sub.Name
	}
	if n, err := s.finder.FindNeighborhood(ctx, chain.NeighborhoodID); err == nil {
		names.Neighborhood = n.Name
	}
	return names
}

func parseParentID(raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func isNotFound(err error) bool {
	return errors.Is(err, shared.ErrNotFound)
}
