package location

import (
	"context"

	"github.com/google/uuid"
)

// Reader provides read access to the location hierarchy.
// List methods return an empty slice, not an error, when the parent has no children.
type Reader interface {
	// ListRegions returns all regions in insertion order
	ListRegions(ctx context.Context) ([]Region, error)
	// ListDivisions returns the divisions of a region
	ListDivisions(ctx context.Context, regionID uuid.UUID) ([]Division, error)
	// ListSubdivisions returns the subdivisions of a division
	ListSubdivisions(ctx context.Context, divisionID uuid.UUID) ([]Subdivision, error)
	// ListNeighborhoods returns the neighborhoods of a subdivision
	ListNeighborhoods(ctx context.Context, subdivisionID uuid.UUID) ([]Neighborhood, error)
}

// Finder looks up single nodes of the hierarchy
type Finder interface {
	// FindRegion returns the region by ID
	FindRegion(ctx context.Context, id uuid.UUID) (*Region, error)
	// FindDivision returns the division by ID
	FindDivision(ctx context.Context, id uuid.UUID) (*Division, error)
	// FindSubdivision returns the subdivision by ID
	FindSubdivision(ctx context.Context, id uuid.UUID) (*Subdivision, error)
	// FindNeighborhood returns the neighborhood by ID
	FindNeighborhood(ctx context.Context, id uuid.UUID) (*Neighborhood, error)
}

// Writer persists hierarchy nodes. It is used by reference data seeding only.
type Writer interface {
	// SaveRegion inserts a region
	SaveRegion(ctx context.Context, r *Region) error
	// SaveDivision inserts a division
	SaveDivision(ctx context.Context, d *Division) error
	// SaveSubdivision inserts a subdivision
	SaveSubdivision(ctx context.Context, s *Subdivision) error
	// SaveNeighborhood inserts a neighborhood
	SaveNeighborhood(ctx context.Context, n *Neighborhood) error
}

// Repository combines all location repository interfaces
type Repository interface {
	Reader
	Finder
	Writer
}
