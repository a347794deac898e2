// Package location holds the four-level location hierarchy used to place listings:
// Region, Division, Subdivision and Neighborhood. Each level references only its
// immediate parent.
package location

import (
	"strings"

	"github.com/homefinder/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Region is the root of the location hierarchy
type Region struct {
	ID   uuid.UUID
	Name string
}

// Division belongs to exactly one Region
type Division struct {
	ID       uuid.UUID
	Name     string
	RegionID uuid.UUID
}

// Subdivision belongs to exactly one Division
type Subdivision struct {
	ID         uuid.UUID
	Name       string
	DivisionID uuid.UUID
}

// Neighborhood belongs to exactly one Subdivision
type Neighborhood struct {
	ID            uuid.UUID
	Name          string
	SubdivisionID uuid.UUID
}

// NewRegion creates a region with a generated ID
func NewRegion(name string) (*Region, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	return &Region{ID: uuid.New(), Name: name}, nil
}

// NewDivision creates a division under regionID
func NewDivision(name string, regionID uuid.UUID) (*Division, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	if regionID == uuid.Nil {
		return nil, shared.NewValidationError("Division must reference a region")
	}
	return &Division{ID: uuid.New(), Name: name, RegionID: regionID}, nil
}

// NewSubdivision creates a subdivision under divisionID
func NewSubdivision(name string, divisionID uuid.UUID) (*Subdivision, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	if divisionID == uuid.Nil {
		return nil, shared.NewValidationError("Subdivision must reference a division")
	}
	return &Subdivision{ID: uuid.New(), Name: name, DivisionID: divisionID}, nil
}

// NewNeighborhood creates a neighborhood under subdivisionID
func NewNeighborhood(name string, subdivisionID uuid.UUID) (*Neighborhood, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	if subdivisionID == uuid.Nil {
		return nil, shared.NewValidationError("Neighborhood must reference a subdivision")
	}
	return &Neighborhood{ID: uuid.New(), Name: name, SubdivisionID: subdivisionID}, nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", shared.NewValidationError("Location name cannot be empty")
	}
	if len(name) > 200 {
		return "", shared.NewValidationError("Location name cannot exceed 200 characters")
	}
	return name, nil
}

// Chain identifies one path through the hierarchy, as chosen for a listing
type Chain struct {
	RegionID       uuid.UUID
	DivisionID     uuid.UUID
	SubdivisionID  uuid.UUID
	NeighborhoodID uuid.UUID
}

// Verify checks that every level of the chain descends from the one above it.
// The caller supplies the resolved entities; nil means the level was not found.
func (c Chain) Verify(div *Division, sub *Subdivision, nb *Neighborhood) error {
	switch {
	case div == nil:
		return shared.NewValidationError("Division not found")
	case div.RegionID != c.RegionID:
		return shared.NewValidationError("Division does not belong to the selected region")
	case sub == nil:
		return shared.NewValidationError("Subdivision not found")
	case sub.DivisionID != c.DivisionID:
		return shared.NewValidationError("Subdivision does not belong to the selected division")
	case nb == nil:
		return shared.NewValidationError("Neighborhood not found")
	case nb.SubdivisionID != c.SubdivisionID:
		return shared.NewValidationError("Neighborhood does not belong to the selected subdivision")
	}
	return nil
}
