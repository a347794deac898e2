package listing

import (
	"context"

	"github.com/google/uuid"
)

// HouseReader defines read operations for houses
type HouseReader interface {
	// FindByID finds a house by ID with its images loaded
	FindByID(ctx context.Context, id uuid.UUID) (*House, error)
	// Search returns one page of houses matching the filter, newest first, with images loaded
	Search(ctx context.Context, filter SearchFilter) ([]House, error)
	// Count returns the number of houses matching the filter, ignoring pagination
	Count(ctx context.Context, filter SearchFilter) (int64, error)
}

// HouseWriter defines write operations for houses
type HouseWriter interface {
	// FindByIDForUpdate loads a house with its images and locks its row until the transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*House, error)
	// Create inserts the house together with its images
	Create(ctx context.Context, house *House) error
	// Update saves the scalar fields of the house; images are managed by ImageRepository
	Update(ctx context.Context, house *House) error
	// Delete removes the house and its image rows
	Delete(ctx context.Context, id uuid.UUID) error
}

// HouseRepository combines house read and write operations
type HouseRepository interface {
	HouseReader
	HouseWriter
}

// ImageRepository manages the image rows owned by houses
type ImageRepository interface {
	// Attach inserts image rows for a house
	Attach(ctx context.Context, houseID uuid.UUID, images []Image) error
	// Detach deletes the house's image rows with the given public IDs and returns the number removed
	Detach(ctx context.Context, houseID uuid.UUID, publicIDs []string) (int64, error)
	// FindByHouse returns the images of a house, oldest first
	FindByHouse(ctx context.Context, houseID uuid.UUID) ([]Image, error)
	// CountByHouse returns the number of images attached to a house
	CountByHouse(ctx context.Context, houseID uuid.UUID) (int64, error)
}

// HouseTypeRepository provides access to house type reference data
type HouseTypeRepository interface {
	// List returns all house types in insertion order
	List(ctx context.Context) ([]HouseType, error)
	// FindByID finds a house type by ID
	FindByID(ctx context.Context, id uuid.UUID) (*HouseType, error)
	// FindByName finds a house type by its unique name
	FindByName(ctx context.Context, name string) (*HouseType, error)
	// Save inserts a house type
	Save(ctx context.Context, houseType *HouseType) error
}
