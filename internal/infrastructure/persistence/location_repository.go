package persistence

import (
	"context"

	"github.com/homefinder/backend/internal/domain/location"
	"github.com/homefinder/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLocationRepository implements location.Repository using GORM
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GormLocationRepository
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// ==================== Reader Interface ====================

// ListRegions returns all regions in insertion order
func (r *GormLocationRepository) ListRegions(ctx context.Context) ([]location.Region, error) {
	var rows []models.RegionModel
	if err := TxFromContext(ctx, r.db).Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]location.Region, len(rows))
	for i := range rows {
		result[i] = *rows[i].ToDomain()
	}
	return result, nil
}

// ListDivisions returns the divisions of a region
func (r *GormLocationRepository) ListDivisions(ctx context.Context, regionID uuid.UUID) ([]location.Division, error) {
	var rows []models.DivisionModel
	if err := TxFromContext(ctx, r.db).
		Where("region_id = ?", regionID).
		Order("seq ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]location.Division, len(rows))
	for i := range rows {
		result[i] = *rows[i].ToDomain()
	}
	return result, nil
}

// ListSubdivisions returns the subdivisions of a division
func (r *GormLocationRepository) ListSubdivisions(ctx context.Context, divisionID uuid.UUID) ([]location.Subdivision, error) {
	var rows []models.SubdivisionModel
	if err := TxFromContext(ctx, r.db).
		Where("division_id = ?", divisionID).
		Order("seq ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]location.Subdivision, len(rows))
	for i := range rows {
		result[i] = *rows[i].ToDomain()
	}
	return result, nil
}

// ListNeighborhoods returns the neighborhoods of a subdivision
func (r *GormLocationRepository) ListNeighborhoods(ctx context.Context, subdivisionID uuid.UUID) ([]location.Neighborhood, error) {
	var rows []models.NeighborhoodModel
	if err := TxFromContext(ctx, r.db).
		Where("subdivision_id = ?", subdivisionID).
		Order("seq ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]location.Neighborhood, len(rows))
	for i := range rows {
		result[i] = *rows[i].ToDomain()
	}
	return result, nil
}

// ==================== Finder Interface ====================

// FindRegion returns the region by ID
func (r *GormLocationRepository) FindRegion(ctx context.Context, id uuid.UUID) (*location.Region, error) {
	var m models.RegionModel
	if err := TxFromContext(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Region")
	}
	return m.ToDomain(), nil
}

// FindDivision returns the division by ID
func (r *GormLocationRepository) FindDivision(ctx context.Context, id uuid.UUID) (*location.Division, error) {
	var m models.DivisionModel
	if err := TxFromContext(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Division")
	}
	return m.ToDomain(), nil
}

// FindSubdivision returns the subdivision by ID
func (r *GormLocationRepository) FindSubdivision(ctx context.Context, id uuid.UUID) (*location.Subdivision, error) {
	var m models.SubdivisionModel
	if err := TxFromContext(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Subdivision")
	}
	return m.ToDomain(), nil
}

// FindNeighborhood returns the neighborhood by ID
func (r *GormLocationRepository) FindNeighborhood(ctx context.Context, id uuid.UUID) (*location.Neighborhood, error) {
	var m models.NeighborhoodModel
	if err := TxFromContext(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Neighborhood")
	}
	return m.ToDomain(), nil
}

// ==================== Writer Interface ====================

// SaveRegion inserts a region
func (r *GormLocationRepository) SaveRegion(ctx context.Context, region *location.Region) error {
	return translateError(TxFromContext(ctx, r.db).Create(models.RegionModelFromDomain(region)).Error, "Region")
}

// SaveDivision inserts a division
func (r *GormLocationRepository) SaveDivision(ctx context.Context, d *location.Division) error {
	return translateError(TxFromContext(ctx, r.db).Create(models.DivisionModelFromDomain(d)).Error, "Division")
}

// SaveSubdivision inserts a subdivision
func (r *GormLocationRepository) SaveSubdivision(ctx context.Context, s *location.Subdivision) error {
	return translateError(TxFromContext(ctx, r.db).Create(models.SubdivisionModelFromDomain(s)).Error, "Subdivision")
}

// SaveNeighborhood inserts a neighborhood
func (r *GormLocationRepository) SaveNeighborhood(ctx context.Context, n *location.Neighborhood) error {
	return translateError(TxFromContext(ctx, r.db).Create(models.NeighborhoodModelFromDomain(n)).Error, "Neighborhood")
}

var _ location.Repository = (*GormLocationRepository)(nil)
