package persistence

import (
	"context"

	"github.com/homefinder/backend/internal/domain/listing"
	"github.com/homefinder/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormHouseRepository implements listing.HouseRepository using GORM
type GormHouseRepository struct {
	db *gorm.DB
}

// NewGormHouseRepository creates a new GormHouseRepository
func NewGormHouseRepository(db *gorm.DB) *GormHouseRepository {
	return &GormHouseRepository{db: db}
}

// ==================== HouseReader Interface ====================

// FindByID finds a house by ID with its images loaded
func (r *GormHouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.House, error) {
	var m models.HouseModel
	if err := TxFromContext(ctx, r.db).
		Preload("Images").
		First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Listing")
	}
	return m.ToDomain(), nil
}

// Search returns one page of houses matching the filter, newest first
func (r *GormHouseRepository) Search(ctx context.Context, filter listing.SearchFilter) ([]listing.House, error) {
	var rows []models.HouseModel
	if err := TxFromContext(ctx, r.db).
		Scopes(houseFilterScope(filter)).
		Preload("Images").
		Order("created_at DESC, id DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	houses := make([]listing.House, len(rows))
	for i := range rows {
		houses[i] = *rows[i].ToDomain()
	}
	return houses, nil
}

// Count returns the number of houses matching the filter, ignoring pagination
func (r *GormHouseRepository) Count(ctx context.Context, filter listing.SearchFilter) (int64, error) {
	var total int64
	err := TxFromContext(ctx, r.db).
		Model(&models.HouseModel{}).
		Scopes(houseFilterScope(filter)).
		Count(&total).Error
	return total, err
}

// houseFilterScope turns a search filter into a conjunction of WHERE clauses.
// Price bounds are exclusive.
func houseFilterScope(f listing.SearchFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.HouseTypeID != nil {
			db = db.Where("house_type_id = ?", *f.HouseTypeID)
		}
		if f.Purpose != nil {
			db = db.Where("purpose = ?", string(*f.Purpose))
		}
		if f.Status != nil {
			db = db.Where("status = ?", string(*f.Status))
		}
		if f.MinPrice != nil {
			db = db.Where("price > ?", *f.MinPrice)
		}
		if f.MaxPrice != nil {
			db = db.Where("price < ?", *f.MaxPrice)
		}
		if f.RegionID != nil {
			db = db.Where("region_id = ?", *f.RegionID)
		}
		if f.DivisionID != nil {
			db = db.Where("division_id = ?", *f.DivisionID)
		}
		if f.SubdivisionID != nil {
			db = db.Where("subdivision_id = ?", *f.SubdivisionID)
		}
		if f.NeighborhoodID != nil {
			db = db.Where("neighborhood_id = ?", *f.NeighborhoodID)
		}
		if f.AgentID != nil {
			db = db.Where("agent_id = ?", *f.AgentID)
		}
		if f.RequireInternalToilet {
			db = db.Where("has_internal_toilet = ?", true)
		}
		if f.RequireWell {
			db = db.Where("has_well = ?", true)
		}
		if f.RequireBalcony {
			db = db.Where("has_balcony = ?", true)
		}
		if f.RequireParking {
			db = db.Where("has_parking = ?", true)
		}
		if f.RequireFence {
			db = db.Where("has_fence = ?", true)
		}
		return db
	}
}

// ==================== HouseWriter Interface ====================

// FindByIDForUpdate loads a house and takes a row lock held until the ambient
// transaction ends. Concurrent image edits of the same listing are serialized on it.
func (r *GormHouseRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*listing.House, error) {
	var m models.HouseModel
	if err := TxFromContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Images").
		First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Listing")
	}
	return m.ToDomain(), nil
}

// Create inserts the house together with its images.
// Callers that need atomicity run it inside WithinTransaction.
func (r *GormHouseRepository) Create(ctx context.Context, house *listing.House) error {
	db := TxFromContext(ctx, r.db)
	if err := db.Omit(clause.Associations).Create(models.HouseModelFromDomain(house)).Error; err != nil {
		return translateError(err, "Listing")
	}
	if len(house.Images) == 0 {
		return nil
	}

	images := make([]*models.ImageModel, len(house.Images))
	for i := range house.Images {
		images[i] = models.ImageModelFromDomain(&house.Images[i])
	}
	return translateError(db.Create(&images).Error, "Image")
}

// Update saves the scalar fields of the house
func (r *GormHouseRepository) Update(ctx context.Context, house *listing.House) error {
	m := models.HouseModelFromDomain(house)
	result := TxFromContext(ctx, r.db).
		Model(m).
		Select("*").
		Omit("id", "created_at", "agent_id", clause.Associations).
		Updates(m)
	if result.Error != nil {
		return translateError(result.Error, "Listing")
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "Listing")
	}
	return nil
}

// Delete removes the house and its image rows
func (r *GormHouseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := TxFromContext(ctx, r.db)
	if err := db.Where("house_id = ?", id).Delete(&models.ImageModel{}).Error; err != nil {
		return err
	}
	result := db.Delete(&models.HouseModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "Listing")
	}
	return nil
}

var _ listing.HouseRepository = (*GormHouseRepository)(nil)

// GormImageRepository implements listing.ImageRepository using GORM
type GormImageRepository struct {
	db *gorm.DB
}

// NewGormImageRepository creates a new GormImageRepository
func NewGormImageRepository(db *gorm.DB) *GormImageRepository {
	return &GormImageRepository{db: db}
}

// Attach inserts image rows for a house
func (r *GormImageRepository) Attach(ctx context.Context, houseID uuid.UUID, images []listing.Image) error {
	if len(images) == 0 {
		return nil
	}
	rows := make([]*models.ImageModel, len(images))
	for i := range images {
		rows[i] = models.ImageModelFromDomain(&images[i])
		rows[i].HouseID = houseID
	}
	return translateError(TxFromContext(ctx, r.db).Create(&rows).Error, "Image")
}

// Detach deletes the house's image rows with the given public IDs.
// Public IDs owned by other houses are never touched.
func (r *GormImageRepository) Detach(ctx context.Context, houseID uuid.UUID, publicIDs []string) (int64, error) {
	if len(publicIDs) == 0 {
		return 0, nil
	}
	result := TxFromContext(ctx, r.db).
		Where("house_id = ? AND public_id IN ?", houseID, publicIDs).
		Delete(&models.ImageModel{})
	return result.RowsAffected, result.Error
}

// FindByHouse returns the images of a house, oldest first
func (r *GormImageRepository) FindByHouse(ctx context.Context, houseID uuid.UUID) ([]listing.Image, error) {
	var rows []models.ImageModel
	if err := TxFromContext(ctx, r.db).
		Where("house_id = ?", houseID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	images := make([]listing.Image, len(rows))
	for i := range rows {
		images[i] = *rows[i].ToDomain()
	}
	return images, nil
}

// CountByHouse returns the number of images attached to a house
func (r *GormImageRepository) CountByHouse(ctx context.Context, houseID uuid.UUID) (int64, error) {
	var n int64
	err := TxFromContext(ctx, r.db).
		Model(&models.ImageModel{}).
		Where("house_id = ?", houseID).
		Count(&n).Error
	return n, err
}

var _ listing.ImageRepository = (*GormImageRepository)(nil)

// GormHouseTypeRepository implements listing.HouseTypeRepository using GORM
type GormHouseTypeRepository struct {
	db *gorm.DB
}

// NewGormHouseTypeRepository creates a new GormHouseTypeRepository
func NewGormHouseTypeRepository(db *gorm.DB) *GormHouseTypeRepository {
	return &GormHouseTypeRepository{db: db}
}

// List returns all house types in insertion order
func (r *GormHouseTypeRepository) List(ctx context.Context) ([]listing.HouseType, error) {
	var rows []models.HouseTypeModel
	if err := TxFromContext(ctx, r.db).Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	types := make([]listing.HouseType, len(rows))
	for i := range rows {
		types[i] = *rows[i].ToDomain()
	}
	return types, nil
}

// FindByID finds a house type by ID
func (r *GormHouseTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.HouseType, error) {
	var m models.HouseTypeModel
	if err := TxFromContext(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "House type")
	}
	return m.ToDomain(), nil
}

// FindByName finds a house type by its unique name
func (r *GormHouseTypeRepository) FindByName(ctx context.Context, name string) (*listing.HouseType, error) {
	var m models.HouseTypeModel
	if err := TxFromContext(ctx, r.db).First(&m, "name = ?", name).Error; err != nil {
		return nil, translateError(err, "House type")
	}
	return m.ToDomain(), nil
}

// Save inserts a house type
func (r *GormHouseTypeRepository) Save(ctx context.Context, t *listing.HouseType) error {
	return translateError(TxFromContext(ctx, r.db).Create(models.HouseTypeModelFromDomain(t)).Error, "House type")
}

var _ listing.HouseTypeRepository = (*GormHouseTypeRepository)(nil)
