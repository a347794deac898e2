package persistence

import (
	"context"

	"github.com/homefinder/backend/internal/domain/identity"
	"github.com/homefinder/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProfileRepository implements identity.ProfileRepository using GORM
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GormProfileRepository
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// FindByUserID finds the profile of a user
func (r *GormProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.ProfessionalProfile, error) {
	var model models.ProfessionalProfileModel
	if err := TxFromContext(ctx, r.db).First(&model, "user_id = ?", userID).Error; err != nil {
		return nil, translateError(err, "Profile")
	}
	return model.ToDomain(), nil
}

// Create inserts a profile; a second profile for the same user yields ALREADY_EXISTS
func (r *GormProfileRepository) Create(ctx context.Context, profile *identity.ProfessionalProfile) error {
	model := models.ProfessionalProfileModelFromDomain(profile)
	return translateError(TxFromContext(ctx, r.db).Create(model).Error, "Profile")
}

var _ identity.ProfileRepository = (*GormProfileRepository)(nil)
