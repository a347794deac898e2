package persistence

import (
	"context"

	"github.com/homefinder/backend/internal/domain/identity"
	"github.com/homefinder/backend/internal/domain/shared"
	"github.com/homefinder/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts a user. A taken email yields ALREADY_EXISTS.
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	return translateError(TxFromContext(ctx, r.db).Create(model).Error, "User")
}

// FindByID finds a user by ID with roles loaded
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := TxFromContext(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "User")
	}
	return r.withRoles(ctx, &model)
}

// FindByEmail finds a user by normalised email with roles loaded
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	email = identity.NormalizeEmail(email)
	if email == "" {
		return nil, shared.NewNotFoundError("User")
	}
	var model models.UserModel
	if err := TxFromContext(ctx, r.db).Where("email = ?", email).First(&model).Error; err != nil {
		return nil, translateError(err, "User")
	}
	return r.withRoles(ctx, &model)
}

// ExistsByEmail checks whether an account uses the email
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := TxFromContext(ctx, r.db).
		Model(&models.UserModel{}).
		Where("email = ?", identity.NormalizeEmail(email)).
		Count(&count).Error
	return count > 0, err
}

// Count returns the number of registered users
func (r *GormUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := TxFromContext(ctx, r.db).Model(&models.UserModel{}).Count(&count).Error
	return count, err
}

func (r *GormUserRepository) withRoles(ctx context.Context, model *models.UserModel) (*identity.User, error) {
	roles, err := listRolesForUser(TxFromContext(ctx, r.db), model.ID)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(roles), nil
}

var _ identity.UserRepository = (*GormUserRepository)(nil)
