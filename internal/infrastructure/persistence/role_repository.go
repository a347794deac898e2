package persistence

import (
	"context"

	"github.com/homefinder/backend/internal/domain/identity"
	"github.com/homefinder/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRoleRepository implements identity.RoleRepository using GORM
type GormRoleRepository struct {
	db *gorm.DB
}

// NewGormRoleRepository creates a new GormRoleRepository
func NewGormRoleRepository(db *gorm.DB) *GormRoleRepository {
	return &GormRoleRepository{db: db}
}

// FindByName finds a role by its unique name
func (r *GormRoleRepository) FindByName(ctx context.Context, name string) (*identity.Role, error) {
	var model models.RoleModel
	if err := TxFromContext(ctx, r.db).First(&model, "name = ?", name).Error; err != nil {
		return nil, translateError(err, "Role")
	}
	return model.ToDomain(), nil
}

// List returns all roles ordered by name
func (r *GormRoleRepository) List(ctx context.Context) ([]identity.Role, error) {
	var rows []models.RoleModel
	if err := TxFromContext(ctx, r.db).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	roles := make([]identity.Role, len(rows))
	for i := range rows {
		roles[i] = *rows[i].ToDomain()
	}
	return roles, nil
}

// Save inserts a role
func (r *GormRoleRepository) Save(ctx context.Context, role *identity.Role) error {
	return translateError(TxFromContext(ctx, r.db).Create(models.RoleModelFromDomain(role)).Error, "Role")
}

// Assign gives the role to the user; assigning a held role is a no-op
func (r *GormRoleRepository) Assign(ctx context.Context, userID, roleID uuid.UUID) error {
	row := &models.UserRoleModel{UserID: userID, RoleID: roleID}
	err := TxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row).Error
	return translateError(err, "Role assignment")
}

// Revoke removes the role from the user; revoking an absent role is a no-op
func (r *GormRoleRepository) Revoke(ctx context.Context, userID, roleID uuid.UUID) error {
	return TxFromContext(ctx, r.db).
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Delete(&models.UserRoleModel{}).Error
}

// ListForUser returns the roles held by the user
func (r *GormRoleRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]identity.Role, error) {
	return listRolesForUser(TxFromContext(ctx, r.db), userID)
}

func listRolesForUser(db *gorm.DB, userID uuid.UUID) ([]identity.Role, error) {
	var rows []models.RoleModel
	if err := db.
		Select("roles.*").
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Order("roles.name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	roles := make([]identity.Role, len(rows))
	for i := range rows {
		roles[i] = *rows[i].ToDomain()
	}
	return roles, nil
}

var _ identity.RoleRepository = (*GormRoleRepository)(nil)
