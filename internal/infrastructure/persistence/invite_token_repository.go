package persistence

import (
	"context"
	"time"

	"github.com/homefinder/backend/internal/domain/identity"
	"github.com/homefinder/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInviteTokenRepository implements identity.InviteTokenRepository using GORM
type GormInviteTokenRepository struct {
	db *gorm.DB
}

// NewGormInviteTokenRepository creates a new GormInviteTokenRepository
func NewGormInviteTokenRepository(db *gorm.DB) *GormInviteTokenRepository {
	return &GormInviteTokenRepository{db: db}
}

// Create inserts an invite
func (r *GormInviteTokenRepository) Create(ctx context.Context, invite *identity.InviteToken) error {
	model := models.InviteTokenModelFromDomain(invite)
	return translateError(TxFromContext(ctx, r.db).Omit("Role").Create(model).Error, "Invite")
}

// FindByID finds an invite by ID with its role loaded
func (r *GormInviteTokenRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.InviteToken, error) {
	var model models.InviteTokenModel
	if err := TxFromContext(ctx, r.db).Preload("Role").First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Invite")
	}
	return model.ToDomain(), nil
}

// FindByToken finds an invite by its opaque token with its role loaded
func (r *GormInviteTokenRepository) FindByToken(ctx context.Context, token string) (*identity.InviteToken, error) {
	var model models.InviteTokenModel
	if err := TxFromContext(ctx, r.db).Preload("Role").First(&model, "token = ?", token).Error; err != nil {
		return nil, translateError(err, "Invite")
	}
	return model.ToDomain(), nil
}

// ExistsByToken checks whether the token value is already taken
func (r *GormInviteTokenRepository) ExistsByToken(ctx context.Context, token string) (bool, error) {
	var count int64
	err := TxFromContext(ctx, r.db).
		Model(&models.InviteTokenModel{}).
		Where("token = ?", token).
		Count(&count).Error
	return count > 0, err
}

// HasActive checks for an unused, unexpired invite for the email and role
func (r *GormInviteTokenRepository) HasActive(ctx context.Context, email string, roleID uuid.UUID, now time.Time) (bool, error) {
	var count int64
	err := TxFromContext(ctx, r.db).
		Model(&models.InviteTokenModel{}).
		Where("invited_email = ? AND role_id = ? AND used = ? AND expires_at > ?",
			identity.NormalizeEmail(email), roleID, false, now).
		Count(&count).Error
	return count > 0, err
}

// ListByCreator returns the invites issued by creatorID, newest first
func (r *GormInviteTokenRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]identity.InviteToken, error) {
	var rows []models.InviteTokenModel
	if err := TxFromContext(ctx, r.db).
		Preload("Role").
		Where("created_by = ?", creatorID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	invites := make([]identity.InviteToken, len(rows))
	for i := range rows {
		invites[i] = *rows[i].ToDomain()
	}
	return invites, nil
}

// MarkUsed flips an unused invite to used with a conditional update.
// It returns false when the invite was already used, so of two concurrent
// redemptions exactly one succeeds.
func (r *GormInviteTokenRepository) MarkUsed(ctx context.Context, id uuid.UUID, redeemedAt time.Time) (bool, error) {
	result := TxFromContext(ctx, r.db).
		Model(&models.InviteTokenModel{}).
		Where("id = ? AND used = ?", id, false).
		Updates(map[string]any{"used": true, "redeemed_at": redeemedAt})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// DeleteUnused deletes the invite if it is still unused and was created by creatorID
func (r *GormInviteTokenRepository) DeleteUnused(ctx context.Context, id, creatorID uuid.UUID) (bool, error) {
	result := TxFromContext(ctx, r.db).
		Where("id = ? AND created_by = ? AND used = ?", id, creatorID, false).
		Delete(&models.InviteTokenModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

var _ identity.InviteTokenRepository = (*GormInviteTokenRepository)(nil)
