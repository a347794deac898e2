package models

import (
	"time"

	"github.com/homefinder/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// UserModel is the persistence model for a user account
type UserModel struct {
	BaseModel
	Name          string `gorm:"type:varchar(100);not null"`
	Email         string `gorm:"type:varchar(255);not null;uniqueIndex"`
	EmailVerified bool   `gorm:"not null;default:false"`
	Image         string `gorm:"type:text"`
	PasswordHash  string `gorm:"type:varchar(255);not null"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the model to a domain User with the given roles
func (m *UserModel) ToDomain(roles []identity.Role) *identity.User {
	if roles == nil {
		roles = make([]identity.Role, 0)
	}
	return &identity.User{
		BaseEntity:    m.BaseModel.ToDomain(),
		Name:          m.Name,
		Email:         m.Email,
		EmailVerified: m.EmailVerified,
		Image:         m.Image,
		PasswordHash:  m.PasswordHash,
		Roles:         roles,
	}
}

// UserModelFromDomain creates a model from a domain User
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Name:          u.Name,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		Image:         u.Image,
		PasswordHash:  u.PasswordHash,
	}
	m.FromDomainBaseEntity(u.BaseEntity)
	return m
}

// RoleModel is the persistence model for a role
type RoleModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime"`
}

// TableName returns the table name for GORM
func (RoleModel) TableName() string {
	return "roles"
}

// ToDomain converts the model to a domain Role
func (m *RoleModel) ToDomain() *identity.Role {
	return &identity.Role{ID: m.ID, Name: m.Name, Description: m.Description}
}

// RoleModelFromDomain creates a model from a domain Role
func RoleModelFromDomain(r *identity.Role) *RoleModel {
	return &RoleModel{ID: r.ID, Name: r.Name, Description: r.Description}
}

// UserRoleModel is the user-role join row.
// The composite primary key makes an assignment unique per user and role.
type UserRoleModel struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoleID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
}

// TableName returns the table name for GORM
func (UserRoleModel) TableName() string {
	return "user_roles"
}

// InviteTokenModel is the persistence model for an invite token
type InviteTokenModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Token        string     `gorm:"type:varchar(128);not null;uniqueIndex"`
	CreatedBy    uuid.UUID  `gorm:"type:uuid;not null;index"`
	InvitedEmail string     `gorm:"type:varchar(255);not null;index"`
	RoleID       uuid.UUID  `gorm:"type:uuid;not null"`
	Role         RoleModel  `gorm:"foreignKey:RoleID"`
	Used         bool       `gorm:"not null;default:false;index"`
	RedeemedAt   *time.Time
	ExpiresAt    time.Time  `gorm:"not null;index"`
	CreatedAt    time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InviteTokenModel) TableName() string {
	return "invite_tokens"
}

// ToDomain converts the model to a domain InviteToken.
// The role name is only set when the Role association was loaded.
func (m *InviteTokenModel) ToDomain() *identity.InviteToken {
	return &identity.InviteToken{
		ID:           m.ID,
		Token:        m.Token,
		CreatedBy:    m.CreatedBy,
		InvitedEmail: m.InvitedEmail,
		RoleID:       m.RoleID,
		Role:         m.Role.Name,
		Used:         m.Used,
		RedeemedAt:   m.RedeemedAt,
		ExpiresAt:    m.ExpiresAt,
		CreatedAt:    m.CreatedAt,
	}
}

// InviteTokenModelFromDomain creates a model from a domain InviteToken
func InviteTokenModelFromDomain(t *identity.InviteToken) *InviteTokenModel {
	return &InviteTokenModel{
		ID:           t.ID,
		Token:        t.Token,
		CreatedBy:    t.CreatedBy,
		InvitedEmail: t.InvitedEmail,
		RoleID:       t.RoleID,
		Used:         t.Used,
		RedeemedAt:   t.RedeemedAt,
		ExpiresAt:    t.ExpiresAt,
		CreatedAt:    t.CreatedAt,
	}
}

// ProfessionalProfileModel is the persistence model for a professional profile
type ProfessionalProfileModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Phone        string    `gorm:"type:varchar(30);not null"`
	WhatsApp     string    `gorm:"column:whatsapp;type:varchar(30)"`
	Email        string    `gorm:"type:varchar(255);not null"`
	Address      string    `gorm:"type:text;not null"`
	BusinessName string    `gorm:"type:varchar(200)"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProfessionalProfileModel) TableName() string {
	return "professional_profiles"
}

// ToDomain converts the model to a domain ProfessionalProfile
func (m *ProfessionalProfileModel) ToDomain() *identity.ProfessionalProfile {
	return &identity.ProfessionalProfile{
		ID:           m.ID,
		UserID:       m.UserID,
		Phone:        m.Phone,
		WhatsApp:     m.WhatsApp,
		Email:        m.Email,
		Address:      m.Address,
		BusinessName: m.BusinessName,
		CreatedAt:    m.CreatedAt,
	}
}

// ProfessionalProfileModelFromDomain creates a model from a domain ProfessionalProfile
func ProfessionalProfileModelFromDomain(p *identity.ProfessionalProfile) *ProfessionalProfileModel {
	return &ProfessionalProfileModel{
		ID:           p.ID,
		UserID:       p.UserID,
		Phone:        p.Phone,
		WhatsApp:     p.WhatsApp,
		Email:        p.Email,
		Address:      p.Address,
		BusinessName: p.BusinessName,
		CreatedAt:    p.CreatedAt,
	}
}

// AllModels lists every model in dependency order, for AutoMigrate in tests
func AllModels() []any {
	return []any{
		&RegionModel{}, &DivisionModel{}, &SubdivisionModel{}, &NeighborhoodModel{},
		&HouseTypeModel{}, &UserModel{}, &RoleModel{}, &UserRoleModel{},
		&HouseModel{}, &ImageModel{},
		&InviteTokenModel{}, &ProfessionalProfileModel{},
	}
}
