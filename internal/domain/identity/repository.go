package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserRepository persists users
type UserRepository interface {
	// FindByID finds a user by ID with roles loaded
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	// FindByEmail finds a user by normalised email with roles loaded
	FindByEmail(ctx context.Context, email string) (*User, error)
	// ExistsByEmail checks whether an account uses the email
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Count returns the number of registered users
	Count(ctx context.Context) (int64, error)
	// Create inserts a user
	Create(ctx context.Context, user *User) error
}

// RoleRepository persists roles and user-role assignments
type RoleRepository interface {
	// FindByName finds a role by its unique name
	FindByName(ctx context.Context, name string) (*Role, error)
	// List returns all roles
	List(ctx context.Context) ([]Role, error)
	// Save inserts a role
	Save(ctx context.Context, role *Role) error
	// Assign gives the role to the user; assigning a held role is a no-op
	Assign(ctx context.Context, userID, roleID uuid.UUID) error
	// Revoke removes the role from the user; revoking an absent role is a no-op
	Revoke(ctx context.Context, userID, roleID uuid.UUID) error
	// ListForUser returns the roles held by the user
	ListForUser(ctx context.Context, userID uuid.UUID) ([]Role, error)
}

// InviteTokenRepository persists invite tokens
type InviteTokenRepository interface {
	// Create inserts an invite
	Create(ctx context.Context, invite *InviteToken) error
	// FindByID finds an invite by ID
	FindByID(ctx context.Context, id uuid.UUID) (*InviteToken, error)
	// FindByToken finds an invite by its opaque token
	FindByToken(ctx context.Context, token string) (*InviteToken, error)
	// ExistsByToken checks whether the token value is already taken
	ExistsByToken(ctx context.Context, token string) (bool, error)
	// HasActive checks for an unused, unexpired invite for the email and role
	HasActive(ctx context.Context, email string, roleID uuid.UUID, now time.Time) (bool, error)
	// ListByCreator returns the invites issued by creatorID, newest first
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]InviteToken, error)
	// MarkUsed flips an unused invite to used; returns false if it was already used
	MarkUsed(ctx context.Context, id uuid.UUID, redeemedAt time.Time) (bool, error)
	// DeleteUnused deletes the invite if it is still unused and was created by creatorID
	DeleteUnused(ctx context.Context, id, creatorID uuid.UUID) (bool, error)
}

// ProfileRepository persists professional profiles
type ProfileRepository interface {
	// FindByUserID finds the profile of a user
	FindByUserID(ctx context.Context, userID uuid.UUID) (*ProfessionalProfile, error)
	// Create inserts a profile
	Create(ctx context.Context, profile *ProfessionalProfile) error
}
