package identity

import (
	"github.com/google/uuid"
)

// Role names
const (
	RoleAdmin = "admin"
	RoleAgent = "agent"
	RoleBasic = "basic"
)

// ListingRoles are the roles allowed to publish listings and issue invites
var ListingRoles = []string{RoleAdmin, RoleAgent}

// Role is a named permission set assigned to users
type Role struct {
	ID          uuid.UUID
	Name        string
	Description string
}

// NewRole creates a role with a generated ID
func NewRole(name, description string) *Role {
	return &Role{ID: uuid.New(), Name: name, Description: description}
}

// IsInvitable reports whether an invite may grant the named role
func IsInvitable(name string) bool {
	return name == RoleAgent || name == RoleAdmin
}
