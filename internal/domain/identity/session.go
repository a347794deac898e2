package identity

import (
	"slices"

	"github.com/google/uuid"
)

// Session is the authenticated caller of an operation.
// It is built per request from the access token and passed explicitly to services.
type Session struct {
	UserID uuid.UUID
	Email  string
	Roles  []string
}

// HasRole reports whether the session holds the named role
func (s Session) HasRole(name string) bool {
	return slices.Contains(s.Roles, name)
}

// HasAnyRole reports whether the session holds at least one of the roles
func (s Session) HasAnyRole(names ...string) bool {
	for _, n := range names {
		if s.HasRole(n) {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the session holds the admin role
func (s Session) IsAdmin() bool {
	return s.HasRole(RoleAdmin)
}

// CanManage reports whether the session may modify a resource owned by ownerID
func (s Session) CanManage(ownerID uuid.UUID) bool {
	return s.UserID == ownerID || s.IsAdmin()
}
