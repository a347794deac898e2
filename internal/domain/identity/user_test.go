package identity

import (
	"testing"

	"github.com/homefinder/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("normalises email and hashes password", func(t *testing.T) {
		u, err := NewUser("Ada", "  Ada@Example.COM ", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", u.Email)
		assert.NotEqual(t, "secret123", u.PasswordHash)
		assert.True(t, u.VerifyPassword("secret123"))
		assert.False(t, u.VerifyPassword("wrong123"))
		assert.Empty(t, u.Roles)
	})

	tests := []struct {
		name, userName, email, password, code string
	}{
		{"empty name", " ", "a@b.io", "secret123", "INVALID_NAME"},
		{"bad email", "Ada", "not-an-email", "secret123", "INVALID_EMAIL"},
		{"short password", "Ada", "a@b.io", "abc1", "INVALID_PASSWORD"},
		{"password without digit", "Ada", "a@b.io", "abcdefghij", "INVALID_PASSWORD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(tt.userName, tt.email, tt.password)
			require.Error(t, err)
			var de *shared.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.code, de.Code)
		})
	}
}

func TestUser_Roles(t *testing.T) {
	u := &User{Roles: []Role{{ID: uuid.New(), Name: RoleBasic}}}
	assert.True(t, u.HasRole(RoleBasic))
	assert.False(t, u.HasRole(RoleAgent))
	assert.Equal(t, []string{RoleBasic}, u.RoleNames())
}

func TestSession(t *testing.T) {
	owner := uuid.New()
	agent := Session{UserID: owner, Roles: []string{RoleAgent}}
	admin := Session{UserID: uuid.New(), Roles: []string{RoleAdmin}}
	basic := Session{UserID: uuid.New(), Roles: []string{RoleBasic}}

	assert.True(t, agent.HasAnyRole(ListingRoles...))
	assert.True(t, admin.HasAnyRole(ListingRoles...))
	assert.False(t, basic.HasAnyRole(ListingRoles...))

	assert.True(t, agent.CanManage(owner))
	assert.True(t, admin.CanManage(owner))
	assert.False(t, basic.CanManage(owner))
}
