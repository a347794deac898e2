package identity

import (
	"context"
	"time"

	"github.com/homefinder/backend/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockRoleRepository is a mock implementation of identity.RoleRepository
type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) FindByName(ctx context.Context, name string) (*identity.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Role), args.Error(1)
}

func (m *MockRoleRepository) List(ctx context.Context) ([]identity.Role, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Role), args.Error(1)
}

func (m *MockRoleRepository) Save(ctx context.Context, role *identity.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func (m *MockRoleRepository) Assign(ctx context.Context, userID, roleID uuid.UUID) error {
	args := m.Called(ctx, userID, roleID)
	return args.Error(0)
}

func (m *MockRoleRepository) Revoke(ctx context.Context, userID, roleID uuid.UUID) error {
	args := m.Called(ctx, userID, roleID)
	return args.Error(0)
}

func (m *MockRoleRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]identity.Role, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Role), args.Error(1)
}

// MockInviteTokenRepository is a mock implementation of identity.InviteTokenRepository
type MockInviteTokenRepository struct {
	mock.Mock
}

func (m *MockInviteTokenRepository) Create(ctx context.Context, invite *identity.InviteToken) error {
	args := m.Called(ctx, invite)
	return args.Error(0)
}

func (m *MockInviteTokenRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.InviteToken, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.InviteToken), args.Error(1)
}

func (m *MockInviteTokenRepository) FindByToken(ctx context.Context, token string) (*identity.InviteToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.InviteToken), args.Error(1)
}

func (m *MockInviteTokenRepository) ExistsByToken(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockInviteTokenRepository) HasActive(ctx context.Context, email string, roleID uuid.UUID, now time.Time) (bool, error) {
	args := m.Called(ctx, email, roleID, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockInviteTokenRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]identity.InviteToken, error) {
	args := m.Called(ctx, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.InviteToken), args.Error(1)
}

func (m *MockInviteTokenRepository) MarkUsed(ctx context.Context, id uuid.UUID, redeemedAt time.Time) (bool, error) {
	args := m.Called(ctx, id, redeemedAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockInviteTokenRepository) DeleteUnused(ctx context.Context, id, creatorID uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, creatorID)
	return args.Bool(0), args.Error(1)
}

// MockProfileRepository is a mock implementation of identity.ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.ProfessionalProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.ProfessionalProfile), args.Error(1)
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *identity.ProfessionalProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// fakeTxManager runs fn inline and counts transactions
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}
