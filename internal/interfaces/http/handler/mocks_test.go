package handler

import (
	"context"

	appidentity "github.com/homefinder/backend/internal/application/identity"
	listingapp "github.com/homefinder/backend/internal/application/listing"
	locationapp "github.com/homefinder/backend/internal/application/location"
	"github.com/homefinder/backend/internal/domain/identity"
	"github.com/homefinder/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(ctx context.Context, req appidentity.RegisterRequest) (*appidentity.AuthResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appidentity.AuthResult), args.Error(1)
}

func (m *MockAuthUseCase) Login(ctx context.Context, req appidentity.LoginRequest) (*appidentity.AuthResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appidentity.AuthResult), args.Error(1)
}

func (m *MockAuthUseCase) Refresh(ctx context.Context, req appidentity.RefreshRequest) (*appidentity.AuthResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appidentity.AuthResult), args.Error(1)
}

func (m *MockAuthUseCase) Logout(ctx context.Context, access *auth.Claims, req appidentity.LogoutRequest) error {
	return m.Called(ctx, access, req).Error(0)
}

func (m *MockAuthUseCase) Me(ctx context.Context, session identity.Session) (*appidentity.UserInfo, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appidentity.UserInfo), args.Error(1)
}

type MockLocationUseCase struct {
	mock.Mock
}

func (m *MockLocationUseCase) ListRegions(ctx context.Context) ([]locationapp.RegionResponse, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]locationapp.RegionResponse)
	return items, args.Error(1)
}

func (m *MockLocationUseCase) ListDivisions(ctx context.Context, rawRegionID string) ([]locationapp.DivisionResponse, error) {
	args := m.Called(ctx, rawRegionID)
	items, _ := args.Get(0).([]locationapp.DivisionResponse)
	return items, args.Error(1)
}

func (m *MockLocationUseCase) ListSubdivisions(ctx context.Context, rawDivisionID string) ([]locationapp.SubdivisionResponse, error) {
	args := m.Called(ctx, rawDivisionID)
	items, _ := args.Get(0).([]locationapp.SubdivisionResponse)
	return items, args.Error(1)
}

func (m *MockLocationUseCase) ListNeighborhoods(ctx context.Context, rawSubdivisionID string) ([]locationapp.NeighborhoodResponse, error) {
	args := m.Called(ctx, rawSubdivisionID)
	items, _ := args.Get(0).([]locationapp.NeighborhoodResponse)
	return items, args.Error(1)
}

func (m *MockLocationUseCase) ListHouseTypes(ctx context.Context) ([]locationapp.HouseTypeResponse, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]locationapp.HouseTypeResponse)
	return items, args.Error(1)
}

type MockListingQueries struct {
	mock.Mock
}

func (m *MockListingQueries) Search(ctx context.Context, params map[string]string) (*listingapp.SearchResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listingapp.SearchResult), args.Error(1)
}

func (m *MockListingQueries) ListMine(ctx context.Context, session identity.Session, page, limit int) (*listingapp.SearchResult, error) {
	args := m.Called(ctx, session, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listingapp.SearchResult), args.Error(1)
}

func (m *MockListingQueries) GetDetails(ctx context.Context, id uuid.UUID) (*listingapp.ListingDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listingapp.ListingDetails), args.Error(1)
}

type MockListingCommands struct {
	mock.Mock
}

func (m *MockListingCommands) Create(ctx context.Context, session identity.Session, req listingapp.CreateListingRequest, files []listingapp.ImageFile) (*listingapp.ListingCreatedResponse, error) {
	args := m.Called(ctx, session, req, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listingapp.ListingCreatedResponse), args.Error(1)
}

func (m *MockListingCommands) Update(ctx context.Context, session identity.Session, id uuid.UUID, req listingapp.UpdateListingRequest, files []listingapp.ImageFile) (*listingapp.ListingDetails, error) {
	args := m.Called(ctx, session, id, req, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listingapp.ListingDetails), args.Error(1)
}

func (m *MockListingCommands) Delete(ctx context.Context, session identity.Session, id uuid.UUID) error {
	return m.Called(ctx, session, id).Error(0)
}

func (m *MockListingCommands) ChangeStatus(ctx context.Context, session identity.Session, id uuid.UUID, status string) (*listingapp.ListingSummary, error) {
	args := m.Called(ctx, session, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listingapp.ListingSummary), args.Error(1)
}

func (m *MockListingCommands) GetForEdit(ctx context.Context, session identity.Session, id uuid.UUID) (*listingapp.ListingDetails, error) {
	args := m.Called(ctx, session, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listingapp.ListingDetails), args.Error(1)
}

type MockInviteUseCase struct {
	mock.Mock
}

func (m *MockInviteUseCase) Issue(ctx context.Context, session identity.Session, req appidentity.IssueInviteRequest) (*appidentity.InviteResponse, error) {
	args := m.Called(ctx, session, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appidentity.InviteResponse), args.Error(1)
}

func (m *MockInviteUseCase) ListMine(ctx context.Context, session identity.Session) ([]appidentity.InviteResponse, error) {
	args := m.Called(ctx, session)
	items, _ := args.Get(0).([]appidentity.InviteResponse)
	return items, args.Error(1)
}

func (m *MockInviteUseCase) Verify(ctx context.Context, session identity.Session, token string) (*appidentity.VerifyInviteResponse, error) {
	args := m.Called(ctx, session, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appidentity.VerifyInviteResponse), args.Error(1)
}

func (m *MockInviteUseCase) Redeem(ctx context.Context, session identity.Session, req appidentity.RedeemInviteRequest) (*appidentity.RedeemInviteResponse, error) {
	args := m.Called(ctx, session, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appidentity.RedeemInviteResponse), args.Error(1)
}

func (m *MockInviteUseCase) Delete(ctx context.Context, session identity.Session, inviteID uuid.UUID) error {
	return m.Called(ctx, session, inviteID).Error(0)
}
