package listing

import (
	"context"
	"strings"

	locationapp "github.com/homefinder/backend/internal/application/location"
	"github.com/homefinder/backend/internal/domain/identity"
	"github.com/homefinder/backend/internal/domain/listing"
	"github.com/homefinder/backend/internal/domain/location"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// ============================================================================
// Mocks
// ============================================================================

// MockHouseRepository is a mock implementation of listing.HouseRepository
type MockHouseRepository struct {
	mock.Mock
}

func (m *MockHouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.House, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.House), args.Error(1)
}

func (m *MockHouseRepository) Search(ctx context.Context, filter listing.SearchFilter) ([]listing.House, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]listing.House), args.Error(1)
}

func (m *MockHouseRepository) Count(ctx context.Context, filter listing.SearchFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHouseRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*listing.House, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.House), args.Error(1)
}

func (m *MockHouseRepository) Create(ctx context.Context, house *listing.House) error {
	args := m.Called(ctx, house)
	return args.Error(0)
}

func (m *MockHouseRepository) Update(ctx context.Context, house *listing.House) error {
	args := m.Called(ctx, house)
	return args.Error(0)
}

func (m *MockHouseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockImageRepository is a mock implementation of listing.ImageRepository
type MockImageRepository struct {
	mock.Mock
}

func (m *MockImageRepository) Attach(ctx context.Context, houseID uuid.UUID, images []listing.Image) error {
	args := m.Called(ctx, houseID, images)
	return args.Error(0)
}

func (m *MockImageRepository) Detach(ctx context.Context, houseID uuid.UUID, publicIDs []string) (int64, error) {
	args := m.Called(ctx, houseID, publicIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockImageRepository) FindByHouse(ctx context.Context, houseID uuid.UUID) ([]listing.Image, error) {
	args := m.Called(ctx, houseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]listing.Image), args.Error(1)
}

func (m *MockImageRepository) CountByHouse(ctx context.Context, houseID uuid.UUID) (int64, error) {
	args := m.Called(ctx, houseID)
	return args.Get(0).(int64), args.Error(1)
}

// MockHouseTypeRepository is a mock implementation of listing.HouseTypeRepository
type MockHouseTypeRepository struct {
	mock.Mock
}

func (m *MockHouseTypeRepository) List(ctx context.Context) ([]listing.HouseType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]listing.HouseType), args.Error(1)
}

func (m *MockHouseTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.HouseType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.HouseType), args.Error(1)
}

func (m *MockHouseTypeRepository) FindByName(ctx context.Context, name string) (*listing.HouseType, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.HouseType), args.Error(1)
}

func (m *MockHouseTypeRepository) Save(ctx context.Context, houseType *listing.HouseType) error {
	args := m.Called(ctx, houseType)
	return args.Error(0)
}

// MockImageHost is a mock implementation of ImageHost
type MockImageHost struct {
	mock.Mock
}

func (m *MockImageHost) Upload(ctx context.Context, file ImageFile) (listing.ImageRef, error) {
	args := m.Called(ctx, file)
	return args.Get(0).(listing.ImageRef), args.Error(1)
}

func (m *MockImageHost) Delete(ctx context.Context, publicID string) error {
	args := m.Called(ctx, publicID)
	return args.Error(0)
}

// MockChainResolver is a mock implementation of ChainResolver
type MockChainResolver struct {
	mock.Mock
}

func (m *MockChainResolver) ValidateChain(ctx context.Context, chain location.Chain) error {
	args := m.Called(ctx, chain)
	return args.Error(0)
}

func (m *MockChainResolver) Names(ctx context.Context, chain location.Chain) locationapp.ChainNames {
	args := m.Called(ctx, chain)
	return args.Get(0).(locationapp.ChainNames)
}

// MockAgentReader is a mock implementation of AgentReader
type MockAgentReader struct {
	mock.Mock
}

func (m *MockAgentReader) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

// MockProfileReader is a mock implementation of ProfileReader
type MockProfileReader struct {
	mock.Mock
}

func (m *MockProfileReader) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.ProfessionalProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.ProfessionalProfile), args.Error(1)
}

// fakeTxManager runs fn inline and counts transactions
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

// ============================================================================
// Helpers
// ============================================================================

func agentSession() identity.Session {
	return identity.Session{UserID: uuid.New(), Email: "agent@example.com", Roles: []string{identity.RoleAgent}}
}

func adminSession() identity.Session {
	return identity.Session{UserID: uuid.New(), Email: "admin@example.com", Roles: []string{identity.RoleAdmin}}
}

func basicSession() identity.Session {
	return identity.Session{UserID: uuid.New(), Email: "user@example.com", Roles: []string{identity.RoleBasic}}
}

func testImageFile(name string) ImageFile {
	return ImageFile{
		Filename:    name,
		ContentType: "image/jpeg",
		Size:        int64(len(name)),
		Content:     strings.NewReader(name),
	}
}

func testImageFiles(n int) []ImageFile {
	files := make([]ImageFile, n)
	for i := range files {
		files[i] = testImageFile("photo-" + string(rune('a'+i)) + ".jpg")
	}
	return files
}

func testChain() location.Chain {
	return location.Chain{
		RegionID:       uuid.New(),
		DivisionID:     uuid.New(),
		SubdivisionID:  uuid.New(),
		NeighborhoodID: uuid.New(),
	}
}

func validCreateRequest() CreateListingRequest {
	chain := testChain()
	return CreateListingRequest{
		Title:          "Two bedroom flat",
		Description:    "Close to the market",
		Price:          decimal.NewFromInt(150000),
		Location:       "Behind the central pharmacy",
		Bedrooms:       2,
		Bathrooms:      1,
		HasWell:        true,
		Purpose:        string(listing.PurposeForRent),
		HouseTypeID:    uuid.New(),
		RegionID:       chain.RegionID,
		DivisionID:     chain.DivisionID,
		SubdivisionID:  chain.SubdivisionID,
		NeighborhoodID: chain.NeighborhoodID,
	}
}

// existingHouse builds a stored house owned by agentID with n images
func existingHouse(agentID uuid.UUID, n int) *listing.House {
	req := validCreateRequest()
	h, err := listing.NewHouse(agentID, req.ToInput())
	if err != nil {
		panic(err)
	}
	for i := 0; i < n; i++ {
		img, _ := listing.NewImage(h.ID, listing.ImageRef{
			URL:      "https://cdn.example.com/listings/img-" + string(rune('a'+i)) + ".jpg",
			PublicID: "listings/img-" + string(rune('a'+i)) + ".jpg",
		})
		h.Images = append(h.Images, *img)
	}
	return h
}

func refFor(name string) listing.ImageRef {
	return listing.ImageRef{URL: "https://cdn.example.com/" + name, PublicID: name}
}
