package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/homefinder/backend/internal/domain/listing"
	"github.com/homefinder/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type houseFixture struct {
	db        *gorm.DB
	houses    *GormHouseRepository
	images    *GormImageRepository
	types     *GormHouseTypeRepository
	houseType *listing.HouseType
	agentID   uuid.UUID
}

func newHouseFixture(t *testing.T) *houseFixture {
	t.Helper()
	db := setupTestDB(t)
	f := &houseFixture{
		db:      db,
		houses:  NewGormHouseRepository(db),
		images:  NewGormImageRepository(db),
		types:   NewGormHouseTypeRepository(db),
		agentID: uuid.New(),
	}
	ht, err := listing.NewHouseType("Apartment", "Self-contained flat")
	require.NoError(t, err)
	require.NoError(t, f.types.Save(context.Background(), ht))
	f.houseType = ht
	return f
}

func TestGormHouseRepository_CreateAndFind(t *testing.T) {
	f := newHouseFixture(t)
	ctx := context.Background()
	place := seedPlace(t, NewGormLocationRepository(f.db))

	house := newTestHouse(t, f.agentID, f.houseType.ID, place, 150000, 3)
	house.HasWell = true
	require.NoError(t, f.houses.Create(ctx, house))

	got, err := f.houses.FindByID(ctx, house.ID)
	require.NoError(t, err)
	assert.Equal(t, "Modern villa", got.Title)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(150000)))
	assert.True(t, got.HasWell)
	assert.Equal(t, place, got.Place)
	assert.Equal(t, listing.StatusAvailable, got.Status)
	assert.Len(t, got.Images, 3)
	assert.Equal(t, house.FirstImageURL(), got.FirstImageURL())
}

func TestGormHouseRepository_FindByID_NotFound(t *testing.T) {
	f := newHouseFixture(t)

	_, err := f.houses.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormHouseRepository_SearchFilters(t *testing.T) {
	f := newHouseFixture(t)
	ctx := context.Background()
	place := seedPlace(t, NewGormLocationRepository(f.db))
	otherPlace := seedPlace(t, NewGormLocationRepository(f.db))

	cheap := newTestHouse(t, f.agentID, f.houseType.ID, place, 100, 1)
	mid := newTestHouse(t, f.agentID, f.houseType.ID, place, 200, 1)
	mid.HasParking = true
	mid.Purpose = listing.PurposeForSale
	pricey := newTestHouse(t, uuid.New(), f.houseType.ID, otherPlace, 300, 1)
	pricey.HasParking = true

	for _, h := range []*listing.House{cheap, mid, pricey} {
		require.NoError(t, f.houses.Create(ctx, h))
	}

	dec := func(v int64) *decimal.Decimal {
		d := decimal.NewFromInt(v)
		return &d
	}
	forSale := listing.PurposeForSale

	tests := []struct {
		name   string
		filter listing.SearchFilter
		want   []uuid.UUID
	}{
		{"no filter", listing.SearchFilter{}, []uuid.UUID{cheap.ID, mid.ID, pricey.ID}},
		{"price bounds are exclusive", listing.SearchFilter{MinPrice: dec(100), MaxPrice: dec(300)}, []uuid.UUID{mid.ID}},
		{"parking flag", listing.SearchFilter{RequireParking: true}, []uuid.UUID{mid.ID, pricey.ID}},
		{"purpose", listing.SearchFilter{Purpose: &forSale}, []uuid.UUID{mid.ID}},
		{"region", listing.SearchFilter{RegionID: &otherPlace.RegionID}, []uuid.UUID{pricey.ID}},
		{"neighborhood", listing.SearchFilter{NeighborhoodID: &place.NeighborhoodID}, []uuid.UUID{cheap.ID, mid.ID}},
		{"agent", listing.SearchFilter{AgentID: &f.agentID}, []uuid.UUID{cheap.ID, mid.ID}},
		{"conjunction", listing.SearchFilter{RequireParking: true, RegionID: &place.RegionID}, []uuid.UUID{mid.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := tt.filter.WithPaging(1, listing.MaxLimit)

			houses, err := f.houses.Search(ctx, filter)
			require.NoError(t, err)
			ids := make([]uuid.UUID, len(houses))
			for i, h := range houses {
				ids[i] = h.ID
			}
			assert.ElementsMatch(t, tt.want, ids)

			total, err := f.houses.Count(ctx, filter)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.want)), total)
		})
	}
}

func TestGormHouseRepository_SearchPagination(t *testing.T) {
	f := newHouseFixture(t)
	ctx := context.Background()
	place := seedPlace(t, NewGormLocationRepository(f.db))

	base := time.Now().Add(-time.Hour)
	var created []*listing.House
	for i := 0; i < 5; i++ {
		h := newTestHouse(t, f.agentID, f.houseType.ID, place, int64(100+i), 1)
		h.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		h.UpdatedAt = h.CreatedAt
		require.NoError(t, f.houses.Create(ctx, h))
		created = append(created, h)
	}

	page1, err := f.houses.Search(ctx, listing.SearchFilter{}.WithPaging(1, 2))
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, created[4].ID, page1[0].ID, "newest first")
	assert.Equal(t, created[3].ID, page1[1].ID)

	page3, err := f.houses.Search(ctx, listing.SearchFilter{}.WithPaging(3, 2))
	require.NoError(t, err)
	require.Len(t, page3, 1)
	assert.Equal(t, created[0].ID, page3[0].ID)

	beyond, err := f.houses.Search(ctx, listing.SearchFilter{}.WithPaging(9, 2))
	require.NoError(t, err)
	assert.Empty(t, beyond)

	total, err := f.houses.Count(ctx, listing.SearchFilter{}.WithPaging(9, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
}

func TestGormHouseRepository_Update(t *testing.T) {
	f := newHouseFixture(t)
	ctx := context.Background()
	place := seedPlace(t, NewGormLocationRepository(f.db))

	house := newTestHouse(t, f.agentID, f.houseType.ID, place, 500, 1)
	require.NoError(t, f.houses.Create(ctx, house))

	title := "Renovated villa"
	noWell := false
	require.NoError(t, house.Apply(listing.HousePatch{Title: &title, HasWell: &noWell}))
	require.NoError(t, house.ChangeStatus(listing.StatusRented))
	require.NoError(t, f.houses.Update(ctx, house))

	got, err := f.houses.FindByID(ctx, house.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renovated villa", got.Title)
	assert.Equal(t, listing.StatusRented, got.Status)
	assert.False(t, got.HasWell)
	assert.Len(t, got.Images, 1, "images are untouched by Update")
}

func TestGormHouseRepository_Delete(t *testing.T) {
	f := newHouseFixture(t)
	ctx := context.Background()
	place := seedPlace(t, NewGormLocationRepository(f.db))

	house := newTestHouse(t, f.agentID, f.houseType.ID, place, 500, 2)
	require.NoError(t, f.houses.Create(ctx, house))

	require.NoError(t, f.houses.Delete(ctx, house.ID))

	_, err := f.houses.FindByID(ctx, house.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	n, err := f.images.CountByHouse(ctx, house.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.ErrorIs(t, f.houses.Delete(ctx, house.ID), shared.ErrNotFound)
}

func TestGormImageRepository_AttachDetach(t *testing.T) {
	f := newHouseFixture(t)
	ctx := context.Background()
	place := seedPlace(t, NewGormLocationRepository(f.db))

	mine := newTestHouse(t, f.agentID, f.houseType.ID, place, 500, 1)
	theirs := newTestHouse(t, uuid.New(), f.houseType.ID, place, 600, 1)
	require.NoError(t, f.houses.Create(ctx, mine))
	require.NoError(t, f.houses.Create(ctx, theirs))

	extra := newTestHouse(t, f.agentID, f.houseType.ID, place, 1, 2).Images
	require.NoError(t, f.images.Attach(ctx, mine.ID, extra))

	n, err := f.images.CountByHouse(ctx, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	// a public ID owned by another house is never removed
	removed, err := f.images.Detach(ctx, mine.ID, []string{extra[0].PublicID, theirs.Images[0].PublicID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	theirCount, err := f.images.CountByHouse(ctx, theirs.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), theirCount)

	imgs, err := f.images.FindByHouse(ctx, mine.ID)
	require.NoError(t, err)
	assert.Len(t, imgs, 2)
}

func TestGormHouseTypeRepository(t *testing.T) {
	f := newHouseFixture(t)
	ctx := context.Background()

	studio, err := listing.NewHouseType("Studio", "")
	require.NoError(t, err)
	require.NoError(t, f.types.Save(ctx, studio))

	types, err := f.types.List(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 2)

	got, err := f.types.FindByName(ctx, "Studio")
	require.NoError(t, err)
	assert.Equal(t, studio.ID, got.ID)

	_, err = f.types.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	dup, err := listing.NewHouseType("Studio", "")
	require.NoError(t, err)
	assert.ErrorIs(t, f.types.Save(ctx, dup), shared.ErrAlreadyExists)
}

func TestGormHouseRepository_CreateInTransactionRollsBack(t *testing.T) {
	f := newHouseFixture(t)
	ctx := context.Background()
	place := seedPlace(t, NewGormLocationRepository(f.db))
	database := &Database{DB: f.db}

	house := newTestHouse(t, f.agentID, f.houseType.ID, place, 500, 1)
	err := database.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := f.houses.Create(txCtx, house); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	_, err = f.houses.FindByID(ctx, house.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	n, err := f.images.CountByHouse(ctx, house.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestGormHouseRepository_FindByIDForUpdate(t *testing.T) {
	f := newHouseFixture(t)
	ctx := context.Background()
	place := seedPlace(t, NewGormLocationRepository(f.db))
	database := &Database{DB: f.db}

	house := newTestHouse(t, f.agentID, f.houseType.ID, place, 900, 2)
	require.NoError(t, f.houses.Create(ctx, house))

	err := database.WithinTransaction(ctx, func(txCtx context.Context) error {
		got, err := f.houses.FindByIDForUpdate(txCtx, house.ID)
		require.NoError(t, err)
		assert.Len(t, got.Images, 2)

		_, err = f.houses.FindByIDForUpdate(txCtx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
		return nil
	})
	require.NoError(t, err)
}

func TestGormHouseRepository_FindByIDForUpdate_LocksRow(t *testing.T) {
	database, mock, mockDB := newMockDatabase(t, false)
	defer mockDB.Close()
	repo := NewGormHouseRepository(database.DB)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "houses" WHERE id = \$1 ORDER BY .* LIMIT .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "price"}).AddRow(id, "100"))
	mock.ExpectQuery(`SELECT \* FROM "house_images" WHERE "house_images"."house_id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "house_id"}))
	mock.ExpectCommit()

	err := database.WithinTransaction(context.Background(), func(txCtx context.Context) error {
		_, err := repo.FindByIDForUpdate(txCtx, id)
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
