package persistence

import (
	"context"
	"testing"

	"github.com/homefinder/backend/internal/domain/listing"
	"github.com/homefinder/backend/internal/domain/location"
	"github.com/homefinder/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database with the full schema.
// A single connection keeps every query on the same in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	// BIGSERIAL stand-in: copy the rowid into seq on insert
	for _, table := range sequencedTables {
		require.NoError(t, db.Exec(`CREATE TRIGGER ` + table + `_seq AFTER INSERT ON ` + table +
			` BEGIN UPDATE ` + table + ` SET seq = NEW.rowid WHERE rowid = NEW.rowid; END`).Error)
	}
	return db
}

// sequencedTables are listed in insertion order through their seq column
var sequencedTables = []string{"regions", "divisions", "subdivisions", "neighborhoods", "house_types"}

// seedPlace inserts one region/division/subdivision/neighborhood chain
func seedPlace(t *testing.T, repo *GormLocationRepository) location.Chain {
	t.Helper()
	ctx := context.Background()

	region, err := location.NewRegion("Centre " + uuid.NewString()[:8])
	require.NoError(t, err)
	require.NoError(t, repo.SaveRegion(ctx, region))

	div, err := location.NewDivision("Mfoundi", region.ID)
	require.NoError(t, err)
	require.NoError(t, repo.SaveDivision(ctx, div))

	sub, err := location.NewSubdivision("Yaounde I", div.ID)
	require.NoError(t, err)
	require.NoError(t, repo.SaveSubdivision(ctx, sub))

	nb, err := location.NewNeighborhood("Bastos", sub.ID)
	require.NoError(t, err)
	require.NoError(t, repo.SaveNeighborhood(ctx, nb))

	return location.Chain{
		RegionID:       region.ID,
		DivisionID:     div.ID,
		SubdivisionID:  sub.ID,
		NeighborhoodID: nb.ID,
	}
}

// newTestHouse builds a valid house with the given price and n images
func newTestHouse(t *testing.T, agentID, houseTypeID uuid.UUID, place location.Chain, price int64, n int) *listing.House {
	t.Helper()

	h, err := listing.NewHouse(agentID, listing.HouseInput{
		Title:       "Modern villa",
		Price:       decimal.NewFromInt(price),
		Location:    "Near the market",
		Bedrooms:    3,
		Bathrooms:   2,
		HouseTypeID: houseTypeID,
		Place:       place,
	})
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		img, err := listing.NewImage(h.ID, listing.ImageRef{
			URL:      "https://cdn.example.com/" + uuid.NewString() + ".jpg",
			PublicID: "houses/" + uuid.NewString(),
		})
		require.NoError(t, err)
		h.Images = append(h.Images, *img)
	}
	return h
}
