package seed

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/homefinder/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"bastos", "Bastos"},
		{"  south   west ", "South West"},
		{"yaounde IV", "Yaounde IV"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeName(tt.input))
		})
	}
}

func TestDefaultData(t *testing.T) {
	data, err := DefaultData()
	require.NoError(t, err)

	names := make([]string, 0, len(data.Roles))
	for _, r := range data.Roles {
		names = append(names, r.Name)
	}
	assert.ElementsMatch(t, []string{"admin", "agent", "basic"}, names)
	assert.NotEmpty(t, data.HouseTypes)
	assert.Len(t, data.Regions, 10)
}

func TestSeeder_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("embedded data is idempotent", func(t *testing.T) {
		db := setupTestDB(t)
		s := NewSeeder(db, zap.NewNop())
		data, err := DefaultData()
		require.NoError(t, err)

		first, err := s.Run(ctx, data)
		require.NoError(t, err)
		assert.Equal(t, 3, first.Roles)
		assert.Equal(t, 10, first.Regions)
		assert.Positive(t, first.Neighborhoods)

		second, err := s.Run(ctx, data)
		require.NoError(t, err)
		assert.Zero(t, second.Total())

		assert.Equal(t, int64(3), count(t, db, &models.RoleModel{}))
		assert.Equal(t, int64(first.Neighborhoods), count(t, db, &models.NeighborhoodModel{}))
	})

	t.Run("children are matched under their parent", func(t *testing.T) {
		db := setupTestDB(t)
		s := NewSeeder(db, zap.NewNop())
		fsys := fstest.MapFS{
			"roles.json":       {Data: []byte(`[]`)},
			"house_types.json": {Data: []byte(`[{"name":"villa"}]`)},
			"locations.json": {Data: []byte(`[
				{"name":"centre","divisions":[{"name":"central","subdivisions":[{"name":"one","neighborhoods":["market"]}]}]},
				{"name":"littoral","divisions":[{"name":"central","subdivisions":[{"name":"one","neighborhoods":["market"," market "]}]}]}
			]`)},
		}
		data, err := LoadData(fsys)
		require.NoError(t, err)

		res, err := s.Run(ctx, data)
		require.NoError(t, err)
		assert.Equal(t, Result{HouseTypes: 1, Regions: 2, Divisions: 2, Subdivisions: 2, Neighborhoods: 2}, res)

		var ht models.HouseTypeModel
		require.NoError(t, db.First(&ht).Error)
		assert.Equal(t, "Villa", ht.Name)
	})

	t.Run("later runs add only new rows", func(t *testing.T) {
		db := setupTestDB(t)
		s := NewSeeder(db, zap.NewNop())

		_, err := s.Run(ctx, &Data{Regions: []RegionSeed{{Name: "Centre"}}})
		require.NoError(t, err)

		res, err := s.Run(ctx, &Data{Regions: []RegionSeed{{Name: "Centre"}, {Name: "East"}}})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Regions)
		assert.Equal(t, int64(2), count(t, db, &models.RegionModel{}))
	})

	t.Run("malformed file", func(t *testing.T) {
		_, err := LoadData(fstest.MapFS{"roles.json": {Data: []byte(`{`)}})
		assert.ErrorContains(t, err, "roles.json")
	})
}
