// Package seed inserts the reference data the listing flows depend on:
// roles, house types and the location hierarchy.
package seed

import (
	"context"
	"strings"
	"time"

	"github.com/homefinder/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// Result counts the rows inserted by a run; existing rows are not counted
type Result struct {
	Roles         int
	HouseTypes    int
	Regions       int
	Divisions     int
	Subdivisions  int
	Neighborhoods int
}

// Total returns the number of inserted rows
func (r Result) Total() int {
	return r.Roles + r.HouseTypes + r.Regions + r.Divisions + r.Subdivisions + r.Neighborhoods
}

// Seeder inserts reference data idempotently.
// Rows are matched by name under their parent, so reruns only add what is missing.
type Seeder struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSeeder creates a Seeder
func NewSeeder(db *gorm.DB, logger *zap.Logger) *Seeder {
	return &Seeder{db: db, logger: logger}
}

// Run inserts data in a single transaction
func (s *Seeder) Run(ctx context.Context, data *Data) (Result, error) {
	var res Result
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res = Result{}
		if err := s.seedRoles(tx, data.Roles, &res); err != nil {
			return err
		}
		if err := s.seedHouseTypes(tx, data.HouseTypes, &res); err != nil {
			return err
		}
		return s.seedLocations(tx, data.Regions, &res)
	})
	if err != nil {
		return Result{}, err
	}

	s.logger.Info("Reference data seeded",
		zap.Int("roles", res.Roles),
		zap.Int("house_types", res.HouseTypes),
		zap.Int("regions", res.Regions),
		zap.Int("divisions", res.Divisions),
		zap.Int("subdivisions", res.Subdivisions),
		zap.Int("neighborhoods", res.Neighborhoods))
	return res, nil
}

func (s *Seeder) seedRoles(tx *gorm.DB, roles []RoleSeed, res *Result) error {
	for _, r := range roles {
		name := strings.ToLower(strings.TrimSpace(r.Name))
		if name == "" {
			continue
		}
		_, created, err := ensure(tx, &models.RoleModel{}, map[string]any{"name": name}, func(id uuid.UUID) any {
			return &models.RoleModel{ID: id, Name: name, Description: r.Description, CreatedAt: time.Now()}
		})
		if err != nil {
			return err
		}
		if created {
			res.Roles++
		}
	}
	return nil
}

func (s *Seeder) seedHouseTypes(tx *gorm.DB, types []HouseTypeSeed, res *Result) error {
	for _, t := range types {
		name := NormalizeName(t.Name)
		if name == "" {
			continue
		}
		_, created, err := ensure(tx, &models.HouseTypeModel{}, map[string]any{"name": name}, func(id uuid.UUID) any {
			return &models.HouseTypeModel{ID: id, Name: name, Description: t.Description, CreatedAt: time.Now()}
		})
		if err != nil {
			return err
		}
		if created {
			res.HouseTypes++
		}
	}
	return nil
}

func (s *Seeder) seedLocations(tx *gorm.DB, regions []RegionSeed, res *Result) error {
	for _, r := range regions {
		regionName := NormalizeName(r.Name)
		if regionName == "" {
			continue
		}
		regionID, created, err := ensure(tx, &models.RegionModel{}, map[string]any{"name": regionName}, func(id uuid.UUID) any {
			return &models.RegionModel{ID: id, Name: regionName, CreatedAt: time.Now()}
		})
		if err != nil {
			return err
		}
		if created {
			res.Regions++
		}

		for _, d := range r.Divisions {
			if err := s.seedDivision(tx, regionID, d, res); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Seeder) seedDivision(tx *gorm.DB, regionID uuid.UUID, d DivisionSeed, res *Result) error {
	name := NormalizeName(d.Name)
	if name == "" {
		return nil
	}
	divisionID, created, err := ensure(tx, &models.DivisionModel{},
		map[string]any{"name": name, "region_id": regionID},
		func(id uuid.UUID) any {
			return &models.DivisionModel{ID: id, Name: name, RegionID: regionID, CreatedAt: time.Now()}
		})
	if err != nil {
		return err
	}
	if created {
		res.Divisions++
	}

	for _, sd := range d.Subdivisions {
		subName := NormalizeName(sd.Name)
		if subName == "" {
			continue
		}
		subID, created, err := ensure(tx, &models.SubdivisionModel{},
			map[string]any{"name": subName, "division_id": divisionID},
			func(id uuid.UUID) any {
				return &models.SubdivisionModel{ID: id, Name: subName, DivisionID: divisionID, CreatedAt: time.Now()}
			})
		if err != nil {
			return err
		}
		if created {
			res.Subdivisions++
		}

		for _, n := range sd.Neighborhoods {
			nbName := NormalizeName(n)
			if nbName == "" {
				continue
			}
			_, created, err := ensure(tx, &models.NeighborhoodModel{},
				map[string]any{"name": nbName, "subdivision_id": subID},
				func(id uuid.UUID) any {
					return &models.NeighborhoodModel{ID: id, Name: nbName, SubdivisionID: subID, CreatedAt: time.Now()}
				})
			if err != nil {
				return err
			}
			if created {
				res.Neighborhoods++
			}
		}
	}
	return nil
}

// ensure returns the id of the row matching conds, inserting build(newID) when none exists
func ensure(tx *gorm.DB, model any, conds map[string]any, build func(id uuid.UUID) any) (uuid.UUID, bool, error) {
	var ids []uuid.UUID
	if err := tx.Model(model).Where(conds).Limit(1).Pluck("id", &ids).Error; err != nil {
		return uuid.Nil, false, err
	}
	if len(ids) > 0 {
		return ids[0], false, nil
	}

	id := uuid.New()
	if err := tx.Create(build(id)).Error; err != nil {
		return uuid.Nil, false, err
	}
	return id, true, nil
}

// NormalizeName collapses whitespace and capitalizes each word.
// Existing capitals are kept so roman numerals like "IV" survive.
func NormalizeName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	return cases.Title(language.Und, cases.NoLower).String(name)
}
