package models

import (
	"time"

	"github.com/homefinder/backend/internal/domain/location"
	"github.com/google/uuid"
)

// RegionModel is the persistence model for a region.
// Seq is assigned by the database on insert and orders listings.
type RegionModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq       int64     `gorm:"->;column:seq"`
	Name      string    `gorm:"type:varchar(120);not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
}

// TableName returns the table name for GORM
func (RegionModel) TableName() string {
	return "regions"
}

// ToDomain converts the model to a domain Region
func (m *RegionModel) ToDomain() *location.Region {
	return &location.Region{ID: m.ID, Name: m.Name}
}

// RegionModelFromDomain creates a model from a domain Region
func RegionModelFromDomain(r *location.Region) *RegionModel {
	return &RegionModel{ID: r.ID, Name: r.Name}
}

// DivisionModel is the persistence model for a division
type DivisionModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq       int64     `gorm:"->;column:seq"`
	Name      string    `gorm:"type:varchar(120);not null;uniqueIndex:idx_division_region_name"`
	RegionID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_division_region_name"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
}

// TableName returns the table name for GORM
func (DivisionModel) TableName() string {
	return "divisions"
}

// ToDomain converts the model to a domain Division
func (m *DivisionModel) ToDomain() *location.Division {
	return &location.Division{ID: m.ID, Name: m.Name, RegionID: m.RegionID}
}

// DivisionModelFromDomain creates a model from a domain Division
func DivisionModelFromDomain(d *location.Division) *DivisionModel {
	return &DivisionModel{ID: d.ID, Name: d.Name, RegionID: d.RegionID}
}

// SubdivisionModel is the persistence model for a subdivision
type SubdivisionModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq        int64     `gorm:"->;column:seq"`
	Name       string    `gorm:"type:varchar(120);not null;uniqueIndex:idx_subdivision_division_name"`
	DivisionID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_subdivision_division_name"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime"`
}

// TableName returns the table name for GORM
func (SubdivisionModel) TableName() string {
	return "subdivisions"
}

// ToDomain converts the model to a domain Subdivision
func (m *SubdivisionModel) ToDomain() *location.Subdivision {
	return &location.Subdivision{ID: m.ID, Name: m.Name, DivisionID: m.DivisionID}
}

// SubdivisionModelFromDomain creates a model from a domain Subdivision
func SubdivisionModelFromDomain(s *location.Subdivision) *SubdivisionModel {
	return &SubdivisionModel{ID: s.ID, Name: s.Name, DivisionID: s.DivisionID}
}

// NeighborhoodModel is the persistence model for a neighborhood
type NeighborhoodModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq           int64     `gorm:"->;column:seq"`
	Name          string    `gorm:"type:varchar(120);not null;uniqueIndex:idx_neighborhood_subdivision_name"`
	SubdivisionID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_neighborhood_subdivision_name"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime"`
}

// TableName returns the table name for GORM
func (NeighborhoodModel) TableName() string {
	return "neighborhoods"
}

// ToDomain converts the model to a domain Neighborhood
func (m *NeighborhoodModel) ToDomain() *location.Neighborhood {
	return &location.Neighborhood{ID: m.ID, Name: m.Name, SubdivisionID: m.SubdivisionID}
}

// NeighborhoodModelFromDomain creates a model from a domain Neighborhood
func NeighborhoodModelFromDomain(n *location.Neighborhood) *NeighborhoodModel {
	return &NeighborhoodModel{ID: n.ID, Name: n.Name, SubdivisionID: n.SubdivisionID}
}
