package models

import (
	"slices"
	"time"

	"github.com/homefinder/backend/internal/domain/listing"
	"github.com/homefinder/backend/internal/domain/location"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HouseModel is the persistence model for a listing
type HouseModel struct {
	BaseModel
	Title             string          `gorm:"type:varchar(200);not null"`
	Description       string          `gorm:"type:text"`
	Price             decimal.Decimal `gorm:"type:decimal(14,2);not null;index"`
	Location          string          `gorm:"type:varchar(255);not null"`
	Bedrooms          int             `gorm:"not null;default:0"`
	Bathrooms         int             `gorm:"not null;default:0"`
	HasInternalToilet bool            `gorm:"not null;default:false"`
	HasParking        bool            `gorm:"not null;default:false"`
	HasWell           bool            `gorm:"not null;default:false"`
	HasFence          bool            `gorm:"not null;default:false"`
	HasBalcony        bool            `gorm:"not null;default:false"`
	Purpose           string          `gorm:"type:varchar(20);not null;default:'FOR_RENT';index"`
	Status            string          `gorm:"type:varchar(20);not null;default:'AVAILABLE';index"`
	AgentID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	HouseTypeID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	RegionID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	DivisionID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	SubdivisionID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	NeighborhoodID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Images            []ImageModel    `gorm:"foreignKey:HouseID"`
}

// TableName returns the table name for GORM
func (HouseModel) TableName() string {
	return "houses"
}

// ToDomain converts the model to a domain House, images ordered oldest first
func (m *HouseModel) ToDomain() *listing.House {
	h := &listing.House{
		BaseEntity:  m.BaseModel.ToDomain(),
		Title:       m.Title,
		Description: m.Description,
		Price:       m.Price,
		Location:    m.Location,
		Bedrooms:    m.Bedrooms,
		Bathrooms:   m.Bathrooms,
		Features: listing.Features{
			HasInternalToilet: m.HasInternalToilet,
			HasParking:        m.HasParking,
			HasWell:           m.HasWell,
			HasFence:          m.HasFence,
			HasBalcony:        m.HasBalcony,
		},
		Purpose:     listing.Purpose(m.Purpose),
		Status:      listing.Status(m.Status),
		AgentID:     m.AgentID,
		HouseTypeID: m.HouseTypeID,
		Place: location.Chain{
			RegionID:       m.RegionID,
			DivisionID:     m.DivisionID,
			SubdivisionID:  m.SubdivisionID,
			NeighborhoodID: m.NeighborhoodID,
		},
		Images: make([]listing.Image, 0, len(m.Images)),
	}
	for i := range m.Images {
		h.Images = append(h.Images, *m.Images[i].ToDomain())
	}
	slices.SortStableFunc(h.Images, func(a, b listing.Image) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return compareIDs(a.ID, b.ID)
	})
	return h
}

// HouseModelFromDomain creates a model from a domain House, without images
func HouseModelFromDomain(h *listing.House) *HouseModel {
	m := &HouseModel{
		Title:             h.Title,
		Description:       h.Description,
		Price:             h.Price,
		Location:          h.Location,
		Bedrooms:          h.Bedrooms,
		Bathrooms:         h.Bathrooms,
		HasInternalToilet: h.HasInternalToilet,
		HasParking:        h.HasParking,
		HasWell:           h.HasWell,
		HasFence:          h.HasFence,
		HasBalcony:        h.HasBalcony,
		Purpose:           string(h.Purpose),
		Status:            string(h.Status),
		AgentID:           h.AgentID,
		HouseTypeID:       h.HouseTypeID,
		RegionID:          h.Place.RegionID,
		DivisionID:        h.Place.DivisionID,
		SubdivisionID:     h.Place.SubdivisionID,
		NeighborhoodID:    h.Place.NeighborhoodID,
	}
	m.FromDomainBaseEntity(h.BaseEntity)
	return m
}

// ImageModel is the persistence model for a house image
type ImageModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	PublicID  string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	URL       string    `gorm:"type:text;not null"`
	HouseID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ImageModel) TableName() string {
	return "house_images"
}

// ToDomain converts the model to a domain Image
func (m *ImageModel) ToDomain() *listing.Image {
	return &listing.Image{
		ID:        m.ID,
		PublicID:  m.PublicID,
		URL:       m.URL,
		HouseID:   m.HouseID,
		CreatedAt: m.CreatedAt,
	}
}

// ImageModelFromDomain creates a model from a domain Image
func ImageModelFromDomain(img *listing.Image) *ImageModel {
	return &ImageModel{
		ID:        img.ID,
		PublicID:  img.PublicID,
		URL:       img.URL,
		HouseID:   img.HouseID,
		CreatedAt: img.CreatedAt,
	}
}

// HouseTypeModel is the persistence model for a house type
type HouseTypeModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq         int64     `gorm:"->;column:seq"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime"`
}

// TableName returns the table name for GORM
func (HouseTypeModel) TableName() string {
	return "house_types"
}

// ToDomain converts the model to a domain HouseType
func (m *HouseTypeModel) ToDomain() *listing.HouseType {
	return &listing.HouseType{ID: m.ID, Name: m.Name, Description: m.Description}
}

// HouseTypeModelFromDomain creates a model from a domain HouseType
func HouseTypeModelFromDomain(t *listing.HouseType) *HouseTypeModel {
	return &HouseTypeModel{ID: t.ID, Name: t.Name, Description: t.Description}
}

func compareIDs(a, b uuid.UUID) int {
	as, bs := a.String(), b.String()
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	}
	return 0
}
