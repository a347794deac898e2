package listing

import (
	"time"

	locationapp "github.com/homefinder/backend/internal/application/location"
	"github.com/homefinder/backend/internal/domain/listing"
	"github.com/homefinder/backend/internal/domain/location"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateListingRequest is the `data` part of a listing creation form
type CreateListingRequest struct {
	Title             string          `json:"title" binding:"required,min=3,max=200"`
	Description       string          `json:"description" binding:"max=5000"`
	Price             decimal.Decimal `json:"price" binding:"required"`
	Location          string          `json:"location" binding:"required,max=300"`
	Bedrooms          int             `json:"bedrooms" binding:"min=0"`
	Bathrooms         int             `json:"bathrooms" binding:"min=0"`
	HasInternalToilet bool            `json:"hasInternalToilet"`
	HasParking        bool            `json:"hasParking"`
	HasWell           bool            `json:"hasWell"`
	HasFence          bool            `json:"hasFence"`
	HasBalcony        bool            `json:"hasBalcony"`
	Purpose           string          `json:"purpose" binding:"omitempty,oneof=FOR_RENT FOR_SALE SHORT_STAY"`
	HouseTypeID       uuid.UUID       `json:"houseTypeId" binding:"required"`
	RegionID          uuid.UUID       `json:"regionId" binding:"required"`
	DivisionID        uuid.UUID       `json:"divisionId" binding:"required"`
	SubdivisionID     uuid.UUID       `json:"subdivisionId" binding:"required"`
	NeighborhoodID    uuid.UUID       `json:"neighborhoodId" binding:"required"`
}

// ToInput converts the request to a domain input
func (r CreateListingRequest) ToInput() listing.HouseInput {
	return listing.HouseInput{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Location:    r.Location,
		Bedrooms:    r.Bedrooms,
		Bathrooms:   r.Bathrooms,
		Features: listing.Features{
			HasInternalToilet: r.HasInternalToilet,
			HasParking:        r.HasParking,
			HasWell:           r.HasWell,
			HasFence:          r.HasFence,
			HasBalcony:        r.HasBalcony,
		},
		Purpose:     listing.Purpose(r.Purpose),
		HouseTypeID: r.HouseTypeID,
		Place: location.Chain{
			RegionID:       r.RegionID,
			DivisionID:     r.DivisionID,
			SubdivisionID:  r.SubdivisionID,
			NeighborhoodID: r.NeighborhoodID,
		},
	}
}

// UpdateListingRequest is the `data` part of a listing update form.
// Omitted fields are left unchanged.
type UpdateListingRequest struct {
	Title             *string          `json:"title" binding:"omitempty,min=3,max=200"`
	Description       *string          `json:"description" binding:"omitempty,max=5000"`
	Price             *decimal.Decimal `json:"price"`
	Location          *string          `json:"location" binding:"omitempty,max=300"`
	Bedrooms          *int             `json:"bedrooms" binding:"omitempty,min=0"`
	Bathrooms         *int             `json:"bathrooms" binding:"omitempty,min=0"`
	HasInternalToilet *bool            `json:"hasInternalToilet"`
	HasParking        *bool            `json:"hasParking"`
	HasWell           *bool            `json:"hasWell"`
	HasFence          *bool            `json:"hasFence"`
	HasBalcony        *bool            `json:"hasBalcony"`
	Purpose           *string          `json:"purpose" binding:"omitempty,oneof=FOR_RENT FOR_SALE SHORT_STAY"`
	HouseTypeID       *uuid.UUID       `json:"houseTypeId"`
	RegionID          *uuid.UUID       `json:"regionId"`
	DivisionID        *uuid.UUID       `json:"divisionId"`
	SubdivisionID     *uuid.UUID       `json:"subdivisionId"`
	NeighborhoodID    *uuid.UUID       `json:"neighborhoodId"`
	ImagesToDelete    []string         `json:"imagesToDelete"`
}

// ToPatch converts the request to a domain patch
func (r UpdateListingRequest) ToPatch() listing.HousePatch {
	p := listing.HousePatch{
		Title:             r.Title,
		Description:       r.Description,
		Price:             r.Price,
		Location:          r.Location,
		Bedrooms:          r.Bedrooms,
		Bathrooms:         r.Bathrooms,
		HasInternalToilet: r.HasInternalToilet,
		HasParking:        r.HasParking,
		HasWell:           r.HasWell,
		HasFence:          r.HasFence,
		HasBalcony:        r.HasBalcony,
		HouseTypeID:       r.HouseTypeID,
		RegionID:          r.RegionID,
		DivisionID:        r.DivisionID,
		SubdivisionID:     r.SubdivisionID,
		NeighborhoodID:    r.NeighborhoodID,
	}
	if r.Purpose != nil {
		purpose := listing.Purpose(*r.Purpose)
		p.Purpose = &purpose
	}
	return p
}

// ChangeStatusRequest is the body of a status change
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListingCreatedResponse is returned after a listing is published
type ListingCreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

// ListingSummary is one card of a search result page
type ListingSummary struct {
	ID                uuid.UUID       `json:"id"`
	Title             string          `json:"title"`
	Price             decimal.Decimal `json:"price"`
	Location          string          `json:"location"`
	Bedrooms          int             `json:"bedrooms"`
	Bathrooms         int             `json:"bathrooms"`
	HasFence          bool            `json:"hasFence"`
	HasInternalToilet bool            `json:"hasInternalToilet"`
	HasWell           bool            `json:"hasWell"`
	Purpose           string          `json:"purpose"`
	Status            string          `json:"status"`
	ImageURL          string          `json:"imageUrl"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// SearchResult is one page of listings with paging totals
type SearchResult struct {
	Houses []ListingSummary `json:"houses"`
	Total  int64            `json:"total"`
	Page   int              `json:"page"`
	Pages  int              `json:"pages"`
}

// ImageResponse is an image attached to a listing
type ImageResponse struct {
	ID       uuid.UUID `json:"id"`
	PublicID string    `json:"publicId"`
	URL      string    `json:"url"`
}

// AgentInfo is the public contact card of the listing's agent
type AgentInfo struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Image        string    `json:"image,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	WhatsApp     string    `json:"whatsapp,omitempty"`
	BusinessName string    `json:"businessName,omitempty"`
}

// ListingDetails is the full view of a listing
type ListingDetails struct {
	ID                uuid.UUID              `json:"id"`
	Title             string                 `json:"title"`
	Description       string                 `json:"description"`
	Price             decimal.Decimal        `json:"price"`
	Location          string                 `json:"location"`
	Bedrooms          int                    `json:"bedrooms"`
	Bathrooms         int                    `json:"bathrooms"`
	HasInternalToilet bool                   `json:"hasInternalToilet"`
	HasParking        bool                   `json:"hasParking"`
	HasWell           bool                   `json:"hasWell"`
	HasFence          bool                   `json:"hasFence"`
	HasBalcony        bool                   `json:"hasBalcony"`
	Purpose           string                 `json:"purpose"`
	Status            string                 `json:"status"`
	HouseTypeID       uuid.UUID              `json:"houseTypeId"`
	HouseType         string                 `json:"houseType"`
	RegionID          uuid.UUID              `json:"regionId"`
	DivisionID        uuid.UUID              `json:"divisionId"`
	SubdivisionID     uuid.UUID              `json:"subdivisionId"`
	NeighborhoodID    uuid.UUID              `json:"neighborhoodId"`
	Place             locationapp.ChainNames `json:"place"`
	Images            []ImageResponse        `json:"images"`
	Agent             *AgentInfo             `json:"agent,omitempty"`
	CreatedAt         time.Time              `json:"createdAt"`
	UpdatedAt         time.Time              `json:"updatedAt"`
}

// ToSummary converts a house to its search card
func ToSummary(h *listing.House) ListingSummary {
	return ListingSummary{
		ID:                h.ID,
		Title:             h.Title,
		Price:             h.Price,
		Location:          h.Location,
		Bedrooms:          h.Bedrooms,
		Bathrooms:         h.Bathrooms,
		HasFence:          h.HasFence,
		HasInternalToilet: h.HasInternalToilet,
		HasWell:           h.HasWell,
		Purpose:           string(h.Purpose),
		Status:            string(h.Status),
		ImageURL:          h.FirstImageURL(),
		CreatedAt:         h.CreatedAt,
	}
}

// ToSummaries converts a page of houses
func ToSummaries(houses []listing.House) []ListingSummary {
	out := make([]ListingSummary, len(houses))
	for i := range houses {
		out[i] = ToSummary(&houses[i])
	}
	return out
}

func toDetails(h *listing.House) *ListingDetails {
	images := make([]ImageResponse, len(h.Images))
	for i, img := range h.Images {
		images[i] = ImageResponse{ID: img.ID, PublicID: img.PublicID, URL: img.URL}
	}
	return &ListingDetails{
		ID:                h.ID,
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
		HouseTypeID:       h.HouseTypeID,
		RegionID:          h.Place.RegionID,
		DivisionID:        h.Place.DivisionID,
		SubdivisionID:     h.Place.SubdivisionID,
		NeighborhoodID:    h.Place.NeighborhoodID,
		Images:            images,
		CreatedAt:         h.CreatedAt,
		UpdatedAt:         h.UpdatedAt,
	}
}
