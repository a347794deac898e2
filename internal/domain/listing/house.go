// Package listing contains the House aggregate, its owned images, house types
// and the search filter used to browse listings.
package listing

import (
	"strconv"
	"strings"
	"time"

	"github.com/homefinder/backend/internal/domain/location"
	"github.com/homefinder/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purpose is why a house is listed
type Purpose string

const (
	PurposeForRent   Purpose = "FOR_RENT"
	PurposeForSale   Purpose = "FOR_SALE"
	PurposeShortStay Purpose = "SHORT_STAY"
)

// IsValid reports whether p is a known purpose
func (p Purpose) IsValid() bool {
	switch p {
	case PurposeForRent, PurposeForSale, PurposeShortStay:
		return true
	}
	return false
}

// Status is the market state of a listing. Any status may move to any other.
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusPending   Status = "PENDING"
	StatusSold      Status = "SOLD"
	StatusRented    Status = "RENTED"
)

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusPending, StatusSold, StatusRented:
		return true
	}
	return false
}

// Features are the boolean amenities of a house
type Features struct {
	HasInternalToilet bool
	HasParking        bool
	HasWell           bool
	HasFence          bool
	HasBalcony        bool
}

// House is a property listing owned by one agent
type House struct {
	shared.BaseEntity
	Title       string
	Description string
	Price       decimal.Decimal
	Location    string
	Bedrooms    int
	Bathrooms   int
	Features
	Purpose     Purpose
	Status      Status
	AgentID     uuid.UUID
	HouseTypeID uuid.UUID
	Place       location.Chain
	Images      []Image
}

// HouseInput carries the fields needed to create a house
type HouseInput struct {
	Title       string
	Description string
	Price       decimal.Decimal
	Location    string
	Bedrooms    int
	Bathrooms   int
	Features    Features
	Purpose     Purpose
	HouseTypeID uuid.UUID
	Place       location.Chain
}

// NewHouse creates a new AVAILABLE house owned by agentID
func NewHouse(agentID uuid.UUID, in HouseInput) (*House, error) {
	if agentID == uuid.Nil {
		return nil, shared.NewValidationError("Listing must have an owner")
	}
	h := &House{
		BaseEntity:  shared.NewBaseEntity(),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Location:    strings.TrimSpace(in.Location),
		Bedrooms:    in.Bedrooms,
		Bathrooms:   in.Bathrooms,
		Features:    in.Features,
		Purpose:     in.Purpose,
		Status:      StatusAvailable,
		AgentID:     agentID,
		HouseTypeID: in.HouseTypeID,
		Place:       in.Place,
	}
	if h.Purpose == "" {
		h.Purpose = PurposeForRent
	}
	if err := h.validate(); err != nil {
		return nil, err
	}
	return h, nil
}

// HousePatch is a partial update; nil fields are left unchanged
type HousePatch struct {
	Title             *string
	Description       *string
	Price             *decimal.Decimal
	Location          *string
	Bedrooms          *int
	Bathrooms         *int
	HasInternalToilet *bool
	HasParking        *bool
	HasWell           *bool
	HasFence          *bool
	HasBalcony        *bool
	Purpose           *Purpose
	HouseTypeID       *uuid.UUID
	RegionID          *uuid.UUID
	DivisionID        *uuid.UUID
	SubdivisionID     *uuid.UUID
	NeighborhoodID    *uuid.UUID
}

// TouchesLocation reports whether the patch changes any hierarchy level
func (p HousePatch) TouchesLocation() bool {
	return p.RegionID != nil || p.DivisionID != nil || p.SubdivisionID != nil || p.NeighborhoodID != nil
}

// Apply applies the patch and re-validates the house.
// On error the house is left unchanged.
func (h *House) Apply(p HousePatch) error {
	next := *h
	if p.Title != nil {
		next.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		next.Description = strings.TrimSpace(*p.Description)
	}
	if p.Price != nil {
		next.Price = *p.Price
	}
	if p.Location != nil {
		next.Location = strings.TrimSpace(*p.Location)
	}
	if p.Bedrooms != nil {
		next.Bedrooms = *p.Bedrooms
	}
	if p.Bathrooms != nil {
		next.Bathrooms = *p.Bathrooms
	}
	if p.HasInternalToilet != nil {
		next.HasInternalToilet = *p.HasInternalToilet
	}
	if p.HasParking != nil {
		next.HasParking = *p.HasParking
	}
	if p.HasWell != nil {
		next.HasWell = *p.HasWell
	}
	if p.HasFence != nil {
		next.HasFence = *p.HasFence
	}
	if p.HasBalcony != nil {
		next.HasBalcony = *p.HasBalcony
	}
	if p.Purpose != nil {
		next.Purpose = *p.Purpose
	}
	if p.HouseTypeID != nil {
		next.HouseTypeID = *p.HouseTypeID
	}
	if p.RegionID != nil {
		next.Place.RegionID = *p.RegionID
	}
	if p.DivisionID != nil {
		next.Place.DivisionID = *p.DivisionID
	}
	if p.SubdivisionID != nil {
		next.Place.SubdivisionID = *p.SubdivisionID
	}
	if p.NeighborhoodID != nil {
		next.Place.NeighborhoodID = *p.NeighborhoodID
	}
	if err := next.validate(); err != nil {
		return err
	}
	next.Touch()
	*h = next
	return nil
}

// ChangeStatus moves the listing to status
func (h *House) ChangeStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewValidationError("Invalid listing status: " + string(status))
	}
	h.Status = status
	h.Touch()
	return nil
}

// IsOwnedBy reports whether userID is the listing's agent
func (h *House) IsOwnedBy(userID uuid.UUID) bool {
	return h.AgentID == userID
}

// FirstImageURL returns the URL of the earliest attached image, or "" if none
func (h *House) FirstImageURL() string {
	if len(h.Images) == 0 {
		return ""
	}
	first := h.Images[0]
	for _, img := range h.Images[1:] {
		if img.before(first) {
			first = img
		}
	}
	return first.URL
}

// PublicIDs returns the external asset IDs of all attached images
func (h *House) PublicIDs() []string {
	ids := make([]string, 0, len(h.Images))
	for _, img := range h.Images {
		ids = append(ids, img.PublicID)
	}
	return ids
}

// OwnedPublicIDs filters publicIDs down to those attached to this house
func (h *House) OwnedPublicIDs(publicIDs []string) []string {
	owned := make(map[string]struct{}, len(h.Images))
	for _, img := range h.Images {
		owned[img.PublicID] = struct{}{}
	}
	result := make([]string, 0, len(publicIDs))
	seen := make(map[string]struct{}, len(publicIDs))
	for _, id := range publicIDs {
		if _, ok := owned[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

func (h *House) validate() error {
	if len([]rune(h.Title)) < 3 {
		return shared.NewValidationError("Title is required and must be at least 3 characters")
	}
	if len(h.Title) > 200 {
		return shared.NewValidationError("Title cannot exceed 200 characters")
	}
	if h.Location == "" {
		return shared.NewValidationError("Specific location is required")
	}
	if !h.Price.IsPositive() {
		return shared.NewValidationError("Price must be a positive number")
	}
	if h.Bedrooms < 0 {
		return shared.NewValidationError("Bedrooms cannot be negative")
	}
	if h.Bathrooms < 0 {
		return shared.NewValidationError("Bathrooms cannot be negative")
	}
	if !h.Purpose.IsValid() {
		return shared.NewValidationError("Invalid listing purpose: " + string(h.Purpose))
	}
	if !h.Status.IsValid() {
		return shared.NewValidationError("Invalid listing status: " + string(h.Status))
	}
	if h.HouseTypeID == uuid.Nil {
		return shared.NewValidationError("House type is required")
	}
	if h.Place.RegionID == uuid.Nil || h.Place.DivisionID == uuid.Nil ||
		h.Place.SubdivisionID == uuid.Nil || h.Place.NeighborhoodID == uuid.Nil {
		return shared.NewValidationError("Region, division, subdivision and neighborhood are required")
	}
	return nil
}

// Image is a photo owned by exactly one house
type Image struct {
	ID        uuid.UUID
	PublicID  string
	URL       string
	HouseID   uuid.UUID
	CreatedAt time.Time
}

// ImageRef points at an asset stored on the image host
type ImageRef struct {
	URL      string
	PublicID string
}

// NewImage creates an image row for houseID
func NewImage(houseID uuid.UUID, ref ImageRef) (*Image, error) {
	if strings.TrimSpace(ref.URL) == "" || strings.TrimSpace(ref.PublicID) == "" {
		return nil, shared.NewValidationError("Image URL and public ID are required")
	}
	return &Image{
		ID:        uuid.New(),
		PublicID:  ref.PublicID,
		URL:       ref.URL,
		HouseID:   houseID,
		CreatedAt: time.Now(),
	}, nil
}

func (i Image) before(other Image) bool {
	if i.CreatedAt.Equal(other.CreatedAt) {
		return i.ID.String() < other.ID.String()
	}
	return i.CreatedAt.Before(other.CreatedAt)
}

// ImagePolicy bounds the number of images per listing
type ImagePolicy struct {
	Min int
	Max int
}

// DefaultImagePolicy returns the 1..3 bound
func DefaultImagePolicy() ImagePolicy {
	return ImagePolicy{Min: 1, Max: 3}
}

// Check validates an image count against the policy
func (p ImagePolicy) Check(count int) error {
	if count < p.Min {
		if p.Min == 1 {
			return shared.NewValidationError("A listing must have at least one image")
		}
		return shared.NewValidationError("Too few images for a listing")
	}
	if count > p.Max {
		return shared.NewValidationError("Too many images: a listing can have at most " + strconv.Itoa(p.Max))
	}
	return nil
}

// HouseType is a reference lookup such as "Apartment" or "Studio"
type HouseType struct {
	ID          uuid.UUID
	Name        string
	Description string
}

// NewHouseType creates a house type
func NewHouseType(name, description string) (*HouseType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("House type name cannot be empty")
	}
	return &HouseType{ID: uuid.New(), Name: name, Description: strings.TrimSpace(description)}, nil
}
