package location

import "github.com/google/uuid"

// RegionResponse represents a region in API responses
type RegionResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// DivisionResponse represents a division in API responses
type DivisionResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	RegionID uuid.UUID `json:"regionId"`
}

// SubdivisionResponse represents a subdivision in API responses
type SubdivisionResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	DivisionID uuid.UUID `json:"divisionId"`
}

// NeighborhoodResponse represents a neighborhood in API responses
type NeighborhoodResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	SubdivisionID uuid.UUID `json:"subdivisionId"`
}

// HouseTypeResponse represents a house type in API responses
type HouseTypeResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}

// ChainNames holds the display names of a location chain
type ChainNames struct {
	Region       string `json:"region"`
	Division     string `json:"division"`
	Subdivision  string `json:"subdivision"`
	Neighborhood string `json:"neighborhood"`
}
