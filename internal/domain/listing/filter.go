package listing

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Paging bounds for listing search
const (
	DefaultLimit = 12
	MaxLimit     = 100
)

// SearchFilter is a conjunctive predicate over houses plus pagination.
// Nil pointers and false flags contribute nothing to the predicate.
type SearchFilter struct {
	HouseTypeID    *uuid.UUID
	Purpose        *Purpose
	Status         *Status
	MinPrice       *decimal.Decimal // exclusive
	MaxPrice       *decimal.Decimal // exclusive
	RegionID       *uuid.UUID
	DivisionID     *uuid.UUID
	SubdivisionID  *uuid.UUID
	NeighborhoodID *uuid.UUID
	AgentID        *uuid.UUID

	RequireInternalToilet bool
	RequireWell           bool
	RequireBalcony        bool
	RequireParking        bool
	RequireFence          bool

	Page  int
	Limit int
}

// Offset returns the number of rows to skip
func (f SearchFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// ParseSearchParams builds a filter from flat query parameters.
// Malformed values are ignored rather than rejected.
func ParseSearchParams(params map[string]string) SearchFilter {
	f := SearchFilter{
		HouseTypeID:    parseUUID(params["houseType"]),
		RegionID:       parseUUID(params["region"]),
		DivisionID:     parseUUID(params["division"]),
		SubdivisionID:  parseUUID(params["subdivision"]),
		NeighborhoodID: parseUUID(params["neighbourhood"]),
		MinPrice:       parseDecimal(params["minPrice"]),
		MaxPrice:       parseDecimal(params["maxPrice"]),

		RequireInternalToilet: parseFlag(params["hasInternalToilet"]),
		RequireWell:           parseFlag(params["hasWell"]),
		RequireBalcony:        parseFlag(params["hasBalcony"]),
		RequireParking:        parseFlag(params["hasParking"]),
		RequireFence:          parseFlag(params["hasFence"]),
	}

	// "neighborhood" is accepted as an alias of the legacy "neighbourhood" key
	if f.NeighborhoodID == nil {
		f.NeighborhoodID = parseUUID(params["neighborhood"])
	}

	if p := Purpose(strings.ToUpper(strings.TrimSpace(params["purpose"]))); p.IsValid() {
		f.Purpose = &p
	}
	if s := Status(strings.ToUpper(strings.TrimSpace(params["status"]))); s.IsValid() {
		f.Status = &s
	}

	f.Page = clampPage(params["page"])
	f.Limit = clampLimit(params["limit"])
	return f
}

// WithPaging returns a copy of f with page and limit normalised
func (f SearchFilter) WithPaging(page, limit int) SearchFilter {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	f.Page = page
	f.Limit = limit
	return f
}

func clampPage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func clampLimit(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultLimit
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultLimit
	}
	if n < 1 {
		return 1
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}

func parseUUID(raw string) *uuid.UUID {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

func parseDecimal(raw string) *decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	return &d
}

func parseFlag(raw string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	return err == nil && v
}
