package handler

import (
	"context"

	locationapp "github.com/homefinder/backend/internal/application/location"
	"github.com/gin-gonic/gin"
)

// LocationUseCase serves the location cascade and the house type list
type LocationUseCase interface {
	ListRegions(ctx context.Context) ([]locationapp.RegionResponse, error)
	ListDivisions(ctx context.Context, rawRegionID string) ([]locationapp.DivisionResponse, error)
	ListSubdivisions(ctx context.Context, rawDivisionID string) ([]locationapp.SubdivisionResponse, error)
	ListNeighborhoods(ctx context.Context, rawSubdivisionID string) ([]locationapp.NeighborhoodResponse, error)
	ListHouseTypes(ctx context.Context) ([]locationapp.HouseTypeResponse, error)
}

// LocationHandler serves the public reference data
type LocationHandler struct {
	BaseHandler
	service LocationUseCase
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(service LocationUseCase) *LocationHandler {
	return &LocationHandler{service: service}
}

// ListRegions godoc
// @Summary      List regions
// @Tags         locations
// @Produce      json
// @Success      200 {object} dto.Response{data=[]locationapp.RegionResponse}
// @Router       /regions [get]
func (h *LocationHandler) ListRegions(c *gin.Context) {
	items, err := h.service.ListRegions(c.Request.Context())
	writeList(h, c, items, err)
}

// ListDivisions godoc
// @Summary      List divisions of a region
// @Description  A missing or malformed regionId yields an empty list
// @Tags         locations
// @Produce      json
// @Param        regionId query string false "Region ID"
// @Success      200 {object} dto.Response{data=[]locationapp.DivisionResponse}
// @Router       /divisions [get]
func (h *LocationHandler) ListDivisions(c *gin.Context) {
	items, err := h.service.ListDivisions(c.Request.Context(), c.Query("regionId"))
	writeList(h, c, items, err)
}

// ListSubdivisions godoc
// @Summary      List subdivisions of a division
// @Tags         locations
// @Produce      json
// @Param        divisionId query string false "Division ID"
// @Success      200 {object} dto.Response{data=[]locationapp.SubdivisionResponse}
// @Router       /subdivisions [get]
func (h *LocationHandler) ListSubdivisions(c *gin.Context) {
	items, err := h.service.ListSubdivisions(c.Request.Context(), c.Query("divisionId"))
	writeList(h, c, items, err)
}

// ListNeighborhoods godoc
// @Summary      List neighborhoods of a subdivision
// @Tags         locations
// @Produce      json
// @Param        subdivisionId query string false "Subdivision ID"
// @Success      200 {object} dto.Response{data=[]locationapp.NeighborhoodResponse}
// @Router       /neighborhoods [get]
func (h *LocationHandler) ListNeighborhoods(c *gin.Context) {
	items, err := h.service.ListNeighborhoods(c.Request.Context(), c.Query("subdivisionId"))
	writeList(h, c, items, err)
}

// ListHouseTypes godoc
// @Summary      List house types
// @Tags         locations
// @Produce      json
// @Success      200 {object} dto.Response{data=[]locationapp.HouseTypeResponse}
// @Router       /house-types [get]
func (h *LocationHandler) ListHouseTypes(c *gin.Context) {
	items, err := h.service.ListHouseTypes(c.Request.Context())
	writeList(h, c, items, err)
}

// writeList writes a list result or its error; a nil list is sent as []
func writeList[T any](h *LocationHandler, c *gin.Context, items []T, err error) {
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	h.Success(c, items)
}
