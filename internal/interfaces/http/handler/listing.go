package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	listingapp "github.com/homefinder/backend/internal/application/listing"
	"github.com/homefinder/backend/internal/domain/identity"
	"github.com/homefinder/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

// Multipart field names of the listing forms
const (
	formFieldData   = "data"
	formFieldImages = "images"
)

// MaxMultipartMemory is kept in memory per form; larger parts spill to disk.
// The server sets it on the gin engine.
const MaxMultipartMemory = 8 << 20

// sniffLen is the number of leading bytes http.DetectContentType considers
const sniffLen = 512

// ListingQueries serves listing reads
type ListingQueries interface {
	Search(ctx context.Context, params map[string]string) (*listingapp.SearchResult, error)
	ListMine(ctx context.Context, session identity.Session, page, limit int) (*listingapp.SearchResult, error)
	GetDetails(ctx context.Context, id uuid.UUID) (*listingapp.ListingDetails, error)
}

// ListingCommands serves listing writes
type ListingCommands interface {
	Create(ctx context.Context, session identity.Session, req listingapp.CreateListingRequest, files []listingapp.ImageFile) (*listingapp.ListingCreatedResponse, error)
	Update(ctx context.Context, session identity.Session, id uuid.UUID, req listingapp.UpdateListingRequest, files []listingapp.ImageFile) (*listingapp.ListingDetails, error)
	Delete(ctx context.Context, session identity.Session, id uuid.UUID) error
	ChangeStatus(ctx context.Context, session identity.Session, id uuid.UUID, status string) (*listingapp.ListingSummary, error)
	GetForEdit(ctx context.Context, session identity.Session, id uuid.UUID) (*listingapp.ListingDetails, error)
}

// ListingHandler handles listing HTTP requests
type ListingHandler struct {
	BaseHandler
	queries  ListingQueries
	commands ListingCommands
}

// NewListingHandler creates a new listing handler
func NewListingHandler(queries ListingQueries, commands ListingCommands) *ListingHandler {
	return &ListingHandler{queries: queries, commands: commands}
}

// Search godoc
// @Summary      Search listings
// @Description  Public search. Malformed or unknown parameters are ignored.
// @Tags         listings
// @Produce      json
// @Param        purpose query string false "FOR_RENT, FOR_SALE or SHORT_STAY"
// @Param        status query string false "AVAILABLE, PENDING, SOLD or RENTED"
// @Param        region query string false "Region ID"
// @Param        division query string false "Division ID"
// @Param        subdivision query string false "Subdivision ID"
// @Param        neighbourhood query string false "Neighborhood ID (alias: neighborhood)"
// @Param        houseType query string false "House type ID"
// @Param        minPrice query number false "Minimum price"
// @Param        maxPrice query number false "Maximum price"
// @Param        hasFence query bool false "Only fenced"
// @Param        hasWell query bool false "Only with a well"
// @Param        hasInternalToilet query bool false "Only with an internal toilet"
// @Param        hasParking query bool false "Only with parking"
// @Param        hasBalcony query bool false "Only with a balcony"
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Page size" default(12)
// @Success      200 {object} dto.Response{data=listingapp.SearchResult}
// @Router       /listings [get]
func (h *ListingHandler) Search(c *gin.Context) {
	params := make(map[string]string, len(c.Request.URL.Query()))
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}

	result, err := h.queries.Search(c.Request.Context(), params)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GetDetails godoc
// @Summary      Listing details
// @Tags         listings
// @Produce      json
// @Param        id path string true "Listing ID"
// @Success      200 {object} dto.Response{data=listingapp.ListingDetails}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /listings/{id} [get]
func (h *ListingHandler) GetDetails(c *gin.Context) {
	id, ok := h.pathUUID(c, "id", "Listing")
	if !ok {
		return
	}

	details, err := h.queries.GetDetails(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, details)
}

// ListMine godoc
// @Summary      My listings
// @Tags         listings
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Page size" default(12)
// @Success      200 {object} dto.Response{data=listingapp.SearchResult}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /listings/mine [get]
func (h *ListingHandler) ListMine(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	// malformed paging falls back to the defaults
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	result, err := h.queries.ListMine(c.Request.Context(), session, page, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GetForEdit godoc
// @Summary      Listing for editing
// @Description  Only the owner or an admin may load a listing for editing
// @Tags         listings
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Listing ID"
// @Success      200 {object} dto.Response{data=listingapp.ListingDetails}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /listings/{id}/edit [get]
func (h *ListingHandler) GetForEdit(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id", "Listing")
	if !ok {
		return
	}

	details, err := h.commands.GetForEdit(c.Request.Context(), session, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, details)
}

// Create godoc
// @Summary      Publish a listing
// @Description  Multipart form: `data` holds the listing JSON, `images` the image files
// @Tags         listings
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        data formData string true "Listing JSON (listingapp.CreateListingRequest)"
// @Param        images formData file true "Listing images"
// @Success      201 {object} dto.Response{data=listingapp.ListingCreatedResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /listings [post]
func (h *ListingHandler) Create(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req listingapp.CreateListingRequest
	files, cleanup, ok := h.bindListingForm(c, &req)
	if !ok {
		return
	}
	defer cleanup()

	result, err := h.commands.Create(c.Request.Context(), session, req, files)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result, "Listing published")
}

// Update godoc
// @Summary      Update a listing
// @Description  Multipart form: `data` holds the partial listing JSON with `imagesToDelete`, `images` the new files
// @Tags         listings
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Listing ID"
// @Param        data formData string true "Listing JSON (listingapp.UpdateListingRequest)"
// @Param        images formData file false "New listing images"
// @Success      200 {object} dto.Response{data=listingapp.ListingDetails}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /listings/{id} [put]
func (h *ListingHandler) Update(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id", "Listing")
	if !ok {
		return
	}

	var req listingapp.UpdateListingRequest
	files, cleanup, ok := h.bindListingForm(c, &req)
	if !ok {
		return
	}
	defer cleanup()

	details, err := h.commands.Update(c.Request.Context(), session, id, req, files)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, details, "Listing updated")
}

// ChangeStatus godoc
// @Summary      Change listing status
// @Tags         listings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Listing ID"
// @Param        request body listingapp.ChangeStatusRequest true "New status"
// @Success      200 {object} dto.Response{data=listingapp.ListingSummary}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /listings/{id}/status [patch]
func (h *ListingHandler) ChangeStatus(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id", "Listing")
	if !ok {
		return
	}

	var req listingapp.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	summary, err := h.commands.ChangeStatus(c.Request.Context(), session, id, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// Delete godoc
// @Summary      Delete a listing
// @Description  Removes the listing with its images
// @Tags         listings
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Listing ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /listings/{id} [delete]
func (h *ListingHandler) Delete(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id", "Listing")
	if !ok {
		return
	}

	if err := h.commands.Delete(c.Request.Context(), session, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, nil, "Listing deleted")
}

// bindListingForm decodes the `data` JSON into req, validates it and opens
// the `images` files. The returned cleanup closes the files.
func (h *ListingHandler) bindListingForm(c *gin.Context, req any) ([]listingapp.ImageFile, func(), bool) {
	form, err := c.MultipartForm()
	if err != nil {
		h.BadRequest(c, "Expected a multipart form")
		return nil, nil, false
	}

	data := form.Value[formFieldData]
	if len(data) == 0 || data[0] == "" {
		h.BadRequest(c, "Missing listing data")
		return nil, nil, false
	}
	if err := json.Unmarshal([]byte(data[0]), req); err != nil {
		h.BadRequest(c, "Listing data is not valid JSON")
		return nil, nil, false
	}
	if err := binding.Validator.ValidateStruct(req); err != nil {
		h.BindError(c, err)
		return nil, nil, false
	}

	files, cleanup, err := openImages(form.File[formFieldImages])
	if err != nil {
		if errors.Is(err, shared.ErrInvalidInput) {
			h.HandleError(c, err)
		} else {
			h.BadRequest(c, "Could not read uploaded images")
		}
		return nil, nil, false
	}
	return files, cleanup, true
}

func openImages(headers []*multipart.FileHeader) ([]listingapp.ImageFile, func(), error) {
	files := make([]listingapp.ImageFile, 0, len(headers))
	var opened []multipart.File
	cleanup := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		opened = append(opened, f)

		ct, err := imageContentType(f, fh.Header.Get("Content-Type"))
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		if ct == "" {
			cleanup()
			return nil, nil, shared.NewValidationError("Image " + fh.Filename + " content does not match its declared type")
		}
		files = append(files, listingapp.ImageFile{
			Filename:    fh.Filename,
			ContentType: ct,
			Size:        fh.Size,
			Content:     f,
		})
	}
	return files, cleanup, nil
}

// imageContentType sniffs the media type of f from its leading bytes and
// rewinds it. The sniffed type is authoritative. A declared type other than
// application/octet-stream must agree with it, otherwise "" is returned.
func imageContentType(f io.ReadSeeker, declared string) (string, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	sniffed := mediaType(http.DetectContentType(head[:n]))
	claimed := mediaType(declared)
	if claimed == "image/jpg" {
		claimed = "image/jpeg"
	}
	if claimed != "" && claimed != "application/octet-stream" && claimed != sniffed {
		return "", nil
	}
	return sniffed, nil
}

// mediaType strips parameters from a Content-Type value
func mediaType(value string) string {
	if value == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(value)
	if err != nil {
		return ""
	}
	return mt
}
