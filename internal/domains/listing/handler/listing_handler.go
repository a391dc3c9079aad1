package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"realestate-listing-api/internal/domains/listing/model"
	"realestate-listing-api/internal/domains/listing/service"
	"realestate-listing-api/internal/shared/response"
)

const basePath = "/api/Listings"

// ListingHandler handles HTTP requests for listing domain
type ListingHandler struct {
	service service.Service
}

// NewListingHandler creates a new listing handler instance
func NewListingHandler(service service.Service) *ListingHandler {
	return &ListingHandler{
		service: service,
	}
}

// RegisterRoutes mount CRUD routes dưới /api/Listings
func RegisterRoutes(r gin.IRouter, h *ListingHandler) {
	listings := r.Group(basePath)
	{
		listings.GET("", h.GetAll)
		listings.GET("/:id", h.GetByID)
		listings.POST("", h.Create)
		listings.PUT("/:id", h.Update)
		listings.DELETE("/:id", h.Delete)
	}
}

// GetAll handles GET /api/Listings
func (h *ListingHandler) GetAll(c *gin.Context) {
	result, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.OK(c, result)
}

// GetByID handles GET /api/Listings/:id
func (h *ListingHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if result == nil {
		response.NotFound(c)
		return
	}

	response.OK(c, result)
}

// Create handles POST /api/Listings
func (h *ListingHandler) Create(c *gin.Context) {
	var req model.CreateListingRequest
	if !bindAndValidate(c, &req, &req.ListingInput) {
		return
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Created(c, basePath+"/"+result.ID.String(), result)
}

// Update handles PUT /api/Listings/:id
func (h *ListingHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateListingRequest
	if !bindAndValidate(c, &req, &req.ListingInput) {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if !updated {
		response.NotFound(c)
		return
	}

	response.NoContent(c)
}

// Delete handles DELETE /api/Listings/:id
func (h *ListingHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if !deleted {
		response.NotFound(c)
		return
	}

	response.NoContent(c)
}

// parseID: id không phải UUID coi như route không tồn tại (404)
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c)
		return uuid.Nil, false
	}
	return id, true
}

// bindAndValidate trả 400 khi body lỗi hoặc vi phạm rule; service không được gọi
func bindAndValidate(c *gin.Context, req interface{}, input *model.ListingInput) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, []model.ValidationFailure{
			{Field: "body", Message: "Request body is not valid JSON: " + err.Error()},
		})
		return false
	}

	if failures := model.ValidateListing(*input); len(failures) > 0 {
		response.BadRequest(c, failures)
		return false
	}
	return true
}
