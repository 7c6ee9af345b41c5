package content

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"showhome/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type savePageRequest struct {
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

type serviceCardRequest struct {
	Title     string `json:"title" binding:"required"`
	Summary   string `json:"summary"`
	Icon      string `json:"icon"`
	SortOrder int    `json:"sort_order"`
	IsActive  bool   `json:"is_active"`
}

// GetPage handles GET /content/pages/:slug (public)
func (h *Handler) GetPage(c *gin.Context) {
	page, err := h.service.GetPage(c.Request.Context(), c.Param("slug"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"page": page})
}

// SavePage handles PUT /content/pages/:slug (admin)
func (h *Handler) SavePage(c *gin.Context) {
	var req savePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	page, err := h.service.SavePage(c.Request.Context(), Page{
		Slug:     c.Param("slug"),
		Title:    req.Title,
		Sections: req.Sections,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"page": page})
}

// ListServices handles GET /content/services (public)
func (h *Handler) ListServices(c *gin.Context) {
	cards, err := h.service.ListServices(c.Request.Context(), false)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"services": cards})
}

// ListAllServices handles GET /content/services/all (admin), inactive
// included. The public listing path stays free for unauthenticated
// reads.
func (h *Handler) ListAllServices(c *gin.Context) {
	cards, err := h.service.ListServices(c.Request.Context(), true)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"services": cards})
}

// CreateService handles POST /content/services (admin)
func (h *Handler) CreateService(c *gin.Context) {
	var req serviceCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	card, err := h.service.CreateService(c.Request.Context(), ServiceCard{
		Title:     req.Title,
		Summary:   req.Summary,
		Icon:      req.Icon,
		SortOrder: req.SortOrder,
		IsActive:  req.IsActive,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"service": card})
}

// UpdateService handles PUT /content/services/:id (admin)
func (h *Handler) UpdateService(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid service card ID")
		return
	}

	var req serviceCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	card, err := h.service.UpdateService(c.Request.Context(), id, ServiceCard{
		Title:     req.Title,
		Summary:   req.Summary,
		Icon:      req.Icon,
		SortOrder: req.SortOrder,
		IsActive:  req.IsActive,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"service": card})
}

// DeleteService handles DELETE /content/services/:id (admin)
func (h *Handler) DeleteService(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid service card ID")
		return
	}
	if err := h.service.DeleteService(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RegisterPublicRoutes registers the read-only content routes.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	ct := r.Group("/content")
	{
		ct.GET("/pages/:slug", h.GetPage)
		ct.GET("/services", h.ListServices)
	}
}

// RegisterAdminRoutes registers content management routes.
func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	ct := r.Group("/content")
	{
		ct.PUT("/pages/:slug", h.SavePage)
		ct.GET("/services/all", h.ListAllServices)
		ct.POST("/services", h.CreateService)
		ct.PUT("/services/:id", h.UpdateService)
		ct.DELETE("/services/:id", h.DeleteService)
	}
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Content failed validation")
	case errors.Is(err, ErrPageNotFound), errors.Is(err, ErrServiceNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Content not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
