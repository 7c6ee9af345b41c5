package access

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"showhome/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createCodeRequest struct {
	DisplayName     string `json:"display_name"`
	KeepAliveMonths int    `json:"keep_alive_months" binding:"min=0"`
}

type upsertCodeRequest struct {
	Code            string `json:"code" binding:"required"`
	DisplayName     string `json:"display_name"`
	SharePath       string `json:"share_path"`
	KeepAliveMonths int    `json:"keep_alive_months" binding:"min=0"`
}

// ListCodes handles GET /customer-content
func (h *Handler) ListCodes(c *gin.Context) {
	codes, err := h.service.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"codes": codes})
}

// CreateCode handles POST /customer-content/code
func (h *Handler) CreateCode(c *gin.Context) {
	var req createCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	rec, err := h.service.Create(c.Request.Context(), req.DisplayName, req.KeepAliveMonths)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"code": rec.Project(time.Now())})
}

// UpsertCode handles POST /customer-content
func (h *Handler) UpsertCode(c *gin.Context) {
	var req upsertCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	rec, err := h.service.Upsert(c.Request.Context(), AccessCode{
		Code:            req.Code,
		DisplayName:     req.DisplayName,
		SharePath:       req.SharePath,
		KeepAliveMonths: req.KeepAliveMonths,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"code": rec.Project(time.Now())})
}

// DeleteCode handles DELETE /customer-content/:code
func (h *Handler) DeleteCode(c *gin.Context) {
	existed, err := h.service.Delete(c.Request.Context(), c.Param("code"))
	if err != nil {
		handleError(c, err)
		return
	}
	if !existed {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Access code not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// Purge handles POST /customer-content/purge
func (h *Handler) Purge(c *gin.Context) {
	purged, err := h.service.PurgeExpired(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"purged": purged})
}

// RegisterRoutes registers admin registry routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	cc := r.Group("/customer-content")
	{
		cc.GET("", h.ListCodes)
		cc.POST("", h.UpsertCode)
		cc.POST("/code", h.CreateCode)
		cc.POST("/purge", h.Purge)
		cc.DELETE("/:code", h.DeleteCode)
	}
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid access code")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Access code not found")
	case errors.Is(err, ErrGenerationExhausted):
		response.Error(c, http.StatusInternalServerError, "GENERATION_EXHAUSTED", "Could not generate a unique code")
	case errors.Is(err, ErrStoreUnavailable):
		response.Error(c, http.StatusBadGateway, "UPSTREAM_ERROR", "Registry store unavailable")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
