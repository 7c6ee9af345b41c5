package uploads

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"showhome/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type sasRequest struct {
	FileName    string `json:"file_name" binding:"required"`
	ContentType string `json:"content_type"`
}

// IssueSAS handles POST /uploads/sas (admin)
func (h *Handler) IssueSAS(c *gin.Context) {
	var req sasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	ticket, err := h.service.IssueUploadURL(c.Request.Context(), req.FileName, req.ContentType)
	if err != nil {
		if errors.Is(err, ErrInvalidFileName) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "File name contains no usable characters")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Could not issue upload URL")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"upload": ticket})
}

// RegisterRoutes registers admin upload routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/uploads/sas", h.IssueSAS)
}
