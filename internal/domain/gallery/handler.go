package gallery

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"showhome/internal/domain/access"
	"showhome/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListVideos handles GET /videos?code=ABCDE. Without a code the
// default folder is listed with a null title.
func (h *Handler) ListVideos(c *gin.Context) {
	raw := c.Query("code")
	if raw == "" {
		listing, err := h.service.ListDefault(c.Request.Context())
		if err != nil {
			handleError(c, err)
			return
		}
		response.Success(c, http.StatusOK, listing)
		return
	}

	// Malformed codes are rejected before any registry or drive call.
	code := access.NormalizeCode(raw)
	if !access.ValidCode(code) {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Access code must be 5 letters or digits")
		return
	}

	listing, err := h.service.ListByCode(c.Request.Context(), code)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, listing)
}

// RegisterRoutes registers public gallery routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/videos", h.ListVideos)
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, access.ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Access code must be 5 letters or digits")
	case errors.Is(err, access.ErrNotFound), errors.Is(err, ErrPathNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "No media found for this code")
	case errors.Is(err, access.ErrStoreUnavailable), errors.Is(err, ErrUpstream):
		response.Error(c, http.StatusBadGateway, "UPSTREAM_ERROR", "Media source is temporarily unavailable")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
