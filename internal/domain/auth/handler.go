package auth

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

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login handles POST /auth/login
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	token, err := h.service.Login(req.Password)
	if err != nil {
		if errors.Is(err, ErrLoginDisabled) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Admin login is not configured")
			return
		}
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid credentials")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"token": token})
}

// RegisterRoutes registers public auth routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/auth/login", h.Login)
}
