package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devconnector/backend/internal/middleware"
	"github.com/devconnector/backend/internal/service"
	"github.com/devconnector/backend/internal/types"
)

// AuthHandler serves the session endpoints: who am I, and login.
type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.GET("", middleware.AuthMiddleware(h.authService), h.CurrentUser)
		auth.POST("", h.Login)
	}
}

// CurrentUser returns the authenticated principal's user record, minus
// the password hash.
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Login verifies credentials and returns a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationResponse(c, err)
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			errorsResponse(c, http.StatusBadRequest, "Invalid credentials")
			return
		}
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
