package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devconnector/backend/internal/middleware"
	"github.com/devconnector/backend/internal/service"
	"github.com/devconnector/backend/internal/types"
)

// Avatar uploads are capped well above any reasonable profile picture.
const maxAvatarBytes = 5 << 20

// UserHandler serves registration and avatar upload.
type UserHandler struct {
	authService   *service.AuthService
	avatarService *service.AvatarService
}

// NewUserHandler builds the handler. avatarService may be nil when no
// bucket is configured; the upload route is skipped in that case.
func NewUserHandler(authService *service.AuthService, avatarService *service.AvatarService) *UserHandler {
	return &UserHandler{
		authService:   authService,
		avatarService: avatarService,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.POST("", h.Register)
		if h.avatarService != nil {
			users.POST("/avatar", middleware.AuthMiddleware(h.authService), h.UploadAvatar)
		}
	}
}

// Register creates a user and returns a bearer token.
func (h *UserHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationResponse(c, err)
		return
	}

	token, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			errorsResponse(c, http.StatusBadRequest, "User already exists")
			return
		}
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// UploadAvatar stores a multipart image upload and returns the updated user.
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
		return
	}

	header, err := c.FormFile("avatar")
	if err != nil {
		errorsResponse(c, http.StatusBadRequest, "Avatar file is required")
		return
	}
	if header.Size > maxAvatarBytes {
		errorsResponse(c, http.StatusBadRequest, "Avatar file is too large")
		return
	}

	file, err := header.Open()
	if err != nil {
		serverError(c, err)
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, maxAvatarBytes))
	if err != nil {
		serverError(c, err)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	user, err := h.avatarService.Upload(c.Request.Context(), userID, header.Filename, contentType, data)
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
