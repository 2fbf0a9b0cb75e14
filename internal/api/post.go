package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devconnector/backend/internal/middleware"
	"github.com/devconnector/backend/internal/service"
	"github.com/devconnector/backend/internal/types"
)

// PostHandler serves the post feed: create, read, delete, likes, comments.
// Every route requires authentication.
type PostHandler struct {
	postService *service.PostService
	authService *service.AuthService
}

func NewPostHandler(postService *service.PostService, authService *service.AuthService) *PostHandler {
	return &PostHandler{
		postService: postService,
		authService: authService,
	}
}

func (h *PostHandler) RegisterRoutes(router *gin.RouterGroup) {
	posts := router.Group("/posts")
	posts.Use(middleware.AuthMiddleware(h.authService))
	{
		posts.POST("", h.Create)
		posts.GET("", h.GetAll)
		posts.GET("/:id", h.Get)
		posts.DELETE("/:id", h.Delete)
		posts.PUT("/like/:id", h.Like)
		posts.PUT("/unlike/:id", h.Unlike)
		posts.POST("/comment/:id", h.AddComment)
		posts.DELETE("/comment/:id/:comment_id", h.RemoveComment)
	}
}

func (h *PostHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
		return
	}

	var req types.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationResponse(c, err)
		return
	}

	post, err := h.postService.Create(c.Request.Context(), userID, req.Text)
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) GetAll(c *gin.Context) {
	posts, err := h.postService.GetAll(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.postService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.postFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
		return
	}

	if err := h.postService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.postFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Post removed"})
}

func (h *PostHandler) Like(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
		return
	}

	post, err := h.postService.Like(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.postFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, post.Likes)
}

func (h *PostHandler) Unlike(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
		return
	}

	post, err := h.postService.Unlike(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.postFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, post.Likes)
}

func (h *PostHandler) AddComment(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
		return
	}

	var req types.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationResponse(c, err)
		return
	}

	post, err := h.postService.AddComment(c.Request.Context(), userID, c.Param("id"), req.Text)
	if err != nil {
		h.postFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, post.Comments)
}

func (h *PostHandler) RemoveComment(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
		return
	}

	post, err := h.postService.RemoveComment(c.Request.Context(), userID, c.Param("id"), c.Param("comment_id"))
	if err != nil {
		h.postFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, post.Comments)
}

func (h *PostHandler) postFailure(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": "Post not found"})
	case errors.Is(err, service.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": "Comment does not exist"})
	case errors.Is(err, service.ErrNotPostOwner):
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "User not authorized"})
	case errors.Is(err, service.ErrAlreadyLiked):
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Post already liked"})
	case errors.Is(err, service.ErrNotLiked):
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Post has not yet been liked"})
	default:
		serverError(c, err)
	}
}
