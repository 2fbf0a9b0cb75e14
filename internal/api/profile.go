package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/devconnector/backend/internal/middleware"
	"github.com/devconnector/backend/internal/service"
	"github.com/devconnector/backend/internal/types"
)

// ProfileHandler serves the profile aggregate: upsert, reads, the
// experience/education collections, account deletion, and the GitHub
// repository proxy.
type ProfileHandler struct {
	profileService *service.ProfileService
	authService    *service.AuthService
	githubService  *service.GithubService
}

func NewProfileHandler(profileService *service.ProfileService, authService *service.AuthService, githubService *service.GithubService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		authService:    authService,
		githubService:  githubService,
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	authed := middleware.AuthMiddleware(h.authService)

	profile := router.Group("/profile")
	{
		profile.GET("", h.GetAll)
		profile.GET("/me", authed, h.GetOwn)
		profile.POST("", authed, h.Upsert)
		profile.DELETE("", authed, h.DeleteAccount)
		profile.GET("/user/:user_id", h.GetByUserID)
		profile.PUT("/experience", authed, h.AddExperience)
		profile.DELETE("/experience/:exp_id", authed, h.RemoveExperience)
		profile.PUT("/education", authed, h.AddEducation)
		profile.DELETE("/education/:edu_id", authed, h.RemoveEducation)
		profile.GET("/github/:username", h.GithubRepos)
	}
}

// GetOwn returns the profile owned by the authenticated principal.
func (h *ProfileHandler) GetOwn(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
		return
	}

	profile, err := h.profileService.GetByUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "There is no profile for this user"})
			return
		}
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetAll lists every profile, each with the owner's public summary.
func (h *ProfileHandler) GetAll(c *gin.Context) {
	profiles, err := h.profileService.GetAll(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, profiles)
}

// GetByUserID resolves a profile by user id. A malformed id and a missing
// profile produce the same response.
func (h *ProfileHandler) GetByUserID(c *gin.Context) {
	profile, err := h.profileService.GetByUserID(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Profile not found"})
			return
		}
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Upsert creates or updates the principal's profile from the supplied
// partial field set.
func (h *ProfileHandler) Upsert(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
		return
	}

	var req types.UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationResponse(c, err)
		return
	}

	profile, err := h.profileService.Upsert(c.Request.Context(), userID, &req)
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// DeleteAccount removes the principal's posts, profile, and user record.
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
		return
	}

	if err := h.profileService.DeleteAccount(c.Request.Context(), userID); err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "User deleted"})
}

// AddExperience prepends a work-history entry to the principal's profile.
func (h *ProfileHandler) AddExperience(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
		return
	}

	var req types.AddExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationResponse(c, err)
		return
	}

	profile, err := h.profileService.AddExperience(c.Request.Context(), userID, &req)
	if err != nil {
		h.profileFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// RemoveExperience deletes the entry with the given id; an id that matches
// nothing leaves the profile as it was.
func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
		return
	}

	entryID, err := uuid.Parse(c.Param("exp_id"))
	if err != nil {
		// An unparseable id cannot match any entry; same no-op as an
		// unknown one.
		entryID = uuid.Nil
	}

	profile, err := h.profileService.RemoveExperience(c.Request.Context(), userID, entryID)
	if err != nil {
		h.profileFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// AddEducation prepends an education entry to the principal's profile.
func (h *ProfileHandler) AddEducation(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
		return
	}

	var req types.AddEducationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationResponse(c, err)
		return
	}

	profile, err := h.profileService.AddEducation(c.Request.Context(), userID, &req)
	if err != nil {
		h.profileFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// RemoveEducation mirrors RemoveExperience for education entries.
func (h *ProfileHandler) RemoveEducation(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
		return
	}

	entryID, err := uuid.Parse(c.Param("edu_id"))
	if err != nil {
		entryID = uuid.Nil
	}

	profile, err := h.profileService.RemoveEducation(c.Request.Context(), userID, entryID)
	if err != nil {
		h.profileFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GithubRepos proxies the user's five most recent public repositories.
func (h *ProfileHandler) GithubRepos(c *gin.Context) {
	body, err := h.githubService.Repos(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrNoGithubProfile) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "No Github profile found"})
			return
		}
		serverError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}

func (h *ProfileHandler) profileFailure(c *gin.Context, err error) {
	if errors.Is(err, service.ErrProfileNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "There is no profile for this user"})
		return
	}
	serverError(c, err)
}
