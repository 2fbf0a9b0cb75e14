package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconnector/backend/internal/models"
)

func upsertProfile(t *testing.T, router *gin.Engine, token string, body map[string]interface{}) models.Profile {
	t.Helper()

	w := performRequest(router, http.MethodPost, "/api/profile", body, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var profile models.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	return profile
}

func TestProfileLifecycle(t *testing.T) {
	router, _ := setupTestRouter(t)
	token := registerUser(t, router, "Jane", "jane@example.com")

	// No profile yet.
	w := performRequest(router, http.MethodGet, "/api/profile/me", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "There is no profile for this user")

	profile := upsertProfile(t, router, token, map[string]interface{}{
		"status": "Developer",
		"skills": "js, ts, go",
	})
	assert.Equal(t, "Developer", profile.Status)
	assert.Equal(t, []string{"js", "ts", "go"}, []string(profile.Skills))
	assert.Equal(t, "Jane", profile.User.Name)

	// Second upsert updates the same profile in place.
	updated := upsertProfile(t, router, token, map[string]interface{}{
		"status":  "Senior Developer",
		"skills":  "go",
		"company": "Acme",
	})
	assert.Equal(t, profile.ID, updated.ID)
	assert.Equal(t, "Senior Developer", updated.Status)
	assert.Equal(t, "Acme", updated.Company)

	w = performRequest(router, http.MethodGet, "/api/profile/user/"+profile.UserID.String(), nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, http.MethodGet, "/api/profile", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var all []models.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 1)

	w = performRequest(router, http.MethodDelete, "/api/profile", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "User deleted")

	// The account is gone so the token no longer resolves a profile.
	w = performRequest(router, http.MethodGet, "/api/profile/user/"+profile.UserID.String(), nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Profile not found")
}

func TestProfileValidation(t *testing.T) {
	router, _ := setupTestRouter(t)
	token := registerUser(t, router, "Jane", "jane@example.com")

	w := performRequest(router, http.MethodPost, "/api/profile", map[string]interface{}{
		"company": "Acme",
	}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Status is required")
	assert.Contains(t, w.Body.String(), "Skills is required")
}

func TestProfileByUserIDNotFound(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := performRequest(router, http.MethodGet, "/api/profile/user/"+uuid.NewString(), nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Profile not found")

	// A malformed id reads as not-found, not as a server error.
	w = performRequest(router, http.MethodGet, "/api/profile/user/not-a-uuid", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Profile not found")
}

func TestExperienceEndpoints(t *testing.T) {
	router, _ := setupTestRouter(t)
	token := registerUser(t, router, "Jane", "jane@example.com")
	upsertProfile(t, router, token, map[string]interface{}{
		"status": "Developer",
		"skills": "go",
	})

	w := performRequest(router, http.MethodPut, "/api/profile/experience", map[string]interface{}{
		"title":   "Engineer",
		"company": "Acme",
		"from":    "2020-01-01",
		"current": true,
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var profile models.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	require.Len(t, profile.Experience, 1)
	assert.Equal(t, "Engineer", profile.Experience[0].Title)
	require.NotEqual(t, uuid.Nil, profile.Experience[0].ID)

	w = performRequest(router, http.MethodDelete, "/api/profile/experience/"+profile.Experience[0].ID.String(), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Empty(t, profile.Experience)

	// Removing an id that does not exist leaves the profile unchanged.
	w = performRequest(router, http.MethodDelete, "/api/profile/experience/"+uuid.NewString(), nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExperienceValidation(t *testing.T) {
	router, _ := setupTestRouter(t)
	token := registerUser(t, router, "Jane", "jane@example.com")
	upsertProfile(t, router, token, map[string]interface{}{
		"status": "Developer",
		"skills": "go",
	})

	w := performRequest(router, http.MethodPut, "/api/profile/experience", map[string]interface{}{
		"title": "Engineer",
	}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Company is required")
	assert.Contains(t, w.Body.String(), "From is required")
}

func TestEducationEndpoints(t *testing.T) {
	router, _ := setupTestRouter(t)
	token := registerUser(t, router, "Jane", "jane@example.com")
	upsertProfile(t, router, token, map[string]interface{}{
		"status": "Developer",
		"skills": "go",
	})

	w := performRequest(router, http.MethodPut, "/api/profile/education", map[string]interface{}{
		"school":       "State University",
		"degree":       "BSc",
		"fieldofstudy": "CS",
		"from":         "2015-09-01",
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var profile models.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	require.Len(t, profile.Education, 1)
	assert.Equal(t, "State University", profile.Education[0].School)

	w = performRequest(router, http.MethodDelete, "/api/profile/education/"+profile.Education[0].ID.String(), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Empty(t, profile.Education)
}

func TestNestedEditsWithoutProfile(t *testing.T) {
	router, _ := setupTestRouter(t)
	token := registerUser(t, router, "Jane", "jane@example.com")

	w := performRequest(router, http.MethodPut, "/api/profile/experience", map[string]interface{}{
		"title":   "Engineer",
		"company": "Acme",
		"from":    "2020-01-01",
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "There is no profile for this user")
}
