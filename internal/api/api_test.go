package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/devconnector/backend/internal/middleware"
	"github.com/devconnector/backend/internal/service"
	"github.com/devconnector/backend/internal/testhelpers"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDatabase(t)
	authSvc := service.NewAuthService(db, "test-secret", time.Hour)
	profileSvc := service.NewProfileService(db)
	postSvc := service.NewPostService(db)
	githubSvc := service.NewGithubService("", nil)

	router := gin.New()
	router.Use(middleware.CORS(nil))

	root := router.Group("/api")
	NewAuthHandler(authSvc).RegisterRoutes(root)
	NewUserHandler(authSvc, nil).RegisterRoutes(root)
	NewProfileHandler(profileSvc, authSvc, githubSvc).RegisterRoutes(root)
	NewPostHandler(postSvc, authSvc).RegisterRoutes(root)

	return router, db
}

func performRequest(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, router *gin.Engine, name, email string) string {
	t.Helper()

	w := performRequest(router, http.MethodPost, "/api/users", map[string]string{
		"name":     name,
		"email":    email,
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}
