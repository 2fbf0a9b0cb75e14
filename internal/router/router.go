package router

import (
	"github.com/gin-gonic/gin"

	"github.com/devconnector/backend/internal/api"
	"github.com/devconnector/backend/internal/middleware"
)

// SetupRouter assembles the REST surface under /api.
func SetupRouter(
	authHandler *api.AuthHandler,
	userHandler *api.UserHandler,
	profileHandler *api.ProfileHandler,
	postHandler *api.PostHandler,
	corsOrigins []string,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(corsOrigins))

	root := router.Group("/api")
	authHandler.RegisterRoutes(root)
	userHandler.RegisterRoutes(root)
	profileHandler.RegisterRoutes(root)
	postHandler.RegisterRoutes(root)

	return router
}
