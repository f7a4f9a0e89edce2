package router

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/aduvert/recettes/config"
	"github.com/aduvert/recettes/internal/api"
	"github.com/aduvert/recettes/internal/middleware"
	"github.com/aduvert/recettes/internal/service"
)

// Setup configures the application routes: the JSON API, the static web
// client, the local uploads directory and a JSON 404 for everything else.
func Setup(
	cfg *config.Config,
	recipeHandler *api.RecipeHandler,
	imageHandler *api.ImageHandler,
	images service.ImageStore,
	logger zerolog.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS())

	apiGroup := router.Group("/api")
	recipeHandler.RegisterRoutes(apiGroup)
	imageHandler.RegisterRoutes(apiGroup)

	// Client application shell and assets.
	webDir := cfg.Server.WebDir
	router.StaticFile("/", filepath.Join(webDir, "index.html"))
	router.Static("/css", filepath.Join(webDir, "css"))
	router.Static("/js", filepath.Join(webDir, "js"))

	// Uploaded images are served by the same process when stored locally;
	// with the S3 backend the client loads them from the bucket URL.
	if local, ok := images.(*service.LocalImageStore); ok {
		router.Static("/media/uploads", local.Dir())
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route non trouvée"})
	})

	return router
}
