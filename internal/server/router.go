package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/atabernermiller/taberner-studio-app/internal/handlers"
	"github.com/atabernermiller/taberner-studio-app/internal/middleware"
)

type RouterConfig struct {
	AllowedOrigins        []string
	RecommendationHandler *handlers.RecommendationHandler
	CatalogHandler        *handlers.CatalogHandler
	MockupHandler         *handlers.MockupHandler
	AdminHandler          *handlers.AdminHandler
	HealthHandler         *handlers.HealthHandler
	RecommendLimiter      *middleware.RateLimiter
	UploadLimiter         *middleware.RateLimiter
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/health", cfg.HealthHandler.HealthCheck)

	// Recommendation flows
	router.POST("/recommend", cfg.RecommendLimiter.Limit(), cfg.RecommendationHandler.Recommend)
	router.POST("/upload-image", cfg.UploadLimiter.Limit(), cfg.RecommendationHandler.UploadImage)

	// Catalog
	router.GET("/catalog/images/:filename", cfg.CatalogHandler.GetImage)

	api := router.Group("/api")
	{
		api.GET("/preferences-options", cfg.CatalogHandler.PreferencesOptions)
		api.POST("/generate-mockup", cfg.UploadLimiter.Limit(), cfg.MockupHandler.GenerateMockup)
		api.GET("/cache-stats", cfg.AdminHandler.CacheStats)
		api.POST("/clear-cache", cfg.AdminHandler.ClearCache)
	}

	return router
}
