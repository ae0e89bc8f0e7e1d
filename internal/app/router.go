package app

import (
	"github.com/gin-gonic/gin"

	"github.com/atabernermiller/taberner-studio-app/internal/logger"
	"github.com/atabernermiller/taberner-studio-app/internal/middleware"
	"github.com/atabernermiller/taberner-studio-app/internal/server"
)

func wireRouter(cfg Config, h Handlers, log *logger.Logger) *gin.Engine {
	log.Info("Wiring router...")
	return server.NewRouter(server.RouterConfig{
		AllowedOrigins:        cfg.AllowedOrigins,
		RecommendationHandler: h.Recommendation,
		CatalogHandler:        h.Catalog,
		MockupHandler:         h.Mockup,
		AdminHandler:          h.Admin,
		HealthHandler:         h.Health,
		RecommendLimiter:      middleware.NewRateLimiter(cfg.RecommendPerMinute, log),
		UploadLimiter:         middleware.NewRateLimiter(cfg.UploadPerMinute, log),
	})
}
