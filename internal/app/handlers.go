package app

import (
	"github.com/atabernermiller/taberner-studio-app/internal/handlers"
	"github.com/atabernermiller/taberner-studio-app/internal/logger"
)

type Handlers struct {
	Recommendation *handlers.RecommendationHandler
	Catalog        *handlers.CatalogHandler
	Mockup         *handlers.MockupHandler
	Admin          *handlers.AdminHandler
	Health         *handlers.HealthHandler
}

func wireHandlers(cfg Config, svcs Services, log *logger.Logger) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Recommendation: handlers.NewRecommendationHandler(log, svcs.Recommendation, svcs.Moderation),
		Catalog:        handlers.NewCatalogHandler(log, svcs.Recommendation, svcs.ImageURL),
		Mockup:         handlers.NewMockupHandler(log, svcs.Mockup),
		Admin:          handlers.NewAdminHandler(log, svcs.Catalog, svcs.ImageURL, svcs.Moderation),
		Health:         handlers.NewHealthHandler(cfg.AppEnv, cfg.MaxRecommendations, svcs.Catalog),
	}
}
