package app

import (
	"math/rand"
	"time"

	"github.com/atabernermiller/taberner-studio-app/internal/logger"
	"github.com/atabernermiller/taberner-studio-app/internal/services"
)

type Services struct {
	Catalog        services.CatalogService
	Recommendation services.RecommendationService
	Moderation     services.ModerationService
	ImageURL       services.ImageURLService
	Mockup         services.MockupService
}

func wireServices(cfg Config, clients Clients, log *logger.Logger) Services {
	log.Info("Wiring services...")

	catalogSvc := services.NewCatalogService(clients.Catalog, cfg.CatalogTTL, log)
	urlSvc := services.NewImageURLService(clients.Images, cfg.ImageURLTTL, log)
	moderationSvc := services.NewModerationService(clients.Classifier, clients.Images, cfg.ModerationTTL, log)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	recSvc := services.NewRecommendationService(
		catalogSvc,
		services.NewColorSampler(log),
		services.NewRoomCharacterizer(log),
		services.NewScoringEngine(cfg.ContextBonusWeight, log),
		services.NewSelectionPolicy(cfg.MaxRecommendations, cfg.QualityRatio, rng, log),
		urlSvc,
		cfg.MaxRecommendations,
		cfg.ConfidenceThreshold,
		log,
	)

	return Services{
		Catalog:        catalogSvc,
		Recommendation: recSvc,
		Moderation:     moderationSvc,
		ImageURL:       urlSvc,
		Mockup:         services.NewMockupService(log),
	}
}
