package app

import (
	"strings"
	"time"

	"github.com/atabernermiller/taberner-studio-app/internal/logger"
	"github.com/atabernermiller/taberner-studio-app/internal/utils"
)

type Config struct {
	// AppEnv selects the collaborator set: "aws" or "local".
	AppEnv string

	Port           string
	AllowedOrigins []string

	MaxRecommendations  int
	ConfidenceThreshold float64
	ContextBonusWeight  float64
	QualityRatio        float64

	CatalogTTL    time.Duration
	ImageURLTTL   time.Duration
	ModerationTTL time.Duration

	RecommendPerMinute int
	UploadPerMinute    int

	// Local mode only.
	LocalCatalogPath   string
	LocalQuarantineDir string
}

func LoadConfig(log *logger.Logger) Config {
	origins := utils.GetEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173", log)

	return Config{
		AppEnv:         utils.GetEnv("APP_ENV", "aws", log),
		Port:           utils.GetEnv("PORT", "8080", log),
		AllowedOrigins: splitOrigins(origins),

		MaxRecommendations:  utils.GetEnvAsInt("MAX_RECOMMENDATIONS", 8, log),
		ConfidenceThreshold: utils.GetEnvAsFloat("CONFIDENCE_THRESHOLD", 0.7, log),
		ContextBonusWeight:  utils.GetEnvAsFloat("CONTEXT_BONUS_WEIGHT", 50, log),
		QualityRatio:        utils.GetEnvAsFloat("QUALITY_RATIO", 0.6, log),

		CatalogTTL:    time.Duration(utils.GetEnvAsInt("CATALOG_CACHE_TTL", 300, log)) * time.Second,
		ImageURLTTL:   time.Duration(utils.GetEnvAsInt("IMAGE_URL_CACHE_TTL", 3600, log)) * time.Second,
		ModerationTTL: time.Duration(utils.GetEnvAsInt("MODERATION_CACHE_TTL", 600, log)) * time.Second,

		RecommendPerMinute: utils.GetEnvAsInt("RECOMMEND_RATE_LIMIT", 30, log),
		UploadPerMinute:    utils.GetEnvAsInt("UPLOAD_RATE_LIMIT", 10, log),

		LocalCatalogPath:   utils.GetEnv("LOCAL_CATALOG_PATH", "catalog/catalog.json", log),
		LocalQuarantineDir: utils.GetEnv("LOCAL_QUARANTINE_DIR", "quarantine", log),
	}
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
