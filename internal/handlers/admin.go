package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/atabernermiller/taberner-studio-app/internal/logger"
	"github.com/atabernermiller/taberner-studio-app/internal/services"
)

type AdminHandler struct {
	log        *logger.Logger
	catalogSvc services.CatalogService
	urlSvc     services.ImageURLService
	modSvc     services.ModerationService
}

func NewAdminHandler(log *logger.Logger, catalogSvc services.CatalogService, urlSvc services.ImageURLService, modSvc services.ModerationService) *AdminHandler {
	return &AdminHandler{
		log:        log.With("handler", "AdminHandler"),
		catalogSvc: catalogSvc,
		urlSvc:     urlSvc,
		modSvc:     modSvc,
	}
}

func (ah *AdminHandler) CacheStats(c *gin.Context) {
	RespondOK(c, gin.H{
		"catalog":    ah.catalogSvc.CacheStats(),
		"image_urls": ah.urlSvc.CacheStats(),
		"moderation": ah.modSvc.CacheStats(),
	})
}

func (ah *AdminHandler) ClearCache(c *gin.Context) {
	ah.catalogSvc.ClearCache()
	ah.urlSvc.ClearCache()
	ah.modSvc.ClearCache()
	ah.log.Info("all caches cleared")
	RespondOK(c, gin.H{
		"cleared":    true,
		"catalog":    ah.catalogSvc.CacheStats(),
		"image_urls": ah.urlSvc.CacheStats(),
		"moderation": ah.modSvc.CacheStats(),
	})
}
