package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atabernermiller/taberner-studio-app/internal/services"
)

type HealthHandler struct {
	mode       string
	maxRecs    int
	catalogSvc services.CatalogService
}

func NewHealthHandler(mode string, maxRecs int, catalogSvc services.CatalogService) *HealthHandler {
	return &HealthHandler{mode: mode, maxRecs: maxRecs, catalogSvc: catalogSvc}
}

func (hh *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":              "ok",
		"mode":                hh.mode,
		"max_recommendations": hh.maxRecs,
		"catalog_cache":       hh.catalogSvc.CacheStats(),
	})
}
