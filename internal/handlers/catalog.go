package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/atabernermiller/taberner-studio-app/internal/logger"
	"github.com/atabernermiller/taberner-studio-app/internal/services"
	"github.com/atabernermiller/taberner-studio-app/internal/types"
)

type CatalogHandler struct {
	log    *logger.Logger
	recSvc services.RecommendationService
	urlSvc services.ImageURLService
}

func NewCatalogHandler(log *logger.Logger, recSvc services.RecommendationService, urlSvc services.ImageURLService) *CatalogHandler {
	return &CatalogHandler{
		log:    log.With("handler", "CatalogHandler"),
		recSvc: recSvc,
		urlSvc: urlSvc,
	}
}

// PreferencesOptions backs the filter dropdowns in the preferences flow.
func (ch *CatalogHandler) PreferencesOptions(c *gin.Context) {
	RespondOK(c, ch.recSvc.Options(c.Request.Context()))
}

// GetImage redirects to the (cached) signed URL for a catalog image.
func (ch *CatalogHandler) GetImage(c *gin.Context) {
	filename := c.Param("filename")
	if filename == "" || strings.Contains(filename, "/") || strings.Contains(filename, "..") {
		RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid filename"))
		return
	}

	resolved := ch.urlSvc.Resolve(c.Request.Context(), []types.Artwork{{Filename: filename}})
	url := resolved[0].ImageURL
	if url == "" {
		RespondError(c, http.StatusNotFound, "image_not_found",
			fmt.Errorf("no URL available for %s", filename))
		return
	}
	c.Redirect(http.StatusFound, url)
}
