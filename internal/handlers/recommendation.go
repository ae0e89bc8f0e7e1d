package handlers

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/atabernermiller/taberner-studio-app/internal/logger"
	"github.com/atabernermiller/taberner-studio-app/internal/services"
)

// maxUploadBytes bounds room photo uploads; phone photos compress well under
// this.
const maxUploadBytes = 16 << 20

type RecommendationHandler struct {
	log    *logger.Logger
	recSvc services.RecommendationService
	modSvc services.ModerationService
}

func NewRecommendationHandler(log *logger.Logger, recSvc services.RecommendationService, modSvc services.ModerationService) *RecommendationHandler {
	return &RecommendationHandler{
		log:    log.With("handler", "RecommendationHandler"),
		recSvc: recSvc,
		modSvc: modSvc,
	}
}

type recommendRequest struct {
	Type        string `json:"type" binding:"required"`
	RoomImage   string `json:"room_image"`
	Preferences struct {
		Style   string `json:"style"`
		Subject string `json:"subject"`
	} `json:"preferences"`
}

// Recommend is the unified entry point: type "upload" carries a data-URL
// room photo, type "preferences" carries style/subject filters.
func (rh *RecommendationHandler) Recommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	switch req.Type {
	case "upload":
		img, err := decodeDataURL(req.RoomImage)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_image", err)
			return
		}
		rh.recommendFromImage(c, img, "room-upload.jpg")
	case "preferences":
		filters := services.Filters{}
		if req.Preferences.Style != "" {
			filters.Styles = []string{req.Preferences.Style}
		}
		if req.Preferences.Subject != "" {
			filters.Subjects = []string{req.Preferences.Subject}
		}
		RespondOK(c, rh.recSvc.RecommendByFilters(c.Request.Context(), filters))
	default:
		RespondError(c, http.StatusBadRequest, "invalid_request",
			fmt.Errorf("unknown recommendation type %q", req.Type))
	}
}

// UploadImage is the multipart variant of the photo path.
func (rh *RecommendationHandler) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request",
			fmt.Errorf("missing image file: %w", err))
		return
	}
	defer file.Close()

	img, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_image", err)
		return
	}
	if len(img) > maxUploadBytes {
		RespondError(c, http.StatusRequestEntityTooLarge, "image_too_large",
			fmt.Errorf("image exceeds %d bytes", maxUploadBytes))
		return
	}

	rh.recommendFromImage(c, img, header.Filename)
}

func (rh *RecommendationHandler) recommendFromImage(c *gin.Context, img []byte, filename string) {
	verdict := rh.modSvc.Check(c.Request.Context(), img, filename)
	if !verdict.Approved {
		rh.log.Warn("upload rejected by moderation", "filename", filename, "reason", verdict.Reason)
		RespondError(c, http.StatusBadRequest, "image_rejected", fmt.Errorf("%s", verdict.Reason))
		return
	}

	RespondOK(c, rh.recSvc.RecommendByImage(c.Request.Context(), img))
}

// decodeDataURL accepts both "data:image/jpeg;base64,..." payloads and bare
// base64 strings.
func decodeDataURL(s string) ([]byte, error) {
	if s == "" {
		return nil, fmt.Errorf("room_image is required for upload requests")
	}
	if idx := strings.Index(s, ","); idx >= 0 && strings.HasPrefix(s, "data:") {
		s = s[idx+1:]
	}
	img, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode image payload: %w", err)
	}
	if len(img) == 0 {
		return nil, fmt.Errorf("empty image payload")
	}
	if len(img) > maxUploadBytes {
		return nil, fmt.Errorf("image exceeds %d bytes", maxUploadBytes)
	}
	return img, nil
}
