package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/atabernermiller/taberner-studio-app/internal/logger"
	"github.com/atabernermiller/taberner-studio-app/internal/services"
)

type MockupHandler struct {
	log       *logger.Logger
	mockupSvc services.MockupService
}

func NewMockupHandler(log *logger.Logger, mockupSvc services.MockupService) *MockupHandler {
	return &MockupHandler{
		log:       log.With("handler", "MockupHandler"),
		mockupSvc: mockupSvc,
	}
}

// GenerateMockup composites an artwork onto a room photo. Multipart fields:
// "room" and "artwork" files, optional "x" and "y" center position in
// percent (default 50/35, roughly eye level on a wall), optional "title"
// caption.
func (mh *MockupHandler) GenerateMockup(c *gin.Context) {
	room, err := readFormImage(c, "room")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	artwork, err := readFormImage(c, "artwork")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	x := formFloat(c, "x", 50)
	y := formFloat(c, "y", 35)
	caption := c.PostForm("title")

	out, err := mh.mockupSvc.Compose(room, artwork, caption, x, y)
	if err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "mockup_failed", err)
		return
	}
	c.Data(http.StatusOK, "image/jpeg", out)
}

func readFormImage(c *gin.Context, field string) ([]byte, error) {
	file, _, err := c.Request.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("missing %s file: %w", field, err)
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s file: %w", field, err)
	}
	if len(data) > maxUploadBytes {
		return nil, fmt.Errorf("%s file exceeds %d bytes", field, maxUploadBytes)
	}
	return data, nil
}

func formFloat(c *gin.Context, field string, fallback float64) float64 {
	raw := c.PostForm(field)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}
