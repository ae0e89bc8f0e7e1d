package services

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"

	"github.com/atabernermiller/taberner-studio-app/internal/logger"
)

const (
	// mockupMaxArtworkRatio caps the composited artwork at this fraction of
	// the room photo's dimensions.
	mockupMaxArtworkRatio = 0.30
	mockupFrameWidth      = 8
	mockupShadowOffset    = 6
	mockupJPEGQuality     = 90
	mockupCaptionSize     = 18
)

// MockupService composites an artwork print onto a customer's room photo so
// they can preview it on their own wall. Position is given in percent of the
// room photo's width and height, anchored at the artwork's center.
type MockupService interface {
	Compose(room, artwork []byte, caption string, xPct, yPct float64) ([]byte, error)
}

type mockupService struct {
	log *logger.Logger

	// captionFace is nil when no font is configured; captions are skipped.
	captionFace font.Face
}

func NewMockupService(log *logger.Logger) MockupService {
	serviceLog := log.With("service", "MockupService")

	ms := &mockupService{log: serviceLog}
	fontPath := os.Getenv("MOCKUP_FONT")
	if strings.TrimSpace(fontPath) != "" {
		face, err := loadFontFace(fontPath, mockupCaptionSize)
		if err != nil {
			serviceLog.Warn("could not load mockup caption font, captions disabled", "font", fontPath, "error", err)
		} else {
			ms.captionFace = face
		}
	}
	return ms
}

func (ms *mockupService) Compose(room, artwork []byte, caption string, xPct, yPct float64) ([]byte, error) {
	roomImg, _, err := image.Decode(bytes.NewReader(room))
	if err != nil {
		return nil, fmt.Errorf("decode room image: %w", err)
	}
	artImg, _, err := image.Decode(bytes.NewReader(artwork))
	if err != nil {
		return nil, fmt.Errorf("decode artwork image: %w", err)
	}

	rb := roomImg.Bounds()
	roomW, roomH := rb.Dx(), rb.Dy()
	if roomW == 0 || roomH == 0 {
		return nil, fmt.Errorf("room image has empty bounds")
	}

	artW, artH := scaledArtworkSize(artImg.Bounds(), roomW, roomH)
	scaled := image.NewRGBA(image.Rect(0, 0, artW, artH))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), artImg, artImg.Bounds(), draw.Over, nil)

	cx := clamp01(xPct/100) * float64(roomW)
	cy := clamp01(yPct/100) * float64(roomH)
	x := cx - float64(artW)/2
	y := cy - float64(artH)/2

	dc := gg.NewContext(roomW, roomH)
	dc.DrawImage(roomImg, -rb.Min.X, -rb.Min.Y)

	// Drop shadow, then a white mat so the print reads as framed
	dc.SetRGBA(0, 0, 0, 0.35)
	dc.DrawRectangle(x-mockupFrameWidth+mockupShadowOffset, y-mockupFrameWidth+mockupShadowOffset,
		float64(artW+2*mockupFrameWidth), float64(artH+2*mockupFrameWidth))
	dc.Fill()
	dc.SetColor(color.White)
	dc.DrawRectangle(x-mockupFrameWidth, y-mockupFrameWidth,
		float64(artW+2*mockupFrameWidth), float64(artH+2*mockupFrameWidth))
	dc.Fill()
	dc.DrawImage(scaled, int(x), int(y))

	if caption != "" && ms.captionFace != nil {
		dc.SetFontFace(ms.captionFace)
		dc.SetRGBA(1, 1, 1, 0.9)
		tw, th := dc.MeasureString(caption)
		dc.DrawString(caption, cx-tw/2, y+float64(artH)+mockupFrameWidth+th+6)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dc.Image(), &jpeg.Options{Quality: mockupJPEGQuality}); err != nil {
		return nil, fmt.Errorf("encode mockup: %w", err)
	}
	ms.log.Debug("mockup composed", "room_w", roomW, "room_h", roomH, "art_w", artW, "art_h", artH)
	return buf.Bytes(), nil
}

// scaledArtworkSize fits the artwork inside the ratio cap while preserving
// its aspect ratio. Never returns a zero dimension.
func scaledArtworkSize(art image.Rectangle, roomW, roomH int) (int, int) {
	maxW := float64(roomW) * mockupMaxArtworkRatio
	maxH := float64(roomH) * mockupMaxArtworkRatio
	aw, ah := float64(art.Dx()), float64(art.Dy())
	if aw <= 0 || ah <= 0 {
		return 1, 1
	}
	scale := maxW / aw
	if s := maxH / ah; s < scale {
		scale = s
	}
	w := int(aw * scale)
	h := int(ah * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	face := truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	return face, nil
}
