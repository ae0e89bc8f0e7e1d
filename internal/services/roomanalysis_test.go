package services

import (
	"image/color"
	"testing"

	"github.com/atabernermiller/taberner-studio-app/internal/types"
)

func solidImage(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	return encodePNG(t, w, h, func(x, y int) color.Color { return c })
}

func TestAnalyzeBrightUncluttered(t *testing.T) {
	rc := NewRoomCharacterizer(testLogger(t))

	got := rc.Analyze(solidImage(t, 120, 120, color.RGBA{R: 240, G: 240, B: 240, A: 255}))
	if got == nil {
		t.Fatalf("expected analysis for a decodable image")
	}
	if got.Brightness != types.BrightnessBright {
		t.Fatalf("brightness = %q, want %q", got.Brightness, types.BrightnessBright)
	}
	if got.ColorPalette.Saturation != types.SaturationMuted {
		t.Fatalf("saturation = %q, want %q", got.ColorPalette.Saturation, types.SaturationMuted)
	}
	if got.Contrast != types.ContrastLow {
		t.Fatalf("contrast = %q, want %q", got.Contrast, types.ContrastLow)
	}
	if got.TextureComplexity != types.TextureSimple {
		t.Fatalf("texture = %q, want %q", got.TextureComplexity, types.TextureSimple)
	}
	// A flat image has no directional edge signal, so the vertical-dominance
	// rule for modern rooms does not fire and the style falls through.
	if got.ArchitecturalStyle != types.StyleContemporary {
		t.Fatalf("style = %q, want %q", got.ArchitecturalStyle, types.StyleContemporary)
	}
	if got.SizeRecommendation != "large" {
		t.Fatalf("size recommendation = %q, want large", got.SizeRecommendation)
	}
	if len(got.PreferredStyles) == 0 || len(got.Reasoning) == 0 {
		t.Fatalf("expected preferences and reasoning to be populated: %+v", got)
	}
}

func TestAnalyzeDarkMutedReadsAsBedroom(t *testing.T) {
	rc := NewRoomCharacterizer(testLogger(t))

	got := rc.Analyze(solidImage(t, 120, 120, color.RGBA{R: 25, G: 25, B: 25, A: 255}))
	if got == nil {
		t.Fatalf("expected analysis for a decodable image")
	}
	if got.Brightness != types.BrightnessDark {
		t.Fatalf("brightness = %q, want %q", got.Brightness, types.BrightnessDark)
	}
	if got.RoomType != types.RoomBedroom {
		t.Fatalf("room type = %q, want %q", got.RoomType, types.RoomBedroom)
	}
}

func TestAnalyzeWideBrightReadsAsLivingRoom(t *testing.T) {
	rc := NewRoomCharacterizer(testLogger(t))

	got := rc.Analyze(solidImage(t, 300, 100, color.RGBA{R: 200, G: 190, B: 180, A: 255}))
	if got == nil {
		t.Fatalf("expected analysis for a decodable image")
	}
	if got.RoomType != types.RoomLivingRoom {
		t.Fatalf("room type = %q, want %q", got.RoomType, types.RoomLivingRoom)
	}
	if got.ColorPalette.Temperature != types.TemperatureWarm {
		t.Fatalf("temperature = %q, want %q", got.ColorPalette.Temperature, types.TemperatureWarm)
	}
	if got.ColorGuidance == "" {
		t.Fatalf("expected color guidance for a warm room")
	}
}

func TestAnalyzeUndecodableReturnsNil(t *testing.T) {
	rc := NewRoomCharacterizer(testLogger(t))
	if got := rc.Analyze([]byte("definitely not an image")); got != nil {
		t.Fatalf("expected nil analysis for undecodable bytes, got %+v", got)
	}
}
