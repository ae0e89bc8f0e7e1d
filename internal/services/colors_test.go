package services

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/atabernermiller/taberner-studio-app/internal/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}
	return log
}

// encodePNG renders a w x h image where each pixel's color is chosen by fill.
func encodePNG(t *testing.T, w, h int, fill func(x, y int) color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, fill(x, y))
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

// quadImage returns a 200x200 PNG split into four solid quadrants.
func quadImage(t *testing.T) []byte {
	t.Helper()
	quads := [4]color.RGBA{
		{R: 220, G: 40, B: 40, A: 255},
		{R: 40, G: 200, B: 60, A: 255},
		{R: 40, G: 60, B: 220, A: 255},
		{R: 240, G: 230, B: 200, A: 255},
	}
	return encodePNG(t, 200, 200, func(x, y int) color.Color {
		idx := 0
		if x >= 100 {
			idx++
		}
		if y >= 100 {
			idx += 2
		}
		return quads[idx]
	})
}

func TestExtractWeightsSumToOne(t *testing.T) {
	sampler := NewColorSampler(testLogger(t))

	samples := sampler.Extract(quadImage(t))
	if len(samples) == 0 {
		t.Fatalf("expected samples from a decodable image, got none")
	}
	if len(samples) > colorCount {
		t.Fatalf("got %d samples, want at most %d", len(samples), colorCount)
	}

	sum := 0.0
	for _, s := range samples {
		if s.Weight <= 0 {
			t.Fatalf("sample %s has non-positive weight %v", s.Hex, s.Weight)
		}
		sum += s.Weight
	}
	if math.Abs(sum-1.0) > 1e-6 {
		t.Fatalf("weights sum to %v, want 1.0", sum)
	}

	for i := 1; i < len(samples); i++ {
		if samples[i].Weight > samples[i-1].Weight {
			t.Fatalf("samples not sorted by weight descending at index %d", i)
		}
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	sampler := NewColorSampler(testLogger(t))
	img := quadImage(t)

	first := sampler.Extract(img)
	for run := 0; run < 3; run++ {
		got := sampler.Extract(img)
		if len(got) != len(first) {
			t.Fatalf("run %d: got %d samples, want %d", run, len(got), len(first))
		}
		for i := range got {
			if got[i] != first[i] {
				t.Fatalf("run %d: sample %d = %+v, want %+v", run, i, got[i], first[i])
			}
		}
	}
}

func TestExtractSolidImage(t *testing.T) {
	sampler := NewColorSampler(testLogger(t))
	img := encodePNG(t, 50, 50, func(x, y int) color.Color {
		return color.RGBA{R: 10, G: 20, B: 30, A: 255}
	})

	samples := sampler.Extract(img)
	if len(samples) == 0 {
		t.Fatalf("expected at least one sample for a solid image")
	}
	if samples[0].Hex != "#0a141e" {
		t.Fatalf("dominant color = %s, want #0a141e", samples[0].Hex)
	}
	if math.Abs(samples[0].Weight-1.0) > 1e-6 {
		t.Fatalf("dominant weight = %v, want 1.0", samples[0].Weight)
	}
}

func TestExtractRejectsGarbage(t *testing.T) {
	sampler := NewColorSampler(testLogger(t))
	if samples := sampler.Extract([]byte("not an image at all")); len(samples) != 0 {
		t.Fatalf("expected no samples for undecodable bytes, got %d", len(samples))
	}
	if samples := sampler.Extract(nil); len(samples) != 0 {
		t.Fatalf("expected no samples for nil input, got %d", len(samples))
	}
}
