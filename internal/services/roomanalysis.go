package services

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/atabernermiller/taberner-studio-app/internal/logger"
	"github.com/atabernermiller/taberner-studio-app/internal/types"
)

// Bucket thresholds for the room heuristics. These are documented tunables,
// not derived values; they were chosen by eyeballing a set of real room
// photos and are expected to be coarse.
const (
	brightnessBrightMin = 0.7
	brightnessMediumMin = 0.4

	saturationVibrantMin  = 0.5
	saturationModerateMin = 0.25

	contrastHighMin   = 0.25
	contrastMediumMin = 0.12

	textureComplexMin  = 0.15
	textureModerateMin = 0.07

	// horizontalDominanceMin marks a clearly horizontal edge structure
	// (shelving, paneling, wainscoting) as opposed to vertical (windows,
	// door frames, column-like furniture).
	horizontalDominanceMin = 1.25
	verticalDominanceMax   = 0.8

	wideAspectMin = 1.4

	roomStatsDim = 100
)

// stylePreferences maps the detected architectural style to artwork styles
// and subjects that tend to sit well in such rooms. Kept as an explicit
// table so the mapping is testable and tunable.
var stylePreferences = map[string]struct {
	Styles   []string
	Subjects []string
}{
	types.StyleModern:       {Styles: []string{"Contemporary", "Abstract", "Minimalist"}, Subjects: []string{"Abstract", "Cityscape"}},
	types.StyleTraditional:  {Styles: []string{"Impressionistic", "Fine Art Photography"}, Subjects: []string{"Landscape", "Botanical"}},
	types.StyleRustic:       {Styles: []string{"Landscape Photography", "Wildlife Photography"}, Subjects: []string{"Landscape", "Wildlife"}},
	types.StyleContemporary: {Styles: []string{"Contemporary", "Fine Art Photography"}, Subjects: []string{"Landscape", "Abstract"}},
}

// roomSubjectHints extends the subject preferences per detected room type.
var roomSubjectHints = map[string][]string{
	types.RoomBedroom:    {"Seascape", "Botanical"},
	types.RoomLivingRoom: {"Landscape", "Cityscape"},
}

// textureSizeFit maps room texture complexity to the artwork size that
// reads best: busy rooms swallow small pieces less than they fight large
// ones.
var textureSizeFit = map[string]string{
	types.TextureSimple:   "large",
	types.TextureModerate: "medium",
	types.TextureComplex:  "small",
}

type RoomCharacterizer interface {
	// Analyze derives a best-effort RoomAnalysis from raw image bytes.
	// Returns nil when the image cannot be analyzed; callers fall back to
	// color-only scoring.
	Analyze(img []byte) *types.RoomAnalysis
}

type roomCharacterizer struct {
	log *logger.Logger
}

func NewRoomCharacterizer(log *logger.Logger) RoomCharacterizer {
	return &roomCharacterizer{log: log.With("service", "RoomCharacterizer")}
}

func (rc *roomCharacterizer) Analyze(raw []byte) *types.RoomAnalysis {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		rc.log.Warn("could not decode image for room analysis", "error", err)
		return nil
	}

	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil
	}
	aspect := float64(b.Dx()) / float64(b.Dy())

	stats := computeImageStats(src)
	if stats == nil {
		return nil
	}

	analysis := &types.RoomAnalysis{
		Brightness: bucketBrightness(stats.meanGray),
		ColorPalette: types.ColorPalette{
			Saturation:  bucketSaturation(stats.meanSaturation),
			Temperature: bucketTemperature(stats.meanRed, stats.meanBlue),
		},
		Contrast:          bucketContrast(stats.grayStddev),
		TextureComplexity: bucketTexture(stats.meanGradient, stats.gradientOK),
	}
	analysis.ArchitecturalStyle = classifyArchitecturalStyle(analysis, stats.edgeRatio)
	analysis.RoomType = classifyRoomType(analysis, aspect)

	deriveHints(analysis)
	return analysis
}

type imageStats struct {
	meanGray       float64
	grayStddev     float64
	meanSaturation float64
	meanRed        float64
	meanBlue       float64
	meanGradient   float64
	gradientOK     bool
	// edgeRatio is horizontal edge energy over vertical edge energy.
	edgeRatio float64
}

func computeImageStats(src image.Image) *imageStats {
	b := src.Bounds()
	w, h := fitWithin(b.Dx(), b.Dy(), roomStatsDim)
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(rgba, rgba.Bounds(), src, b, draw.Src, nil)

	n := float64(w * h)
	if n == 0 {
		return nil
	}

	gray := make([]float64, w*h)
	var sumGray, sumSat, sumR, sumB float64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*rgba.Stride + x*4
			r := float64(rgba.Pix[i]) / 255
			g := float64(rgba.Pix[i+1]) / 255
			bb := float64(rgba.Pix[i+2]) / 255

			gv := 0.299*r + 0.587*g + 0.114*bb
			gray[y*w+x] = gv
			sumGray += gv
			sumR += r
			sumB += bb

			maxC := math.Max(r, math.Max(g, bb))
			minC := math.Min(r, math.Min(g, bb))
			if maxC > 0 {
				sumSat += (maxC - minC) / maxC
			}
		}
	}
	meanGray := sumGray / n

	var sumSq float64
	for _, gv := range gray {
		d := gv - meanGray
		sumSq += d * d
	}

	stats := &imageStats{
		meanGray:       meanGray,
		grayStddev:     math.Sqrt(sumSq / n),
		meanSaturation: sumSat / n,
		meanRed:        sumR / n,
		meanBlue:       sumB / n,
		edgeRatio:      1.0,
	}

	if w >= 3 && h >= 3 {
		var gradSum, hEnergy, vEnergy float64
		count := 0
		for y := 1; y < h-1; y++ {
			for x := 1; x < w-1; x++ {
				gx := gray[y*w+x+1] - gray[y*w+x-1]
				gy := gray[(y+1)*w+x] - gray[(y-1)*w+x]
				gradSum += math.Hypot(gx, gy)
				// A horizontal edge produces a vertical gradient and vice
				// versa.
				hEnergy += math.Abs(gy)
				vEnergy += math.Abs(gx)
				count++
			}
		}
		if count > 0 {
			stats.meanGradient = gradSum / float64(count)
			stats.gradientOK = true
			if vEnergy > 0 {
				stats.edgeRatio = hEnergy / vEnergy
			}
		}
	}
	return stats
}

func bucketBrightness(meanGray float64) string {
	switch {
	case meanGray > brightnessBrightMin:
		return types.BrightnessBright
	case meanGray > brightnessMediumMin:
		return types.BrightnessMedium
	default:
		return types.BrightnessDark
	}
}

func bucketSaturation(meanSat float64) string {
	switch {
	case meanSat > saturationVibrantMin:
		return types.SaturationVibrant
	case meanSat > saturationModerateMin:
		return types.SaturationModerate
	default:
		return types.SaturationMuted
	}
}

func bucketTemperature(meanRed, meanBlue float64) string {
	if meanRed > meanBlue {
		return types.TemperatureWarm
	}
	return types.TemperatureCool
}

func bucketContrast(stddev float64) string {
	switch {
	case stddev > contrastHighMin:
		return types.ContrastHigh
	case stddev > contrastMediumMin:
		return types.ContrastMedium
	default:
		return types.ContrastLow
	}
}

func bucketTexture(meanGradient float64, ok bool) string {
	if !ok {
		return types.TextureModerate
	}
	switch {
	case meanGradient > textureComplexMin:
		return types.TextureComplex
	case meanGradient > textureModerateMin:
		return types.TextureModerate
	default:
		return types.TextureSimple
	}
}

// classifyArchitecturalStyle combines brightness, texture, palette and edge
// orientation into one of four coarse styles. This is a rule table, not a
// model; misclassification downgrades gracefully because the result only
// feeds an advisory score bonus.
func classifyArchitecturalStyle(a *types.RoomAnalysis, edgeRatio float64) string {
	warm := a.ColorPalette.Temperature == types.TemperatureWarm
	switch {
	case a.Brightness == types.BrightnessBright && a.TextureComplexity != types.TextureComplex && edgeRatio < verticalDominanceMax:
		return types.StyleModern
	case warm && a.TextureComplexity == types.TextureComplex:
		return types.StyleRustic
	case a.Brightness == types.BrightnessMedium && edgeRatio > horizontalDominanceMin:
		return types.StyleTraditional
	default:
		return types.StyleContemporary
	}
}

func classifyRoomType(a *types.RoomAnalysis, aspect float64) string {
	switch {
	case aspect > wideAspectMin && a.Brightness != types.BrightnessDark:
		return types.RoomLivingRoom
	case a.Brightness != types.BrightnessBright && a.ColorPalette.Saturation == types.SaturationMuted:
		return types.RoomBedroom
	default:
		return types.RoomGeneral
	}
}

func deriveHints(a *types.RoomAnalysis) {
	if prefs, ok := stylePreferences[a.ArchitecturalStyle]; ok {
		a.PreferredStyles = append(a.PreferredStyles, prefs.Styles...)
		a.PreferredSubjects = append(a.PreferredSubjects, prefs.Subjects...)
		a.Reasoning = append(a.Reasoning,
			fmt.Sprintf("%s architecture suggests %v artwork", a.ArchitecturalStyle, prefs.Styles))
	}
	if hints, ok := roomSubjectHints[a.RoomType]; ok {
		a.PreferredSubjects = appendMissing(a.PreferredSubjects, hints...)
		a.Reasoning = append(a.Reasoning,
			fmt.Sprintf("%s rooms favor %v subjects", a.RoomType, hints))
	}

	a.SizeRecommendation = textureSizeFit[a.TextureComplexity]
	if a.SizeRecommendation != "" {
		a.Reasoning = append(a.Reasoning,
			fmt.Sprintf("%s texture suits %s artwork", a.TextureComplexity, a.SizeRecommendation))
	}

	if a.ColorPalette.Temperature == types.TemperatureWarm {
		a.ColorGuidance = "cool-toned artwork balances the warm room palette"
	} else {
		a.ColorGuidance = "warm-toned artwork balances the cool room palette"
	}
	a.Reasoning = append(a.Reasoning,
		fmt.Sprintf("room reads %s and %s with %s contrast", a.Brightness, a.ColorPalette.Temperature, a.Contrast))
}

func appendMissing(dst []string, items ...string) []string {
	for _, it := range items {
		found := false
		for _, have := range dst {
			if have == it {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, it)
		}
	}
	return dst
}
