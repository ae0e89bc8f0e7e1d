package services

import (
	"math"
	"strings"

	"github.com/atabernermiller/taberner-studio-app/internal/logger"
	"github.com/atabernermiller/taberner-studio-app/internal/types"
)

// Contextual bonus term weights. The overall ContextBonusWeight (default 50)
// scales the accumulated bonus against the color-distance score; at that
// weight the room context dominates color harmony whenever both signals are
// available. All of these are empirically chosen tunables, not derived
// values.
const (
	subjectMatchBonus     = 0.3
	styleMatchBonus       = 0.25
	moodCompatBonus       = 0.15
	roomPrimaryBonus      = 0.2
	roomSecondaryBonus    = 0.1
	sizeFitBonus          = 0.1
	colorHarmonyBonus     = 0.1
	neutralHarmonyBonus   = 0.05
	highImpactBonus       = 0.1
	mediumImpactBonus     = 0.05
	highImpactThreshold   = 0.7
	mediumImpactThreshold = 0.5
)

// moodRoomCompat lists artwork moods that sit well in each detected room
// type. Explicit table so the pairing is inspectable and testable.
var moodRoomCompat = map[string][]string{
	types.RoomBedroom:    {"serene", "romantic", "contemplative"},
	types.RoomLivingRoom: {"energetic", "uplifting", "dramatic"},
	types.RoomGeneral:    {"serene", "uplifting", "contemplative"},
}

// moodBrightnessCompat pairs moods with the room's light level.
var moodBrightnessCompat = map[string][]string{
	types.BrightnessDark:   {"mysterious", "dramatic", "melancholic"},
	types.BrightnessMedium: {"serene", "contemplative", "romantic"},
	types.BrightnessBright: {"uplifting", "energetic"},
}

// Filters is the preference-path query. Empty slices mean "no constraint on
// this dimension"; matching is case-sensitive exact label equality.
type Filters struct {
	Styles   []string
	Subjects []string
}

func (f Filters) Empty() bool {
	return len(f.Styles) == 0 && len(f.Subjects) == 0
}

type ScoringEngine interface {
	// ScoreByColors computes the weighted color-distance score of every
	// artwork against the user's color signature, optionally adjusted by the
	// room-context bonus. Artworks with no dominant colors are excluded.
	// Lower is better.
	ScoreByColors(userColors []types.ColorSample, catalog []types.Artwork, room *types.RoomAnalysis) []types.ScoredCandidate

	// ScoreByFilters keeps artworks matching every requested dimension and
	// scores them by inverted attribute confidence. An entirely empty filter
	// set short-circuits to the first defaultN catalog items at score 0.
	ScoreByFilters(filters Filters, catalog []types.Artwork, defaultN int) []types.ScoredCandidate
}

type scoringEngine struct {
	log *logger.Logger

	// contextBonusWeight scales the contextual bonus against color distance.
	contextBonusWeight float64
}

func NewScoringEngine(contextBonusWeight float64, log *logger.Logger) ScoringEngine {
	return &scoringEngine{
		log:                log.With("service", "ScoringEngine"),
		contextBonusWeight: contextBonusWeight,
	}
}

func (se *scoringEngine) ScoreByColors(userColors []types.ColorSample, catalog []types.Artwork, room *types.RoomAnalysis) []types.ScoredCandidate {
	scored := make([]types.ScoredCandidate, 0, len(catalog))
	skipped := 0
	for _, art := range catalog {
		if len(art.Attributes.DominantColors) == 0 {
			continue
		}
		colorScore, ok := weightedColorDistance(userColors, art.Attributes.DominantColors)
		if !ok {
			skipped++
			continue
		}

		cand := types.ScoredCandidate{
			Artwork:   art,
			Score:     colorScore,
			Breakdown: types.ScoreBreakdown{ColorScore: colorScore},
		}
		if room != nil {
			bonus := contextBonus(art, room)
			cand.Breakdown.ContextBonus = bonus
			cand.Score = colorScore - bonus*se.contextBonusWeight
		}
		scored = append(scored, cand)
	}
	if skipped > 0 {
		se.log.Warn("skipped artworks with unparseable colors", "count", skipped)
	}
	return scored
}

// weightedColorDistance sums pairwise Euclidean RGB distance weighted by
// both samples' pixel fractions. Returns ok=false when no valid color pair
// exists on the artwork side.
func weightedColorDistance(userColors, itemColors []types.ColorSample) (float64, bool) {
	var total float64
	pairs := 0
	for _, uc := range userColors {
		ur, ug, ub, err := uc.RGB()
		if err != nil {
			continue
		}
		for _, ic := range itemColors {
			ir, ig, ib, err := ic.RGB()
			if err != nil {
				continue
			}
			dr := float64(ur) - float64(ir)
			dg := float64(ug) - float64(ig)
			db := float64(ub) - float64(ib)
			total += math.Sqrt(dr*dr+dg*dg+db*db) * uc.Weight * ic.Weight
			pairs++
		}
	}
	return total, pairs > 0
}

// contextBonus accumulates additive terms for how well an artwork's
// enrichment attributes agree with the analyzed room. Larger is better; the
// caller subtracts it from the distance score.
func contextBonus(art types.Artwork, room *types.RoomAnalysis) float64 {
	attrs := art.Attributes
	var bonus float64

	if containsString(room.PreferredSubjects, attrs.Subject.Label) {
		bonus += subjectMatchBonus * clamp01(attrs.Subject.Confidence)
	}
	if containsString(room.PreferredStyles, attrs.Style.Label) {
		bonus += styleMatchBonus * clamp01(attrs.Style.Confidence)
	}

	if attrs.Mood != "" {
		mood := strings.ToLower(attrs.Mood)
		if containsString(moodRoomCompat[room.RoomType], mood) ||
			containsString(moodBrightnessCompat[room.Brightness], mood) {
			bonus += moodCompatBonus
		}
	}

	switch {
	case attrs.EmotionalImpact > highImpactThreshold:
		bonus += highImpactBonus
	case attrs.EmotionalImpact > mediumImpactThreshold:
		bonus += mediumImpactBonus
	}

	// Complementary palettes: a warm room benefits from cool artwork and
	// vice versa; neutral artwork works anywhere, a little.
	switch attrs.ColorHarmony {
	case "neutral":
		bonus += neutralHarmonyBonus
	case "cool":
		if room.ColorPalette.Temperature == types.TemperatureWarm {
			bonus += colorHarmonyBonus
		}
	case "warm":
		if room.ColorPalette.Temperature == types.TemperatureCool {
			bonus += colorHarmonyBonus
		}
	}

	if roomNameMatches(attrs.RoomSuggestions.Primary.Room, room.RoomType) {
		bonus += roomPrimaryBonus * clamp01(attrs.RoomSuggestions.Primary.Confidence)
	} else {
		for _, sec := range attrs.RoomSuggestions.Secondary {
			if roomNameMatches(sec.Room, room.RoomType) {
				bonus += roomSecondaryBonus * clamp01(sec.Confidence)
				break
			}
		}
	}

	if attrs.RecommendedSize != "" && attrs.RecommendedSize == room.SizeRecommendation {
		bonus += sizeFitBonus
	}
	return bonus
}

func (se *scoringEngine) ScoreByFilters(filters Filters, catalog []types.Artwork, defaultN int) []types.ScoredCandidate {
	if filters.Empty() {
		// Deliberate default-recommendations behavior, not an error: with no
		// constraints the first N catalog items come back unscored.
		n := defaultN
		if n > len(catalog) {
			n = len(catalog)
		}
		out := make([]types.ScoredCandidate, 0, n)
		for _, art := range catalog[:n] {
			out = append(out, types.ScoredCandidate{Artwork: art, Score: 0})
		}
		return out
	}

	scored := make([]types.ScoredCandidate, 0, len(catalog))
	for _, art := range catalog {
		style := art.Attributes.Style
		subject := art.Attributes.Subject

		if len(filters.Styles) > 0 && !containsString(filters.Styles, style.Label) {
			continue
		}
		if len(filters.Subjects) > 0 && !containsString(filters.Subjects, subject.Label) {
			continue
		}

		confidence := 1.0 - (clamp01(style.Confidence)+clamp01(subject.Confidence))/2.0
		scored = append(scored, types.ScoredCandidate{
			Artwork:   art,
			Score:     confidence,
			Breakdown: types.ScoreBreakdown{ConfidenceScore: confidence},
		})
	}
	return scored
}

func containsString(list []string, s string) bool {
	if s == "" {
		return false
	}
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// roomNameMatches compares catalog room names ("Living Room") against
// detected room types ("living_room").
func roomNameMatches(catalogRoom, detected string) bool {
	if catalogRoom == "" || detected == "" {
		return false
	}
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(catalogRoom)), " ", "_")
	return norm == detected
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
