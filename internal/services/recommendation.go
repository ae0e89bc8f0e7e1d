package services

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/atabernermiller/taberner-studio-app/internal/logger"
	"github.com/atabernermiller/taberner-studio-app/internal/types"
)

// Reasons attached to an empty recommendation set. The photo path and the
// preference path degrade rather than error, so callers need to know which
// stage came up empty.
const (
	ReasonImageUnreadable = "could not analyze the uploaded photo"
	ReasonCatalogEmpty    = "artwork catalog is unavailable"
	ReasonNoMatches       = "no artworks matched the request"
)

type RecommendationResult struct {
	Recommendations []types.ScoredCandidate `json:"recommendations"`
	RoomAnalysis    *types.RoomAnalysis     `json:"room_analysis,omitempty"`
	Reason          string                  `json:"reason,omitempty"`
}

// OptionSet lists the filter labels worth offering in the preferences UI:
// distinct style and subject labels whose attribute confidence clears the
// threshold, sorted for stable rendering.
type OptionSet struct {
	Styles   []string `json:"styles"`
	Subjects []string `json:"subjects"`
}

type RecommendationService interface {
	RecommendByImage(ctx context.Context, img []byte) *RecommendationResult
	RecommendByFilters(ctx context.Context, filters Filters) *RecommendationResult
	Options(ctx context.Context) OptionSet
}

type recommendationService struct {
	log *logger.Logger

	catalog   CatalogService
	sampler   ColorSampler
	rooms     RoomCharacterizer
	scoring   ScoringEngine
	selection SelectionPolicy
	urls      ImageURLService

	maxRecs             int
	confidenceThreshold float64
}

func NewRecommendationService(
	catalog CatalogService,
	sampler ColorSampler,
	rooms RoomCharacterizer,
	scoring ScoringEngine,
	selection SelectionPolicy,
	urls ImageURLService,
	maxRecs int,
	confidenceThreshold float64,
	log *logger.Logger,
) RecommendationService {
	return &recommendationService{
		log:                 log.With("service", "RecommendationService"),
		catalog:             catalog,
		sampler:             sampler,
		rooms:               rooms,
		scoring:             scoring,
		selection:           selection,
		urls:                urls,
		maxRecs:             maxRecs,
		confidenceThreshold: confidenceThreshold,
	}
}

// RecommendByImage runs the photo path: color signature extraction and room
// characterization in parallel, then color-distance scoring with the room
// bonus and diversity-aware selection. Room characterization is advisory; a
// failed characterization still yields pure color recommendations.
func (rs *recommendationService) RecommendByImage(ctx context.Context, img []byte) *RecommendationResult {
	var (
		userColors []types.ColorSample
		room       *types.RoomAnalysis
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		userColors = rs.sampler.Extract(img)
		return nil
	})
	g.Go(func() error {
		room = rs.rooms.Analyze(img)
		return nil
	})
	_ = g.Wait()

	if len(userColors) == 0 {
		rs.log.Warn("no color signature extracted from upload")
		return &RecommendationResult{Recommendations: []types.ScoredCandidate{}, Reason: ReasonImageUnreadable}
	}

	catalog := rs.catalog.GetAll(ctx)
	if len(catalog) == 0 {
		return &RecommendationResult{Recommendations: []types.ScoredCandidate{}, RoomAnalysis: room, Reason: ReasonCatalogEmpty}
	}

	scored := rs.scoring.ScoreByColors(userColors, catalog, room)
	if len(scored) == 0 {
		return &RecommendationResult{Recommendations: []types.ScoredCandidate{}, RoomAnalysis: room, Reason: ReasonNoMatches}
	}

	selected := rs.selection.DiverseTopK(scored)
	rs.resolveURLs(ctx, selected)
	rs.log.Info("photo recommendations computed", "candidates", len(scored), "selected", len(selected), "room_detected", room != nil)
	return &RecommendationResult{Recommendations: selected, RoomAnalysis: room}
}

// RecommendByFilters runs the preference path: attribute filtering scored by
// inverted confidence, plain top-K selection.
func (rs *recommendationService) RecommendByFilters(ctx context.Context, filters Filters) *RecommendationResult {
	catalog := rs.catalog.GetAll(ctx)
	if len(catalog) == 0 {
		return &RecommendationResult{Recommendations: []types.ScoredCandidate{}, Reason: ReasonCatalogEmpty}
	}

	scored := rs.scoring.ScoreByFilters(filters, catalog, rs.maxRecs)
	if len(scored) == 0 {
		return &RecommendationResult{Recommendations: []types.ScoredCandidate{}, Reason: ReasonNoMatches}
	}

	selected := rs.selection.TopK(scored)
	rs.resolveURLs(ctx, selected)
	rs.log.Info("preference recommendations computed", "candidates", len(scored), "selected", len(selected))
	return &RecommendationResult{Recommendations: selected}
}

func (rs *recommendationService) Options(ctx context.Context) OptionSet {
	catalog := rs.catalog.GetAll(ctx)
	styles := map[string]struct{}{}
	subjects := map[string]struct{}{}
	for _, art := range catalog {
		if av := art.Attributes.Style; av.Label != "" && av.Confidence >= rs.confidenceThreshold {
			styles[av.Label] = struct{}{}
		}
		if av := art.Attributes.Subject; av.Label != "" && av.Confidence >= rs.confidenceThreshold {
			subjects[av.Label] = struct{}{}
		}
	}
	return OptionSet{Styles: sortedKeys(styles), Subjects: sortedKeys(subjects)}
}

func (rs *recommendationService) resolveURLs(ctx context.Context, cands []types.ScoredCandidate) {
	arts := make([]types.Artwork, len(cands))
	for i := range cands {
		arts[i] = cands[i].Artwork
	}
	arts = rs.urls.Resolve(ctx, arts)
	for i := range cands {
		cands[i].Artwork = arts[i]
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
