package services

import (
	"math"
	"math/rand"
	"sort"

	"github.com/atabernermiller/taberner-studio-app/internal/logger"
	"github.com/atabernermiller/taberner-studio-app/internal/types"
)

// SelectionPolicy turns the full scored candidate set into the bounded,
// ordered list handed back to the caller. Output is always non-decreasing
// in score.
type SelectionPolicy interface {
	// TopK is the plain policy: stable ascending sort, first maxRecs.
	TopK(cands []types.ScoredCandidate) []types.ScoredCandidate

	// DiverseTopK keeps the best slice by score and fills the remaining
	// slots from a window of near-tied candidates chosen at random, so a
	// pool of near-duplicates does not monopolize the result. Falls back to
	// TopK behavior when the pool is small.
	DiverseTopK(cands []types.ScoredCandidate) []types.ScoredCandidate
}

type selectionPolicy struct {
	log *logger.Logger

	maxRecs int
	// qualityRatio is the fraction of slots filled strictly by rank before
	// diversity sampling kicks in. Empirically 0.6; tunable, no stated
	// derivation.
	qualityRatio float64
	rng          *rand.Rand
}

func NewSelectionPolicy(maxRecs int, qualityRatio float64, rng *rand.Rand, log *logger.Logger) SelectionPolicy {
	return &selectionPolicy{
		log:          log.With("service", "SelectionPolicy"),
		maxRecs:      maxRecs,
		qualityRatio: qualityRatio,
		rng:          rng,
	}
}

func (sp *selectionPolicy) TopK(cands []types.ScoredCandidate) []types.ScoredCandidate {
	sorted := sortByScore(cands)
	if len(sorted) > sp.maxRecs {
		sorted = sorted[:sp.maxRecs]
	}
	return sorted
}

func (sp *selectionPolicy) DiverseTopK(cands []types.ScoredCandidate) []types.ScoredCandidate {
	sorted := sortByScore(cands)
	if len(sorted) <= sp.maxRecs {
		return sorted
	}

	qualityCount := int(math.Ceil(float64(sp.maxRecs) * sp.qualityRatio))
	if qualityCount > sp.maxRecs {
		qualityCount = sp.maxRecs
	}
	picked := make([]types.ScoredCandidate, 0, sp.maxRecs)
	picked = append(picked, sorted[:qualityCount]...)

	remaining := sp.maxRecs - qualityCount
	if remaining > 0 {
		windowEnd := qualityCount + remaining*2
		if windowEnd > len(sorted) {
			windowEnd = len(sorted)
		}
		window := sorted[qualityCount:windowEnd]
		picked = append(picked, sampleCandidates(window, remaining, sp.rng)...)
	}

	return sortByScore(picked)
}

func sortByScore(cands []types.ScoredCandidate) []types.ScoredCandidate {
	out := make([]types.ScoredCandidate, len(cands))
	copy(out, cands)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score < out[j].Score })
	return out
}

// sampleCandidates draws n candidates uniformly without replacement.
func sampleCandidates(window []types.ScoredCandidate, n int, rng *rand.Rand) []types.ScoredCandidate {
	if n >= len(window) {
		out := make([]types.ScoredCandidate, len(window))
		copy(out, window)
		return out
	}
	idx := rng.Perm(len(window))[:n]
	out := make([]types.ScoredCandidate, 0, n)
	for _, i := range idx {
		out = append(out, window[i])
	}
	return out
}
