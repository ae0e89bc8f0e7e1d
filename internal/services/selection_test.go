package services

import (
	"math/rand"
	"testing"

	"github.com/atabernermiller/taberner-studio-app/internal/types"
)

func candidates(scores ...float64) []types.ScoredCandidate {
	out := make([]types.ScoredCandidate, len(scores))
	for i, s := range scores {
		out[i] = types.ScoredCandidate{
			Artwork: types.Artwork{ID: string(rune('a' + i))},
			Score:   s,
		}
	}
	return out
}

func assertAscending(t *testing.T, got []types.ScoredCandidate) {
	t.Helper()
	for i := 1; i < len(got); i++ {
		if got[i].Score < got[i-1].Score {
			t.Fatalf("result not sorted ascending at index %d: %v after %v", i, got[i].Score, got[i-1].Score)
		}
	}
}

func TestTopKSortsAndTruncates(t *testing.T) {
	sp := NewSelectionPolicy(3, 0.6, rand.New(rand.NewSource(1)), testLogger(t))

	got := sp.TopK(candidates(5, 1, 4, 2, 3))
	if len(got) != 3 {
		t.Fatalf("got %d candidates, want 3", len(got))
	}
	assertAscending(t, got)
	if got[0].Score != 1 || got[1].Score != 2 || got[2].Score != 3 {
		t.Fatalf("got scores %v %v %v, want 1 2 3", got[0].Score, got[1].Score, got[2].Score)
	}
}

func TestTopKLeavesInputUntouched(t *testing.T) {
	sp := NewSelectionPolicy(2, 0.6, rand.New(rand.NewSource(1)), testLogger(t))

	in := candidates(3, 1, 2)
	sp.TopK(in)
	if in[0].Score != 3 {
		t.Fatalf("input slice reordered; first score = %v, want 3", in[0].Score)
	}
}

func TestDiverseTopKSmallPoolReturnsAll(t *testing.T) {
	sp := NewSelectionPolicy(8, 0.6, rand.New(rand.NewSource(1)), testLogger(t))

	got := sp.DiverseTopK(candidates(2, 1, 3))
	if len(got) != 3 {
		t.Fatalf("got %d candidates from a pool of 3, want all 3", len(got))
	}
	assertAscending(t, got)
}

func TestDiverseTopKKeepsBestAndBounds(t *testing.T) {
	const maxRecs = 5
	sp := NewSelectionPolicy(maxRecs, 0.6, rand.New(rand.NewSource(42)), testLogger(t))

	pool := candidates(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12)
	got := sp.DiverseTopK(pool)
	if len(got) != maxRecs {
		t.Fatalf("got %d candidates, want %d", len(got), maxRecs)
	}
	assertAscending(t, got)

	// quality slice: ceil(5*0.6) = 3 best by score must always be present.
	want := map[float64]bool{1: false, 2: false, 3: false}
	for _, c := range got {
		if _, ok := want[c.Score]; ok {
			want[c.Score] = true
		}
	}
	for score, seen := range want {
		if !seen {
			t.Fatalf("quality candidate with score %v missing from %v", score, got)
		}
	}

	// The remaining two slots come from the next window (scores 4..7).
	for _, c := range got[3:] {
		if c.Score < 4 || c.Score > 7 {
			t.Fatalf("diversity pick score %v outside window [4,7]", c.Score)
		}
	}
}

func TestDiverseTopKDeterministicForSeed(t *testing.T) {
	pool := candidates(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)

	first := NewSelectionPolicy(4, 0.6, rand.New(rand.NewSource(7)), testLogger(t)).DiverseTopK(pool)
	second := NewSelectionPolicy(4, 0.6, rand.New(rand.NewSource(7)), testLogger(t)).DiverseTopK(pool)
	if len(first) != len(second) {
		t.Fatalf("runs differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Artwork.ID != second[i].Artwork.ID {
			t.Fatalf("runs differ at index %d: %s vs %s", i, first[i].Artwork.ID, second[i].Artwork.ID)
		}
	}
}
