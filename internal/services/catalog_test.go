package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/atabernermiller/taberner-studio-app/internal/types"
)

// fakeFetcher serves pre-built pages and counts calls.
type fakeFetcher struct {
	pages []CatalogPage
	calls int
	err   error
}

func (f *fakeFetcher) FetchPage(ctx context.Context, cursor any) (CatalogPage, error) {
	f.calls++
	if f.err != nil {
		return CatalogPage{}, f.err
	}
	idx := 0
	if cursor != nil {
		idx = cursor.(int)
	}
	if idx >= len(f.pages) {
		return CatalogPage{}, fmt.Errorf("cursor %d out of range", idx)
	}
	return f.pages[idx], nil
}

func makeArtworks(n int, prefix string) []types.Artwork {
	arts := make([]types.Artwork, n)
	for i := range arts {
		arts[i] = types.Artwork{ID: fmt.Sprintf("%s-%d", prefix, i), Title: prefix}
	}
	return arts
}

func TestCatalogGetAllFollowsPages(t *testing.T) {
	fetcher := &fakeFetcher{pages: []CatalogPage{
		{Items: makeArtworks(3, "a"), NextCursor: 1},
		{Items: makeArtworks(2, "b"), NextCursor: nil},
	}}
	svc := NewCatalogService(fetcher, time.Minute, testLogger(t))

	got := svc.GetAll(context.Background())
	if len(got) != 5 {
		t.Fatalf("got %d artworks, want 5", len(got))
	}
	if fetcher.calls != 2 {
		t.Fatalf("fetcher called %d times, want 2", fetcher.calls)
	}
}

func TestCatalogGetAllUsesCache(t *testing.T) {
	fetcher := &fakeFetcher{pages: []CatalogPage{{Items: makeArtworks(4, "a")}}}
	svc := NewCatalogService(fetcher, time.Minute, testLogger(t))

	first := svc.GetAll(context.Background())
	second := svc.GetAll(context.Background())
	if fetcher.calls != 1 {
		t.Fatalf("fetcher called %d times, want 1 (second read should hit cache)", fetcher.calls)
	}
	if len(first) != len(second) {
		t.Fatalf("cached read returned %d items, want %d", len(second), len(first))
	}

	// The returned slice is a snapshot; mutating it must not poison the cache.
	second[0].Title = "mutated"
	third := svc.GetAll(context.Background())
	if third[0].Title == "mutated" {
		t.Fatalf("cache returned a mutated artwork; snapshot isolation broken")
	}
}

func TestCatalogClearCacheForcesRefetch(t *testing.T) {
	fetcher := &fakeFetcher{pages: []CatalogPage{{Items: makeArtworks(1, "a")}}}
	svc := NewCatalogService(fetcher, time.Minute, testLogger(t))

	svc.GetAll(context.Background())
	svc.ClearCache()
	svc.GetAll(context.Background())
	if fetcher.calls != 2 {
		t.Fatalf("fetcher called %d times, want 2 after ClearCache", fetcher.calls)
	}
}

func TestCatalogFetchErrorYieldsEmpty(t *testing.T) {
	fetcher := &fakeFetcher{err: fmt.Errorf("store unavailable")}
	svc := NewCatalogService(fetcher, time.Minute, testLogger(t))

	if got := svc.GetAll(context.Background()); len(got) != 0 {
		t.Fatalf("got %d artworks from a failing store, want 0", len(got))
	}
	// An empty result is not cached; the next read must retry the store.
	svc.GetAll(context.Background())
	if fetcher.calls != 2 {
		t.Fatalf("fetcher called %d times, want 2 (failures are not cached)", fetcher.calls)
	}
}

func TestCatalogRefreshStopsAtItemCap(t *testing.T) {
	fetcher := &fakeFetcher{pages: []CatalogPage{
		{Items: makeArtworks(600, "a"), NextCursor: 1},
		{Items: makeArtworks(600, "b"), NextCursor: 2},
		{Items: makeArtworks(600, "c"), NextCursor: nil},
	}}
	svc := NewCatalogService(fetcher, time.Minute, testLogger(t))

	got := svc.GetAll(context.Background())
	if len(got) != catalogItemCap {
		t.Fatalf("got %d artworks, want cap of %d", len(got), catalogItemCap)
	}
	if fetcher.calls != 2 {
		t.Fatalf("fetcher called %d times, want 2 (cap reached mid-scan)", fetcher.calls)
	}
}
