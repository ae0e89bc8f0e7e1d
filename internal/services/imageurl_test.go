package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/atabernermiller/taberner-studio-app/internal/types"
)

func TestResolveFillsAndMemoizesURLs(t *testing.T) {
	store := newFakeStore()
	svc := NewImageURLService(store, time.Minute, testLogger(t))

	arts := []types.Artwork{
		{ID: "1", Filename: "one.jpg"},
		{ID: "2", Filename: "two.jpg"},
		{ID: "3", Filename: "one.jpg"},
	}
	got := svc.Resolve(context.Background(), arts)
	for _, a := range got {
		if a.ImageURL == "" {
			t.Fatalf("artwork %s has no image URL", a.ID)
		}
	}
	if got[0].ImageURL != got[2].ImageURL {
		t.Fatalf("same filename resolved to different URLs: %q vs %q", got[0].ImageURL, got[2].ImageURL)
	}
	if store.presignCalls != 2 {
		t.Fatalf("store presigned %d times, want 2 (duplicate filename served from cache)", store.presignCalls)
	}

	svc.Resolve(context.Background(), []types.Artwork{{ID: "4", Filename: "two.jpg"}})
	if store.presignCalls != 2 {
		t.Fatalf("store presigned %d times, want 2 (second call should hit cache)", store.presignCalls)
	}
}

func TestResolveLeavesURLEmptyOnFailure(t *testing.T) {
	store := newFakeStore()
	store.presignErr = fmt.Errorf("signing unavailable")
	svc := NewImageURLService(store, time.Minute, testLogger(t))

	got := svc.Resolve(context.Background(), []types.Artwork{{ID: "1", Filename: "one.jpg"}})
	if got[0].ImageURL != "" {
		t.Fatalf("failed presign produced URL %q, want empty", got[0].ImageURL)
	}
}

func TestResolveSkipsMissingFilename(t *testing.T) {
	store := newFakeStore()
	svc := NewImageURLService(store, time.Minute, testLogger(t))

	got := svc.Resolve(context.Background(), []types.Artwork{{ID: "1"}})
	if got[0].ImageURL != "" {
		t.Fatalf("artwork without filename got URL %q", got[0].ImageURL)
	}
	if store.presignCalls != 0 {
		t.Fatalf("store presigned %d times for an empty filename, want 0", store.presignCalls)
	}
}
