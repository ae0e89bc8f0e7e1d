package services

import (
	"context"
	"time"

	"github.com/atabernermiller/taberner-studio-app/internal/cache"
	"github.com/atabernermiller/taberner-studio-app/internal/logger"
	"github.com/atabernermiller/taberner-studio-app/internal/types"
)

const (
	catalogCacheKey = "art_catalog"

	// catalogItemCap bounds how many records a single refresh will pull in,
	// regardless of how many pages the store reports. Keeps memory and
	// refresh latency bounded if the table grows unexpectedly.
	catalogItemCap = 1000
)

// CatalogService is the in-memory, TTL-cached view of the artwork catalog.
// An unreachable store degrades to an empty catalog; callers treat that as
// "no recommendations available", not as an error.
type CatalogService interface {
	GetAll(ctx context.Context) []types.Artwork
	ClearCache()
	CacheStats() cache.Stats
}

type catalogService struct {
	log     *logger.Logger
	fetcher CatalogFetcher
	cache   *cache.TTL[[]types.Artwork]
}

func NewCatalogService(fetcher CatalogFetcher, ttl time.Duration, log *logger.Logger) CatalogService {
	return &catalogService{
		log:     log.With("service", "CatalogService"),
		fetcher: fetcher,
		cache:   cache.NewTTL[[]types.Artwork](ttl),
	}
}

func (s *catalogService) GetAll(ctx context.Context) []types.Artwork {
	if items, ok := s.cache.Get(catalogCacheKey); ok {
		return snapshot(items)
	}

	s.log.Info("catalog cache miss, refreshing from store")
	items := s.fetchAll(ctx)
	if len(items) > 0 {
		s.cache.Set(catalogCacheKey, items)
	}
	return snapshot(items)
}

func (s *catalogService) fetchAll(ctx context.Context) []types.Artwork {
	var items []types.Artwork
	var cursor any
	for {
		page, err := s.fetcher.FetchPage(ctx, cursor)
		if err != nil {
			s.log.Error("catalog fetch failed", "error", err, "fetched_so_far", len(items))
			return nil
		}
		items = append(items, page.Items...)
		if page.NextCursor == nil || len(items) >= catalogItemCap {
			break
		}
		cursor = page.NextCursor
	}
	if len(items) > catalogItemCap {
		items = items[:catalogItemCap]
	}
	s.log.Info("catalog refreshed", "items", len(items))
	return items
}

func (s *catalogService) ClearCache() {
	s.cache.Clear()
}

func (s *catalogService) CacheStats() cache.Stats {
	return s.cache.Stats()
}

// snapshot returns a copy so scoring can iterate without holding the cached
// slice; a concurrent refresh must never change a list mid-scan.
func snapshot(items []types.Artwork) []types.Artwork {
	if len(items) == 0 {
		return nil
	}
	out := make([]types.Artwork, len(items))
	copy(out, items)
	return out
}
