package services

import (
	"context"
	"time"

	"github.com/atabernermiller/taberner-studio-app/internal/cache"
	"github.com/atabernermiller/taberner-studio-app/internal/logger"
	"github.com/atabernermiller/taberner-studio-app/internal/types"
)

// ImageURLService resolves artwork filenames to browser-loadable URLs,
// memoizing presigned URLs well inside their validity window so repeated
// recommendation calls do not re-sign the same objects.
type ImageURLService interface {
	Resolve(ctx context.Context, artworks []types.Artwork) []types.Artwork
	ClearCache()
	CacheStats() cache.Stats
}

type imageURLService struct {
	log   *logger.Logger
	store ImageStore
	cache *cache.TTL[string]
}

func NewImageURLService(store ImageStore, ttl time.Duration, log *logger.Logger) ImageURLService {
	return &imageURLService{
		log:   log.With("service", "ImageURLService"),
		store: store,
		cache: cache.NewTTL[string](ttl),
	}
}

// Resolve fills in ImageURL on every artwork in place and returns the slice.
// A presign failure leaves that artwork's URL empty; one bad object must not
// sink the whole response.
func (is *imageURLService) Resolve(ctx context.Context, artworks []types.Artwork) []types.Artwork {
	for i := range artworks {
		filename := artworks[i].Filename
		if filename == "" {
			continue
		}
		if url, ok := is.cache.Get(filename); ok {
			artworks[i].ImageURL = url
			continue
		}
		url, err := is.store.PresignGet(ctx, filename)
		if err != nil {
			is.log.Warn("failed to resolve image URL", "filename", filename, "error", err)
			continue
		}
		is.cache.Set(filename, url)
		artworks[i].ImageURL = url
	}
	return artworks
}

func (is *imageURLService) ClearCache() {
	is.cache.Clear()
}

func (is *imageURLService) CacheStats() cache.Stats {
	return is.cache.Stats()
}
