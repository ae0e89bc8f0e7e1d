package services

import (
	"context"

	"github.com/atabernermiller/taberner-studio-app/internal/types"
)

// CatalogPage is one page of a paginated catalog read. NextCursor is opaque
// to the core; it is handed back to the fetcher unchanged to continue the
// scan, and is nil on the final page.
type CatalogPage struct {
	Items      []types.Artwork
	NextCursor any
}

// CatalogFetcher is the persistent catalog collaborator (DynamoDB in
// production, a JSON file in local mode).
type CatalogFetcher interface {
	FetchPage(ctx context.Context, cursor any) (CatalogPage, error)
}

// ImageStore persists rejected uploads and issues short-lived read URLs for
// catalog images.
type ImageStore interface {
	StoreQuarantined(ctx context.Context, key string, data []byte, reason string) error
	PresignGet(ctx context.Context, key string) (string, error)
}

// ImageClassifier is the content-moderation collaborator. A non-empty label
// list means the image was flagged.
type ImageClassifier interface {
	DetectLabels(ctx context.Context, img []byte) ([]string, error)
}
