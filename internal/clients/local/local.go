// Package local provides filesystem-backed stand-ins for the AWS
// collaborators so the service can run without cloud credentials
// (APP_ENV=local). The catalog comes from a JSON file produced by the
// offline enrichment pipeline; quarantined uploads land on disk; image
// URLs resolve to the local serving route.
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atabernermiller/taberner-studio-app/internal/logger"
	"github.com/atabernermiller/taberner-studio-app/internal/services"
	"github.com/atabernermiller/taberner-studio-app/internal/types"
)

type catalogFile struct {
	log  *logger.Logger
	path string
}

func NewCatalogFile(path string, log *logger.Logger) services.CatalogFetcher {
	return &catalogFile{
		log:  log.With("service", "local.CatalogFile"),
		path: path,
	}
}

// FetchPage loads the whole catalog file as a single page.
func (c *catalogFile) FetchPage(ctx context.Context, cursor any) (services.CatalogPage, error) {
	if cursor != nil {
		return services.CatalogPage{}, nil
	}
	data, err := os.ReadFile(c.path)
	if err != nil {
		return services.CatalogPage{}, fmt.Errorf("read catalog file %q: %w", c.path, err)
	}
	var items []types.Artwork
	if err := json.Unmarshal(data, &items); err != nil {
		return services.CatalogPage{}, fmt.Errorf("parse catalog file %q: %w", c.path, err)
	}
	return services.CatalogPage{Items: items}, nil
}

type imageStore struct {
	log           *logger.Logger
	quarantineDir string
}

func NewImageStore(quarantineDir string, log *logger.Logger) (services.ImageStore, error) {
	if err := os.MkdirAll(quarantineDir, 0o755); err != nil {
		return nil, fmt.Errorf("create quarantine dir: %w", err)
	}
	return &imageStore{
		log:           log.With("service", "local.ImageStore"),
		quarantineDir: quarantineDir,
	}, nil
}

func (s *imageStore) StoreQuarantined(ctx context.Context, key string, data []byte, reason string) error {
	path := filepath.Join(s.quarantineDir, filepath.Base(key))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write quarantined image: %w", err)
	}
	s.log.Info("stored quarantined image", "path", path, "reason", reason)
	return nil
}

// PresignGet maps a filename onto the local catalog image route; there is
// nothing to sign in local mode.
func (s *imageStore) PresignGet(ctx context.Context, key string) (string, error) {
	return "/catalog/images/" + key, nil
}

type approveAllClassifier struct{}

// NewApproveAllClassifier skips moderation entirely, matching local-mode
// behavior where no classifier backend is configured.
func NewApproveAllClassifier() services.ImageClassifier {
	return approveAllClassifier{}
}

func (approveAllClassifier) DetectLabels(ctx context.Context, img []byte) ([]string, error) {
	return nil, nil
}
