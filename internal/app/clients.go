package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/atabernermiller/taberner-studio-app/internal/clients/aws"
	"github.com/atabernermiller/taberner-studio-app/internal/clients/local"
	"github.com/atabernermiller/taberner-studio-app/internal/logger"
	"github.com/atabernermiller/taberner-studio-app/internal/services"
)

// Clients holds the environment-dependent collaborators behind the service
// layer's interfaces.
type Clients struct {
	Catalog    services.CatalogFetcher
	Images     services.ImageStore
	Classifier services.ImageClassifier
}

type ClientBootstrapError struct {
	Mode  string
	Cause error
}

func (e *ClientBootstrapError) Error() string {
	if e == nil {
		return "client bootstrap failed"
	}
	return fmt.Sprintf("client bootstrap failed (mode=%q): %v", e.Mode, e.Cause)
}

func (e *ClientBootstrapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// wireClients selects the collaborator set by APP_ENV: "aws" is the
// production DynamoDB/S3/Rekognition stack, "local" runs entirely from the
// filesystem with moderation disabled.
func wireClients(ctx context.Context, cfg Config, log *logger.Logger) (Clients, error) {
	mode := strings.TrimSpace(strings.ToLower(cfg.AppEnv))
	log.Info("Selecting client providers", "mode", mode)

	switch mode {
	case "local":
		store, err := local.NewImageStore(cfg.LocalQuarantineDir, log)
		if err != nil {
			return Clients{}, &ClientBootstrapError{Mode: mode, Cause: err}
		}
		return Clients{
			Catalog:    local.NewCatalogFile(cfg.LocalCatalogPath, log),
			Images:     store,
			Classifier: local.NewApproveAllClassifier(),
		}, nil

	case "aws", "production":
		sdkCfg, err := aws.LoadSDKConfig(ctx)
		if err != nil {
			return Clients{}, &ClientBootstrapError{Mode: mode, Cause: err}
		}
		catalog, err := aws.NewCatalogStore(sdkCfg, log)
		if err != nil {
			return Clients{}, &ClientBootstrapError{Mode: mode, Cause: err}
		}
		images, err := aws.NewBucketService(sdkCfg, log)
		if err != nil {
			return Clients{}, &ClientBootstrapError{Mode: mode, Cause: err}
		}
		return Clients{
			Catalog:    catalog,
			Images:     images,
			Classifier: aws.NewModerationClassifier(sdkCfg, log),
		}, nil

	default:
		return Clients{}, &ClientBootstrapError{
			Mode:  mode,
			Cause: fmt.Errorf("unsupported APP_ENV %q (want aws or local)", cfg.AppEnv),
		}
	}
}
