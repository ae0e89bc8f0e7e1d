package aws

import (
	"context"
	"fmt"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	rektypes "github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"github.com/atabernermiller/taberner-studio-app/internal/logger"
	"github.com/atabernermiller/taberner-studio-app/internal/services"
)

// moderationMinConfidence filters out low-confidence Rekognition labels so
// borderline detections do not reject legitimate room photos.
const moderationMinConfidence = 75

type moderationClassifier struct {
	log *logger.Logger
	rek *rekognition.Client
}

func NewModerationClassifier(cfg awssdk.Config, log *logger.Logger) services.ImageClassifier {
	return &moderationClassifier{
		log: log.With("service", "aws.ModerationClassifier"),
		rek: rekognition.NewFromConfig(cfg),
	}
}

func (mc *moderationClassifier) DetectLabels(ctx context.Context, img []byte) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	out, err := mc.rek.DetectModerationLabels(ctx, &rekognition.DetectModerationLabelsInput{
		Image:         &rektypes.Image{Bytes: img},
		MinConfidence: awssdk.Float32(moderationMinConfidence),
	})
	if err != nil {
		return nil, fmt.Errorf("detect moderation labels: %w", err)
	}

	labels := make([]string, 0, len(out.ModerationLabels))
	for _, l := range out.ModerationLabels {
		if l.Name != nil && *l.Name != "" {
			labels = append(labels, *l.Name)
		}
	}
	return labels, nil
}
