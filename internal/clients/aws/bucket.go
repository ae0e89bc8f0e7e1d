package aws

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/atabernermiller/taberner-studio-app/internal/logger"
	"github.com/atabernermiller/taberner-studio-app/internal/services"
)

type bucketService struct {
	log              *logger.Logger
	s3               *s3.Client
	presigner        *s3.PresignClient
	catalogBucket    string
	quarantineBucket string
}

// NewBucketService wires the S3 client used for quarantining rejected
// uploads and presigning catalog image reads. Bucket names come from
// CATALOG_BUCKET_NAME and QUARANTINE_BUCKET.
func NewBucketService(cfg awssdk.Config, log *logger.Logger) (services.ImageStore, error) {
	catalogBucket := strings.TrimSpace(os.Getenv("CATALOG_BUCKET_NAME"))
	if catalogBucket == "" {
		return nil, fmt.Errorf("missing env var CATALOG_BUCKET_NAME")
	}
	quarantineBucket := strings.TrimSpace(os.Getenv("QUARANTINE_BUCKET"))
	if quarantineBucket == "" {
		return nil, fmt.Errorf("missing env var QUARANTINE_BUCKET")
	}

	client := s3.NewFromConfig(cfg)
	return &bucketService{
		log:              log.With("service", "aws.BucketService"),
		s3:               client,
		presigner:        s3.NewPresignClient(client),
		catalogBucket:    catalogBucket,
		quarantineBucket: quarantineBucket,
	}, nil
}

func (bs *bucketService) StoreQuarantined(ctx context.Context, key string, data []byte, reason string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := bs.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket: awssdk.String(bs.quarantineBucket),
		Key:    awssdk.String(key),
		Body:   bytes.NewReader(data),
		Metadata: map[string]string{
			"quarantine_reason": reason,
			"timestamp":         time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return fmt.Errorf("put quarantine object %q: %w", key, err)
	}
	return nil
}

func (bs *bucketService) PresignGet(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := bs.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: awssdk.String(bs.catalogBucket),
		Key:    awssdk.String(key),
	}, s3.WithPresignExpires(time.Hour))
	if err != nil {
		return "", fmt.Errorf("presign %q: %w", key, err)
	}
	return req.URL, nil
}
