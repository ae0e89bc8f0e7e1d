package aws

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/atabernermiller/taberner-studio-app/internal/logger"
	"github.com/atabernermiller/taberner-studio-app/internal/services"
	"github.com/atabernermiller/taberner-studio-app/internal/types"
)

// catalogProjection limits the scan to the fields the recommendation core
// reads. Keeping it in one place keeps the read path and the Artwork type
// aligned.
const catalogProjection = "id, title, artist, description, price, product_url, filename, attributes"

type catalogStore struct {
	log   *logger.Logger
	ddb   *dynamodb.Client
	table string
}

// NewCatalogStore builds the DynamoDB-backed catalog fetcher. The table name
// comes from CATALOG_TABLE_NAME.
func NewCatalogStore(cfg awssdk.Config, log *logger.Logger) (services.CatalogFetcher, error) {
	table := strings.TrimSpace(os.Getenv("CATALOG_TABLE_NAME"))
	if table == "" {
		return nil, fmt.Errorf("missing env var CATALOG_TABLE_NAME")
	}
	return &catalogStore{
		log:   log.With("service", "aws.CatalogStore"),
		ddb:   dynamodb.NewFromConfig(cfg),
		table: table,
	}, nil
}

func (s *catalogStore) FetchPage(ctx context.Context, cursor any) (services.CatalogPage, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	in := &dynamodb.ScanInput{
		TableName:            awssdk.String(s.table),
		ProjectionExpression: awssdk.String(catalogProjection),
	}
	if cursor != nil {
		key, ok := cursor.(map[string]ddbtypes.AttributeValue)
		if !ok {
			return services.CatalogPage{}, fmt.Errorf("unexpected cursor type %T", cursor)
		}
		in.ExclusiveStartKey = key
	}

	out, err := s.ddb.Scan(ctx, in)
	if err != nil {
		return services.CatalogPage{}, fmt.Errorf("scan %s: %w", s.table, err)
	}

	items := make([]types.Artwork, 0, len(out.Items))
	skipped := 0
	for _, raw := range out.Items {
		var art types.Artwork
		if err := attributevalue.UnmarshalMap(raw, &art); err != nil {
			skipped++
			continue
		}
		items = append(items, art)
	}
	if skipped > 0 {
		s.log.Warn("skipped malformed catalog records", "count", skipped)
	}

	page := services.CatalogPage{Items: items}
	if len(out.LastEvaluatedKey) > 0 {
		page.NextCursor = out.LastEvaluatedKey
	}
	return page, nil
}
