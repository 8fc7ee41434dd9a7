package ddbstore

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// Scan returns every item of a table: partitions in the order they were first
// written, items within a partition in insertion order.
func (s *Store) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	if params == nil {
		return nil, fmt.Errorf("params is required")
	}

	t, err := s.getTable(params.TableName)
	if err != nil {
		return nil, err
	}
	switch {
	case params.IndexName != nil:
		return nil, unsupported("IndexName")
	case params.FilterExpression != nil:
		return nil, unsupported("FilterExpression")
	case params.ProjectionExpression != nil:
		return nil, unsupported("ProjectionExpression")
	case params.Segment != nil || params.TotalSegments != nil:
		return nil, unsupported("Segment")
	}

	page, lastKey, err := t.paginate(t.items.All(), params.ExclusiveStartKey, params.Limit)
	if err != nil {
		return nil, err
	}
	items := itemsOf(page)

	s.logger.DebugContext(ctx, "scan",
		"table", t.definition.Name,
		"count", len(items),
		"more", lastKey != nil,
	)

	count := int32(len(items))
	return &dynamodb.ScanOutput{
		Items:            items,
		Count:            count,
		ScannedCount:     count,
		LastEvaluatedKey: lastKey,
	}, nil
}
