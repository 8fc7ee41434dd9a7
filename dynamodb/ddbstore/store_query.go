package ddbstore

import (
	"context"
	"fmt"
	"slices"

	"github.com/acksell/dynamock/dynamodb/ddbstore/keyconditionexpr"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// Query returns the items of one partition.
//
// The key condition must be a single equality check against the partition
// key, e.g. "zipcode = :zipcode". Items come back in the order they were first
// written to the partition, or reversed if ScanIndexForward is false. There is
// no ordering by sort key value. A partition without items yields an empty
// result, not an error.
func (s *Store) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	if params == nil {
		return nil, fmt.Errorf("params is required")
	}

	t, err := s.getTable(params.TableName)
	if err != nil {
		return nil, err
	}
	if params.KeyConditionExpression == nil {
		return nil, validationError(fmt.Errorf("key condition expression is required"))
	}
	switch {
	case params.IndexName != nil:
		return nil, unsupported("IndexName")
	case params.FilterExpression != nil:
		return nil, unsupported("FilterExpression")
	case params.ProjectionExpression != nil:
		return nil, unsupported("ProjectionExpression")
	}

	keyCond, err := keyconditionexpr.Parse(*params.KeyConditionExpression, keyconditionexpr.ParseParams{
		ExpressionAttributeNames:  params.ExpressionAttributeNames,
		ExpressionAttributeValues: params.ExpressionAttributeValues,
		TableKeys:                 t.definition.KeyDefinitions,
	})
	if err != nil {
		return nil, validationError(fmt.Errorf("parse key condition: %w", err))
	}

	entries := t.items.Partition(keyCond.PartitionKey)
	if params.ScanIndexForward != nil && !*params.ScanIndexForward {
		slices.Reverse(entries)
	}

	page, lastKey, err := t.paginate(entries, params.ExclusiveStartKey, params.Limit)
	if err != nil {
		return nil, err
	}
	items := itemsOf(page)

	s.logger.DebugContext(ctx, "query",
		"table", t.definition.Name,
		"partitionKey", keyCond.PartitionKey,
		"count", len(items),
		"more", lastKey != nil,
	)

	count := int32(len(items))
	return &dynamodb.QueryOutput{
		Items:            items,
		Count:            count,
		ScannedCount:     count,
		LastEvaluatedKey: lastKey,
	}, nil
}
