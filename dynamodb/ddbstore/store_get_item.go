package ddbstore

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// GetItem retrieves a single item by its primary key.
// A missing item is not an error: the output's Item is nil.
func (s *Store) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if params == nil {
		return nil, fmt.Errorf("params is required")
	}

	t, err := s.getTable(params.TableName)
	if err != nil {
		return nil, err
	}
	if params.Key == nil {
		return nil, validationError(fmt.Errorf("key is required"))
	}
	if params.ProjectionExpression != nil {
		return nil, unsupported("ProjectionExpression")
	}

	pk, err := t.extractPrimaryKey(params.Key)
	if err != nil {
		return nil, err
	}

	item, found := t.items.Get(pk.Values.PartitionKey, pk.Values.SortKey)
	s.logger.DebugContext(ctx, "get item",
		"table", t.definition.Name,
		"partitionKey", pk.Values.PartitionKey,
		"sortKey", pk.Values.SortKey,
		"found", found,
	)
	if !found {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: copyItem(item)}, nil
}
