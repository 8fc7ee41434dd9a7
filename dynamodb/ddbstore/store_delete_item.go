package ddbstore

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DeleteItem removes an item by its primary key. Deleting an item that does
// not exist is a no-op.
func (s *Store) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
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
	if params.ConditionExpression != nil {
		return nil, unsupported("ConditionExpression")
	}
	if err := checkReturnValues(params.ReturnValues); err != nil {
		return nil, err
	}

	pk, err := t.extractPrimaryKey(params.Key)
	if err != nil {
		return nil, err
	}

	old, deleted := t.items.Delete(pk.Values.PartitionKey, pk.Values.SortKey)
	s.logger.DebugContext(ctx, "delete item",
		"table", t.definition.Name,
		"partitionKey", pk.Values.PartitionKey,
		"sortKey", pk.Values.SortKey,
		"deleted", deleted,
	)

	out := &dynamodb.DeleteItemOutput{}
	if params.ReturnValues == types.ReturnValueAllOld && deleted {
		out.Attributes = copyItem(old)
	}
	return out, nil
}
