package ddbstore

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// PutItem creates or replaces an item. The whole item is replaced, attributes
// of the previous item are not merged.
func (s *Store) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if params == nil {
		return nil, fmt.Errorf("params is required")
	}

	t, err := s.getTable(params.TableName)
	if err != nil {
		return nil, err
	}
	if params.Item == nil {
		return nil, validationError(fmt.Errorf("item is required"))
	}
	if params.ConditionExpression != nil {
		return nil, unsupported("ConditionExpression")
	}
	if err := checkReturnValues(params.ReturnValues); err != nil {
		return nil, err
	}

	pk, err := t.extractPrimaryKey(params.Item)
	if err != nil {
		return nil, err
	}

	old, replaced := t.items.Put(pk.Values.PartitionKey, pk.Values.SortKey, copyItem(params.Item))
	s.logger.DebugContext(ctx, "put item",
		"table", t.definition.Name,
		"partitionKey", pk.Values.PartitionKey,
		"sortKey", pk.Values.SortKey,
		"replaced", replaced,
	)

	out := &dynamodb.PutItemOutput{}
	if params.ReturnValues == types.ReturnValueAllOld && replaced {
		out.Attributes = copyItem(old)
	}
	return out, nil
}

func checkReturnValues(rv types.ReturnValue) error {
	switch rv {
	case "", types.ReturnValueNone, types.ReturnValueAllOld:
		return nil
	default:
		return unsupported(fmt.Sprintf("ReturnValues=%s", rv))
	}
}
