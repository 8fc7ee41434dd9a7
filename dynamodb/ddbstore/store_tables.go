package ddbstore

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DescribeTable reports a registered table's key schema and item count.
func (s *Store) DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	if params == nil {
		return nil, fmt.Errorf("params is required")
	}
	t, err := s.getTable(params.TableName)
	if err != nil {
		return nil, err
	}
	count := int64(t.items.Len())
	return &dynamodb.DescribeTableOutput{
		Table: &types.TableDescription{
			TableName:            ptrStr(t.definition.Name),
			TableStatus:          types.TableStatusActive,
			KeySchema:            t.definition.KeySchema(),
			AttributeDefinitions: t.definition.AttributeDefinitions(),
			ItemCount:            &count,
		},
	}, nil
}

// ListTables returns the registered table names in lexical order.
func (s *Store) ListTables(ctx context.Context, params *dynamodb.ListTablesInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error) {
	if params == nil {
		params = &dynamodb.ListTablesInput{}
	}
	names := slices.Sorted(maps.Keys(s.tables))
	if params.ExclusiveStartTableName != nil {
		start := *params.ExclusiveStartTableName
		names = slices.DeleteFunc(names, func(n string) bool { return n <= start })
	}

	out := &dynamodb.ListTablesOutput{TableNames: names}
	if params.Limit != nil {
		if *params.Limit < 1 {
			return nil, validationError(fmt.Errorf("limit must be at least 1, got %d", *params.Limit))
		}
		if len(names) > int(*params.Limit) {
			out.TableNames = names[:*params.Limit]
			out.LastEvaluatedTableName = ptrStr(out.TableNames[len(out.TableNames)-1])
		}
	}
	return out, nil
}
