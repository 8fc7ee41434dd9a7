package ddbstore

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/acksell/dynamock/dynamodb/table"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test table definitions
var sortKeyTable = table.TableDefinition{
	Name: "streets",
	KeyDefinitions: table.PrimaryKeyDefinition{
		PartitionKey: table.KeyDef{Name: "zipcode"},
		SortKey:      table.KeyDef{Name: "streetName"},
	},
}

var noSortKeyTable = table.TableDefinition{
	Name: "zipcodes",
	KeyDefinitions: table.PrimaryKeyDefinition{
		PartitionKey: table.KeyDef{Name: "zipcode"},
	},
}

func newTestStore(t *testing.T, defs ...table.TableDefinition) *Store {
	store, err := New(StoreOptions{}, defs...)
	require.NoError(t, err)
	return store
}

func s(v string) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: v}
}

func street(zip, name string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"zipcode":    s(zip),
		"streetName": s(name),
	}
}

func requireAPIError(t *testing.T, err error, code string, target error) {
	t.Helper()
	require.ErrorIs(t, err, target)
	requireErrorCode(t, err, code)
}

func requireErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var apiErr smithy.APIError
	require.True(t, errors.As(err, &apiErr), "expected smithy.APIError, got %T", err)
	assert.Equal(t, code, apiErr.ErrorCode())
}

func TestNew(t *testing.T) {
	t.Run("partition key required", func(t *testing.T) {
		_, err := New(StoreOptions{}, noSortKeyTable, table.TableDefinition{Name: "bad"})
		require.ErrorIs(t, err, ErrPartitionKeyRequired)
		assert.EqualError(t, err, "partition key required for table=bad")
	})

	t.Run("duplicate table", func(t *testing.T) {
		_, err := New(StoreOptions{}, noSortKeyTable, noSortKeyTable)
		require.Error(t, err)
	})

	t.Run("from key names", func(t *testing.T) {
		store, err := NewFromKeyNames(StoreOptions{}, map[string]table.KeyNames{
			"streets": {PartitionKey: "zipcode", SortKey: "streetName"},
		})
		require.NoError(t, err)
		_, err = store.PutItem(context.Background(), &dynamodb.PutItemInput{
			TableName: ptrStr("streets"),
			Item:      map[string]types.AttributeValue{"zipcode": s("30309")},
		})
		requireAPIError(t, err, CodeValidation, ErrMissingSortKey)
	})

	t.Run("from key names without partition key", func(t *testing.T) {
		_, err := NewFromKeyNames(StoreOptions{}, map[string]table.KeyNames{
			"streets": {SortKey: "streetName"},
		})
		require.ErrorIs(t, err, table.ErrPartitionKeyRequired)
	})

	t.Run("no tables", func(t *testing.T) {
		store := newTestStore(t)
		_, err := store.GetItem(context.Background(), &dynamodb.GetItemInput{
			TableName: ptrStr("streets"),
			Key:       map[string]types.AttributeValue{"zipcode": s("30309")},
		})
		requireAPIError(t, err, CodeResourceNotFound, ErrUnknownTable)
	})
}

func TestUnknownTable(t *testing.T) {
	store := newTestStore(t, sortKeyTable)
	ctx := context.Background()
	name := ptrStr("avenues")

	_, err := store.GetItem(ctx, &dynamodb.GetItemInput{TableName: name, Key: street("30309", "x")})
	requireAPIError(t, err, CodeResourceNotFound, ErrUnknownTable)
	assert.EqualError(t, err, "unknown table=avenues")

	_, err = store.PutItem(ctx, &dynamodb.PutItemInput{TableName: name, Item: street("30309", "x")})
	requireAPIError(t, err, CodeResourceNotFound, ErrUnknownTable)

	_, err = store.DeleteItem(ctx, &dynamodb.DeleteItemInput{TableName: name, Key: street("30309", "x")})
	requireAPIError(t, err, CodeResourceNotFound, ErrUnknownTable)

	_, err = store.Query(ctx, &dynamodb.QueryInput{
		TableName:              name,
		KeyConditionExpression: ptrStr("zipcode = :zipcode"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":zipcode": s("30309"),
		},
	})
	requireAPIError(t, err, CodeResourceNotFound, ErrUnknownTable)

	_, err = store.Scan(ctx, &dynamodb.ScanInput{TableName: name})
	requireAPIError(t, err, CodeResourceNotFound, ErrUnknownTable)

	_, err = store.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: name})
	requireAPIError(t, err, CodeResourceNotFound, ErrUnknownTable)
}

func TestUnknownTable_CheckedBeforeKeys(t *testing.T) {
	store := newTestStore(t, sortKeyTable)

	// The key is invalid for every table, but the table lookup fails first.
	_, err := store.GetItem(context.Background(), &dynamodb.GetItemInput{
		TableName: ptrStr("avenues"),
		Key:       map[string]types.AttributeValue{},
	})
	requireAPIError(t, err, CodeResourceNotFound, ErrUnknownTable)
}

func TestMissingTableName(t *testing.T) {
	store := newTestStore(t, sortKeyTable)
	_, err := store.GetItem(context.Background(), &dynamodb.GetItemInput{Key: street("30309", "x")})
	require.Error(t, err)
}

func TestStoreOptions_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	store, err := New(StoreOptions{Logger: logger}, sortKeyTable)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "registered table")

	_, err = store.PutItem(context.Background(), &dynamodb.PutItemInput{
		TableName: &sortKeyTable.Name,
		Item:      street("30309", "10th Street NW"),
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "put item")
	assert.Contains(t, buf.String(), "partitionKey=30309")
}
