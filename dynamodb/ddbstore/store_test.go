package ddbstore

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// End-to-end scenarios
// =============================================================================

func TestStore_Lifecycle_NoSortKey(t *testing.T) {
	store := newTestStore(t, noSortKeyTable)
	ctx := context.Background()
	key := map[string]types.AttributeValue{"zipcode": s("30309")}

	_, err := store.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &noSortKeyTable.Name,
		Item:      map[string]types.AttributeValue{"zipcode": s("30309"), "city": s("Atlanta")},
	})
	require.NoError(t, err)

	got, err := store.GetItem(ctx, &dynamodb.GetItemInput{TableName: &noSortKeyTable.Name, Key: key})
	require.NoError(t, err)
	assert.Equal(t, s("Atlanta"), got.Item["city"])

	_, err = store.DeleteItem(ctx, &dynamodb.DeleteItemInput{TableName: &noSortKeyTable.Name, Key: key})
	require.NoError(t, err)

	got, err = store.GetItem(ctx, &dynamodb.GetItemInput{TableName: &noSortKeyTable.Name, Key: key})
	require.NoError(t, err)
	assert.Nil(t, got.Item)
}

func TestStore_Lifecycle_SortKey(t *testing.T) {
	store := newTestStore(t, sortKeyTable)
	ctx := context.Background()

	putStreets(t, store, "30309", "10th Street NW", "West Peachtree Street")

	out, err := store.Query(ctx, queryZip(sortKeyTable.Name, "30309"))
	require.NoError(t, err)
	assert.Equal(t, []map[string]types.AttributeValue{
		street("30309", "10th Street NW"),
		street("30309", "West Peachtree Street"),
	}, out.Items)
}

// =============================================================================
// Properties
// =============================================================================

func TestStore_PutIsIdempotent(t *testing.T) {
	store := newTestStore(t, sortKeyTable)
	ctx := context.Background()
	zip := uuid.NewString()

	for range 3 {
		putStreets(t, store, zip, "Juniper Street")
	}

	out, err := store.Query(ctx, queryZip(sortKeyTable.Name, zip))
	require.NoError(t, err)
	assert.Len(t, out.Items, 1)

	desc, err := store.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: &sortKeyTable.Name})
	require.NoError(t, err)
	assert.Equal(t, int64(1), *desc.Table.ItemCount)
}

func TestStore_SamePartitionDifferentSortKeys(t *testing.T) {
	store := newTestStore(t, sortKeyTable)
	ctx := context.Background()
	zip := uuid.NewString()

	names := make([]string, 0, 10)
	for range 10 {
		names = append(names, uuid.NewString())
	}
	putStreets(t, store, zip, names...)

	for _, name := range names {
		got, err := store.GetItem(ctx, &dynamodb.GetItemInput{
			TableName: &sortKeyTable.Name,
			Key:       street(zip, name),
		})
		require.NoError(t, err)
		assert.Equal(t, street(zip, name), got.Item)
	}

	out, err := store.Query(ctx, queryZip(sortKeyTable.Name, zip))
	require.NoError(t, err)
	assert.Equal(t, names, streetNames(out.Items))
}

func TestStore_OverwriteKeepsPosition(t *testing.T) {
	store := newTestStore(t, sortKeyTable)
	ctx := context.Background()
	putStreets(t, store, "30309", "a", "b", "c")

	replacement := street("30309", "a")
	replacement["lanes"] = &types.AttributeValueMemberN{Value: "2"}
	_, err := store.PutItem(ctx, &dynamodb.PutItemInput{TableName: &sortKeyTable.Name, Item: replacement})
	require.NoError(t, err)

	out, err := store.Query(ctx, queryZip(sortKeyTable.Name, "30309"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, streetNames(out.Items))
	assert.Equal(t, replacement, out.Items[0])
}

func TestStore_DeleteThenPutMovesToEnd(t *testing.T) {
	store := newTestStore(t, sortKeyTable)
	ctx := context.Background()
	putStreets(t, store, "30309", "a", "b", "c")

	_, err := store.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &sortKeyTable.Name,
		Key:       street("30309", "a"),
	})
	require.NoError(t, err)
	putStreets(t, store, "30309", "a")

	out, err := store.Query(ctx, queryZip(sortKeyTable.Name, "30309"))
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a"}, streetNames(out.Items))
}

func TestStore_DeleteNeverWritten(t *testing.T) {
	store := newTestStore(t, sortKeyTable, noSortKeyTable)
	ctx := context.Background()

	for range 5 {
		_, err := store.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: &sortKeyTable.Name,
			Key:       street(uuid.NewString(), uuid.NewString()),
		})
		require.NoError(t, err)

		_, err = store.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: &noSortKeyTable.Name,
			Key:       map[string]types.AttributeValue{"zipcode": s(uuid.NewString())},
		})
		require.NoError(t, err)
	}

	out, err := store.Scan(ctx, &dynamodb.ScanInput{TableName: &sortKeyTable.Name})
	require.NoError(t, err)
	assert.Empty(t, out.Items)
}

func TestStore_TablesAreIsolated(t *testing.T) {
	store := newTestStore(t, sortKeyTable, noSortKeyTable)
	ctx := context.Background()

	putStreets(t, store, "30309", "10th Street NW")

	got, err := store.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &noSortKeyTable.Name,
		Key:       map[string]types.AttributeValue{"zipcode": s("30309")},
	})
	require.NoError(t, err)
	assert.Nil(t, got.Item)
}
