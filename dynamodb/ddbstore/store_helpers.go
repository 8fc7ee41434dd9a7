package ddbstore

import (
	"fmt"
	"slices"

	"github.com/acksell/dynamock/dynamodb/ddbstore/partitions"
)

func ptrStr(s string) *string {
	return &s
}

// paginate applies ExclusiveStartKey and Limit to entries already in result
// order. The page resumes right after the entry matching startKey; if that
// entry no longer exists the page is empty. lastKey is set when the page was
// cut short by the limit.
func (t *tableStore) paginate(entries []partitions.Entry[Item], startKey Item, limit *int32) (page []partitions.Entry[Item], lastKey Item, err error) {
	if limit != nil && *limit < 1 {
		return nil, nil, validationError(fmt.Errorf("limit must be at least 1, got %d", *limit))
	}

	if startKey != nil {
		start, err := t.extractPrimaryKey(startKey)
		if err != nil {
			return nil, nil, fmt.Errorf("exclusive start key: %w", err)
		}
		idx := slices.IndexFunc(entries, func(e partitions.Entry[Item]) bool {
			return e.PartitionKey == start.Values.PartitionKey && e.SortKey == start.Values.SortKey
		})
		if idx < 0 {
			return nil, nil, nil
		}
		entries = entries[idx+1:]
	}

	if limit != nil && len(entries) >= int(*limit) {
		entries = entries[:*limit]
		lastKey = t.keyOf(entries[len(entries)-1])
	}
	return entries, lastKey, nil
}

func itemsOf(entries []partitions.Entry[Item]) []Item {
	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, copyItem(e.Value))
	}
	return items
}
