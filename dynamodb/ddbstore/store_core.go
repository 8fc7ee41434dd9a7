package ddbstore

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/acksell/dynamock/dynamodb/ddbiface"
	"github.com/acksell/dynamock/dynamodb/ddbstore/partitions"
	"github.com/acksell/dynamock/dynamodb/table"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Item is a stored document: attribute name to attribute value.
type Item = map[string]types.AttributeValue

// Store is an in-memory, DynamoDB-compatible item store.
// The set of tables and their key schemas is fixed at construction.
// Store does no locking; see the package documentation.
type Store struct {
	tables map[string]*tableStore
	logger *slog.Logger
}

var _ ddbiface.TableClient = (*Store)(nil)

type tableStore struct {
	definition table.TableDefinition
	items      partitions.Store[Item]
}

// StoreOptions configures the store.
type StoreOptions struct {
	// Logger receives debug records for every operation. If nil, logging is disabled.
	Logger *slog.Logger
}

// New creates a store with the given tables. Construction fails if any table
// is invalid, e.g. declares no partition key, or if a name is registered twice.
func New(opts StoreOptions, defs ...table.TableDefinition) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	tables := make(map[string]*tableStore, len(defs))
	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return nil, err
		}
		if _, ok := tables[def.Name]; ok {
			return nil, fmt.Errorf("table=%s defined more than once", def.Name)
		}
		tables[def.Name] = &tableStore{
			definition: def,
			items:      partitions.New[Item](def.KeyDefinitions.HasSortKey()),
		}
		logger.Debug("registered table",
			"table", def.Name,
			"partitionKey", def.KeyDefinitions.PartitionKey.Name,
			"sortKey", def.KeyDefinitions.SortKey.Name,
		)
	}

	return &Store{
		tables: tables,
		logger: logger,
	}, nil
}

// NewFromKeyNames creates a store from a table name -> key names mapping.
func NewFromKeyNames(opts StoreOptions, tables map[string]table.KeyNames) (*Store, error) {
	return New(opts, table.Definitions(tables)...)
}

func (s *Store) getTable(tableName *string) (*tableStore, error) {
	if tableName == nil {
		return nil, validationError(fmt.Errorf("table name is required"))
	}
	t, ok := s.tables[*tableName]
	if !ok {
		return nil, unknownTableError(*tableName)
	}
	return t, nil
}

func (t *tableStore) extractPrimaryKey(doc Item) (table.PrimaryKey, error) {
	pk, err := t.definition.ExtractPrimaryKey(doc)
	if err != nil {
		return table.PrimaryKey{}, validationError(err)
	}
	return pk, nil
}

// keyOf rebuilds the key attributes of a stored entry.
func (t *tableStore) keyOf(e partitions.Entry[Item]) Item {
	return table.PrimaryKey{
		Definition: t.definition.KeyDefinitions,
		Values: table.PrimaryKeyValues{
			PartitionKey: e.PartitionKey,
			SortKey:      e.SortKey,
		},
	}.DDB()
}

// copyItem deep-copies item. The store never hands out or keeps a caller's
// maps or slices, at any nesting level.
func copyItem(item Item) Item {
	if item == nil {
		return nil
	}
	out := make(Item, len(item))
	for k, v := range item {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(av types.AttributeValue) types.AttributeValue {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		return &types.AttributeValueMemberS{Value: v.Value}
	case *types.AttributeValueMemberN:
		return &types.AttributeValueMemberN{Value: v.Value}
	case *types.AttributeValueMemberB:
		return &types.AttributeValueMemberB{Value: slices.Clone(v.Value)}
	case *types.AttributeValueMemberBOOL:
		return &types.AttributeValueMemberBOOL{Value: v.Value}
	case *types.AttributeValueMemberNULL:
		return &types.AttributeValueMemberNULL{Value: v.Value}
	case *types.AttributeValueMemberSS:
		return &types.AttributeValueMemberSS{Value: slices.Clone(v.Value)}
	case *types.AttributeValueMemberNS:
		return &types.AttributeValueMemberNS{Value: slices.Clone(v.Value)}
	case *types.AttributeValueMemberBS:
		bs := make([][]byte, len(v.Value))
		for i, b := range v.Value {
			bs[i] = slices.Clone(b)
		}
		return &types.AttributeValueMemberBS{Value: bs}
	case *types.AttributeValueMemberL:
		l := make([]types.AttributeValue, len(v.Value))
		for i, e := range v.Value {
			l[i] = copyValue(e)
		}
		return &types.AttributeValueMemberL{Value: l}
	case *types.AttributeValueMemberM:
		return &types.AttributeValueMemberM{Value: copyItem(v.Value)}
	default:
		return av
	}
}
