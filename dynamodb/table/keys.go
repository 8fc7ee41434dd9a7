package table

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var (
	ErrPartitionKeyRequired = errors.New("partition key required")
	ErrMissingPartitionKey  = errors.New("missing partition key")
	ErrMissingSortKey       = errors.New("missing sort key")
	// ErrInvalidKeyType is returned when a key attribute is not a string (S) value.
	ErrInvalidKeyType = errors.New("key attribute must be a string")
)

type PrimaryKeyDefinition struct {
	PartitionKey KeyDef
	SortKey      KeyDef // empty Name means the table has no sort key
}

func (k PrimaryKeyDefinition) HasSortKey() bool {
	return k.SortKey.Name != ""
}

type KeyDef struct {
	Name string
}

type PrimaryKeyValues struct {
	PartitionKey string
	SortKey      string
}

type PrimaryKey struct {
	Definition PrimaryKeyDefinition
	Values     PrimaryKeyValues
}

// ExtractPrimaryKey reads the key attributes out of an item, key or
// expression value map.
func (k PrimaryKeyDefinition) ExtractPrimaryKey(doc map[string]types.AttributeValue) (PrimaryKey, error) {
	part, ok := doc[k.PartitionKey.Name]
	if !ok {
		return PrimaryKey{}, fmt.Errorf("%w=%s", ErrMissingPartitionKey, k.PartitionKey.Name)
	}
	partVal, err := KeyString(k.PartitionKey.Name, part)
	if err != nil {
		return PrimaryKey{}, err
	}
	pk := PrimaryKey{
		Definition: k,
		Values:     PrimaryKeyValues{PartitionKey: partVal},
	}
	if !k.HasSortKey() {
		return pk, nil
	}
	sort, ok := doc[k.SortKey.Name]
	if !ok {
		return PrimaryKey{}, fmt.Errorf("%w=%s", ErrMissingSortKey, k.SortKey.Name)
	}
	pk.Values.SortKey, err = KeyString(k.SortKey.Name, sort)
	if err != nil {
		return PrimaryKey{}, err
	}
	return pk, nil
}

// KeyString unwraps the string payload of a key attribute.
func KeyString(name string, av types.AttributeValue) (string, error) {
	s, ok := av.(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("%w: %s has type %T", ErrInvalidKeyType, name, av)
	}
	return s.Value, nil
}

// DDB returns the key as an attribute map, e.g. for LastEvaluatedKey.
func (k PrimaryKey) DDB() map[string]types.AttributeValue {
	key := map[string]types.AttributeValue{
		k.Definition.PartitionKey.Name: mustMarshal(k.Values.PartitionKey),
	}
	if k.Definition.HasSortKey() {
		key[k.Definition.SortKey.Name] = mustMarshal(k.Values.SortKey)
	}
	return key
}

func mustMarshal(v string) types.AttributeValue {
	av, err := attributevalue.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("failed to marshal key value %q: %w", v, err))
	}
	return av
}
