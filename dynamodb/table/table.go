package table

import (
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type TableDefinition struct {
	Name           string
	KeyDefinitions PrimaryKeyDefinition
}

// KeyNames is the short form of a table's key schema, used when tables are
// configured as a plain name -> keys mapping.
type KeyNames struct {
	PartitionKey string `yaml:"partitionKey" json:"partitionKey"`
	SortKey      string `yaml:"sortKey,omitempty" json:"sortKey,omitempty"`
}

// Definitions converts a table name -> key names mapping into table
// definitions, ordered by table name.
func Definitions(tables map[string]KeyNames) []TableDefinition {
	defs := make([]TableDefinition, 0, len(tables))
	for name, keys := range tables {
		defs = append(defs, TableDefinition{
			Name: name,
			KeyDefinitions: PrimaryKeyDefinition{
				PartitionKey: KeyDef{Name: keys.PartitionKey},
				SortKey:      KeyDef{Name: keys.SortKey},
			},
		})
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// Validate checks the definition can be registered in a store.
func (t TableDefinition) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("table name is required")
	}
	if t.KeyDefinitions.PartitionKey.Name == "" {
		return fmt.Errorf("%w for table=%s", ErrPartitionKeyRequired, t.Name)
	}
	if t.KeyDefinitions.SortKey.Name == t.KeyDefinitions.PartitionKey.Name {
		return fmt.Errorf("table=%s: sort key %q must differ from partition key", t.Name, t.KeyDefinitions.SortKey.Name)
	}
	return nil
}

func (t TableDefinition) ExtractPrimaryKey(doc map[string]types.AttributeValue) (PrimaryKey, error) {
	return t.KeyDefinitions.ExtractPrimaryKey(doc)
}

// KeySchema describes the table's keys the way DescribeTable reports them.
func (t TableDefinition) KeySchema() []types.KeySchemaElement {
	schema := []types.KeySchemaElement{
		{AttributeName: aws.String(t.KeyDefinitions.PartitionKey.Name), KeyType: types.KeyTypeHash},
	}
	if t.KeyDefinitions.HasSortKey() {
		schema = append(schema, types.KeySchemaElement{
			AttributeName: aws.String(t.KeyDefinitions.SortKey.Name),
			KeyType:       types.KeyTypeRange,
		})
	}
	return schema
}

// AttributeDefinitions lists the key attributes. Keys are always strings.
func (t TableDefinition) AttributeDefinitions() []types.AttributeDefinition {
	defs := []types.AttributeDefinition{
		{AttributeName: aws.String(t.KeyDefinitions.PartitionKey.Name), AttributeType: types.ScalarAttributeTypeS},
	}
	if t.KeyDefinitions.HasSortKey() {
		defs = append(defs, types.AttributeDefinition{
			AttributeName: aws.String(t.KeyDefinitions.SortKey.Name),
			AttributeType: types.ScalarAttributeTypeS,
		})
	}
	return defs
}
