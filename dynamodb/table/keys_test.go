package table

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pkOnlyTable = TableDefinition{
	Name: "streets",
	KeyDefinitions: PrimaryKeyDefinition{
		PartitionKey: KeyDef{Name: "zipcode"},
	},
}

var pkAndSKTable = TableDefinition{
	Name: "streets",
	KeyDefinitions: PrimaryKeyDefinition{
		PartitionKey: KeyDef{Name: "zipcode"},
		SortKey:      KeyDef{Name: "streetName"},
	},
}

func s(v string) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: v}
}

func TestExtractPrimaryKey(t *testing.T) {
	tests := []struct {
		name    string
		def     TableDefinition
		doc     map[string]types.AttributeValue
		want    PrimaryKeyValues
		wantErr error
	}{
		{
			name: "partition key only",
			def:  pkOnlyTable,
			doc:  map[string]types.AttributeValue{"zipcode": s("30309"), "city": s("Atlanta")},
			want: PrimaryKeyValues{PartitionKey: "30309"},
		},
		{
			name: "partition and sort key",
			def:  pkAndSKTable,
			doc:  map[string]types.AttributeValue{"zipcode": s("30309"), "streetName": s("10th Street NW")},
			want: PrimaryKeyValues{PartitionKey: "30309", SortKey: "10th Street NW"},
		},
		{
			name: "sort key attribute ignored when table has none",
			def:  pkOnlyTable,
			doc:  map[string]types.AttributeValue{"zipcode": s("30309"), "streetName": s("10th Street NW")},
			want: PrimaryKeyValues{PartitionKey: "30309"},
		},
		{
			name:    "missing sort key",
			def:     pkAndSKTable,
			doc:     map[string]types.AttributeValue{"zipcode": s("30309")},
			wantErr: ErrMissingSortKey,
		},
		{
			name:    "missing partition key",
			def:     pkAndSKTable,
			doc:     map[string]types.AttributeValue{"streetName": s("10th Street NW")},
			wantErr: ErrMissingPartitionKey,
		},
		{
			name:    "numeric partition key",
			def:     pkOnlyTable,
			doc:     map[string]types.AttributeValue{"zipcode": &types.AttributeValueMemberN{Value: "30309"}},
			wantErr: ErrInvalidKeyType,
		},
		{
			name:    "numeric sort key",
			def:     pkAndSKTable,
			doc:     map[string]types.AttributeValue{"zipcode": s("30309"), "streetName": &types.AttributeValueMemberN{Value: "10"}},
			wantErr: ErrInvalidKeyType,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pk, err := tt.def.ExtractPrimaryKey(tt.doc)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, pk.Values)
			assert.Equal(t, tt.def.KeyDefinitions, pk.Definition)
		})
	}
}

func TestExtractPrimaryKey_ErrorNamesAttribute(t *testing.T) {
	_, err := pkAndSKTable.ExtractPrimaryKey(map[string]types.AttributeValue{"zipcode": s("30309")})
	require.EqualError(t, err, "missing sort key=streetName")
}

func TestPrimaryKey_DDB(t *testing.T) {
	pk, err := pkAndSKTable.ExtractPrimaryKey(map[string]types.AttributeValue{
		"zipcode":    s("30309"),
		"streetName": s("10th Street NW"),
		"lanes":      &types.AttributeValueMemberN{Value: "4"},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]types.AttributeValue{
		"zipcode":    s("30309"),
		"streetName": s("10th Street NW"),
	}, pk.DDB())

	pk, err = pkOnlyTable.ExtractPrimaryKey(map[string]types.AttributeValue{"zipcode": s("30309")})
	require.NoError(t, err)
	assert.Equal(t, map[string]types.AttributeValue{"zipcode": s("30309")}, pk.DDB())
}
