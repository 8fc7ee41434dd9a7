// Package schema loads table definitions from YAML files:
//
//	tables:
//	  streets:
//	    partitionKey: zipcode
//	    sortKey: streetName
//	  zipcodes:
//	    partitionKey: zipcode
//
// Several files may be merged; a table may only be defined once across all
// of them.
package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/acksell/dynamock/dynamodb/table"
	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// ErrDuplicateTable is returned when two schema files define the same table.
var ErrDuplicateTable = errors.New("table defined more than once")

// Schema is the root type of a schema file.
type Schema struct {
	Tables map[string]table.KeyNames `yaml:"tables" json:"tables"`
}

// Parse decodes a single schema document. Unknown fields are rejected.
func Parse(data []byte) (Schema, error) {
	var s Schema
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Schema{}, err
	}
	if s.Tables == nil {
		s.Tables = map[string]table.KeyNames{}
	}
	return s, nil
}

// LoadFile reads and parses a single schema file.
func LoadFile(path string) (Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Schema{}, err
	}
	s, err := Parse(data)
	if err != nil {
		return Schema{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return s, nil
}

// LoadFiles loads and merges every file matching pattern. The pattern may use
// "**" to match any number of directories.
func LoadFiles(pattern string) (Schema, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return Schema{}, fmt.Errorf("glob pattern error: %w", err)
	}
	if len(matches) == 0 {
		return Schema{}, fmt.Errorf("no schema files found matching: %s", pattern)
	}
	slices.Sort(matches)

	merged := Schema{Tables: map[string]table.KeyNames{}}
	definedIn := map[string]string{}
	for _, path := range matches {
		s, err := LoadFile(path)
		if err != nil {
			return Schema{}, err
		}
		for name, keys := range s.Tables {
			if prev, ok := definedIn[name]; ok {
				return Schema{}, fmt.Errorf("%w: table=%s in %s and %s", ErrDuplicateTable, name, prev, path)
			}
			definedIn[name] = path
			merged.Tables[name] = keys
		}
	}
	return merged, nil
}

// TableDefinitions converts the schema into validated table definitions,
// ordered by table name.
func (s Schema) TableDefinitions() ([]table.TableDefinition, error) {
	defs := table.Definitions(s.Tables)
	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return nil, err
		}
	}
	return defs, nil
}
