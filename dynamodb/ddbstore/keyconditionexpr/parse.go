// Package keyconditionexpr parses the key condition of a Query.
//
// Only a single equality test against the partition key is understood:
//
//	zipcode = :zipcode
//	#0 = :0
//
// The expression is split on the literal " = " token and must produce exactly
// two parts. Anything else, including sort key conditions and conjunctions,
// is rejected with ErrUnsupportedCondition.
package keyconditionexpr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/acksell/dynamock/dynamodb/table"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const separator = " = "

var (
	ErrUnsupportedCondition = errors.New("only a single equality check against the partition key is supported")
	ErrMissingName          = errors.New("expression attribute name not defined")
	ErrMissingValue         = errors.New("expression attribute value not defined")
)

// External API for the parser.
type ParseParams struct {
	ExpressionAttributeNames  map[string]string
	ExpressionAttributeValues map[string]types.AttributeValue
	TableKeys                 table.PrimaryKeyDefinition
}

type KeyCondition struct {
	// KeyName is the attribute the condition tests, after resolving #name placeholders.
	KeyName string
	// ValueName is the :placeholder the value was read from.
	ValueName string
	// PartitionKey is the unwrapped string value the partition must equal.
	PartitionKey string
}

func Parse(expr string, params ParseParams) (*KeyCondition, error) {
	parts := strings.Split(expr, separator)
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCondition, expr)
	}
	keyName, valueName := parts[0], parts[1]
	if !isOperand(keyName) || !isOperand(valueName) || !strings.HasPrefix(valueName, ":") {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCondition, expr)
	}

	if strings.HasPrefix(keyName, "#") {
		resolved, ok := params.ExpressionAttributeNames[keyName]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingName, keyName)
		}
		keyName = resolved
	}
	if keyName != params.TableKeys.PartitionKey.Name {
		return nil, fmt.Errorf("%w: condition on %q, partition key is %q", ErrUnsupportedCondition, keyName, params.TableKeys.PartitionKey.Name)
	}

	av, ok := params.ExpressionAttributeValues[valueName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingValue, valueName)
	}
	pk, err := table.KeyString(keyName, av)
	if err != nil {
		return nil, err
	}
	return &KeyCondition{
		KeyName:      keyName,
		ValueName:    valueName,
		PartitionKey: pk,
	}, nil
}

// isOperand reports whether s is a bare attribute name or placeholder, as
// opposed to a function call or a clause joined with AND.
func isOperand(s string) bool {
	return s != "" && !strings.ContainsAny(s, " \t\r\n()")
}
