// Package ddbjson implements the DynamoDB JSON wire encoding of attribute
// values and of the request and response bodies of the item and table
// operations served by ddbserver.
//
// Every attribute value is an object with exactly one type tag:
//
//	{"S": "10th Street NW"}
//	{"N": "42"}
//	{"L": [{"S": "a"}, {"BOOL": true}]}
//
// Binary values (B, BS) are base64 encoded.
package ddbjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrInvalidValue is returned when an attribute value has no type tag, more
// than one, or an unknown one.
var ErrInvalidValue = errors.New("invalid attribute value")

// Value is a single attribute value in DynamoDB JSON form.
type Value struct {
	AttributeValue types.AttributeValue
}

// Item is an attribute map in DynamoDB JSON form. It converts to and from
// map[string]types.AttributeValue without copying.
type Item map[string]types.AttributeValue

func (v Value) MarshalJSON() ([]byte, error) {
	switch av := v.AttributeValue.(type) {
	case *types.AttributeValueMemberS:
		return json.Marshal(map[string]string{"S": av.Value})
	case *types.AttributeValueMemberN:
		return json.Marshal(map[string]string{"N": av.Value})
	case *types.AttributeValueMemberB:
		return json.Marshal(map[string][]byte{"B": av.Value})
	case *types.AttributeValueMemberBOOL:
		return json.Marshal(map[string]bool{"BOOL": av.Value})
	case *types.AttributeValueMemberNULL:
		return json.Marshal(map[string]bool{"NULL": av.Value})
	case *types.AttributeValueMemberL:
		list := make([]Value, 0, len(av.Value))
		for _, elem := range av.Value {
			list = append(list, Value{elem})
		}
		return json.Marshal(map[string][]Value{"L": list})
	case *types.AttributeValueMemberM:
		return json.Marshal(map[string]Item{"M": Item(av.Value)})
	case *types.AttributeValueMemberSS:
		return json.Marshal(map[string][]string{"SS": nonNil(av.Value)})
	case *types.AttributeValueMemberNS:
		return json.Marshal(map[string][]string{"NS": nonNil(av.Value)})
	case *types.AttributeValueMemberBS:
		return json.Marshal(map[string][][]byte{"BS": nonNil(av.Value)})
	default:
		return nil, fmt.Errorf("%w: unsupported type %T", ErrInvalidValue, av)
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	if len(tagged) != 1 {
		return fmt.Errorf("%w: want exactly one type tag, got %v", ErrInvalidValue, slices.Sorted(maps.Keys(tagged)))
	}

	for tag, raw := range tagged {
		av, err := decodeTagged(tag, raw)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidValue, tag, err)
		}
		v.AttributeValue = av
	}
	return nil
}

func decodeTagged(tag string, raw json.RawMessage) (types.AttributeValue, error) {
	switch tag {
	case "S":
		var s string
		err := json.Unmarshal(raw, &s)
		return &types.AttributeValueMemberS{Value: s}, err
	case "N":
		var n string
		err := json.Unmarshal(raw, &n)
		return &types.AttributeValueMemberN{Value: n}, err
	case "B":
		var b []byte
		err := json.Unmarshal(raw, &b)
		return &types.AttributeValueMemberB{Value: b}, err
	case "BOOL":
		var b bool
		err := json.Unmarshal(raw, &b)
		return &types.AttributeValueMemberBOOL{Value: b}, err
	case "NULL":
		var b bool
		err := json.Unmarshal(raw, &b)
		return &types.AttributeValueMemberNULL{Value: b}, err
	case "L":
		var list []Value
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, err
		}
		out := make([]types.AttributeValue, 0, len(list))
		for _, elem := range list {
			out = append(out, elem.AttributeValue)
		}
		return &types.AttributeValueMemberL{Value: out}, nil
	case "M":
		var m Item
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, err
		}
		if m == nil {
			m = Item{}
		}
		return &types.AttributeValueMemberM{Value: m}, nil
	case "SS":
		var ss []string
		err := json.Unmarshal(raw, &ss)
		return &types.AttributeValueMemberSS{Value: ss}, err
	case "NS":
		var ns []string
		err := json.Unmarshal(raw, &ns)
		return &types.AttributeValueMemberNS{Value: ns}, err
	case "BS":
		var bs [][]byte
		err := json.Unmarshal(raw, &bs)
		return &types.AttributeValueMemberBS{Value: bs}, err
	default:
		return nil, errors.New("unknown type tag")
	}
}

func (it Item) MarshalJSON() ([]byte, error) {
	out := make(map[string]Value, len(it))
	for name, av := range it {
		out[name] = Value{av}
	}
	return json.Marshal(out)
}

func (it *Item) UnmarshalJSON(data []byte) error {
	var raw map[string]Value
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*it = nil
		return nil
	}
	item := make(Item, len(raw))
	for name, v := range raw {
		item[name] = v.AttributeValue
	}
	*it = item
	return nil
}

// Items converts a list of attribute maps.
func Items(items []map[string]types.AttributeValue) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}

func attributeMaps(items []Item) []map[string]types.AttributeValue {
	if items == nil {
		return nil
	}
	out := make([]map[string]types.AttributeValue, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
