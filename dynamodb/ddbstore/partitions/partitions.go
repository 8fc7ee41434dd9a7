// Package partitions holds the items of one table, addressed by partition key
// and, for tables that declare one, sort key.
//
// The shape is chosen once per table: Flat maps a partition key straight to a
// value, Sorted maps a partition key to an insertion-ordered map of sort key to
// value. Iteration follows insertion order in both: partitions in the order
// they were first written, and items within a Sorted partition in the order
// their sort keys were first written. Overwriting a value keeps its position.
package partitions

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Entry is a stored value with the key it is stored under. SortKey is empty
// for Flat stores.
type Entry[V any] struct {
	PartitionKey string
	SortKey      string
	Value        V
}

type Store[V any] interface {
	Get(partitionKey, sortKey string) (V, bool)
	// Put stores v, returning the value it replaced, if any.
	Put(partitionKey, sortKey string, v V) (old V, replaced bool)
	// Delete removes the value, returning it if it existed.
	Delete(partitionKey, sortKey string) (old V, deleted bool)
	// Partition returns the entries under one partition key in insertion order.
	Partition(partitionKey string) []Entry[V]
	// All returns every entry in insertion order.
	All() []Entry[V]
	Len() int
}

// New returns a Sorted store if the table has a sort key, Flat otherwise.
func New[V any](hasSortKey bool) Store[V] {
	if hasSortKey {
		return NewSorted[V]()
	}
	return NewFlat[V]()
}

// Flat stores one value per partition key. Sort keys are ignored.
type Flat[V any] struct {
	parts *orderedmap.OrderedMap[string, V]
}

func NewFlat[V any]() *Flat[V] {
	return &Flat[V]{parts: orderedmap.New[string, V]()}
}

func (f *Flat[V]) Get(partitionKey, _ string) (V, bool) {
	return f.parts.Get(partitionKey)
}

func (f *Flat[V]) Put(partitionKey, _ string, v V) (V, bool) {
	return f.parts.Set(partitionKey, v)
}

func (f *Flat[V]) Delete(partitionKey, _ string) (V, bool) {
	return f.parts.Delete(partitionKey)
}

func (f *Flat[V]) Partition(partitionKey string) []Entry[V] {
	v, ok := f.parts.Get(partitionKey)
	if !ok {
		return nil
	}
	return []Entry[V]{{PartitionKey: partitionKey, Value: v}}
}

func (f *Flat[V]) All() []Entry[V] {
	entries := make([]Entry[V], 0, f.parts.Len())
	for p := f.parts.Oldest(); p != nil; p = p.Next() {
		entries = append(entries, Entry[V]{PartitionKey: p.Key, Value: p.Value})
	}
	return entries
}

func (f *Flat[V]) Len() int {
	return f.parts.Len()
}

// Sorted stores an insertion-ordered map of sort key to value per partition key.
// A partition, once created, is kept even after its last value is deleted.
type Sorted[V any] struct {
	parts *orderedmap.OrderedMap[string, *orderedmap.OrderedMap[string, V]]
}

func NewSorted[V any]() *Sorted[V] {
	return &Sorted[V]{parts: orderedmap.New[string, *orderedmap.OrderedMap[string, V]]()}
}

func (s *Sorted[V]) Get(partitionKey, sortKey string) (V, bool) {
	part, ok := s.parts.Get(partitionKey)
	if !ok {
		var zero V
		return zero, false
	}
	return part.Get(sortKey)
}

func (s *Sorted[V]) Put(partitionKey, sortKey string, v V) (V, bool) {
	part, ok := s.parts.Get(partitionKey)
	if !ok {
		part = orderedmap.New[string, V]()
		s.parts.Set(partitionKey, part)
	}
	return part.Set(sortKey, v)
}

func (s *Sorted[V]) Delete(partitionKey, sortKey string) (V, bool) {
	part, ok := s.parts.Get(partitionKey)
	if !ok {
		var zero V
		return zero, false
	}
	return part.Delete(sortKey)
}

func (s *Sorted[V]) Partition(partitionKey string) []Entry[V] {
	part, ok := s.parts.Get(partitionKey)
	if !ok {
		return nil
	}
	return entries(partitionKey, part, make([]Entry[V], 0, part.Len()))
}

func (s *Sorted[V]) All() []Entry[V] {
	var all []Entry[V]
	for p := s.parts.Oldest(); p != nil; p = p.Next() {
		all = entries(p.Key, p.Value, all)
	}
	return all
}

func (s *Sorted[V]) Len() int {
	n := 0
	for p := s.parts.Oldest(); p != nil; p = p.Next() {
		n += p.Value.Len()
	}
	return n
}

func entries[V any](partitionKey string, part *orderedmap.OrderedMap[string, V], dst []Entry[V]) []Entry[V] {
	for p := part.Oldest(); p != nil; p = p.Next() {
		dst = append(dst, Entry[V]{PartitionKey: partitionKey, SortKey: p.Key, Value: p.Value})
	}
	return dst
}
