package partitions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlat(t *testing.T) {
	f := NewFlat[string]()

	_, replaced := f.Put("30309", "ignored", "a")
	assert.False(t, replaced)
	old, replaced := f.Put("30309", "", "b")
	assert.True(t, replaced)
	assert.Equal(t, "a", old)

	v, ok := f.Get("30309", "anything")
	require.True(t, ok)
	assert.Equal(t, "b", v)

	assert.Equal(t, []Entry[string]{{PartitionKey: "30309", Value: "b"}}, f.Partition("30309"))
	assert.Empty(t, f.Partition("30308"))

	f.Put("30308", "", "c")
	assert.Equal(t, []Entry[string]{
		{PartitionKey: "30309", Value: "b"},
		{PartitionKey: "30308", Value: "c"},
	}, f.All())
	assert.Equal(t, 2, f.Len())

	old, deleted := f.Delete("30309", "")
	assert.True(t, deleted)
	assert.Equal(t, "b", old)
	_, deleted = f.Delete("30309", "")
	assert.False(t, deleted)
	_, ok = f.Get("30309", "")
	assert.False(t, ok)
}

func TestSorted(t *testing.T) {
	s := NewSorted[string]()

	s.Put("30309", "West Peachtree Street", "w")
	s.Put("30309", "10th Street NW", "t")
	s.Put("30308", "Ponce de Leon Ave", "p")

	v, ok := s.Get("30309", "10th Street NW")
	require.True(t, ok)
	assert.Equal(t, "t", v)
	_, ok = s.Get("30309", "missing")
	assert.False(t, ok)
	_, ok = s.Get("missing", "10th Street NW")
	assert.False(t, ok)

	t.Run("partition in insertion order, not sort key order", func(t *testing.T) {
		assert.Equal(t, []Entry[string]{
			{PartitionKey: "30309", SortKey: "West Peachtree Street", Value: "w"},
			{PartitionKey: "30309", SortKey: "10th Street NW", Value: "t"},
		}, s.Partition("30309"))
	})

	t.Run("overwrite keeps position", func(t *testing.T) {
		old, replaced := s.Put("30309", "West Peachtree Street", "w2")
		assert.True(t, replaced)
		assert.Equal(t, "w", old)
		assert.Equal(t, "West Peachtree Street", s.Partition("30309")[0].SortKey)
		assert.Equal(t, "w2", s.Partition("30309")[0].Value)
	})

	t.Run("all", func(t *testing.T) {
		all := s.All()
		require.Len(t, all, 3)
		assert.Equal(t, "30308", all[2].PartitionKey)
		assert.Equal(t, 3, s.Len())
	})

	t.Run("delete keeps empty partition", func(t *testing.T) {
		_, deleted := s.Delete("30308", "Ponce de Leon Ave")
		assert.True(t, deleted)
		_, deleted = s.Delete("30308", "Ponce de Leon Ave")
		assert.False(t, deleted)
		_, deleted = s.Delete("never", "written")
		assert.False(t, deleted)

		assert.NotNil(t, s.Partition("30308"))
		assert.Empty(t, s.Partition("30308"))
		assert.Equal(t, 2, s.Len())
	})

	t.Run("delete then put moves to end", func(t *testing.T) {
		s.Delete("30309", "West Peachtree Street")
		s.Put("30309", "West Peachtree Street", "w3")
		part := s.Partition("30309")
		require.Len(t, part, 2)
		assert.Equal(t, "10th Street NW", part[0].SortKey)
		assert.Equal(t, "West Peachtree Street", part[1].SortKey)
	})
}

func TestNew(t *testing.T) {
	assert.IsType(t, &Sorted[int]{}, New[int](true))
	assert.IsType(t, &Flat[int]{}, New[int](false))
}
