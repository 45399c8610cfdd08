package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetRetainRemoved(t *testing.T) {
	s := NewSet(1, 2, 3, 4)

	removed := s.RetainRemoved(2, 4, 5)

	assert.ElementsMatch(t, []int{1, 3}, removed)
	assert.ElementsMatch(t, []int{2, 4}, s.Values(), "values in keep but not in the set are not added")
}

func TestSetRetainRemovedEmptyKeep(t *testing.T) {
	s := NewSet("a", "b")

	removed := s.RetainRemoved()

	assert.ElementsMatch(t, []string{"a", "b"}, removed)
	assert.Zero(t, s.Length())
}

func TestMapGetOrCreate(t *testing.T) {
	m := NewMap[string, *Set[int]]()

	newSet := func() *Set[int] { return NewSet[int]() }

	first := m.GetOrCreate("k", newSet)
	first.Add(1)

	second := m.GetOrCreate("k", newSet)
	assert.Same(t, first, second)
	assert.True(t, second.Exists(1))
}
