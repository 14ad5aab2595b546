package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_Basics(t *testing.T) {
	s := New("a", "b")
	s.Add("c")
	assert.True(t, s.Has("b"))
	s.Delete("b")
	assert.False(t, s.Has("b"))

	c := s.Clone()
	c.Add("z")
	assert.False(t, s.Has("z"))
}

func TestSet_DifferenceSorted(t *testing.T) {
	existing := New("c.md", "a.md", "b.md")
	written := New("b.md")
	assert.Equal(t, []string{"a.md", "c.md"}, Sorted(existing.Difference(written)))
	assert.Empty(t, Sorted(New[string]().Difference(written)))
}
