package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/gather/source"
)

func TestLocation_Contains(t *testing.T) {
	tests := []struct {
		name     string
		outer    source.Location
		inner    source.Location
		expected bool
	}{
		{
			name:     "exact match",
			outer:    source.New(1, 0, 1, 10),
			inner:    source.New(1, 0, 1, 10),
			expected: true,
		},
		{
			name:     "fully nested",
			outer:    source.New(1, 0, 5, 0),
			inner:    source.New(2, 0, 3, 0),
			expected: true,
		},
		{
			name:     "partial overlap is not containment",
			outer:    source.New(1, 0, 2, 5),
			inner:    source.New(2, 0, 3, 0),
			expected: false,
		},
		{
			name:     "different fragments never contain",
			outer:    source.New(1, 0, 5, 0).WithPath("a"),
			inner:    source.New(2, 0, 3, 0).WithPath("b"),
			expected: false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.outer.Contains(tc.inner))
		})
	}
}

func TestLocation_Intersects(t *testing.T) {
	a := source.New(1, 0, 3, 0)
	b := source.New(2, 0, 4, 0)
	c := source.New(5, 0, 6, 0)
	assert.True(t, a.Intersects(b))
	assert.True(t, b.Intersects(a))
	assert.False(t, a.Intersects(c))
	assert.False(t, a.Intersects(c.WithPath("other")))
}

func TestLocation_Shift(t *testing.T) {
	loc := source.New(1, 0, 1, 5)
	shifted := loc.Shift(10)
	assert.Equal(t, 11, shifted.FirstLine)
	assert.Equal(t, 11, shifted.LastLine)
	assert.Equal(t, 0, shifted.FirstColumn)
}

func TestLocation_Key(t *testing.T) {
	a := source.New(1, 2, 3, 4).WithPath("cell-1")
	b := source.New(1, 2, 3, 4).WithPath("cell-2")
	assert.NotEqual(t, a.Key(), b.Key())
}
