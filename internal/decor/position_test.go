package decor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromPointer(t *testing.T) {
	tests := []struct {
		name       string
		x, y, w, h float64
		expected   Position
	}{
		{"center", 500, 300, 1000, 600, Position{50, 50}},
		{"origin", 0, 0, 1000, 600, Position{0, 0}},
		{"bottom right", 1000, 600, 1000, 600, Position{100, 100}},
		{"zero viewport", 10, 10, 0, 0, Position{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FromPointer(tt.x, tt.y, tt.w, tt.h))
		})
	}
}

func TestTable_LookupIsReadOnly(t *testing.T) {
	presets := []Position{{20, 20}, {70, 60}}
	table := NewTable(presets)
	presets[0] = Position{99, 99}

	p, ok := table.Lookup(0)
	assert.True(t, ok)
	assert.Equal(t, Position{20, 20}, p)

	_, ok = table.Lookup(2)
	assert.False(t, ok)
	_, ok = table.Lookup(-1)
	assert.False(t, ok)
	assert.Equal(t, 2, table.Len())
}

func TestPosition_String(t *testing.T) {
	assert.Equal(t, "20%,70%", Position{20, 70}.String())
}
