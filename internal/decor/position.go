// Package decor maps navigation state and pointer input to the cosmetic
// background position used by the blob decoration.
package decor

import "fmt"

// Position is a coordinate pair in percent of the viewport.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Default positions for pages without section paging.
var (
	BlogIndexStart = Position{X: 30, Y: 40}
	PostStart      = Position{X: 50, Y: 30}
)

func (p Position) String() string {
	return fmt.Sprintf("%.0f%%,%.0f%%", p.X, p.Y)
}

// FromPointer converts raw pointer coordinates into viewport percentages.
// A zero-sized viewport yields the origin.
func FromPointer(x, y, width, height float64) Position {
	var p Position
	if width > 0 {
		p.X = x / width * 100
	}
	if height > 0 {
		p.Y = y / height * 100
	}
	return p
}

// Table is an immutable mapping from section index to preset position.
type Table struct {
	presets []Position
}

// NewTable copies presets into a read-only table.
func NewTable(presets []Position) Table {
	cp := make([]Position, len(presets))
	copy(cp, presets)
	return Table{presets: cp}
}

// Len returns the number of presets.
func (t Table) Len() int { return len(t.presets) }

// Lookup returns the preset for index i.
func (t Table) Lookup(i int) (Position, bool) {
	if i < 0 || i >= len(t.presets) {
		return Position{}, false
	}
	return t.presets[i], true
}
