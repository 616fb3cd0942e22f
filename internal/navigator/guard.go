package navigator

// Direction of a discrete intent.
type Direction int

const (
	Previous Direction = -1
	Next     Direction = 1
)

func (d Direction) String() string {
	if d == Next {
		return "next"
	}
	return "previous"
}

// DefaultEpsilon is the boundary tolerance in pixels.
const DefaultEpsilon = 5

// Region is a vertically scrollable area nested inside a section.
type Region interface {
	ScrollTop() float64
	ScrollHeight() float64
	ClientHeight() float64
}

// Guard keeps section advancement on hold while a nested region inside
// Section still has room to scroll in the intent's direction.
type Guard struct {
	Section int
	// Epsilon is the edge tolerance; zero means DefaultEpsilon.
	Epsilon float64
	Region  Region
	// Applies reports whether the current layout lets the region overflow.
	// Nil means always.
	Applies func() bool
}

// Allows reports whether an intent in dir may leave the guarded section.
func (g *Guard) Allows(dir Direction) bool {
	if g == nil || g.Region == nil {
		return true
	}
	if g.Applies != nil && !g.Applies() {
		return true
	}

	eps := g.Epsilon
	if eps <= 0 {
		eps = DefaultEpsilon
	}
	top := g.Region.ScrollTop()
	height := g.Region.ScrollHeight()
	client := g.Region.ClientHeight()
	if height-client <= eps {
		return true
	}

	if dir == Next {
		return top+client >= height-eps
	}
	return top <= eps
}
