package navigator

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/folio/internal/decor"
	"github.com/Zachkp/folio/internal/sections"
)

type manualTimer struct {
	clock   *manualClock
	due     time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// manualClock fires timers only when Advance is called.
type manualClock struct {
	now    time.Duration
	timers []*manualTimer
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	t := &manualTimer{clock: c, due: c.now + d, fn: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *manualClock) Advance(d time.Duration) {
	target := c.now + d
	for {
		var next *manualTimer
		pending := c.timers[:0]
		for _, t := range c.timers {
			if !t.stopped && !t.fired {
				pending = append(pending, t)
			}
		}
		c.timers = pending
		sort.SliceStable(c.timers, func(i, j int) bool { return c.timers[i].due < c.timers[j].due })
		if len(c.timers) > 0 && c.timers[0].due <= target {
			next = c.timers[0]
		}
		if next == nil {
			break
		}
		c.now = next.due
		next.fired = true
		next.fn()
	}
	c.now = target
}

type fakeScroller struct {
	width   float64
	offsets []float64
}

func (s *fakeScroller) ScrollTo(offset float64) { s.offsets = append(s.offsets, offset) }
func (s *fakeScroller) Width() float64          { return s.width }

type fakeRegion struct {
	top, height, client float64
}

func (r *fakeRegion) ScrollTop() float64    { return r.top }
func (r *fakeRegion) ScrollHeight() float64 { return r.height }
func (r *fakeRegion) ClientHeight() float64 { return r.client }

func newTestNavigator(opts Options) (*Navigator, *fakeScroller, *manualClock) {
	scroller := &fakeScroller{width: 1000}
	clock := &manualClock{}
	return New(sections.Default(), scroller, clock, opts), scroller, clock
}

func TestGoTo_AcceptsAndSettles(t *testing.T) {
	nav, scroller, clock := newTestNavigator(Options{})

	require.True(t, nav.GoTo(2))
	assert.Equal(t, State{CurrentIndex: 2, IsTransitioning: true}, nav.State())
	assert.Equal(t, []float64{2000}, scroller.offsets)
	assert.Equal(t, decor.Position{X: 10, Y: 70}, nav.Position())

	clock.Advance(999 * time.Millisecond)
	assert.True(t, nav.State().IsTransitioning)
	clock.Advance(time.Millisecond)
	assert.False(t, nav.State().IsTransitioning)
	assert.Equal(t, 2, nav.State().CurrentIndex)
}

func TestGoTo_RejectsOutOfRange(t *testing.T) {
	nav, scroller, _ := newTestNavigator(Options{})

	for _, target := range []int{-1, 6, 100} {
		assert.False(t, nav.GoTo(target), "target %d", target)
	}
	assert.Equal(t, State{}, nav.State())
	assert.Empty(t, scroller.offsets)
}

func TestGoTo_IgnoredWhileTransitioning(t *testing.T) {
	nav, scroller, clock := newTestNavigator(Options{})

	require.True(t, nav.GoTo(1))
	before := nav.State()
	assert.False(t, nav.GoTo(4))
	assert.Equal(t, before, nav.State())
	assert.Len(t, scroller.offsets, 1)

	clock.Advance(DefaultSettleDelay)
	assert.True(t, nav.GoTo(4))
}

func TestGoTo_IndexAlwaysInRange(t *testing.T) {
	nav, _, clock := newTestNavigator(Options{})
	for target := -3; target < 10; target++ {
		nav.GoTo(target)
		clock.Advance(DefaultSettleDelay)
		idx := nav.State().CurrentIndex
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 6)
	}
}

func TestOnDiscreteIntent(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		delta    float64
		expected Outcome
		index    int
	}{
		{"advance from first", 0, 50, Advanced, 1},
		{"retreat", 2, -50, Retreated, 1},
		{"below threshold", 2, 30, Ignored, 2},
		{"negative below threshold", 2, -30, Ignored, 2},
		{"past last section", 5, 50, Ignored, 5},
		{"before first section", 0, -50, Ignored, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nav, _, clock := newTestNavigator(Options{})
			if tt.start != 0 {
				require.True(t, nav.GoTo(tt.start))
				clock.Advance(DefaultSettleDelay)
			}

			assert.Equal(t, tt.expected, nav.OnDiscreteIntent(tt.delta))
			assert.Equal(t, tt.index, nav.State().CurrentIndex)
		})
	}
}

func TestOnDiscreteIntent_ScenarioFromFirstSection(t *testing.T) {
	nav, _, clock := newTestNavigator(Options{})

	assert.Equal(t, Advanced, nav.OnDiscreteIntent(50))
	assert.Equal(t, State{CurrentIndex: 1, IsTransitioning: true}, nav.State())

	clock.Advance(DefaultSettleDelay)
	assert.Equal(t, State{CurrentIndex: 1, IsTransitioning: false}, nav.State())
}

func TestOnDiscreteIntent_DroppedNotQueued(t *testing.T) {
	nav, _, clock := newTestNavigator(Options{})

	assert.Equal(t, Advanced, nav.OnDiscreteIntent(120))
	for i := 0; i < 5; i++ {
		assert.Equal(t, Ignored, nav.OnDiscreteIntent(120))
	}
	clock.Advance(DefaultSettleDelay)
	assert.Equal(t, 1, nav.State().CurrentIndex)
}

func TestNestedGuard(t *testing.T) {
	tests := []struct {
		name     string
		region   *fakeRegion
		applies  bool
		delta    float64
		expected Outcome
		index    int
	}{
		{"next consumed before bottom", &fakeRegion{top: 100, height: 1200, client: 600}, true, 50, Consumed, 3},
		{"next advances at bottom", &fakeRegion{top: 600, height: 1200, client: 600}, true, 50, Advanced, 4},
		{"next advances within epsilon", &fakeRegion{top: 596, height: 1200, client: 600}, true, 50, Advanced, 4},
		{"previous consumed below top", &fakeRegion{top: 300, height: 1200, client: 600}, true, -50, Consumed, 3},
		{"previous retreats at top", &fakeRegion{top: 4, height: 1200, client: 600}, true, -50, Retreated, 2},
		{"wide layout passes through", &fakeRegion{top: 100, height: 1200, client: 600}, false, 50, Advanced, 4},
		{"no overflow passes through", &fakeRegion{top: 0, height: 600, client: 600}, true, 50, Advanced, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			applies := tt.applies
			guard := &Guard{
				Section: 3,
				Epsilon: DefaultEpsilon,
				Region:  tt.region,
				Applies: func() bool { return applies },
			}
			nav, _, clock := newTestNavigator(Options{Guard: guard})
			require.True(t, nav.GoTo(3))
			clock.Advance(DefaultSettleDelay)

			assert.Equal(t, tt.expected, nav.OnDiscreteIntent(tt.delta))
			assert.Equal(t, tt.index, nav.State().CurrentIndex)
		})
	}
}

func TestNestedGuard_OnlyOnGuardedSection(t *testing.T) {
	guard := &Guard{Section: 3, Epsilon: DefaultEpsilon, Region: &fakeRegion{top: 0, height: 5000, client: 600}}
	nav, _, _ := newTestNavigator(Options{Guard: guard})

	assert.Equal(t, Advanced, nav.OnDiscreteIntent(50))
	assert.Equal(t, 1, nav.State().CurrentIndex)
}

func TestOnScrollSettled(t *testing.T) {
	nav, scroller, _ := newTestNavigator(Options{})

	assert.True(t, nav.OnScrollSettled(2000, 1000))
	assert.Equal(t, State{CurrentIndex: 2}, nav.State())
	assert.Empty(t, scroller.offsets, "reconciliation must not scroll")
	assert.Equal(t, decor.Position{X: 10, Y: 70}, nav.Position())

	assert.False(t, nav.OnScrollSettled(2400, 1000), "rounds to the same section")
	assert.True(t, nav.OnScrollSettled(2600, 1000))
	assert.Equal(t, 3, nav.State().CurrentIndex)

	assert.True(t, nav.OnScrollSettled(99999, 1000))
	assert.Equal(t, 5, nav.State().CurrentIndex, "clamped to last section")

	assert.True(t, nav.OnScrollSettled(-500, 1000))
	assert.Equal(t, 0, nav.State().CurrentIndex, "clamped to first section")

	assert.False(t, nav.OnScrollSettled(1000, 0))
}

func TestOnScroll_Debounces(t *testing.T) {
	nav, _, clock := newTestNavigator(Options{})

	nav.OnScroll(400, 1000)
	clock.Advance(50 * time.Millisecond)
	nav.OnScroll(900, 1000)
	clock.Advance(50 * time.Millisecond)
	assert.Equal(t, 0, nav.State().CurrentIndex, "first timer was replaced")

	clock.Advance(50 * time.Millisecond)
	assert.Equal(t, 1, nav.State().CurrentIndex)
	assert.False(t, nav.State().IsTransitioning)
}

func TestGoTo_CancelsStaleScrollReconciliation(t *testing.T) {
	nav, _, clock := newTestNavigator(Options{})

	// The user dragged to section 1; reconciliation is pending.
	nav.OnScroll(1000, 1000)
	clock.Advance(40 * time.Millisecond)

	require.True(t, nav.GoTo(4))
	clock.Advance(DefaultDebounceWindow)
	assert.Equal(t, 4, nav.State().CurrentIndex)

	clock.Advance(DefaultSettleDelay)
	assert.Equal(t, State{CurrentIndex: 4}, nav.State())
}

// A timer whose Stop loses the race still must not overwrite a newer jump.
func TestGoTo_StaleCallbackAfterFailedStop(t *testing.T) {
	var pending []func()
	clock := ClockFunc(func(d time.Duration, f func()) Timer {
		pending = append(pending, f)
		return stopFails{}
	})
	nav := New(sections.Default(), &fakeScroller{width: 1000}, clock, Options{})

	nav.OnScroll(1000, 1000)
	require.Len(t, pending, 1)
	stale := pending[0]

	require.True(t, nav.GoTo(3))
	stale()
	assert.Equal(t, 3, nav.State().CurrentIndex)
}

type stopFails struct{}

func (stopFails) Stop() bool { return false }

func TestObserverAndClose(t *testing.T) {
	var seen []State
	nav, _, clock := newTestNavigator(Options{
		Observer: func(s State, _ decor.Position) { seen = append(seen, s) },
	})

	nav.GoTo(1)
	assert.Equal(t, "about", nav.Section().Name)
	nav.OnScroll(3000, 1000)
	nav.Close()
	clock.Advance(5 * time.Second)

	require.Len(t, seen, 1)
	assert.Equal(t, 1, seen[0].CurrentIndex)
	assert.False(t, nav.GoTo(2))
	assert.Equal(t, Ignored, nav.OnDiscreteIntent(100))
	assert.False(t, nav.OnScrollSettled(5000, 1000))
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "advanced", Advanced.String())
	assert.Equal(t, "consumed", Consumed.String())
	assert.Equal(t, "ignored", Ignored.String())
	assert.Equal(t, "next", Next.String())
}
