// Package navigator keeps the landing page's section index in sync with the
// horizontal scroll offset of its paginated container.
//
// A Navigator is not safe for concurrent use. Every entry point, and every
// callback scheduled through its Clock, must run on one logical thread.
package navigator

import (
	"math"
	"time"

	"github.com/Zachkp/folio/internal/decor"
	"github.com/Zachkp/folio/internal/logger"
	"github.com/Zachkp/folio/internal/sections"
)

const (
	DefaultSettleDelay    = 1000 * time.Millisecond
	DefaultDebounceWindow = 100 * time.Millisecond
	DefaultThreshold      = 30
)

// Scroller is the horizontally paginated container.
type Scroller interface {
	// ScrollTo starts a smooth scroll to offset.
	ScrollTo(offset float64)
	Width() float64
}

// State is the navigator's observable state.
type State struct {
	CurrentIndex    int  `json:"current_index"`
	IsTransitioning bool `json:"is_transitioning"`
}

// Outcome describes what a discrete intent did.
type Outcome int

const (
	Ignored Outcome = iota
	Advanced
	Retreated
	// Consumed means the nested region should scroll natively instead.
	Consumed
)

func (o Outcome) String() string {
	switch o {
	case Advanced:
		return "advanced"
	case Retreated:
		return "retreated"
	case Consumed:
		return "consumed"
	default:
		return "ignored"
	}
}

// Options tune the navigator. Zero values take the defaults.
type Options struct {
	SettleDelay    time.Duration
	DebounceWindow time.Duration
	Threshold      float64
	Guard          *Guard
	// Observer is called after every index change.
	Observer func(State, decor.Position)
	Logger   *logger.Logger
}

type Navigator struct {
	registry *sections.Registry
	scroller Scroller
	clock    Clock
	opts     Options
	log      *logger.Logger

	state    State
	position decor.Position

	settle      Timer
	debounce    Timer
	debounceGen uint64
	closed      bool
}

// New creates a navigator positioned on the first section.
func New(registry *sections.Registry, scroller Scroller, clock Clock, opts Options) *Navigator {
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = DefaultSettleDelay
	}
	if opts.DebounceWindow <= 0 {
		opts.DebounceWindow = DefaultDebounceWindow
	}
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	n := &Navigator{
		registry: registry,
		scroller: scroller,
		clock:    clock,
		opts:     opts,
		log:      log,
	}
	n.position, _ = registry.Presets().Lookup(0)
	return n
}

func (n *Navigator) State() State { return n.state }

func (n *Navigator) Position() decor.Position { return n.position }

// Section returns the current section.
func (n *Navigator) Section() sections.Section {
	s, _ := n.registry.At(n.state.CurrentIndex)
	return s
}

// GoTo starts an animated transition to target. It returns false when the
// target is out of range or another transition is still settling.
func (n *Navigator) GoTo(target int) bool {
	if n.closed || n.state.IsTransitioning {
		return false
	}
	if target < 0 || target >= n.registry.Len() {
		n.log.Debug("goto %d rejected: out of range", target)
		return false
	}

	// A reconciliation scheduled before this jump must not land after it.
	n.cancelDebounce()

	n.state.IsTransitioning = true
	n.scroller.ScrollTo(float64(target) * n.scroller.Width())
	n.setIndex(target)

	n.settle = n.clock.AfterFunc(n.opts.SettleDelay, func() {
		n.settle = nil
		n.state.IsTransitioning = false
	})
	return true
}

// OnDiscreteIntent interprets one wheel or gesture tick.
func (n *Navigator) OnDiscreteIntent(delta float64) Outcome {
	if n.closed || n.state.IsTransitioning || math.Abs(delta) <= n.opts.Threshold {
		return Ignored
	}

	dir := Next
	if delta < 0 {
		dir = Previous
	}
	target := n.state.CurrentIndex + int(dir)
	if target < 0 || target >= n.registry.Len() {
		return Ignored
	}

	if g := n.opts.Guard; g != nil && g.Section == n.state.CurrentIndex && !g.Allows(dir) {
		n.log.Debug("%s intent consumed by nested region", dir)
		return Consumed
	}

	if !n.GoTo(target) {
		return Ignored
	}
	if dir == Next {
		return Advanced
	}
	return Retreated
}

// OnScroll records a raw scroll event. Reconciliation runs once the offset
// has been stable for the debounce window; each event replaces the pending one.
func (n *Navigator) OnScroll(offset, width float64) {
	if n.closed {
		return
	}
	n.cancelDebounce()
	gen := n.debounceGen
	n.debounce = n.clock.AfterFunc(n.opts.DebounceWindow, func() {
		if gen != n.debounceGen {
			return
		}
		n.debounce = nil
		n.OnScrollSettled(offset, width)
	})
}

// OnScrollSettled aligns the index with a settled scroll offset without
// starting a new animated scroll.
func (n *Navigator) OnScrollSettled(offset, width float64) bool {
	if n.closed || width <= 0 {
		return false
	}
	inferred := n.registry.Clamp(int(math.Round(offset / width)))
	if inferred == n.state.CurrentIndex {
		return false
	}
	n.log.Debug("scroll settled on section %d (was %d)", inferred, n.state.CurrentIndex)
	n.setIndex(inferred)
	return true
}

// Close stops pending timers. The navigator ignores all input afterwards.
func (n *Navigator) Close() {
	n.closed = true
	n.cancelDebounce()
	if n.settle != nil {
		n.settle.Stop()
		n.settle = nil
	}
}

func (n *Navigator) cancelDebounce() {
	n.debounceGen++
	if n.debounce != nil {
		n.debounce.Stop()
		n.debounce = nil
	}
}

func (n *Navigator) setIndex(i int) {
	n.state.CurrentIndex = i
	if p, ok := n.registry.Presets().Lookup(i); ok {
		n.position = p
	}
	if n.opts.Observer != nil {
		n.opts.Observer(n.state, n.position)
	}
}
