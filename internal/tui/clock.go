package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zachkp/folio/internal/navigator"
)

// timerFiredMsg delivers a navigator timer back into Update so callbacks run
// on the same goroutine as every other navigator call.
type timerFiredMsg struct {
	timer *teaTimer
}

type teaTimer struct {
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *teaTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (t *teaTimer) fire() {
	if t.stopped || t.fired {
		return
	}
	t.fired = true
	t.f()
}

// teaClock collects timers scheduled during an Update; the model turns them
// into commands before returning.
type teaClock struct {
	pending []*teaTimer
}

func (c *teaClock) AfterFunc(d time.Duration, f func()) navigator.Timer {
	t := &teaTimer{d: d, f: f}
	c.pending = append(c.pending, t)
	return t
}

func (c *teaClock) drain() []*teaTimer {
	out := c.pending
	c.pending = nil
	return out
}

func tickTimer(t *teaTimer) tea.Cmd {
	return tea.Tick(t.d, func(time.Time) tea.Msg {
		return timerFiredMsg{timer: t}
	})
}
