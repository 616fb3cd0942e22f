// Package tui renders the landing page in a terminal, one section per screen,
// driven by the same section navigator as the web page.
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/decor"
	"github.com/Zachkp/folio/internal/logger"
	"github.com/Zachkp/folio/internal/navigator"
	"github.com/Zachkp/folio/internal/sections"
)

const (
	// wheelDelta is the pixel delta reported for one wheel notch.
	wheelDelta = 100
	// cellPixels converts terminal rows to the pixel units the guard expects.
	cellPixels = 16
	// chromeRows are the rows taken by the tab bar, decor line and footer.
	chromeRows = 4

	defaultNarrowColumns = 100
)

// Options configure the terminal landing page.
type Options struct {
	Registry  *sections.Registry
	Profile   content.Profile
	Posts     []content.Post
	Navigator config.NavigatorConfig
	Logger    *logger.Logger
}

// pager is the horizontally paginated strip of sections. Offsets are in
// columns; one section is one terminal width.
type pager struct {
	offset float64
	width  float64
}

func (p *pager) ScrollTo(offset float64) { p.offset = offset }
func (p *pager) Width() float64 { return p.width }

// listRegion is the projects list, which scrolls on its own when it does not
// fit the screen.
type listRegion struct {
	top    float64
	height float64
	client float64
}

func (r *listRegion) ScrollTop() float64 { return r.top }
func (r *listRegion) ScrollHeight() float64 { return r.height }
func (r *listRegion) ClientHeight() float64 { return r.client }

func (r *listRegion) scrollBy(rows int) {
	r.top += float64(rows * cellPixels)
	r.clamp()
}

func (r *listRegion) clamp() {
	if limit := r.height - r.client; r.top > limit {
		r.top = limit
	}
	if r.top < 0 {
		r.top = 0
	}
}

// Model is the bubbletea model of the terminal landing page.
type Model struct {
	registry *sections.Registry
	profile  content.Profile
	posts    []content.Post
	log      *logger.Logger

	nav      *navigator.Navigator
	clock    *teaClock
	pager    *pager
	projects *listRegion
	keys     keyMap

	narrowColumns int
	width         int
	height        int
	ready         bool
	quitting      bool
	status        string
	// pointer overrides the section's decor position until the section changes.
	pointer *decor.Position

	// schedule turns a navigator timer into a command.
	schedule func(*teaTimer) tea.Cmd
}

func New(opts Options) *Model {
	if opts.Registry == nil {
		opts.Registry = sections.Default()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	narrow := opts.Navigator.NarrowColumns
	if narrow <= 0 {
		narrow = defaultNarrowColumns
	}

	m := &Model{
		registry:      opts.Registry,
		profile:       opts.Profile,
		posts:         opts.Posts,
		log:           opts.Logger,
		clock:         &teaClock{},
		pager:         &pager{},
		projects:      &listRegion{},
		keys:          defaultKeyMap(),
		narrowColumns: narrow,
		schedule:      tickTimer,
	}

	var guard *navigator.Guard
	if idx, ok := m.registry.IndexOf(sections.Projects); ok {
		guard = &navigator.Guard{
			Section: idx,
			Epsilon: opts.Navigator.GuardEpsilon,
			Region:  m.projects,
			Applies: m.narrow,
		}
	}

	m.nav = navigator.New(m.registry, m.pager, m.clock, navigator.Options{
		SettleDelay:    opts.Navigator.SettleDelay,
		DebounceWindow: opts.Navigator.DebounceWindow,
		Threshold:      opts.Navigator.Threshold,
		Guard:          guard,
		Observer: func(navigator.State, decor.Position) {
			m.pointer = nil
		},
		Logger: opts.Logger.WithComponent("navigator"),
	})
	return m
}

// narrow reports whether the projects list is confined to the screen.
func (m *Model) narrow() bool {
	return m.width < m.narrowColumns
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.pager.width = float64(msg.Width)
		m.pager.offset = float64(m.nav.State().CurrentIndex) * m.pager.width
		m.layoutProjects()
		m.ready = true

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			break
		}
		switch msg.Button {
		case tea.MouseButtonLeft:
			p := decor.FromPointer(float64(msg.X), float64(msg.Y), float64(m.width), float64(m.height))
			m.pointer = &p
		case tea.MouseButtonWheelDown:
			m.wheel(wheelDelta)
		case tea.MouseButtonWheelUp:
			m.wheel(-wheelDelta)
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			m.nav.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.goTo(m.nav.State().CurrentIndex + 1)
		case key.Matches(msg, m.keys.Prev):
			m.goTo(m.nav.State().CurrentIndex - 1)
		case key.Matches(msg, m.keys.Jump):
			m.goTo(int(msg.String()[0] - '1'))
		case key.Matches(msg, m.keys.NudgeLeft):
			m.nudge(-1)
		case key.Matches(msg, m.keys.NudgeRight):
			m.nudge(1)
		case key.Matches(msg, m.keys.Down):
			m.wheel(wheelDelta)
		case key.Matches(msg, m.keys.Up):
			m.wheel(-wheelDelta)
		}

	case timerFiredMsg:
		msg.timer.fire()
	}

	return m, m.flushTimers()
}

func (m *Model) flushTimers() tea.Cmd {
	timers := m.clock.drain()
	if len(timers) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(timers))
	for _, t := range timers {
		cmds = append(cmds, m.schedule(t))
	}
	return tea.Batch(cmds...)
}

func (m *Model) wheel(delta float64) {
	outcome := m.nav.OnDiscreteIntent(delta)
	if outcome == navigator.Consumed {
		rows := 1
		if delta < 0 {
			rows = -1
		}
		m.projects.scrollBy(rows)
	}
	m.status = outcome.String()
}

func (m *Model) goTo(i int) {
	if m.nav.GoTo(i) {
		m.status = "jump"
		return
	}
	m.status = "ignored"
}

// nudge drags the strip by a quarter screen, like a partial swipe.
func (m *Model) nudge(dir int) {
	if m.pager.width <= 0 {
		return
	}
	limit := float64(m.registry.Len()-1) * m.pager.width
	offset := m.pager.offset + float64(dir)*m.pager.width/4
	if offset < 0 {
		offset = 0
	}
	if offset > limit {
		offset = limit
	}
	m.pager.offset = offset
	m.nav.OnScroll(offset, m.pager.width)
	m.status = "drag"
}

func (m *Model) bodyRows() int {
	rows := m.height - chromeRows
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *Model) layoutProjects() {
	m.projects.height = float64(len(m.projectLines()) * cellPixels)
	m.projects.client = float64(m.bodyRows() * cellPixels)
	m.projects.clamp()
}

// Run starts the program and blocks until the user quits or ctx is done.
func Run(ctx context.Context, m *Model) error {
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
