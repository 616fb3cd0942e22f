// Package sections holds the fixed, ordered list of landing page sections.
package sections

import (
	"errors"
	"fmt"

	"github.com/Zachkp/folio/internal/decor"
)

// Section is one full-viewport pane of the landing page.
type Section struct {
	Name   string         `json:"name"`
	Index  int            `json:"index"`
	Preset decor.Position `json:"preset"`
}

// Registry is immutable once built.
type Registry struct {
	sections []Section
	byName   map[string]int
	presets  decor.Table
}

var (
	defaultNames   = []string{"hero", "about", "skills", "projects", "contact", "blog"}
	defaultPresets = []decor.Position{
		{X: 20, Y: 20},
		{X: 70, Y: 60},
		{X: 10, Y: 70},
		{X: 80, Y: 10},
		{X: 50, Y: 50},
		{X: 30, Y: 30},
	}
)

// Projects is the section whose content scrolls vertically on narrow layouts.
const Projects = "projects"

// Default returns the landing page registry.
func Default() *Registry {
	r, err := New(defaultNames, defaultPresets)
	if err != nil {
		panic(err)
	}
	return r
}

// New builds a registry from parallel name and preset lists.
func New(names []string, presets []decor.Position) (*Registry, error) {
	if len(names) == 0 {
		return nil, errors.New("sections: registry needs at least one section")
	}
	if len(names) != len(presets) {
		return nil, fmt.Errorf("sections: %d names but %d presets", len(names), len(presets))
	}

	r := &Registry{
		sections: make([]Section, len(names)),
		byName:   make(map[string]int, len(names)),
		presets:  decor.NewTable(presets),
	}
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("sections: empty name at index %d", i)
		}
		if _, dup := r.byName[name]; dup {
			return nil, fmt.Errorf("sections: duplicate name %q", name)
		}
		r.byName[name] = i
		r.sections[i] = Section{Name: name, Index: i, Preset: presets[i]}
	}
	return r, nil
}

func (r *Registry) Len() int { return len(r.sections) }

// At returns the section at index i.
func (r *Registry) At(i int) (Section, bool) {
	if i < 0 || i >= len(r.sections) {
		return Section{}, false
	}
	return r.sections[i], true
}

// IndexOf returns the index of the named section.
func (r *Registry) IndexOf(name string) (int, bool) {
	i, ok := r.byName[name]
	return i, ok
}

// Clamp pins i into [0, Len()-1].
func (r *Registry) Clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(r.sections) {
		return len(r.sections) - 1
	}
	return i
}

// All returns a copy of the ordered sections.
func (r *Registry) All() []Section {
	out := make([]Section, len(r.sections))
	copy(out, r.sections)
	return out
}

// Presets returns the decorative position table indexed by section.
func (r *Registry) Presets() decor.Table { return r.presets }
