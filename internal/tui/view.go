package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.tabs())
	b.WriteString("\n")
	b.WriteString(m.blob())
	b.WriteString("\n")

	body := bodyStyle.
		Width(m.width).
		Height(m.bodyRows()).
		MaxHeight(m.bodyRows()).
		Render(strings.Join(m.sectionLines(), "\n"))
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m *Model) tabs() string {
	current := m.nav.State().CurrentIndex
	var tabs []string
	for _, s := range m.registry.All() {
		label := fmt.Sprintf("%d %s", s.Index+1, s.Name)
		if s.Index == current {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// blob places the decorative marker at the section's horizontal preset, or
// where the user last clicked.
func (m *Model) blob() string {
	pos := m.nav.Position()
	if m.pointer != nil {
		pos = *m.pointer
	}
	col := int(pos.X * float64(m.width) / 100)
	if col >= m.width {
		col = m.width - 1
	}
	if col < 0 {
		col = 0
	}
	return strings.Repeat(" ", col) + blobStyle.Render("●")
}

func (m *Model) footer() string {
	state := m.nav.State()
	info := fmt.Sprintf("offset %.0f/%.0f", m.pager.offset, m.pager.width*float64(m.registry.Len()-1))
	if state.IsTransitioning {
		info += " • moving"
	}
	if m.status != "" {
		info += " • " + m.status
	}
	return statusStyle.Render(info) + "  " + mutedStyle.Render(m.keys.helpLine())
}

func (m *Model) sectionLines() []string {
	p := m.profile
	switch m.nav.Section().Name {
	case "hero":
		lines := []string{titleStyle.Render(p.Name), p.Title, ""}
		return append(lines, p.Tagline...)
	case "about":
		lines := []string{titleStyle.Render("about"), ""}
		lines = append(lines, p.About...)
		if p.Focus != "" {
			lines = append(lines, "", mutedStyle.Render(p.Focus))
		}
		return lines
	case "skills":
		return []string{titleStyle.Render("skills"), "", strings.Join(p.Skills, " · ")}
	case "projects":
		lines := m.projectLines()
		if m.narrow() {
			first := int(m.projects.top) / cellPixels
			last := first + m.bodyRows()
			if last > len(lines) {
				last = len(lines)
			}
			if first < last {
				lines = lines[first:last]
			}
		}
		return lines
	case "contact":
		lines := []string{titleStyle.Render("contact"), ""}
		for _, l := range p.Contact {
			lines = append(lines, fmt.Sprintf("%-10s %s", l.Label, l.URL))
		}
		if len(p.Pitch) > 0 {
			lines = append(lines, "", mutedStyle.Render(strings.Join(p.Pitch, " / ")))
		}
		return lines
	case "blog":
		lines := []string{titleStyle.Render("blog"), ""}
		if len(m.posts) == 0 {
			return append(lines, mutedStyle.Render("no posts yet"))
		}
		for _, post := range m.posts {
			lines = append(lines,
				post.Title,
				mutedStyle.Render(post.DisplayDate()+" · "+post.ReadTime),
				"",
			)
		}
		return lines
	default:
		return []string{m.nav.Section().Name}
	}
}

// projectLines is the full projects list; on narrow screens only a window of
// it is shown.
func (m *Model) projectLines() []string {
	var lines []string
	for _, p := range m.profile.Projects {
		lines = append(lines,
			titleStyle.Render(p.Title),
			p.Description,
			mutedStyle.Render(strings.Join(p.Tech, ", ")),
			"",
		)
	}
	return lines
}
