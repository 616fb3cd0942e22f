// Package content loads the blog's long-form posts and the static copy
// shown on the landing page.
package content

import (
	"html/template"
	"time"
)

// Post is one long-form document.
type Post struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Date        time.Time     `json:"date"`
	ReadTime    string        `json:"read_time"`
	Slug        string        `json:"slug"`
	Tags        []string      `json:"tags"`
	Body        template.HTML `json:"-"`
	Source      string        `json:"source"`
}

// DisplayDate renders the date as the listing pages show it.
func (p Post) DisplayDate() string {
	if p.Date.IsZero() {
		return ""
	}
	return p.Date.Format("Jan 02, 2006")
}

// HasTag reports whether the post is tagged with tag.
func (p Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
