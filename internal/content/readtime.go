package content

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// WordsPerMinute is the reading speed used for estimates.
const WordsPerMinute = 200

// CountWords counts words in the text nodes of rendered HTML, skipping
// script and style bodies.
func CountWords(rendered string) int {
	z := html.NewTokenizer(strings.NewReader(rendered))
	words := 0
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return words
		case html.StartTagToken:
			name, _ := z.TagName()
			if a := atom.Lookup(name); a == atom.Script || a == atom.Style {
				skip++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if a := atom.Lookup(name); (a == atom.Script || a == atom.Style) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				words += len(strings.Fields(string(z.Text())))
			}
		}
	}
}

// FormatReadTime turns a word count into "N min read", never below one minute.
func FormatReadTime(words int) string {
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}
