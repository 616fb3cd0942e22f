package content

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"
)

var (
	// ErrDuplicateSlug is returned when two posts share a slug.
	ErrDuplicateSlug = errors.New("duplicate slug")
	// ErrNoFrontmatter is returned for documents without a YAML header.
	ErrNoFrontmatter = errors.New("missing frontmatter")
)

// Extensions recognised as posts.
var Extensions = []string{".md", ".mdx", ".markdown"}

type frontmatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Date        string   `yaml:"date"`
	ReadTime    string   `yaml:"readTime"`
	Slug        string   `yaml:"slug"`
	Tags        []string `yaml:"tags"`
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04", "January 2, 2006"}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
)

// Load reads every post under dir in fsys. It is meant to run once, before
// the store is published.
func Load(fsys fs.FS, dir string) (*Store, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read posts dir %s: %w", dir, err)
	}

	posts := make([]Post, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !isPostFile(name) {
			continue
		}
		p := path.Join(dir, name)
		raw, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		post, err := Parse(p, raw)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	return NewStore(posts)
}

// Parse builds a Post from a document with YAML frontmatter.
func Parse(source string, raw []byte) (Post, error) {
	meta, body, err := splitFrontmatter(raw)
	if err != nil {
		return Post{}, fmt.Errorf("%s: %w", source, err)
	}

	var fm frontmatter
	if err := yaml.Unmarshal(meta, &fm); err != nil {
		return Post{}, fmt.Errorf("%s: parse frontmatter: %w", source, err)
	}

	var buf bytes.Buffer
	if err := markdown.Convert(body, &buf); err != nil {
		return Post{}, fmt.Errorf("%s: render markdown: %w", source, err)
	}

	post := Post{
		Title:       strings.TrimSpace(fm.Title),
		Description: strings.TrimSpace(fm.Description),
		ReadTime:    strings.TrimSpace(fm.ReadTime),
		Slug:        strings.TrimSpace(fm.Slug),
		Tags:        fm.Tags,
		Body:        template.HTML(buf.String()),
		Source:      source,
	}
	if post.Slug == "" {
		base := path.Base(source)
		post.Slug = strings.TrimSuffix(base, path.Ext(base))
	}
	if post.Title == "" {
		post.Title = post.Slug
	}
	if fm.Date != "" {
		post.Date, err = parseDate(fm.Date)
		if err != nil {
			return Post{}, fmt.Errorf("%s: %w", source, err)
		}
	}
	if post.ReadTime == "" {
		post.ReadTime = FormatReadTime(CountWords(buf.String()))
	}
	return post, nil
}

func splitFrontmatter(raw []byte) ([]byte, []byte, error) {
	content := bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(content, []byte("---\n")) {
		return nil, nil, ErrNoFrontmatter
	}
	rest := content[len("---\n"):]
	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return nil, nil, fmt.Errorf("%w: unterminated header", ErrNoFrontmatter)
	}
	meta := rest[:end]
	body := rest[end+len("\n---"):]
	return meta, bytes.TrimLeft(body, "\n"), nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

func isPostFile(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
