package content

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/folio/internal/logger"
)

const helloPost = `---
title: "Hello World"
description: "first post"
date: 2024-03-01
readTime: "3 min read"
slug: hello-world
tags: ["go", "web"]
---

# Hello

Some **bold** text.
`

const scrollPost = `---
title: Horizontal scrolling done right
description: notes on paginated layouts
date: 2024-05-10
slug: horizontal-scrolling
tags:
  - css
---

Short body.
`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"posts/hello.mdx":    {Data: []byte(helloPost)},
		"posts/scrolling.md": {Data: []byte(scrollPost)},
		"posts/untitled.md":  {Data: []byte("---\ndate: 2023-01-01\n---\nno slug here\n")},
		"posts/notes.txt":    {Data: []byte("ignored")},
		"posts/.draft.md":    {Data: []byte("ignored")},
		"posts/nested/x.md":  {Data: []byte("ignored")},
	}
}

func TestLoad(t *testing.T) {
	store, err := Load(testFS(), "posts")
	require.NoError(t, err)
	require.Equal(t, 3, store.Len())

	all := store.All()
	assert.Equal(t, "horizontal-scrolling", all[0].Slug, "newest first")
	assert.Equal(t, "hello-world", all[1].Slug)
	assert.Equal(t, "untitled", all[2].Slug, "slug falls back to the file name")

	hello, ok := store.Lookup("hello-world")
	require.True(t, ok)
	assert.Equal(t, "Hello World", hello.Title)
	assert.Equal(t, "first post", hello.Description)
	assert.Equal(t, "3 min read", hello.ReadTime)
	assert.Equal(t, []string{"go", "web"}, hello.Tags)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), hello.Date)
	assert.Contains(t, string(hello.Body), "<strong>bold</strong>")
	assert.Equal(t, "Mar 01, 2024", hello.DisplayDate())
	assert.True(t, hello.HasTag("go"))
	assert.False(t, hello.HasTag("rust"))

	scrolling, _ := store.Lookup("horizontal-scrolling")
	assert.Equal(t, "1 min read", scrolling.ReadTime, "estimated when absent")
}

func TestLookup_EveryPostBySlug(t *testing.T) {
	store, err := Load(testFS(), "posts")
	require.NoError(t, err)

	for _, p := range store.All() {
		got, ok := store.Lookup(p.Slug)
		require.True(t, ok, p.Slug)
		assert.Equal(t, p.Source, got.Source)
	}

	_, ok := store.Lookup("not-a-post")
	assert.False(t, ok)
	_, ok = store.Lookup("")
	assert.False(t, ok)
}

func TestLoad_DuplicateSlug(t *testing.T) {
	fsys := fstest.MapFS{
		"posts/a.md": {Data: []byte(helloPost)},
		"posts/b.md": {Data: []byte(helloPost)},
	}
	_, err := Load(fsys, "posts")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateSlug))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no frontmatter", "# just markdown"},
		{"unterminated", "---\ntitle: x\n"},
		{"bad yaml", "---\ntitle: \"unclosed\n---\nbody"},
		{"bad date", "---\ndate: someday\n---\nbody"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("x.md", []byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestParse_WindowsLineEndings(t *testing.T) {
	raw := strings.ReplaceAll(helloPost, "\n", "\r\n")
	post, err := Parse("hello.md", []byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "hello-world", post.Slug)
}

func TestStore_LatestAndTags(t *testing.T) {
	store, err := Load(testFS(), "posts")
	require.NoError(t, err)

	assert.Len(t, store.Latest(2), 2)
	assert.Len(t, store.Latest(10), 3)
	assert.Nil(t, store.Latest(0))
	assert.Equal(t, []string{"css", "go", "web"}, store.Tags())
}

func TestStore_Suggest(t *testing.T) {
	store, err := Load(testFS(), "posts")
	require.NoError(t, err)

	p, ok := store.Suggest("helo-world")
	require.True(t, ok)
	assert.Equal(t, "hello-world", p.Slug)

	_, ok = store.Suggest("completely-unrelated-thing")
	assert.False(t, ok)
	_, ok = store.Suggest("")
	assert.False(t, ok)
}

func TestCountWordsAndReadTime(t *testing.T) {
	html := "<p>one two three</p><script>var a = 1 2 3</script><p>four</p>"
	assert.Equal(t, 4, CountWords(html))

	assert.Equal(t, "1 min read", FormatReadTime(0))
	assert.Equal(t, "1 min read", FormatReadTime(200))
	assert.Equal(t, "2 min read", FormatReadTime(201))
}

func TestLibrary_ReloadKeepsPreviousOnError(t *testing.T) {
	fsys := fstest.MapFS{"posts/hello.md": {Data: []byte(helloPost)}}
	lib, err := NewLibrary(fsys, "posts", nil)
	require.NoError(t, err)
	first := lib.Store()

	fsys["posts/dup.md"] = &fstest.MapFile{Data: []byte(helloPost)}
	assert.Error(t, lib.Reload())
	assert.Same(t, first, lib.Store())

	delete(fsys, "posts/dup.md")
	fsys["posts/scrolling.md"] = &fstest.MapFile{Data: []byte(scrollPost)}
	require.NoError(t, lib.Reload())
	assert.Equal(t, 2, lib.Store().Len())
}

func TestLibrary_LogsLoadedPosts(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter("content", func() bool { return true }, &buf)

	_, err := NewLibrary(fstest.MapFS{"posts/hello.md": {Data: []byte(helloPost)}}, "posts", log)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "INFO [content] loaded posts [count=1 dir=posts]")
}
