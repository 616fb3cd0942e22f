package content

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Store is an immutable, fully loaded set of posts.
type Store struct {
	posts  []Post
	bySlug map[string]int
}

// NewStore indexes posts by slug, newest first. Slugs must be unique.
func NewStore(posts []Post) (*Store, error) {
	sorted := make([]Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Slug < sorted[j].Slug
		}
		return sorted[i].Date.After(sorted[j].Date)
	})

	s := &Store{posts: sorted, bySlug: make(map[string]int, len(sorted))}
	for i, p := range sorted {
		if p.Slug == "" {
			return nil, fmt.Errorf("post %s has no slug", p.Source)
		}
		if prev, ok := s.bySlug[p.Slug]; ok {
			return nil, fmt.Errorf("%w %q in %s and %s", ErrDuplicateSlug, p.Slug, sorted[prev].Source, p.Source)
		}
		s.bySlug[p.Slug] = i
	}
	return s, nil
}

func (s *Store) Len() int { return len(s.posts) }

// All returns every post, newest first.
func (s *Store) All() []Post {
	out := make([]Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// Latest returns up to n of the newest posts.
func (s *Store) Latest(n int) []Post {
	if n > len(s.posts) {
		n = len(s.posts)
	}
	if n <= 0 {
		return nil
	}
	out := make([]Post, n)
	copy(out, s.posts[:n])
	return out
}

// Lookup returns the post with the given slug.
func (s *Store) Lookup(slug string) (Post, bool) {
	i, ok := s.bySlug[slug]
	if !ok {
		return Post{}, false
	}
	return s.posts[i], true
}

// Suggest returns the post whose slug is closest to slug, if it is close
// enough to be a plausible typo.
func (s *Store) Suggest(slug string) (Post, bool) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return Post{}, false
	}
	limit := len(slug) / 3
	if limit < 2 {
		limit = 2
	}

	best, bestDist := -1, limit+1
	for i, p := range s.posts {
		d := levenshtein.ComputeDistance(slug, strings.ToLower(p.Slug))
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return Post{}, false
	}
	return s.posts[best], true
}

// Tags returns the sorted set of tags across all posts.
func (s *Store) Tags() []string {
	seen := make(map[string]struct{})
	for _, p := range s.posts {
		for _, t := range p.Tags {
			seen[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}
