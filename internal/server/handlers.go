package server

import (
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/decor"
	"github.com/Zachkp/folio/internal/views"
)

// teaserPosts is how many posts the landing page's blog section shows.
const teaserPosts = 3

func (s *Server) setupRoutes() {
	r := s.engine

	r.GET("/", s.handleHome)
	r.GET("/blog", s.handleBlog)
	r.GET("/blog/:slug", s.handlePost)
	r.GET("/blog/:slug/views", s.handlePostViews)

	api := r.Group("/api")
	api.GET("/sections", s.handleSections)
	api.GET("/posts", s.handlePostsJSON)
	api.GET("/views/:slug", s.handleViewsJSON)

	r.GET("/resume", s.handleResume)

	// HTMX contact form endpoint - returns just the form HTML
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"title": "Contact Me",
		})
	})
	r.POST("/contact", s.handleContact)

	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title": "Privacy Policy",
		})
	})
}

func (s *Server) handleHome(c *gin.Context) {
	start, _ := s.registry.Presets().Lookup(0)
	c.HTML(http.StatusOK, "index.html", gin.H{
		"title":    s.profile.Name,
		"profile":  s.profile,
		"sections": s.registry.All(),
		"posts":    s.library.Store().Latest(teaserPosts),
		"blob":     start,
		"nav":      s.navSettings(),
	})
}

func (s *Server) handleBlog(c *gin.Context) {
	posts := s.library.Store().All()
	tag := c.Query("tag")
	if tag != "" {
		filtered := posts[:0]
		for _, p := range posts {
			if p.HasTag(tag) {
				filtered = append(filtered, p)
			}
		}
		posts = filtered
	}

	c.HTML(http.StatusOK, "blog.html", gin.H{
		"title": "blog",
		"posts": posts,
		"tag":   tag,
		"blob":  decor.BlogIndexStart,
	})
}

func (s *Server) handlePost(c *gin.Context) {
	store := s.library.Store()
	slug := c.Param("slug")

	post, ok := store.Lookup(slug)
	if !ok {
		s.renderNotFound(c, store, slug)
		return
	}

	c.HTML(http.StatusOK, "post.html", gin.H{
		"title": post.Title,
		"post":  post,
		"views": views.Placeholder,
		"blob":  decor.PostStart,
	})
}

func (s *Server) renderNotFound(c *gin.Context, store *content.Store, slug string) {
	data := gin.H{"title": "Post not found"}
	if suggestion, ok := store.Suggest(slug); ok {
		data["suggestion"] = suggestion
	}
	c.HTML(http.StatusNotFound, "notfound.html", data)
}

// countView applies the once-per-session rule for slug and returns the count.
func (s *Server) countView(c *gin.Context, slug string) views.Count {
	marker := views.MarkerName(slug)
	_, err := c.Cookie(marker)
	seen := err == nil
	if !seen {
		// Session cookie: no max-age, gone when the browser session ends.
		c.SetCookie(marker, "true", 0, "/", "", false, true)
	}
	return s.views.Count(c.Request.Context(), slug, seen)
}

func (s *Server) handlePostViews(c *gin.Context) {
	slug := c.Param("slug")
	if _, ok := s.library.Store().Lookup(slug); !ok {
		c.HTML(http.StatusNotFound, "views.html", gin.H{"views": views.Placeholder})
		return
	}
	c.HTML(http.StatusOK, "views.html", gin.H{"views": s.countView(c, slug).String()})
}

func (s *Server) handleViewsJSON(c *gin.Context) {
	slug := c.Param("slug")
	if _, ok := s.library.Store().Lookup(slug); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"value": s.countView(c, slug).JSON()})
}

func (s *Server) handleSections(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"sections":  s.registry.All(),
		"navigator": s.navSettings(),
	})
}

// navSettings are the timing and threshold values the landing page script
// runs with.
func (s *Server) navSettings() gin.H {
	return gin.H{
		"settle_delay_ms":    s.cfg.Navigator.SettleDelay.Milliseconds(),
		"debounce_window_ms": s.cfg.Navigator.DebounceWindow.Milliseconds(),
		"threshold":          s.cfg.Navigator.Threshold,
		"guard_epsilon":      s.cfg.Navigator.GuardEpsilon,
	}
}

func (s *Server) handlePostsJSON(c *gin.Context) {
	store := s.library.Store()
	c.JSON(http.StatusOK, gin.H{
		"posts": store.All(),
		"tags":  store.Tags(),
	})
}

// handleResume serves server.resume_path from disk, falling back to the file
// of the same name among the embedded static files.
func (s *Server) handleResume(c *gin.Context) {
	file := s.cfg.Server.ResumePath
	if _, err := os.Stat(file); err == nil {
		c.FileAttachment(file, s.cfg.Server.ResumeName)
		return
	}

	name := path.Base(file)
	if s.static != nil {
		if _, err := fs.Stat(s.static, name); err == nil {
			c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
				"filename": s.cfg.Server.ResumeName,
			}))
			c.FileFromFS(name, http.FS(s.static))
			return
		}
	}

	s.log.Warn("resume not available at %s or in static files", file)
	c.String(http.StatusNotFound, "resume not available")
}
