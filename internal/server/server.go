// Package server serves the portfolio, the blog and the admin dashboard.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/logger"
	"github.com/Zachkp/folio/internal/sections"
	"github.com/Zachkp/folio/internal/storage"
	"github.com/Zachkp/folio/internal/views"
)

//go:embed templates/*.html
var templateFS embed.FS

// Deps are the collaborators the server is built from.
type Deps struct {
	Config   config.Config
	Library  *content.Library
	Registry *sections.Registry
	Profile  content.Profile
	Views    *views.Service
	// DB backs visitor tracking and the admin dashboard; nil disables both.
	DB     *storage.DB
	Mailer Mailer
	Static fs.FS
	Logger *logger.Logger
}

type Server struct {
	cfg      config.Config
	library  *content.Library
	registry *sections.Registry
	profile  content.Profile
	views    *views.Service
	db       *storage.DB
	mailer   Mailer
	static   fs.FS
	log      *logger.Logger

	adminToken  string
	hashingSalt string

	engine *gin.Engine
}

// New builds the server and registers every route.
func New(d Deps) (*Server, error) {
	if d.Library == nil {
		return nil, errors.New("server: content library is required")
	}
	if d.Registry == nil {
		d.Registry = sections.Default()
	}
	if d.Views == nil {
		d.Views = views.NewService(views.Disabled{}, 0, d.Logger)
	}
	if d.Logger == nil {
		d.Logger = logger.Discard()
	}

	s := &Server{
		cfg:      d.Config,
		library:  d.Library,
		registry: d.Registry,
		profile:  d.Profile,
		views:    d.Views,
		db:       d.DB,
		mailer:   d.Mailer,
		static:   d.Static,
		log:      d.Logger,
	}
	s.initAdminToken()

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if gin.Mode() == gin.DebugMode {
		r.Use(gin.LoggerWithWriter(s.log.WithComponent("http")))
	}
	r.Use(requestIDMiddleware())
	if s.db != nil && s.cfg.Server.Tracking {
		r.Use(s.visitorTrackingMiddleware())
	}
	r.SetHTMLTemplate(tmpl)

	if d.Static != nil {
		r.StaticFS("/static", http.FS(d.Static))
	}

	s.engine = r
	s.setupRoutes()
	s.setupAdminRoutes()
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Server.Port,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.db != nil {
		go s.cleanupLoop(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// cleanupLoop deletes expired visitor records at start and then daily.
func (s *Server) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		if _, err := s.db.CleanupVisitors(ctx, storage.VisitorRetention); err != nil && ctx.Err() == nil {
			s.log.Error("cleaning up old visitor data: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
