package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/sections"
	"github.com/Zachkp/folio/internal/server"
	"github.com/Zachkp/folio/internal/storage"
	"github.com/Zachkp/folio/internal/views"
)

func newServeCommand(assets Assets) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio and blog over HTTP",
		Long: `Start the web server. Press Ctrl+C to stop.

Examples:
  folio serve
  folio serve --port 3000
  FOLIO_CONTENT_POSTS_DIR=./posts FOLIO_CONTENT_WATCH=true folio serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), port, assets)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "port to listen on (overrides config)")
	return cmd
}

func runServe(ctx context.Context, port string, assets Assets) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port != "" {
		cfg.Server.Port = port
	}
	gin.SetMode(cfg.Server.Mode)
	log := newLogger(cfg, "serve")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	lib, err := loadLibrary(cfg, assets, log.WithComponent("content"))
	if err != nil {
		return err
	}
	if cfg.Content.Watch {
		watchPosts(ctx, cfg, lib)
	}

	var db *storage.DB
	if cfg.Database.Path != "" {
		db, err = storage.Open(cfg.Database.Path, log.WithComponent("storage"))
		if err != nil {
			return err
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Warn("closing database: %v", err)
			}
		}()
	}

	counter, err := newCounter(cfg, db)
	if err != nil {
		return err
	}

	var static fs.FS
	if assets.Static != nil {
		static, err = fs.Sub(assets.Static, "static")
		if err != nil {
			return fmt.Errorf("static assets: %w", err)
		}
	}

	srv, err := server.New(server.Deps{
		Config:   cfg,
		Library:  lib,
		Registry: sections.Default(),
		Profile:  content.DefaultProfile(),
		Views:    views.NewService(counter, cfg.Views.Timeout, log.WithComponent("views")),
		DB:       db,
		Mailer:   server.NewSMTPMailer(cfg.SMTP),
		Static:   static,
		Logger:   log.WithComponent("server"),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Server starting on http://localhost:%s\n", cfg.Server.Port)
	return srv.Run(ctx)
}

// watchPosts reloads posts from disk as they change. Embedded posts never
// change, so there is nothing to watch without content.posts_dir.
func watchPosts(ctx context.Context, cfg config.Config, lib *content.Library) {
	log := newLogger(cfg, "content")
	if cfg.Content.PostsDir == "" {
		log.Warn("content.watch needs content.posts_dir; not watching")
		return
	}
	go func() {
		if err := lib.Watch(ctx, cfg.Content.PostsDir); err != nil {
			log.Error("watching posts: %v", err)
		}
	}()
}

// newCounter builds the view counter backend named by views.backend.
func newCounter(cfg config.Config, db *storage.DB) (views.Counter, error) {
	switch cfg.Views.Backend {
	case config.BackendSQLite:
		if db == nil {
			return nil, fmt.Errorf("%w: sqlite view backend needs database.path", config.ErrInvalid)
		}
		return views.Local{Store: db}, nil
	case config.BackendCountAPI:
		return views.NewCountAPI(cfg.Views.URL, cfg.Views.Namespace, cfg.Views.Timeout), nil
	case config.BackendNone:
		return views.Disabled{}, nil
	default:
		return nil, fmt.Errorf("%w: views.backend %q", config.ErrInvalid, cfg.Views.Backend)
	}
}
