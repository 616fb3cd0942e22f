// Package cli wires configuration, content and storage into the folio commands.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/logger"
)

var (
	cfgFile string
	verbose bool
)

// Assets are the files compiled into the binary.
type Assets struct {
	// Posts holds the posts under EmbeddedPostsDir.
	Posts fs.FS
	// Static holds the stylesheet and other public files under "static".
	Static fs.FS
}

// EmbeddedPostsDir is the directory inside Assets.Posts holding the posts.
const EmbeddedPostsDir = "posts"

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string, assets Assets) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "folio",
		Short: "Portfolio and blog server",
		Long: `folio serves a paginated portfolio landing page and a markdown blog.

Posts are markdown files with YAML frontmatter. They are compiled into the
binary unless content.posts_dir points at a directory on disk.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default ./folio.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(newServeCommand(assets))
	rootCmd.AddCommand(newTUICommand(assets))
	rootCmd.AddCommand(newPostsCommand(assets))
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			if version == "dev" || version == "" {
				version = "development"
			}
			if commit == "none" || commit == "" {
				commit = "local-build"
			}
			if date == "unknown" || date == "" {
				date = "local-build"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "folio %s (%s) built on %s\n", version, commit, date)
			fmt.Fprintf(cmd.OutOrStdout(), "Go version: %s\n", runtime.Version())
		},
	}
}

// loadConfig reads the config and applies the global flags on top.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, err
	}
	if verbose {
		cfg.Log.Verbose = true
	}
	return cfg, nil
}

func newLogger(cfg config.Config, component string) *logger.Logger {
	return logger.New(component, func() bool { return cfg.Log.Verbose })
}

// loadLibrary loads posts from content.posts_dir, or the embedded posts when
// it is unset.
func loadLibrary(cfg config.Config, assets Assets, log *logger.Logger) (*content.Library, error) {
	if dir := cfg.Content.PostsDir; dir != "" {
		lib, err := content.NewLibrary(os.DirFS(dir), ".", log)
		if err != nil {
			return nil, fmt.Errorf("load posts from %s: %w", dir, err)
		}
		return lib, nil
	}
	if assets.Posts == nil {
		return nil, errors.New("no embedded posts: set content.posts_dir")
	}
	lib, err := content.NewLibrary(assets.Posts, EmbeddedPostsDir, log)
	if err != nil {
		return nil, fmt.Errorf("load embedded posts: %w", err)
	}
	return lib, nil
}
