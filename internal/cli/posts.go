package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/logger"
)

func newPostsCommand(assets Assets) *cobra.Command {
	postsCmd := &cobra.Command{
		Use:   "posts",
		Short: "Inspect blog posts",
	}
	postsCmd.AddCommand(newPostsListCommand(assets))
	postsCmd.AddCommand(newPostsValidateCommand(assets))
	return postsCmd
}

func newPostsListCommand(assets Assets) *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			lib, err := loadLibrary(cfg, assets, logger.Discard())
			if err != nil {
				return err
			}
			return printPosts(cmd.OutOrStdout(), lib.Store(), tag)
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "only posts with this tag")
	return cmd
}

func printPosts(w io.Writer, store *content.Store, tag string) error {
	var rows [][]string
	for _, p := range store.All() {
		if tag != "" && !p.HasTag(tag) {
			continue
		}
		rows = append(rows, []string{p.DisplayDate(), p.Slug, p.Title, p.ReadTime, strings.Join(p.Tags, ", ")})
	}
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "no posts")
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("DATE", "SLUG", "TITLE", "READ", "TAGS").
		Rows(rows...)
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func newPostsValidateCommand(assets Assets) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [dir]",
		Short: "Check that every post parses and slugs are unique",
		Long: `Parse every post the way the server does and report the first problem.

Without a directory, validates content.posts_dir or the embedded posts.

Examples:
  folio posts validate
  folio posts validate ./drafts`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				store *content.Store
				err   error
				from  string
			)
			if len(args) == 1 {
				from = args[0]
				store, err = content.Load(os.DirFS(from), ".")
			} else {
				cfg, cfgErr := loadConfig()
				if cfgErr != nil {
					return cfgErr
				}
				var lib *content.Library
				lib, err = loadLibrary(cfg, assets, logger.Discard())
				if err == nil {
					store = lib.Store()
				}
				from = cfg.Content.PostsDir
				if from == "" {
					from = "embedded posts"
				}
			}
			if err != nil {
				return fmt.Errorf("invalid posts in %s: %w", from, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d posts OK in %s (%d tags)\n", store.Len(), from, len(store.Tags()))
			return nil
		},
	}
}
