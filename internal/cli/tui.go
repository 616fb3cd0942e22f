package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/logger"
	"github.com/Zachkp/folio/internal/sections"
	"github.com/Zachkp/folio/internal/tui"
)

// teaserPosts matches the landing page's blog section.
const teaserPosts = 3

func newTUICommand(assets Assets) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse the landing page in the terminal",
		Long: `Show the landing page one section per screen.

Scroll with the mouse wheel or j/k, jump with the arrow keys or 1-6, and drag
with h/l. On narrow terminals the projects list scrolls before the page does.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			// The screen belongs to the program; keep the logs off it.
			lib, err := loadLibrary(cfg, assets, logger.Discard())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			m := tui.New(tui.Options{
				Registry:  sections.Default(),
				Profile:   content.DefaultProfile(),
				Posts:     lib.Store().Latest(teaserPosts),
				Navigator: cfg.Navigator,
				Logger:    logger.Discard(),
			})
			return tui.Run(ctx, m)
		},
	}
}
