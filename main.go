package main

import (
	"embed"
	"os"

	"github.com/Zachkp/folio/internal/cli"
)

// Build variables set by ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

//go:embed posts
var posts embed.FS

//go:embed static
var static embed.FS

func main() {
	cmd := cli.NewRootCommand(version, commit, date, cli.Assets{Posts: posts, Static: static})
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
