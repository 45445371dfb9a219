// Package cli is the local binding layer over the editor core: thin
// cobra commands that call into the repositories, services and session.
package cli

import (
	"github.com/draftdesk/internal/config"
	"github.com/draftdesk/internal/repository"
	"github.com/draftdesk/internal/service"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Deps carries the wired application components into the commands
type Deps struct {
	Repos    *repository.Repositories
	Services *service.Services
	Config   *config.Config
	Log      zerolog.Logger
}

var deps *Deps

var rootCmd = &cobra.Command{
	Use:   "draftdesk",
	Short: "Local article store with Markdown, HTML, publish and PDF export",
	Long: `DraftDesk keeps a local collection of articles and turns them into
Markdown, standalone HTML, publish-ready HTML fragments or PDF.

Examples:
  draftdesk list
  draftdesk export 6e8bd86c --markdown
  draftdesk import notes.md
  draftdesk backup articles.json`,
	SilenceUsage: true,
}

// Execute runs the CLI with the given dependencies
func Execute(d *Deps) error {
	deps = d
	return rootCmd.Execute()
}
