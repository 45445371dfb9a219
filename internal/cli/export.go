package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/draftdesk/internal/models"
	"github.com/draftdesk/internal/service"
	"github.com/spf13/cobra"
)

// Output format flags (mutually exclusive).
var (
	flagMarkdown  bool
	flagHTML      bool
	flagPublish   bool
	flagPDF       bool
	flagOutputDir string
)

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a stored article to the selected format",
	Long: `Export renders a stored article into exactly one output format and
writes it next to the current directory (or --output_dir).

Examples:
  draftdesk export 6e8bd86c --markdown
  draftdesk export 6e8bd86c --publish --output_dir ./out
  draftdesk export 6e8bd86c --pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	exportCmd.Flags().BoolVar(&flagHTML, "html", false, "Output a standalone HTML document")
	exportCmd.Flags().BoolVar(&flagPublish, "publish", false, "Output a publish-ready HTML fragment")
	exportCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")
	exportCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := selectFormat()
	if err != nil {
		return err
	}

	article, err := deps.Repos.Article.GetByID(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if article == nil {
		return models.ErrNotFound
	}

	ext, err := deps.Services.Export.Extension(format)
	if err != nil {
		return err
	}

	dir := flagOutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, exportFileName(article, format)+ext)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	if err := deps.Services.Export.Export(cmd.Context(), article, format, f); err != nil {
		return err
	}

	fmt.Printf("Written: %s\n", path)
	return nil
}

// selectFormat checks that exactly one output format was chosen
func selectFormat() (string, error) {
	var formats []string
	if flagMarkdown {
		formats = append(formats, service.FormatMarkdown)
	}
	if flagHTML {
		formats = append(formats, service.FormatHTML)
	}
	if flagPublish {
		formats = append(formats, service.FormatPublish)
	}
	if flagPDF {
		formats = append(formats, service.FormatPDF)
	}

	if len(formats) == 0 {
		return "", fmt.Errorf("exactly one output format is required: --markdown, --html, --publish or --pdf")
	}
	if len(formats) > 1 {
		return "", fmt.Errorf("only one output format allowed per run (got %d)", len(formats))
	}
	return formats[0], nil
}

var nonSlugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// exportFileName derives a file name from the title, falling back to
// the record id for untitled exports. Publish fragments get a suffix so
// they do not collide with the standalone document.
func exportFileName(a *models.Article, format string) string {
	name := strings.Trim(nonSlugPattern.ReplaceAllString(strings.ToLower(a.Title), "-"), "-")
	if name == "" {
		name = a.ID
	}
	if format == service.FormatPublish {
		name += ".publish"
	}
	return name
}
