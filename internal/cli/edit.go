package cli

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"os"
	"strings"

	"github.com/draftdesk/internal/session"
	"github.com/spf13/cobra"
)

var (
	flagTitle        string
	flagAuthor       string
	flagEditCategory string
	flagSummary      string
	flagDate         string
)

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit an article through the session, with draft recovery and autosave",
	Long: `Edit runs a full editing session: a fresh unsaved draft is offered for
recovery, the periodic draft checkpoint runs while you type, and the
body is read from stdin until EOF. A failed save checkpoints the draft
so nothing is lost.

Examples:
  draftdesk edit --title "Field Notes" < body.txt
  draftdesk edit 6e8bd86c --summary "Updated route"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVar(&flagTitle, "title", "", "Article title")
	editCmd.Flags().StringVar(&flagAuthor, "author", "", "Article author")
	editCmd.Flags().StringVar(&flagEditCategory, "category", "", "Article category")
	editCmd.Flags().StringVar(&flagSummary, "summary", "", "Article summary")
	editCmd.Flags().StringVar(&flagDate, "date", "", "Publication date")

	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	surface := &bufferSurface{}
	sess := session.New(deps.Repos, surface, confirmerFunc(ConfirmPrompt), deps.Config, deps.Log)

	restored, err := sess.RecoverDraft(ctx)
	if err != nil {
		return err
	}
	if restored {
		fmt.Fprintln(os.Stderr, "Recovered unsaved draft")
	}

	if len(args) == 1 {
		if _, err := sess.Load(ctx, args[0]); err != nil {
			return err
		}
	}

	sess.StartAutosave(ctx)
	defer sess.StopAutosave()

	if meta, changed := applyMetadataFlags(sess.Metadata()); changed {
		sess.SetMetadata(meta)
	}

	fmt.Fprintln(os.Stderr, "Enter the article body, end with Ctrl-D:")
	body, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("reading body: %w", err)
	}
	if len(bytes.TrimSpace(body)) > 0 {
		surface.edit(paragraphHTML(string(body)))
	}

	article, err := sess.Save(ctx)
	if err != nil {
		if cerr := sess.Checkpoint(ctx); cerr == nil {
			fmt.Fprintln(os.Stderr, "Save failed, draft checkpointed")
		}
		return err
	}

	fmt.Printf("Saved %s (%q)\n", article.ID, article.Title)
	return nil
}

func applyMetadataFlags(meta session.Metadata) (session.Metadata, bool) {
	changed := false
	for _, f := range []struct {
		flag string
		dst  *string
	}{
		{flagTitle, &meta.Title},
		{flagAuthor, &meta.Author},
		{flagEditCategory, &meta.Category},
		{flagSummary, &meta.Summary},
		{flagDate, &meta.PublicationDate},
	} {
		if f.flag != "" {
			*f.dst = f.flag
			changed = true
		}
	}
	return meta, changed
}

// paragraphHTML turns plain stdin text into the canonical HTML body:
// blank lines separate paragraphs, everything is escaped.
func paragraphHTML(text string) string {
	var b strings.Builder
	for _, para := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		b.WriteString("<p>" + html.EscapeString(para) + "</p>\n")
	}
	return b.String()
}

// confirmerFunc adapts a prompt func to the session's Confirmer
type confirmerFunc func(prompt string) bool

func (f confirmerFunc) Confirm(prompt string) bool { return f(prompt) }
