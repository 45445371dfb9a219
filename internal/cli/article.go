package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/draftdesk/internal/models"
	"github.com/draftdesk/internal/normalizer"
	"github.com/draftdesk/internal/session"
	"github.com/spf13/cobra"
)

var (
	flagCategory string
	flagYes      bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored articles, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printArticles(deps.Repos.Article.List(cmd.Context()))
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a stored article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		article, err := deps.Repos.Article.GetByID(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if article == nil {
			return models.ErrNotFound
		}

		fmt.Printf("ID:        %s\n", article.ID)
		fmt.Printf("Title:     %s\n", article.Title)
		if article.Author != "" {
			fmt.Printf("Author:    %s\n", article.Author)
		}
		if article.Category != "" {
			fmt.Printf("Category:  %s\n", article.Category)
		}
		if article.Summary != "" {
			fmt.Printf("Summary:   %s\n", article.Summary)
		}
		fmt.Printf("Words:     %d (%d min read)\n", article.WordCount, normalizer.ReadingTime(article.WordCount))
		fmt.Printf("Created:   %s\n", article.CreatedAt.Local().Format("2006-01-02 15:04"))
		fmt.Printf("Updated:   %s\n", article.UpdatedAt.Local().Format("2006-01-02 15:04"))
		fmt.Printf("\n%s\n", article.Content)
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search articles by title, content or author",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		term := ""
		if len(args) > 0 {
			term = args[0]
		}
		printArticles(deps.Repos.Article.Search(cmd.Context(), term, flagCategory))
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !flagYes && !ConfirmPrompt(fmt.Sprintf("Delete article %s?", args[0])) {
			return nil
		}
		if err := deps.Repos.Article.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

var duplicateCmd = &cobra.Command{
	Use:   "duplicate <id>",
	Short: "Duplicate a stored article under a new id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := session.New(deps.Repos, &bufferSurface{}, nil, deps.Config, deps.Log)
		if _, err := sess.Load(cmd.Context(), args[0]); err != nil {
			return err
		}
		dup, err := sess.Duplicate(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Created %s (%q)\n", dup.ID, dup.Title)
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&flagCategory, "category", "", "Exact category to filter by")
	deleteCmd.Flags().BoolVar(&flagYes, "yes", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(listCmd, showCmd, searchCmd, deleteCmd, duplicateCmd)
}

func printArticles(articles []*models.Article) {
	if len(articles) == 0 {
		fmt.Println("No articles.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tWORDS\tUPDATED")
	for _, a := range articles {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			a.ID, a.Title, a.WordCount, a.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	w.Flush()
}

// bufferSurface is a minimal in-process Surface for CLI-driven session
// operations; plain text is derived from the HTML body.
type bufferSurface struct {
	html     string
	changeFn func()
}

func (b *bufferSurface) GetHTML() string      { return b.html }
func (b *bufferSurface) SetHTML(html string)  { b.html = html }
func (b *bufferSurface) GetPlainText() string { return normalizer.PlainText(b.html) }
func (b *bufferSurface) OnChange(fn func())   { b.changeFn = fn }

// edit replaces the body as a user edit, firing the change callback
func (b *bufferSurface) edit(html string) {
	b.html = html
	if b.changeFn != nil {
		b.changeFn()
	}
}
