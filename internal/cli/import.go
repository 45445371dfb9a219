package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.md>",
	Short: "Import a Markdown document as a new article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening document: %w", err)
		}
		defer f.Close()

		article, err := deps.Services.Import.ImportMarkdown(cmd.Context(), f)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %s (%q, %d words)\n", article.ID, article.Title, article.WordCount)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
