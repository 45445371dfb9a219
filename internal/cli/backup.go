package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagRestoreYes bool

var backupCmd = &cobra.Command{
	Use:   "backup <file>",
	Short: "Write the full article collection to a backup file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("creating backup file: %w", err)
		}
		defer f.Close()

		if err := deps.Services.Backup.Export(cmd.Context(), f); err != nil {
			return err
		}
		fmt.Printf("Written: %s\n", args[0])
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Replace the article collection from a backup file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !flagRestoreYes && !ConfirmPrompt("Replace the entire article collection?") {
			return nil
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening backup file: %w", err)
		}
		defer f.Close()

		count, err := deps.Services.Backup.Restore(cmd.Context(), f)
		if err != nil {
			return err
		}
		fmt.Printf("Restored %d articles\n", count)
		return nil
	},
}

func init() {
	restoreCmd.Flags().BoolVar(&flagRestoreYes, "yes", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(backupCmd, restoreCmd)
}
