package cmd

import (
	"fmt"
	"os"

	"github.com/daylog/daylog/internal/logger"
	"github.com/daylog/daylog/internal/syncer"
	"github.com/spf13/cobra"
)

var importPatterns string

var importCmd = &cobra.Command{
	Use:   "import <archive.zip>",
	Short: "Import markdown journals from a zip archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer logger.Sync()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read archive: %w", err)
		}

		result, err := syncer.NewOrchestrator(cfg).ImportZip(data, importPatterns)
		if err != nil {
			return err
		}

		fmt.Printf("imported %d of %d matched files (%d markdown files seen, %d skipped)\n",
			result.ImportedCount, result.MatchedFiles,
			result.TotalMarkdownFiles, result.SkippedCount)
		for _, skip := range result.SkippedPaths {
			fmt.Printf("  skipped: %s\n", skip)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importPatterns, "patterns", "", "path patterns, comma or newline separated")
	rootCmd.AddCommand(importCmd)
}
