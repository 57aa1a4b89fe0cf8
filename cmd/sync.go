package cmd

import (
	"fmt"

	"github.com/daylog/daylog/internal/logger"
	"github.com/daylog/daylog/internal/syncer"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push all journals to the configured git remote",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer logger.Sync()

		result, err := syncer.NewOrchestrator(cfg).Sync()
		if err != nil {
			return err
		}

		if result.Pushed {
			fmt.Printf("pushed commit %s (%s)\n", result.CommitID, result.FilePath)
		} else {
			fmt.Println(result.Message)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
