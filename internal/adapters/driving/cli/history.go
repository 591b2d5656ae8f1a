package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent conversions",
	Long:  `Lists recent conversions recorded in the sync journal, newest first.`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0,
		"maximum entries to show (defaults to the configured history limit)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if syncJournal == nil {
		return errors.New("sync journal not configured")
	}

	limit := historyLimit
	if limit <= 0 {
		limit = appSettings.HistoryLimit
	}

	entries, err := syncJournal.List(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("listing history: %w", err)
	}

	if len(entries) == 0 {
		cmd.Println("No conversions recorded yet.")
		return nil
	}

	for _, entry := range entries {
		cmd.Printf("%s  %s -> %s  %d nodes  %s\n",
			entry.SyncedAt.Local().Format(time.DateTime),
			entry.From, entry.To, entry.Nodes,
			entry.Duration.Round(time.Millisecond))
		cmd.Printf("    %s -> %s\n", entry.Input, entry.Output)
	}

	return nil
}
