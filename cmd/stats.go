package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/danielolaszy/ticketiq/internal/ticketui"
)

// statsCmd prints the aggregate ticket statistics.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show ticket statistics",
	Long: `Show the ticket statistics computed by the ticket service: totals,
the average number of tickets per day and the priority and category
breakdowns.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, err := cmd.Flags().GetBool("json")
		if err != nil {
			return err
		}

		store, _, err := storeFor(cmd)
		if err != nil {
			return err
		}
		return runStats(cmd.Context(), store, asJSON, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().Bool("json", false, "Print the statistics as JSON")
}

func runStats(ctx context.Context, store ticketui.StatsSource, asJSON bool, out io.Writer) error {
	stats, err := store.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch stats: %w", err)
	}

	if asJSON {
		return writeJSON(out, stats)
	}
	return writeStats(out, stats)
}
