package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/danielolaszy/ticketiq/internal/logging"
	"github.com/danielolaszy/ticketiq/pkg/models"
)

// ticketLister is the part of the ticket store the list command needs.
type ticketLister interface {
	ListTickets(ctx context.Context, filter models.Filter) ([]models.Ticket, error)
}

// listCmd prints the tickets matching the given filters.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tickets",
	Long: `List tickets, optionally filtered by category, priority, status and a
free-text search. Filters combine: a ticket must match all of them.

Example:
  ticketiq list --category billing --status open
  ticketiq list --search "invoice" --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := storeFor(cmd)
		if err != nil {
			return err
		}

		filter := models.Filter{}
		for flag, target := range map[string]*string{
			"category": (*string)(&filter.Category),
			"priority": (*string)(&filter.Priority),
			"status":   (*string)(&filter.Status),
			"search":   &filter.Search,
		} {
			if *target, err = cmd.Flags().GetString(flag); err != nil {
				return err
			}
		}

		asJSON, err := cmd.Flags().GetBool("json")
		if err != nil {
			return err
		}

		return runList(cmd.Context(), store, filter, asJSON, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().String("category", "", "Only tickets in this category (billing, technical, account, general)")
	listCmd.Flags().String("priority", "", "Only tickets with this priority (low, medium, high, critical)")
	listCmd.Flags().String("status", "", "Only tickets with this status (open, in_progress, resolved, closed)")
	listCmd.Flags().String("search", "", "Only tickets whose title or description contains this text")
	listCmd.Flags().Bool("json", false, "Print the tickets as JSON")
}

func runList(ctx context.Context, store ticketLister, filter models.Filter, asJSON bool, out io.Writer) error {
	logging.Debug("listing tickets", "filter", filter)

	tickets, err := store.ListTickets(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to list tickets: %w", err)
	}

	logging.Info("fetched tickets", "count", len(tickets))

	if asJSON {
		return writeJSON(out, tickets)
	}
	return writeTickets(out, tickets)
}
