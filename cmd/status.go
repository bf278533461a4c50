package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/danielolaszy/ticketiq/internal/logging"
	"github.com/danielolaszy/ticketiq/pkg/models"
)

// statusUpdater is the part of the ticket store the status command needs.
type statusUpdater interface {
	UpdateStatus(ctx context.Context, id models.TicketID, status models.Status) (*models.Ticket, error)
}

// statusCmd changes the status of one ticket.
var statusCmd = &cobra.Command{
	Use:   "status <ticket-id> <status>",
	Short: "Change a ticket's status",
	Long: `Change a ticket's status. Any status may follow any other; the ticket
service decides whether the transition is allowed.

Statuses: open, in_progress, resolved, closed

Example:
  ticketiq status 42 resolved`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := storeFor(cmd)
		if err != nil {
			return err
		}
		return runStatus(cmd.Context(), store, models.TicketID(args[0]), models.Status(args[1]), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(ctx context.Context, store statusUpdater, id models.TicketID, status models.Status, out io.Writer) error {
	ticket, err := store.UpdateStatus(ctx, id, status)
	if err != nil {
		return fmt.Errorf("failed to update status of ticket %s: %w", id, err)
	}

	logging.Info("ticket status updated",
		"ticket_id", id,
		"status", status)

	if ticket == nil {
		_, err := fmt.Fprintf(out, "Ticket %s is now %s.\n", id, status.Label())
		return err
	}
	return writeTicket(out, *ticket)
}
