package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/danielolaszy/ticketiq/pkg/models"
)

const (
	noTicketsMessage = "No tickets found matching your filters."
	dateLayout       = "2006-01-02"
)

func writeJSON(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

func writeTickets(out io.Writer, tickets []models.Ticket) error {
	if len(tickets) == 0 {
		_, err := fmt.Fprintln(out, noTicketsMessage)
		return err
	}

	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tSTATUS\tPRIORITY\tCATEGORY\tCREATED\tTITLE")
	for _, ticket := range tickets {
		created := "-"
		if !ticket.CreatedAt.IsZero() {
			created = ticket.CreatedAt.Format(dateLayout)
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%s\n",
			ticket.ID,
			ticket.Status.Label(),
			ticket.Priority.Label(),
			ticket.Category.Label(),
			created,
			ticket.Title)
	}
	return writer.Flush()
}

func writeTicket(out io.Writer, ticket models.Ticket) error {
	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(writer, "ID:\t%s\n", ticket.ID)
	fmt.Fprintf(writer, "Title:\t%s\n", ticket.Title)
	fmt.Fprintf(writer, "Category:\t%s\n", ticket.Category.Label())
	fmt.Fprintf(writer, "Priority:\t%s\n", ticket.Priority.Label())
	fmt.Fprintf(writer, "Status:\t%s\n", ticket.Status.Label())
	if !ticket.CreatedAt.IsZero() {
		fmt.Fprintf(writer, "Created:\t%s\n", ticket.CreatedAt.Format(dateLayout))
	}
	return writer.Flush()
}

// writeStats prints the snapshot exactly as received. Breakdowns list the
// known keys in enum order followed by any others the server returned.
func writeStats(out io.Writer, stats models.StatsSnapshot) error {
	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(writer, "Total Tickets:\t%d\n", stats.TotalTickets)
	fmt.Fprintf(writer, "Open Tickets:\t%d\n", stats.OpenTickets)
	fmt.Fprintf(writer, "Avg Tickets / Day:\t%s\n", strconv.FormatFloat(stats.AvgTicketsPerDay, 'f', -1, 64))

	fmt.Fprintln(writer, "\nPriority Breakdown")
	for _, priority := range models.OrderedKeys(models.AllPriorities, stats.PriorityBreakdown) {
		fmt.Fprintf(writer, "  %s:\t%d\n", priority.Label(), stats.PriorityBreakdown[priority])
	}

	fmt.Fprintln(writer, "\nCategory Breakdown")
	for _, category := range models.OrderedKeys(models.AllCategories, stats.CategoryBreakdown) {
		fmt.Fprintf(writer, "  %s:\t%d\n", category.Label(), stats.CategoryBreakdown[category])
	}
	return writer.Flush()
}
