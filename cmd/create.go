package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/danielolaszy/ticketiq/internal/logging"
	"github.com/danielolaszy/ticketiq/internal/ticketui"
	"github.com/danielolaszy/ticketiq/pkg/models"
)

// createOptions holds the create command's flag values.
type createOptions struct {
	title       string
	description string
	category    string
	priority    string
	suggest     bool
}

// createCmd submits a new ticket.
var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a ticket",
	Long: `Create a support ticket.

Category defaults to "general" and priority to "medium". With --suggest the
description is sent to the classifier first, and its suggestions fill in
whichever of category and priority were not given on the command line.
Descriptions shorter than 10 characters are never classified.

Example:
  ticketiq create --title "Wrong invoice" --description "I was charged twice this month" --suggest`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts createOptions
		var err error
		for flag, target := range map[string]*string{
			"title":       &opts.title,
			"description": &opts.description,
			"category":    &opts.category,
			"priority":    &opts.priority,
		} {
			if *target, err = cmd.Flags().GetString(flag); err != nil {
				return err
			}
		}
		if opts.suggest, err = cmd.Flags().GetBool("suggest"); err != nil {
			return err
		}

		store, _, err := storeFor(cmd)
		if err != nil {
			return err
		}

		return runCreate(cmd.Context(), store, opts, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().StringP("title", "t", "", "Brief summary of the issue (required, at most 200 characters)")
	createCmd.Flags().StringP("description", "d", "", "Detailed explanation (required)")
	createCmd.Flags().String("category", "", "Ticket category (billing, technical, account, general)")
	createCmd.Flags().String("priority", "", "Ticket priority (low, medium, high, critical)")
	createCmd.Flags().Bool("suggest", false, "Ask the classifier for category and priority")
}

func runCreate(ctx context.Context, store ticketui.TicketCreator, opts createOptions, out io.Writer) error {
	if strings.TrimSpace(opts.title) == "" || strings.TrimSpace(opts.description) == "" {
		return ticketui.ErrIncompleteDraft
	}

	draft := models.NewDraft()
	draft.Title = models.TruncateTitle(opts.title)
	draft.Description = opts.description

	if opts.suggest {
		applySuggestion(ctx, store, &draft)
	}
	if opts.category != "" {
		draft.Category = models.Category(opts.category)
	}
	if opts.priority != "" {
		draft.Priority = models.Priority(opts.priority)
	}

	ticket, err := store.CreateTicket(ctx, draft)
	if err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	logging.Info("ticket created",
		"ticket_id", ticket.ID,
		"category", draft.Category,
		"priority", draft.Priority)

	fmt.Fprintln(out, "Ticket created.")
	return writeTicket(out, ticket)
}

// applySuggestion fills the draft from the classifier; explicit flags are
// applied afterwards and win. Classifier failures only cost the suggestion.
func applySuggestion(ctx context.Context, store ticketui.TicketCreator, draft *models.Draft) {
	if utf8.RuneCountInString(draft.Description) < ticketui.MinClassifyLength {
		logging.Debug("description too short to classify",
			"length", utf8.RuneCountInString(draft.Description))
		return
	}

	suggestion, err := store.Classify(ctx, draft.Description)
	if err != nil {
		logging.Warn("classification failed, using defaults", "error", err)
		return
	}

	draft.ApplySuggestion(suggestion)
	logging.Debug("suggestion applied",
		"category", draft.Category,
		"priority", draft.Priority)
}
