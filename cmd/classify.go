package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/danielolaszy/ticketiq/internal/ticketui"
	"github.com/danielolaszy/ticketiq/pkg/models"
)

// classifier is the part of the ticket store the classify command needs.
type classifier interface {
	Classify(ctx context.Context, description string) (models.Suggestion, error)
}

// classifyCmd asks the classifier for a category and priority.
var classifyCmd = &cobra.Command{
	Use:   "classify <description...>",
	Short: "Suggest a category and priority for a description",
	Long: `Send a ticket description to the classifier and print the suggested
category and priority. The classifier may suggest either, both or neither.
Descriptions shorter than 10 characters are rejected without a request.

Example:
  ticketiq classify My invoice is wrong and I was double charged`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := storeFor(cmd)
		if err != nil {
			return err
		}
		return runClassify(cmd.Context(), store, strings.Join(args, " "), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(ctx context.Context, store classifier, description string, out io.Writer) error {
	if utf8.RuneCountInString(description) < ticketui.MinClassifyLength {
		return fmt.Errorf("description must be at least %d characters", ticketui.MinClassifyLength)
	}

	suggestion, err := store.Classify(ctx, description)
	if err != nil {
		return fmt.Errorf("failed to classify description: %w", err)
	}

	category, priority := "-", "-"
	if suggestion.Category != "" {
		category = string(suggestion.Category)
	}
	if suggestion.Priority != "" {
		priority = string(suggestion.Priority)
	}
	fmt.Fprintf(out, "Suggested category: %s\n", category)
	_, err = fmt.Fprintf(out, "Suggested priority: %s\n", priority)
	return err
}
