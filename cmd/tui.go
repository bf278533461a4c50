package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/danielolaszy/ticketiq/internal/config"
	"github.com/danielolaszy/ticketiq/internal/logging"
	"github.com/danielolaszy/ticketiq/internal/ticketui"
)

const appName = "ticketiq"

// tuiCmd runs the interactive dashboard.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the interactive dashboard",
	Long: `Run the interactive ticket dashboard: statistics, the filterable ticket
list and the ticket creation form on one screen.

Logs are written to ~/.ticketiq/logs while the dashboard owns the terminal.

Keys:
  Tab / Shift+Tab  move between search, list and form fields
  j / k            move through the list
  s                advance the selected ticket's status
  c / p / f        cycle the category, priority and status filters
  /                search
  Esc              clear filters
  Space            change category or priority in the form
  Ctrl+S           submit the ticket
  q                quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cfg, err := storeFor(cmd)
		if err != nil {
			return err
		}

		logFile, err := logging.OpenLogFile(appName)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer logFile.Close()
		logging.SetupLogger(logFile, logging.LogLevel(cfg.Log.Level))

		app := ticketui.NewApp(store, formOptions(cfg.UI))
		defer app.Close()

		logging.Info("starting dashboard", "api_url", cfg.API.URL)
		if _, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run(); err != nil {
			return fmt.Errorf("failed to run dashboard: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// formOptions translates the UI configuration into form settings.
func formOptions(cfg config.UIConfig) ticketui.FormOptions {
	options := ticketui.FormOptions{NoticeDuration: cfg.NoticeDuration}
	if cfg.SuggestionPolicy == config.PolicyAlways {
		options.Policy = ticketui.SuggestAlways
	}
	return options
}
