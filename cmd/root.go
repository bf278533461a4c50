// Package cmd provides the command-line interface for the TicketIQ client.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danielolaszy/ticketiq/internal/config"
	"github.com/danielolaszy/ticketiq/internal/logging"
	"github.com/danielolaszy/ticketiq/internal/ticketstore"
	"github.com/danielolaszy/ticketiq/internal/ticketui"
)

var rootCmd = &cobra.Command{
	Use:   "ticketiq",
	Short: "TicketIQ is a client for the TicketIQ support ticket service",
	Long: `TicketIQ is a command-line and terminal client for the TicketIQ support
ticket service. It lists and filters tickets, creates new ones with
category and priority suggestions from the classifier, changes ticket
status and shows aggregate statistics.

Run "ticketiq tui" for the interactive dashboard.`,
	SilenceUsage: true,
}

// newStore builds the ticket store used by every command. Tests replace it.
var newStore = func(cfg *config.Config) ticketui.Store {
	return ticketstore.NewClient(cfg.API)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("api-url", "", "Ticket service base URL (overrides TICKETIQ_API_URL)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides LOG_LEVEL)")
}

// loadConfig loads the configuration, applies the persistent flags and
// points logging at stderr with the configured level.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	apiURL, err := cmd.Flags().GetString("api-url")
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		if err := cfg.SetAPIURL(apiURL); err != nil {
			return nil, err
		}
	}

	level, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return nil, err
	}
	if level != "" {
		cfg.Log.Level = level
	}

	logging.SetupLogger(os.Stderr, logging.LogLevel(cfg.Log.Level))
	logging.Debug("configuration loaded",
		"api_url", cfg.API.URL,
		"timeout", cfg.API.Timeout,
		"suggestion_policy", cfg.UI.SuggestionPolicy)

	return cfg, nil
}

// storeFor loads the configuration for cmd and returns the matching store.
func storeFor(cmd *cobra.Command) (ticketui.Store, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	return newStore(cfg), cfg, nil
}
