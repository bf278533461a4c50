// Package config provides centralized configuration management for the application.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultAPIURL is the local development address of the ticket store.
const DefaultAPIURL = "http://localhost:8000"

// MinNoticeDuration is the shortest accepted success notice. Durations need
// a unit suffix; a bare number is read as nanoseconds.
const MinNoticeDuration = 100 * time.Millisecond

// Suggestion policies understood by the creation form.
const (
	// PolicyUnchanged applies a classifier suggestion only when the
	// description has not been edited since the request was issued.
	PolicyUnchanged = "unchanged"
	// PolicyAlways applies every classifier suggestion on arrival.
	PolicyAlways = "always"
)

// Config holds all configuration parameters for the application.
type Config struct {
	API APIConfig
	UI  UIConfig
	Log LogConfig
}

// APIConfig holds ticket store connection settings.
type APIConfig struct {
	URL string
	// Timeout of zero leaves the transport default in place.
	Timeout time.Duration
}

// UIConfig holds interactive behavior settings.
type UIConfig struct {
	NoticeDuration   time.Duration
	SuggestionPolicy string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
}

// LoadConfig initializes and loads configuration from a .env file (when
// present) and environment variables.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("api.url", DefaultAPIURL)
	v.SetDefault("api.timeout", time.Duration(0))
	v.SetDefault("ui.notice_duration", 3*time.Second)
	v.SetDefault("ui.suggestion_policy", PolicyUnchanged)
	v.SetDefault("log.level", "info")

	// Map specific environment variables
	v.BindEnv("api.url", "TICKETIQ_API_URL", "API_URL")
	v.BindEnv("api.timeout", "TICKETIQ_HTTP_TIMEOUT")
	v.BindEnv("ui.notice_duration", "TICKETIQ_NOTICE_DURATION")
	v.BindEnv("ui.suggestion_policy", "TICKETIQ_SUGGESTION_POLICY")
	v.BindEnv("log.level", "LOG_LEVEL")

	config := &Config{
		API: APIConfig{
			URL:     strings.TrimRight(v.GetString("api.url"), "/"),
			Timeout: v.GetDuration("api.timeout"),
		},
		UI: UIConfig{
			NoticeDuration:   v.GetDuration("ui.notice_duration"),
			SuggestionPolicy: strings.ToLower(v.GetString("ui.suggestion_policy")),
		},
		Log: LogConfig{
			Level: strings.ToLower(v.GetString("log.level")),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// SetAPIURL replaces the ticket store address, typically from a command
// line flag, and validates it.
func (c *Config) SetAPIURL(raw string) error {
	if err := validateAPIURL(raw); err != nil {
		return err
	}
	c.API.URL = strings.TrimRight(raw, "/")
	return nil
}

// validateConfig ensures that all configuration values are usable.
func validateConfig(config *Config) error {
	var problems []string

	if err := validateAPIURL(config.API.URL); err != nil {
		problems = append(problems, err.Error())
	}
	if config.API.Timeout < 0 {
		problems = append(problems, "TICKETIQ_HTTP_TIMEOUT must not be negative")
	}
	if config.UI.NoticeDuration < MinNoticeDuration {
		problems = append(problems, fmt.Sprintf("TICKETIQ_NOTICE_DURATION must be at least %s (use a unit such as 3s)", MinNoticeDuration))
	}
	switch config.UI.SuggestionPolicy {
	case PolicyUnchanged, PolicyAlways:
	default:
		problems = append(problems, fmt.Sprintf("TICKETIQ_SUGGESTION_POLICY must be %q or %q", PolicyUnchanged, PolicyAlways))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}

	return nil
}

func validateAPIURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid api url %q: %w", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("api url %q must use http or https", raw)
	}
	if parsed.Host == "" {
		return fmt.Errorf("api url %q has no host", raw)
	}
	return nil
}
