package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// OpenLogFile opens (creating if needed) today's log file under
// ~/.<appName>/logs. The interactive UI owns the terminal, so it logs here
// instead of to stderr. The caller closes the returned file.
func OpenLogFile(appName string) (*os.File, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	return openLogFileIn(filepath.Join(homeDir, "."+appName, "logs"), appName, time.Now())
}

func openLogFileIn(logsDir, appName string, now time.Time) (*os.File, error) {
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	logFileName := fmt.Sprintf("%s-%s.log", appName, now.Format("2006-01-02"))
	logFile, err := os.OpenFile(filepath.Join(logsDir, logFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return logFile, nil
}
