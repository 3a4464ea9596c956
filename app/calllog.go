package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"recipefinder"
)

// NewCallLogger picks the upstream call log for path: "" disables it, "-"
// writes JSON lines to stdout, "auto" writes a file under ./logs named after
// the upstream host, anything else is used as the file path.
func NewCallLogger(path, baseURL string) (recipefinder.CallLogger, func() error, error) {
	switch path {
	case "":
		return recipefinder.NewNoOpCallLogger(), noClose, nil
	case "-":
		return recipefinder.NewStdoutCallLogger(), noClose, nil
	case "auto":
		path = recipefinder.NewCallLogFilePath(baseURL)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, noClose, fmt.Errorf("failed to create log directory: %w", err)
	}
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, noClose, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := recipefinder.NewFileCallLogger(logFile)
	cleanup := func() error {
		return errors.Join(logger.Flush(), logFile.Close())
	}
	return logger, cleanup, nil
}
