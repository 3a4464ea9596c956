package recipefinder

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// CallLogger records upstream API calls.
type CallLogger interface {
	LogCall(call CallLog) error
}

// NewCallLogFilePath returns a file path named after the upstream host so logs from different mirrors are easy to tell apart.
func NewCallLogFilePath(baseURL string) string {
	host := strings.TrimPrefix(strings.TrimPrefix(baseURL, "https://"), "http://")
	if i := strings.Index(host, "/"); i >= 0 {
		host = host[:i]
	}
	return fmt.Sprintf(
		"./logs/%d.%s.json",
		time.Now().Unix(),
		strings.ReplaceAll(strings.ToLower(host), ":", "_"),
	)
}

// CallLog represents a single request made to the recipe API
type CallLog struct {
	Endpoint   string        `json:"endpoint"`
	Query      string        `json:"query,omitempty"`
	Timestamp  time.Time     `json:"timestamp"`
	Duration   time.Duration `json:"duration_ns"`
	StatusCode int           `json:"status_code,omitempty"`
	Results    int           `json:"results"`
	Error      string        `json:"error,omitempty"`
}

// FileCallLogger accumulates calls and writes them as one JSON document on Flush
type FileCallLogger struct {
	mu     sync.Mutex
	calls  []CallLog
	writer io.Writer
}

func NewFileCallLogger(writer io.Writer) *FileCallLogger {
	return &FileCallLogger{
		calls:  make([]CallLog, 0),
		writer: writer,
	}
}

// LogCall buffers the call (does not flush immediately)
func (l *FileCallLogger) LogCall(call CallLog) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, call)
	return nil
}

// Flush writes all buffered calls to the writer
func (l *FileCallLogger) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.writer == nil {
		return nil
	}

	data, err := json.MarshalIndent(map[string]any{
		"session": map[string]any{
			"timestamp": time.Now(),
			"calls":     l.calls,
		},
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal call log: %w", err)
	}

	if _, err := l.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write call log: %w", err)
	}

	l.calls = l.calls[:0]
	return nil
}

// NoOpCallLogger discards all entries
type NoOpCallLogger struct{}

func NewNoOpCallLogger() *NoOpCallLogger {
	return &NoOpCallLogger{}
}

func (nop *NoOpCallLogger) LogCall(call CallLog) error {
	return nil
}

// StdoutCallLogger writes each call as a JSON line to stdout (for Lambda/CloudWatch)
type StdoutCallLogger struct {
	mu sync.Mutex
}

func NewStdoutCallLogger() *StdoutCallLogger {
	return &StdoutCallLogger{}
}

func (l *StdoutCallLogger) LogCall(call CallLog) error {
	data, err := json.Marshal(call)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}
