// Package tools exposes recipe operations as self-describing tools that an
// agent or a generic caller can invoke with JSON input.
package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"
)

type Tool interface {
	Name() string
	Title() string
	Description() string
	InputSchema() *jsonschema.Schema
	OutputSchema() *jsonschema.Schema
	Run(ctx context.Context, input map[string]any) (output map[string]any, err error)
}

type Call struct {
	Name      string         `json:"name"`
	Input     map[string]any `json:"input"`
	ToolUseID string         `json:"tool_use_id,omitempty"`
}

// InputError is returned when a tool input is missing or has the wrong type.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Field, e.Reason)
}

func stringArg(input map[string]any, key string) (string, error) {
	v, ok := input[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", &InputError{Field: key, Reason: "must be a string"}
	}
	return s, nil
}

func requiredString(input map[string]any, key string) (string, error) {
	s, err := stringArg(input, key)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", &InputError{Field: key, Reason: "is required"}
	}
	return s, nil
}

// intArg reads a whole number; decoded JSON numbers arrive as float64.
func intArg(input map[string]any, key string, def int) (int, error) {
	v, ok := input[key]
	if !ok || v == nil {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, &InputError{Field: key, Reason: "must be a whole number"}
		}
		return int(n), nil
	}
	return 0, &InputError{Field: key, Reason: "must be a number"}
}
