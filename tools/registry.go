package tools

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"recipefinder/favorites"
	"recipefinder/recipes"
)

// Registry maps tool names to implementations
type Registry map[string]Tool

// NewRegistry creates a registry of the recipe and favorites tools.
func NewRegistry(source recipes.Source, store *favorites.Store) (*Registry, error) {
	if source == nil || store == nil {
		return nil, fmt.Errorf("tools: source and favorites store are required")
	}
	list := []Tool{
		NewRecipeSearch(source),
		NewRecipeGet(source),
		NewFavoritesList(store),
		NewFavoriteToggle(source, store),
	}

	registry := make(Registry, len(list))
	for _, t := range list {
		registry[t.Name()] = t
	}
	return &registry, nil
}

// GetTools returns all tools in the registry sorted by name
func (r *Registry) GetTools() []Tool {
	tools := make([]Tool, 0, len(*r))
	for _, tool := range *r {
		tools = append(tools, tool)
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name() < tools[j].Name() })
	return tools
}

// GetTool retrieves a tool by name from the registry
func (r Registry) GetTool(name string) (Tool, error) {
	tool, exists := r[name]
	if !exists {
		return nil, fmt.Errorf("tool %q not found in registry", name)
	}
	return tool, nil
}

// Execute runs a single call against the named tool.
func (r Registry) Execute(ctx context.Context, call Call) (map[string]any, error) {
	tool, err := r.GetTool(call.Name)
	if err != nil {
		return nil, err
	}
	input := call.Input
	if input == nil {
		input = map[string]any{}
	}

	slog.Info("TOOLS: executing", "tool", call.Name, "tool_use_id", call.ToolUseID)
	out, err := tool.Run(ctx, input)
	if err != nil {
		slog.Warn("TOOLS: tool failed", "tool", call.Name, "error", err)
		return nil, fmt.Errorf("run %s: %w", call.Name, err)
	}
	return out, nil
}
