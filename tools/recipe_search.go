package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"recipefinder/mealdb"
	"recipefinder/recipes"
)

type RecipeSearch struct{ source recipes.Source }

func NewRecipeSearch(source recipes.Source) *RecipeSearch { return &RecipeSearch{source: source} }

func (t *RecipeSearch) Name() string  { return "recipe_search" }
func (t *RecipeSearch) Title() string { return "Search Recipes" }
func (t *RecipeSearch) Description() string {
	return "Searches the recipe catalog by category and free text matched against name, ingredients and instructions."
}

func (t *RecipeSearch) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"category": {Type: "string"},
			"query":    {Type: "string"},
		},
	}
}

func (t *RecipeSearch) OutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"recipes": {
				Type:  "array",
				Items: recipeSummarySchema(),
			},
			"count":   {Type: "integer"},
			"message": {Type: "string"},
		},
		Required: []string{"recipes", "count"},
	}
}

func (t *RecipeSearch) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	category, err := stringArg(input, "category")
	if err != nil {
		return nil, err
	}
	query, err := stringArg(input, "query")
	if err != nil {
		return nil, err
	}

	all, err := t.source.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", recipes.UserMessage(err), err)
	}

	state := recipes.FilterState{SearchTerm: query, Category: category}
	found := state.Apply(all)

	out := map[string]any{
		"recipes": summaries(found),
		"count":   len(found),
	}
	if len(found) == 0 {
		out["message"] = state.EmptyMessage()
	}
	return out, nil
}

func recipeSummarySchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"id":       {Type: "string"},
			"name":     {Type: "string"},
			"category": {Type: "string"},
			"area":     {Type: "string"},
		},
		Required: []string{"id", "name"},
	}
}

func summaries(list []mealdb.Recipe) []map[string]any {
	out := make([]map[string]any, 0, len(list))
	for _, r := range list {
		out = append(out, map[string]any{
			"id":       r.ID,
			"name":     r.Name,
			"category": r.Category,
			"area":     r.Area,
		})
	}
	return out
}
