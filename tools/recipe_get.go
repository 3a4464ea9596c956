package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"recipefinder/detail"
	"recipefinder/recipes"
)

type RecipeGet struct{ source recipes.Source }

func NewRecipeGet(source recipes.Source) *RecipeGet { return &RecipeGet{source: source} }

func (t *RecipeGet) Name() string  { return "recipe_get" }
func (t *RecipeGet) Title() string { return "Get Recipe" }
func (t *RecipeGet) Description() string {
	return "Gets one recipe by id with ingredients scaled to the requested servings (default 1)."
}

func (t *RecipeGet) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"id":       {Type: "string"},
			"servings": {Type: "integer", Description: "servings to scale ingredients for, at least 1"},
		},
		Required: []string{"id"},
	}
}

func (t *RecipeGet) OutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"recipe": {
				Type: "object",
				// rendered detail: steps, scaled ingredients, video embed
			},
		},
		Required: []string{"recipe"},
	}
}

func (t *RecipeGet) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	id, err := requiredString(input, "id")
	if err != nil {
		return nil, err
	}
	servings, err := intArg(input, "servings", 1)
	if err != nil {
		return nil, err
	}
	if servings < 1 {
		return nil, &InputError{Field: "servings", Reason: "must be at least 1"}
	}

	r, err := t.source.Lookup(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", recipes.UserMessage(err), err)
	}

	return map[string]any{"recipe": detail.Render(r, servings)}, nil
}
