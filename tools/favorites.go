package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"recipefinder/favorites"
	"recipefinder/mealdb"
	"recipefinder/recipes"
)

type FavoritesList struct{ store *favorites.Store }

func NewFavoritesList(store *favorites.Store) *FavoritesList { return &FavoritesList{store: store} }

func (t *FavoritesList) Name() string        { return "favorites_list" }
func (t *FavoritesList) Title() string       { return "List Favorites" }
func (t *FavoritesList) Description() string { return "Lists the saved favorite recipes." }

func (t *FavoritesList) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object"}
}

func (t *FavoritesList) OutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"favorites": {Type: "array", Items: recipeSummarySchema()},
			"count":     {Type: "integer"},
		},
		Required: []string{"favorites", "count"},
	}
}

func (t *FavoritesList) Run(ctx context.Context, _ map[string]any) (map[string]any, error) {
	saved := t.store.Read(ctx)
	return map[string]any{
		"favorites": summaries(saved),
		"count":     len(saved),
	}, nil
}

type FavoriteToggle struct {
	source recipes.Source
	store  *favorites.Store
}

func NewFavoriteToggle(source recipes.Source, store *favorites.Store) *FavoriteToggle {
	return &FavoriteToggle{source: source, store: store}
}

func (t *FavoriteToggle) Name() string  { return "favorite_toggle" }
func (t *FavoriteToggle) Title() string { return "Toggle Favorite" }
func (t *FavoriteToggle) Description() string {
	return "Adds a recipe to favorites, or removes it if it is already a favorite."
}

func (t *FavoriteToggle) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"id": {Type: "string"},
		},
		Required: []string{"id"},
	}
}

func (t *FavoriteToggle) OutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"id":       {Type: "string"},
			"favorite": {Type: "boolean"},
		},
		Required: []string{"id", "favorite"},
	}
}

func (t *FavoriteToggle) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	id, err := requiredString(input, "id")
	if err != nil {
		return nil, err
	}

	hook := favorites.NewHook(t.store)
	hook.Mount(ctx, id)
	defer hook.Unmount()

	snapshot := mealdb.Recipe{ID: id}
	if !hook.IsFavorite() {
		// favoriting stores the full record, so fetch it first
		snapshot, err = t.source.Lookup(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", recipes.UserMessage(err), err)
		}
	}

	if err := hook.Toggle(ctx, snapshot); err != nil {
		return nil, err
	}
	return map[string]any{"id": id, "favorite": hook.IsFavorite()}, nil
}
