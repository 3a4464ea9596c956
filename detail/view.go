package detail

import (
	"errors"
	"strings"

	"recipefinder/mealdb"
)

var ErrNoRecipe = errors.New("no recipe loaded")

// Detail is the rendered state of a recipe detail page.
type Detail struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Area        string   `json:"area"`
	Thumbnail   string   `json:"thumbnail"`
	Summary     string   `json:"summary"`
	Steps       []string `json:"steps"`
	Ingredients []Line   `json:"ingredients"`
	Servings    int      `json:"servings"`
	Tags        []string `json:"tags,omitempty"`
	Source      string   `json:"source,omitempty"`
	VideoURL    string   `json:"videoUrl,omitempty"`
	VideoID     string   `json:"videoId,omitempty"`
	EmbedURL    string   `json:"embedUrl,omitempty"`
}

// Render builds the Detail of recipe at the given servings.
func Render(recipe mealdb.Recipe, servings int) Detail {
	if servings < 1 {
		servings = 1
	}
	d := Detail{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Category:    recipe.Category,
		Area:        recipe.Area,
		Thumbnail:   recipe.Thumbnail,
		Summary:     Summary(recipe.Instructions),
		Steps:       ParseInstructions(recipe.Instructions),
		Ingredients: ScaleIngredients(recipe, servings),
		Servings:    servings,
		Tags:        splitTags(recipe.Tags),
		Source:      recipe.Source,
		VideoURL:    recipe.YouTube,
	}
	if id, ok := ExtractVideoID(recipe.YouTube); ok {
		d.VideoID = id
		d.EmbedURL = EmbedURL(id)
	}
	return d
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// View holds the recipe shown on a detail page and its servings multiplier.
// It is not safe for concurrent use.
type View struct {
	recipe   mealdb.Recipe
	loaded   bool
	servings int
}

func NewView() *View {
	return &View{servings: 1}
}

// Load shows recipe. Servings reset to 1 when the recipe id differs from the
// one already loaded.
func (v *View) Load(recipe mealdb.Recipe) {
	if !v.loaded || v.recipe.ID != recipe.ID {
		v.servings = 1
	}
	v.recipe = recipe
	v.loaded = true
}

func (v *View) Recipe() (mealdb.Recipe, bool) { return v.recipe, v.loaded }

func (v *View) Servings() int { return v.servings }

func (v *View) Increase() int {
	v.servings = AdjustServings(v.servings, Increase)
	return v.servings
}

func (v *View) Decrease() int {
	v.servings = AdjustServings(v.servings, Decrease)
	return v.servings
}

// SetServings jumps straight to n, clamped to at least 1.
func (v *View) SetServings(n int) {
	v.servings = max(n, 1)
}

func (v *View) Render() (Detail, error) {
	if !v.loaded {
		return Detail{}, ErrNoRecipe
	}
	return Render(v.recipe, v.servings), nil
}
