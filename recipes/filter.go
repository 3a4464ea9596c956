package recipes

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"recipefinder/mealdb"
)

// AllCategories is the category value that disables category filtering.
const AllCategories = "all"

// FilterState is the transient search input of a recipe list view.
type FilterState struct {
	SearchTerm string
	Category   string
}

// Filter keeps the recipes matching both category and searchTerm, in their
// input order. Category "all" (or empty) matches every recipe; a blank
// term matches every recipe. Otherwise the lower-cased trimmed term must
// appear in the name, the ingredient names or the instructions.
func Filter(all []mealdb.Recipe, category, searchTerm string) []mealdb.Recipe {
	term := strings.ToLower(strings.TrimSpace(searchTerm))
	filterCategory := category != "" && category != AllCategories

	return lo.Filter(all, func(r mealdb.Recipe, _ int) bool {
		if filterCategory && r.Category != category {
			return false
		}
		if term == "" {
			return true
		}
		return strings.Contains(strings.ToLower(r.Name), term) ||
			strings.Contains(strings.ToLower(r.IngredientText()), term) ||
			strings.Contains(strings.ToLower(r.Instructions), term)
	})
}

func (f FilterState) Apply(all []mealdb.Recipe) []mealdb.Recipe {
	return Filter(all, f.Category, f.SearchTerm)
}

// EmptyMessage is shown when Apply returns nothing.
func (f FilterState) EmptyMessage() string {
	if f.Category != "" && f.Category != AllCategories {
		return fmt.Sprintf("No %s recipes found", strings.ToLower(f.Category))
	}
	return "No recipes found matching your search"
}
