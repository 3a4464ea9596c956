package mealdb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// SlotCount is the fixed number of ingredient/measure pairs on a recipe.
const SlotCount = 20

// Ingredient is one ingredient/measure slot. Either field may be blank.
type Ingredient struct {
	Name    string `json:"name"`
	Measure string `json:"measure"`
}

// Recipe is a meal as served by TheMealDB. It encodes to and from the
// upstream flat field names (idMeal, strMeal, strIngredient1..20, ...) so a
// stored snapshot is the same shape as the API record.
type Recipe struct {
	ID           string
	Name         string
	Thumbnail    string
	Category     string
	Area         string
	Instructions string
	YouTube      string
	Source       string
	Tags         string
	Ingredients  [SlotCount]Ingredient
}

// HasIngredient reports whether slot i holds a non-blank ingredient name.
func (r Recipe) HasIngredient(i int) bool {
	return strings.TrimSpace(r.Ingredients[i].Name) != ""
}

// IngredientText joins the non-blank ingredient names, in slot order.
func (r Recipe) IngredientText() string {
	names := make([]string, 0, SlotCount)
	for i := range r.Ingredients {
		if r.HasIngredient(i) {
			names = append(names, strings.TrimSpace(r.Ingredients[i].Name))
		}
	}
	return strings.Join(names, ", ")
}

func (r *Recipe) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if raw == nil {
		return nil
	}

	str := func(key string) string {
		switch v := raw[key].(type) {
		case string:
			return v
		case json.Number:
			return v.String()
		}
		return ""
	}

	*r = Recipe{
		ID:           str("idMeal"),
		Name:         str("strMeal"),
		Thumbnail:    str("strMealThumb"),
		Category:     str("strCategory"),
		Area:         str("strArea"),
		Instructions: str("strInstructions"),
		YouTube:      str("strYoutube"),
		Source:       str("strSource"),
		Tags:         str("strTags"),
	}
	for i := range r.Ingredients {
		r.Ingredients[i] = Ingredient{
			Name:    str(fmt.Sprintf("strIngredient%d", i+1)),
			Measure: str(fmt.Sprintf("strMeasure%d", i+1)),
		}
	}
	return nil
}

func (r Recipe) MarshalJSON() ([]byte, error) {
	// blank optional fields are written as null, like upstream
	orNull := func(s string) any {
		if s == "" {
			return nil
		}
		return s
	}

	m := map[string]any{
		"idMeal":          r.ID,
		"strMeal":         r.Name,
		"strMealThumb":    orNull(r.Thumbnail),
		"strCategory":     orNull(r.Category),
		"strArea":         orNull(r.Area),
		"strInstructions": orNull(r.Instructions),
		"strYoutube":      orNull(r.YouTube),
		"strSource":       orNull(r.Source),
		"strTags":         orNull(r.Tags),
	}
	for i, ing := range r.Ingredients {
		m[fmt.Sprintf("strIngredient%d", i+1)] = orNull(ing.Name)
		m[fmt.Sprintf("strMeasure%d", i+1)] = orNull(ing.Measure)
	}
	return json.Marshal(m)
}

// Category is an entry of the category listing endpoint.
type Category struct {
	Name string `json:"strCategory"`
}

type mealsEnvelope struct {
	Meals []Recipe `json:"meals"`
}

type categoriesEnvelope struct {
	Meals []Category `json:"meals"`
}
