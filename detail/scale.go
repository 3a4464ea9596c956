// Package detail derives the display model of a single recipe: scaled
// ingredients, numbered steps, a summary line and an embeddable video.
package detail

import (
	"regexp"
	"strconv"
	"strings"

	"recipefinder/mealdb"
)

var (
	numberRe      = regexp.MustCompile(`\d*\.?\d+`)
	leadingQtyRe  = regexp.MustCompile(`^[\d.\s/-]+`)
	containsDigit = regexp.MustCompile(`\d`)
)

// Line is one rendered ingredient row.
type Line struct {
	Measure    string `json:"measure"`
	Ingredient string `json:"ingredient"`
}

// ScaleIngredients walks the ingredient slots in order, skipping blank
// ingredients, and multiplies the first number of each measure by servings.
// Measures without a digit are never scaled, and at one serving every
// measure is returned as written.
func ScaleIngredients(recipe mealdb.Recipe, servings int) []Line {
	lines := make([]Line, 0, mealdb.SlotCount)
	for i, ing := range recipe.Ingredients {
		if !recipe.HasIngredient(i) {
			continue
		}
		lines = append(lines, Line{
			Measure:    ScaleMeasure(ing.Measure, servings),
			Ingredient: ing.Name,
		})
	}
	return lines
}

// ScaleMeasure scales a single measure string, e.g. "2 cups" at 3 servings
// becomes "6 cups".
func ScaleMeasure(measure string, servings int) string {
	if servings == 1 || !containsDigit.MatchString(measure) {
		return measure
	}
	qty := numberRe.FindString(measure)
	n, err := strconv.ParseFloat(qty, 64)
	if err != nil {
		return measure
	}
	scaled := strconv.FormatFloat(n*float64(servings), 'f', -1, 64)
	unit := leadingQtyRe.ReplaceAllString(measure, "")
	return strings.TrimSpace(scaled + " " + unit)
}
