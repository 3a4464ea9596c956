package detail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipefinder/mealdb"
)

func teriyaki() mealdb.Recipe {
	r := mealdb.Recipe{
		ID:           "52772",
		Name:         "Teriyaki Chicken Casserole",
		Category:     "Chicken",
		Area:         "Japanese",
		Instructions: "Preheat oven to 350° F.\r\n\r\nCombine soy sauce.\r\nBake for 35 minutes.\r\n",
		YouTube:      "https://www.youtube.com/watch?v=4aZr5hZXP_s",
		Tags:         "Meat, Casserole",
	}
	r.Ingredients[0] = mealdb.Ingredient{Name: "soy sauce", Measure: "3/4 cup"}
	r.Ingredients[1] = mealdb.Ingredient{Name: "water", Measure: "1/2 cup"}
	r.Ingredients[2] = mealdb.Ingredient{Name: "  ", Measure: "1 tbs"}
	r.Ingredients[3] = mealdb.Ingredient{Name: "chicken breasts", Measure: "2"}
	r.Ingredients[4] = mealdb.Ingredient{Name: "salt", Measure: "to taste"}
	r.Ingredients[5] = mealdb.Ingredient{Name: "rice", Measure: "1.5 cups"}
	return r
}

func TestScaleMeasure(t *testing.T) {
	tests := []struct {
		measure  string
		servings int
		want     string
	}{
		{"2 cups", 3, "6 cups"},
		{"1.5 cups", 2, "3 cups"},
		{"200g", 2, "400 g"},
		{"2", 4, "8"},
		{"0.25 tsp", 3, "0.75 tsp"},
		{"3/4 cup", 2, "6 cup"},
		{"to taste", 5, "to taste"},
		{"", 3, ""},
		{"Pinch", 2, "Pinch"},
		{"200g", 1, "200g"},
		{"3/4 cup", 1, "3/4 cup"},
	}

	for _, tt := range tests {
		t.Run(tt.measure, func(t *testing.T) {
			assert.Equal(t, tt.want, ScaleMeasure(tt.measure, tt.servings))
		})
	}
}

func TestScaleIngredients(t *testing.T) {
	got := ScaleIngredients(teriyaki(), 2)
	assert.Equal(t, []Line{
		{Measure: "6 cup", Ingredient: "soy sauce"},
		{Measure: "2 cup", Ingredient: "water"},
		{Measure: "4", Ingredient: "chicken breasts"},
		{Measure: "to taste", Ingredient: "salt"},
		{Measure: "3 cups", Ingredient: "rice"},
	}, got)
}

func TestScaleIngredientsIdentityAtOneServing(t *testing.T) {
	r := teriyaki()
	for _, line := range ScaleIngredients(r, 1) {
		var source string
		for _, ing := range r.Ingredients {
			if ing.Name == line.Ingredient {
				source = ing.Measure
			}
		}
		assert.Equal(t, source, line.Measure, line.Ingredient)
	}
}

func TestScaleIngredientsEmpty(t *testing.T) {
	got := ScaleIngredients(mealdb.Recipe{}, 3)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParseInstructions(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "crlf with blank", text: "Step one.\r\n\r\nStep two.\r\n", want: []string{"Step one.", "Step two."}},
		{name: "bare lf", text: "Mix.\nBake.", want: []string{"Mix.", "Bake."}},
		{name: "trims", text: "  Stir well.  \r\n\t\r\n", want: []string{"Stir well."}},
		{name: "empty", text: "", want: []string{}},
		{name: "whitespace only", text: " \r\n \n", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseInstructions(tt.text))
		})
	}
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "Step one.", Summary("\r\nStep one.\r\nStep two."))
	assert.Equal(t, NoSummary, Summary(""))
	assert.Equal(t, "No description available.", Summary("\r\n  \r\n"))
}

func TestAdjustServings(t *testing.T) {
	assert.Equal(t, 1, AdjustServings(1, Decrease))
	assert.Equal(t, 1, AdjustServings(2, Decrease))
	assert.Equal(t, 1, AdjustServings(0, Decrease))
	for n := 1; n < 50; n++ {
		assert.Equal(t, n+1, AdjustServings(n, Increase))
	}
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("increase")
	require.NoError(t, err)
	assert.Equal(t, Increase, d)

	d, err = ParseDirection("-")
	require.NoError(t, err)
	assert.Equal(t, Decrease, d)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
	assert.Equal(t, "decrease", Decrease.String())
}

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		url    string
		want   string
		wantOK bool
	}{
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?v=4aZr5hZXP_s", "4aZr5hZXP_s", true},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/v/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ#t=10", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?v=short", "", false},
		{"https://example.com/video", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, ok := ExtractVideoID(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender(t *testing.T) {
	d := Render(teriyaki(), 0)

	assert.Equal(t, 1, d.Servings)
	assert.Equal(t, "Preheat oven to 350° F.", d.Summary)
	assert.Equal(t, []string{"Preheat oven to 350° F.", "Combine soy sauce.", "Bake for 35 minutes."}, d.Steps)
	assert.Equal(t, "4aZr5hZXP_s", d.VideoID)
	assert.Equal(t, "https://www.youtube.com/embed/4aZr5hZXP_s", d.EmbedURL)
	assert.Equal(t, []string{"Meat", "Casserole"}, d.Tags)
	assert.Len(t, d.Ingredients, 5)
}

func TestRenderWithoutVideo(t *testing.T) {
	r := teriyaki()
	r.YouTube = ""
	d := Render(r, 2)
	assert.Empty(t, d.VideoID)
	assert.Empty(t, d.EmbedURL)
}

func TestView(t *testing.T) {
	v := NewView()
	_, err := v.Render()
	require.ErrorIs(t, err, ErrNoRecipe)

	v.Load(teriyaki())
	assert.Equal(t, 1, v.Servings())
	assert.Equal(t, 1, v.Decrease())
	assert.Equal(t, 2, v.Increase())
	assert.Equal(t, 3, v.Increase())

	d, err := v.Render()
	require.NoError(t, err)
	assert.Equal(t, 3, d.Servings)
	assert.Equal(t, Line{Measure: "6", Ingredient: "chicken breasts"}, d.Ingredients[2])

	// same recipe keeps servings
	v.Load(teriyaki())
	assert.Equal(t, 3, v.Servings())

	// different recipe resets them
	v.Load(mealdb.Recipe{ID: "1", Name: "Apple Pie"})
	assert.Equal(t, 1, v.Servings())

	v.SetServings(-4)
	assert.Equal(t, 1, v.Servings())

	r, ok := v.Recipe()
	assert.True(t, ok)
	assert.Equal(t, "Apple Pie", r.Name)
}
