package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"recipefinder/detail"
	"recipefinder/favorites"
	"recipefinder/mealdb"
	"recipefinder/recipes"
)

const maxBodyBytes = 1 << 20

type recipeListResponse struct {
	Recipes []mealdb.Recipe `json:"recipes"`
	Count   int             `json:"count"`
	Message string          `json:"message,omitempty"`
}

func (s *Server) listRecipes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	state := recipes.FilterState{SearchTerm: q.Get("q"), Category: q.Get("category")}

	all, err := s.source.FetchAll(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, recipes.UserMessage(err))
		return
	}

	found := state.Apply(all)
	resp := recipeListResponse{Recipes: found, Count: len(found)}
	if len(found) == 0 {
		resp.Message = state.EmptyMessage()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	names, err := s.source.Categories(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, recipes.UserMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"categories": names})
}

type recipeDetailResponse struct {
	Recipe   detail.Detail `json:"recipe"`
	Favorite bool          `json:"favorite"`
}

func (s *Server) getRecipe(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	servings := 1
	if raw := r.URL.Query().Get("servings"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "servings must be a whole number of at least 1")
			return
		}
		servings = n
	}

	recipe, err := s.source.Lookup(r.Context(), id)
	if err != nil {
		status := http.StatusBadGateway
		if recipes.IsNotFound(err) {
			status = http.StatusNotFound
		}
		writeError(w, status, recipes.UserMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, recipeDetailResponse{
		Recipe:   detail.Render(recipe, servings),
		Favorite: s.store.Contains(r.Context(), id),
	})
}

func (s *Server) listFavorites(w http.ResponseWriter, r *http.Request) {
	saved := s.store.Read(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"favorites": saved, "count": len(saved)})
}

type toggleResponse struct {
	ID       string `json:"id"`
	Favorite bool   `json:"favorite"`
}

// toggleFavorite flips the favorite state of {id}. The request body may carry
// the recipe snapshot to store; without one the recipe is looked up.
func (s *Server) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	var snapshot *mealdb.Recipe
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}
	if len(body) > 0 {
		var rec mealdb.Recipe
		if err := json.Unmarshal(body, &rec); err != nil {
			writeError(w, http.StatusBadRequest, "request body must be a recipe")
			return
		}
		if rec.ID == "" {
			rec.ID = id
		}
		snapshot = &rec
	}

	hook := favorites.NewHook(s.store)
	hook.Mount(ctx, id)
	defer hook.Unmount()

	if snapshot == nil {
		if hook.IsFavorite() {
			snapshot = &mealdb.Recipe{ID: id}
		} else {
			rec, err := s.source.Lookup(ctx, id)
			if err != nil {
				status := http.StatusBadGateway
				if recipes.IsNotFound(err) {
					status = http.StatusNotFound
				}
				writeError(w, status, recipes.UserMessage(err))
				return
			}
			snapshot = &rec
		}
	}

	if err := hook.Toggle(ctx, *snapshot); err != nil {
		if errors.Is(err, favorites.ErrIDMismatch) {
			writeError(w, http.StatusBadRequest, "recipe id does not match the path")
			return
		}
		slog.ErrorContext(ctx, "API: toggle favorite failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update favorites")
		return
	}

	writeJSON(w, http.StatusOK, toggleResponse{ID: id, Favorite: hook.IsFavorite()})
}

type themeBody struct {
	DarkMode *bool `json:"darkMode"`
}

func (s *Server) getTheme(w http.ResponseWriter, r *http.Request) {
	dark := s.theme.DarkMode(r.Context())
	writeJSON(w, http.StatusOK, themeBody{DarkMode: &dark})
}

func (s *Server) putTheme(w http.ResponseWriter, r *http.Request) {
	var body themeBody
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&body); err != nil || body.DarkMode == nil {
		writeError(w, http.StatusBadRequest, `body must be {"darkMode": true|false}`)
		return
	}
	if err := s.theme.SetDarkMode(r.Context(), *body.DarkMode); err != nil {
		slog.ErrorContext(r.Context(), "API: save theme failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save theme")
		return
	}
	writeJSON(w, http.StatusOK, body)
}
