// Package api serves the recipe catalog, recipe details, favorites and the
// theme preference as a JSON HTTP API.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.opentelemetry.io/otel/trace"

	"recipefinder/favorites"
	"recipefinder/preferences"
	"recipefinder/recipes"
	"recipefinder/tools"
)

type Server struct {
	source   recipes.Source
	store    *favorites.Store
	theme    *preferences.Theme
	registry *tools.Registry
	tracer   trace.Tracer
}

func NewServer(source recipes.Source, store *favorites.Store, theme *preferences.Theme, registry *tools.Registry) *Server {
	return &Server{source: source, store: store, theme: theme, registry: registry}
}

// WithTracer records a span for every routed request.
func (s *Server) WithTracer(tracer trace.Tracer) *Server {
	s.tracer = tracer
	return s
}

// Router registers every route on a new mux.Router.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	if s.tracer != nil {
		r.Use(tracing(s.tracer))
	}

	r.HandleFunc("/recipes", s.listRecipes).Methods(http.MethodGet)
	r.HandleFunc("/recipes/{id}", s.getRecipe).Methods(http.MethodGet)
	r.HandleFunc("/categories", s.listCategories).Methods(http.MethodGet)

	r.HandleFunc("/favorites", s.listFavorites).Methods(http.MethodGet)
	r.HandleFunc("/favorites/{id}", s.toggleFavorite).Methods(http.MethodPost)

	r.HandleFunc("/preferences/theme", s.getTheme).Methods(http.MethodGet)
	r.HandleFunc("/preferences/theme", s.putTheme).Methods(http.MethodPut)

	if s.registry != nil {
		r.HandleFunc("/tools", s.listTools).Methods(http.MethodGet)
		r.HandleFunc("/tools/{name}", s.runTool).Methods(http.MethodPost)
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	return r
}

// Handler wraps the router with CORS for the given origins.
func (s *Server) Handler(allowedOrigins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(s.Router())
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("API: failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
