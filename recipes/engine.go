// Package recipes fetches the recipe catalog and filters it in memory.
package recipes

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"recipefinder/mealdb"
)

// DefaultEnrichConcurrency bounds the number of in-flight detail lookups.
const DefaultEnrichConcurrency = 8

type upstream interface {
	Search(ctx context.Context, query string) ([]mealdb.Recipe, error)
	Lookup(ctx context.Context, id string) (mealdb.Recipe, error)
	Categories(ctx context.Context) ([]string, error)
}

// Source is what views need from the query engine.
type Source interface {
	FetchAll(ctx context.Context) ([]mealdb.Recipe, error)
	Lookup(ctx context.Context, id string) (mealdb.Recipe, error)
	Categories(ctx context.Context) ([]string, error)
}

type Engine struct {
	api         upstream
	concurrency int
}

var _ Source = (*Engine)(nil)

func NewEngine(api upstream, concurrency int) *Engine {
	if concurrency <= 0 {
		concurrency = DefaultEnrichConcurrency
	}
	return &Engine{api: api, concurrency: concurrency}
}

// FetchAll returns every recipe from the bulk search, each replaced by its
// detailed record where the per-id lookup succeeds. On failure the result is
// empty and the error carries a user-facing message.
func (e *Engine) FetchAll(ctx context.Context) ([]mealdb.Recipe, error) {
	recipes, _, err := e.fetchAll(ctx)
	return recipes, err
}

func (e *Engine) fetchAll(ctx context.Context) ([]mealdb.Recipe, int, error) {
	summaries, err := e.api.Search(ctx, "")
	if err != nil {
		slog.ErrorContext(ctx, "QUERY: bulk fetch failed", "error", err)
		return []mealdb.Recipe{}, 0, &FetchError{Op: "fetch recipes", Message: msgFetchRecipes, Err: err}
	}

	recipes, fallbacks := e.enrich(ctx, summaries)
	slog.InfoContext(ctx, "QUERY: fetched recipes", "count", len(recipes), "fallbacks", fallbacks)
	return recipes, fallbacks, nil
}

// enrich looks up every summary concurrently and waits for all of them. A
// failed lookup keeps the summary in place; output order matches input.
func (e *Engine) enrich(ctx context.Context, summaries []mealdb.Recipe) ([]mealdb.Recipe, int) {
	out := make([]mealdb.Recipe, len(summaries))
	var fallbacks atomic.Int64

	var g errgroup.Group
	g.SetLimit(e.concurrency)
	for i, summary := range summaries {
		g.Go(func() error {
			out[i] = summary
			if summary.ID == "" {
				fallbacks.Add(1)
				return nil
			}
			detailed, err := e.api.Lookup(ctx, summary.ID)
			if err != nil {
				slog.DebugContext(ctx, "QUERY: lookup failed, keeping summary", "id", summary.ID, "error", err)
				fallbacks.Add(1)
				return nil
			}
			out[i] = detailed
			return nil
		})
	}
	_ = g.Wait()

	return out, int(fallbacks.Load())
}

// Lookup fetches one recipe's details.
func (e *Engine) Lookup(ctx context.Context, id string) (mealdb.Recipe, error) {
	r, err := e.api.Lookup(ctx, id)
	if err != nil {
		msg := msgFetchDetails
		if errors.Is(err, mealdb.ErrNotFound) {
			msg = msgRecipeNotFound
		}
		return mealdb.Recipe{}, &FetchError{Op: "lookup recipe " + id, Message: msg, Err: err}
	}
	return r, nil
}

// Categories returns the selectable categories, starting with the "all"
// sentinel. On failure only the sentinel is returned alongside the error.
func (e *Engine) Categories(ctx context.Context) ([]string, error) {
	names, err := e.api.Categories(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "QUERY: category fetch failed", "error", err)
		return []string{AllCategories}, &FetchError{Op: "fetch categories", Message: msgFetchCategories, Err: err}
	}
	return append([]string{AllCategories}, names...), nil
}
