package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joeshaw/envdecode"

	"recipefinder"
	"recipefinder/app"
	"recipefinder/favorites"
	"recipefinder/mealdb"
	"recipefinder/recipes"
)

type Params struct {
	Category string `json:"category"`
	Search   string `json:"search"`
	// Favorites filters the saved favorites instead of the live catalog.
	Favorites bool `json:"favorites,omitempty"`
}

type Results struct {
	Recipes []mealdb.Recipe `json:"recipes"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func main() {
	var upstreamConfig recipefinder.UpstreamConfig
	if err := envdecode.Decode(&upstreamConfig); err != nil {
		log.Fatalf("SETUP: Failed to decode: %s", err)
	}

	var storageConfig recipefinder.StorageConfig
	if err := envdecode.Decode(&storageConfig); err != nil {
		log.Fatalf("SETUP: Failed to decode: %s", err)
	}

	var serverConfig recipefinder.ServerConfig
	if err := envdecode.Decode(&serverConfig); err != nil {
		log.Fatalf("SETUP: Failed to decode: %s", err)
	}

	ctx := context.Background()
	opts := app.Options{
		Upstream:   upstreamConfig,
		Storage:    storageConfig,
		CallLogger: recipefinder.NewStdoutCallLogger(),
	}

	if serverConfig.EnableOtel {
		tracerProvider, meterProvider, _, err := recipefinder.InitOtel(ctx)
		if err != nil {
			log.Fatalf("SETUP: Failed to initialize OpenTelemetry: %s", err)
		}
		opts.Tracer = tracerProvider.Tracer(recipefinder.TracerNameQuery)
		opts.Meter = meterProvider.Meter(recipefinder.TracerNameQuery)
	}

	a, err := app.New(ctx, opts)
	if err != nil {
		log.Fatalf("SETUP: Failed to initialize components: %s", err)
	}

	lambda.Start(newHandler(a.Source, a.Favorites))
}

func newHandler(source recipes.Source, store *favorites.Store) func(ctx context.Context, params Params) (Results, error) {
	return func(ctx context.Context, params Params) (Results, error) {
		var all []mealdb.Recipe
		if params.Favorites {
			all = store.Read(ctx)
		} else {
			var err error
			all, err = source.FetchAll(ctx)
			if err != nil {
				slog.Error("RESULT: Failed to fetch recipes", "error", err)
				return Results{Recipes: []mealdb.Recipe{}, Error: recipes.UserMessage(err)}, nil
			}
		}

		state := recipes.FilterState{SearchTerm: params.Search, Category: params.Category}
		found := state.Apply(all)
		res := Results{Recipes: found}
		if len(found) == 0 {
			res.Message = state.EmptyMessage()
		}
		slog.Info("RESULT: Recipes filtered", "category", params.Category, "search", params.Search, "count", len(found))
		return res, nil
	}
}
