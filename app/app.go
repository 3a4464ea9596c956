// Package app assembles the recipe finder components from configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"recipefinder"
	"recipefinder/favorites"
	"recipefinder/mealdb"
	"recipefinder/preferences"
	"recipefinder/recipes"
	"recipefinder/storage"
	redisslot "recipefinder/storage/redis"
	"recipefinder/storage/sqlite"
	"recipefinder/tools"
)

const (
	BackendFile   = "file"
	BackendS3     = "s3"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type Options struct {
	Upstream   recipefinder.UpstreamConfig
	Storage    recipefinder.StorageConfig
	CallLogger recipefinder.CallLogger
	HTTPClient recipefinder.HTTPClient

	// Tracer and Meter switch on the instrumented engine when both are set.
	Tracer trace.Tracer
	Meter  metric.Meter
}

type App struct {
	Source    recipes.Source
	Favorites *favorites.Store
	Theme     *preferences.Theme
	Tools     *tools.Registry

	closers []func() error
}

func New(ctx context.Context, opts Options) (*App, error) {
	slots, err := OpenSlots(ctx, opts.Storage)
	if err != nil {
		return nil, err
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Upstream.Timeout}
	}
	client := mealdb.NewClient(mealdb.ClientOpts{
		BaseURL:    opts.Upstream.BaseURL,
		HTTPClient: httpClient,
		CallLogger: opts.CallLogger,
	})

	engine := recipes.NewEngine(client, opts.Upstream.EnrichConcurrency)
	var source recipes.Source = engine
	if opts.Tracer != nil && opts.Meter != nil {
		source = recipes.NewInstrumentedEngine(engine, opts.Tracer, opts.Meter)
	}

	store := favorites.NewStore(slots.Favorites)
	registry, err := tools.NewRegistry(source, store)
	if err != nil {
		return nil, errors.Join(err, slots.Close())
	}

	slog.Info("SETUP: Components initialized", "backend", opts.Storage.Backend, "upstream", opts.Upstream.BaseURL)
	return &App{
		Source:    source,
		Favorites: store,
		Theme:     preferences.NewTheme(slots.Theme),
		Tools:     registry,
		closers:   []func() error{slots.Close},
	}, nil
}

// Close releases the storage backend.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// Slots are the two persistence slots and the backend resource behind them.
type Slots struct {
	Favorites storage.Slot
	Theme     storage.Slot
	Close     func() error
}

func noClose() error { return nil }

// OpenSlots opens the favorites and theme slots on the configured backend.
func OpenSlots(ctx context.Context, cfg recipefinder.StorageConfig) (Slots, error) {
	switch cfg.Backend {
	case BackendFile, "":
		return Slots{
			Favorites: storage.NewFileSlot(cfg.FavoritesPath),
			Theme:     storage.NewFileSlot(cfg.ThemePath),
			Close:     noClose,
		}, nil

	case BackendMemory:
		return Slots{
			Favorites: storage.NewMemorySlot(nil),
			Theme:     storage.NewMemorySlot(nil),
			Close:     noClose,
		}, nil

	case BackendS3:
		if cfg.S3Bucket == "" {
			return Slots{}, fmt.Errorf("missing S3 config: STORAGE_S3_BUCKET must be set for the s3 backend")
		}
		awsCfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return Slots{}, fmt.Errorf("failed to load AWS config: %w", err)
		}
		client := s3.NewFromConfig(awsCfg)
		return Slots{
			Favorites: storage.NewS3Slot(client, cfg.S3Bucket, cfg.FavoritesKey),
			Theme:     storage.NewS3Slot(client, cfg.S3Bucket, cfg.ThemeKey),
			Close:     noClose,
		}, nil

	case BackendRedis:
		client, err := redisslot.NewClient(redisslot.Config{
			Address:  cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return Slots{}, err
		}
		return Slots{
			Favorites: redisslot.NewSlot(client, cfg.FavoritesKey),
			Theme:     redisslot.NewSlot(client, cfg.ThemeKey),
			Close:     client.Close,
		}, nil

	case BackendSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return Slots{}, err
		}
		return Slots{
			Favorites: db.Slot(cfg.FavoritesKey),
			Theme:     db.Slot(cfg.ThemeKey),
			Close:     db.Close,
		}, nil
	}

	return Slots{}, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}
