package recipes

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"recipefinder/mealdb"
)

// InstrumentedEngine wraps an Engine with tracing and metrics.
type InstrumentedEngine struct {
	engine *Engine
	tracer trace.Tracer

	fetches      metric.Int64Counter
	fetchErrors  metric.Int64Counter
	fallbacks    metric.Int64Counter
	lookups      metric.Int64Counter
	lookupErrors metric.Int64Counter
	catalogSize  metric.Int64Gauge
	fetchTime    metric.Float64Histogram
}

var _ Source = (*InstrumentedEngine)(nil)

func NewInstrumentedEngine(engine *Engine, tracer trace.Tracer, meter metric.Meter) *InstrumentedEngine {
	ie := &InstrumentedEngine{engine: engine, tracer: tracer}

	ie.fetches, _ = meter.Int64Counter("recipe_fetches_total",
		metric.WithDescription("Total number of full catalog fetches"))
	ie.fetchErrors, _ = meter.Int64Counter("recipe_fetches_failed_total",
		metric.WithDescription("Total number of catalog fetches that failed"))
	ie.fallbacks, _ = meter.Int64Counter("recipe_enrich_fallbacks_total",
		metric.WithDescription("Total number of detail lookups that fell back to the summary record"))
	ie.lookups, _ = meter.Int64Counter("recipe_lookups_total",
		metric.WithDescription("Total number of single recipe lookups"))
	ie.lookupErrors, _ = meter.Int64Counter("recipe_lookups_failed_total",
		metric.WithDescription("Total number of single recipe lookups that failed"))
	ie.catalogSize, _ = meter.Int64Gauge("recipe_catalog_size",
		metric.WithDescription("Number of recipes returned by the latest fetch"))
	ie.fetchTime, _ = meter.Float64Histogram("recipe_fetch_duration_seconds",
		metric.WithDescription("Duration of a full catalog fetch including enrichment in seconds"))

	return ie
}

func (ie *InstrumentedEngine) FetchAll(ctx context.Context) ([]mealdb.Recipe, error) {
	ctx, span := ie.tracer.Start(ctx, "InstrumentedEngine.FetchAll")
	defer span.End()

	ie.fetches.Add(ctx, 1)
	start := time.Now()
	recipes, fallbacks, err := ie.engine.fetchAll(ctx)
	elapsed := time.Since(start)
	ie.fetchTime.Record(ctx, elapsed.Seconds())

	if err != nil {
		ie.fetchErrors.Add(ctx, 1)
		span.SetStatus(codes.Error, "catalog fetch failed")
		span.RecordError(err)
		return recipes, err
	}

	ie.fallbacks.Add(ctx, int64(fallbacks))
	ie.catalogSize.Record(ctx, int64(len(recipes)))
	span.SetAttributes(
		attribute.Int("recipes.count", len(recipes)),
		attribute.Int("recipes.fallbacks", fallbacks),
	)
	slog.Info("QUERY: instrumented fetch complete", "count", len(recipes), "fallbacks", fallbacks, "duration_ms", elapsed.Milliseconds())
	return recipes, nil
}

func (ie *InstrumentedEngine) Lookup(ctx context.Context, id string) (mealdb.Recipe, error) {
	ctx, span := ie.tracer.Start(ctx, "InstrumentedEngine.Lookup", trace.WithAttributes(attribute.String("recipe.id", id)))
	defer span.End()

	ie.lookups.Add(ctx, 1)
	r, err := ie.engine.Lookup(ctx, id)
	if err != nil {
		ie.lookupErrors.Add(ctx, 1)
		span.SetStatus(codes.Error, UserMessage(err))
		span.RecordError(err)
	}
	return r, err
}

func (ie *InstrumentedEngine) Categories(ctx context.Context) ([]string, error) {
	ctx, span := ie.tracer.Start(ctx, "InstrumentedEngine.Categories")
	defer span.End()

	names, err := ie.engine.Categories(ctx)
	if err != nil {
		span.SetStatus(codes.Error, "category fetch failed")
		span.RecordError(err)
	}
	span.SetAttributes(attribute.Int("categories.count", len(names)))
	return names, err
}
