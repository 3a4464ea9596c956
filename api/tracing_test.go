package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"recipefinder/favorites"
	"recipefinder/preferences"
	"recipefinder/storage"
)

func TestTracingNamesSpansAfterRoutes(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer tp.Shutdown(context.Background()) // nolint: errcheck

	f := newFixture(t)
	srv := NewServer(f.src, favorites.NewStore(storage.NewMemorySlot(nil)), preferences.NewTheme(storage.NewMemorySlot(nil)), nil).
		WithTracer(tp.Tracer("test"))
	handler := srv.Handler([]string{"*"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/recipes/999", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /recipes/{id}", spans[0].Name)

	var status int64
	for _, kv := range spans[0].Attributes {
		if kv.Key == "http.response.status_code" {
			status = kv.Value.AsInt64()
		}
	}
	assert.Equal(t, int64(http.StatusNotFound), status)
}
