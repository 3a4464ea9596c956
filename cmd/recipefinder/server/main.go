package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"recipefinder"
	"recipefinder/api"
	"recipefinder/app"
	"recipefinder/slack"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("SETUP: Failed to load .env: %s", err)
	}

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	callLogger, cleanup, err := app.NewCallLogger(serverConfig.CallLogPath, upstreamConfig.BaseURL)
	if err != nil {
		slog.Error("SETUP: Failed to create call logger", "error", err)
		return
	}
	defer func() {
		if err := cleanup(); err != nil {
			slog.Error("SETUP: Failed to flush call log", "error", err)
		}
	}()

	var (
		tracer    trace.Tracer
		meter     metric.Meter
		apiTracer trace.Tracer
	)
	if serverConfig.EnableOtel {
		tracerProvider, meterProvider, otelShutdown, err := recipefinder.InitOtel(ctx)
		if err != nil {
			slog.Error("SETUP: Failed to initialize OpenTelemetry", "error", err)
			return
		}
		defer func() {
			if err := otelShutdown(context.Background()); err != nil {
				slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
			}
		}()
		tracer = tracerProvider.Tracer(recipefinder.TracerNameQuery)
		meter = meterProvider.Meter(recipefinder.TracerNameQuery)
		apiTracer = tracerProvider.Tracer(recipefinder.TracerNameAPI)
	}

	a, err := app.New(ctx, app.Options{
		Upstream:   upstreamConfig,
		Storage:    storageConfig,
		CallLogger: callLogger,
		Tracer:     tracer,
		Meter:      meter,
	})
	if err != nil {
		slog.Error("SETUP: Failed to initialize components", "error", err)
		return
	}
	defer a.Close() // nolint: errcheck

	if storageConfig.WatchInterval > 0 {
		go a.Favorites.Watch(ctx, storageConfig.WatchInterval)
		slog.Info("SETUP: Watching favorites for external changes", "interval", storageConfig.WatchInterval)
	}

	if serverConfig.SlackWebhookURL != "" {
		notifier := slack.NewFavoritesNotifier(
			slack.NewClient(serverConfig.SlackWebhookURL, &http.Client{Timeout: 10 * time.Second}),
			serverConfig.SlackChannel,
			a.Favorites,
		)
		go notifier.Run(ctx)
		slog.Info("SETUP: Posting favorites updates to Slack", "channel", serverConfig.SlackChannel)
	}

	apiServer := api.NewServer(a.Source, a.Favorites, a.Theme, a.Tools)
	if apiTracer != nil {
		apiServer = apiServer.WithTracer(apiTracer)
	}

	srv := &http.Server{
		Addr:              serverConfig.ListenAddr,
		Handler:           apiServer.Handler(splitOrigins(serverConfig.AllowedOrigins)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("SERVER: Shutdown failed", "error", err)
		}
	}()

	slog.Info("SERVER: Listening", "addr", serverConfig.ListenAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("SERVER: Failed", "error", err)
	}
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
