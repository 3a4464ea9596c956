package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"

	"recipefinder"
	"recipefinder/app"
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

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	callLogger, cleanup, err := app.NewCallLogger(serverConfig.CallLogPath, upstreamConfig.BaseURL)
	if err != nil {
		log.Fatalf("SETUP: Failed to create call logger: %s", err)
	}

	a, err := app.New(ctx, app.Options{
		Upstream:   upstreamConfig,
		Storage:    storageConfig,
		CallLogger: callLogger,
	})
	if err != nil {
		log.Fatalf("SETUP: Failed to initialize components: %s", err)
	}

	cmd := &commands{app: a, out: os.Stdout, watchInterval: storageConfig.WatchInterval}
	runErr := cmd.run(ctx, os.Args[1], os.Args[2:])

	if err := errors.Join(cleanup(), a.Close()); err != nil {
		slog.Error("SETUP: Failed to release resources", "error", err)
	}
	if runErr != nil {
		fmt.Fprintln(os.Stderr, "error:", runErr)
		os.Exit(1)
	}
}
