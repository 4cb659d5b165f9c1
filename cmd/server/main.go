// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/otaku/internal/api"
	"github.com/tomtom215/otaku/internal/config"
	"github.com/tomtom215/otaku/internal/dataset"
	"github.com/tomtom215/otaku/internal/engine"
	"github.com/tomtom215/otaku/internal/logging"
	"github.com/tomtom215/otaku/internal/supervisor"
	"github.com/tomtom215/otaku/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.Logging.ToLogging())
	logging.Info().Str("version", version).Msg("Starting Otaku with supervisor tree")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loader, err := dataset.Open(dataset.Options{
		MaxMemory: cfg.Database.MaxMemory,
		Threads:   cfg.Database.Threads,
	}, logging.Component("dataset"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open dataset loader")
	}
	defer func() {
		if err := loader.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing dataset loader")
		}
	}()

	engines, err := engine.Build(ctx, cfg, loader)
	if err != nil {
		// Fatal skips deferred calls.
		_ = loader.Close()
		logging.Fatal().Err(err).Msg("Failed to build recommendation engines")
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		_ = loader.Close()
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// Engine layer
	if engines.Content != nil && cfg.Recommend.RebuildInterval > 0 {
		rebuild, err := services.NewRebuildService(
			services.RebuildFunc(engine.ContentRebuilder(engines.Content, cfg, loader)),
			services.RebuildServiceConfig{
				Name:     engines.Content.Name(),
				Interval: cfg.Recommend.RebuildInterval,
			},
			logging.Component("supervisor"),
		)
		if err != nil {
			_ = loader.Close()
			logging.Fatal().Err(err).Msg("Failed to create rebuild service")
		}
		tree.AddEngineService(rebuild)
		logging.Info().Dur("interval", cfg.Recommend.RebuildInterval).Msg("Content rebuild service added")
	}

	// API layer
	handler := api.NewHandler(engines.API(), api.Limits{
		DefaultTopN: cfg.Recommend.DefaultTopN,
		MaxTopN:     cfg.Recommend.MaxTopN,
		Neighbors:   cfg.Recommend.Neighbors,
	}, version)
	router := api.NewRouter(handler, api.MiddlewareConfig{
		CORSAllowedOrigins: cfg.Server.CORSOrigins,
		CORSMaxAge:         300,
		RateLimitRequests:  cfg.Server.RateLimitRequests,
		RateLimitWindow:    cfg.Server.RateLimitWindow,
		RateLimitDisabled:  cfg.Server.RateLimitDisabled,
	})

	server := &http.Server{
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, services.HTTPServerConfig{
		Addr:            cfg.Server.Addr(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, logging.Component("supervisor")))
	logging.Info().Str("addr", cfg.Server.Addr()).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// The root supervisor returns only once ctx is canceled.
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}
