// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// Rebuilder rebuilds an engine's matrices from their source tables.
type Rebuilder interface {
	Rebuild(ctx context.Context) error
}

// RebuildFunc adapts a function to the Rebuilder interface.
type RebuildFunc func(ctx context.Context) error

// Rebuild calls f(ctx).
func (f RebuildFunc) Rebuild(ctx context.Context) error {
	return f(ctx)
}

// RebuildServiceConfig configures a RebuildService.
type RebuildServiceConfig struct {
	// Name identifies the engine in logs and supervisor events.
	Name string

	// Interval between rebuilds. Must be positive.
	Interval time.Duration

	// Timeout bounds a single rebuild. Zero means no bound beyond ctx.
	Timeout time.Duration
}

// RebuildService rebuilds an engine on a fixed interval.
type RebuildService struct {
	rebuilder Rebuilder
	config    RebuildServiceConfig
	logger    zerolog.Logger
}

// NewRebuildService creates a periodic rebuild service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRebuildService(rebuilder Rebuilder, config RebuildServiceConfig, logger zerolog.Logger) (*RebuildService, error) {
	if rebuilder == nil {
		return nil, errors.New("rebuild service: nil rebuilder")
	}
	if config.Interval <= 0 {
		return nil, errors.New("rebuild service: interval must be positive")
	}
	if config.Name == "" {
		config.Name = "engine"
	}
	return &RebuildService{
		rebuilder: rebuilder,
		config:    config,
		logger:    logger.With().Str("service", "rebuild").Str("engine", config.Name).Logger(),
	}, nil
}

// Serve implements suture.Service. The first rebuild happens one interval
// after start since the engine is built before the tree is served.
func (s *RebuildService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.config.Interval).Msg("Rebuild service started")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Rebuild service stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *RebuildService) runOnce(ctx context.Context) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	start := time.Now()
	if err := s.rebuilder.Rebuild(ctx); err != nil {
		s.logger.Error().Err(err).Dur("duration", time.Since(start)).Msg("Rebuild failed, keeping previous matrix")
		return
	}
	s.logger.Info().Dur("duration", time.Since(start)).Msg("Rebuild completed")
}

// String implements fmt.Stringer for supervisor event logs.
func (s *RebuildService) String() string {
	return "rebuild-" + s.config.Name
}
