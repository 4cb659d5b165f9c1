// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

// Package engine wires the tables read by the dataset loader into the
// recommendation engines. Both the query server and the evaluation command
// build their engines here.
package engine

import (
	"context"
	"fmt"

	"github.com/tomtom215/otaku/internal/api"
	"github.com/tomtom215/otaku/internal/config"
	"github.com/tomtom215/otaku/internal/dataset"
	"github.com/tomtom215/otaku/internal/logging"
	"github.com/tomtom215/otaku/internal/recommend/algorithms"
	"github.com/tomtom215/otaku/internal/recommend/sparse"
)

// Feature table id columns.
const (
	TitleIDColumn     = "title_id"
	UserIDColumn      = "user_id"
	CharacterIDColumn = "character_id"
)

// Set holds the engines built from the configured tables. A nil field is an
// engine whose tables were not configured.
type Set struct {
	Content       *algorithms.ContentRecommender
	Collaborative *algorithms.CollaborativeRecommender
	Image         *algorithms.ImageRecommender
}

// API returns the engines as the handler interfaces. Engines that were not
// built stay nil interfaces so their routes answer 503.
func (s *Set) API() api.Engines {
	var e api.Engines
	if s.Content != nil {
		e.Content = s.Content
	}
	if s.Collaborative != nil {
		e.Collaborative = s.Collaborative
	}
	if s.Image != nil {
		e.Image = s.Image
	}
	return e
}

// Build builds every engine whose tables are configured. A configured table
// that fails to load fails the whole build.
func Build(ctx context.Context, cfg *config.Config, loader *dataset.Loader) (*Set, error) {
	var (
		built Set
		err   error
	)

	if cfg.Data.ContentEnabled() {
		if built.Content, err = BuildContent(ctx, cfg, loader); err != nil {
			return nil, err
		}
	} else {
		logging.Info().Msg("Content engine disabled (data.titles or data.content_features not set)")
	}

	if cfg.Data.CollaborativeEnabled() {
		if built.Collaborative, err = BuildCollaborative(ctx, cfg, loader); err != nil {
			return nil, err
		}
	} else {
		logging.Info().Msg("Collaborative engine disabled (data.titles, data.title_genres, data.user_genres or data.interactions not set)")
	}

	if cfg.Data.ImageEnabled() {
		if built.Image, err = BuildImage(ctx, cfg, loader); err != nil {
			return nil, err
		}
	} else {
		logging.Info().Msg("Image engine disabled (data.characters or data.character_embeddings not set)")
	}

	return &built, nil
}

// BuildContent loads the title and content feature tables and attaches the
// first similarity matrix.
func BuildContent(ctx context.Context, cfg *config.Config, loader *dataset.Loader) (*algorithms.ContentRecommender, error) {
	titles, err := loader.LoadTitles(ctx, cfg.Data.Titles)
	if err != nil {
		return nil, fmt.Errorf("content engine: %w", err)
	}
	engine := algorithms.NewContentRecommender(titles, cfg.Recommend.Content(), logging.Component("content"))
	if err := ContentRebuilder(engine, cfg, loader)(ctx); err != nil {
		return nil, err
	}
	return engine, nil
}

// ContentRebuilder returns a function that re-reads the content feature
// table and swaps in a new similarity matrix. On failure the previous
// matrix stays live.
func ContentRebuilder(engine *algorithms.ContentRecommender, cfg *config.Config, loader *dataset.Loader) func(context.Context) error {
	return func(ctx context.Context) error {
		features, err := loader.LoadFeatureTable(ctx, cfg.Data.ContentFeatures, TitleIDColumn)
		if err != nil {
			return fmt.Errorf("content engine: %w", err)
		}
		if err := engine.CreateSimMat(features, cfg.Recommend.Metric()); err != nil {
			return fmt.Errorf("content engine: %w", err)
		}
		return nil
	}
}

// BuildCollaborative loads the collaborative tables. The title x user matrix
// is derived from interactions when no matrix file is configured.
func BuildCollaborative(ctx context.Context, cfg *config.Config, loader *dataset.Loader) (*algorithms.CollaborativeRecommender, error) {
	var (
		data algorithms.CollaborativeData
		err  error
	)
	if data.Titles, err = loader.LoadTitles(ctx, cfg.Data.Titles); err != nil {
		return nil, fmt.Errorf("collaborative engine: %w", err)
	}
	if data.TitleGenres, err = loader.LoadFeatureTable(ctx, cfg.Data.TitleGenres, TitleIDColumn); err != nil {
		return nil, fmt.Errorf("collaborative engine: %w", err)
	}
	if data.UserGenres, err = loader.LoadFeatureTable(ctx, cfg.Data.UserGenres, UserIDColumn); err != nil {
		return nil, fmt.Errorf("collaborative engine: %w", err)
	}
	if data.Interactions, err = loader.LoadInteractions(ctx, cfg.Data.Interactions); err != nil {
		return nil, fmt.Errorf("collaborative engine: %w", err)
	}
	if cfg.Data.UserTitleCounts != "" {
		if data.UserTitleCounts, err = loader.LoadUserTitleCounts(ctx, cfg.Data.UserTitleCounts); err != nil {
			return nil, fmt.Errorf("collaborative engine: %w", err)
		}
	}
	if cfg.Data.TitleUserMatrix != "" {
		if data.TitleUser, err = loader.LoadTitleUserMatrix(ctx, cfg.Data.TitleUserMatrix); err != nil {
			return nil, fmt.Errorf("collaborative engine: %w", err)
		}
	} else {
		data.TitleUser = sparse.FromInteractions(data.Interactions, cfg.Recommend.BinaryInteractions)
	}

	engine, err := algorithms.NewCollaborativeRecommender(data, cfg.Recommend.Collaborative(), logging.Component("collaborative"))
	if err != nil {
		return nil, fmt.Errorf("collaborative engine: %w", err)
	}
	return engine, nil
}

// BuildImage loads the character table and embeddings.
func BuildImage(ctx context.Context, cfg *config.Config, loader *dataset.Loader) (*algorithms.ImageRecommender, error) {
	var (
		data algorithms.ImageData
		err  error
	)
	if data.Characters, err = loader.LoadCharacters(ctx, cfg.Data.Characters); err != nil {
		return nil, fmt.Errorf("image engine: %w", err)
	}
	if data.Embeddings, err = loader.LoadFeatureTable(ctx, cfg.Data.CharacterEmbeddings, CharacterIDColumn); err != nil {
		return nil, fmt.Errorf("image engine: %w", err)
	}
	engine, err := algorithms.NewImageRecommender(data, logging.Component("image"))
	if err != nil {
		return nil, fmt.Errorf("image engine: %w", err)
	}
	return engine, nil
}
