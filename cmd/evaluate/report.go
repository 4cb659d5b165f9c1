// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/otaku/internal/config"
	"github.com/tomtom215/otaku/internal/dataset"
	"github.com/tomtom215/otaku/internal/engine"
	"github.com/tomtom215/otaku/internal/logging"
	"github.com/tomtom215/otaku/internal/recommend"
	"github.com/tomtom215/otaku/internal/recommend/algorithms"
	"github.com/tomtom215/otaku/internal/recommend/similarity"
)

// Report is the JSON document written by the command.
type Report struct {
	RunID     string    `json:"run_id"`
	Generated time.Time `json:"generated_at"`
	Metric    string    `json:"metric"`
	Titles    int       `json:"titles_indexed"`
	TrainRows int       `json:"train_rows"`
	TestRows  int       `json:"test_rows"`

	Rating        *algorithms.RatingReport  `json:"rating,omitempty"`
	RatingSkipped string                    `json:"rating_skipped,omitempty"`
	Ranking       *algorithms.RankingReport `json:"ranking"`
	Overlap       *OverlapSection           `json:"overlap,omitempty"`
}

// OverlapSection is the collaborative self-consistency check for one user.
type OverlapSection struct {
	UserID     int                       `json:"user_id"`
	UserTitles int                       `json:"user_titles"`
	Neighbors  []int                     `json:"neighbors"`
	Report     *algorithms.OverlapReport `json:"report"`
}

var errNoEvaluationData = errors.New("evaluation.train_file and evaluation.test_file are required")

func evaluate(ctx context.Context, cfg *config.Config, opts options, loader *dataset.Loader) (*Report, error) {
	log := logging.Ctx(ctx)

	if cfg.Evaluation.TrainFile == "" || cfg.Evaluation.TestFile == "" {
		return nil, errNoEvaluationData
	}
	if !cfg.Data.ContentEnabled() {
		return nil, errors.New("data.titles and data.content_features are required")
	}

	content, err := engine.BuildContent(ctx, cfg, loader)
	if err != nil {
		return nil, err
	}
	train, err := loader.LoadInteractions(ctx, cfg.Evaluation.TrainFile)
	if err != nil {
		return nil, fmt.Errorf("train interactions: %w", err)
	}
	test, err := loader.LoadInteractions(ctx, cfg.Evaluation.TestFile)
	if err != nil {
		return nil, fmt.Errorf("test interactions: %w", err)
	}

	report := &Report{
		RunID:     logging.RunID(ctx),
		Generated: time.Now().UTC(),
		Metric:    cfg.Recommend.Metric().String(),
		Titles:    content.Status().Indexed,
		TrainRows: len(train),
		TestRows:  len(test),
	}

	rating, err := content.PredictRating(train, test)
	switch {
	case errors.Is(err, recommend.ErrUnsupportedMetric):
		report.RatingSkipped = err.Error()
		log.Warn().Str("metric", report.Metric).Msg("Rating prediction requires the cosine metric, skipping RMSE")
	case err != nil:
		return nil, fmt.Errorf("predict ratings: %w", err)
	default:
		if !opts.withRows {
			rating.Rows = nil
		}
		report.Rating = rating
		log.Info().Float64("rmse", rating.RMSE).Int("users", rating.Users).Msg("Rating prediction evaluated")
	}

	report.Ranking, err = content.EvaluateRanking(train, test, cfg.Evaluation.RelevantThreshold, cfg.Evaluation.NumPush)
	if err != nil {
		return nil, fmt.Errorf("evaluate ranking: %w", err)
	}
	log.Info().
		Float64("precision", report.Ranking.Precision).
		Float64("recall", report.Ranking.Recall).
		Int("skipped_precision", report.Ranking.SkippedPrecision).
		Int("skipped_recall", report.Ranking.SkippedRecall).
		Msg("Ranking evaluated")

	if opts.hasUser {
		if report.Overlap, err = evaluateOverlap(ctx, cfg, opts, loader); err != nil {
			return nil, err
		}
	}

	return report, nil
}

func evaluateOverlap(ctx context.Context, cfg *config.Config, opts options, loader *dataset.Loader) (*OverlapSection, error) {
	if !cfg.Data.CollaborativeEnabled() {
		return nil, errors.New("--user requires data.titles, data.title_genres, data.user_genres and data.interactions")
	}
	collaborative, err := engine.BuildCollaborative(ctx, cfg, loader)
	if err != nil {
		return nil, err
	}

	neighbors := opts.neighbors
	if len(neighbors) == 0 {
		metric, err := similarity.ParseMetric(opts.userMetric)
		if err != nil {
			return nil, err
		}
		similar, err := collaborative.SimilarUsersByID(opts.userID, metric, 0)
		if err != nil {
			return nil, fmt.Errorf("similar users for %d: %w", opts.userID, err)
		}
		neighbors = make([]int, len(similar))
		for i, s := range similar {
			neighbors[i] = s.ID
		}
	}

	overlap := collaborative.EvaluateOverlap(neighbors, opts.userID)
	history := len(collaborative.UserTitles(opts.userID))
	logging.Ctx(ctx).Info().
		Int("user_id", opts.userID).
		Int("user_titles", history).
		Int("neighbors", len(neighbors)).
		Float64("mean_overlap", overlap.Mean).
		Msg("Neighbor overlap evaluated")

	return &OverlapSection{
		UserID:     opts.userID,
		UserTitles: history,
		Neighbors:  neighbors,
		Report:     overlap,
	}, nil
}
