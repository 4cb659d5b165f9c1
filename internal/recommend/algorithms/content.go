// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package algorithms

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/otaku/internal/metrics"
	"github.com/tomtom215/otaku/internal/recommend"
	"github.com/tomtom215/otaku/internal/recommend/similarity"
)

// ContentConfig contains configuration for the content engine.
type ContentConfig struct {
	// PopularityThreshold is the popularity a title must exceed to be
	// eligible when only popular titles are requested.
	PopularityThreshold int
}

// DefaultContentConfig returns default content engine configuration.
func DefaultContentConfig() ContentConfig {
	return ContentConfig{
		PopularityThreshold: 10000,
	}
}

// Recommendation is a ranked title with an optional display name.
type Recommendation struct {
	ID    int     `json:"id"`
	Score float64 `json:"score"`
	Name  string  `json:"name,omitempty"`
}

// ContentRecommender ranks titles by content-feature similarity.
//
// The similarity matrix is attached with CreateSimMat and may be rebuilt at
// any time; each query works against the matrix it loaded at entry.
type ContentRecommender struct {
	BaseAlgorithm
	config ContentConfig

	titles   map[int]recommend.Title
	universe recommend.IDSet
	popular  recommend.IDSet

	matrix atomic.Pointer[similarity.Matrix]
}

// NewContentRecommender creates a content engine over the title table.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewContentRecommender(titles []recommend.Title, cfg ContentConfig, logger zerolog.Logger) *ContentRecommender {
	if cfg.PopularityThreshold < 0 {
		cfg.PopularityThreshold = DefaultContentConfig().PopularityThreshold
	}

	c := &ContentRecommender{
		config:   cfg,
		titles:   make(map[int]recommend.Title, len(titles)),
		universe: make(recommend.IDSet, len(titles)),
		popular:  make(recommend.IDSet),
	}
	c.init(EngineContent, logger)

	for i := range titles {
		t := titles[i]
		c.titles[t.ID] = t
		c.universe[t.ID] = struct{}{}
		if t.Popularity > cfg.PopularityThreshold {
			c.popular[t.ID] = struct{}{}
		}
	}

	c.logger.Info().
		Int("titles", len(c.titles)).
		Int("popular", len(c.popular)).
		Int("popularity_threshold", cfg.PopularityThreshold).
		Msg("content engine created")

	return c
}

// CreateSimMat builds a similarity matrix over features under metric and
// atomically replaces the current one. Feature rows for ids outside the
// title table are dropped.
func (c *ContentRecommender) CreateSimMat(features *recommend.FeatureTable, metric similarity.Metric) error {
	start := time.Now()

	m, err := similarity.Build(features, metric, c.universe)
	if err != nil {
		return fmt.Errorf("build content similarity: %w", err)
	}

	previous := c.matrix.Swap(m)
	c.markBuilt()
	duration := time.Since(start)
	metrics.RecordSimilarityBuild(c.name, metric.String(), m.Len(), duration)
	if previous != nil {
		metrics.SimilarityRebuilds.WithLabelValues(c.name).Inc()
	}

	c.logger.Info().
		Str("metric", metric.String()).
		Int("ids", m.Len()).
		Int("dropped", m.Dropped()).
		Dur("duration", duration).
		Bool("rebuild", previous != nil).
		Msg("content similarity matrix built")

	return nil
}

// Matrix returns the live similarity matrix, or nil before CreateSimMat.
func (c *ContentRecommender) Matrix() *similarity.Matrix {
	return c.matrix.Load()
}

// Popular returns the ids whose popularity exceeds the configured threshold.
func (c *ContentRecommender) Popular() recommend.IDSet {
	return c.popular
}

// Title looks up a title by id.
func (c *ContentRecommender) Title(id int) (recommend.Title, bool) {
	t, ok := c.titles[id]
	return t, ok
}

// Status reports the live matrix.
func (c *ContentRecommender) Status() Status {
	s := Status{Name: c.name, Version: c.Version(), BuiltAt: c.LastBuiltAt()}
	if m := c.matrix.Load(); m != nil {
		s.Ready = true
		s.Indexed = m.Len()
		s.Metric = m.Metric().String()
	}
	return s
}

// Recommend returns the topN titles most similar to titleID, nearest first.
// With onlyPopular the candidates are limited to popular titles; with
// withNames each result carries the title's display name.
func (c *ContentRecommender) Recommend(titleID, topN int, onlyPopular, withNames bool) (recs []Recommendation, err error) {
	start := time.Now()
	defer func() { c.observe("recommend", start, len(recs), err) }()

	m := c.matrix.Load()
	if m == nil {
		return nil, recommend.ErrNotReady
	}

	opts := similarity.QueryOptions{}
	if onlyPopular {
		opts.RestrictTo = c.popular
	}

	ranked, err := m.Query(titleID, topN, opts)
	if err != nil {
		return nil, err
	}

	recs = make([]Recommendation, len(ranked))
	for i, r := range ranked {
		recs[i] = Recommendation{ID: r.ID, Score: r.Score}
		if withNames {
			if t, ok := c.titles[r.ID]; ok {
				recs[i].Name = t.DisplayName()
			}
		}
	}
	return recs, nil
}
