// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/otaku/internal/logging"
	"github.com/tomtom215/otaku/internal/recommend/algorithms"
	"github.com/tomtom215/otaku/internal/recommend/similarity"
)

// Config is the complete Otaku configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
	Database   DatabaseConfig   `koanf:"database"`
	Data       DataConfig       `koanf:"data"`
	Recommend  RecommendConfig  `koanf:"recommend"`
	Evaluation EvaluationConfig `koanf:"evaluation"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host              string        `koanf:"host" validate:"required"`
	Port              int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout           time.Duration `koanf:"timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"min=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is trace, debug, info, warn or error. Default: info
	Level string `koanf:"level" validate:"oneof=trace debug info warn warning error"`

	// Format is json or console. Default: json
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller adds file:line to every line. Default: false
	Caller bool `koanf:"caller"`
}

// ToLogging converts the section to a logging.Config.
func (l LoggingConfig) ToLogging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = l.Level
	cfg.Format = l.Format
	cfg.Caller = l.Caller
	return cfg
}

// DatabaseConfig tunes the in-memory DuckDB used to read input tables.
type DatabaseConfig struct {
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads" validate:"min=0"` // 0 = DuckDB default
}

// DataConfig lists input table paths. Empty paths disable the engines
// that need them.
type DataConfig struct {
	Titles              string `koanf:"titles"`
	ContentFeatures     string `koanf:"content_features"`
	TitleGenres         string `koanf:"title_genres"`
	UserGenres          string `koanf:"user_genres"`
	Interactions        string `koanf:"interactions"`
	UserTitleCounts     string `koanf:"user_title_counts"`
	TitleUserMatrix     string `koanf:"title_user_matrix"`
	Characters          string `koanf:"characters"`
	CharacterEmbeddings string `koanf:"character_embeddings"`
}

// ContentEnabled reports whether the content engine has its inputs.
func (d DataConfig) ContentEnabled() bool {
	return d.Titles != "" && d.ContentFeatures != ""
}

// CollaborativeEnabled reports whether the collaborative engine has its inputs.
// The title x user matrix is derived from interactions when not given.
func (d DataConfig) CollaborativeEnabled() bool {
	return d.Titles != "" && d.TitleGenres != "" && d.UserGenres != "" && d.Interactions != ""
}

// ImageEnabled reports whether the image engine has its inputs.
func (d DataConfig) ImageEnabled() bool {
	return d.Characters != "" && d.CharacterEmbeddings != ""
}

// RecommendConfig holds engine settings.
type RecommendConfig struct {
	ContentMetric       string        `koanf:"content_metric" validate:"required,metric"`
	PopularityThreshold int           `koanf:"popularity_threshold" validate:"min=0"`
	Neighbors           int           `koanf:"neighbors" validate:"min=1"`
	MinTitles           int           `koanf:"min_titles" validate:"min=0"`
	SimilarUsers        int           `koanf:"similar_users" validate:"min=1"`
	UserMatrixCache     int           `koanf:"user_matrix_cache" validate:"min=1"`
	DefaultTopN         int           `koanf:"default_top_n" validate:"min=1,ltefield=MaxTopN"`
	MaxTopN             int           `koanf:"max_top_n" validate:"min=1"`
	RebuildInterval     time.Duration `koanf:"rebuild_interval"` // 0 disables periodic rebuilds
	BinaryInteractions  bool          `koanf:"binary_interactions"`
}

// Metric returns the parsed content metric. Validate guarantees it parses.
func (r RecommendConfig) Metric() similarity.Metric {
	m, err := similarity.ParseMetric(r.ContentMetric)
	if err != nil {
		return similarity.MetricCosine
	}
	return m
}

// Content returns the content engine configuration.
func (r RecommendConfig) Content() algorithms.ContentConfig {
	return algorithms.ContentConfig{PopularityThreshold: r.PopularityThreshold}
}

// Collaborative returns the collaborative engine configuration.
func (r RecommendConfig) Collaborative() algorithms.CollaborativeConfig {
	return algorithms.CollaborativeConfig{
		Neighbors:       r.Neighbors,
		MinTitles:       r.MinTitles,
		SimilarUsers:    r.SimilarUsers,
		UserMatrixCache: r.UserMatrixCache,
	}
}

// EvaluationConfig holds offline evaluation settings.
type EvaluationConfig struct {
	TrainFile         string  `koanf:"train_file"`
	TestFile          string  `koanf:"test_file"`
	RelevantThreshold float64 `koanf:"relevant_threshold" validate:"min=0"`
	NumPush           int     `koanf:"num_push" validate:"min=1"`
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
