// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/otaku/config.yaml",
	"/etc/otaku/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// envPrefix is an optional prefix accepted on every mapped variable.
const envPrefix = "otaku_"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8650,
			Timeout:           30 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Database: DatabaseConfig{
			MaxMemory: "1GB",
		},
		Recommend: RecommendConfig{
			ContentMetric:       "cosine",
			PopularityThreshold: 10000,
			Neighbors:           20,
			MinTitles:           50,
			SimilarUsers:        10,
			UserMatrixCache:     4,
			DefaultTopN:         20,
			MaxTopN:             100,
		},
		Evaluation: EvaluationConfig{
			RelevantThreshold: 70,
			NumPush:           10,
		},
	}
}

// LoadWithKoanf loads configuration with koanf v2: defaults, then the YAML
// file when one exists, then mapped environment variables.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// sliceConfigPaths are split on commas when they arrive as strings.
var sliceConfigPaths = []string{
	"server.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		raw, ok := k.Get(path).(string)
		if !ok || raw == "" {
			continue
		}
		var parts []string
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) == 0 {
			continue
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

var envMappings = map[string]string{
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"cors_origins":          "server.cors_origins",
	"rate_limit_requests":   "server.rate_limit_requests",
	"rate_limit_window":     "server.rate_limit_window",
	"disable_rate_limit":    "server.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",

	"data_titles":               "data.titles",
	"data_content_features":     "data.content_features",
	"data_title_genres":         "data.title_genres",
	"data_user_genres":          "data.user_genres",
	"data_interactions":         "data.interactions",
	"data_user_title_counts":    "data.user_title_counts",
	"data_title_user_matrix":    "data.title_user_matrix",
	"data_characters":           "data.characters",
	"data_character_embeddings": "data.character_embeddings",

	"recommend_content_metric":       "recommend.content_metric",
	"recommend_popularity_threshold": "recommend.popularity_threshold",
	"recommend_neighbors":            "recommend.neighbors",
	"recommend_min_titles":           "recommend.min_titles",
	"recommend_similar_users":        "recommend.similar_users",
	"recommend_user_matrix_cache":    "recommend.user_matrix_cache",
	"recommend_default_top_n":        "recommend.default_top_n",
	"recommend_max_top_n":            "recommend.max_top_n",
	"recommend_rebuild_interval":     "recommend.rebuild_interval",
	"recommend_binary_interactions":  "recommend.binary_interactions",

	"eval_train_file":         "evaluation.train_file",
	"eval_test_file":          "evaluation.test_file",
	"eval_relevant_threshold": "evaluation.relevant_threshold",
	"eval_num_push":           "evaluation.num_push",
}

// envTransformFunc maps an environment variable name to a koanf path.
// Unmapped variables return "" and are skipped.
//
//   - HTTP_PORT -> server.port
//   - OTAKU_HTTP_PORT -> server.port
//   - RECOMMEND_POPULARITY_THRESHOLD -> recommend.popularity_threshold
func envTransformFunc(key string) string {
	key = strings.TrimPrefix(strings.ToLower(key), envPrefix)
	return envMappings[key]
}
