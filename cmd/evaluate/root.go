// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/otaku/internal/config"
	"github.com/tomtom215/otaku/internal/dataset"
	"github.com/tomtom215/otaku/internal/logging"
	"github.com/tomtom215/otaku/internal/recommend/similarity"
)

// options holds the command-line flags.
type options struct {
	configPath string
	metric     string
	userID     int
	hasUser    bool
	neighbors  []int
	userMetric string
	withRows   bool
	compact    bool
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Offline evaluation of the Otaku recommendation engines",
		Long: `Evaluate builds the content engine from the configured title and
feature tables, then scores it against a held-out interaction table:

  - RMSE of similarity-weighted rating predictions (cosine only)
  - per-user precision and recall of top-N recommendations

With --user it also builds the collaborative engine and reports how much of
each neighbor's history the user shares.

Examples:
  # Evaluate with the configured metric
  evaluate

  # Compare another metric without editing the config
  evaluate --metric euclidean

  # Overlap check against the user's 10 most similar users
  evaluate --user 42

  # Overlap check against explicit neighbors
  evaluate --user 42 --neighbors 7,19,23`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.hasUser = cmd.Flags().Changed("user")
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default: CONFIG_PATH or ./config.yaml)")
	flags.StringVarP(&opts.metric, "metric", "m", "", "content metric override (cosine, euclidean, manhattan)")
	flags.IntVarP(&opts.userID, "user", "u", 0, "user id for the collaborative overlap check")
	flags.IntSliceVar(&opts.neighbors, "neighbors", nil, "neighbor user ids (default: the user's most similar users)")
	flags.StringVar(&opts.userMetric, "user-metric", "cosine", "metric used to find neighbors when --neighbors is not given")
	flags.BoolVar(&opts.withRows, "rows", false, "include every predicted rating in the report")
	flags.BoolVar(&opts.compact, "compact", false, "write the report without indentation")

	return cmd
}

func run(cmd *cobra.Command, opts options) error {
	if opts.configPath != "" {
		if err := os.Setenv(config.ConfigPathEnvVar, opts.configPath); err != nil {
			return err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.metric != "" {
		if _, err := similarity.ParseMetric(opts.metric); err != nil {
			return err
		}
		cfg.Recommend.ContentMetric = opts.metric
	}

	// Logs go to stderr so stdout carries only the report.
	logCfg := cfg.Logging.ToLogging()
	logCfg.Output = cmd.ErrOrStderr()
	logging.Init(logCfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithRunID(ctx, logging.NewRunID())

	loader, err := dataset.Open(dataset.Options{
		MaxMemory: cfg.Database.MaxMemory,
		Threads:   cfg.Database.Threads,
	}, logging.Component("dataset"))
	if err != nil {
		return err
	}
	defer func() {
		if err := loader.Close(); err != nil {
			logging.Ctx(ctx).Error().Err(err).Msg("Error closing dataset loader")
		}
	}()

	report, err := evaluate(ctx, cfg, opts, loader)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("Evaluation failed")
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	if !opts.compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(report)
}
