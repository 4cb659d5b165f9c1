// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package config

import (
	"errors"
	"fmt"

	"github.com/tomtom215/otaku/internal/validation"
)

// Validate checks struct tags, then the rules tags cannot express.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	return c.validateEvaluation()
}

func (c *Config) validateServer() error {
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %v", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive, got %v", c.Server.ShutdownTimeout)
	}
	if !c.Server.RateLimitDisabled && c.Server.RateLimitRequests > 0 && c.Server.RateLimitWindow <= 0 {
		return errors.New("server.rate_limit_window must be positive when rate limiting is enabled")
	}
	if c.Recommend.RebuildInterval < 0 {
		return fmt.Errorf("recommend.rebuild_interval must not be negative, got %v", c.Recommend.RebuildInterval)
	}
	return nil
}

func (c *Config) validateEvaluation() error {
	train, test := c.Evaluation.TrainFile != "", c.Evaluation.TestFile != ""
	if train != test {
		return errors.New("evaluation.train_file and evaluation.test_file must be set together")
	}
	return nil
}
