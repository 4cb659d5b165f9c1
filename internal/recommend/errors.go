// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package recommend

import "errors"

var (
	// ErrUnknownID is returned when a query id is absent from an index.
	ErrUnknownID = errors.New("unknown id")

	// ErrInvalidMetric is returned for an unrecognized metric name.
	ErrInvalidMetric = errors.New("invalid metric")

	// ErrUnsupportedMetric is returned when an operation is not defined
	// for the metric the engine was built with.
	ErrUnsupportedMetric = errors.New("unsupported metric")

	// ErrSchemaMismatch is returned when an input table is missing a
	// required column, carries duplicate ids or has rows of unequal width.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrInvalidArgument is returned when a query parameter is out of
	// range for the loaded tables, such as a start column past the last
	// genre column.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotReady is returned when an engine is queried before its
	// similarity matrix has been built.
	ErrNotReady = errors.New("similarity matrix not built")
)
