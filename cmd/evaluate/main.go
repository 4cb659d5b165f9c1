// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

// Command evaluate runs the offline evaluation of the content engine and,
// for a single user, the collaborative neighbor overlap check. The report
// is written to stdout as one JSON document.
//
//	CONFIG_PATH=config.yaml evaluate --metric cosine --user 42
//
// The train and test interaction tables come from evaluation.train_file and
// evaluation.test_file. RMSE is only defined for the cosine metric; under any
// other metric the rating section is skipped with a warning.
package main

import (
	"os"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
