// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

/*
Package dataset reads Otaku's input tables through an in-memory DuckDB.

Files ending in .parquet are read with read_parquet, everything else with
read_csv_auto. Each loader selects the columns it needs by name, casts
them, and fails with recommend.ErrSchemaMismatch when a required column is
absent:

	loader, err := dataset.Open(dataset.Options{MaxMemory: "1GB"}, logging.Component("dataset"))
	if err != nil {
	    return err
	}
	defer loader.Close()

	titles, err := loader.LoadTitles(ctx, cfg.Data.Titles)
	features, err := loader.LoadFeatureTable(ctx, cfg.Data.ContentFeatures, "title_id")

Tables and their columns (? marks optional):

	titles              title_id, title_romaji, title_english?, popularity, favorites, genres?
	feature tables      <id column>, then one numeric column per feature
	interactions        user_id, title_id, score?
	user title counts   user_id, mlist_count
	title x user matrix title_id, user_id, weight?
	characters          character_id, title_id, character_name, title_romaji?

Columns whose names start with "Unnamed:" (exported dataframe indexes) are
ignored in feature tables.
*/
package dataset
