// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/tomtom215/otaku/internal/recommend"
	"github.com/tomtom215/otaku/internal/recommend/sparse"
)

// Table names used in logs and metrics.
const (
	TableTitles          = "titles"
	TableInteractions    = "interactions"
	TableUserTitleCounts = "user_title_counts"
	TableTitleUser       = "title_user_matrix"
	TableCharacters      = "characters"
)

// LoadTitles reads the title table. Rows without a title_id are skipped.
func (l *Loader) LoadTitles(ctx context.Context, path string) ([]recommend.Title, error) {
	var titles []recommend.Title
	err := l.load(ctx, TableTitles, path,
		[]string{"title_id", "title_romaji", "popularity", "favorites"},
		func(s *schema) (string, error) {
			return strings.Join([]string{
				"CAST(" + s.col("title_id") + " AS BIGINT)",
				"CAST(" + s.col("title_romaji") + " AS VARCHAR)",
				s.optional("title_english", "VARCHAR"),
				"CAST(" + s.col("popularity") + " AS BIGINT)",
				"CAST(" + s.col("favorites") + " AS BIGINT)",
				s.optional("genres", "VARCHAR"),
			}, ", "), nil
		},
		func(rows *sql.Rows) error {
			var (
				id                  sql.NullInt64
				romaji, english     sql.NullString
				popularity, favored sql.NullInt64
				genres              sql.NullString
			)
			if err := rows.Scan(&id, &romaji, &english, &popularity, &favored, &genres); err != nil {
				return err
			}
			if !id.Valid {
				return nil
			}
			titles = append(titles, recommend.Title{
				ID:         int(id.Int64),
				Romaji:     romaji.String,
				English:    english.String,
				Popularity: int(popularity.Int64),
				Favorites:  int(favored.Int64),
				Genres:     ParseGenres(genres.String),
			})
			return nil
		})
	if err != nil {
		return nil, err
	}
	return titles, nil
}

// LoadFeatureTable reads a wide numeric table keyed by idColumn. Every other
// column becomes a feature in file order; NULL cells read as 0.
func (l *Loader) LoadFeatureTable(ctx context.Context, path, idColumn string) (*recommend.FeatureTable, error) {
	table := &recommend.FeatureTable{}
	var dest []any
	var values []float64

	err := l.load(ctx, "features:"+idColumn, path, []string{idColumn},
		func(s *schema) (string, error) {
			parts := []string{"CAST(" + s.col(idColumn) + " AS BIGINT)"}
			for _, name := range s.names {
				if strings.EqualFold(name, idColumn) || strings.HasPrefix(name, "Unnamed:") {
					continue
				}
				table.Columns = append(table.Columns, name)
				parts = append(parts, "COALESCE(CAST("+quoteIdent(name)+" AS DOUBLE), 0)")
			}
			if len(table.Columns) == 0 {
				return "", fmt.Errorf("%w: %s: no feature columns besides %q",
					recommend.ErrSchemaMismatch, path, idColumn)
			}
			values = make([]float64, len(table.Columns))
			dest = make([]any, len(table.Columns)+1)
			for i := range values {
				dest[i+1] = &values[i]
			}
			return strings.Join(parts, ", "), nil
		},
		func(rows *sql.Rows) error {
			var id sql.NullInt64
			dest[0] = &id
			if err := rows.Scan(dest...); err != nil {
				return err
			}
			if !id.Valid {
				return nil
			}
			table.IDs = append(table.IDs, int(id.Int64))
			table.Rows = append(table.Rows, append([]float64(nil), values...))
			return nil
		})
	if err != nil {
		return nil, err
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// LoadInteractions reads a (user, title, score) log. A missing score column
// reads as 0. Duplicate rows are kept.
func (l *Loader) LoadInteractions(ctx context.Context, path string) ([]recommend.Interaction, error) {
	var out []recommend.Interaction
	err := l.load(ctx, TableInteractions, path, []string{"user_id", "title_id"},
		func(s *schema) (string, error) {
			return "CAST(" + s.col("user_id") + " AS BIGINT), " +
				"CAST(" + s.col("title_id") + " AS BIGINT), " +
				"COALESCE(" + s.optional("score", "DOUBLE") + ", 0)", nil
		},
		func(rows *sql.Rows) error {
			var user, title sql.NullInt64
			var score float64
			if err := rows.Scan(&user, &title, &score); err != nil {
				return err
			}
			if !user.Valid || !title.Valid {
				return nil
			}
			out = append(out, recommend.Interaction{UserID: int(user.Int64), TitleID: int(title.Int64), Score: score})
			return nil
		})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LoadUserTitleCounts reads the per-user history-size summary.
func (l *Loader) LoadUserTitleCounts(ctx context.Context, path string) (map[int]int, error) {
	out := make(map[int]int)
	err := l.load(ctx, TableUserTitleCounts, path, []string{"user_id", "mlist_count"},
		func(s *schema) (string, error) {
			return "CAST(" + s.col("user_id") + " AS BIGINT), " +
				"COALESCE(CAST(" + s.col("mlist_count") + " AS BIGINT), 0)", nil
		},
		func(rows *sql.Rows) error {
			var user sql.NullInt64
			var count int64
			if err := rows.Scan(&user, &count); err != nil {
				return err
			}
			if user.Valid {
				out[int(user.Int64)] = int(count)
			}
			return nil
		})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LoadTitleUserMatrix reads (title, user, weight) triplets into a sparse
// matrix. A missing weight column reads as 1.
func (l *Loader) LoadTitleUserMatrix(ctx context.Context, path string) (*sparse.Matrix, error) {
	var entries []sparse.Entry
	err := l.load(ctx, TableTitleUser, path, []string{"title_id", "user_id"},
		func(s *schema) (string, error) {
			return "CAST(" + s.col("title_id") + " AS BIGINT), " +
				"CAST(" + s.col("user_id") + " AS BIGINT), " +
				"COALESCE(" + s.optional("weight", "DOUBLE") + ", 1)", nil
		},
		func(rows *sql.Rows) error {
			var title, user sql.NullInt64
			var weight float64
			if err := rows.Scan(&title, &user, &weight); err != nil {
				return err
			}
			if title.Valid && user.Valid {
				entries = append(entries, sparse.Entry{TitleID: int(title.Int64), UserID: int(user.Int64), Weight: weight})
			}
			return nil
		})
	if err != nil {
		return nil, err
	}
	return sparse.New(entries), nil
}

// LoadCharacters reads the character-to-title table.
func (l *Loader) LoadCharacters(ctx context.Context, path string) ([]recommend.Character, error) {
	var out []recommend.Character
	err := l.load(ctx, TableCharacters, path, []string{"character_id", "title_id", "character_name"},
		func(s *schema) (string, error) {
			return "CAST(" + s.col("character_id") + " AS BIGINT), " +
				"CAST(" + s.col("title_id") + " AS BIGINT), " +
				"CAST(" + s.col("character_name") + " AS VARCHAR), " +
				s.optional("title_romaji", "VARCHAR"), nil
		},
		func(rows *sql.Rows) error {
			var id, title sql.NullInt64
			var name, titleName sql.NullString
			if err := rows.Scan(&id, &title, &name, &titleName); err != nil {
				return err
			}
			if !id.Valid || !title.Valid {
				return nil
			}
			out = append(out, recommend.Character{
				ID:        int(id.Int64),
				TitleID:   int(title.Int64),
				Name:      name.String,
				TitleName: titleName.String,
			})
			return nil
		})
	if err != nil {
		return nil, err
	}
	return out, nil
}
