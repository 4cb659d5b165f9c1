// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/rs/zerolog"

	"github.com/tomtom215/otaku/internal/metrics"
	"github.com/tomtom215/otaku/internal/recommend"
)

// DefaultQueryTimeout bounds a single table read.
const DefaultQueryTimeout = 5 * time.Minute

// Options tunes the DuckDB instance.
type Options struct {
	MaxMemory    string
	Threads      int
	QueryTimeout time.Duration
}

// Loader reads tables from CSV or Parquet files.
type Loader struct {
	conn    *sql.DB
	logger  zerolog.Logger
	timeout time.Duration
}

// Open starts an in-memory DuckDB.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(opts Options, logger zerolog.Logger) (*Loader, error) {
	params := url.Values{}
	if opts.Threads > 0 {
		params.Set("threads", strconv.Itoa(opts.Threads))
	}
	if opts.MaxMemory != "" {
		params.Set("max_memory", opts.MaxMemory)
	}
	dsn := ":memory:"
	if len(params) > 0 {
		dsn += "?" + params.Encode()
	}

	conn, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to connect to duckdb: %w", err)
	}

	timeout := opts.QueryTimeout
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	return &Loader{conn: conn, logger: logger, timeout: timeout}, nil
}

// Close releases the DuckDB instance.
func (l *Loader) Close() error {
	return l.conn.Close()
}

// schema is the column set of one source file. Lookups are case-insensitive
// like DuckDB identifiers.
type schema struct {
	table string
	names []string
	index map[string]string
}

func newSchema(table string, names []string) *schema {
	s := &schema{table: table, names: names, index: make(map[string]string, len(names))}
	for _, n := range names {
		s.index[strings.ToLower(n)] = n
	}
	return s
}

func (s *schema) has(name string) bool {
	_, ok := s.index[strings.ToLower(name)]
	return ok
}

func (s *schema) require(names ...string) error {
	for _, n := range names {
		if !s.has(n) {
			return fmt.Errorf("%w: %s: missing column %q", recommend.ErrSchemaMismatch, s.table, n)
		}
	}
	return nil
}

// col returns the quoted identifier of a column known to exist.
func (s *schema) col(name string) string {
	return quoteIdent(s.index[strings.ToLower(name)])
}

// optional returns a cast of the column, or a typed NULL when it is absent.
func (s *schema) optional(name, sqlType string) string {
	if !s.has(name) {
		return "CAST(NULL AS " + sqlType + ")"
	}
	return "CAST(" + s.col(name) + " AS " + sqlType + ")"
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// sourceExpr returns the table function reading path.
func sourceExpr(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("empty table path")
	}
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		return "read_parquet(" + quoteLiteral(path) + ")", nil
	}
	return "read_csv_auto(" + quoteLiteral(path) + ", header = true)", nil
}

func (l *Loader) describe(ctx context.Context, table, src string) (*schema, error) {
	rows, err := l.conn.QueryContext(ctx, "SELECT * FROM "+src+" LIMIT 0")
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read %s columns: %w", table, err)
	}
	return newSchema(table, names), nil
}

// load runs one read: describe the file, check required columns, build the
// select list, then hand every row to scan. Timing and row counts are
// recorded per table.
func (l *Loader) load(
	ctx context.Context,
	table, path string,
	required []string,
	selectList func(s *schema) (string, error),
	scan func(rows *sql.Rows) error,
) (err error) {
	start := time.Now()
	count := 0
	defer func() {
		metrics.RecordDatasetLoad(table, count, time.Since(start), err)
		if err != nil {
			l.logger.Error().Err(err).Str("table", table).Str("path", path).Msg("Table load failed")
			return
		}
		l.logger.Info().
			Str("table", table).
			Str("path", path).
			Int("rows", count).
			Dur("duration", time.Since(start)).
			Msg("Table loaded")
	}()

	src, err := sourceExpr(path)
	if err != nil {
		return fmt.Errorf("%s: %w", table, err)
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	s, err := l.describe(ctx, table, src)
	if err != nil {
		return err
	}
	if err := s.require(required...); err != nil {
		return err
	}
	list, err := selectList(s)
	if err != nil {
		return err
	}

	rows, err := l.conn.QueryContext(ctx, "SELECT "+list+" FROM "+src)
	if err != nil {
		return fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("scan %s row %d: %w", table, count+1, err)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate %s: %w", table, err)
	}
	return nil
}
