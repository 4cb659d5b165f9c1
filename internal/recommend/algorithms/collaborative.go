// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package algorithms

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"

	"github.com/tomtom215/otaku/internal/cache"
	"github.com/tomtom215/otaku/internal/metrics"
	"github.com/tomtom215/otaku/internal/recommend"
	"github.com/tomtom215/otaku/internal/recommend/similarity"
	"github.com/tomtom215/otaku/internal/recommend/sparse"
)

// CollaborativeConfig contains configuration for the collaborative engine.
type CollaborativeConfig struct {
	// Neighbors is the default k of the title k-NN index.
	Neighbors int

	// MinTitles is the catalog size a user must exceed to be a candidate in
	// SimilarUsersByTitles when the caller passes no explicit minimum.
	MinTitles int

	// SimilarUsers is how many users the user-similarity queries return.
	SimilarUsers int

	// UserMatrixCache bounds how many user x user matrices, one per
	// (metric, start column) pair, are kept between queries.
	UserMatrixCache int
}

// DefaultCollaborativeConfig returns default collaborative engine configuration.
func DefaultCollaborativeConfig() CollaborativeConfig {
	return CollaborativeConfig{
		Neighbors:       sparse.DefaultNeighbors,
		MinTitles:       50,
		SimilarUsers:    10,
		UserMatrixCache: 4,
	}
}

// CollaborativeData holds the tables the collaborative engine is built from.
type CollaborativeData struct {
	// Titles is the title reference table (favorites are used for ranking).
	Titles []recommend.Title

	// TitleGenres is the per-title genre incidence table.
	TitleGenres *recommend.FeatureTable

	// Interactions is the full user-title consumption log.
	Interactions []recommend.Interaction

	// UserTitleCounts is the per-user catalog size. When nil it is derived
	// from Interactions.
	UserTitleCounts map[int]int

	// UserGenres is the per-user genre distribution table.
	UserGenres *recommend.FeatureTable

	// TitleUser is the sparse title x user matrix with its title id index.
	TitleUser *sparse.Matrix
}

// UnreadPolicy selects how RecommendUnread ranks candidate titles.
type UnreadPolicy int

const (
	// ByFrequency ranks by how many neighbor rows contain the title.
	ByFrequency UnreadPolicy = iota
	// ByPopularity ranks by the title's global favorites count.
	ByPopularity
)

// ParseUnreadPolicy maps a policy name to an UnreadPolicy.
func ParseUnreadPolicy(name string) (UnreadPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "frequency", "by_frequency", "refer_others":
		return ByFrequency, nil
	case "popularity", "by_popularity", "refer_popularity":
		return ByPopularity, nil
	default:
		return 0, fmt.Errorf("unknown unread policy %q", name)
	}
}

// String returns the policy name.
func (p UnreadPolicy) String() string {
	if p == ByPopularity {
		return "by_popularity"
	}
	return "by_frequency"
}

// NeighborTitle is a title returned by RecommendByTitleNeighbors.
type NeighborTitle struct {
	TitleID  int     `json:"title_id"`
	Distance float64 `json:"distance"`
}

type userMatrixKey struct {
	metric   similarity.Metric
	startCol int
}

// CollaborativeRecommender recommends from neighbor-user behavior.
//
// Two similarity signals are used: genre-preference distributions between
// users, and a cosine k-NN over the title x user matrix between titles.
type CollaborativeRecommender struct {
	BaseAlgorithm
	config CollaborativeConfig

	favorites   map[int]int
	titleGenres *recommend.FeatureTable
	userGenres  *recommend.FeatureTable
	userIndex   map[int]int
	userCounts  map[int]int

	// userTitles keeps every log row per user; userTitleSet deduplicates.
	userTitles   map[int][]int
	userTitleSet map[int]recommend.IDSet

	knn *sparse.NearestNeighbors

	userMatrices *cache.LRU[userMatrixKey, *similarity.Matrix]
}

// NewCollaborativeRecommender builds the engine and fits the title k-NN
// index. Missing or malformed tables fail construction.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCollaborativeRecommender(data CollaborativeData, cfg CollaborativeConfig, logger zerolog.Logger) (*CollaborativeRecommender, error) {
	defaults := DefaultCollaborativeConfig()
	if cfg.Neighbors <= 0 {
		cfg.Neighbors = defaults.Neighbors
	}
	if cfg.MinTitles < 0 {
		cfg.MinTitles = defaults.MinTitles
	}
	if cfg.SimilarUsers <= 0 {
		cfg.SimilarUsers = defaults.SimilarUsers
	}
	if cfg.UserMatrixCache <= 0 {
		cfg.UserMatrixCache = defaults.UserMatrixCache
	}

	if data.TitleGenres == nil {
		return nil, fmt.Errorf("%w: title genre table is required", recommend.ErrSchemaMismatch)
	}
	if err := data.TitleGenres.Validate(); err != nil {
		return nil, fmt.Errorf("title genre table: %w", err)
	}
	if data.UserGenres == nil {
		return nil, fmt.Errorf("%w: user genre table is required", recommend.ErrSchemaMismatch)
	}
	if err := data.UserGenres.Validate(); err != nil {
		return nil, fmt.Errorf("user genre table: %w", err)
	}
	if data.TitleUser == nil {
		return nil, fmt.Errorf("%w: title x user matrix is required", recommend.ErrSchemaMismatch)
	}

	start := time.Now()
	c := &CollaborativeRecommender{
		config:       cfg,
		favorites:    make(map[int]int, len(data.Titles)),
		titleGenres:  data.TitleGenres,
		userGenres:   data.UserGenres,
		userIndex:    data.UserGenres.Index(),
		userCounts:   data.UserTitleCounts,
		userTitles:   make(map[int][]int),
		userTitleSet: make(map[int]recommend.IDSet),
		userMatrices: cache.NewLRU[userMatrixKey, *similarity.Matrix](cfg.UserMatrixCache),
	}
	c.init(EngineCollaborative, logger)

	for i := range data.Titles {
		c.favorites[data.Titles[i].ID] = data.Titles[i].Favorites
	}
	if c.userCounts == nil {
		c.userCounts = recommend.CountTitlesPerUser(data.Interactions)
	}
	for _, in := range data.Interactions {
		c.userTitles[in.UserID] = append(c.userTitles[in.UserID], in.TitleID)
		set, ok := c.userTitleSet[in.UserID]
		if !ok {
			set = make(recommend.IDSet)
			c.userTitleSet[in.UserID] = set
		}
		set[in.TitleID] = struct{}{}
	}

	c.knn = sparse.Fit(data.TitleUser, cfg.Neighbors)
	c.markBuilt()

	duration := time.Since(start)
	metrics.RecordSimilarityBuild(c.name, "cosine", data.TitleUser.Rows(), duration)
	c.logger.Info().
		Int("titles", data.TitleUser.Rows()).
		Int("users", data.TitleUser.Cols()).
		Int("nnz", data.TitleUser.NNZ()).
		Int("genre_users", len(data.UserGenres.IDs)).
		Int("interactions", len(data.Interactions)).
		Int("k", cfg.Neighbors).
		Dur("duration", duration).
		Msg("collaborative engine built")

	return c, nil
}

// Status reports the fitted k-NN index.
func (c *CollaborativeRecommender) Status() Status {
	return Status{
		Name:    c.name,
		Ready:   true,
		Version: c.Version(),
		BuiltAt: c.LastBuiltAt(),
		Indexed: c.knn.Matrix().Rows(),
		Metric:  "cosine",
	}
}

// UserTitles returns the titles in a user's log, one entry per row.
func (c *CollaborativeRecommender) UserTitles(userID int) []int {
	return c.userTitles[userID]
}

// userMatrix returns the user x user matrix over the genre columns from
// startCol onward, building it on first use. Least recently used matrices
// are dropped once UserMatrixCache of them are held.
func (c *CollaborativeRecommender) userMatrix(metric similarity.Metric, startCol int) (*similarity.Matrix, error) {
	cols := c.userGenres.Columns
	if startCol < 0 || startCol >= len(cols) {
		return nil, fmt.Errorf("%w: start column %d outside [0, %d)", recommend.ErrInvalidArgument, startCol, len(cols))
	}

	key := userMatrixKey{metric: metric, startCol: startCol}
	return c.userMatrices.GetOrAdd(key, func() (*similarity.Matrix, error) {
		sliced := &recommend.FeatureTable{
			IDs:     c.userGenres.IDs,
			Columns: cols[startCol:],
			Rows:    make([][]float64, len(c.userGenres.Rows)),
		}
		for i, row := range c.userGenres.Rows {
			sliced.Rows[i] = row[startCol:]
		}

		start := time.Now()
		m, err := similarity.Build(sliced, metric, nil)
		if err != nil {
			return nil, err
		}
		metrics.RecordSimilarityBuild(c.name+"_users", metric.String(), m.Len(), time.Since(start))
		return m, nil
	})
}

// SimilarUsersByID returns the users closest to userID by genre
// distribution, using the feature columns from startCol onward. Results are
// descending for cosine and ascending for distances; userID is excluded.
func (c *CollaborativeRecommender) SimilarUsersByID(userID int, metric similarity.Metric, startCol int) (users []recommend.Scored, err error) {
	start := time.Now()
	defer func() { c.observe("similar_users_by_id", start, len(users), err) }()

	if !metric.Valid() {
		return nil, fmt.Errorf("%w: %d", recommend.ErrInvalidMetric, int(metric))
	}
	if _, ok := c.userIndex[userID]; !ok {
		return nil, fmt.Errorf("%w: user %d", recommend.ErrUnknownID, userID)
	}

	m, err := c.userMatrix(metric, startCol)
	if err != nil {
		return nil, err
	}
	return m.Query(userID, c.config.SimilarUsers, similarity.QueryOptions{})
}

// SimilarUsersByTitles returns the users whose genre distribution is most
// similar (cosine) to the mean genre vector of titleIDs. Only users whose
// catalog holds more than minTitles titles are candidates; a negative
// minTitles uses the configured default. Title ids without genre rows are
// ignored, and an empty result is returned when none remain.
func (c *CollaborativeRecommender) SimilarUsersByTitles(titleIDs []int, minTitles int) (users []recommend.Scored, err error) {
	start := time.Now()
	defer func() { c.observe("similar_users_by_titles", start, len(users), err) }()

	if minTitles < 0 {
		minTitles = c.config.MinTitles
	}

	// Align the title genre columns with the user genre columns by name.
	positions := make([]int, len(c.userGenres.Columns))
	for i, name := range c.userGenres.Columns {
		p := c.titleGenres.ColumnIndex(name)
		if p < 0 {
			return nil, fmt.Errorf("%w: genre column %q missing from title genre table", recommend.ErrSchemaMismatch, name)
		}
		positions[i] = p
	}

	titleIndex := c.titleGenres.Index()
	profile := make([]float64, len(positions))
	found := 0
	for _, id := range titleIDs {
		row, ok := titleIndex[id]
		if !ok {
			continue
		}
		for i, p := range positions {
			profile[i] += c.titleGenres.Rows[row][p]
		}
		found++
	}
	if found == 0 {
		return []recommend.Scored{}, nil
	}
	floats.Scale(1/float64(found), profile)

	users = make([]recommend.Scored, 0)
	for i, id := range c.userGenres.IDs {
		if c.userCounts[id] <= minTitles {
			continue
		}
		users = append(users, recommend.Scored{
			ID:    id,
			Score: similarity.MetricCosine.Between(c.userGenres.Rows[i], profile),
		})
	}

	recommend.SortScored(users, true)
	if len(users) > c.config.SimilarUsers {
		users = users[:c.config.SimilarUsers]
	}
	return users, nil
}

// RecommendUnread returns up to n titles consumed by the neighbors but not
// by userID. ByFrequency counts neighbor log rows per title; ByPopularity
// orders by favorites and drops titles missing from the title table.
func (c *CollaborativeRecommender) RecommendUnread(n int, neighbors []int, userID int, policy UnreadPolicy) (titles []recommend.Scored, err error) {
	start := time.Now()
	defer func() { c.observe("recommend_unread", start, len(titles), err) }()

	if n <= 0 {
		return []recommend.Scored{}, nil
	}

	read := c.userTitleSet[userID]
	counts := make(map[int]int)
	for _, neighbor := range recommend.NewIDSet(neighbors...).Sorted() {
		for _, title := range c.userTitles[neighbor] {
			if read.Contains(title) {
				continue
			}
			counts[title]++
		}
	}

	titles = make([]recommend.Scored, 0, len(counts))
	for title, count := range counts {
		switch policy {
		case ByPopularity:
			fav, ok := c.favorites[title]
			if !ok {
				continue
			}
			titles = append(titles, recommend.Scored{ID: title, Score: float64(fav)})
		default:
			titles = append(titles, recommend.Scored{ID: title, Score: float64(count)})
		}
	}

	recommend.SortScored(titles, true)
	if len(titles) > n {
		titles = titles[:n]
	}
	return titles, nil
}

// RecommendByTitleNeighbors returns the k titles nearest to titleID in the
// title x user matrix, by ascending cosine distance, excluding titleID.
func (c *CollaborativeRecommender) RecommendByTitleNeighbors(titleID, k int) (titles []NeighborTitle, err error) {
	start := time.Now()
	defer func() { c.observe("recommend_by_title_neighbors", start, len(titles), err) }()

	row, ok := c.knn.Matrix().Row(titleID)
	if !ok {
		return nil, fmt.Errorf("%w: title %d", recommend.ErrUnknownID, titleID)
	}
	if k <= 0 {
		return []NeighborTitle{}, nil
	}

	neighbors := c.knn.KNeighbors(row, k+1)
	titles = make([]NeighborTitle, 0, k)
	for _, n := range neighbors {
		if n.TitleID == titleID {
			continue
		}
		titles = append(titles, NeighborTitle{TitleID: n.TitleID, Distance: n.Distance})
	}
	if len(titles) > k {
		titles = titles[:k]
	}
	return titles, nil
}

// NeighborOverlap is the overlap of one neighbor's history with the query user.
type NeighborOverlap struct {
	UserID  int           `json:"user_id"`
	Titles  int           `json:"titles"`
	Shared  int           `json:"shared"`
	Overlap MetricOutcome `json:"overlap"`
}

// OverlapReport is the result of EvaluateOverlap.
type OverlapReport struct {
	Mean      float64           `json:"mean"`
	Evaluated int               `json:"evaluated"`
	Skipped   int               `json:"skipped"`
	Neighbors []NeighborOverlap `json:"neighbors"`
}

// EvaluateOverlap averages, over the neighbors, the share of each
// neighbor's distinct titles that userID has also consumed. Neighbors with
// no titles are skipped; the mean is 0 when all are skipped.
func (c *CollaborativeRecommender) EvaluateOverlap(neighbors []int, userID int) *OverlapReport {
	query := c.userTitleSet[userID]
	report := &OverlapReport{Neighbors: make([]NeighborOverlap, 0, len(neighbors))}
	var ratios []float64

	for _, neighbor := range neighbors {
		titles := c.userTitleSet[neighbor]
		entry := NeighborOverlap{UserID: neighbor, Titles: len(titles)}
		if len(titles) == 0 {
			entry.Overlap = skipped(SkipNoTitles)
			report.Skipped++
			report.Neighbors = append(report.Neighbors, entry)
			continue
		}
		for title := range titles {
			if query.Contains(title) {
				entry.Shared++
			}
		}
		entry.Overlap = MetricOutcome{Value: float64(entry.Shared) / float64(len(titles))}
		ratios = append(ratios, entry.Overlap.Value)
		report.Neighbors = append(report.Neighbors, entry)
	}

	report.Evaluated = len(ratios)
	report.Mean = mean(ratios)

	metrics.RecordEvaluation(c.name, "overlap", map[string]int{"overlap": report.Skipped})
	metrics.SetEvaluationResult(c.name, "overlap", report.Mean)
	c.logger.Debug().
		Int("user_id", userID).
		Int("neighbors", len(neighbors)).
		Float64("mean_overlap", report.Mean).
		Msg("overlap evaluated")

	return report
}
