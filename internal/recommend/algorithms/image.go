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

	"github.com/tomtom215/otaku/internal/metrics"
	"github.com/tomtom215/otaku/internal/recommend"
	"github.com/tomtom215/otaku/internal/recommend/similarity"
)

// ImageData holds the inputs of the image engine.
type ImageData struct {
	// Embeddings has one row per character id, one column per dimension.
	Embeddings *recommend.FeatureTable

	// Characters is the character reference table.
	Characters []recommend.Character
}

// CharacterMatches is the result of SimilarCharacters.
type CharacterMatches struct {
	// Characters are the similar characters, most similar first.
	Characters []recommend.Scored `json:"characters"`

	// TitleIDs are the titles those characters appear in, ordered by the
	// rank of the first character that introduced each title.
	TitleIDs []int `json:"title_ids"`
}

// ImageRecommender ranks characters and titles by character-image
// embedding similarity. A title is represented by the mean embedding of its
// characters.
type ImageRecommender struct {
	BaseAlgorithm

	characters      *similarity.Matrix
	titles          *similarity.Matrix
	characterTitles map[int]int
}

// NewEmbeddingTable wraps parallel character id and vector arrays in a
// feature table. Every vector must have the same length.
func NewEmbeddingTable(ids []int, vectors [][]float64) (*recommend.FeatureTable, error) {
	if len(ids) != len(vectors) {
		return nil, fmt.Errorf("%w: %d character ids for %d embeddings", recommend.ErrSchemaMismatch, len(ids), len(vectors))
	}
	dims := 0
	if len(vectors) > 0 {
		dims = len(vectors[0])
	}
	cols := make([]string, dims)
	for i := range cols {
		cols[i] = fmt.Sprintf("e%d", i)
	}
	table := &recommend.FeatureTable{IDs: ids, Columns: cols, Rows: vectors}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// NewImageRecommender builds the character and title similarity matrices.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewImageRecommender(data ImageData, logger zerolog.Logger) (*ImageRecommender, error) {
	if data.Embeddings == nil {
		return nil, fmt.Errorf("%w: character embeddings are required", recommend.ErrSchemaMismatch)
	}

	r := &ImageRecommender{characterTitles: make(map[int]int)}
	r.init(EngineImage, logger)

	characters := uniqueCharacters(data.Embeddings, data.Characters)
	universe := make(recommend.IDSet, len(characters))
	for _, ch := range characters {
		universe[ch.ID] = struct{}{}
		r.characterTitles[ch.ID] = ch.TitleID
	}

	start := time.Now()
	chars, err := similarity.Build(data.Embeddings, similarity.MetricCosine, universe)
	if err != nil {
		return nil, fmt.Errorf("build character similarity: %w", err)
	}
	r.characters = chars
	metrics.RecordSimilarityBuild(r.name+"_characters", "cosine", chars.Len(), time.Since(start))

	start = time.Now()
	titleTable := titleEmbeddings(data.Embeddings, characters)
	titles, err := similarity.Build(titleTable, similarity.MetricCosine, nil)
	if err != nil {
		return nil, fmt.Errorf("build title similarity: %w", err)
	}
	r.titles = titles
	metrics.RecordSimilarityBuild(r.name+"_titles", "cosine", titles.Len(), time.Since(start))
	r.markBuilt()

	r.logger.Info().
		Int("characters", chars.Len()).
		Int("characters_dropped", chars.Dropped()).
		Int("titles", titles.Len()).
		Int("dimensions", len(data.Embeddings.Columns)).
		Msg("image engine built")

	return r, nil
}

// uniqueCharacters reduces the reference table to one row per character.
// Rows without an embedding are ignored. The first row of each character id
// wins, then the first row of each name (rows with an empty name are kept
// by id alone), both in table order. A character listed under several
// titles therefore belongs to the title of its first row only.
func uniqueCharacters(embeddings *recommend.FeatureTable, characters []recommend.Character) []recommend.Character {
	index := embeddings.Index()
	seenIDs := make(recommend.IDSet)
	seenNames := make(map[string]struct{})

	out := make([]recommend.Character, 0, len(characters))
	for _, ch := range characters {
		if _, ok := index[ch.ID]; !ok || seenIDs.Contains(ch.ID) {
			continue
		}
		seenIDs[ch.ID] = struct{}{}

		if name := strings.TrimSpace(ch.Name); name != "" {
			if _, dup := seenNames[name]; dup {
				continue
			}
			seenNames[name] = struct{}{}
		}
		out = append(out, ch)
	}
	return out
}

// titleEmbeddings averages the embeddings of each title's characters.
// characters must already be reduced by uniqueCharacters. Titles are
// ordered by id.
func titleEmbeddings(embeddings *recommend.FeatureTable, characters []recommend.Character) *recommend.FeatureTable {
	index := embeddings.Index()
	dims := len(embeddings.Columns)

	sums := make(map[int][]float64)
	counts := make(map[int]int)

	for _, ch := range characters {
		row, ok := index[ch.ID]
		if !ok {
			continue
		}
		sum, ok := sums[ch.TitleID]
		if !ok {
			sum = make([]float64, dims)
			sums[ch.TitleID] = sum
		}
		floats.Add(sum, embeddings.Rows[row])
		counts[ch.TitleID]++
	}

	ids := make(recommend.IDSet, len(sums))
	for id := range sums {
		ids[id] = struct{}{}
	}

	table := &recommend.FeatureTable{Columns: embeddings.Columns}
	for _, id := range ids.Sorted() {
		vec := sums[id]
		floats.Scale(1/float64(counts[id]), vec)
		table.IDs = append(table.IDs, id)
		table.Rows = append(table.Rows, vec)
	}
	return table
}

// Status reports both matrices.
func (r *ImageRecommender) Status() Status {
	return Status{
		Name:    r.name,
		Ready:   true,
		Version: r.Version(),
		BuiltAt: r.LastBuiltAt(),
		Indexed: r.titles.Len(),
		Metric:  "cosine",
	}
}

// CharacterMatrix returns the character similarity matrix.
func (r *ImageRecommender) CharacterMatrix() *similarity.Matrix {
	return r.characters
}

// TitleMatrix returns the title similarity matrix.
func (r *ImageRecommender) TitleMatrix() *similarity.Matrix {
	return r.titles
}

// SimilarCharacters returns the topN characters most similar to
// characterID, excluding itself, and the titles they appear in.
func (r *ImageRecommender) SimilarCharacters(characterID, topN int) (matches *CharacterMatches, err error) {
	start := time.Now()
	defer func() {
		n := 0
		if matches != nil {
			n = len(matches.Characters)
		}
		r.observe("similar_characters", start, n, err)
	}()

	ranked, err := r.characters.Query(characterID, topN, similarity.QueryOptions{})
	if err != nil {
		return nil, err
	}

	matches = &CharacterMatches{Characters: ranked, TitleIDs: []int{}}
	seen := make(recommend.IDSet)
	for _, c := range ranked {
		title, ok := r.characterTitles[c.ID]
		if !ok || seen.Contains(title) {
			continue
		}
		seen[title] = struct{}{}
		matches.TitleIDs = append(matches.TitleIDs, title)
	}
	return matches, nil
}

// SimilarTitles returns the topN titles whose mean character embedding is
// most similar to titleID's, excluding titleID.
func (r *ImageRecommender) SimilarTitles(titleID, topN int) (titles []recommend.Scored, err error) {
	start := time.Now()
	defer func() { r.observe("similar_titles", start, len(titles), err) }()

	return r.titles.Query(titleID, topN, similarity.QueryOptions{})
}
