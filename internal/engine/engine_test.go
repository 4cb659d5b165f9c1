// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/otaku/internal/config"
	"github.com/tomtom215/otaku/internal/dataset"
)

func writeTable(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func testConfig() *config.Config {
	return &config.Config{
		Recommend: config.RecommendConfig{
			ContentMetric:      "cosine",
			Neighbors:          2,
			MinTitles:          0,
			SimilarUsers:       10,
			DefaultTopN:        20,
			MaxTopN:            100,
			BinaryInteractions: true,
		},
	}
}

func testLoader(t *testing.T) *dataset.Loader {
	t.Helper()
	l, err := dataset.Open(dataset.Options{Threads: 1}, zerolog.Nop())
	if err != nil {
		t.Fatalf("dataset.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestBuild_NoTablesConfigured(t *testing.T) {
	built, err := Build(context.Background(), testConfig(), testLoader(t))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	e := built.API()
	if e.Content != nil || e.Collaborative != nil || e.Image != nil {
		t.Errorf("API() = %+v, want all engines nil", e)
	}
}

func TestBuild_ContentAndCollaborative(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig()
	cfg.Data.Titles = writeTable(t, dir, "titles.csv", `title_id,title_romaji,popularity,favorites
1,Cowboy Bebop,90000,500
2,Samurai Champloo,60000,300
3,Aria,20000,100
`)
	cfg.Data.ContentFeatures = writeTable(t, dir, "content.csv", "title_id,space,swords\n1,1,0\n2,1,0.1\n3,0,1\n")
	cfg.Data.TitleGenres = writeTable(t, dir, "title_genres.csv", "title_id,Action,Slice of Life\n1,1,0\n2,1,0\n3,0,1\n")
	cfg.Data.UserGenres = writeTable(t, dir, "user_genres.csv", "user_id,Action,Slice of Life\n10,1,0\n11,0.8,0.2\n12,0,1\n")
	cfg.Data.Interactions = writeTable(t, dir, "interactions.csv", "user_id,title_id,score\n10,1,90\n10,2,80\n11,1,70\n11,2,75\n12,3,85\n")

	built, err := Build(context.Background(), cfg, testLoader(t))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	e := built.API()
	if e.Content == nil || e.Collaborative == nil {
		t.Fatalf("API() = %+v, want content and collaborative engines", e)
	}
	if e.Image != nil {
		t.Error("image engine built without character tables")
	}

	recs, err := e.Content.Recommend(1, 1, false, true)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(recs) != 1 || recs[0].ID != 2 || recs[0].Name != "Samurai Champloo" {
		t.Errorf("Recommend(1) = %+v, want title 2 Samurai Champloo", recs)
	}

	neighbors, err := e.Collaborative.RecommendByTitleNeighbors(1, 1)
	if err != nil {
		t.Fatalf("RecommendByTitleNeighbors() error = %v", err)
	}
	if len(neighbors) != 1 || neighbors[0].TitleID != 2 {
		t.Errorf("RecommendByTitleNeighbors(1) = %+v, want title 2", neighbors)
	}
}

func TestContentRebuilder_SwapsMatrix(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig()
	cfg.Data.Titles = writeTable(t, dir, "titles.csv", "title_id,title_romaji,popularity,favorites\n1,A,1,1\n2,B,1,1\n")
	cfg.Data.ContentFeatures = writeTable(t, dir, "content.csv", "title_id,f\n1,1\n2,1\n")

	loader := testLoader(t)
	built, err := Build(context.Background(), cfg, loader)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	before := built.Content.Version()

	if err := ContentRebuilder(built.Content, cfg, loader)(context.Background()); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if got := built.Content.Version(); got != before+1 {
		t.Errorf("Version() = %d, want %d", got, before+1)
	}

	cfg.Data.ContentFeatures = filepath.Join(dir, "missing.csv")
	if err := ContentRebuilder(built.Content, cfg, loader)(context.Background()); err == nil {
		t.Error("Rebuild() with missing features error = nil, want error")
	}
	if built.Content.Matrix() == nil {
		t.Error("failed rebuild dropped the live matrix")
	}
}

func TestBuild_ConfiguredTableMissing(t *testing.T) {
	cfg := testConfig()
	cfg.Data.Characters = filepath.Join(t.TempDir(), "characters.csv")
	cfg.Data.CharacterEmbeddings = filepath.Join(t.TempDir(), "embeddings.csv")

	if _, err := Build(context.Background(), cfg, testLoader(t)); err == nil {
		t.Error("Build() error = nil, want error for missing files")
	}
}
