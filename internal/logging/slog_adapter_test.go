// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSlogHandler_Enabled(t *testing.T) {
	var buf bytes.Buffer
	h := NewSlogHandler(zerolog.New(&buf).Level(zerolog.WarnLevel))

	tests := []struct {
		level slog.Level
		want  bool
	}{
		{slog.LevelDebug, false},
		{slog.LevelInfo, false},
		{slog.LevelWarn, true},
		{slog.LevelError, true},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			if got := h.Enabled(context.Background(), tt.level); got != tt.want {
				t.Errorf("Enabled(%v) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestSlogHandler_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(zerolog.New(&buf)))

	logger.Warn("service restarted",
		"service", "http",
		"attempt", 3,
		"backoff", 2*time.Second,
		"healthy", false,
		"ratio", 0.5,
		"err", errors.New("listen failed"),
	)

	entry := decodeLine(t, buf.Bytes())
	want := map[string]interface{}{
		"level":   "warn",
		"message": "service restarted",
		"service": "http",
		"attempt": float64(3),
		"healthy": false,
		"ratio":   0.5,
		"err":     "listen failed",
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s = %v, want %v", k, entry[k], v)
		}
	}
	if _, ok := entry["backoff"]; !ok {
		t.Error("expected backoff field")
	}
}

func TestSlogHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(zerolog.New(&buf))).
		With("supervisor", "root").
		WithGroup("event")

	logger.Info("terminated", "service", "rebuild", slog.Group("cause", "kind", "panic"))

	entry := decodeLine(t, buf.Bytes())
	if entry["event.supervisor"] != nil {
		t.Errorf("attrs added before WithGroup should not be prefixed")
	}
	checks := map[string]interface{}{
		"supervisor":       "root",
		"event.service":    "rebuild",
		"event.cause.kind": "panic",
	}
	for k, v := range checks {
		if entry[k] != v {
			t.Errorf("%s = %v, want %v", k, entry[k], v)
		}
	}
}

func TestZerologLevel(t *testing.T) {
	tests := []struct {
		in   slog.Level
		want zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
		{slog.LevelError + 4, zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			if got := zerologLevel(tt.in); got != tt.want {
				t.Errorf("zerologLevel(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
