// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package validation

import (
	"strings"
	"testing"
)

type unreadBody struct {
	NeighborIDs []int  `json:"neighbor_ids" validate:"required,min=1,dive,gt=0"`
	N           int    `json:"n" validate:"min=0,max=1000"`
	Policy      string `json:"policy" validate:"omitempty,unread_policy"`
}

type configSection struct {
	Metric  string `koanf:"content_metric" validate:"required,metric"`
	Format  string `koanf:"format" validate:"oneof=json console"`
	Default int    `koanf:"default_top_n" validate:"min=1,ltefield=Max"`
	Max     int    `koanf:"max_top_n" validate:"min=1"`
}

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()
	if v1 == nil {
		t.Fatal("GetValidator() returned nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same instance")
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
	}{
		{"unread minimal", &unreadBody{NeighborIDs: []int{1}}},
		{"unread full", &unreadBody{NeighborIDs: []int{1, 2}, N: 5, Policy: "popularity"}},
		{"unread alias", &unreadBody{NeighborIDs: []int{3}, Policy: "refer_others"}},
		{"config cosine", &configSection{Metric: "cosine", Format: "json", Default: 20, Max: 100}},
		{"config alias", &configSection{Metric: "euclidean_distances", Format: "console", Default: 5, Max: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateStruct(tt.input); err != nil {
				t.Errorf("ValidateStruct() = %v, want nil", err)
			}
		})
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		input     interface{}
		wantField string
		wantTag   string
	}{
		{"missing neighbors", &unreadBody{}, "neighbor_ids", "required"},
		{"empty neighbors", &unreadBody{NeighborIDs: []int{}}, "neighbor_ids", "min"},
		{"negative neighbor", &unreadBody{NeighborIDs: []int{-1}}, "neighbor_ids[0]", "gt"},
		{"n too large", &unreadBody{NeighborIDs: []int{1}, N: 5000}, "n", "max"},
		{"bad policy", &unreadBody{NeighborIDs: []int{1}, Policy: "random"}, "policy", "unread_policy"},
		{"bad metric", &configSection{Metric: "jaccard", Format: "json", Default: 1, Max: 1}, "content_metric", "metric"},
		{"bad format", &configSection{Metric: "cosine", Format: "xml", Default: 1, Max: 1}, "format", "oneof"},
		{"default above max", &configSection{Metric: "cosine", Format: "json", Default: 50, Max: 10}, "default_top_n", "ltefield"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(tt.input)
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			if len(verr.Fields) != 1 {
				t.Fatalf("got %d field errors, want 1: %v", len(verr.Fields), verr)
			}
			f := verr.Fields[0]
			if f.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", f.Field, tt.wantField)
			}
			if f.Tag != tt.wantTag {
				t.Errorf("Tag = %q, want %q", f.Tag, tt.wantTag)
			}
			if f.Message == "" {
				t.Error("Message is empty")
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	t.Run("single", func(t *testing.T) {
		verr := ValidateStruct(&unreadBody{NeighborIDs: []int{1}, Policy: "nope"})
		if verr == nil {
			t.Fatal("expected validation error")
		}
		apiErr := verr.ToAPIError()
		if apiErr.Code != ErrorCode {
			t.Errorf("Code = %q, want %q", apiErr.Code, ErrorCode)
		}
		if apiErr.Details["field"] != "policy" {
			t.Errorf("Details[field] = %v, want policy", apiErr.Details["field"])
		}
	})

	t.Run("multiple", func(t *testing.T) {
		verr := ValidateStruct(&unreadBody{N: -1, Policy: "nope"})
		if verr == nil {
			t.Fatal("expected validation error")
		}
		apiErr := verr.ToAPIError()
		fields, ok := apiErr.Details["fields"].([]map[string]interface{})
		if !ok {
			t.Fatalf("Details[fields] has type %T", apiErr.Details["fields"])
		}
		if len(fields) != 3 {
			t.Errorf("len(fields) = %d, want 3", len(fields))
		}
		if !strings.Contains(apiErr.Message, ";") {
			t.Errorf("Message = %q, want joined messages", apiErr.Message)
		}
	})

	t.Run("empty", func(t *testing.T) {
		apiErr := (&RequestValidationError{}).ToAPIError()
		if apiErr.Message != "Validation failed" {
			t.Errorf("Message = %q", apiErr.Message)
		}
	})
}

func TestMessages(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  string
	}{
		{"required", &unreadBody{}, "neighbor_ids is required"},
		{"slice min", &unreadBody{NeighborIDs: []int{}}, "neighbor_ids must be at least 1 items"},
		{"int max", &unreadBody{NeighborIDs: []int{1}, N: 1001}, "n must be at most 1000"},
		{"metric", &configSection{Metric: "hamming", Format: "json", Default: 1, Max: 1}, "content_metric must be cosine, manhattan or euclidean"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(tt.input)
			if verr == nil {
				t.Fatal("expected validation error")
			}
			if got := verr.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
