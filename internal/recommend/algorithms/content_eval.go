// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package algorithms

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/tomtom215/otaku/internal/metrics"
	"github.com/tomtom215/otaku/internal/recommend"
	"github.com/tomtom215/otaku/internal/recommend/similarity"
)

// PredictedRating is one held-out (user, title) pair with its prediction.
type PredictedRating struct {
	UserID    int     `json:"user_id"`
	TitleID   int     `json:"title_id"`
	Actual    float64 `json:"score_actual"`
	Predicted float64 `json:"score_predicted"`
}

// RatingReport is the result of PredictRating.
type RatingReport struct {
	RMSE  float64           `json:"rmse"`
	Users int               `json:"users"`
	Rows  []PredictedRating `json:"rows"`
}

// SkipReason explains why a user was left out of an aggregate.
type SkipReason string

// Skip reasons recorded in evaluation reports.
const (
	SkipNoRecommendations SkipReason = "no_recommendations"
	SkipNoRelevantTitles  SkipReason = "no_relevant_test_titles"
	SkipNoTitles          SkipReason = "no_titles"
)

// MetricOutcome is a per-user metric value, or the reason it was skipped.
type MetricOutcome struct {
	Value   float64    `json:"value"`
	Skipped bool       `json:"skipped,omitempty"`
	Reason  SkipReason `json:"reason,omitempty"`
}

func skipped(reason SkipReason) MetricOutcome {
	return MetricOutcome{Skipped: true, Reason: reason}
}

// UserRanking is the ranking evaluation of a single user.
type UserRanking struct {
	UserID      int           `json:"user_id"`
	Seeds       int           `json:"seeds"`
	Recommended int           `json:"recommended"`
	Relevant    int           `json:"relevant"`
	Hits        int           `json:"hits"`
	Precision   MetricOutcome `json:"precision"`
	Recall      MetricOutcome `json:"recall"`
}

// RankingReport is the result of EvaluateRanking. Means are taken over the
// users whose metric was not skipped and are 0 when every user was skipped.
type RankingReport struct {
	Precision        float64       `json:"precision"`
	Recall           float64       `json:"recall"`
	PrecisionUsers   int           `json:"precision_users"`
	RecallUsers      int           `json:"recall_users"`
	SkippedPrecision int           `json:"skipped_precision"`
	SkippedRecall    int           `json:"skipped_recall"`
	Users            []UserRanking `json:"users"`
}

// PrecisionByUser returns the recorded precision of every non-skipped user.
func (r *RankingReport) PrecisionByUser() map[int]float64 {
	out := make(map[int]float64, r.PrecisionUsers)
	for _, u := range r.Users {
		if !u.Precision.Skipped {
			out[u.UserID] = u.Precision.Value
		}
	}
	return out
}

// RecallByUser returns the recorded recall of every non-skipped user.
func (r *RankingReport) RecallByUser() map[int]float64 {
	out := make(map[int]float64, r.RecallUsers)
	for _, u := range r.Users {
		if !u.Recall.Skipped {
			out[u.UserID] = u.Recall.Value
		}
	}
	return out
}

// heldOut restricts train to titles in m and test to titles in m rated by
// users that remain in train. Test users are returned in order of first
// appearance.
func heldOut(m *similarity.Matrix, train, test []recommend.Interaction) (
	byUser map[int][]recommend.Interaction, testByUser map[int][]recommend.Interaction, users []int,
) {
	byUser = make(map[int][]recommend.Interaction)
	for _, in := range train {
		if m.Contains(in.TitleID) {
			byUser[in.UserID] = append(byUser[in.UserID], in)
		}
	}

	testByUser = make(map[int][]recommend.Interaction)
	for _, in := range test {
		if _, ok := byUser[in.UserID]; !ok || !m.Contains(in.TitleID) {
			continue
		}
		if _, seen := testByUser[in.UserID]; !seen {
			users = append(users, in.UserID)
		}
		testByUser[in.UserID] = append(testByUser[in.UserID], in)
	}
	return byUser, testByUser, users
}

// PredictRating predicts each held-out score as the similarity-weighted
// average of the user's train scores:
//
//	predicted(title) = sum_t sim(title, t) * score(t) / sum_t sim(title, t)
//
// A zero weight sum predicts 0. Only defined for cosine similarity.
func (c *ContentRecommender) PredictRating(train, test []recommend.Interaction) (*RatingReport, error) {
	m := c.matrix.Load()
	if m == nil {
		return nil, recommend.ErrNotReady
	}
	if m.Metric() != similarity.MetricCosine {
		return nil, fmt.Errorf("%w: rating prediction requires cosine, matrix uses %s",
			recommend.ErrUnsupportedMetric, m.Metric())
	}

	start := time.Now()
	byUser, testByUser, users := heldOut(m, train, test)

	report := &RatingReport{Users: len(users), Rows: []PredictedRating{}}
	for _, user := range users {
		history := byUser[user]
		for _, in := range testByUser[user] {
			var num, den float64
			for _, h := range history {
				sim, _ := m.Lookup(in.TitleID, h.TitleID)
				num += sim * h.Score
				den += sim
			}
			predicted := 0.0
			if den != 0 {
				predicted = num / den
			}
			report.Rows = append(report.Rows, PredictedRating{
				UserID:    user,
				TitleID:   in.TitleID,
				Actual:    in.Score,
				Predicted: predicted,
			})
		}
	}

	if n := len(report.Rows); n > 0 {
		actual := make([]float64, n)
		predicted := make([]float64, n)
		for i, r := range report.Rows {
			actual[i] = r.Actual
			predicted[i] = r.Predicted
		}
		report.RMSE = floats.Distance(actual, predicted, 2) / math.Sqrt(float64(n))
	}

	metrics.RecordEvaluation(c.name, "rmse", nil)
	metrics.SetEvaluationResult(c.name, "rmse", report.RMSE)
	c.logger.Info().
		Int("users", report.Users).
		Int("rows", len(report.Rows)).
		Float64("rmse", report.RMSE).
		Dur("duration", time.Since(start)).
		Msg("rating prediction evaluated")

	return report, nil
}

// EvaluateRanking measures precision and recall of pushed neighbors. For
// each user, train titles scored at or above threshold are seeds; the
// numPush nearest titles of every seed are pooled, seeds removed, and
// compared with the user's test titles scored at or above threshold.
//
// A user with no recommendations is skipped for precision and a user with
// no relevant test titles is skipped for recall. Skips never abort the run.
func (c *ContentRecommender) EvaluateRanking(train, test []recommend.Interaction, threshold float64, numPush int) (*RankingReport, error) {
	m := c.matrix.Load()
	if m == nil {
		return nil, recommend.ErrNotReady
	}

	start := time.Now()
	byUser, testByUser, users := heldOut(m, train, test)

	report := &RankingReport{Users: make([]UserRanking, 0, len(users))}
	var precisions, recalls []float64

	for _, user := range users {
		seeds := make(recommend.IDSet)
		for _, in := range byUser[user] {
			if in.Score >= threshold {
				seeds[in.TitleID] = struct{}{}
			}
		}

		pushed := make(recommend.IDSet)
		for _, seed := range seeds.Sorted() {
			neighbors, err := m.Query(seed, numPush, similarity.QueryOptions{})
			if err != nil {
				return nil, fmt.Errorf("push neighbors of %d: %w", seed, err)
			}
			for _, n := range neighbors {
				if !seeds.Contains(n.ID) {
					pushed[n.ID] = struct{}{}
				}
			}
		}

		relevant := make(recommend.IDSet)
		for _, in := range testByUser[user] {
			if in.Score >= threshold {
				relevant[in.TitleID] = struct{}{}
			}
		}

		hits := 0
		for id := range pushed {
			if relevant.Contains(id) {
				hits++
			}
		}

		result := UserRanking{
			UserID:      user,
			Seeds:       len(seeds),
			Recommended: len(pushed),
			Relevant:    len(relevant),
			Hits:        hits,
		}
		if len(pushed) == 0 {
			result.Precision = skipped(SkipNoRecommendations)
			report.SkippedPrecision++
		} else {
			result.Precision = MetricOutcome{Value: float64(hits) / float64(len(pushed))}
			precisions = append(precisions, result.Precision.Value)
		}
		if len(relevant) == 0 {
			result.Recall = skipped(SkipNoRelevantTitles)
			report.SkippedRecall++
		} else {
			result.Recall = MetricOutcome{Value: float64(hits) / float64(len(relevant))}
			recalls = append(recalls, result.Recall.Value)
		}
		report.Users = append(report.Users, result)
	}

	report.PrecisionUsers = len(precisions)
	report.RecallUsers = len(recalls)
	report.Precision = mean(precisions)
	report.Recall = mean(recalls)

	metrics.RecordEvaluation(c.name, "ranking", map[string]int{
		"precision": report.SkippedPrecision,
		"recall":    report.SkippedRecall,
	})
	metrics.SetEvaluationResult(c.name, "precision", report.Precision)
	metrics.SetEvaluationResult(c.name, "recall", report.Recall)
	c.logger.Info().
		Int("users", len(users)).
		Float64("precision", report.Precision).
		Float64("recall", report.Recall).
		Int("skipped_precision", report.SkippedPrecision).
		Int("skipped_recall", report.SkippedRecall).
		Dur("duration", time.Since(start)).
		Msg("ranking evaluated")

	return report, nil
}
