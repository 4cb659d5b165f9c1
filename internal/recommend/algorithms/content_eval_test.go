// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package algorithms

import (
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/otaku/internal/recommend"
	"github.com/tomtom215/otaku/internal/recommend/similarity"
)

const (
	title1 = 11
	title2 = 12
	title3 = 13
)

// ratingEngine has three titles with cos(1,2) = 2/sqrt(5), cos(2,3) = 1/sqrt(5)
// and cos(1,3) = 0.
func ratingEngine(t *testing.T, metric similarity.Metric) *ContentRecommender {
	t.Helper()
	titles := []recommend.Title{{ID: title1}, {ID: title2}, {ID: title3}}
	features := &recommend.FeatureTable{
		IDs:     []int{title1, title2, title3},
		Columns: []string{"x", "y"},
		Rows:    [][]float64{{1, 0}, {2, 1}, {0, 1}},
	}
	c := NewContentRecommender(titles, DefaultContentConfig(), zerolog.Nop())
	if err := c.CreateSimMat(features, metric); err != nil {
		t.Fatalf("CreateSimMat() error = %v", err)
	}
	return c
}

func TestPredictRating_HandComputed(t *testing.T) {
	c := ratingEngine(t, similarity.MetricCosine)

	train := []recommend.Interaction{
		{UserID: 1, TitleID: title1, Score: 80},
		{UserID: 1, TitleID: title3, Score: 60},
		{UserID: 2, TitleID: title1, Score: 50},
		{UserID: 2, TitleID: 99, Score: 100}, // not in the matrix
	}
	test := []recommend.Interaction{
		{UserID: 1, TitleID: title2, Score: 70},
		{UserID: 2, TitleID: title3, Score: 40},
		{UserID: 2, TitleID: title2, Score: 90},
		{UserID: 3, TitleID: title2, Score: 10}, // user absent from train
		{UserID: 1, TitleID: 99, Score: 10},     // title absent from the matrix
	}

	report, err := c.PredictRating(train, test)
	if err != nil {
		t.Fatalf("PredictRating() error = %v", err)
	}

	want := []PredictedRating{
		// (2/sqrt5*80 + 1/sqrt5*60) / (3/sqrt5) = 220/3
		{UserID: 1, TitleID: title2, Actual: 70, Predicted: 220.0 / 3},
		// cos(3, 1) = 0, so the weight sum is zero and the prediction is 0.
		{UserID: 2, TitleID: title3, Actual: 40, Predicted: 0},
		{UserID: 2, TitleID: title2, Actual: 90, Predicted: 50},
	}

	if report.Users != 2 {
		t.Errorf("Users = %d, want 2", report.Users)
	}
	if len(report.Rows) != len(want) {
		t.Fatalf("len(Rows) = %d, want %d", len(report.Rows), len(want))
	}
	var sq float64
	for i, w := range want {
		got := report.Rows[i]
		if got.UserID != w.UserID || got.TitleID != w.TitleID || got.Actual != w.Actual {
			t.Errorf("Rows[%d] = %+v, want %+v", i, got, w)
		}
		if !approxEqual(got.Predicted, w.Predicted) {
			t.Errorf("Rows[%d].Predicted = %v, want %v", i, got.Predicted, w.Predicted)
		}
		sq += (w.Actual - w.Predicted) * (w.Actual - w.Predicted)
	}

	wantRMSE := math.Sqrt(sq / float64(len(want)))
	if !approxEqual(report.RMSE, wantRMSE) {
		t.Errorf("RMSE = %v, want %v", report.RMSE, wantRMSE)
	}
}

func TestPredictRating_DuplicateTrainRowsCountTwice(t *testing.T) {
	c := ratingEngine(t, similarity.MetricCosine)

	train := []recommend.Interaction{
		{UserID: 1, TitleID: title1, Score: 80},
		{UserID: 1, TitleID: title1, Score: 80},
		{UserID: 1, TitleID: title3, Score: 60},
	}
	test := []recommend.Interaction{{UserID: 1, TitleID: title2, Score: 70}}

	report, err := c.PredictRating(train, test)
	if err != nil {
		t.Fatalf("PredictRating() error = %v", err)
	}

	// (2*2*80 + 1*60) / (2*2 + 1) = 380/5
	if got := report.Rows[0].Predicted; !approxEqual(got, 76) {
		t.Errorf("Predicted = %v, want 76", got)
	}
}

func TestPredictRating_Empty(t *testing.T) {
	c := ratingEngine(t, similarity.MetricCosine)

	report, err := c.PredictRating(nil, []recommend.Interaction{{UserID: 1, TitleID: title1, Score: 50}})
	if err != nil {
		t.Fatalf("PredictRating() error = %v", err)
	}
	if len(report.Rows) != 0 || report.RMSE != 0 {
		t.Errorf("report = %+v, want no rows and RMSE 0", report)
	}
}

func TestPredictRating_RequiresCosine(t *testing.T) {
	for _, metric := range []similarity.Metric{similarity.MetricManhattan, similarity.MetricEuclidean} {
		t.Run(metric.String(), func(t *testing.T) {
			c := ratingEngine(t, metric)
			if _, err := c.PredictRating(nil, nil); !errors.Is(err, recommend.ErrUnsupportedMetric) {
				t.Errorf("PredictRating() error = %v, want ErrUnsupportedMetric", err)
			}
		})
	}
}

func TestEvaluateRanking_PerUserOutcomes(t *testing.T) {
	c := newContent(t, similarity.MetricCosine)

	train := []recommend.Interaction{
		{UserID: 1, TitleID: titleA, Score: 80},
		{UserID: 1, TitleID: titleC, Score: 50},
		{UserID: 2, TitleID: titleC, Score: 60},
		{UserID: 3, TitleID: titleA, Score: 90},
	}
	test := []recommend.Interaction{
		{UserID: 1, TitleID: titleB, Score: 90},
		{UserID: 1, TitleID: titleD, Score: 75},
		{UserID: 2, TitleID: titleA, Score: 80},
		{UserID: 3, TitleID: titleB, Score: 40},
	}

	report, err := c.EvaluateRanking(train, test, 70, 1)
	if err != nil {
		t.Fatalf("EvaluateRanking() error = %v", err)
	}

	if len(report.Users) != 3 {
		t.Fatalf("len(Users) = %d, want 3", len(report.Users))
	}

	tests := []struct {
		name          string
		user          UserRanking
		precision     float64
		precisionSkip bool
		recall        float64
		recallSkip    bool
	}{
		{"pushed B, relevant B and D", report.Users[0], 1, false, 0.5, false},
		{"no seeds", report.Users[1], 0, true, 0, false},
		{"no relevant test titles", report.Users[2], 0, false, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.user.Precision.Skipped != tt.precisionSkip {
				t.Errorf("Precision.Skipped = %v, want %v", tt.user.Precision.Skipped, tt.precisionSkip)
			}
			if !tt.precisionSkip && !approxEqual(tt.user.Precision.Value, tt.precision) {
				t.Errorf("Precision = %v, want %v", tt.user.Precision.Value, tt.precision)
			}
			if tt.user.Recall.Skipped != tt.recallSkip {
				t.Errorf("Recall.Skipped = %v, want %v", tt.user.Recall.Skipped, tt.recallSkip)
			}
			if !tt.recallSkip && !approxEqual(tt.user.Recall.Value, tt.recall) {
				t.Errorf("Recall = %v, want %v", tt.user.Recall.Value, tt.recall)
			}
		})
	}

	if report.Users[1].Precision.Reason != SkipNoRecommendations {
		t.Errorf("user 2 precision reason = %q, want %q", report.Users[1].Precision.Reason, SkipNoRecommendations)
	}
	if report.Users[2].Recall.Reason != SkipNoRelevantTitles {
		t.Errorf("user 3 recall reason = %q, want %q", report.Users[2].Recall.Reason, SkipNoRelevantTitles)
	}

	if !approxEqual(report.Precision, 0.5) {
		t.Errorf("mean precision = %v, want 0.5", report.Precision)
	}
	if !approxEqual(report.Recall, 0.25) {
		t.Errorf("mean recall = %v, want 0.25", report.Recall)
	}
	if report.SkippedPrecision != 1 || report.SkippedRecall != 1 {
		t.Errorf("skipped = (%d, %d), want (1, 1)", report.SkippedPrecision, report.SkippedRecall)
	}

	if got := report.PrecisionByUser(); len(got) != 2 || got[1] != 1 || got[3] != 0 {
		t.Errorf("PrecisionByUser() = %v, want map[1:1 3:0]", got)
	}
	if got := report.RecallByUser(); len(got) != 2 || got[1] != 0.5 || got[2] != 0 {
		t.Errorf("RecallByUser() = %v, want map[1:0.5 2:0]", got)
	}
}

func TestEvaluateRanking_FullRecall(t *testing.T) {
	c := newContent(t, similarity.MetricCosine)

	train := []recommend.Interaction{{UserID: 4, TitleID: titleA, Score: 90}}
	test := []recommend.Interaction{{UserID: 4, TitleID: titleB, Score: 80}}

	report, err := c.EvaluateRanking(train, test, 70, 1)
	if err != nil {
		t.Fatalf("EvaluateRanking() error = %v", err)
	}

	if report.Recall != 1.0 {
		t.Errorf("Recall = %v, want 1.0", report.Recall)
	}
	if report.Precision != 1.0 {
		t.Errorf("Precision = %v, want 1.0", report.Precision)
	}
}

func TestEvaluateRanking_SeedsAreNotRecommended(t *testing.T) {
	c := newContent(t, similarity.MetricCosine)

	// A and B are both seeds and each other's nearest neighbor.
	train := []recommend.Interaction{
		{UserID: 1, TitleID: titleA, Score: 90},
		{UserID: 1, TitleID: titleB, Score: 90},
	}
	test := []recommend.Interaction{{UserID: 1, TitleID: titleC, Score: 90}}

	report, err := c.EvaluateRanking(train, test, 70, 1)
	if err != nil {
		t.Fatalf("EvaluateRanking() error = %v", err)
	}

	u := report.Users[0]
	if u.Seeds != 2 || u.Recommended != 0 || !u.Precision.Skipped {
		t.Errorf("user = %+v, want 2 seeds, nothing recommended, precision skipped", u)
	}
}

func TestEvaluateRanking_Bounds(t *testing.T) {
	c := newContent(t, similarity.MetricCosine)

	var train, test []recommend.Interaction
	ids := []int{titleA, titleB, titleC, titleD}
	for user := 1; user <= 12; user++ {
		for i, id := range ids {
			score := float64((user*17+i*31)%100 + 1)
			if (user+i)%2 == 0 {
				train = append(train, recommend.Interaction{UserID: user, TitleID: id, Score: score})
			} else {
				test = append(test, recommend.Interaction{UserID: user, TitleID: id, Score: score})
			}
		}
	}

	for _, numPush := range []int{0, 1, 2, 3} {
		report, err := c.EvaluateRanking(train, test, 50, numPush)
		if err != nil {
			t.Fatalf("EvaluateRanking(numPush=%d) error = %v", numPush, err)
		}
		for _, u := range report.Users {
			if u.Precision.Value < 0 || u.Precision.Value > 1 {
				t.Errorf("user %d precision %v out of [0, 1]", u.UserID, u.Precision.Value)
			}
			if u.Recall.Value < 0 || u.Recall.Value > 1 {
				t.Errorf("user %d recall %v out of [0, 1]", u.UserID, u.Recall.Value)
			}
		}
		if report.Precision < 0 || report.Precision > 1 || report.Recall < 0 || report.Recall > 1 {
			t.Errorf("means (%v, %v) out of [0, 1]", report.Precision, report.Recall)
		}
	}
}

func TestEvaluateRanking_DistanceMetric(t *testing.T) {
	c := newContent(t, similarity.MetricManhattan)

	train := []recommend.Interaction{{UserID: 1, TitleID: titleC, Score: 90}}
	test := []recommend.Interaction{{UserID: 1, TitleID: titleD, Score: 90}}

	report, err := c.EvaluateRanking(train, test, 70, 1)
	if err != nil {
		t.Fatalf("EvaluateRanking() error = %v", err)
	}
	// The nearest title to C under a distance is D.
	if report.Precision != 1 || report.Recall != 1 {
		t.Errorf("(precision, recall) = (%v, %v), want (1, 1)", report.Precision, report.Recall)
	}
}
