// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package models

// ScoredItem is one ranked id with its similarity or distance.
type ScoredItem struct {
	ID    int     `json:"id"`
	Score float64 `json:"score"`
	Name  string  `json:"name,omitempty"`
}

// SimilarTitlesResponse answers the title similarity endpoints.
type SimilarTitlesResponse struct {
	TitleID int          `json:"title_id"`
	Metric  string       `json:"metric,omitempty"`
	Results []ScoredItem `json:"results"`
}

// NeighborTitle is one title of a k-NN answer.
type NeighborTitle struct {
	TitleID  int     `json:"title_id"`
	Distance float64 `json:"distance"`
}

// TitleNeighborsResponse answers the collaborative k-NN endpoint.
type TitleNeighborsResponse struct {
	TitleID   int             `json:"title_id"`
	Neighbors []NeighborTitle `json:"neighbors"`
}

// SimilarCharactersResponse answers the character similarity endpoint.
type SimilarCharactersResponse struct {
	CharacterID int          `json:"character_id"`
	Characters  []ScoredItem `json:"characters"`
	TitleIDs    []int        `json:"title_ids"`
}

// SimilarUsersResponse answers both similar-user endpoints.
type SimilarUsersResponse struct {
	UserID  int          `json:"user_id,omitempty"`
	Metric  string       `json:"metric,omitempty"`
	Results []ScoredItem `json:"results"`
}

// SimilarByTitlesRequest is the body of POST /users/similar-by-titles.
type SimilarByTitlesRequest struct {
	TitleIDs  []int `json:"title_ids" validate:"required,min=1,dive,gt=0"`
	MinTitles *int  `json:"min_titles,omitempty" validate:"omitempty,min=0"`
}

// UnreadRequest is the body of POST /users/{userID}/unread.
type UnreadRequest struct {
	NeighborIDs []int  `json:"neighbor_ids" validate:"required,min=1,dive,gt=0"`
	N           int    `json:"n" validate:"min=0,max=1000"`
	Policy      string `json:"policy" validate:"omitempty,unread_policy"`
}

// UnreadResponse lists recommended unread titles.
type UnreadResponse struct {
	UserID  int          `json:"user_id"`
	Policy  string       `json:"policy"`
	Results []ScoredItem `json:"results"`
}

// OverlapRequest is the body of POST /users/{userID}/overlap.
type OverlapRequest struct {
	NeighborIDs []int `json:"neighbor_ids" validate:"required,min=1,dive,gt=0"`
}
