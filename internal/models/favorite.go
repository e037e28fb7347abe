package models

import "time"

// Favorite links a user to a movie from the external catalog, together with the
// display metadata needed to render it without another catalog round-trip.
// A user can hold at most one Favorite per movie.
type Favorite struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	MovieID     int64     `json:"movieId"`
	Title       string    `json:"title"`
	PosterPath  *string   `json:"poster_path,omitempty"`
	VoteAverage *float64  `json:"vote_average,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
