package services

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/cinesky/cinesky-be/internal/models"
)

// FavoriteServiceProvider defines the interface for favorite services.
type FavoriteServiceProvider interface {
	ListFavorites(userID string) ([]models.Favorite, error)
	AddFavorite(userID string, movieID int64, title string, posterPath *string, voteAverage *float64) (models.Favorite, error)
	RemoveFavorite(userID string, movieID int64) error
	RemoveAllForUser(userID string) error
}

// FavoriteService provides business logic for a user's favorites list.
type FavoriteService struct {
	db *sql.DB
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(db *sql.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// ListFavorites returns all favorites belonging to the user in insertion
// order. An empty list, not an error, when the user has none.
func (s *FavoriteService) ListFavorites(userID string) ([]models.Favorite, error) {
	rows, err := s.db.Query(
		"SELECT id, user_id, movie_id, title, poster_path, vote_average, created_at FROM favorites WHERE user_id = ? ORDER BY rowid",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	favorites := []models.Favorite{}
	for rows.Next() {
		var f models.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.MovieID, &f.Title, &f.PosterPath, &f.VoteAverage, &f.CreatedAt); err != nil {
			return nil, err
		}
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}

// AddFavorite persists a new favorite for the user. Returns
// ErrDuplicateFavorite when the user already favorited the movie; the unique
// index on (user_id, movie_id) decides, so of two racing requests exactly one
// succeeds.
func (s *FavoriteService) AddFavorite(userID string, movieID int64, title string, posterPath *string, voteAverage *float64) (models.Favorite, error) {
	fav := models.Favorite{
		ID:          uuid.New().String(),
		UserID:      userID,
		MovieID:     movieID,
		Title:       title,
		PosterPath:  posterPath,
		VoteAverage: voteAverage,
	}

	_, err := s.db.Exec(
		"INSERT INTO favorites(id, user_id, movie_id, title, poster_path, vote_average) VALUES(?, ?, ?, ?, ?, ?)",
		fav.ID, fav.UserID, fav.MovieID, fav.Title, fav.PosterPath, fav.VoteAverage)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Favorite{}, ErrDuplicateFavorite
		}
		return models.Favorite{}, err
	}

	row := s.db.QueryRow("SELECT created_at FROM favorites WHERE id = ?", fav.ID)
	if err := row.Scan(&fav.CreatedAt); err != nil {
		return models.Favorite{}, err
	}
	return fav, nil
}

// RemoveFavorite deletes the user's favorite for the given movie. Returns
// ErrNotFound when the user has no such favorite.
func (s *FavoriteService) RemoveFavorite(userID string, movieID int64) error {
	res, err := s.db.Exec("DELETE FROM favorites WHERE user_id = ? AND movie_id = ?", userID, movieID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveAllForUser deletes every favorite owned by the user. Called before
// the user record itself is deleted so no favorite outlives its owner.
func (s *FavoriteService) RemoveAllForUser(userID string) error {
	_, err := s.db.Exec("DELETE FROM favorites WHERE user_id = ?", userID)
	return err
}
