package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/cinesky/cinesky-be/internal/auth"
	"github.com/cinesky/cinesky-be/internal/services"
)

// FavoriteHandler handles HTTP requests for a user's favorites list. All
// routes require a session; every operation is scoped to the authenticated
// user's own favorites.
type FavoriteHandler struct {
	service services.FavoriteServiceProvider
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(service services.FavoriteServiceProvider) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

// AddFavoritePayload defines the structure for add-favorite requests. Field
// names follow the catalog API so the frontend can pass a movie through
// unchanged.
type AddFavoritePayload struct {
	MovieID     int64    `json:"movieId"`
	Title       string   `json:"title"`
	PosterPath  *string  `json:"poster_path"`
	VoteAverage *float64 `json:"vote_average"`
}

// List returns the authenticated user's favorites in insertion order.
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user claims from context")
		respondMessage(w, http.StatusInternalServerError, "Failed to fetch favorites")
		return
	}

	favorites, err := h.service.ListFavorites(claims.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to fetch favorites")
		respondMessage(w, http.StatusInternalServerError, "Failed to fetch favorites")
		return
	}

	respondJSON(w, http.StatusOK, favorites)
}

// Add stores a new favorite for the authenticated user.
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user claims from context")
		respondMessage(w, http.StatusInternalServerError, "Failed to add favorite")
		return
	}

	var payload AddFavoritePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.MovieID == 0 || payload.Title == "" {
		respondMessage(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	favorite, err := h.service.AddFavorite(claims.UserID, payload.MovieID, payload.Title, payload.PosterPath, payload.VoteAverage)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateFavorite) {
			respondMessage(w, http.StatusBadRequest, "Movie already in favorites")
			return
		}
		log.Error().Err(err).Str("user_id", claims.UserID).Int64("movie_id", payload.MovieID).Msg("Failed to add favorite")
		respondMessage(w, http.StatusInternalServerError, "Failed to add favorite")
		return
	}

	respondJSON(w, http.StatusCreated, favorite)
}

// Remove deletes the authenticated user's favorite for the movie named in
// the URL.
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user claims from context")
		respondMessage(w, http.StatusInternalServerError, "Failed to remove favorite")
		return
	}

	movieID, err := strconv.ParseInt(chi.URLParam(r, "movieId"), 10, 64)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid movie id")
		return
	}

	if err := h.service.RemoveFavorite(claims.UserID, movieID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Favorite not found")
			return
		}
		log.Error().Err(err).Str("user_id", claims.UserID).Int64("movie_id", movieID).Msg("Failed to remove favorite")
		respondMessage(w, http.StatusInternalServerError, "Failed to remove favorite")
		return
	}

	respondMessage(w, http.StatusOK, "Favorite removed")
}
