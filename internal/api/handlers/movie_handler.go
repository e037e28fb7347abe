package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/cinesky/cinesky-be/internal/tmdb"
)

// MovieHandler proxies read-only catalog lookups so the catalog bearer token
// never reaches the browser. No caching, no persistence.
type MovieHandler struct {
	catalog *tmdb.Client
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(catalog *tmdb.Client) *MovieHandler {
	return &MovieHandler{catalog: catalog}
}

// Popular returns the current popular-movies page.
func (h *MovieHandler) Popular(w http.ResponseWriter, r *http.Request) {
	movies, err := h.catalog.PopularMovies(r.Context())
	if err != nil {
		h.upstreamError(w, err, "Failed to fetch popular movies")
		return
	}
	respondJSON(w, http.StatusOK, movies)
}

// Search returns movies matching the query parameter.
func (h *MovieHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		respondMessage(w, http.StatusBadRequest, "Missing query parameter")
		return
	}

	movies, err := h.catalog.SearchMovies(r.Context(), query)
	if err != nil {
		h.upstreamError(w, err, "Failed to search movies")
		return
	}
	respondJSON(w, http.StatusOK, movies)
}

// Details returns one movie with its cast credits.
func (h *MovieHandler) Details(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid movie id")
		return
	}

	movie, err := h.catalog.MovieDetails(r.Context(), id)
	if err != nil {
		h.upstreamError(w, err, "Failed to fetch movie details")
		return
	}
	respondJSON(w, http.StatusOK, movie)
}

// Reviews returns the reviews page for one movie.
func (h *MovieHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid movie id")
		return
	}

	reviews, err := h.catalog.Reviews(r.Context(), id)
	if err != nil {
		h.upstreamError(w, err, "Failed to fetch reviews")
		return
	}
	respondJSON(w, http.StatusOK, reviews)
}

// Person returns one person with their movie credits.
func (h *MovieHandler) Person(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid person id")
		return
	}

	person, err := h.catalog.PersonDetails(r.Context(), id)
	if err != nil {
		h.upstreamError(w, err, "Failed to fetch person details")
		return
	}
	respondJSON(w, http.StatusOK, person)
}

func (h *MovieHandler) upstreamError(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, tmdb.ErrUpstream) {
		log.Warn().Err(err).Msg(msg)
		respondMessage(w, http.StatusBadGateway, msg)
		return
	}
	log.Error().Err(err).Msg(msg)
	respondMessage(w, http.StatusBadGateway, msg)
}
