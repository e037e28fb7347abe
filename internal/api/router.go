package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/cinesky/cinesky-be/internal/api/handlers"
	"github.com/cinesky/cinesky-be/internal/auth"
	"github.com/cinesky/cinesky-be/internal/services"
	"github.com/cinesky/cinesky-be/internal/tmdb"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	frontendURL string,
	sessions *auth.Sessions,
	userService services.UserServiceProvider,
	favoriteService services.FavoriteServiceProvider,
	catalog *tmdb.Client,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// The session cookie only travels cross-origin if the SPA origin is
	// allowed with credentials.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, favoriteService, sessions)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	movieHandler := handlers.NewMovieHandler(catalog)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.With(sessions.Middleware()).Delete("/account", authHandler.DeleteAccount)
	})

	r.Route("/favorites", func(r chi.Router) {
		r.Use(sessions.Middleware())
		r.Get("/", favoriteHandler.List)
		r.Post("/", favoriteHandler.Add)
		r.Delete("/{movieId}", favoriteHandler.Remove)
	})

	// Read-only catalog proxy, public
	r.Route("/movies", func(r chi.Router) {
		r.Get("/popular", movieHandler.Popular)
		r.Get("/search", movieHandler.Search)
		r.Get("/{id}", movieHandler.Details)
		r.Get("/{id}/reviews", movieHandler.Reviews)
	})
	r.Get("/people/{id}", movieHandler.Person)

	return r
}
