package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cinesky/cinesky-be/internal/api"
	"github.com/cinesky/cinesky-be/internal/auth"
	"github.com/cinesky/cinesky-be/internal/config"
	"github.com/cinesky/cinesky-be/internal/database"
	"github.com/cinesky/cinesky-be/internal/logger"
	"github.com/cinesky/cinesky-be/internal/services"
	"github.com/cinesky/cinesky-be/internal/tmdb"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.IsProduction())

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up services
	sessions := auth.NewSessions(cfg.JWTSecret, cfg.IsProduction())
	userService := services.NewUserService(db)
	favoriteService := services.NewFavoriteService(db)
	catalog := tmdb.NewClient(cfg.TMDBAPIBase, cfg.TMDBImageBase, cfg.TMDBToken)

	// Set up router
	router := api.NewRouter(cfg.FrontendURL, sessions, userService, favoriteService, catalog)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("API server starting")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
