package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort   int
	DatabasePath string
	JWTSecret    string
	FrontendURL  string // SPA origin allowed by CORS
	AppEnv       string

	TMDBAPIBase   string
	TMDBImageBase string
	TMDBToken     string // Bearer token for the catalog API
}

// Load loads configuration from environment variables or sets defaults.
// A .env file in the working directory is read first if present; real
// environment variables take precedence over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	portStr := getEnv("PORT", "4000")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ServerPort:    port,
		DatabasePath:  getEnv("DATABASE_PATH", "./cinesky.db"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:5173"),
		AppEnv:        getEnv("APP_ENV", "development"),
		TMDBAPIBase:   getEnv("TMDB_API_BASE", "https://api.themoviedb.org/3"),
		TMDBImageBase: getEnv("TMDB_IMAGE_BASE", "https://image.tmdb.org/t/p"),
		TMDBToken:     os.Getenv("TMDB_TOKEN"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	return cfg, nil
}

// IsProduction reports whether the app runs with production settings
// (secure cookies).
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
