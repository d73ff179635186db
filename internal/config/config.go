package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds everything the server reads from the environment. It is
// built once in main and passed down explicitly, so nothing else in the
// codebase touches os.Getenv.
type Config struct {
	Port            string
	MongoURI        string
	MongoDbName     string
	TokenSecret     string
	GoogleAPIKey    string
	GoogleBaseURL   string
	AllowedOrigins  []string
	SearchFromCache bool
}

const defaultGoogleBaseURL = "https://www.googleapis.com/books/v1"

func Load() (Config, error) {
	cfg := Config{
		Port:          os.Getenv("PORT"),
		MongoURI:      os.Getenv("MONGODB_URI"),
		MongoDbName:   os.Getenv("MONGODB_DB"),
		TokenSecret:   os.Getenv("JWT_SECRET"),
		GoogleAPIKey:  os.Getenv("GOOGLE_BOOKS_API_KEY"),
		GoogleBaseURL: os.Getenv("GOOGLE_BOOKS_BASE_URL"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.MongoURI == "" {
		return Config{}, fmt.Errorf("MONGODB_URI is required (e.g. mongodb://localhost:27017)")
	}
	if cfg.MongoDbName == "" {
		cfg.MongoDbName = "booklab"
	}
	if cfg.TokenSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.GoogleBaseURL == "" {
		cfg.GoogleBaseURL = defaultGoogleBaseURL
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	cfg.SearchFromCache = os.Getenv("SEARCH_CACHE_ENABLED") == "true"

	return cfg, nil
}
