// Package config loads application configuration from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultSongsFile is loaded when SONGSHELF_SONGS is not set
const DefaultSongsFile = "sampleSongInput.txt"

// Config holds all configuration values for the songshelf CLI.
// Command-line flags override these values when they are set explicitly.
type Config struct {
	// SongsFile is the song file loaded at startup. Defaults to "sampleSongInput.txt".
	SongsFile string

	// Strict makes malformed song lines an error instead of skipping them.
	Strict bool

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// LogFormat selects the log handler: "text" (default) or "json".
	LogFormat string

	// Spotify and YouTube OAuth credentials. Only needed for remote imports.
	SpotifyID           string
	SpotifySecret       string
	YouTubeClientID     string
	YouTubeClientSecret string

	// RedirectURL is the local OAuth callback used by remote sources.
	RedirectURL string
}

// Load reads .env (if present) and then the environment.
// Values already set in the environment win over .env entries.
func Load() (Config, error) {
	return LoadFiles(".env")
}

// LoadFiles is Load with explicit dotenv files. Missing files are ignored.
func LoadFiles(files ...string) (Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: reading %s: %w", f, err)
		}
	}

	cfg := Config{
		SongsFile:           getEnv("SONGSHELF_SONGS", DefaultSongsFile),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           strings.ToLower(getEnv("LOG_FORMAT", "text")),
		SpotifyID:           os.Getenv("SPOTIFY_ID"),
		SpotifySecret:       os.Getenv("SPOTIFY_SECRET"),
		YouTubeClientID:     os.Getenv("YOUTUBE_CLIENT_ID"),
		YouTubeClientSecret: os.Getenv("YOUTUBE_CLIENT_SECRET"),
		RedirectURL:         getEnv("SONGSHELF_REDIRECT_URL", "http://localhost:8080/callback"),
	}

	var invalid []string

	strict, err := strconv.ParseBool(getEnv("SONGSHELF_STRICT", "false"))
	if err != nil {
		invalid = append(invalid, "SONGSHELF_STRICT")
	}
	cfg.Strict = strict

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		invalid = append(invalid, "LOG_FORMAT")
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}
	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
