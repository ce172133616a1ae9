// Package config manages application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration for the statistics pipeline.
type Config struct {
	// APIKey is the YouTube Data API key used by the fetcher.
	APIKey string `json:"api_key"`
	// RateLimit is the number of API requests allowed per second.
	RateLimit float64 `json:"rate_limit"`
	// BatchSize is the number of video IDs per statistics request (max 50).
	BatchSize int `json:"batch_size"`

	// PlaylistsPath is the JSON file mapping playlist IDs to titles.
	PlaylistsPath string `json:"playlists_path"`
	// AliasesPath is the JSON file mapping raw character names to canonical ones.
	AliasesPath string `json:"aliases_path"`
	// RawStatsPath is the fetcher's output TSV.
	RawStatsPath string `json:"raw_stats_path"`
	// TaggedStatsPath is the annotated TSV shared by the tagger, the player
	// inferrer and the aggregator.
	TaggedStatsPath string `json:"tagged_stats_path"`
	// StatsDir is the directory for ranked statistics tables.
	StatsDir string `json:"stats_dir"`
	// GraphsDir is the directory for rendered charts.
	GraphsDir string `json:"graphs_dir"`

	// MinPlayerMatches is the minimum match count for a player to appear in
	// the average-views table.
	MinPlayerMatches int64 `json:"min_player_matches"`
	// MinPlayerViews is the minimum total views (exclusive) for a player to
	// appear in the per-view ratio tables.
	MinPlayerViews int64 `json:"min_player_views"`
}

// DefaultConfig returns configuration with safe defaults.
func DefaultConfig() *Config {
	return &Config{
		RateLimit:        1.0,
		BatchSize:        50,
		PlaylistsPath:    filepath.Join("input_jsons", "playlists.json"),
		AliasesPath:      filepath.Join("input_jsons", "characters.json"),
		RawStatsPath:     "raw_video_stats.tsv",
		TaggedStatsPath:  "character_video_stats.tsv",
		StatsDir:         "output_statistics",
		GraphsDir:        "output_graphs",
		MinPlayerMatches: 3,
		MinPlayerViews:   100000,
	}
}

// Load loads configuration from environment variables, config file, and
// applies defaults. Priority: env vars > config file > defaults.
// A .env file in the working directory is read into the environment first,
// if present.
func Load() (*Config, error) {
	// Optional; missing .env is not an error.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if err := cfg.loadFromFile(); err != nil {
		// Config file is optional
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile attempts to load config from smashstats.json in the current
// directory or the user config directory.
func (c *Config) loadFromFile() error {
	paths := []string{
		"smashstats.json",
		filepath.Join(os.Getenv("HOME"), ".config", "smashstats", "smashstats.json"),
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}

		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	}

	return os.ErrNotExist
}

// loadFromEnv overrides config with environment variables. The bare API_KEY
// variable is honored as a fallback for .env files that predate the
// SMASHSTATS_ prefix.
func (c *Config) loadFromEnv() {
	if v := os.Getenv("SMASHSTATS_API_KEY"); v != "" {
		c.APIKey = v
	} else if v := os.Getenv("API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("SMASHSTATS_RATE_LIMIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RateLimit = f
		}
	}
	if v := os.Getenv("SMASHSTATS_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.BatchSize = n
		}
	}
	if v := os.Getenv("SMASHSTATS_PLAYLISTS"); v != "" {
		c.PlaylistsPath = v
	}
	if v := os.Getenv("SMASHSTATS_ALIASES"); v != "" {
		c.AliasesPath = v
	}
	if v := os.Getenv("SMASHSTATS_RAW_STATS"); v != "" {
		c.RawStatsPath = v
	}
	if v := os.Getenv("SMASHSTATS_TAGGED_STATS"); v != "" {
		c.TaggedStatsPath = v
	}
	if v := os.Getenv("SMASHSTATS_STATS_DIR"); v != "" {
		c.StatsDir = v
	}
	if v := os.Getenv("SMASHSTATS_GRAPHS_DIR"); v != "" {
		c.GraphsDir = v
	}
	if v := os.Getenv("SMASHSTATS_MIN_PLAYER_MATCHES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.MinPlayerMatches = n
		}
	}
	if v := os.Getenv("SMASHSTATS_MIN_PLAYER_VIEWS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.MinPlayerViews = n
		}
	}
}

// Validate checks configuration for invalid values.
func (c *Config) Validate() error {
	if c.RateLimit <= 0 {
		return fmt.Errorf("rate_limit must be positive, got %v", c.RateLimit)
	}
	if c.BatchSize < 1 || c.BatchSize > 50 {
		return fmt.Errorf("batch_size must be between 1 and 50, got %d", c.BatchSize)
	}
	if c.MinPlayerMatches < 0 {
		return fmt.Errorf("min_player_matches must be non-negative, got %d", c.MinPlayerMatches)
	}
	if c.MinPlayerViews < 0 {
		return fmt.Errorf("min_player_views must be non-negative, got %d", c.MinPlayerViews)
	}
	return nil
}

// LoadPlaylists reads a playlist list file: a JSON object mapping playlist
// IDs to playlist titles.
func LoadPlaylists(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read playlists %s: %w", path, err)
	}

	playlists := make(map[string]string)
	if err := json.Unmarshal(data, &playlists); err != nil {
		return nil, fmt.Errorf("parse playlists %s: %w", path, err)
	}
	return playlists, nil
}
