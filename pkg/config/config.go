// Package config holds the process configuration for the debate-archive
// binaries. Values are layered from defaults, an optional YAML file, and
// DEBATE_-prefixed environment variables.
package config

import "time"

// Config contains everything the binaries need to run.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects "console" or "json" output.
	LogFormat string `koanf:"log_format"`

	// FeedURLs lists the syndication feeds to ingest. From the
	// environment this is a comma-separated list.
	FeedURLs []string `koanf:"feed_urls"`

	// FeedTimeout bounds one feed fetch+parse.
	FeedTimeout time.Duration `koanf:"feed_timeout"`

	// TranscriberURL is the base URL of the transcription service.
	TranscriberURL string `koanf:"transcriber_url"`

	// TranscriberTimeout bounds one transcription call. Audio runs long,
	// so this is minutes where the feed timeout is seconds.
	TranscriberTimeout time.Duration `koanf:"transcriber_timeout"`

	// MongoURI, MongoDatabase, and EpisodeCollection locate the episode
	// and crosscheck record store.
	MongoURI          string `koanf:"mongo_uri"`
	MongoDatabase     string `koanf:"mongo_database"`
	EpisodeCollection string `koanf:"episode_collection"`

	// PostgresDSN selects a plain Postgres argument store. Leave empty
	// and set the Supabase values to use a Supabase-hosted one instead.
	PostgresDSN      string `koanf:"postgres_dsn"`
	SupabaseURL      string `koanf:"supabase_url"`
	SupabaseKey      string `koanf:"supabase_key"`
	SupabasePassword string `koanf:"supabase_password"`

	// FeedWorkers and EpisodeWorkers bound pipeline concurrency.
	FeedWorkers    int `koanf:"feed_workers"`
	EpisodeWorkers int `koanf:"episode_workers"`
}

// New returns a Config with the defaults for a local setup.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "console",
		FeedTimeout:        30 * time.Second,
		TranscriberURL:     "http://localhost:9090",
		TranscriberTimeout: 2 * time.Minute,
		MongoURI:           "mongodb://localhost:27017",
		MongoDatabase:      "debatearchive",
		EpisodeCollection:  "episodes",
		FeedWorkers:        4,
		EpisodeWorkers:     8,
	}
}
