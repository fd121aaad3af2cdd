package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"debate-archive/pkg/config"
	"debate-archive/pkg/db"
	"debate-archive/pkg/events"
	"debate-archive/pkg/logging"
	"debate-archive/pkg/pipeline"
)

func main() {
	var (
		feeds   = flag.String("feeds", "", "Comma-separated feed URLs, overrides the configured list")
		workers = flag.Int("workers", 0, "Episode worker count, overrides the configured value")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if *feeds != "" {
		cfg.FeedURLs = splitFeedList(*feeds)
	}
	if *workers > 0 {
		cfg.EpisodeWorkers = *workers
	}
	if len(cfg.FeedURLs) == 0 {
		log.Fatalf("No feed URLs configured, set DEBATE_FEED_URLS or pass -feeds")
	}

	logging.Init(logging.Options{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "debate-archive",
	})
	logger := logging.Named("crosscheck")

	ctx := context.Background()

	dbClient := db.NewClient(cfg.MongoURI, cfg.MongoDatabase, cfg.EpisodeCollection)
	if err := dbClient.Connect(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to record store")
	}
	defer dbClient.Close(ctx)

	pipe := pipeline.CrosscheckPipelineBuilder(
		dbClient,
		cfg.TranscriberURL,
		cfg.FeedTimeout,
		cfg.TranscriberTimeout,
		cfg.FeedWorkers,
		cfg.EpisodeWorkers,
		events.LogHook(logger),
		logger,
	)

	start := time.Now()
	summary, err := pipe.Run(ctx, cfg.FeedURLs)
	if err != nil {
		logger.Fatal().Err(err).Msg("crosscheck run failed")
	}

	logger.Info().
		Str("run_id", summary.RunId).
		Int("crosschecked", summary.Crosschecked).
		Int("skipped", summary.EpisodesSkipped).
		Int("feed_failures", summary.FeedFailures).
		Int("episode_failures", summary.EpisodeFailures).
		Dur("elapsed", time.Since(start)).
		Msg("done")
}

func splitFeedList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
