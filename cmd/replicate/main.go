package main

import (
	"context"
	"flag"
	"log"
	"time"

	"debate-archive/pkg/config"
	"debate-archive/pkg/db"
	"debate-archive/pkg/logging"
	"debate-archive/pkg/replication"
)

func main() {
	var (
		batchSize = flag.Int("batch", 0, "Episodes per replication batch, 0 uses the default")
		workers   = flag.Int("workers", 0, "Parallel batches, 0 uses the default")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logging.Init(logging.Options{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "debate-archive",
	})
	logger := logging.Named("replicate")

	ctx := context.Background()

	mongoClient := db.NewClient(cfg.MongoURI, cfg.MongoDatabase, cfg.EpisodeCollection)
	if err := mongoClient.Connect(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to episode store")
	}
	defer mongoClient.Close(ctx)

	provider, closeProvider, err := db.ConnectSQLBackend(ctx,
		cfg.PostgresDSN, cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabasePassword)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to sql backend")
	}
	defer closeProvider()

	replicator, err := replication.NewReplicator(replication.Config{
		Mongo:     mongoClient,
		SQL:       provider,
		BatchSize: *batchSize,
		Workers:   *workers,
		Log:       logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build replicator")
	}

	start := time.Now()
	processed, inserted, err := replicator.ReplicateEpisodes(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("replication failed")
	}

	logger.Info().
		Int("processed", processed).
		Int("inserted", inserted).
		Dur("elapsed", time.Since(start)).
		Msg("done")
}
