package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"debate-archive/pkg/argtrail"
	"debate-archive/pkg/config"
	"debate-archive/pkg/db"
	"debate-archive/pkg/domain"
)

func main() {
	var (
		participant = flag.String("participant", "", "Participant id to build the trail for (required)")
		recordsPath = flag.String("records", "", "JSON file with argument records; when empty, records come from the configured database")
	)
	flag.Parse()

	if *participant == "" {
		log.Fatal("Missing -participant")
	}

	var (
		records []domain.ArgumentRecord
		err     error
	)
	if *recordsPath != "" {
		records, err = recordsFromFile(*recordsPath)
	} else {
		records, err = recordsFromStore(context.Background(), *participant)
	}
	if err != nil {
		log.Fatalf("Failed to load argument records: %v", err)
	}

	tracker := argtrail.NewTracker()
	trail := tracker.Trail(records, *participant)

	if len(trail) == 0 {
		fmt.Printf("No arguments recorded for participant %s\n", *participant)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DEBATE\tARGUMENT")
	for _, entry := range trail {
		fmt.Fprintf(w, "%s\t%s\n", entry.DebateId, entry.Argument)
	}
	w.Flush()
}

func recordsFromFile(path string) ([]domain.ArgumentRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []domain.ArgumentRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

func recordsFromStore(ctx context.Context, participantId string) ([]domain.ArgumentRecord, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	provider, closeProvider, err := db.ConnectSQLBackend(ctx,
		cfg.PostgresDSN, cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabasePassword)
	if err != nil {
		return nil, err
	}
	defer closeProvider()

	store := db.NewArgumentStore(provider)
	return store.RecordsByParticipant(ctx, participantId)
}
