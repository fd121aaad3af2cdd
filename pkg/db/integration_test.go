package db

import (
	"context"
	"os"
	"testing"
	"time"

	"debate-archive/pkg/domain"
)

func TestIntegration_EpisodeRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	dbClient, ctx := setupMongo(t)
	defer dbClient.Close(ctx)

	episodes := []*domain.Episode{
		{
			Id:          "debate-001",
			Title:       "This House Would Ban Private Schools",
			AudioURL:    "https://example.com/audio/debate-001.mp3",
			PublishedAt: "Mon, 06 Jan 2025 10:00:00 GMT",
			Description: "Opening round of the winter series.",
		},
		{
			Id:          "debate-002",
			Title:       "This House Believes AI Should Be Regulated",
			AudioURL:    "https://example.com/audio/debate-002.mp3",
			PublishedAt: "Mon, 13 Jan 2025 10:00:00 GMT",
		},
	}

	for _, episode := range episodes {
		if err := dbClient.SaveEpisode(ctx, episode); err != nil {
			t.Fatalf("Failed to save episode %s: %v", episode.Id, err)
		}
	}

	// Saving again must upsert, not duplicate
	if err := dbClient.SaveEpisode(ctx, episodes[0]); err != nil {
		t.Fatalf("Failed to re-save episode: %v", err)
	}

	ids, err := dbClient.GetAllEpisodeIds(ctx)
	if err != nil {
		t.Fatalf("Failed to get episode ids: %v", err)
	}

	for _, episode := range episodes {
		if !ids[episode.Id] {
			t.Errorf("Expected id %s to be in stored ids, got: %v", episode.Id, ids)
		}
	}
}

func TestIntegration_CrosscheckRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	dbClient, ctx := setupMongo(t)
	defer dbClient.Close(ctx)

	provided := "welcome to the chamber"
	record := &domain.CrosscheckRecord{
		EpisodeId: "debate-004",
		TranscriptCrosscheck: domain.TranscriptCrosscheck{
			GeneratedTranscript: "welcome to the chamber",
			ProvidedTranscript:  &provided,
			Similarity:          1,
			Diff:                []domain.DiffEntry{},
		},
		CheckedAt: time.Now().UTC(),
	}

	if err := dbClient.SaveCrosscheck(ctx, record); err != nil {
		t.Fatalf("Failed to save crosscheck: %v", err)
	}

	fetched, err := dbClient.GetCrosscheck(ctx, "debate-004")
	if err != nil {
		t.Fatalf("Failed to get crosscheck: %v", err)
	}

	if fetched.EpisodeId != record.EpisodeId {
		t.Errorf("Expected episode id %q, got %q", record.EpisodeId, fetched.EpisodeId)
	}
	if fetched.Similarity != 1 {
		t.Errorf("Expected similarity 1, got %f", fetched.Similarity)
	}
	if fetched.ProvidedTranscript == nil || *fetched.ProvidedTranscript != provided {
		t.Errorf("Expected provided transcript %q, got %v", provided, fetched.ProvidedTranscript)
	}
}

func TestIntegration_ArgumentStoreRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	store, ctx := setupArgumentStore(t)

	base := time.Date(2025, 2, 10, 19, 0, 0, 0, time.UTC)
	records := []domain.ArgumentRecord{
		{DebateId: "d1", ParticipantId: "alice", Argument: "opening statement", Timestamp: base},
		{DebateId: "d1", ParticipantId: "bob", Argument: "rebuttal", Timestamp: base.Add(time.Minute)},
		{DebateId: "d2", ParticipantId: "alice", Argument: "closing statement", Timestamp: base.Add(2 * time.Minute)},
	}

	if err := store.InsertRecords(ctx, records); err != nil {
		t.Fatalf("Failed to insert records: %v", err)
	}

	aliceRecords, err := store.RecordsByParticipant(ctx, "alice")
	if err != nil {
		t.Fatalf("Failed to query alice's records: %v", err)
	}

	if len(aliceRecords) < 2 {
		t.Fatalf("Expected at least 2 records for alice, got %d", len(aliceRecords))
	}
	for _, record := range aliceRecords {
		if record.ParticipantId != "alice" {
			t.Errorf("Expected only alice's records, got one for %q", record.ParticipantId)
		}
	}

	all, err := store.AllRecords(ctx)
	if err != nil {
		t.Fatalf("Failed to query all records: %v", err)
	}
	if len(all) < len(records) {
		t.Errorf("Expected at least %d records, got %d", len(records), len(all))
	}
}

func TestIntegration_ParticipantRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	store, ctx := setupArgumentStore(t)

	participant := domain.Participant{
		Id:      "alice",
		Name:    "Alice Chen",
		Aliases: []string{"A. Chen", "alice_c"},
	}

	if err := store.UpsertParticipant(ctx, participant); err != nil {
		t.Fatalf("Failed to upsert participant: %v", err)
	}

	// Upserting again with a new name must update in place
	participant.Name = "Alice Chen-Okafor"
	if err := store.UpsertParticipant(ctx, participant); err != nil {
		t.Fatalf("Failed to re-upsert participant: %v", err)
	}

	fetched, err := store.GetParticipant(ctx, "alice")
	if err != nil {
		t.Fatalf("Failed to get participant: %v", err)
	}

	if fetched.Name != "Alice Chen-Okafor" {
		t.Errorf("Expected updated name %q, got %q", "Alice Chen-Okafor", fetched.Name)
	}
	if len(fetched.Aliases) != 2 || fetched.Aliases[0] != "A. Chen" {
		t.Errorf("Expected aliases to round-trip, got %v", fetched.Aliases)
	}
}

// setupMongo connects to the test MongoDB instance, skipping the test when
// none is configured or reachable.
func setupMongo(t *testing.T) (*Client, context.Context) {
	t.Helper()

	uri := os.Getenv("DEBATE_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("DEBATE_TEST_MONGO_URI not set")
	}

	dbClient := NewClient(uri, "debatearchive_test", "episodes_test")
	ctx := context.Background()

	if err := dbClient.Connect(ctx); err != nil {
		t.Skipf("MongoDB not reachable: %v", err)
	}

	return dbClient, ctx
}

// setupArgumentStore connects to the test Postgres instance, skipping the
// test when none is configured or reachable.
func setupArgumentStore(t *testing.T) (*ArgumentStore, context.Context) {
	t.Helper()

	dsn := os.Getenv("DEBATE_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("DEBATE_TEST_POSTGRES_DSN not set")
	}

	pgClient := NewPostgresClient(PostgresConfig{DSN: dsn})
	ctx := context.Background()

	if err := pgClient.Connect(ctx); err != nil {
		t.Skipf("Postgres not reachable: %v", err)
	}
	t.Cleanup(func() { pgClient.Close() })

	store := NewArgumentStore(pgClient)
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("Failed to ensure schema: %v", err)
	}

	return store, ctx
}
