package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"debate-archive/pkg/domain"
)

const createArgumentRecordsTable = `
CREATE TABLE IF NOT EXISTS argument_records (
	id BIGSERIAL PRIMARY KEY,
	debate_id TEXT NOT NULL,
	participant_id TEXT NOT NULL,
	argument TEXT NOT NULL,
	made_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS argument_records_participant_idx
	ON argument_records (participant_id, made_at);
CREATE TABLE IF NOT EXISTS participants (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	aliases TEXT NOT NULL DEFAULT '[]'
);
`

// ArgumentStore persists debate argument records in Postgres. It works
// against any DBProvider, so it runs unchanged on a plain Postgres
// instance or a Supabase-hosted one.
type ArgumentStore struct {
	provider DBProvider
}

// NewArgumentStore creates an argument store backed by the given provider.
func NewArgumentStore(provider DBProvider) *ArgumentStore {
	return &ArgumentStore{provider: provider}
}

// EnsureSchema creates the argument_records table and its index if they do
// not exist yet.
func (s *ArgumentStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.provider.DB().ExecContext(ctx, createArgumentRecordsTable); err != nil {
		return fmt.Errorf("ensure argument_records schema: %w", err)
	}
	return nil
}

// InsertRecords stores the given records in a single transaction. Insertion
// order is preserved by the serial primary key, which read paths order by.
func (s *ArgumentStore) InsertRecords(ctx context.Context, records []domain.ArgumentRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.provider.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO argument_records (debate_id, participant_id, argument, made_at) VALUES ($1, $2, $3, $4)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		if _, err := stmt.ExecContext(ctx, record.DebateId, record.ParticipantId, record.Argument, record.Timestamp); err != nil {
			return fmt.Errorf("insert record for debate %s: %w", record.DebateId, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert transaction: %w", err)
	}
	return nil
}

// UpsertParticipant inserts or updates a participant roster entry. Aliases
// are stored JSON-encoded so the column stays a single text value.
func (s *ArgumentStore) UpsertParticipant(ctx context.Context, participant domain.Participant) error {
	aliases, err := json.Marshal(participant.Aliases)
	if err != nil {
		return fmt.Errorf("encode aliases for %s: %w", participant.Id, err)
	}

	_, err = s.provider.DB().ExecContext(ctx,
		`INSERT INTO participants (id, name, aliases) VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, aliases = EXCLUDED.aliases`,
		participant.Id, participant.Name, string(aliases))
	if err != nil {
		return fmt.Errorf("upsert participant %s: %w", participant.Id, err)
	}
	return nil
}

// GetParticipant looks up a roster entry by id. The wrapped error matches
// sql.ErrNoRows when the participant is unknown.
func (s *ArgumentStore) GetParticipant(ctx context.Context, id string) (*domain.Participant, error) {
	var (
		participant domain.Participant
		aliases     string
	)
	err := s.provider.DB().QueryRowContext(ctx,
		`SELECT id, name, aliases FROM participants WHERE id = $1`, id).
		Scan(&participant.Id, &participant.Name, &aliases)
	if err != nil {
		return nil, fmt.Errorf("get participant %s: %w", id, err)
	}

	if err := json.Unmarshal([]byte(aliases), &participant.Aliases); err != nil {
		return nil, fmt.Errorf("decode aliases for %s: %w", id, err)
	}
	return &participant, nil
}

// RecordsByParticipant returns every record made by the given participant,
// in insertion order.
func (s *ArgumentStore) RecordsByParticipant(ctx context.Context, participantId string) ([]domain.ArgumentRecord, error) {
	rows, err := s.provider.DB().QueryContext(ctx,
		`SELECT debate_id, participant_id, argument, made_at FROM argument_records WHERE participant_id = $1 ORDER BY id`,
		participantId)
	if err != nil {
		return nil, fmt.Errorf("query records for participant %s: %w", participantId, err)
	}
	defer rows.Close()

	return scanArgumentRecords(rows)
}

// AllRecords returns every stored record in insertion order.
func (s *ArgumentStore) AllRecords(ctx context.Context) ([]domain.ArgumentRecord, error) {
	rows, err := s.provider.DB().QueryContext(ctx,
		`SELECT debate_id, participant_id, argument, made_at FROM argument_records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query all records: %w", err)
	}
	defer rows.Close()

	return scanArgumentRecords(rows)
}

func scanArgumentRecords(rows *sql.Rows) ([]domain.ArgumentRecord, error) {
	records := make([]domain.ArgumentRecord, 0)
	for rows.Next() {
		var record domain.ArgumentRecord
		if err := rows.Scan(&record.DebateId, &record.ParticipantId, &record.Argument, &record.Timestamp); err != nil {
			return nil, fmt.Errorf("scan argument record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate argument records: %w", err)
	}
	return records, nil
}
