// Package replication mirrors episode documents from MongoDB into the SQL
// database that holds the argument records, so argument trails can be
// joined with episode metadata without crossing stores.
package replication

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"debate-archive/pkg/db"
	"debate-archive/pkg/domain"
	"debate-archive/pkg/worker"

	"github.com/rs/zerolog"
)

const (
	defaultBatchSize = 100
	defaultWorkers   = 5
)

// Config wires the replication dependencies.
type Config struct {
	Mongo *db.Client
	SQL   db.DBProvider

	// BatchSize caps how many episodes one existence check and one insert
	// transaction cover. Zero picks a default.
	BatchSize int

	// Workers is how many batches run in parallel. Zero picks a default.
	Workers int

	Log *zerolog.Logger
}

// Replicator copies episodes from MongoDB to the SQL database.
//
// This is intentionally a one-shot, "copy everything new" flow. Episodes
// already present on the SQL side are left untouched.
type Replicator struct {
	mongo *db.Client
	sql   db.DBProvider

	batchSize int
	pool      *worker.Pool[[]domain.Episode]
	log       zerolog.Logger
}

func NewReplicator(cfg Config) (*Replicator, error) {
	if cfg.Mongo == nil {
		return nil, fmt.Errorf("mongo client is required")
	}
	if cfg.SQL == nil {
		return nil, fmt.Errorf("sql client is required")
	}

	batchSize := cfg.BatchSize
	if batchSize < 1 {
		batchSize = defaultBatchSize
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = defaultWorkers
	}
	log := zerolog.Nop()
	if cfg.Log != nil {
		log = *cfg.Log
	}

	return &Replicator{
		mongo:     cfg.Mongo,
		sql:       cfg.SQL,
		batchSize: batchSize,
		pool:      worker.NewPool[[]domain.Episode](workers),
		log:       log,
	}, nil
}

// ReplicateEpisodes reads all episodes from Mongo and inserts the ones the
// SQL side does not have yet. It returns how many episodes were read and
// how many were newly inserted.
func (r *Replicator) ReplicateEpisodes(ctx context.Context) (int, int, error) {
	if err := r.ensureEpisodeSchema(ctx); err != nil {
		return 0, 0, err
	}

	episodes, err := r.mongo.GetAllEpisodes(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("read episodes from mongo: %w", err)
	}

	r.log.Info().Int("episodes", len(episodes)).Msg("Loaded episodes from Mongo, processing in batches")

	inserted, err := r.processBatches(ctx, episodes)
	if err != nil {
		return len(episodes), inserted, err
	}

	r.log.Info().Int("processed", len(episodes)).Int("inserted", inserted).Msg("Replication complete")
	return len(episodes), inserted, nil
}

// processBatches runs every batch through the worker pool and returns the
// total insert count. The first batch error fails the whole run.
func (r *Replicator) processBatches(ctx context.Context, episodes []domain.Episode) (int, error) {
	batches := splitBatches(episodes, r.batchSize)

	var mu sync.Mutex
	inserted := 0

	results := r.pool.Run(ctx, batches, func(ctx context.Context, batch []domain.Episode) error {
		n, err := r.processBatch(ctx, batch)
		if err != nil {
			return err
		}
		mu.Lock()
		inserted += n
		mu.Unlock()
		return nil
	})

	for _, res := range results {
		if res.Err != nil {
			return inserted, res.Err
		}
	}

	return inserted, nil
}

// splitBatches cuts episodes into slices of at most size entries, keeping
// collection order inside each batch.
func splitBatches(episodes []domain.Episode, size int) [][]domain.Episode {
	if size < 1 {
		size = 1
	}

	batches := make([][]domain.Episode, 0, (len(episodes)+size-1)/size)
	for start := 0; start < len(episodes); start += size {
		end := start + size
		if end > len(episodes) {
			end = len(episodes)
		}
		batches = append(batches, episodes[start:end])
	}
	return batches
}

// processBatch checks which episodes of the batch already exist, then
// inserts the new ones in one transaction.
func (r *Replicator) processBatch(ctx context.Context, batch []domain.Episode) (int, error) {
	existing, err := r.existingEpisodeIds(ctx, batch)
	if err != nil {
		return 0, fmt.Errorf("check existing episode ids: %w", err)
	}

	toInsert := filterNewEpisodes(batch, existing)
	if len(toInsert) == 0 {
		return 0, nil
	}

	if err := r.insertEpisodesTx(ctx, toInsert); err != nil {
		return 0, fmt.Errorf("insert episode batch: %w", err)
	}

	r.log.Debug().Int("batch", len(batch)).Int("inserted", len(toInsert)).Msg("Replicated batch")
	return len(toInsert), nil
}

func (r *Replicator) ensureEpisodeSchema(ctx context.Context) error {
	if r.sql.DB() == nil {
		return fmt.Errorf("sql DB not connected")
	}

	// published_at stays the raw feed string, so the column is TEXT rather
	// than a timestamp.
	const ddl = `
CREATE TABLE IF NOT EXISTS episode (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL DEFAULT '',
  audio_url TEXT NOT NULL DEFAULT '',
  published_at TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT ''
);`

	if _, err := r.sql.DB().ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create episode table: %w", err)
	}
	return nil
}

// existingEpisodeIds checks which ids from the batch are already present on
// the SQL side. Checking per batch keeps memory flat however large the
// episode collection grows.
func (r *Replicator) existingEpisodeIds(ctx context.Context, batch []domain.Episode) (map[string]bool, error) {
	if r.sql.DB() == nil {
		return nil, fmt.Errorf("sql DB not connected")
	}

	ids := make([]string, 0, len(batch))
	for _, e := range batch {
		if e.Id != "" {
			ids = append(ids, e.Id)
		}
	}
	if len(ids) == 0 {
		return map[string]bool{}, nil
	}

	query, args := buildIdInQuery(ids)

	rows, err := r.sql.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query existing ids: %w", err)
	}
	defer rows.Close()

	existing := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		if id != "" {
			existing[id] = true
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return existing, nil
}

// buildIdInQuery builds the existence check for a batch of episode ids.
func buildIdInQuery(ids []string) (string, []any) {
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := "SELECT id FROM episode WHERE id IN (" + strings.Join(placeholders, ", ") + ")"
	return query, args
}

// filterNewEpisodes drops episodes that already exist on the SQL side or
// carry no id.
func filterNewEpisodes(batch []domain.Episode, existing map[string]bool) []domain.Episode {
	out := make([]domain.Episode, 0, len(batch))
	for _, e := range batch {
		if e.Id == "" {
			continue
		}
		if existing[e.Id] {
			continue
		}
		out = append(out, e)
	}
	return out
}

// insertEpisodesTx inserts a batch of episodes within one transaction.
// ON CONFLICT DO NOTHING keeps two racing runs from failing each other.
func (r *Replicator) insertEpisodesTx(ctx context.Context, batch []domain.Episode) error {
	tx, err := r.sql.DB().BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO episode (id, title, audio_url, published_at, description)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range batch {
		if _, err := stmt.ExecContext(ctx, e.Id, e.Title, e.AudioURL, e.PublishedAt, e.Description); err != nil {
			return fmt.Errorf("insert episode %s: %w", e.Id, err)
		}
	}

	return tx.Commit()
}
