// Package pipeline orchestrates the crosscheck run: feeds are ingested
// into episodes, episodes that already have a stored crosscheck are
// skipped, and the rest are transcribed, compared against any
// publisher-provided transcript, and persisted. Individual feed and
// episode failures are counted and reported; the run itself fails only
// when nothing succeeded.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"debate-archive/pkg/domain"
	"debate-archive/pkg/events"
	"debate-archive/pkg/worker"
)

// EpisodeIngestor turns one syndication feed into episode records.
type EpisodeIngestor interface {
	Ingest(ctx context.Context, feedURL string) ([]domain.Episode, error)
}

// TranscriptChecker generates a transcript for an audio reference and
// compares it against the provided transcript when one exists.
type TranscriptChecker interface {
	Crosscheck(ctx context.Context, audioURL string, provided *string) (*domain.TranscriptCrosscheck, error)
}

// ProvidedTranscriptSource retrieves the publisher-provided transcript for
// an episode. Returning (nil, nil) means the publisher offers none.
type ProvidedTranscriptSource interface {
	ForEpisode(ctx context.Context, episode domain.Episode) (*string, error)
}

// RecordStore persists episodes and their crosschecks.
type RecordStore interface {
	SaveEpisode(ctx context.Context, episode *domain.Episode) error
	SaveCrosscheck(ctx context.Context, record *domain.CrosscheckRecord) error
	ExistingCrosscheckIds(ctx context.Context, episodeIds []string) (map[string]bool, error)
}

// Config assembles a pipeline from its components.
type Config struct {
	Ingestor EpisodeIngestor
	Checker  TranscriptChecker
	// Source is optional. When nil, every episode is checked without a
	// provided transcript and scores similarity 1.
	Source ProvidedTranscriptSource
	Store  RecordStore

	FeedWorkers    int
	EpisodeWorkers int

	Hook events.Hook
	Log  *zerolog.Logger
}

// Summary reports what one pipeline run did.
type Summary struct {
	RunId           string
	FeedsProcessed  int
	FeedFailures    int
	EpisodesFound   int
	EpisodesSkipped int
	Crosschecked    int
	EpisodeFailures int
	Elapsed         time.Duration
}

// Pipeline runs the full feed-to-crosscheck flow.
type Pipeline struct {
	ingestor EpisodeIngestor
	checker  TranscriptChecker
	source   ProvidedTranscriptSource
	store    RecordStore

	feedPool    *worker.Pool[string]
	episodePool *worker.Pool[domain.Episode]

	hook events.Hook
	log  zerolog.Logger
}

// NewPipeline creates a pipeline from the given configuration.
func NewPipeline(cfg Config) *Pipeline {
	log := zerolog.Nop()
	if cfg.Log != nil {
		log = *cfg.Log
	}

	return &Pipeline{
		ingestor:    cfg.Ingestor,
		checker:     cfg.Checker,
		source:      cfg.Source,
		store:       cfg.Store,
		feedPool:    worker.NewPool[string](cfg.FeedWorkers),
		episodePool: worker.NewPool[domain.Episode](cfg.EpisodeWorkers),
		hook:        cfg.Hook,
		log:         log,
	}
}

// Run ingests every feed, crosschecks the episodes that have no stored
// crosscheck yet, and returns a summary of the run. It returns ErrNoFeeds
// for an empty feed list, ErrAllFeedsFailed when no feed could be
// ingested, and ErrAllEpisodesFailed when every attempted episode failed.
func (p *Pipeline) Run(ctx context.Context, feedURLs []string) (*Summary, error) {
	if len(feedURLs) == 0 {
		return nil, ErrNoFeeds
	}
	if p.ingestor == nil || p.checker == nil || p.store == nil {
		return nil, fmt.Errorf("pipeline needs an ingestor, a checker, and a store")
	}

	runId := uuid.NewString()
	started := time.Now()
	log := p.log.With().Str("run_id", runId).Logger()

	log.Info().Int("feeds", len(feedURLs)).Msg("starting crosscheck run")
	p.hook.Emit("pipeline", "run_started", map[string]any{
		"run_id": runId,
		"feeds":  len(feedURLs),
	})

	episodes, feedFailures := p.ingestFeeds(ctx, log, feedURLs)

	summary := &Summary{
		RunId:          runId,
		FeedsProcessed: len(feedURLs),
		FeedFailures:   feedFailures,
		EpisodesFound:  len(episodes),
	}

	if feedFailures == len(feedURLs) {
		summary.Elapsed = time.Since(started)
		return summary, ErrAllFeedsFailed
	}

	pending, skipped := p.withoutExistingCrosschecks(ctx, log, episodes)
	summary.EpisodesSkipped = skipped

	crosschecked, episodeFailures := p.crosscheckEpisodes(ctx, log, pending)
	summary.Crosschecked = crosschecked
	summary.EpisodeFailures = episodeFailures
	summary.Elapsed = time.Since(started)

	log.Info().
		Int("episodes", summary.EpisodesFound).
		Int("skipped", summary.EpisodesSkipped).
		Int("crosschecked", summary.Crosschecked).
		Int("episode_failures", summary.EpisodeFailures).
		Dur("elapsed", summary.Elapsed).
		Msg("crosscheck run finished")
	p.hook.Emit("pipeline", "run_finished", map[string]any{
		"run_id":       runId,
		"crosschecked": summary.Crosschecked,
		"failures":     summary.FeedFailures + summary.EpisodeFailures,
	})

	if len(pending) > 0 && episodeFailures == len(pending) {
		return summary, ErrAllEpisodesFailed
	}
	return summary, nil
}

// ingestFeeds runs feed ingestion on the feed pool and collects all
// discovered episodes. Episodes of one feed stay in feed order; feeds
// land in completion order.
func (p *Pipeline) ingestFeeds(ctx context.Context, log zerolog.Logger, feedURLs []string) ([]domain.Episode, int) {
	var (
		mu       sync.Mutex
		episodes []domain.Episode
	)

	results := p.feedPool.Run(ctx, feedURLs, func(ctx context.Context, feedURL string) error {
		found, err := p.ingestor.Ingest(ctx, feedURL)
		if err != nil {
			return err
		}

		mu.Lock()
		episodes = append(episodes, found...)
		mu.Unlock()
		return nil
	})

	failures := 0
	for _, result := range results {
		if result.Err == nil {
			continue
		}
		failures++
		log.Warn().
			Err(result.Err).
			Str("feed_url", result.Job).
			Bool("retryable", Retryable(result.Err)).
			Msg("feed ingestion failed")
		p.hook.Emit("pipeline", "feed_failed", map[string]any{
			"url":       result.Job,
			"retryable": Retryable(result.Err),
		})
	}

	return episodes, failures
}

// withoutExistingCrosschecks drops episodes whose crosscheck is already
// stored. The lookup is best-effort, a failed lookup just re-checks
// episodes.
func (p *Pipeline) withoutExistingCrosschecks(ctx context.Context, log zerolog.Logger, episodes []domain.Episode) ([]domain.Episode, int) {
	if len(episodes) == 0 {
		return episodes, 0
	}

	ids := make([]string, 0, len(episodes))
	for _, episode := range episodes {
		ids = append(ids, episode.Id)
	}

	existing, err := p.store.ExistingCrosscheckIds(ctx, ids)
	if err != nil {
		log.Warn().Err(err).Msg("crosscheck lookup failed, processing all episodes")
		return episodes, 0
	}
	if len(existing) == 0 {
		return episodes, 0
	}

	pending := make([]domain.Episode, 0, len(episodes))
	for _, episode := range episodes {
		if !existing[episode.Id] {
			pending = append(pending, episode)
		}
	}
	return pending, len(episodes) - len(pending)
}

// crosscheckEpisodes runs the per-episode flow on the episode pool and
// returns how many episodes were crosschecked and how many failed.
func (p *Pipeline) crosscheckEpisodes(ctx context.Context, log zerolog.Logger, episodes []domain.Episode) (int, int) {
	if len(episodes) == 0 {
		return 0, 0
	}

	results := p.episodePool.Run(ctx, episodes, func(ctx context.Context, episode domain.Episode) error {
		return p.crosscheckEpisode(ctx, log, episode)
	})

	crosschecked, failures := 0, 0
	for _, result := range results {
		if result.Err != nil {
			failures++
			log.Warn().
				Err(result.Err).
				Str("episode_id", result.Job.Id).
				Bool("retryable", Retryable(result.Err)).
				Msg("episode crosscheck failed")
			p.hook.Emit("pipeline", "episode_failed", map[string]any{
				"episode_id": result.Job.Id,
				"retryable":  Retryable(result.Err),
			})
			continue
		}
		crosschecked++
	}

	return crosschecked, failures
}

// crosscheckEpisode fetches the provided transcript if a source is
// configured, runs the crosscheck, and persists episode and result.
// Provided transcripts are best-effort: a source failure is logged and the
// check runs without one.
func (p *Pipeline) crosscheckEpisode(ctx context.Context, log zerolog.Logger, episode domain.Episode) error {
	var provided *string
	if p.source != nil {
		found, err := p.source.ForEpisode(ctx, episode)
		if err != nil {
			log.Debug().Err(err).Str("episode_id", episode.Id).Msg("provided transcript unavailable")
		} else {
			provided = found
		}
	}

	crosscheck, err := p.checker.Crosscheck(ctx, episode.AudioURL, provided)
	if err != nil {
		return err
	}

	if err := p.store.SaveEpisode(ctx, &episode); err != nil {
		return fmt.Errorf("save episode %s: %w", episode.Id, err)
	}

	record := &domain.CrosscheckRecord{
		EpisodeId:            episode.Id,
		TranscriptCrosscheck: *crosscheck,
		CheckedAt:            time.Now().UTC(),
	}
	if err := p.store.SaveCrosscheck(ctx, record); err != nil {
		return fmt.Errorf("save crosscheck for episode %s: %w", episode.Id, err)
	}

	p.hook.Emit("pipeline", "episode_crosschecked", map[string]any{
		"episode_id": episode.Id,
		"similarity": crosscheck.Similarity,
		"provided":   provided != nil,
	})
	return nil
}
