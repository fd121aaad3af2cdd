package pipeline

import (
	"context"
	"errors"

	"debate-archive/pkg/feed"
	"debate-archive/pkg/transcript"
)

var (
	// ErrNoFeeds means Run was called with an empty feed list.
	ErrNoFeeds = errors.New("no feed URLs to process")

	// ErrAllFeedsFailed means not a single feed could be ingested.
	ErrAllFeedsFailed = errors.New("all feeds failed to ingest")

	// ErrAllEpisodesFailed means every attempted episode crosscheck failed.
	ErrAllEpisodesFailed = errors.New("all episode crosschecks failed")
)

// Retryable reports whether err describes a transient failure a later run
// may succeed on. Unreachable feeds, unavailable transcription, and
// deadline hits are transient. Empty feeds and malformed items stay broken
// until the feed itself changes, so retrying those wastes a run.
func Retryable(err error) bool {
	switch {
	case errors.Is(err, feed.ErrFeedUnreachable):
		return true
	case errors.Is(err, transcript.ErrTranscriptionUnavailable):
		return true
	case errors.Is(err, context.DeadlineExceeded):
		return true
	}
	return false
}
