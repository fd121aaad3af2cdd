// Package transcript generates transcripts for episode audio and checks
// them against transcripts the publisher supplied. The two texts come from
// independent producers, so the check reports both a token-level similarity
// score and a line-level diff instead of a single verdict.
package transcript

import (
	"context"
	"fmt"
	"strings"

	"debate-archive/pkg/domain"
	"debate-archive/pkg/events"
)

// Verifier runs the crosscheck for one episode at a time
type Verifier struct {
	transcriber Transcriber
	hook        events.Hook
}

// NewVerifier creates a verifier backed by the given transcription capability
func NewVerifier(transcriber Transcriber) *Verifier {
	return &Verifier{
		transcriber: transcriber,
	}
}

// SetEventHook routes verification events to the given hook
func (v *Verifier) SetEventHook(hook events.Hook) {
	v.hook = hook
}

// Crosscheck obtains a generated transcript for audioURL and scores it
// against the provided one. A nil provided transcript means there is
// nothing to disagree with: similarity 1, empty diff. A transcription
// failure, or an empty transcription result, fails the whole call.
func (v *Verifier) Crosscheck(ctx context.Context, audioURL string, provided *string) (*domain.TranscriptCrosscheck, error) {
	generated, err := v.transcriber.Transcribe(ctx, audioURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTranscriptionUnavailable, audioURL, err)
	}
	if strings.TrimSpace(generated) == "" {
		return nil, fmt.Errorf("%w: empty transcript for %s", ErrTranscriptionUnavailable, audioURL)
	}

	result := &domain.TranscriptCrosscheck{
		GeneratedTranscript: generated,
		ProvidedTranscript:  provided,
		Similarity:          1,
		Diff:                make([]domain.DiffEntry, 0),
	}

	if provided != nil {
		result.Similarity = Jaccard(generated, *provided)
		result.Diff = PositionalDiff(generated, *provided)
	}

	v.hook.Emit("transcript", "crosscheck_done", map[string]any{
		"audio_url":  audioURL,
		"provided":   provided != nil,
		"similarity": result.Similarity,
		"diff_lines": len(result.Diff),
	})

	return result, nil
}
