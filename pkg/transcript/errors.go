package transcript

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrTranscriptionUnavailable means the transcription capability failed
	// or returned nothing usable.
	ErrTranscriptionUnavailable = errors.New("transcription unavailable")

	// ErrNoProvidedTranscript means the episode page links to no transcript
	// produced by the publisher.
	ErrNoProvidedTranscript = errors.New("no provided transcript found")
)
