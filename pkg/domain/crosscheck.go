package domain

import "time"

// DiffEntry records a single line position where the generated and the
// provided transcript disagree. A side that has no line at that position
// is kept as the empty string.
type DiffEntry struct {
	Line      int    `bson:"line" json:"line"`
	Generated string `bson:"generated" json:"generated"`
	Provided  string `bson:"provided" json:"provided"`
}

// TranscriptCrosscheck is the outcome of checking a machine-generated
// transcript against a publisher-provided one.
type TranscriptCrosscheck struct {
	GeneratedTranscript string `bson:"generated_transcript" json:"generated_transcript"`

	// ProvidedTranscript is nil when the publisher supplied no transcript,
	// in which case Similarity is 1 and Diff is empty.
	ProvidedTranscript *string `bson:"provided_transcript,omitempty" json:"provided_transcript,omitempty"`

	// Similarity is the token set overlap between the two transcripts,
	// between 0 and 1.
	Similarity float64 `bson:"similarity" json:"similarity"`

	Diff []DiffEntry `bson:"diff" json:"diff"`
}

// CrosscheckRecord is the stored form of a crosscheck, keyed by episode.
type CrosscheckRecord struct {
	EpisodeId            string `bson:"episode_id" json:"episode_id"`
	TranscriptCrosscheck `bson:",inline"`
	CheckedAt            time.Time `bson:"checked_at" json:"checked_at"`
}
