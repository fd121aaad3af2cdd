package pipeline

import (
	"time"

	"github.com/rs/zerolog"

	"debate-archive/pkg/events"
	"debate-archive/pkg/feed"
	"debate-archive/pkg/httpclient"
	"debate-archive/pkg/transcript"
)

// CrosscheckPipelineBuilder wires the production pipeline:
// feeds → [Feed Ingestor] → [Transcript Source + Verifier] → [Record Store]
// The verifier talks to the transcription service at transcriberURL, the
// source pulls publisher transcripts out of episode show notes. Feed
// fetches and transcription get separate timeouts because transcription
// runs minutes where a feed fetch runs seconds.
func CrosscheckPipelineBuilder(store RecordStore, transcriberURL string, feedTimeout, transcriberTimeout time.Duration, feedWorkers, episodeWorkers int, hook events.Hook, log *zerolog.Logger) *Pipeline {
	feedClient := httpclient.NewClientWithTimeout(httpclient.BrowserClient, feedTimeout)
	ingestor := feed.NewIngestorWithClient(feedClient.Client())
	ingestor.SetEventHook(hook)

	transcriberClient := httpclient.NewClientWithTimeout(httpclient.BrowserClient, transcriberTimeout)
	verifier := transcript.NewVerifier(transcript.NewHTTPTranscriberWithClient(transcriberURL, transcriberClient))
	verifier.SetEventHook(hook)

	return NewPipeline(Config{
		Ingestor:       ingestor,
		Checker:        verifier,
		Source:         transcript.NewSourceWithClient(feedClient),
		Store:          store,
		FeedWorkers:    feedWorkers,
		EpisodeWorkers: episodeWorkers,
		Hook:           hook,
		Log:            log,
	})
}

// CustomTranscriberPipelineBuilder wires the pipeline around a
// caller-supplied transcriber, keeping the default ingestor and source.
// Useful when transcription runs in-process instead of behind HTTP.
func CustomTranscriberPipelineBuilder(store RecordStore, transcriber transcript.Transcriber, feedWorkers, episodeWorkers int, hook events.Hook, log *zerolog.Logger) *Pipeline {
	verifier := transcript.NewVerifier(transcriber)
	verifier.SetEventHook(hook)

	ingestor := feed.NewIngestor()
	ingestor.SetEventHook(hook)

	return NewPipeline(Config{
		Ingestor:       ingestor,
		Checker:        verifier,
		Source:         transcript.NewSource(),
		Store:          store,
		FeedWorkers:    feedWorkers,
		EpisodeWorkers: episodeWorkers,
		Hook:           hook,
		Log:            log,
	})
}
