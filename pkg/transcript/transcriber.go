package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"debate-archive/pkg/httpclient"
)

// Transcriber produces a transcript for a remote audio reference. The
// verifier only ever calls this one operation, so production backends and
// deterministic test stand-ins are interchangeable.
type Transcriber interface {
	Transcribe(ctx context.Context, audioURL string) (string, error)
}

// TranscriberFunc adapts a plain function into a Transcriber
type TranscriberFunc func(ctx context.Context, audioURL string) (string, error)

// Transcribe calls f
func (f TranscriberFunc) Transcribe(ctx context.Context, audioURL string) (string, error) {
	return f(ctx, audioURL)
}

// HTTPTranscriber talks to a speech-to-text service over HTTP. The service
// is expected to accept a JSON body naming the audio URL on POST /transcribe
// and answer with a JSON body carrying the transcript text.
type HTTPTranscriber struct {
	baseURL string
	client  *httpclient.HTTPClient
}

// NewHTTPTranscriber creates a transcriber against the service at baseURL
func NewHTTPTranscriber(baseURL string) *HTTPTranscriber {
	return NewHTTPTranscriberWithClient(baseURL, httpclient.NewClient(""))
}

// NewHTTPTranscriberWithClient creates a transcriber that sends requests
// through the given client, so callers control headers and timeouts
func NewHTTPTranscriberWithClient(baseURL string, client *httpclient.HTTPClient) *HTTPTranscriber {
	return &HTTPTranscriber{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

type transcribeRequest struct {
	AudioURL string `json:"audio_url"`
}

type transcribeResponse struct {
	Text string `json:"text"`
}

// Transcribe submits the audio reference and returns the transcript text
func (t *HTTPTranscriber) Transcribe(ctx context.Context, audioURL string) (string, error) {
	payload, err := json.Marshal(transcribeRequest{AudioURL: audioURL})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/transcribe", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcribe request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("transcribe %s: %s", resp.Status, string(body))
	}

	var out transcribeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("transcribe decode: %w", err)
	}
	return out.Text, nil
}
