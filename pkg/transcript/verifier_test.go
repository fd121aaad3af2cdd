package transcript

import (
	"context"
	"errors"
	"testing"

	"debate-archive/pkg/events"
)

// mockTranscriber is a mock implementation of Transcriber for testing
type mockTranscriber struct {
	text      string
	err       error
	callCount int
}

func (m *mockTranscriber) Transcribe(ctx context.Context, audioURL string) (string, error) {
	m.callCount++
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

func TestVerifier_Crosscheck_NoProvidedTranscript(t *testing.T) {
	transcriber := &mockTranscriber{text: "we have heard the arguments"}
	verifier := NewVerifier(transcriber)

	result, err := verifier.Crosscheck(context.Background(), "https://cdn.example.com/audio/1.mp3", nil)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if transcriber.callCount != 1 {
		t.Errorf("Expected Transcribe to be called once, got %d", transcriber.callCount)
	}
	if result.GeneratedTranscript != "we have heard the arguments" {
		t.Errorf("Unexpected generated transcript: %q", result.GeneratedTranscript)
	}
	if result.ProvidedTranscript != nil {
		t.Errorf("Expected nil provided transcript, got %q", *result.ProvidedTranscript)
	}
	if result.Similarity != 1 {
		t.Errorf("Expected similarity 1 with no provided transcript, got %v", result.Similarity)
	}
	if len(result.Diff) != 0 {
		t.Errorf("Expected empty diff with no provided transcript, got %+v", result.Diff)
	}
}

func TestVerifier_Crosscheck_RoundTrip(t *testing.T) {
	// Providing exactly what the transcriber generates must score a perfect
	// match with nothing to diff.
	deterministic := TranscriberFunc(func(ctx context.Context, audioURL string) (string, error) {
		return "the motion carries\nby a narrow margin", nil
	})
	verifier := NewVerifier(deterministic)

	provided := "the motion carries\nby a narrow margin"
	result, err := verifier.Crosscheck(context.Background(), "https://cdn.example.com/audio/1.mp3", &provided)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if result.Similarity != 1 {
		t.Errorf("Expected similarity 1, got %v", result.Similarity)
	}
	if len(result.Diff) != 0 {
		t.Errorf("Expected empty diff, got %+v", result.Diff)
	}
	if result.ProvidedTranscript == nil || *result.ProvidedTranscript != provided {
		t.Errorf("Expected provided transcript to be carried through")
	}
}

func TestVerifier_Crosscheck_Mismatch(t *testing.T) {
	transcriber := &mockTranscriber{text: "a b c"}
	verifier := NewVerifier(transcriber)

	provided := "a b d"
	result, err := verifier.Crosscheck(context.Background(), "https://cdn.example.com/audio/1.mp3", &provided)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if result.Similarity != 0.5 {
		t.Errorf("Expected similarity 0.5, got %v", result.Similarity)
	}
	if len(result.Diff) != 1 {
		t.Fatalf("Expected 1 diff entry, got %d", len(result.Diff))
	}
	if result.Diff[0].Line != 1 || result.Diff[0].Generated != "a b c" || result.Diff[0].Provided != "a b d" {
		t.Errorf("Unexpected diff entry: %+v", result.Diff[0])
	}
}

func TestVerifier_Crosscheck_TranscriberFailure(t *testing.T) {
	transcriber := &mockTranscriber{err: errors.New("backend down")}
	verifier := NewVerifier(transcriber)

	_, err := verifier.Crosscheck(context.Background(), "https://cdn.example.com/audio/1.mp3", nil)
	if !errors.Is(err, ErrTranscriptionUnavailable) {
		t.Fatalf("Expected ErrTranscriptionUnavailable, got %v", err)
	}
}

func TestVerifier_Crosscheck_EmptyTranscription(t *testing.T) {
	// A transcriber that answers with nothing usable fails the call the
	// same way an erroring one does.
	transcriber := &mockTranscriber{text: "   "}
	verifier := NewVerifier(transcriber)

	_, err := verifier.Crosscheck(context.Background(), "https://cdn.example.com/audio/1.mp3", nil)
	if !errors.Is(err, ErrTranscriptionUnavailable) {
		t.Fatalf("Expected ErrTranscriptionUnavailable, got %v", err)
	}
}

func TestVerifier_Crosscheck_EmitsEvent(t *testing.T) {
	transcriber := &mockTranscriber{text: "a b c"}
	verifier := NewVerifier(transcriber)

	var recorded []events.Event
	verifier.SetEventHook(func(ev events.Event) {
		recorded = append(recorded, ev)
	})

	provided := "a b d"
	if _, err := verifier.Crosscheck(context.Background(), "https://cdn.example.com/audio/1.mp3", &provided); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(recorded) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(recorded))
	}
	if recorded[0].Stage != "transcript" || recorded[0].Name != "crosscheck_done" {
		t.Errorf("Unexpected event: %+v", recorded[0])
	}
	if recorded[0].Fields["similarity"] != 0.5 {
		t.Errorf("Expected similarity field 0.5, got %v", recorded[0].Fields["similarity"])
	}
}
