package transcript

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPTranscriber_Transcribe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/transcribe" {
			t.Errorf("Expected path /transcribe, got %s", r.URL.Path)
		}

		var req struct {
			AudioURL string `json:"audio_url"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request body: %v", err)
		}
		if req.AudioURL != "https://cdn.example.com/audio/1.mp3" {
			t.Errorf("Unexpected audio URL in request: %s", req.AudioURL)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"text": "ladies and gentlemen the motion"})
	}))
	defer server.Close()

	transcriber := NewHTTPTranscriber(server.URL)
	text, err := transcriber.Transcribe(context.Background(), "https://cdn.example.com/audio/1.mp3")
	if err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	if text != "ladies and gentlemen the motion" {
		t.Fatalf("Transcribe = %q, want %q", text, "ladies and gentlemen the motion")
	}
}

func TestHTTPTranscriber_Transcribe_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model unavailable", http.StatusInternalServerError)
	}))
	defer server.Close()

	transcriber := NewHTTPTranscriber(server.URL)
	_, err := transcriber.Transcribe(context.Background(), "https://cdn.example.com/audio/1.mp3")
	if err == nil {
		t.Fatal("Expected error for server failure, got nil")
	}
}
