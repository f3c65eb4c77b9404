package spotify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	client, err := NewClient(Config{
		ClientID:     "test-client-id",
		ClientSecret: "test-client-secret",
		RedirectURI:  "http://localhost:8080",
		BaseURL:      serverURL,
		AccountsURL:  serverURL,
		CacheDir:     t.TempDir(),
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func TestPlayerService_CurrentlyPlaying(t *testing.T) {
	tests := []struct {
		name        string
		statusCode  int
		response    string
		wantNil     bool
		wantPlaying bool
		wantTrack   string
		wantErr     bool
		errContains string
	}{
		{
			name:       "track playing",
			statusCode: http.StatusOK,
			response: `{
				"is_playing": true,
				"progress_ms": 44272,
				"item": {
					"name": "Weightless",
					"duration_ms": 480000,
					"album": {"name": "Ambient 1"},
					"artists": [{"name": "Marconi Union"}]
				}
			}`,
			wantPlaying: true,
			wantTrack:   "Marconi Union - Weightless",
		},
		{
			name:       "track paused",
			statusCode: http.StatusOK,
			response: `{
				"is_playing": false,
				"item": {"name": "Weightless", "artists": [{"name": "Marconi Union"}]}
			}`,
			wantPlaying: false,
			wantTrack:   "Marconi Union - Weightless",
		},
		{
			name:       "no active device",
			statusCode: http.StatusNoContent,
			wantNil:    true,
		},
		{
			name:        "api error",
			statusCode:  http.StatusForbidden,
			response:    `{"error": {"status": 403, "message": "Player command failed"}}`,
			wantErr:     true,
			errContains: "error 403",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("expected GET request, got %s", r.Method)
				}
				if r.URL.Path != "/v1/me/player/currently-playing" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if auth := r.Header.Get("Authorization"); auth != "Bearer test-access-token" {
					t.Errorf("unexpected Authorization header %q", auth)
				}

				w.WriteHeader(tt.statusCode)
				if tt.response != "" {
					if _, err := w.Write([]byte(tt.response)); err != nil {
						t.Fatalf("failed to write response body: %v", err)
					}
				}
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)
			client.SetToken(&Token{AccessToken: "test-access-token"})

			playing, err := client.Player().CurrentlyPlaying(context.Background())

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				var apiErr *Error
				if !errors.As(err, &apiErr) {
					t.Fatalf("expected *Error, got %T: %v", err, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("CurrentlyPlaying: %v", err)
			}

			if tt.wantNil {
				if playing != nil {
					t.Errorf("expected nil response, got %+v", playing)
				}
				return
			}

			if playing == nil {
				t.Fatal("expected response, got nil")
			}
			if playing.IsPlaying != tt.wantPlaying {
				t.Errorf("IsPlaying = %v, want %v", playing.IsPlaying, tt.wantPlaying)
			}
			if got := playing.Track(); got != tt.wantTrack {
				t.Errorf("Track() = %q, want %q", got, tt.wantTrack)
			}
		})
	}
}

func TestPlayerService_Pause(t *testing.T) {
	var pauseCalls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT request, got %s", r.Method)
		}
		if r.URL.Path != "/v1/me/player/pause" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		pauseCalls++
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	client.SetToken(&Token{AccessToken: "test-access-token"})

	if err := client.Player().Pause(context.Background()); err != nil {
		t.Fatalf("Pause: %v", err)
	}
	if pauseCalls != 1 {
		t.Errorf("pause endpoint hit %d times, want 1", pauseCalls)
	}
}

func TestPlayerService_NoToken(t *testing.T) {
	client := newTestClient(t, "http://unused.invalid")

	_, err := client.Player().CurrentlyPlaying(context.Background())
	if !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
}
