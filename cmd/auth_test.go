package cmd

import (
	"strings"
	"testing"
)

func TestCodeFromRedirect(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		state    string
		wantCode string
		wantErr  string
	}{
		{
			name:     "code present with matching state",
			url:      "http://localhost:8080/?code=abc123&state=xyz",
			state:    "xyz",
			wantCode: "abc123",
		},
		{
			name:     "state not enforced when empty",
			url:      "http://localhost:8080/?code=abc123&state=anything",
			state:    "",
			wantCode: "abc123",
		},
		{
			name:    "state mismatch",
			url:     "http://localhost:8080/?code=abc123&state=wrong",
			state:   "xyz",
			wantErr: "state mismatch",
		},
		{
			name:    "user denied",
			url:     "http://localhost:8080/?error=access_denied&state=xyz",
			state:   "xyz",
			wantErr: "access_denied",
		},
		{
			name:    "no code",
			url:     "http://localhost:8080/?state=xyz",
			state:   "xyz",
			wantErr: "no authorization code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := codeFromRedirect(tt.url, tt.state)

			if tt.wantErr != "" {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("codeFromRedirect: %v", err)
			}
			if code != tt.wantCode {
				t.Errorf("code = %q, want %q", code, tt.wantCode)
			}
		})
	}
}
