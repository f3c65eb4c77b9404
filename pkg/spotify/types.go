package spotify

import (
	"strings"
	"time"
)

// Token represents an OAuth token from the accounts service.
//
// ExpiresAt is computed when the token is obtained and persisted in the
// cache file; ExpiresIn is the raw lifetime reported by the service.
type Token struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int64     `json:"expires_in,omitempty"`
	Scope        string    `json:"scope,omitempty"`
	ExpiresAt    time.Time `json:"expires_at,omitempty"`
}

// expirySkew is subtracted from the token lifetime so a token about to
// expire mid-request is refreshed up front.
const expirySkew = 60 * time.Second

// Expired reports whether the token should be refreshed before use.
func (t *Token) Expired(now time.Time) bool {
	if t.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(t.ExpiresAt.Add(-expirySkew))
}

// CurrentlyPlaying represents the response from the
// currently-playing endpoint.
type CurrentlyPlaying struct {
	IsPlaying  bool `json:"is_playing"`
	ProgressMs int  `json:"progress_ms"`
	Item       struct {
		Name       string `json:"name"`
		DurationMs int    `json:"duration_ms"`
		Album      struct {
			Name string `json:"name"`
		} `json:"album"`
		Artists []struct {
			Name string `json:"name"`
		} `json:"artists"`
	} `json:"item"`
}

// Track returns a human-readable "Artist - Name" label for the
// currently playing item, or an empty string if there is none.
func (cp *CurrentlyPlaying) Track() string {
	if cp == nil || cp.Item.Name == "" {
		return ""
	}
	artists := make([]string, 0, len(cp.Item.Artists))
	for _, a := range cp.Item.Artists {
		artists = append(artists, a.Name)
	}
	if len(artists) == 0 {
		return cp.Item.Name
	}
	return strings.Join(artists, ", ") + " - " + cp.Item.Name
}
