package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// PlayerService provides playback state and control operations.
type PlayerService struct {
	client *Client
}

// CurrentlyPlaying queries the track currently playing on the user's
// active device.
//
// Returns (nil, nil) when nothing is playing and no device is active;
// the Web API signals this with an empty 204 response. Every call is a
// live round-trip, there is no caching.
func (p *PlayerService) CurrentlyPlaying(ctx context.Context) (*CurrentlyPlaying, error) {
	body, status, err := p.client.call(ctx, http.MethodGet, "/v1/me/player/currently-playing")
	if err != nil {
		return nil, err
	}

	if status == http.StatusNoContent || len(body) == 0 {
		return nil, nil
	}

	var playing CurrentlyPlaying
	if err := json.Unmarshal(body, &playing); err != nil {
		return nil, fmt.Errorf("failed to parse currently-playing response: %w", err)
	}

	return &playing, nil
}

// Pause pauses playback on the user's active device.
func (p *PlayerService) Pause(ctx context.Context) error {
	_, _, err := p.client.call(ctx, http.MethodPut, "/v1/me/player/pause")
	return err
}
