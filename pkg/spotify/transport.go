package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// regularError is the JSON error envelope returned by the Web API.
type regularError struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// call makes an authenticated HTTP request to the Web API.
//
// It handles:
// - Bearer token attachment and up-front refresh of expired tokens
// - A single refresh-and-reissue on 401 (token management, not retry)
// - Response decoding of the API error envelope
// - Context cancellation
//
// Transient failures are not retried; they surface to the caller.
func (c *Client) call(ctx context.Context, method, path string) ([]byte, int, error) {
	if c.token == nil || c.token.AccessToken == "" {
		return nil, 0, ErrNoToken
	}

	if c.token.Expired(time.Now()) && c.token.RefreshToken != "" {
		c.logDebugf("spotify: token expired, refreshing")
		if _, err := c.auth.Refresh(ctx); err != nil {
			return nil, 0, fmt.Errorf("token refresh failed: %w", err)
		}
	}

	refreshed := false
	for {
		body, status, err := c.do(ctx, method, path)
		if err != nil {
			return nil, status, err
		}

		if status == http.StatusUnauthorized && !refreshed && c.token.RefreshToken != "" {
			c.logDebugf("spotify: got 401, refreshing token")
			if _, err := c.auth.Refresh(ctx); err != nil {
				return nil, status, fmt.Errorf("token refresh failed: %w", err)
			}
			refreshed = true
			continue
		}

		if status >= 400 {
			return nil, status, decodeAPIError(body, status)
		}

		c.logDebugf("spotify: %s %s -> %d", method, path, status)
		return body, status, nil
	}
}

// do issues a single HTTP request and reads the response body.
func (c *Client) do(ctx context.Context, method, path string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token.AccessToken)
	req.Header.Set("User-Agent", "spotisleep/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("http request failed: %w", err)
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	return body, resp.StatusCode, nil
}

// decodeAPIError parses the error envelope from a failed response.
// Falls back to the HTTP status text when the body is not the
// expected envelope.
func decodeAPIError(body []byte, status int) error {
	var envelope regularError
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return &Error{
			Status:  envelope.Error.Status,
			Message: envelope.Error.Message,
		}
	}
	return &Error{
		Status:  status,
		Message: http.StatusText(status),
	}
}
