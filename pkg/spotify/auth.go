package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// AuthService provides authorization operations against the accounts
// service.
//
// The authorization-code flow works as follows:
//
//  1. Direct the user to the URL returned by AuthURL.
//  2. The user approves access and is redirected to the configured
//     redirect URI with a "code" query parameter.
//  3. Exchange the code for a token with Exchange.
//  4. The token (including its refresh token) is cached on disk and
//     reused by EnsureToken on later runs.
type AuthService struct {
	client *Client
}

// AuthURL returns the URL where the user authorizes the application.
func (a *AuthService) AuthURL(state string) string {
	q := url.Values{}
	q.Set("client_id", a.client.clientID)
	q.Set("response_type", "code")
	q.Set("redirect_uri", a.client.redirectURI)
	q.Set("scope", strings.Join(a.client.scopes, " "))
	if state != "" {
		q.Set("state", state)
	}
	return a.client.accountsURL + "/authorize?" + q.Encode()
}

// Exchange trades an authorization code for a token.
//
// The token is set on the client and written to the cache file.
func (a *AuthService) Exchange(ctx context.Context, code string) (*Token, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", a.client.redirectURI)

	token, err := a.tokenRequest(ctx, form)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	a.client.token = token
	if err := a.saveCache(token); err != nil {
		return nil, fmt.Errorf("failed to write token cache: %w", err)
	}

	return token, nil
}

// Refresh obtains a fresh access token using the stored refresh token.
//
// The accounts service may omit the refresh token from the response;
// in that case the existing one is kept. The refreshed token replaces
// the client token and the cache file.
func (a *AuthService) Refresh(ctx context.Context) (*Token, error) {
	current := a.client.token
	if current == nil || current.RefreshToken == "" {
		return nil, ErrNoRefreshToken
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", current.RefreshToken)

	token, err := a.tokenRequest(ctx, form)
	if err != nil {
		return nil, fmt.Errorf("token refresh failed: %w", err)
	}

	if token.RefreshToken == "" {
		token.RefreshToken = current.RefreshToken
	}

	a.client.token = token
	if err := a.saveCache(token); err != nil {
		return nil, fmt.Errorf("failed to write token cache: %w", err)
	}

	return token, nil
}

// EnsureToken makes sure the client holds a usable access token,
// loading the cache file and refreshing an expired token as needed.
//
// Returns ErrNoToken when no cached token exists; the caller should
// run the authorization flow.
func (a *AuthService) EnsureToken(ctx context.Context) error {
	if a.client.token == nil {
		token, err := a.loadCache()
		if err != nil {
			return err
		}
		a.client.token = token
	}

	if a.client.token.Expired(time.Now()) {
		if a.client.token.RefreshToken == "" {
			return ErrNoToken
		}
		if _, err := a.Refresh(ctx); err != nil {
			return err
		}
	}

	return nil
}

// tokenRequest posts a form to the token endpoint with client
// credentials and decodes the token response.
func (a *AuthService) tokenRequest(ctx context.Context, form url.Values) (*Token, error) {
	endpoint := a.client.accountsURL + "/api/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth(a.client.clientID, a.client.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "spotisleep/1.0")

	resp, err := a.client.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, decodeTokenError(body, resp.StatusCode)
	}

	var token Token
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}

	if token.ExpiresIn > 0 {
		token.ExpiresAt = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	}

	a.client.logDebugf("spotify: obtained token, expires at %s", token.ExpiresAt.Format(time.RFC3339))
	return &token, nil
}

// tokenError is the error shape of the accounts service, which differs
// from the Web API envelope.
type tokenError struct {
	Err         string `json:"error"`
	Description string `json:"error_description"`
}

func decodeTokenError(body []byte, status int) error {
	var te tokenError
	if err := json.Unmarshal(body, &te); err == nil && te.Err != "" {
		msg := te.Err
		if te.Description != "" {
			msg += ": " + te.Description
		}
		return &Error{Status: status, Message: msg}
	}
	return &Error{Status: status, Message: http.StatusText(status)}
}

// cachePath returns the token cache file path. The file is named
// after the username the same way the original Spotify tooling does,
// so multiple accounts can coexist in one directory.
func (a *AuthService) cachePath() string {
	name := ".cache"
	if a.client.username != "" {
		name += "-" + a.client.username
	}
	return filepath.Join(a.client.cacheDir, name)
}

func (a *AuthService) loadCache() (*Token, error) {
	data, err := os.ReadFile(a.cachePath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoToken
		}
		return nil, fmt.Errorf("failed to read token cache: %w", err)
	}

	var token Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token cache: %w", err)
	}

	if token.AccessToken == "" {
		return nil, ErrNoToken
	}

	return &token, nil
}

func (a *AuthService) saveCache(token *Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	// 0600: the cache holds bearer credentials
	return os.WriteFile(a.cachePath(), data, 0600)
}
