// Package spotify provides a client for the Spotify Web API.
//
// This package implements the subset of the Web API needed for
// playback control: authorization-code authentication, the
// currently-playing query, and the pause command. It is designed
// to be used as a standalone SDK.
//
// Example usage:
//
//	import "github.com/jfmyers9/spotisleep/pkg/spotify"
//
//	client, err := spotify.NewClient(spotify.Config{
//	    ClientID:     "your-client-id",
//	    ClientSecret: "your-client-secret",
//	    RedirectURI:  "http://localhost:8080",
//	    Scopes:       []string{"user-read-currently-playing"},
//	})
//
//	fmt.Println("Authorize at:", client.Auth().AuthURL("state"))
package spotify

import (
	"fmt"
	"net/http"
)

// Config holds client configuration.
type Config struct {
	ClientID     string       // Required: Spotify application client ID
	ClientSecret string       // Required: Spotify application client secret
	RedirectURI  string       // Redirect URI registered with the application
	Scopes       []string     // Permission scopes to request during authorization
	Username     string       // Spotify username, used to name the token cache file
	HTTPClient   *http.Client // Optional: HTTP client (defaults to http.DefaultClient)
	BaseURL      string       // Optional: Web API base URL (used for testing)
	AccountsURL  string       // Optional: accounts service base URL (used for testing)
	CacheDir     string       // Optional: directory for the token cache (defaults to ".")
	Logger       Logger       // Optional: Logger interface for debug logging
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
}

// Client is the main entry point for Spotify Web API operations.
type Client struct {
	clientID     string
	clientSecret string
	redirectURI  string
	scopes       []string
	username     string
	httpClient   *http.Client
	baseURL      string
	accountsURL  string
	cacheDir     string
	logger       Logger

	token *Token

	auth   *AuthService
	player *PlayerService
}

const (
	// DefaultBaseURL is the default Web API endpoint.
	DefaultBaseURL = "https://api.spotify.com"

	// DefaultAccountsURL is the default accounts service endpoint,
	// used for authorization and token exchange.
	DefaultAccountsURL = "https://accounts.spotify.com"
)

// NewClient creates a new Spotify Web API client.
//
// Returns an error if required configuration (ClientID, ClientSecret)
// is missing.
func NewClient(cfg Config) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("spotify: ClientID is required")
	}
	if cfg.ClientSecret == "" {
		return nil, fmt.Errorf("spotify: ClientSecret is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	accountsURL := cfg.AccountsURL
	if accountsURL == "" {
		accountsURL = DefaultAccountsURL
	}

	cacheDir := cfg.CacheDir
	if cacheDir == "" {
		cacheDir = "."
	}

	c := &Client{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		redirectURI:  cfg.RedirectURI,
		scopes:       cfg.Scopes,
		username:     cfg.Username,
		httpClient:   httpClient,
		baseURL:      baseURL,
		accountsURL:  accountsURL,
		cacheDir:     cacheDir,
		logger:       cfg.Logger,
	}

	c.auth = &AuthService{client: c}
	c.player = &PlayerService{client: c}

	return c, nil
}

// Auth returns the authentication service.
func (c *Client) Auth() *AuthService {
	return c.auth
}

// Player returns the playback service.
func (c *Client) Player() *PlayerService {
	return c.player
}

// SetToken sets the token used for authenticated requests.
func (c *Client) SetToken(t *Token) {
	c.token = t
}

// GetToken returns the current token, or nil if none is set.
func (c *Client) GetToken() *Token {
	return c.token
}

// logDebugf logs a debug message if a logger is configured.
func (c *Client) logDebugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
