package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// DefaultPath is the fixed config file location, relative to the
// working directory.
const DefaultPath = "config.json"

// ErrMissing is returned when the config file did not exist. A default
// file has been written; the user must fill in credentials and rerun.
var ErrMissing = errors.New("config missing, now initialized")

// Config holds application configuration
type Config struct {
	// Spotify account and application credentials
	Username     string
	ClientID     string
	ClientSecret string

	// Permission scopes requested during authorization
	Scope []string

	// Redirect URI registered with the Spotify application
	RedirectURI string

	// Poll interval for the timer loop (in seconds)
	PollInterval int
}

// Default returns the bootstrap configuration written on first run:
// empty credentials, the two scopes the timer needs, and the local
// redirect URI.
func Default() *Config {
	return &Config{
		Scope: []string{
			"user-modify-playback-state",
			"user-read-currently-playing",
		},
		RedirectURI:  "http://localhost:8080",
		PollInterval: 1,
	}
}

// Load reads configuration from the fixed config file path.
func Load() (*Config, error) {
	return LoadFrom(DefaultPath)
}

// LoadFrom reads configuration from the given file and environment.
//
// If the file does not exist, a default config is written to that path
// and ErrMissing is returned. Callers must not proceed on ErrMissing:
// the defaults carry empty credentials.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := Default().Save(path); err != nil {
			return nil, fmt.Errorf("failed to write default config: %w", err)
		}
		return nil, fmt.Errorf("created %s, please set credential values: %w", path, ErrMissing)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	// Read from environment variables
	v.SetEnvPrefix("SPOTISLEEP")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// Map config to struct
	cfg := &Config{
		Username:     v.GetString("username"),
		ClientID:     v.GetString("client_id"),
		ClientSecret: v.GetString("client_secret"),
		Scope:        v.GetStringSlice("scope"),
		RedirectURI:  v.GetString("redirect_uri"),
		PollInterval: v.GetInt("poll_interval"),
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 1
	}

	return cfg, nil
}

// Save writes configuration to the given file.
func (c *Config) Save(path string) error {
	v := viper.New()
	v.SetConfigType("json")

	v.Set("username", c.Username)
	v.Set("client_id", c.ClientID)
	v.Set("client_secret", c.ClientSecret)
	v.Set("scope", c.Scope)
	v.Set("redirect_uri", c.RedirectURI)
	v.Set("poll_interval", c.PollInterval)

	return v.WriteConfigAs(path)
}
