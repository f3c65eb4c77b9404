package cmd

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/jfmyers9/spotisleep/internal/config"
	"github.com/jfmyers9/spotisleep/pkg/spotify"
	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorize spotisleep with Spotify",
	Long: `Authorize spotisleep against the Spotify Web API.

This command will guide you through the authorization process:
1. You'll be prompted for your Spotify application client id and secret
2. A browser URL will be provided for you to approve access
3. The redirect back to localhost is captured automatically and the
   resulting token is cached for future runs

You can create application credentials at:
https://developer.spotify.com/dashboard`,
	RunE: runAuth,
}

func init() {
	rootCmd.AddCommand(authCmd)
}

func runAuth(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	// Load existing config; on first run the bootstrap error is fine
	// here because this command exists to fill the file in.
	cfg, err := config.Load()
	if err != nil {
		if !errors.Is(err, config.ErrMissing) {
			return fmt.Errorf("failed to load config: %w", err)
		}
		fmt.Printf("Created %s with defaults.\n\n", config.DefaultPath)
		cfg = config.Default()
	}

	fmt.Println("Spotify Authorization")
	fmt.Println("=====================")
	fmt.Println()
	fmt.Println("You can create application credentials at: https://developer.spotify.com/dashboard")
	fmt.Println()

	// Check if we already have credentials
	if cfg.ClientID != "" && cfg.ClientSecret != "" {
		fmt.Printf("Found existing credentials.\n")
		fmt.Printf("Client ID: %s\n", cfg.ClientID)
		fmt.Print("\nUse existing credentials? [Y/n]: ")
		response, err := reader.ReadString('\n')
		if err != nil {
			response = "y"
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "" && response != "y" && response != "yes" {
			cfg.ClientID = ""
			cfg.ClientSecret = ""
		}
	}

	if cfg.ClientID == "" {
		fmt.Print("Enter your Spotify Client ID: ")
		clientID, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read client id: %w", err)
		}
		cfg.ClientID = strings.TrimSpace(clientID)
	}

	if cfg.ClientSecret == "" {
		fmt.Print("Enter your Spotify Client Secret: ")
		clientSecret, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read client secret: %w", err)
		}
		cfg.ClientSecret = strings.TrimSpace(clientSecret)
	}

	if cfg.Username == "" {
		fmt.Print("Enter your Spotify username: ")
		username, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read username: %w", err)
		}
		cfg.Username = strings.TrimSpace(username)
	}

	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return fmt.Errorf("client id and secret are required")
	}

	if err := cfg.Save(config.DefaultPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	client, err := spotify.NewClient(spotify.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURI:  cfg.RedirectURI,
		Scopes:       cfg.Scope,
		Username:     cfg.Username,
	})
	if err != nil {
		return fmt.Errorf("failed to create spotify client: %w", err)
	}

	state, err := randomState()
	if err != nil {
		return fmt.Errorf("failed to generate state: %w", err)
	}

	authURL := client.Auth().AuthURL(state)
	fmt.Println("\nPlease visit this URL to authorize spotisleep:")
	fmt.Printf("\n  %s\n\n", authURL)

	code, err := captureCode(ctx, reader, cfg.RedirectURI, state)
	if err != nil {
		return err
	}

	fmt.Println("Exchanging code for token...")
	if _, err := client.Auth().Exchange(ctx, code); err != nil {
		return fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	fmt.Printf("\n✓ Authorization successful!\n")
	fmt.Printf("✓ Credentials saved to %s\n", config.DefaultPath)
	fmt.Println("\nYou can now run 'spotisleep <seconds>' to start a sleep timer.")

	return nil
}

// captureCode obtains the authorization code from the redirect. It
// listens on the redirect URI and captures the code automatically;
// when the port cannot be bound it falls back to asking the user to
// paste the redirected URL.
func captureCode(ctx context.Context, reader *bufio.Reader, redirectURI, state string) (string, error) {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return "", fmt.Errorf("invalid redirect uri %q: %w", redirectURI, err)
	}

	listener, err := net.Listen("tcp", u.Host)
	if err != nil {
		fmt.Printf("Could not listen on %s (%v).\n", u.Host, err)
		fmt.Print("After authorizing, paste the full URL you were redirected to: ")
		pasted, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read redirected URL: %w", err)
		}
		return codeFromRedirect(strings.TrimSpace(pasted), state)
	}

	type result struct {
		code string
		err  error
	}
	results := make(chan result, 1)

	server := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			code, err := codeFromRedirect(r.URL.String(), state)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				results <- result{err: err}
				return
			}
			fmt.Fprintln(w, "Authorization received. You can close this window.")
			results <- result{code: code}
		}),
	}

	go func() { _ = server.Serve(listener) }()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	fmt.Println("Waiting for the redirect on", u.Host, "...")

	select {
	case res := <-results:
		return res.code, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// codeFromRedirect extracts and validates the code parameter from a
// redirect URL.
func codeFromRedirect(rawURL, state string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid redirect URL: %w", err)
	}

	q := u.Query()
	if errParam := q.Get("error"); errParam != "" {
		return "", fmt.Errorf("authorization denied: %s", errParam)
	}
	if got := q.Get("state"); state != "" && got != state {
		return "", fmt.Errorf("state mismatch in redirect")
	}

	code := q.Get("code")
	if code == "" {
		return "", fmt.Errorf("no authorization code in redirect")
	}
	return code, nil
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
