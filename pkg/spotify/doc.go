// Package spotify provides a client library for the Spotify Web API.
//
// # Overview
//
// This package implements a Go client for the Web API operations that
// playback control needs: the authorization-code flow, the
// currently-playing query, and the pause command. It provides a
// type-safe API with context support, structured errors, and an
// on-disk token cache.
//
// # Quick Start
//
// Create a client with your application credentials:
//
//	import "github.com/jfmyers9/spotisleep/pkg/spotify"
//
//	client, err := spotify.NewClient(spotify.Config{
//	    ClientID:     "your-client-id",
//	    ClientSecret: "your-client-secret",
//	    RedirectURI:  "http://localhost:8080",
//	    Scopes: []string{
//	        "user-read-currently-playing",
//	        "user-modify-playback-state",
//	    },
//	    Username: "your-username",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Authorization
//
// The Web API uses the OAuth authorization-code flow:
//
//  1. Direct the user to authorize the application
//  2. Capture the code from the redirect
//  3. Exchange the code for a token
//  4. Reuse the cached token on later runs
//
// Example:
//
//	// Step 1: user authorizes
//	fmt.Println("Please visit:", client.Auth().AuthURL("some-state"))
//
//	// Step 2-3: exchange the captured code
//	token, err := client.Auth().Exchange(ctx, code)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Later runs: load the cache, refreshing if expired
//	if err := client.Auth().EnsureToken(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Tokens are cached in a ".cache-<username>" file; refresh tokens are
// used transparently when the access token expires.
//
// # Playback
//
// Once authorized, query and control playback:
//
//	playing, err := client.Player().CurrentlyPlaying(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if playing == nil {
//	    fmt.Println("nothing playing")
//	} else if playing.IsPlaying {
//	    err = client.Player().Pause(ctx)
//	}
//
// # Error Handling
//
// API failures carry the status and message of the Web API error
// envelope:
//
//	err := client.Player().Pause(ctx)
//	if err != nil {
//	    var apiErr *spotify.Error
//	    if errors.As(err, &apiErr) {
//	        fmt.Println("API said:", apiErr.Status, apiErr.Message)
//	    }
//	}
//
// Requests are not retried; a transient failure surfaces to the
// caller. The only automatic recovery is a single token refresh when
// the API answers 401.
//
// # Context Support
//
// All API methods accept a context.Context for cancellation and
// timeouts.
//
// # Spotify Web API Documentation
//
// For more information about the Web API:
// https://developer.spotify.com/documentation/web-api
package spotify
