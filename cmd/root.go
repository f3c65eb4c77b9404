/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jfmyers9/spotisleep/internal/config"
	"github.com/jfmyers9/spotisleep/internal/history"
	"github.com/jfmyers9/spotisleep/internal/timer"
	"github.com/jfmyers9/spotisleep/pkg/spotify"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// historyDBPath is the run-history database, kept next to the config
// file in the working directory.
const historyDBPath = "history.db"

var (
	rootAt       string
	rootInterval int
	rootLogLevel string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "spotisleep [seconds]",
	Short: "Sleep timer for Spotify playback",
	Long: `spotisleep is a sleep timer for Spotify.

It waits the given number of seconds while showing progress, then
pauses playback on your active device. If nothing is playing when the
timer starts, it returns immediately.

Credentials live in ./config.json; the file is created with defaults
on first run. Use 'spotisleep auth' to authorize the application once,
after filling in your client id and secret.`,
	Args:    cobra.MaximumNArgs(1),
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	RunE:    runTimer,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&rootAt, "at", "", "Stop at a clock time (HH:MM or HH:MM:SS) instead of after a number of seconds")
	rootCmd.Flags().IntVar(&rootInterval, "interval", 0, "Poll interval in seconds (overrides config)")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
}

func runTimer(cmd *cobra.Command, args []string) error {
	// The stop time is validated before any config or network work so
	// a bad argument never triggers an authentication round-trip.
	stop, err := parseStopTime(args, rootAt, time.Now())
	if err != nil {
		return err
	}
	duration, err := stop.Duration(time.Now())
	if err != nil {
		return err
	}

	logger := setupLogger(rootLogLevel)
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return fmt.Errorf("spotify credentials not configured. Edit %s or run 'spotisleep auth'", config.DefaultPath)
	}

	client, err := spotify.NewClient(spotify.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURI:  cfg.RedirectURI,
		Scopes:       cfg.Scope,
		Username:     cfg.Username,
		Logger:       apiLogger{logger},
	})
	if err != nil {
		return fmt.Errorf("failed to create spotify client: %w", err)
	}

	if err := client.Auth().EnsureToken(ctx); err != nil {
		if errors.Is(err, spotify.ErrNoToken) {
			return fmt.Errorf("no cached authorization. Run 'spotisleep auth' first")
		}
		return fmt.Errorf("authentication failed: %w", err)
	}

	interval := time.Duration(cfg.PollInterval) * time.Second
	if rootInterval > 0 {
		interval = time.Duration(rootInterval) * time.Second
	}

	runner := timer.NewRunner(&playerController{client: client}, interval, logger, os.Stdout)

	started := time.Now()
	outcome, err := runner.Run(ctx, duration)
	if err != nil {
		return err
	}

	recordRun(ctx, logger, history.Run{
		StartedAt:    started,
		FinishedAt:   time.Now(),
		RequestedFor: duration,
		Outcome:      outcome.String(),
	})

	return nil
}

// parseStopTime turns the CLI surface (positional seconds or the --at
// flag) into a StopTime. The positional argument is a numeric seconds
// value; --at is a clock time that resolves to the next occurrence.
func parseStopTime(args []string, at string, now time.Time) (timer.StopTime, error) {
	if at != "" {
		target, err := parseClockTime(at, now)
		if err != nil {
			return timer.StopTime{}, err
		}
		return timer.At(target), nil
	}

	if len(args) == 0 {
		return timer.StopTime{}, fmt.Errorf("please input stop time")
	}

	secs, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return timer.StopTime{}, fmt.Errorf("cannot convert input. input=%q", args[0])
	}

	return timer.Seconds(secs), nil
}

// parseClockTime resolves "HH:MM" or "HH:MM:SS" to the next time that
// clock reading occurs; a reading earlier than now means tomorrow.
func parseClockTime(s string, now time.Time) (time.Time, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		parsed, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		target := time.Date(now.Year(), now.Month(), now.Day(),
			parsed.Hour(), parsed.Minute(), parsed.Second(), 0, now.Location())
		if !target.After(now) {
			target = target.Add(24 * time.Hour)
		}
		return target, nil
	}
	return time.Time{}, fmt.Errorf("cannot convert input. input=%q", s)
}

// playerController adapts the Spotify client to the timer's playback
// surface.
type playerController struct {
	client *spotify.Client
}

func (p *playerController) IsPlaying(ctx context.Context) (bool, error) {
	playing, err := p.client.Player().CurrentlyPlaying(ctx)
	if err != nil {
		return false, err
	}
	if playing == nil {
		return false, nil
	}
	return playing.IsPlaying, nil
}

func (p *playerController) Pause(ctx context.Context) error {
	return p.client.Player().Pause(ctx)
}

// recordRun persists a completed run to the history database. The
// music is already handled by this point, so a storage failure only
// logs a warning.
func recordRun(ctx context.Context, logger zerolog.Logger, run history.Run) {
	store, err := history.Open(historyDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to open history database")
		return
	}
	defer store.Close()

	if _, err := store.Record(ctx, run); err != nil {
		logger.Warn().Err(err).Msg("Failed to record run")
		return
	}

	logger.Debug().
		Str("outcome", run.Outcome).
		Dur("requested_for", run.RequestedFor).
		Msg("Recorded run")
}

// apiLogger adapts zerolog to the spotify client's debug logger.
type apiLogger struct {
	logger zerolog.Logger
}

func (l apiLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}

// setupLogger creates a logger with the specified configuration
func setupLogger(logLevel string) zerolog.Logger {
	// Parse log level
	level := zerolog.WarnLevel
	switch logLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	logger := zerolog.New(os.Stderr).
		Level(level).
		With().
		Timestamp().
		Logger()

	return logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}
