// Package timer implements the sleep-timer core: stop-time
// normalization and the poll-sleep-recheck loop that pauses playback
// once the requested duration has elapsed.
package timer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Controller is the playback surface the timer drives. The Spotify
// client satisfies it through a thin adapter in the command layer;
// tests use fakes.
type Controller interface {
	// IsPlaying reports whether a track is actively playing. Always a
	// live round-trip, never cached.
	IsPlaying(ctx context.Context) (bool, error)

	// Pause pauses playback on the active device.
	Pause(ctx context.Context) error
}

// Outcome describes how a timer run ended.
type Outcome int

const (
	OutcomeNotPlaying     Outcome = iota // nothing was playing at entry, timer never started
	OutcomePaused                        // the full duration elapsed and playback was paused
	OutcomeAlreadyStopped                // the duration elapsed but playback had stopped on its own
)

// String returns a human-readable representation of the Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeNotPlaying:
		return "not-playing"
	case OutcomePaused:
		return "paused"
	case OutcomeAlreadyStopped:
		return "already-stopped"
	default:
		return "unknown"
	}
}

// Runner runs the sleep timer: a blocking loop that polls elapsed
// time at a fixed interval, displays progress, and pauses playback
// once the duration has elapsed.
type Runner struct {
	controller Controller
	interval   time.Duration
	logger     zerolog.Logger
	out        io.Writer

	// injected for tests
	now      func() time.Time
	sleepFor func(ctx context.Context, d time.Duration) bool
}

// NewRunner creates a new Runner. A non-positive interval falls back
// to one second; a nil writer disables progress output.
func NewRunner(controller Controller, interval time.Duration, logger zerolog.Logger, out io.Writer) *Runner {
	if interval <= 0 {
		interval = time.Second
	}
	if out == nil {
		out = io.Discard
	}
	return &Runner{
		controller: controller,
		interval:   interval,
		logger:     logger.With().Str("component", "timer").Logger(),
		out:        out,
		now:        time.Now,
		sleepFor:   sleep,
	}
}

// Run executes one full timer sequence and reports how it ended.
//
// If nothing is playing at entry the timer never starts. Otherwise the
// loop waits out the full duration regardless of playback state; only
// after elapsed time exceeds the duration is the state rechecked and,
// if still playing, exactly one pause issued. Playback stopping on its
// own does not end the loop early.
//
// Errors from the playback checks or the pause command abort the run;
// they are not retried. Context cancellation aborts with ctx.Err().
func (r *Runner) Run(ctx context.Context, duration time.Duration) (Outcome, error) {
	playing, err := r.controller.IsPlaying(ctx)
	if err != nil {
		return OutcomeNotPlaying, fmt.Errorf("playback check failed: %w", err)
	}
	if !playing {
		fmt.Fprintln(r.out, "does not play songs.")
		r.logger.Info().Msg("Nothing playing, timer not started")
		return OutcomeNotPlaying, nil
	}

	start := r.now()
	end := start.Add(duration)

	fmt.Fprintln(r.out, "start sleep timer")
	fmt.Fprintf(r.out, "start %s -> %s end.\n", start.Format("15:04:05"), end.Format("15:04:05"))
	r.logger.Info().
		Dur("duration", duration).
		Dur("interval", r.interval).
		Msg("Starting sleep timer")

	for {
		elapsed := r.now().Sub(start)
		fmt.Fprintf(r.out, "\r%s", renderProgress(elapsed, duration, defaultBarWidth))

		if elapsed > duration {
			break
		}

		if !r.sleepFor(ctx, r.interval) {
			fmt.Fprintln(r.out)
			return OutcomeNotPlaying, ctx.Err()
		}
	}
	fmt.Fprintln(r.out)

	playing, err = r.controller.IsPlaying(ctx)
	if err != nil {
		return OutcomeNotPlaying, fmt.Errorf("playback recheck failed: %w", err)
	}
	if !playing {
		r.logger.Info().Msg("Playback already stopped on its own")
		return OutcomeAlreadyStopped, nil
	}

	if err := r.controller.Pause(ctx); err != nil {
		return OutcomeNotPlaying, fmt.Errorf("pause failed: %w", err)
	}

	fmt.Fprintln(r.out, "stop playing")
	r.logger.Info().Msg("Playback paused")
	return OutcomePaused, nil
}

// sleep waits for the specified duration or until context is cancelled.
// Returns true if sleep completed, false if context was cancelled.
func sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(duration):
		return true
	}
}
