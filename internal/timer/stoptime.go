package timer

import (
	"errors"
	"time"
)

// Errors returned by StopTime normalization.
var (
	// ErrUnconvertible is returned when a StopTime carries no
	// recognized shape.
	ErrUnconvertible = errors.New("cannot convert stop time")

	// ErrPastStopTime is returned when the normalized stop duration
	// is negative.
	ErrPastStopTime = errors.New("stopping time is before now")
)

// Kind discriminates the shapes a stop time can take.
type Kind int

const (
	KindUnknown Kind = iota // zero value, never valid
	KindSeconds             // a count of seconds
	KindAt                  // an absolute clock time
	KindSpan                // a duration passed through unchanged
)

// StopTime is a tagged stop-time value. Construct one with Seconds,
// At, or Span and normalize it with Duration.
type StopTime struct {
	kind    Kind
	seconds float64
	at      time.Time
	span    time.Duration
}

// Seconds builds a stop time from a count of seconds. Fractional
// seconds are preserved.
func Seconds(s float64) StopTime {
	return StopTime{kind: KindSeconds, seconds: s}
}

// At builds a stop time from an absolute target timestamp.
func At(t time.Time) StopTime {
	return StopTime{kind: KindAt, at: t}
}

// Span builds a stop time from a duration.
func Span(d time.Duration) StopTime {
	return StopTime{kind: KindSpan, span: d}
}

// Kind returns the shape tag of the stop time.
func (s StopTime) Kind() Kind {
	return s.kind
}

// Duration normalizes the stop time to a span relative to now.
//
// Returns ErrUnconvertible for an unrecognized shape and
// ErrPastStopTime when the resulting span is negative.
func (s StopTime) Duration(now time.Time) (time.Duration, error) {
	var d time.Duration
	switch s.kind {
	case KindSeconds:
		d = time.Duration(s.seconds * float64(time.Second))
	case KindAt:
		d = s.at.Sub(now)
	case KindSpan:
		d = s.span
	default:
		return 0, ErrUnconvertible
	}

	if d < 0 {
		return 0, ErrPastStopTime
	}
	return d, nil
}
