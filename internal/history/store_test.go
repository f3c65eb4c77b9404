package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 14, 22, 0, 0, 0, time.UTC)

	runs := []Run{
		{StartedAt: base, FinishedAt: base.Add(2 * time.Minute), RequestedFor: 2 * time.Minute, Outcome: "paused"},
		{StartedAt: base.Add(time.Hour), FinishedAt: base.Add(time.Hour), RequestedFor: 30 * time.Second, Outcome: "not-playing"},
		{StartedAt: base.Add(2 * time.Hour), FinishedAt: base.Add(2*time.Hour + time.Minute), RequestedFor: time.Minute, Outcome: "already-stopped"},
	}

	for _, r := range runs {
		if _, err := s.Record(ctx, r); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	got, err := s.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(got))
	}

	// Newest first
	if got[0].Outcome != "already-stopped" || got[2].Outcome != "paused" {
		t.Errorf("unexpected ordering: %q, %q, %q", got[0].Outcome, got[1].Outcome, got[2].Outcome)
	}

	if !got[2].StartedAt.Equal(base) {
		t.Errorf("started_at = %v, want %v", got[2].StartedAt, base)
	}
	if got[2].RequestedFor != 2*time.Minute {
		t.Errorf("requested_for = %v, want 2m", got[2].RequestedFor)
	}
}

func TestRecentLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 14, 22, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		run := Run{
			StartedAt:    base.Add(time.Duration(i) * time.Hour),
			FinishedAt:   base.Add(time.Duration(i) * time.Hour),
			RequestedFor: time.Minute,
			Outcome:      "paused",
		}
		if _, err := s.Record(ctx, run); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	got, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 runs with limit, got %d", len(got))
	}
}

func TestCount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 0 {
		t.Errorf("expected empty store, got %d", n)
	}

	run := Run{StartedAt: time.Now(), FinishedAt: time.Now(), RequestedFor: time.Minute, Outcome: "paused"}
	if _, err := s.Record(ctx, run); err != nil {
		t.Fatalf("Record: %v", err)
	}

	n, err = s.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 run, got %d", n)
	}
}
