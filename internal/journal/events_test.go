package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestEventRepoAppendAndRecent_NewestFirst(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := NewEventRepo(db)
	base := time.Now().UTC().Truncate(time.Millisecond)

	if err := repo.Append(ctx, base, "info", "Bluetooth connected"); err != nil {
		t.Fatalf("append first: %v", err)
	}
	if err := repo.Append(ctx, base.Add(time.Second), "warning", "Cloud login failed"); err != nil {
		t.Fatalf("append second: %v", err)
	}

	events, err := repo.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected two events, got %d", len(events))
	}
	if events[0].Message != "Cloud login failed" {
		t.Fatalf("expected newest event first, got %q", events[0].Message)
	}
	if events[1].Severity != "info" {
		t.Fatalf("expected info severity, got %q", events[1].Severity)
	}
	if !events[1].At.Equal(base) {
		t.Fatalf("expected timestamp to roundtrip, got %v want %v", events[1].At, base)
	}
}

func TestEventRepoRecentHonorsLimit(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := NewEventRepo(db)
	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		if err := repo.Append(ctx, base.Add(time.Duration(i)*time.Second), "info", "entry"); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	events, err := repo.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected three events, got %d", len(events))
	}
}

func TestEventRepoPruneDropsOldEvents(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := NewEventRepo(db)
	if err := repo.Append(ctx, time.Now().Add(-48*time.Hour), "info", "old"); err != nil {
		t.Fatalf("append old: %v", err)
	}
	if err := repo.Append(ctx, time.Now(), "info", "fresh"); err != nil {
		t.Fatalf("append fresh: %v", err)
	}

	if err := repo.Prune(ctx, 24*time.Hour); err != nil {
		t.Fatalf("prune: %v", err)
	}

	events, err := repo.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(events) != 1 || events[0].Message != "fresh" {
		t.Fatalf("expected only the fresh event, got %+v", events)
	}
}
