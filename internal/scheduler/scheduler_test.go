// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/0marJim/flyercatcher/internal/store"
	"github.com/0marJim/flyercatcher/internal/testutil"
)

func writeUpload(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatalf("writing upload: %v", err)
	}
	old := time.Now().Add(-age)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatalf("setting mtime: %v", err)
	}
	return path
}

func TestSweepOrphanedUploads(t *testing.T) {
	db := testutil.TestDB(t)
	dir := t.TempDir()
	s := New(db, testutil.TestLogger(), dir, time.Hour)

	ctx := context.Background()
	queries := store.New(db)
	_, err := queries.CreateEvent(ctx, store.CreateEventParams{
		Title:     "Keeper",
		Location:  "Venue",
		EventDate: "2025-07-01 18:00:00",
		Category:  "music",
		ImageURL:  "/uploads/referenced.jpg",
		PostedBy:  "Anonymous",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	referenced := writeUpload(t, dir, "referenced.jpg", 2*time.Hour)
	orphanOld := writeUpload(t, dir, "orphan-old.jpg", 2*time.Hour)
	orphanNew := writeUpload(t, dir, "orphan-new.jpg", time.Minute)

	if err := s.SweepOrphanedUploads(ctx); err != nil {
		t.Fatalf("SweepOrphanedUploads: %v", err)
	}

	if _, err := os.Stat(referenced); err != nil {
		t.Errorf("expected referenced file kept: %v", err)
	}
	if _, err := os.Stat(orphanNew); err != nil {
		t.Errorf("expected file inside grace period kept: %v", err)
	}
	if _, err := os.Stat(orphanOld); !os.IsNotExist(err) {
		t.Errorf("expected old orphan removed, stat err = %v", err)
	}
}

func TestSweepMissingDir(t *testing.T) {
	db := testutil.TestDB(t)
	s := New(db, testutil.TestLogger(), filepath.Join(t.TempDir(), "nonexistent"), time.Hour)

	if err := s.SweepOrphanedUploads(context.Background()); err != nil {
		t.Fatalf("expected missing dir to be a no-op, got %v", err)
	}
}

func TestStartStop(t *testing.T) {
	db := testutil.TestDB(t)
	s := New(db, testutil.TestLogger(), t.TempDir(), time.Hour)

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Stop()
}
