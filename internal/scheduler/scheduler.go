// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the background maintenance jobs of the server.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/0marJim/flyercatcher/internal/store"
)

// Scheduler owns the cron instance and the jobs registered on it.
type Scheduler struct {
	db         *sql.DB
	cron       *cron.Cron
	logger     *slog.Logger
	uploadsDir string

	// grace is how old an unreferenced upload must be before the sweep
	// removes it. Uploads younger than this may belong to an in-flight
	// create.
	grace time.Duration
}

// New creates a new scheduler instance.
func New(db *sql.DB, logger *slog.Logger, uploadsDir string, grace time.Duration) *Scheduler {
	return &Scheduler{
		db:         db,
		cron:       cron.New(),
		logger:     logger,
		uploadsDir: uploadsDir,
		grace:      grace,
	}
}

// Start registers the hourly orphaned-upload sweep and starts the cron loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("@hourly", func() {
		if err := s.SweepOrphanedUploads(context.Background()); err != nil {
			s.logger.Error("orphaned upload sweep failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// SweepOrphanedUploads removes files in the uploads directory that no event
// row references and that are older than the grace period. Files land there
// before their row exists, so the grace period keeps in-flight creates safe.
func (s *Scheduler) SweepOrphanedUploads(ctx context.Context) error {
	queries := store.New(s.db)
	urls, err := queries.ListImageURLs(ctx)
	if err != nil {
		return err
	}

	referenced := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		referenced[filepath.Base(u)] = struct{}{}
	}

	entries, err := os.ReadDir(s.uploadsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	cutoff := time.Now().Add(-s.grace)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := referenced[entry.Name()]; ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.uploadsDir, entry.Name())); err != nil {
			s.logger.Warn("removing orphaned upload failed",
				"file", entry.Name(), "error", err)
			continue
		}
		removed++
	}

	if removed > 0 {
		s.logger.Info("swept orphaned uploads", "removed", removed)
	}
	return nil
}
