// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store provides the SQLite persistence layer: connection setup,
// embedded schema migrations, and the statement set for the events table.
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/0marJim/flyercatcher/internal/model"
)

// DBTX is the subset of database/sql used by Queries, so the same statement
// set runs against *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Queries holds the prepared statement set for the events table.
type Queries struct {
	db DBTX
}

// New creates a Queries bound to the given connection.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

const eventColumns = `id, title, description, location, event_date, category,
	image_gradient, image_url, posted_by, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (model.Event, error) {
	var e model.Event
	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Description,
		&e.Location,
		&e.EventDate,
		&e.Category,
		&e.ImageGradient,
		&e.ImageURL,
		&e.PostedBy,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

// CreateEventParams holds the column values for a new event row.
type CreateEventParams struct {
	Title         string
	Description   string
	Location      string
	EventDate     string
	Category      string
	ImageGradient string
	ImageURL      string
	PostedBy      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreateEvent inserts one event row and returns the assigned id.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO events (title, description, location, event_date, category,
			image_gradient, image_url, posted_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.Title,
		arg.Description,
		arg.Location,
		arg.EventDate,
		arg.Category,
		arg.ImageGradient,
		arg.ImageURL,
		arg.PostedBy,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetEventByID returns a single event or sql.ErrNoRows.
func (q *Queries) GetEventByID(ctx context.Context, id int64) (model.Event, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	return scanEvent(row)
}

// ListEvents returns all events, most recently created first.
func (q *Queries) ListEvents(ctx context.Context) ([]model.Event, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

// ListEventsByCategory returns events matching category exactly,
// most recently created first.
func (q *Queries) ListEventsByCategory(ctx context.Context, category string) ([]model.Event, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE category = ? ORDER BY created_at DESC, id DESC`,
		category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

func collectEvents(rows *sql.Rows) ([]model.Event, error) {
	events := make([]model.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// UpdateEventParams carries the full mutable column set. Callers load the
// existing row, overlay the fields the request provided, and pass the result
// here; the statement itself is static.
type UpdateEventParams struct {
	ID          int64
	Title       string
	Description string
	Location    string
	EventDate   string
	Category    string
	UpdatedAt   time.Time
}

// UpdateEvent writes the mutable columns and bumps updated_at.
func (q *Queries) UpdateEvent(ctx context.Context, arg UpdateEventParams) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE events
		SET title = ?, description = ?, location = ?, event_date = ?,
			category = ?, updated_at = ?
		WHERE id = ?`,
		arg.Title,
		arg.Description,
		arg.Location,
		arg.EventDate,
		arg.Category,
		arg.UpdatedAt,
		arg.ID,
	)
	return err
}

// DeleteEvent removes one event row and reports how many rows matched.
func (q *Queries) DeleteEvent(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CountEvents returns the total number of event rows.
func (q *Queries) CountEvents(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n)
	return n, err
}

// ListImageURLs returns every non-empty image_url currently referenced by an
// event row. Used by the orphaned-upload sweep.
func (q *Queries) ListImageURLs(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT image_url FROM events WHERE image_url != ''`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}
