// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides the business logic between the HTTP handlers and
// the store: validation, defaulting, sanitization, and the update overlay.
package service

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/0marJim/flyercatcher/internal/model"
	"github.com/0marJim/flyercatcher/internal/store"
)

// ValidationError reports a missing or empty required field. Handlers map it
// to a 400 response naming the field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "Missing required field: " + e.Field
}

// EventInput carries the fields a create request may supply.
type EventInput struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Location      string `json:"location"`
	EventDate     string `json:"event_date"`
	Category      string `json:"category"`
	PostedBy      string `json:"posted_by"`
	ImageGradient string `json:"image_gradient"`
	ImageURL      string `json:"image_url"`
}

// EventUpdate carries the mutable fields of an update request. Nil means
// "leave unchanged"; a present empty string is written as-is.
type EventUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	EventDate   *string `json:"event_date"`
	Category    *string `json:"category"`
}

// EventService implements event CRUD on top of the store.
type EventService struct {
	queries *store.Queries
	policy  *bluemonday.Policy

	// now and randInt are swappable for deterministic tests.
	now     func() time.Time
	randInt func(n int) int
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{
		queries: store.New(db),
		policy:  bluemonday.StrictPolicy(),
		now:     time.Now,
		randInt: rand.IntN,
	}
}

// WithClock replaces the wall clock. Test use only.
func (s *EventService) WithClock(now func() time.Time) *EventService {
	s.now = now
	return s
}

// WithRand replaces the gradient random source. Test use only.
func (s *EventService) WithRand(randInt func(n int) int) *EventService {
	s.randInt = randInt
	return s
}

// List returns all events, newest first, optionally filtered by category.
// The sentinel "all" (or an empty category) disables the filter. Matching is
// exact and case-sensitive.
func (s *EventService) List(ctx context.Context, category string) ([]model.Event, error) {
	if category == "" || category == model.CategoryAll {
		return s.queries.ListEvents(ctx)
	}
	// Stored categories passed through the sanitizer on write; the filter
	// must match what got stored, not the raw query parameter.
	return s.queries.ListEventsByCategory(ctx, s.sanitize(category))
}

// Get returns a single event by id. Returns sql.ErrNoRows when absent.
func (s *EventService) Get(ctx context.Context, id int64) (model.Event, error) {
	return s.queries.GetEventByID(ctx, id)
}

// Create validates the input, applies defaults, inserts a row, and returns
// the stored event re-read by its new id.
func (s *EventService) Create(ctx context.Context, input EventInput) (model.Event, error) {
	s.sanitizeInput(&input)

	if err := validateRequired(input); err != nil {
		return model.Event{}, err
	}

	if input.Category == "" {
		input.Category = model.DefaultCategory
	}
	if input.PostedBy == "" {
		input.PostedBy = model.DefaultPostedBy
	}
	// A gradient placeholder is only assigned when there is no image at all.
	if input.ImageGradient == "" && input.ImageURL == "" {
		input.ImageGradient = model.Gradients[s.randInt(len(model.Gradients))]
	}

	now := s.now()
	id, err := s.queries.CreateEvent(ctx, store.CreateEventParams{
		Title:         input.Title,
		Description:   input.Description,
		Location:      input.Location,
		EventDate:     input.EventDate,
		Category:      input.Category,
		ImageGradient: input.ImageGradient,
		ImageURL:      input.ImageURL,
		PostedBy:      input.PostedBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return model.Event{}, fmt.Errorf("creating event: %w", err)
	}

	event, err := s.queries.GetEventByID(ctx, id)
	if err != nil {
		return model.Event{}, fmt.Errorf("reading back event %d: %w", id, err)
	}
	return event, nil
}

// Update loads the existing row, overlays the provided fields, and writes the
// full mutable column set back with one static statement. updated_at is
// always bumped, so an empty update is valid and only touches the timestamp.
// Returns sql.ErrNoRows when the id does not exist; nothing is mutated then.
func (s *EventService) Update(ctx context.Context, id int64, update EventUpdate) (model.Event, error) {
	existing, err := s.queries.GetEventByID(ctx, id)
	if err != nil {
		return model.Event{}, err
	}

	params := store.UpdateEventParams{
		ID:          id,
		Title:       existing.Title,
		Description: existing.Description,
		Location:    existing.Location,
		EventDate:   existing.EventDate,
		Category:    existing.Category,
		UpdatedAt:   s.now(),
	}

	if update.Title != nil {
		params.Title = s.sanitize(*update.Title)
	}
	if update.Description != nil {
		params.Description = s.sanitize(*update.Description)
	}
	if update.Location != nil {
		params.Location = s.sanitize(*update.Location)
	}
	if update.EventDate != nil {
		params.EventDate = s.sanitize(*update.EventDate)
	}
	if update.Category != nil {
		params.Category = s.sanitize(*update.Category)
	}

	if err := s.queries.UpdateEvent(ctx, params); err != nil {
		return model.Event{}, fmt.Errorf("updating event %d: %w", id, err)
	}

	event, err := s.queries.GetEventByID(ctx, id)
	if err != nil {
		return model.Event{}, fmt.Errorf("reading back event %d: %w", id, err)
	}
	return event, nil
}

// Delete removes an event. Returns sql.ErrNoRows when no row matched.
func (s *EventService) Delete(ctx context.Context, id int64) error {
	n, err := s.queries.DeleteEvent(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting event %d: %w", id, err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// validateRequired checks the three required fields in a stable order so the
// error always names the first missing one.
func validateRequired(input EventInput) error {
	required := []struct {
		name  string
		value string
	}{
		{"title", input.Title},
		{"location", input.Location},
		{"event_date", input.EventDate},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.name}
		}
	}
	return nil
}

// sanitizeInput strips HTML from every user-supplied text field. The client
// renders these strings straight into the DOM.
func (s *EventService) sanitizeInput(input *EventInput) {
	input.Title = s.sanitize(input.Title)
	input.Description = s.sanitize(input.Description)
	input.Location = s.sanitize(input.Location)
	input.EventDate = s.sanitize(input.EventDate)
	input.Category = s.sanitize(input.Category)
	input.PostedBy = s.sanitize(input.PostedBy)
}

func (s *EventService) sanitize(v string) string {
	return strings.TrimSpace(s.policy.Sanitize(v))
}
