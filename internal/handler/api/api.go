// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api implements the event CRUD endpoint. The external contract is
// inherited from the original deployment: one entry point dispatching on the
// `path` query parameter, bare JSON bodies, and `{"error": "..."}` failures.
package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/0marJim/flyercatcher/internal/format"
	"github.com/0marJim/flyercatcher/internal/model"
	"github.com/0marJim/flyercatcher/internal/service"
)

// Handler holds shared dependencies for the event API.
type Handler struct {
	events  *service.EventService
	uploads *service.UploadService

	// now feeds the relative posted_date rendering; swappable in tests.
	now func() time.Time
}

// NewHandler creates a new API handler.
func NewHandler(db *sql.DB, uploadsDir string) *Handler {
	return &Handler{
		events:  service.NewEventService(db),
		uploads: service.NewUploadService(uploadsDir),
		now:     time.Now,
	}
}

// WithClock replaces the wall clock. Test use only.
func (h *Handler) WithClock(now func() time.Time) *Handler {
	h.now = now
	return h
}

// timestampLayout matches the storage rendering of created_at/updated_at.
const timestampLayout = "2006-01-02 15:04:05"

// EventResponse is the wire representation of an event, stored fields plus
// the two derived presentation fields.
type EventResponse struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Location      string `json:"location"`
	EventDate     string `json:"event_date"`
	Category      string `json:"category"`
	ImageGradient string `json:"image_gradient"`
	ImageURL      string `json:"image_url"`
	PostedBy      string `json:"posted_by"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
	FormattedDate string `json:"formatted_date"`
	PostedDate    string `json:"posted_date"`
}

// eventResponse attaches the derived fields to a stored event.
func (h *Handler) eventResponse(e model.Event) EventResponse {
	return EventResponse{
		ID:            e.ID,
		Title:         e.Title,
		Description:   e.Description,
		Location:      e.Location,
		EventDate:     e.EventDate,
		Category:      e.Category,
		ImageGradient: e.ImageGradient,
		ImageURL:      e.ImageURL,
		PostedBy:      e.PostedBy,
		CreatedAt:     e.CreatedAt.Format(timestampLayout),
		UpdatedAt:     e.UpdatedAt.Format(timestampLayout),
		FormattedDate: format.EventDate(e.EventDate),
		PostedDate:    format.RelativeTime(e.CreatedAt, h.now()),
	}
}

func (h *Handler) eventResponses(events []model.Event) []EventResponse {
	responses := make([]EventResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, h.eventResponse(e))
	}
	return responses
}

// ErrorResponse is the error body: {"error": "<message>"}.
type ErrorResponse struct {
	Error string `json:"error"`
}

// DeleteResponse is the success body of a delete.
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes an error JSON response. Messages are generic; internal
// error detail never reaches a client.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message})
}

// decodeJSON decodes JSON from request body.
func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
