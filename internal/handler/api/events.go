// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/0marJim/flyercatcher/internal/service"
)

// eventPathRe matches the single-event sub-resource: "events/<id>".
var eventPathRe = regexp.MustCompile(`^events/(\d+)$`)

// eventIDFromPath extracts the id from an "events/<id>" path value.
func eventIDFromPath(path string) (int64, bool) {
	m := eventPathRe.FindStringSubmatch(path)
	if m == nil {
		return 0, false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		// Digits-only by the regexp; only overflow lands here.
		return 0, false
	}
	return id, true
}

// isCollectionPath reports whether the path addresses the whole collection.
func isCollectionPath(path string) bool {
	return path == "" || path == "events"
}

// Dispatch routes a request by method, then by the `path` query parameter.
func (h *Handler) Dispatch(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")

	switch r.Method {
	case http.MethodOptions:
		// Cross-origin preflight: success, no body.
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		h.handleGet(w, r, path)
	case http.MethodPost:
		h.handlePost(w, r, path)
	case http.MethodPut:
		h.handlePut(w, r, path)
	case http.MethodDelete:
		h.handleDelete(w, r, path)
	default:
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request, path string) {
	ctx := r.Context()

	if isCollectionPath(path) {
		category := r.URL.Query().Get("category")
		events, err := h.events.List(ctx, category)
		if err != nil {
			slog.Error("listing events failed", "error", err)
			WriteError(w, http.StatusInternalServerError, "Failed to list events")
			return
		}
		WriteJSON(w, http.StatusOK, h.eventResponses(events))
		return
	}

	if id, ok := eventIDFromPath(path); ok {
		event, err := h.events.Get(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				WriteError(w, http.StatusNotFound, "Event not found")
			} else {
				slog.Error("getting event failed", "id", id, "error", err)
				WriteError(w, http.StatusInternalServerError, "Failed to retrieve event")
			}
			return
		}
		WriteJSON(w, http.StatusOK, h.eventResponse(event))
		return
	}

	WriteError(w, http.StatusNotFound, "Endpoint not found")
}

func (h *Handler) handlePost(w http.ResponseWriter, r *http.Request, path string) {
	if !isCollectionPath(path) {
		WriteError(w, http.StatusNotFound, "Endpoint not found")
		return
	}

	// One endpoint, content-type sniffed: multipart bodies go through the
	// image upload sub-flow, everything else is a JSON create.
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		h.createWithUpload(w, r)
		return
	}

	var input service.EventInput
	if err := decodeJSON(r, &input); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	h.createEvent(w, r, input)
}

// createEvent finishes a create, shared by the JSON and multipart flows.
func (h *Handler) createEvent(w http.ResponseWriter, r *http.Request, input service.EventInput) {
	event, err := h.events.Create(r.Context(), input)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			WriteError(w, http.StatusBadRequest, verr.Error())
		} else {
			slog.Error("creating event failed", "error", err)
			WriteError(w, http.StatusInternalServerError, "Failed to create event")
		}
		return
	}
	WriteJSON(w, http.StatusCreated, h.eventResponse(event))
}

func (h *Handler) handlePut(w http.ResponseWriter, r *http.Request, path string) {
	id, ok := eventIDFromPath(path)
	if !ok {
		WriteError(w, http.StatusNotFound, "Endpoint not found")
		return
	}

	var update service.EventUpdate
	if err := decodeJSON(r, &update); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	event, err := h.events.Update(r.Context(), id, update)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, http.StatusNotFound, "Event not found")
		} else {
			slog.Error("updating event failed", "id", id, "error", err)
			WriteError(w, http.StatusInternalServerError, "Failed to update event")
		}
		return
	}

	WriteJSON(w, http.StatusOK, h.eventResponse(event))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request, path string) {
	id, ok := eventIDFromPath(path)
	if !ok {
		WriteError(w, http.StatusNotFound, "Endpoint not found")
		return
	}

	if err := h.events.Delete(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, http.StatusNotFound, "Event not found")
		} else {
			slog.Error("deleting event failed", "id", id, "error", err)
			WriteError(w, http.StatusInternalServerError, "Failed to delete event")
		}
		return
	}

	WriteJSON(w, http.StatusOK, DeleteResponse{
		Success: true,
		Message: "Event deleted successfully",
	})
}
