// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/0marJim/flyercatcher/internal/service"
)

// createWithUpload handles a multipart create: the image part is validated
// and written first, then the event row is created from the form fields. A
// failed create removes the already-written file.
func (h *Handler) createWithUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(service.MaxUploadSize); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "No valid image uploaded")
		return
	}
	defer file.Close()

	saved, err := h.uploads.Save(file, header)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoImage):
			WriteError(w, http.StatusBadRequest, "No valid image uploaded")
		case errors.Is(err, service.ErrInvalidType):
			WriteError(w, http.StatusBadRequest, "Invalid image type")
		case errors.Is(err, service.ErrImageTooLarge):
			WriteError(w, http.StatusBadRequest, "Image exceeds maximum size")
		default:
			slog.Error("saving upload failed", "error", err)
			WriteError(w, http.StatusInternalServerError, "Failed to save image")
		}
		return
	}

	input := service.EventInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Location:    r.FormValue("location"),
		EventDate:   r.FormValue("event_date"),
		Category:    r.FormValue("category"),
		PostedBy:    r.FormValue("posted_by"),
		ImageURL:    saved.URL,
	}

	event, err := h.events.Create(r.Context(), input)
	if err != nil {
		// The file is already on disk; do not leave it orphaned.
		if rmErr := h.uploads.Remove(saved.URL); rmErr != nil {
			slog.Warn("removing orphaned upload failed", "url", saved.URL, "error", rmErr)
		}
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
